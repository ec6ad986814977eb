// Package bitvec provides the bit-vector primitive backing per-node edge
// sets in the graph engine.
//
// A [Vector] is a read-only view of a set of non-negative integers; a
// [MutableVector] adds in-place mutation and set algebra. Both wrap a
// compressed Roaring bitmap, so storage cost follows the number of set
// bits rather than the index range.
//
// The split between Vector and MutableVector mirrors how the graph engine
// uses them: frozen graphs hand out Vectors, while traversal state and
// builders work on MutableVectors. Freezing is free - a MutableVector
// embeds its Vector view.
package bitvec
