// Package score implements node-scoring algorithms over the bit-vector
// graph engine.
//
// Each algorithm is a pure function taking a read-only graph and a plain
// configuration struct, returning one float64 per node. Configurations
// are validated before any iteration starts; the graph contributes only
// its edge-iteration primitives and is never mutated, so scoring runs
// safely concurrent with any other graph queries.
//
// Two algorithms are provided: [Eigenvector] centrality and [PageRank].
package score
