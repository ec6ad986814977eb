// Package graph provides a compact directed-graph engine over integer
// nodes, represented entirely as pairs of bit vectors.
//
// # Overview
//
// A [Graph] holds, for each node in [0, Size), an outbound and an inbound
// edge set backed by compressed bitmaps (see
// [github.com/bitgraph-dev/bitgraph/pkg/bitvec]). The two representations
// mirror each other - outbound[i].Get(j) holds exactly when
// inbound[j].Get(i) does - which lets every algorithm pick the cheaper
// direction. Two derived sets are cached at construction: the top-level
// nodes (outbound edges but no inbound) and the bottom-level nodes
// (inbound but no outbound).
//
// # Basic Usage
//
// Build a graph with a [Builder] or from raw edge sets with [FromEdges]:
//
//	b := graph.NewBuilder(4)
//	b.AddEdge(0, 1)
//	b.AddEdge(1, 2)
//	b.AddEdge(2, 0)
//	b.AddEdge(2, 3)
//	g := b.Build()
//
//	g.ClosureOf(0)      // {0,1,2,3} - 0 reaches itself via the cycle
//	g.PathsBetween(0, 3) // [0 -> 1 -> 2 -> 3]
//
// # Algorithms
//
// The engine layers a full algorithm suite on the bit-vector core:
// cycle-safe traversal ([Graph.Walk], [Graph.DepthFirstSearch],
// [Graph.BreadthFirstSearch] and abortable variants), transitive closure
// ([Graph.ClosureOf] and the union/disjunction combinators), multi-path
// enumeration ([Graph.PathsBetween]), and graph derivation
// ([Graph.Omitting], [Graph.Diff]). All traversals terminate on cyclic
// graphs by tracking a caller-local seen vector, and all run on explicit
// stacks so closure depth never threatens the goroutine stack.
//
// # Immutability and Concurrency
//
// A Graph never mutates after construction. Derivation produces fresh
// instances, and every query allocates its own working state ([Path],
// [PairSet], seen vectors), so arbitrarily many goroutines may query one
// Graph concurrently without locking.
//
// # Serialization
//
// [Graph.Encode] and [Decode] implement a versioned binary dump of the
// outbound edge sets; inbound sets are always recomputed on load.
package graph
