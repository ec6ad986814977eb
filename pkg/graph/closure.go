package graph

import (
	"github.com/bitgraph-dev/bitgraph/pkg/bitvec"
)

// ClosureOf returns the set of all nodes reachable from node via one or
// more outbound edges. The node itself is included only when some path of
// length >= 1 leads back to it (a directed cycle through the node).
//
// Panics if node is out of range.
func (g *Graph) ClosureOf(node int) *bitvec.Vector {
	g.checkNode(node)
	return g.closure(g.outbound[node], Down)
}

// ReverseClosureOf mirrors [Graph.ClosureOf] over inbound edges: all
// nodes from which node is reachable.
//
// Panics if node is out of range.
func (g *Graph) ReverseClosureOf(node int) *bitvec.Vector {
	g.checkNode(node)
	return g.closure(g.inbound[node], Up)
}

// closure computes reachability from an initial frontier using an
// explicit worklist; the result vector doubles as the visited set.
func (g *Graph) closure(frontier *bitvec.Vector, dir Direction) *bitvec.Vector {
	adj := g.adjacency(dir)
	result := bitvec.New()

	worklist := frontier.Bits()
	for len(worklist) > 0 {
		n := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if result.Get(n) {
			continue
		}
		result.Set(n)
		adj(n).ForEachSetBit(func(nb int) bool {
			if !result.Get(nb) {
				worklist = append(worklist, nb)
			}
			return true
		})
	}
	return result.Freeze()
}

// ClosureUnion returns the union of the closures of the given nodes.
// Panics if any node is out of range.
func (g *Graph) ClosureUnion(nodes ...int) *bitvec.Vector {
	u := bitvec.New()
	for _, n := range nodes {
		u.Or(g.ClosureOf(n))
	}
	return u.Freeze()
}

// ClosureDisjunction returns the symmetric difference of the closures of
// the given nodes: bits set in an odd number of the per-node closures.
// Panics if any node is out of range.
func (g *Graph) ClosureDisjunction(nodes ...int) *bitvec.Vector {
	d := bitvec.New()
	for _, n := range nodes {
		d.Xor(g.ClosureOf(n))
	}
	return d.Freeze()
}

// IsRecursive reports whether node can reach itself via one or more
// edges, including a direct self-loop.
//
// Panics if node is out of range.
func (g *Graph) IsRecursive(node int) bool {
	return g.ClosureOf(node).Get(node)
}

// IsIndirectlyRecursive reports whether node lies on a directed cycle of
// length >= 2. A direct self-loop alone does not count: the reachability
// computation is seeded from node's successors with the self-edge
// removed, and the node must be reached from there.
//
// Panics if node is out of range.
func (g *Graph) IsIndirectlyRecursive(node int) bool {
	g.checkNode(node)
	seeds := g.outbound[node].MutableCopy()
	seeds.Clear(node)
	return g.closure(seeds.Freeze(), Down).Get(node)
}

// DisjointNodes returns the nodes whose reachability is private: no other
// node's closure contains them, and their own closure (minus self)
// overlaps no other node's closure. Orphan nodes are trivially disjoint.
//
// The computation materializes every node's closure once and reduces
// across them, O(N^2) in edge-set operations.
func (g *Graph) DisjointNodes() *bitvec.Vector {
	n := g.Size()
	closures := make([]*bitvec.Vector, n)
	for i := 0; i < n; i++ {
		closures[i] = g.ClosureOf(i)
	}

	disjoint := bitvec.New()
	for i := 0; i < n; i++ {
		own := closures[i].MutableCopy()
		own.Clear(i)

		private := true
		for j := 0; j < n && private; j++ {
			if j == i {
				continue
			}
			if closures[j].Get(i) || own.Intersects(closures[j]) {
				private = false
			}
		}
		if private {
			disjoint.Set(i)
		}
	}
	return disjoint.Freeze()
}
