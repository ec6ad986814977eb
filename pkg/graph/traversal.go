package graph

import (
	"github.com/bitgraph-dev/bitgraph/pkg/bitvec"
)

// Direction selects which edge sets a search follows.
type Direction int

const (
	// Down follows outbound edges (from a node to its successors).
	Down Direction = iota
	// Up follows inbound edges (from a node to its predecessors).
	Up
)

// Visitor receives pre-order and post-order callbacks during a walk.
// Enter is called before a node's successors are explored, Exit after.
// Depth is 0 for traversal seeds and grows by one per edge followed.
type Visitor interface {
	Enter(node, depth int)
	Exit(node, depth int)
}

// adjacency returns the edge-set accessor for a direction.
func (g *Graph) adjacency(dir Direction) func(int) *bitvec.Vector {
	if dir == Up {
		return func(n int) *bitvec.Vector { return g.inbound[n] }
	}
	return func(n int) *bitvec.Vector { return g.outbound[n] }
}

// Walk traverses the whole graph depth-first over outbound edges, calling
// the visitor pre- and post-order for every node exactly once. Traversal
// is seeded from [Graph.TopLevelNodes]; any node still unvisited
// afterwards (for example a cycle component with no acyclic root) is used
// as an additional seed, so coverage is total even for graphs with no
// roots at all.
func (g *Graph) Walk(v Visitor) {
	seen := bitvec.New()
	g.topLevel.ForEachSetBit(func(seed int) bool {
		g.walkFrom(seed, Down, v, seen)
		return true
	})
	for seed := 0; seed < g.Size(); seed++ {
		if !seen.Get(seed) {
			g.walkFrom(seed, Down, v, seen)
		}
	}
}

// WalkFrom is [Graph.Walk] restricted to the closure of one start node.
// Panics if start is out of range.
func (g *Graph) WalkFrom(start int, v Visitor) {
	g.checkNode(start)
	g.walkFrom(start, Down, v, bitvec.New())
}

// WalkUpwards mirrors [Graph.Walk] over inbound edges, seeded from
// [Graph.BottomLevelNodes].
func (g *Graph) WalkUpwards(v Visitor) {
	seen := bitvec.New()
	g.bottomLevel.ForEachSetBit(func(seed int) bool {
		g.walkFrom(seed, Up, v, seen)
		return true
	})
	for seed := 0; seed < g.Size(); seed++ {
		if !seen.Get(seed) {
			g.walkFrom(seed, Up, v, seen)
		}
	}
}

// WalkUpwardsFrom is [Graph.WalkUpwards] restricted to the reverse
// closure of one start node. Panics if start is out of range.
func (g *Graph) WalkUpwardsFrom(start int, v Visitor) {
	g.checkNode(start)
	g.walkFrom(start, Up, v, bitvec.New())
}

// walkFrame is one entry of the explicit walk stack. cursor is the next
// candidate neighbor index to probe via NextSetBit.
type walkFrame struct {
	node   int
	depth  int
	cursor int
}

// walkFrom runs one depth-first walk seeded at start, sharing the seen
// vector across seeds so each node is entered at most once per Walk call.
// The walk is iterative; recursion depth on adversarially deep chains
// would otherwise track the closure depth.
func (g *Graph) walkFrom(start int, dir Direction, v Visitor, seen *bitvec.MutableVector) {
	if seen.Get(start) {
		return
	}
	adj := g.adjacency(dir)

	seen.Set(start)
	v.Enter(start, 0)
	stack := []walkFrame{{node: start, depth: 0, cursor: 0}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		next := -1
		for cur := adj(top.node).NextSetBit(top.cursor); cur >= 0; cur = adj(top.node).NextSetBit(top.cursor) {
			top.cursor = cur + 1
			if !seen.Get(cur) {
				next = cur
				break
			}
		}
		if next < 0 {
			v.Exit(top.node, top.depth)
			stack = stack[:len(stack)-1]
			continue
		}
		seen.Set(next)
		v.Enter(next, top.depth+1)
		stack = append(stack, walkFrame{node: next, depth: top.depth + 1, cursor: 0})
	}
}

// DepthFirstSearch explores the graph from start along the given
// direction and delivers every discovered node to consume exactly once,
// in post-order: a node is delivered only after all nodes discovered
// through it have been delivered. The start node itself is delivered only
// if the search reaches it again over an edge (i.e. it lies on a cycle).
//
// Panics if start is out of range.
func (g *Graph) DepthFirstSearch(start int, dir Direction, consume func(node int)) {
	g.abortableDFS(start, dir, func(node int) bool {
		consume(node)
		return true
	})
}

// AbortableDepthFirstSearch is [Graph.DepthFirstSearch] driven by a
// predicate: the first false return aborts the whole search and the call
// returns true. Exhausting the search without an abort returns false.
func (g *Graph) AbortableDepthFirstSearch(start int, dir Direction, visit func(node int) bool) bool {
	return g.abortableDFS(start, dir, visit)
}

type dfsFrame struct {
	node    int
	cursor  int
	deliver bool
}

func (g *Graph) abortableDFS(start int, dir Direction, visit func(node int) bool) bool {
	g.checkNode(start)
	adj := g.adjacency(dir)
	seen := bitvec.New()

	// The seed frame is not delivered; only nodes reached over an edge
	// are. A cycle back to start discovers it like any other node.
	stack := []dfsFrame{{node: start, cursor: 0}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		next := -1
		for cur := adj(top.node).NextSetBit(top.cursor); cur >= 0; cur = adj(top.node).NextSetBit(top.cursor) {
			top.cursor = cur + 1
			if !seen.Get(cur) {
				next = cur
				break
			}
		}
		if next < 0 {
			if top.deliver && !visit(top.node) {
				return true
			}
			stack = stack[:len(stack)-1]
			continue
		}
		seen.Set(next)
		stack = append(stack, dfsFrame{node: next, cursor: 0, deliver: true})
	}
	return false
}

// BreadthFirstSearch explores the graph from start along the given
// direction and delivers nodes to consume in frontier order: all nodes at
// distance d are delivered before any node at distance d+1. Every node is
// delivered at most once - a node is marked seen the moment it is first
// discovered, so reachability from two members of the same frontier does
// not deliver it twice. The start node itself is delivered only if an
// edge leads back to it.
//
// Panics if start is out of range.
func (g *Graph) BreadthFirstSearch(start int, dir Direction, consume func(node int)) {
	g.abortableBFS(start, dir, func(node int) bool {
		consume(node)
		return true
	})
}

// AbortableBreadthFirstSearch is [Graph.BreadthFirstSearch] driven by a
// predicate: the first false return aborts the whole search and the call
// returns true. Exhausting the search without an abort returns false.
func (g *Graph) AbortableBreadthFirstSearch(start int, dir Direction, visit func(node int) bool) bool {
	return g.abortableBFS(start, dir, visit)
}

func (g *Graph) abortableBFS(start int, dir Direction, visit func(node int) bool) bool {
	g.checkNode(start)
	adj := g.adjacency(dir)
	seen := bitvec.New()

	queue := []int{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		aborted := false
		adj(node).ForEachSetBit(func(nb int) bool {
			if seen.Get(nb) {
				return true
			}
			seen.Set(nb)
			if !visit(nb) {
				aborted = true
				return false
			}
			queue = append(queue, nb)
			return true
		})
		if aborted {
			return true
		}
	}
	return false
}
