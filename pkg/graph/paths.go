package graph

import (
	"github.com/bitgraph-dev/bitgraph/pkg/bitvec"
)

// PathsBetween returns the simple paths from src to dst over outbound
// edges, sorted ascending by the [Path] total order (shortest first).
//
// The search keeps a [PairSet] of edges already followed; an edge is
// traversed at most once across the whole enumeration, which bounds the
// work on dense graphs. A direct edge src -> dst is emitted before the
// generic extension, which would otherwise miss it on the first level.
//
// Panics if src or dst is out of range.
func (g *Graph) PathsBetween(src, dst int) []*Path {
	g.checkNode(src)
	g.checkNode(dst)
	return g.enumeratePaths(src, dst, g.adjacency(Down), false)
}

// UndirectedPathsBetween is [Graph.PathsBetween] over the union of
// inbound and outbound edges, so direction is ignored.
//
// Panics if src or dst is out of range.
func (g *Graph) UndirectedPathsBetween(src, dst int) []*Path {
	g.checkNode(src)
	g.checkNode(dst)
	return g.enumeratePaths(src, dst, g.NeighborsOf, true)
}

// ShortestPathBetween returns the shortest path from src to dst, or, when
// no directed path exists, the shortest from dst to src. Returns nil when
// the nodes are fully disconnected.
//
// Panics if src or dst is out of range.
func (g *Graph) ShortestPathBetween(src, dst int) *Path {
	paths := g.PathsBetween(src, dst)
	if len(paths) == 0 {
		paths = g.PathsBetween(dst, src)
	}
	if len(paths) == 0 {
		return nil
	}
	return paths[0]
}

// ShortestUndirectedPathBetween returns the shortest undirected path from
// src to dst, or nil when they are disconnected.
//
// Panics if src or dst is out of range.
func (g *Graph) ShortestUndirectedPathBetween(src, dst int) *Path {
	paths := g.UndirectedPathsBetween(src, dst)
	if len(paths) == 0 {
		return nil
	}
	return paths[0]
}

// Distance returns the number of edges on the shortest path between a and
// b, trying a -> b first and b -> a as fallback. Returns -1 when the
// nodes are fully disconnected.
//
// Panics if a or b is out of range.
func (g *Graph) Distance(a, b int) int {
	p := g.ShortestPathBetween(a, b)
	if p == nil {
		return -1
	}
	return p.Len() - 1
}

// enumeratePaths runs the shared path search. adj yields the adjacency
// set per node; undirected additionally marks the mirror of each followed
// edge so an undirected edge is never walked back.
func (g *Graph) enumeratePaths(src, dst int, adj func(int) *bitvec.Vector, undirected bool) []*Path {
	visited := NewPairSet(g.Size())
	var found []*Path

	markEdge := func(from, to int) {
		visited.Add(from, to)
		if undirected {
			visited.Add(to, from)
		}
	}

	if adj(src).Get(dst) {
		markEdge(src, dst)
		found = append(found, NewPath(src, dst))
	}

	current := NewPath(src)
	g.extendPath(current, dst, adj, visited, markEdge, &found)

	SortPaths(found)
	return found
}

// extendPath grows current along every unvisited edge from its tail,
// recording a finished path whenever the tail reaches dst. Nodes already
// on the path are skipped so only simple paths are produced; recursion
// depth is bounded by the longest simple path.
func (g *Graph) extendPath(current *Path, dst int, adj func(int) *bitvec.Vector, visited *PairSet, markEdge func(int, int), found *[]*Path) {
	tail := current.Last()
	adj(tail).ForEachSetBit(func(nb int) bool {
		if visited.Contains(tail, nb) || current.ContainsNode(nb) {
			return true
		}
		markEdge(tail, nb)
		current.Add(nb)
		if nb == dst {
			*found = append(*found, current.Copy())
		} else {
			g.extendPath(current, dst, adj, visited, markEdge, found)
		}
		current.dropLast()
		return true
	})
}
