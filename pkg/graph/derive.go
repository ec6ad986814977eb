package graph

import (
	"fmt"
	"sort"
)

// Omitting builds a new graph that excludes the given nodes. Surviving
// nodes are renumbered compactly: each index drops by the count of
// removed indices strictly below it, and every surviving edge is remapped
// through the same function. Edges touching a removed node are dropped.
//
// The removal list must be duplicate-free and in range; ErrDuplicateOmit
// or ErrIndexOutOfRange is returned otherwise. Callers must not mix
// indices of the old and new graph after renumbering.
func (g *Graph) Omitting(nodes ...int) (*Graph, error) {
	removed := make([]int, len(nodes))
	copy(removed, nodes)
	sort.Ints(removed)

	for i, n := range removed {
		if n < 0 || n >= g.Size() {
			return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, n)
		}
		if i > 0 && removed[i-1] == n {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateOmit, n)
		}
	}

	// newIndex[old] is the compacted index, or -1 for removed nodes.
	newIndex := make([]int, g.Size())
	dropped := 0
	for old := 0; old < g.Size(); old++ {
		if dropped < len(removed) && removed[dropped] == old {
			newIndex[old] = -1
			dropped++
			continue
		}
		newIndex[old] = old - dropped
	}

	b := NewBuilder(g.Size() - len(removed))
	g.edges(func(from, to int) {
		nf, nt := newIndex[from], newIndex[to]
		if nf < 0 || nt < 0 {
			return
		}
		// endpoints are in range by construction of newIndex
		_ = b.AddEdge(nf, nt)
	})
	return b.Build(), nil
}

// Diff compares g against other and returns two derived graphs: removed
// holds the edges present in g but absent from other, added the edges
// present in other but absent from g. Both are sized to the larger of the
// two graphs; an edge endpoint that only exists in one graph counts as
// absent from the other.
func (g *Graph) Diff(other *Graph) (added, removed *Graph) {
	n := g.Size()
	if other.Size() > n {
		n = other.Size()
	}

	addedB := NewBuilder(n)
	removedB := NewBuilder(n)

	g.edges(func(from, to int) {
		if from >= other.Size() || to >= other.Size() || !other.outbound[from].Get(to) {
			_ = removedB.AddEdge(from, to)
		}
	})
	other.edges(func(from, to int) {
		if from >= g.Size() || to >= g.Size() || !g.outbound[from].Get(to) {
			_ = addedB.AddEdge(from, to)
		}
	})

	return addedB.Build(), removedB.Build()
}

// ToPairSet materializes the whole edge relation as a dense [PairSet]
// with one membership bit per possible edge.
func (g *Graph) ToPairSet() *PairSet {
	s := NewPairSet(g.Size())
	g.edges(func(from, to int) {
		s.Add(from, to)
	})
	return s
}
