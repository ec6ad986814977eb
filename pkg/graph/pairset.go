package graph

import (
	"fmt"

	"github.com/bitgraph-dev/bitgraph/pkg/bitvec"
)

// PairSet is a set of directed integer pairs (a, b) bounded by a graph
// size n. Path search uses it to mark edges already considered, and
// [Graph.ToPairSet] uses it to materialize a whole edge relation as one
// dense structure.
//
// The set is backed by a single n*n bit vector, trading space for O(1)
// membership and insert.
type PairSet struct {
	n    int
	bits *bitvec.MutableVector
}

// NewPairSet creates an empty pair set over pairs in [0, n) x [0, n).
func NewPairSet(n int) *PairSet {
	return &PairSet{n: n, bits: bitvec.New()}
}

// Bound returns the exclusive upper bound for pair members.
func (s *PairSet) Bound() int { return s.n }

// Cardinality returns the number of pairs in the set.
func (s *PairSet) Cardinality() int { return s.bits.Cardinality() }

// Add inserts the pair (a, b). Panics if either member is out of range.
func (s *PairSet) Add(a, b int) {
	s.bits.Set(s.index(a, b))
}

// Contains reports whether the pair (a, b) is in the set.
// Panics if either member is out of range.
func (s *PairSet) Contains(a, b int) bool {
	return s.bits.Get(s.index(a, b))
}

// ForEach calls fn for every pair in the set, ordered by a then b.
func (s *PairSet) ForEach(fn func(a, b int)) {
	s.bits.ForEachSetBit(func(i int) bool {
		fn(i/s.n, i%s.n)
		return true
	})
}

func (s *PairSet) index(a, b int) int {
	if a < 0 || a >= s.n || b < 0 || b >= s.n {
		panic(fmt.Sprintf("graph: pair (%d,%d) out of range [0,%d)", a, b, s.n))
	}
	return a*s.n + b
}
