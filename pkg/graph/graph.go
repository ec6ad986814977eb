package graph

import (
	"errors"
	"fmt"

	"github.com/bitgraph-dev/bitgraph/pkg/bitvec"
)

var (
	// ErrLengthMismatch is returned by [FromEdgePairs] when the outbound and
	// inbound slices have different lengths.
	ErrLengthMismatch = errors.New("outbound and inbound lengths differ")

	// ErrMirrorInvariant is returned by [FromEdgePairs] when invariant
	// checking is enabled and outbound[i].Get(j) != inbound[j].Get(i) for
	// some pair. This indicates the caller assembled inconsistent edge sets.
	ErrMirrorInvariant = errors.New("outbound and inbound edge sets are not mirrors")

	// ErrIndexOutOfRange is returned by construction and derivation
	// operations when a node index falls outside [0, Size).
	ErrIndexOutOfRange = errors.New("node index out of range")

	// ErrDuplicateOmit is returned by [Graph.Omitting] when the removal list
	// names the same node twice. Duplicates would corrupt the re-indexing
	// arithmetic, so they are rejected up front.
	ErrDuplicateOmit = errors.New("duplicate node in removal list")

	// ErrUnsupportedVersion is returned by [Decode] when the serialized
	// format version is not supported.
	ErrUnsupportedVersion = errors.New("unsupported graph format version")

	// ErrCorruptData is returned by [Decode] when the byte stream is
	// truncated or a node's bit-set encoding cannot be decoded.
	ErrCorruptData = errors.New("corrupt graph data")
)

// CheckInvariants enables the O(edges) mirror consistency check in
// [FromEdgePairs]. It is off by default; tests and debug builds turn it on.
var CheckInvariants = false

// Graph is a directed graph over the integer nodes [0, Size). Each node
// carries two bit vectors: outbound[i].Get(j) holds iff there is an edge
// i -> j, and inbound[j].Get(i) mirrors it.
//
// A Graph is immutable after construction - no operation mutates the edge
// sets in place, and structural changes ([Graph.Omitting], [Graph.Diff])
// produce fresh instances. Any number of goroutines may therefore query
// the same Graph concurrently without locking; every traversal allocates
// its own working state.
type Graph struct {
	outbound []*bitvec.Vector
	inbound  []*bitvec.Vector

	// Derived at construction: nodes with outbound but no inbound edges,
	// and nodes with inbound but no outbound edges. Nodes with no edges at
	// all belong to neither.
	topLevel    *bitvec.Vector
	bottomLevel *bitvec.Vector
}

// FromEdges builds a graph from per-node outbound edge sets. The inbound
// sets are computed as the structural inverse: for every set bit (i,j) in
// outbound, bit (j,i) is set in inbound.
//
// Returns ErrIndexOutOfRange if any outbound set references a node >= len(outbound).
// A nil entry is treated as an empty edge set.
func FromEdges(outbound []*bitvec.Vector) (*Graph, error) {
	n := len(outbound)
	out := make([]*bitvec.Vector, n)
	for i, v := range outbound {
		if v == nil {
			out[i] = bitvec.New().Freeze()
			continue
		}
		if hi := highestBit(v); hi >= n {
			return nil, fmt.Errorf("%w: edge %d -> %d in a %d-node graph", ErrIndexOutOfRange, i, hi, n)
		}
		out[i] = v.Copy()
	}

	in := invert(out)
	g := &Graph{outbound: out, inbound: in}
	g.deriveLevels()
	return g, nil
}

// FromEdgePairs builds a graph from explicit outbound and inbound edge
// sets. Returns ErrLengthMismatch if the slices differ in length. When
// [CheckInvariants] is enabled, the mirror invariant is verified and
// ErrMirrorInvariant returned on violation; the check is O(edges) and
// skipped otherwise.
func FromEdgePairs(outbound, inbound []*bitvec.Vector) (*Graph, error) {
	if len(outbound) != len(inbound) {
		return nil, fmt.Errorf("%w: %d outbound vs %d inbound", ErrLengthMismatch, len(outbound), len(inbound))
	}
	n := len(outbound)
	out := make([]*bitvec.Vector, n)
	in := make([]*bitvec.Vector, n)
	for i := 0; i < n; i++ {
		out[i] = copyOrEmpty(outbound[i])
		in[i] = copyOrEmpty(inbound[i])
	}

	if CheckInvariants {
		for i := 0; i < n; i++ {
			if hi := highestBit(out[i]); hi >= n {
				return nil, fmt.Errorf("%w: edge %d -> %d in a %d-node graph", ErrIndexOutOfRange, i, hi, n)
			}
			mismatch := -1
			out[i].ForEachSetBit(func(j int) bool {
				if !in[j].Get(i) {
					mismatch = j
					return false
				}
				return true
			})
			if mismatch >= 0 {
				return nil, fmt.Errorf("%w: edge %d -> %d missing from inbound", ErrMirrorInvariant, i, mismatch)
			}
			in[i].ForEachSetBit(func(j int) bool {
				if !out[j].Get(i) {
					mismatch = j
					return false
				}
				return true
			})
			if mismatch >= 0 {
				return nil, fmt.Errorf("%w: edge %d -> %d missing from outbound", ErrMirrorInvariant, mismatch, i)
			}
		}
	}

	g := &Graph{outbound: out, inbound: in}
	g.deriveLevels()
	return g, nil
}

// Size returns the number of nodes.
func (g *Graph) Size() int { return len(g.outbound) }

// EdgeCount returns the total number of directed edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, v := range g.outbound {
		total += v.Cardinality()
	}
	return total
}

// OutboundOf returns the destinations of node's outbound edges.
// Panics if node is out of range. The returned vector is a read-only view
// owned by the graph and must not be frozen back into a builder.
func (g *Graph) OutboundOf(node int) *bitvec.Vector {
	g.checkNode(node)
	return g.outbound[node]
}

// InboundOf returns the sources of node's inbound edges.
// Panics if node is out of range.
func (g *Graph) InboundOf(node int) *bitvec.Vector {
	g.checkNode(node)
	return g.inbound[node]
}

// HasEdge reports whether the edge from -> to exists.
// Panics if either index is out of range.
func (g *Graph) HasEdge(from, to int) bool {
	g.checkNode(from)
	g.checkNode(to)
	return g.outbound[from].Get(to)
}

// NeighborsOf returns the union of node's inbound and outbound edge sets,
// i.e. its adjacency under the undirected view of the graph.
func (g *Graph) NeighborsOf(node int) *bitvec.Vector {
	g.checkNode(node)
	u := g.outbound[node].MutableCopy()
	u.Or(g.inbound[node])
	return u.Freeze()
}

// TopLevelNodes returns the nodes that have at least one outbound edge but
// no inbound edge (candidate roots). The returned vector is cached and
// shared; callers must not mutate a copy back into the graph.
func (g *Graph) TopLevelNodes() *bitvec.Vector { return g.topLevel }

// BottomLevelNodes returns the nodes that have at least one inbound edge
// but no outbound edge (candidate leaves).
func (g *Graph) BottomLevelNodes() *bitvec.Vector { return g.bottomLevel }

// TopLevelOrOrphanNodes returns the union of [Graph.TopLevelNodes] and the
// orphan nodes (no edges at all).
func (g *Graph) TopLevelOrOrphanNodes() *bitvec.Vector {
	u := g.topLevel.MutableCopy()
	for i := 0; i < g.Size(); i++ {
		if g.outbound[i].IsEmpty() && g.inbound[i].IsEmpty() {
			u.Set(i)
		}
	}
	return u.Freeze()
}

// Connectors returns the nodes with both inbound and outbound edges.
func (g *Graph) Connectors() *bitvec.Vector {
	c := bitvec.New()
	for i := 0; i < g.Size(); i++ {
		if !g.outbound[i].IsEmpty() && !g.inbound[i].IsEmpty() {
			c.Set(i)
		}
	}
	return c.Freeze()
}

// Orphans returns the nodes with neither inbound nor outbound edges.
func (g *Graph) Orphans() *bitvec.Vector {
	o := bitvec.New()
	for i := 0; i < g.Size(); i++ {
		if g.outbound[i].IsEmpty() && g.inbound[i].IsEmpty() {
			o.Set(i)
		}
	}
	return o.Freeze()
}

// edges calls fn for every directed edge (from, to) in ascending order of
// from, then to.
func (g *Graph) edges(fn func(from, to int)) {
	for from := 0; from < g.Size(); from++ {
		g.outbound[from].ForEachSetBit(func(to int) bool {
			fn(from, to)
			return true
		})
	}
}

// checkNode panics if node is outside [0, Size). Out-of-range indices on
// query operations are programmer errors, mirroring slice indexing.
func (g *Graph) checkNode(node int) {
	if node < 0 || node >= g.Size() {
		panic(fmt.Sprintf("graph: node index %d out of range [0,%d)", node, g.Size()))
	}
}

func (g *Graph) deriveLevels() {
	top := bitvec.New()
	bottom := bitvec.New()
	for i := 0; i < g.Size(); i++ {
		hasOut := !g.outbound[i].IsEmpty()
		hasIn := !g.inbound[i].IsEmpty()
		if hasOut && !hasIn {
			top.Set(i)
		}
		if hasIn && !hasOut {
			bottom.Set(i)
		}
	}
	g.topLevel = top.Freeze()
	g.bottomLevel = bottom.Freeze()
}

// invert computes the structural inverse of a set of outbound vectors.
func invert(outbound []*bitvec.Vector) []*bitvec.Vector {
	n := len(outbound)
	in := make([]*bitvec.MutableVector, n)
	for i := range in {
		in[i] = bitvec.New()
	}
	for from, v := range outbound {
		v.ForEachSetBit(func(to int) bool {
			in[to].Set(from)
			return true
		})
	}
	frozen := make([]*bitvec.Vector, n)
	for i, m := range in {
		frozen[i] = m.Freeze()
	}
	return frozen
}

func copyOrEmpty(v *bitvec.Vector) *bitvec.Vector {
	if v == nil {
		return bitvec.New().Freeze()
	}
	return v.Copy()
}

func highestBit(v *bitvec.Vector) int {
	hi := -1
	v.ForEachSetBitDescending(func(i int) bool {
		hi = i
		return false
	})
	return hi
}
