package graph

import (
	"fmt"

	"github.com/bitgraph-dev/bitgraph/pkg/bitvec"
)

// Builder accumulates directed edges and freezes them into a [Graph].
// The node count is fixed at construction; edges referencing nodes outside
// [0, n) are rejected. A Builder is single-use - calling Build leaves it
// empty of ownership over the accumulated edge sets.
//
// Builder is not safe for concurrent use.
type Builder struct {
	out []*bitvec.MutableVector
}

// NewBuilder creates a builder for a graph with n nodes and no edges.
func NewBuilder(n int) *Builder {
	out := make([]*bitvec.MutableVector, n)
	for i := range out {
		out[i] = bitvec.New()
	}
	return &Builder{out: out}
}

// Size returns the node count the builder was created with.
func (b *Builder) Size() int { return len(b.out) }

// AddEdge records the directed edge from -> to. Adding an existing edge is
// a no-op. Returns ErrIndexOutOfRange if either endpoint is outside [0, Size).
func (b *Builder) AddEdge(from, to int) error {
	if from < 0 || from >= len(b.out) {
		return fmt.Errorf("%w: from %d", ErrIndexOutOfRange, from)
	}
	if to < 0 || to >= len(b.out) {
		return fmt.Errorf("%w: to %d", ErrIndexOutOfRange, to)
	}
	b.out[from].Set(to)
	return nil
}

// Build freezes the accumulated edges into an immutable Graph. The inbound
// edge sets are derived from the outbound sets, so the mirror invariant
// holds by construction.
func (b *Builder) Build() *Graph {
	out := make([]*bitvec.Vector, len(b.out))
	for i, m := range b.out {
		out[i] = m.Freeze()
		b.out[i] = nil // builder is spent; edges now belong to the graph
	}
	g := &Graph{outbound: out, inbound: invert(out)}
	g.deriveLevels()
	return g
}
