package graph

import (
	"fmt"
	"sort"
	"strings"
)

// Path is an ordered sequence of node indices describing a walk through a
// graph. Nodes are not required to be unique or cycle-free; path search
// uses Path both as working state and as a result value.
//
// Paths are created fresh per search and never shared across concurrent
// calls.
type Path struct {
	nodes []int
}

// NewPath creates a path over the given nodes.
func NewPath(nodes ...int) *Path {
	p := &Path{nodes: make([]int, len(nodes))}
	copy(p.nodes, nodes)
	return p
}

// Len returns the number of nodes on the path.
func (p *Path) Len() int { return len(p.nodes) }

// At returns the node at position i. Panics if i is out of range.
func (p *Path) At(i int) int { return p.nodes[i] }

// First returns the first node. Panics on an empty path.
func (p *Path) First() int { return p.nodes[0] }

// Last returns the last node. Panics on an empty path.
func (p *Path) Last() int { return p.nodes[len(p.nodes)-1] }

// Nodes returns the nodes as a fresh slice.
func (p *Path) Nodes() []int {
	out := make([]int, len(p.nodes))
	copy(out, p.nodes)
	return out
}

// Add appends a single node in place.
func (p *Path) Add(node int) {
	p.nodes = append(p.nodes, node)
}

// Append appends all nodes of other in place.
func (p *Path) Append(other *Path) {
	p.nodes = append(p.nodes, other.nodes...)
}

// dropLast removes the last node. Used by path search when backtracking.
func (p *Path) dropLast() {
	p.nodes = p.nodes[:len(p.nodes)-1]
}

// Replace splices sub into the path in place of the node at index i.
// Panics if i is out of range.
func (p *Path) Replace(i int, sub *Path) {
	if i < 0 || i >= len(p.nodes) {
		panic(fmt.Sprintf("graph: Replace index %d out of range [0,%d)", i, len(p.nodes)))
	}
	spliced := make([]int, 0, len(p.nodes)-1+len(sub.nodes))
	spliced = append(spliced, p.nodes[:i]...)
	spliced = append(spliced, sub.nodes...)
	spliced = append(spliced, p.nodes[i+1:]...)
	p.nodes = spliced
}

// Reversed returns a new path with the nodes in reverse order.
func (p *Path) Reversed() *Path {
	r := &Path{nodes: make([]int, len(p.nodes))}
	for i, n := range p.nodes {
		r.nodes[len(p.nodes)-1-i] = n
	}
	return r
}

// ParentPath returns a new path with the last node dropped.
// The parent of an empty path is an empty path.
func (p *Path) ParentPath() *Path {
	if len(p.nodes) == 0 {
		return NewPath()
	}
	return NewPath(p.nodes[:len(p.nodes)-1]...)
}

// ChildPath returns a new path with the first node dropped.
// The child of an empty path is an empty path.
func (p *Path) ChildPath() *Path {
	if len(p.nodes) == 0 {
		return NewPath()
	}
	return NewPath(p.nodes[1:]...)
}

// ContainsNode reports whether node occurs anywhere on the path.
func (p *Path) ContainsNode(node int) bool {
	for _, n := range p.nodes {
		if n == node {
			return true
		}
	}
	return false
}

// Contains reports whether sub occurs as a contiguous subsequence of p.
// The empty path is contained in every path.
func (p *Path) Contains(sub *Path) bool {
	if len(sub.nodes) == 0 {
		return true
	}
	if len(sub.nodes) > len(p.nodes) {
		return false
	}
	for start := 0; start+len(sub.nodes) <= len(p.nodes); start++ {
		match := true
		for i, n := range sub.nodes {
			if p.nodes[start+i] != n {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Copy returns a deep value copy.
func (p *Path) Copy() *Path {
	return NewPath(p.nodes...)
}

// Equals reports whether p and other contain the same nodes in the same order.
func (p *Path) Equals(other *Path) bool {
	return p.Compare(other) == 0
}

// Compare orders paths by length first, then element-wise. Shorter paths
// sort before longer ones; equal-length paths compare lexicographically.
// Returns -1, 0, or 1.
func (p *Path) Compare(other *Path) int {
	if len(p.nodes) != len(other.nodes) {
		if len(p.nodes) < len(other.nodes) {
			return -1
		}
		return 1
	}
	for i, n := range p.nodes {
		if n != other.nodes[i] {
			if n < other.nodes[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// String renders the path as "0 -> 1 -> 2".
func (p *Path) String() string {
	parts := make([]string, len(p.nodes))
	for i, n := range p.nodes {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, " -> ")
}

// SortPaths sorts paths in place ascending by the Path total order.
func SortPaths(paths []*Path) {
	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].Compare(paths[j]) < 0
	})
}
