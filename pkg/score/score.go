package score

import (
	"errors"
	"math"

	"github.com/bitgraph-dev/bitgraph/pkg/graph"
)

var (
	// ErrInvalidConfig is returned when a configuration fails validation.
	// The wrapped message names the offending field.
	ErrInvalidConfig = errors.New("invalid scoring configuration")
)

// Algorithm names accepted by [ByName].
const (
	AlgoEigenvector = "eigenvector"
	AlgoPageRank    = "pagerank"
)

// Func is a scoring algorithm bound to its configuration, ready to apply
// to a graph.
type Func func(g *graph.Graph) ([]float64, error)

// ByName returns the named algorithm with its default configuration.
// Returns ErrInvalidConfig for an unknown name.
func ByName(name string) (Func, error) {
	switch name {
	case AlgoEigenvector:
		cfg := DefaultEigenvectorConfig()
		return func(g *graph.Graph) ([]float64, error) { return Eigenvector(g, cfg) }, nil
	case AlgoPageRank:
		cfg := DefaultPageRankConfig()
		return func(g *graph.Graph) ([]float64, error) { return PageRank(g, cfg) }, nil
	default:
		return nil, errors.Join(ErrInvalidConfig, errors.New("unknown algorithm "+name))
	}
}

// maxDelta returns the largest absolute per-element difference.
func maxDelta(a, b []float64) float64 {
	max := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > max {
			max = d
		}
	}
	return max
}

// scaleToUnitMax scales the vector so its largest entry is 1. A zero
// vector is left untouched.
func scaleToUnitMax(v []float64) {
	max := 0.0
	for _, x := range v {
		if x > max {
			max = x
		}
	}
	if max == 0 {
		return
	}
	for i := range v {
		v[i] /= max
	}
}
