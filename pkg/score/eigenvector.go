package score

import (
	"fmt"
	"math"

	"github.com/bitgraph-dev/bitgraph/pkg/graph"
)

// EigenvectorConfig parameterizes [Eigenvector].
type EigenvectorConfig struct {
	// MaxIterations bounds the power iteration. Must be positive.
	MaxIterations int
	// MinDifference stops the iteration once the largest per-node change
	// between rounds falls below it. Must be non-negative.
	MinDifference float64
	// UseInEdges scores nodes by who points at them (the usual notion of
	// centrality); when false, a node's score flows from the nodes it
	// points at.
	UseInEdges bool
	// IgnoreSelfEdges excludes direct self-loops from the accumulation.
	IgnoreSelfEdges bool
	// Normalize scales the final vector so the largest score is 1.
	Normalize bool
}

// DefaultEigenvectorConfig returns the standard parameters: 100
// iterations, 1e-6 convergence, in-edges, self-edges ignored, normalized.
func DefaultEigenvectorConfig() EigenvectorConfig {
	return EigenvectorConfig{
		MaxIterations:   100,
		MinDifference:   1e-6,
		UseInEdges:      true,
		IgnoreSelfEdges: true,
		Normalize:       true,
	}
}

func (c EigenvectorConfig) validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: MaxIterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	if c.MinDifference < 0 {
		return fmt.Errorf("%w: MinDifference must be non-negative, got %g", ErrInvalidConfig, c.MinDifference)
	}
	return nil
}

// Eigenvector computes eigenvector centrality by power iteration: each
// round a node's score becomes the sum of its neighbors' previous scores
// along the configured edge direction, and the vector is renormalized to
// unit Euclidean length to keep the iteration stable. Iteration stops
// after cfg.MaxIterations rounds or once the largest per-node change
// drops below cfg.MinDifference.
func Eigenvector(g *graph.Graph, cfg EigenvectorConfig) ([]float64, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	n := g.Size()
	scores := make([]float64, n)
	if n == 0 {
		return scores, nil
	}
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	next := make([]float64, n)
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		for node := 0; node < n; node++ {
			edges := g.InboundOf(node)
			if !cfg.UseInEdges {
				edges = g.OutboundOf(node)
			}
			sum := 0.0
			edges.ForEachSetBit(func(nb int) bool {
				if cfg.IgnoreSelfEdges && nb == node {
					return true
				}
				sum += scores[nb]
				return true
			})
			next[node] = sum
		}

		norm := 0.0
		for _, x := range next {
			norm += x * x
		}
		if norm = math.Sqrt(norm); norm > 0 {
			for i := range next {
				next[i] /= norm
			}
		}

		delta := maxDelta(scores, next)
		copy(scores, next)
		if delta < cfg.MinDifference {
			break
		}
	}

	if cfg.Normalize {
		scaleToUnitMax(scores)
	}
	return scores, nil
}
