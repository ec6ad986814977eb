package score

import (
	"fmt"

	"github.com/bitgraph-dev/bitgraph/pkg/graph"
)

// PageRankConfig parameterizes [PageRank].
type PageRankConfig struct {
	// MaxIterations bounds the iteration. Must be positive.
	MaxIterations int
	// MinDifference stops the iteration once the largest per-node change
	// between rounds falls below it. Must be non-negative.
	MinDifference float64
	// DampingFactor is the probability of following an edge rather than
	// jumping to a random node. Must lie in (0, 1).
	DampingFactor float64
	// Normalize scales the final vector so the largest score is 1; when
	// false the scores remain a probability distribution summing to 1.
	Normalize bool
}

// DefaultPageRankConfig returns the standard parameters: 100 iterations,
// 1e-6 convergence, damping 0.85, unnormalized.
func DefaultPageRankConfig() PageRankConfig {
	return PageRankConfig{
		MaxIterations: 100,
		MinDifference: 1e-6,
		DampingFactor: 0.85,
	}
}

func (c PageRankConfig) validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: MaxIterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	if c.MinDifference < 0 {
		return fmt.Errorf("%w: MinDifference must be non-negative, got %g", ErrInvalidConfig, c.MinDifference)
	}
	if c.DampingFactor <= 0 || c.DampingFactor >= 1 {
		return fmt.Errorf("%w: DampingFactor must be in (0,1), got %g", ErrInvalidConfig, c.DampingFactor)
	}
	return nil
}

// PageRank computes the stationary rank distribution of the random-surfer
// walk over the graph's outbound edges. Each round distributes every
// node's rank across its successors, damped by cfg.DampingFactor; the
// rank of dangling nodes (no outbound edges) is spread uniformly so the
// total mass stays 1. Iteration stops after cfg.MaxIterations rounds or
// once the largest per-node change drops below cfg.MinDifference.
func PageRank(g *graph.Graph, cfg PageRankConfig) ([]float64, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	n := g.Size()
	ranks := make([]float64, n)
	if n == 0 {
		return ranks, nil
	}
	for i := range ranks {
		ranks[i] = 1.0 / float64(n)
	}

	base := (1 - cfg.DampingFactor) / float64(n)
	next := make([]float64, n)

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		dangling := 0.0
		for node := 0; node < n; node++ {
			if g.OutboundOf(node).IsEmpty() {
				dangling += ranks[node]
			}
		}
		share := cfg.DampingFactor * dangling / float64(n)

		for node := 0; node < n; node++ {
			sum := 0.0
			g.InboundOf(node).ForEachSetBit(func(src int) bool {
				sum += ranks[src] / float64(g.OutboundOf(src).Cardinality())
				return true
			})
			next[node] = base + share + cfg.DampingFactor*sum
		}

		delta := maxDelta(ranks, next)
		copy(ranks, next)
		if delta < cfg.MinDifference {
			break
		}
	}

	if cfg.Normalize {
		scaleToUnitMax(ranks)
	}
	return ranks, nil
}
