package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/bitgraph-dev/bitgraph/pkg/graph"
)

// Options configures DOT output.
type Options struct {
	// Labels maps node indices to display names. Nodes beyond the slice
	// (or with an empty entry) fall back to their numeric index.
	Labels []string

	// Scores shades each node by its score, scaled against the largest
	// entry. Must be empty or have one entry per node.
	Scores []float64

	// HighlightTopLevel draws top-level nodes with a bold outline.
	HighlightTopLevel bool
}

// ToDOT converts a graph to Graphviz DOT format. The resulting string
// can be rendered with [SVG] or any external Graphviz tool.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	top := g.TopLevelNodes()
	maxScore := 0.0
	for _, s := range opts.Scores {
		if s > maxScore {
			maxScore = s
		}
	}

	for node := 0; node < g.Size(); node++ {
		attrs := nodeAttrs(node, opts, maxScore, opts.HighlightTopLevel && top.Get(node))
		fmt.Fprintf(&buf, "  n%d [%s];\n", node, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for from := 0; from < g.Size(); from++ {
		g.OutboundOf(from).ForEachSetBit(func(to int) bool {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", from, to)
			return true
		})
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(node int, opts Options, maxScore float64, highlight bool) []string {
	label := fmt.Sprintf("%d", node)
	if node < len(opts.Labels) && opts.Labels[node] != "" {
		label = opts.Labels[node]
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	if node < len(opts.Scores) && maxScore > 0 {
		// Shade from white (score 0) toward a warm orange (top score).
		frac := opts.Scores[node] / maxScore
		attrs = append(attrs, fmt.Sprintf("fillcolor=\"#ff8c00%02x\"", int(frac*255)))
	}
	if highlight {
		attrs = append(attrs, "penwidth=2.5")
	}
	return attrs
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
