package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/bitgraph-dev/bitgraph/pkg/errors"
	"github.com/bitgraph-dev/bitgraph/pkg/render"
	"github.com/bitgraph-dev/bitgraph/pkg/score"
)

// renderCommand creates the render command, which produces Graphviz
// output for a graph.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format  string
		output  string
		shadeBy string
	)

	cmd := &cobra.Command{
		Use:   "render <graph-file>",
		Short: "Render a graph as Graphviz DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			if err := apperrors.ValidateFormat(format, "dot", "svg"); err != nil {
				return err
			}

			opts := render.Options{HighlightTopLevel: true}
			if shadeBy != "" {
				if err := apperrors.ValidateAlgorithm(shadeBy, score.AlgoPageRank, score.AlgoEigenvector); err != nil {
					return err
				}
				scores, err := c.runScore(g, shadeBy)
				if err != nil {
					return err
				}
				opts.Scores = scores
			}

			data := []byte(render.ToDOT(g, opts))
			if format == "svg" {
				if data, err = render.SVG(cmd.Context(), string(data)); err != nil {
					return err
				}
			}

			if output == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			printSuccess("Rendered %s", format)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format (dot, svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&shadeBy, "shade-by", "", "shade nodes by score (pagerank, eigenvector)")
	return cmd
}
