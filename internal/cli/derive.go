package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/bitgraph-dev/bitgraph/pkg/errors"
)

// omitCommand creates the omit command, which derives a graph without
// the given nodes.
func (c *CLI) omitCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "omit <graph-file> <node>...",
		Short: "Derive a graph with the given nodes removed",
		Long: `Derive a new graph that omits the given nodes and every edge
touching them. Remaining nodes are renumbered to close the gaps, so
node k of the derived graph is the k-th surviving node of the input.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			nodes := make([]int, 0, len(args)-1)
			for _, arg := range args[1:] {
				n, err := apperrors.ValidateNodeIndex(arg, g.Size())
				if err != nil {
					return err
				}
				nodes = append(nodes, n)
			}

			derived, err := g.Omitting(nodes...)
			if err != nil {
				return err
			}

			if output == "" {
				output = args[0] + ".omitted"
			}
			if err := saveGraph(derived, output); err != nil {
				return err
			}
			printSuccess("Omitted %d nodes", len(nodes))
			printStats(derived.Size(), derived.EdgeCount(), false)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (<input>.omitted if empty)")
	return cmd
}

// diffCommand creates the diff command, which compares two graphs
// edge by edge.
func (c *CLI) diffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <graph-file> <other-graph-file>",
		Short: "Show edges added and removed between two graphs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			other, err := loadGraph(args[1])
			if err != nil {
				return err
			}

			added, removed := g.Diff(other)
			if added.EdgeCount() == 0 && removed.EdgeCount() == 0 {
				printInfo("Graphs have identical edges")
				return nil
			}

			added.ToPairSet().ForEach(func(a, b int) {
				fmt.Printf("+ %d %s %d\n", a, iconArrow, b)
			})
			removed.ToPairSet().ForEach(func(a, b int) {
				fmt.Printf("- %d %s %d\n", a, iconArrow, b)
			})
			printDetail("%d added, %d removed", added.EdgeCount(), removed.EdgeCount())
			return nil
		},
	}
}
