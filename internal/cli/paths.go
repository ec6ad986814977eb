package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/bitgraph-dev/bitgraph/pkg/errors"
	"github.com/bitgraph-dev/bitgraph/pkg/graph"
)

// pathsCommand creates the paths command, which enumerates paths
// between two nodes.
func (c *CLI) pathsCommand() *cobra.Command {
	var (
		undirected bool
		shortest   bool
	)

	cmd := &cobra.Command{
		Use:   "paths <graph-file> <from> <to>",
		Short: "Enumerate paths between two nodes",
		Long: `Enumerate paths from one node to another along outbound edges,
sorted by length and then lexicographically. With --undirected, edges
may be followed in either direction; with --shortest only the shortest
path is printed (falling back to the reverse direction when no forward
path exists).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			from, err := apperrors.ValidateNodeIndex(args[1], g.Size())
			if err != nil {
				return err
			}
			to, err := apperrors.ValidateNodeIndex(args[2], g.Size())
			if err != nil {
				return err
			}

			if shortest {
				var p *graph.Path
				if undirected {
					p = g.ShortestUndirectedPathBetween(from, to)
				} else {
					p = g.ShortestPathBetween(from, to)
				}
				if p == nil {
					printWarning("no path from %d to %d", from, to)
					return nil
				}
				fmt.Println(p)
				return nil
			}

			var paths []*graph.Path
			if undirected {
				paths = g.UndirectedPathsBetween(from, to)
			} else {
				paths = g.PathsBetween(from, to)
			}
			if len(paths) == 0 {
				printWarning("no path from %d to %d", from, to)
				return nil
			}
			for _, p := range paths {
				fmt.Println(p)
			}
			printDetail("%d paths, distance %d", len(paths), g.Distance(from, to))
			return nil
		},
	}

	cmd.Flags().BoolVar(&undirected, "undirected", false, "ignore edge direction")
	cmd.Flags().BoolVar(&shortest, "shortest", false, "print only the shortest path")
	return cmd
}
