package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bitgraph-dev/bitgraph/pkg/bitvec"
	"github.com/bitgraph-dev/bitgraph/pkg/cache"
)

// infoCommand creates the info command, which summarizes a graph file.
func (c *CLI) infoCommand() *cobra.Command {
	var showDisjoint bool

	cmd := &cobra.Command{
		Use:   "info <graph-file>",
		Short: "Summarize a graph's structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			hash, err := cache.GraphHash(g)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(args[0]))
			printKeyValue("nodes", fmt.Sprintf("%d", g.Size()))
			printKeyValue("edges", fmt.Sprintf("%d", g.EdgeCount()))
			printKeyValue("hash", hash[:12])
			printKeyValue("top level", formatBits(g.TopLevelNodes()))
			printKeyValue("bottom level", formatBits(g.BottomLevelNodes()))
			printKeyValue("connectors", formatBits(g.Connectors()))
			printKeyValue("orphans", formatBits(g.Orphans()))
			if showDisjoint {
				printKeyValue("disjoint", formatBits(g.DisjointNodes()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDisjoint, "disjoint", false, "also compute disjoint nodes (O(n) closures)")
	return cmd
}

// formatBits renders a bit vector as a comma-separated node list, with
// a dash for the empty set.
func formatBits(v *bitvec.Vector) string {
	bits := v.Bits()
	if len(bits) == 0 {
		return "-"
	}
	parts := make([]string, len(bits))
	for i, b := range bits {
		parts[i] = fmt.Sprintf("%d", b)
	}
	return strings.Join(parts, ", ")
}
