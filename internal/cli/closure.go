package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/bitgraph-dev/bitgraph/pkg/errors"
)

// closureCommand creates the closure command, which prints the set of
// nodes reachable from a start node.
func (c *CLI) closureCommand() *cobra.Command {
	var (
		up       bool
		disjunct bool
	)

	cmd := &cobra.Command{
		Use:   "closure <graph-file> <node>...",
		Short: "Compute the transitive closure of one or more nodes",
		Long: `Compute the set of nodes reachable from the given start nodes by
following outbound edges (or inbound edges with --up). With several
start nodes the closures are unioned; --disjunction takes their
symmetric difference instead.`,
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

			switch {
			case disjunct:
				if up {
					return apperrors.New(apperrors.ErrCodeInvalidInput, "--up cannot be combined with --disjunction")
				}
				fmt.Println(formatBits(g.ClosureDisjunction(nodes...)))
			case up:
				for _, n := range nodes {
					fmt.Println(formatBits(g.ReverseClosureOf(n)))
				}
			case len(nodes) == 1:
				fmt.Println(formatBits(g.ClosureOf(nodes[0])))
				if g.IsRecursive(nodes[0]) {
					printDetail("node %d is recursive", nodes[0])
				}
			default:
				fmt.Println(formatBits(g.ClosureUnion(nodes...)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&up, "up", false, "follow inbound edges instead of outbound")
	cmd.Flags().BoolVar(&disjunct, "disjunction", false, "symmetric difference of the closures instead of their union")
	return cmd
}
