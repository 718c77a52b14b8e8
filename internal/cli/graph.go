package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jugglesearch/pkg/stategraph"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format  string
		output  string
		full    bool
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "graph <pattern>",
		Short: "Draw the state graph of a pattern",
		Long: `Draw the cycle of states a pattern walks through, one node per state
and one edge per beat. With --full, excited patterns also show the shortest
ways in from the ground state and back out.`,
		Example: `  jugglesearch graph 531
  jugglesearch graph "(4,2x)(2x,4)" --format svg -o sync.svg
  jugglesearch graph 51 --full --format png -o 51.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stategraph.ValidateFormat(format); err != nil {
				return err
			}
			if output == "" && format == stategraph.FormatPNG {
				return fmt.Errorf("png output needs -o")
			}

			ctx := cmd.Context()
			runner := c.newRunner(ctx, runnerOptions{noCache: noCache, refresh: refresh})
			defer runner.Close()

			if output == "" {
				res, err := runner.Graph(ctx, args[0], format, full)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(res.Data)
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			spinner := newSpinnerWithContext(ctx, "Rendering state graph...")
			spinner.Start()
			res, err := runner.Graph(ctx, args[0], format, full)
			if err != nil {
				spinner.StopWithError("Rendering failed")
				return err
			}
			if err := os.WriteFile(output, res.Data, 0o644); err != nil {
				spinner.StopWithError("Writing failed")
				return err
			}
			spinner.StopWithSuccess("State graph written")
			prog.done("Rendered " + args[0])
			printFile(output)
			printStats(res.Nodes, res.Edges, res.Hit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", stategraph.FormatDOT, "output format: dot, svg or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&full, "full", false, "include the ways in from and back to the ground state")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "neither read nor write the result cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore a cached graph and render again")
	return cmd
}
