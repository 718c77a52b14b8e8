package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jugglesearch/internal/server"
	"github.com/matzehuels/jugglesearch/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API over HTTP",
		Long: `Serve searches over HTTP. Every run is bounded by the default pattern
and time limits.

  GET /api/gen?q=3+5+3          generator run as JSON
  GET /api/trans?q=3+531        transitions as JSON
  GET /api/graph?pattern=531    state graph (format=dot|svg|png)
  GET /ws/gen?q=5+7+5           generator run streamed over a websocket`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			ctx := cmd.Context()
			observability.SetHTTPHooks(logHooks{c.Logger})

			runner := c.newRunner(ctx, runnerOptions{})
			defer runner.Close()

			return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
