package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jugglesearch/pkg/siteswap/trans"
)

const transLong = `Find the shortest transitions between two patterns.

Either pattern may be "-" for the ground pattern of the other. Patterns
are written in siteswap notation: "531", "(4,2x)(2x,4)", "[43]23",
"<3p|3p>".

Search options:
  -m N      up to N objects per hand and beat
  -mf       turn off the multiplex catch filter
  -mc       forbid clustered catches
  -limits   stop after 1000 transitions or 15 seconds`

const transExample = `  jugglesearch trans 3 531
  jugglesearch trans - 441 --animation
  jugglesearch trans "<3p|3p>" "<4p|3><3|4p>" --format yaml`

// transCommand creates the trans command.
func (c *CLI) transCommand() *cobra.Command {
	var opts outputOptions

	cmd := &cobra.Command{
		Use:                "trans <from|-> <to|-> [options]",
		Short:              "Find transitions between two patterns",
		Long:               transLong,
		Example:            transExample,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			driver, help, err := parseOwnFlags(cmd, args)
			if err != nil {
				return err
			}
			if help {
				return cmd.Help()
			}
			if err := c.setup(cmd); err != nil {
				return err
			}

			cfg, err := trans.ParseArgs(driver)
			if err != nil {
				return err
			}
			if cfg.MaxNum == 0 {
				cfg.MaxNum = c.Config.MaxNum
			}
			if cfg.Timeout == 0 {
				cfg.Timeout = c.Config.Timeout
			}

			ctx := cmd.Context()
			runner := c.newRunner(ctx, runnerOptions{noCache: opts.noCache, refresh: opts.refresh})
			defer runner.Close()

			out, err := c.newOutput(ctx, cmd.OutOrStdout(), opts)
			if err != nil {
				return err
			}
			res, err := runner.Transitions(ctx, cfg, out.target)
			cerr := out.close(c.Logger)
			if err != nil {
				return err
			}
			if cerr != nil {
				return cerr
			}
			return c.finish(res)
		},
	}

	addOutputFlags(cmd, &opts)
	return cmd
}
