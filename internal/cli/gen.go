package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jugglesearch/pkg/pipeline"
	"github.com/matzehuels/jugglesearch/pkg/sink"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/gen"
)

const genLong = `Generate juggling patterns.

The first three arguments are the number of objects, the largest throw
("-" for no limit) and the period: "3", "2-4", "-5" (up to 5), "3-" or "-"
(open ranges need -prime and a largest throw).

Search options:
  -s            synchronous rhythm
  -j N          N jugglers
  -m N          up to N objects per hand and beat (multiplexing)
  -g / -ng      ground state patterns only / excited state patterns only
  -f / -prime   also loops that revisit their start state / prime loops only
  -rot          list every rotation
  -jp           keep juggler permutations
  -cp           connected passing patterns only
  -lame         drop patterns with two 1s in a row
  -d N          a follower may pass no earlier than N beats after the leader
  -l N          the leader is juggler N
  -mf / -mc     turn off the multiplex catch filter / forbid clustered catches
  -mt           true multiplexing only (no holds inside a multiplex)
  -se           hide the start and end sequences of excited patterns
  -x TERMS      exclude patterns containing any of TERMS
  -i TERMS      keep only patterns containing all of TERMS
  -n / -no      print the pattern count / print only the count`

const genExample = `  jugglesearch gen 3 5 3
  jugglesearch gen 5 7 5 -g -x 1 --format json
  jugglesearch gen 6 4 2 -s -j 2 -cp
  jugglesearch gen 4 6 3-4 --where 'p.animation.indexOf("5") < 0' --tui`

// genCommand creates the gen command.
func (c *CLI) genCommand() *cobra.Command {
	var opts outputOptions
	var tui, limits bool

	cmd := &cobra.Command{
		Use:                "gen <objects> <max-throw|-> <period> [options]",
		Short:              "Generate juggling patterns",
		Long:               genLong,
		Example:            genExample,
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

			cfg, err := gen.ParseArgs(driver)
			if err != nil {
				return err
			}
			if limits {
				cfg = cfg.WithDefaultLimits()
			}
			if cfg.MaxNum == 0 {
				cfg.MaxNum = c.Config.MaxNum
			}
			if cfg.Timeout == 0 {
				cfg.Timeout = c.Config.Timeout
			}

			if tui {
				return c.runGenTUI(cmd.Context(), cfg, opts)
			}
			return c.runGen(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	}

	addOutputFlags(cmd, &opts)
	cmd.Flags().BoolVar(&tui, "tui", false, "browse patterns interactively as they are found")
	cmd.Flags().BoolVar(&limits, "limits", false, "stop after 1000 patterns or 15 seconds")
	return cmd
}

// addOutputFlags registers the flags shared by gen and trans.
func addOutputFlags(cmd *cobra.Command, opts *outputOptions) {
	flags := cmd.Flags()
	flags.StringVar(&opts.format, "format", "", "output format: text, json or yaml (default from config)")
	flags.BoolVar(&opts.animation, "animation", false, "print the animation text after each pattern")
	flags.StringVar(&opts.where, "where", "", "JavaScript predicate over p.display, p.notation, p.animation and p.length")
	flags.BoolVar(&opts.archive, "archive", false, "also store patterns in the MongoDB archive")
	flags.BoolVar(&opts.noCache, "no-cache", false, "neither read nor write the result cache")
	flags.BoolVar(&opts.refresh, "refresh", false, "ignore cached results and search again")
}

func (c *CLI) runGen(ctx context.Context, w io.Writer, cfg gen.Config, opts outputOptions) error {
	runner := c.newRunner(ctx, runnerOptions{noCache: opts.noCache, refresh: opts.refresh})
	defer runner.Close()

	if cfg.CountOnly {
		spinner := newSpinnerWithContext(ctx, "Counting patterns...")
		runner.Progress = func(period, count int) {
			spinner.SetMessage(fmt.Sprintf("Counting patterns... period %d, %d so far", period, count))
		}
		count := &sink.Count{}
		spinner.Start()
		res, err := runner.Generate(ctx, cfg, count)
		spinner.Stop()
		if err != nil {
			return err
		}
		status := count.Status()
		if status == "" {
			status = gen.Status(res.Outcome)
		}
		fmt.Fprintln(w, status)
		return c.finish(res)
	}

	out, err := c.newOutput(ctx, w, opts)
	if err != nil {
		return err
	}
	res, err := runner.Generate(ctx, cfg, out.target)
	cerr := out.close(c.Logger)
	if err != nil {
		return err
	}
	if cerr != nil {
		return cerr
	}
	return c.finish(res)
}

// finish logs how a run ended and turns cancellation into an error so the
// process exits with the interrupt status.
func (c *CLI) finish(res pipeline.Result) error {
	if res.Hit {
		c.Logger.Debug("served from cache", "key", res.Key)
	}
	switch res.Outcome.Reason {
	case siteswap.TimedOut:
		c.Logger.Warn("search stopped on timeout", "found", res.Outcome.Count)
	case siteswap.LimitReached:
		c.Logger.Info("search stopped at the limit", "found", res.Outcome.Count)
	case siteswap.Canceled:
		return context.Canceled
	}
	return nil
}
