package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jugglesearch/pkg/sink"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// outputOptions are the output flags shared by gen and trans.
type outputOptions struct {
	format    string
	animation bool
	where     string
	archive   bool
	noCache   bool
	refresh   bool
}

// output is the assembled target of one run plus what must be closed.
type output struct {
	target  siteswap.Target
	script  *sink.Script
	archive *sink.Mongo
	runID   string
}

// newOutput builds the target chain: format sink, optional archive, and
// an optional script filter in front of both.
func (c *CLI) newOutput(ctx context.Context, w io.Writer, opts outputOptions) (*output, error) {
	format := opts.format
	if format == "" {
		format = c.Config.Format
	}

	out := &output{runID: sink.NewRunID()}
	var primary siteswap.Target
	switch format {
	case FormatText:
		tw := sink.NewWriter(w)
		tw.Animation = opts.animation
		primary = tw
	case FormatJSON:
		primary = sink.NewJSON(w, out.runID)
	case FormatYAML:
		primary = sink.NewYAML(w, out.runID)
	default:
		return nil, fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
	out.target = primary

	if opts.archive {
		m, err := sink.DialMongo(ctx, c.Config.Archive.MongoURI, c.Config.Archive.Database, out.runID)
		if err != nil {
			return nil, fmt.Errorf("connect archive: %w", err)
		}
		out.archive = m
		out.target = sink.Tee{primary, m}
	}

	if opts.where != "" {
		s, err := sink.NewScript(opts.where, out.target)
		if err != nil {
			out.close(nil)
			return nil, err
		}
		out.script = s
		out.target = s
	}
	return out, nil
}

// close flushes every sink and reports script and archive problems.
func (o *output) close(logger *log.Logger) error {
	var err error
	if o.script != nil {
		if serr := o.script.Err(); serr != nil && logger != nil {
			logger.Warn("script failed on some patterns", "dropped", o.script.Dropped(), "err", serr)
		}
		err = sink.Flush(o.script.Unwrap())
	} else {
		err = sink.Flush(o.target)
	}
	if o.archive != nil {
		aerr := o.archive.Close()
		switch {
		case aerr != nil && err == nil:
			err = fmt.Errorf("archive: %w", aerr)
		case aerr == nil && logger != nil:
			logger.Info("archived run", "run", o.runID)
		}
	}
	return err
}
