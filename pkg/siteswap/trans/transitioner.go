package trans

import (
	"context"
	"fmt"

	"github.com/matzehuels/jugglesearch/pkg/errors"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/notation"
)

// Endpoints are the two parsed patterns of a transitioner run.
type Endpoints struct {
	From *notation.Pattern
	To   *notation.Pattern
}

// Resolve parses both pattern texts, replacing Ground with the ground
// pattern for the other side's objects and jugglers.
func Resolve(cfg Config) (Endpoints, error) {
	if err := cfg.Validate(); err != nil {
		return Endpoints{}, err
	}
	var ep Endpoints
	var err error
	switch {
	case cfg.From == Ground:
		if ep.To, err = parse("to", cfg.To); err != nil {
			return Endpoints{}, err
		}
		ep.From, err = parse("from", notation.Ground(ep.To.Objects(), ep.To.Jugglers()))
	case cfg.To == Ground:
		if ep.From, err = parse("from", cfg.From); err != nil {
			return Endpoints{}, err
		}
		ep.To, err = parse("to", notation.Ground(ep.From.Objects(), ep.From.Jugglers()))
	default:
		if ep.From, err = parse("from", cfg.From); err != nil {
			return Endpoints{}, err
		}
		ep.To, err = parse("to", cfg.To)
	}
	if err != nil {
		return Endpoints{}, err
	}

	if ep.From.Objects() != ep.To.Objects() {
		return Endpoints{}, errors.New(errors.ErrCodeMismatchedPatterns,
			"from pattern juggles %d objects but to pattern juggles %d", ep.From.Objects(), ep.To.Objects())
	}
	if ep.From.Jugglers() != ep.To.Jugglers() {
		return Endpoints{}, errors.New(errors.ErrCodeMismatchedPatterns,
			"from pattern has %d jugglers but to pattern has %d", ep.From.Jugglers(), ep.To.Jugglers())
	}
	return ep, nil
}

func parse(field, text string) (*notation.Pattern, error) {
	if err := errors.ValidatePatternText(text); err != nil {
		return nil, err
	}
	p, err := notation.Parse(text)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidPattern, "%s pattern %q: %s", field, text, errors.UserMessage(err))
	}
	return p, nil
}

// plan holds everything a run derives from its endpoints.
type plan struct {
	rhythm siteswap.Rhythm
	from   Endpoint
	to     Endpoint
}

func newPlan(cfg Config, ep Endpoints) (*plan, error) {
	capacity := max(cfg.Multiplex, ep.From.Rhythm().Capacity, ep.To.Rhythm().Capacity)
	r, err := siteswap.RhythmFor(siteswap.Physical, ep.From.Jugglers(), capacity)
	if err != nil {
		return nil, err
	}
	height := max(ep.From.Loop.MaxValue(), ep.To.Loop.MaxValue())
	return &plan{
		rhythm: r,
		from:   Endpoint{State: ep.From.StartingState(height), Loop: &ep.From.Loop},
		to:     Endpoint{State: ep.To.StartingState(height), Loop: &ep.To.Loop},
	}, nil
}

// Run finds the transitions between cfg.From and cfg.To and emits each to
// target. The animation text of a result plays the from pattern, the
// transition, the to pattern and the shortest way back, so it loops.
func Run(ctx context.Context, cfg Config, target siteswap.Target) (siteswap.Outcome, error) {
	ep, err := Resolve(cfg)
	if err != nil {
		return siteswap.Outcome{}, err
	}
	p, err := newPlan(cfg, ep)
	if err != nil {
		return siteswap.Outcome{}, err
	}

	back, err := FindFirst(ctx, Search{
		Rhythm:            p.rhythm,
		From:              p.to,
		To:                p.from,
		AllowSimultaneous: true,
		Clusters:          true,
	})
	if err != nil {
		return siteswap.Outcome{}, err
	}
	loop := ep.From.LoopText()
	resume := ep.To.LoopText() + notation.RenderTransition(back)

	outcome, err := Find(ctx, Search{
		Rhythm:            p.rhythm,
		From:              p.from,
		To:                p.to,
		AllowSimultaneous: cfg.AllowSimultaneous,
		Clusters:          cfg.Clusters,
		MaxNum:            cfg.MaxNum,
		Timeout:           cfg.Timeout,
	}, func(seq siteswap.Sequence) siteswap.Signal {
		text := notation.RenderTransition(seq)
		display := text
		if seq.Len() == 0 {
			display = "(none)"
		}
		target.Emit(display, siteswap.NotationSiteswap, loop+text+resume)
		return siteswap.Continue
	})
	if err != nil {
		return siteswap.Outcome{}, err
	}
	target.SetStatus(Status(outcome))
	return outcome, nil
}

// Status formats the end-of-run summary.
func Status(o siteswap.Outcome) string {
	noun := "transitions"
	if o.Count == 1 {
		noun = "transition"
	}
	switch o.Reason {
	case siteswap.LimitReached:
		return fmt.Sprintf("%d %s found (stopped at the limit)", o.Count, noun)
	case siteswap.TimedOut:
		return fmt.Sprintf("%d %s found (stopped on timeout)", o.Count, noun)
	case siteswap.Canceled:
		return fmt.Sprintf("%d %s found (canceled)", o.Count, noun)
	}
	return fmt.Sprintf("%d %s found", o.Count, noun)
}
