package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jugglesearch/pkg/cache"
	"github.com/matzehuels/jugglesearch/pkg/observability"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/gen"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/trans"
)

// Runner executes searches with caching.
//
// The Runner holds no per-run state, so several goroutines may share one
// as long as each passes its own Target.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Refresh skips cache lookups but still stores new results.
	Refresh bool
	// Progress, when set, is called as each generator period starts.
	// It runs on the search goroutine.
	Progress func(period, count int)
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means the default keyer and a nil logger the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Generate runs the pattern generator for cfg.
func (r *Runner) Generate(ctx context.Context, cfg gen.Config, target siteswap.Target) (Result, error) {
	g, err := gen.New(cfg)
	if err != nil {
		return Result{}, err
	}
	g.Progress = func(period, count int) {
		observability.Search().OnPeriod(ctx, KindGen, period, count)
		r.Logger.Debug("searching period", "period", period, "found", count)
		if r.Progress != nil {
			r.Progress(period, count)
		}
	}
	return r.run(ctx, KindGen, cfg, target, g.Run)
}

// Transitions runs the transition finder for cfg.
func (r *Runner) Transitions(ctx context.Context, cfg trans.Config, target siteswap.Target) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	return r.run(ctx, KindTrans, cfg, target, func(ctx context.Context, t siteswap.Target) (siteswap.Outcome, error) {
		return trans.Run(ctx, cfg, t)
	})
}

type searchFunc func(ctx context.Context, target siteswap.Target) (siteswap.Outcome, error)

func (r *Runner) run(ctx context.Context, kind string, cfg any, target siteswap.Target, search searchFunc) (Result, error) {
	start := time.Now()
	res := Result{Key: r.Keyer.SearchKey(kind, cfg)}

	if !r.Refresh {
		if rec, ok := r.lookup(ctx, kind, res.Key); ok {
			rec.replay(target)
			res.Hit = true
			res.Outcome = rec.Outcome
			res.Status = rec.Status
			res.Duration = time.Since(start)
			r.Logger.Info("replayed cached search", "kind", kind, "patterns", rec.Outcome.Count)
			return res, nil
		}
	}

	observability.Search().OnSearchStart(ctx, kind)
	t := &tee{next: target}
	outcome, err := search(ctx, t)
	res.Duration = time.Since(start)
	observability.Search().OnSearchComplete(ctx, kind, outcome.Count, outcome.Reason.String(), res.Duration, err)
	if err != nil {
		return res, fmt.Errorf("%s search: %w", kind, err)
	}

	res.Outcome = outcome
	res.Status = t.rec.Status
	r.Logger.Info("search complete",
		"kind", kind,
		"patterns", outcome.Count,
		"reason", outcome.Reason,
		"duration", res.Duration)

	if cacheable(outcome) {
		t.rec.Outcome = outcome
		r.store(ctx, kind, res.Key, t.rec)
	}
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, kind, key string) (record, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "kind", kind, "err", err)
		return record{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return record{}, false
	}
	rec, err := unmarshalRecord(data)
	if err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "kind", kind, "err", err)
		observability.Cache().OnCacheMiss(ctx, kind)
		return record{}, false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return rec, true
}

func (r *Runner) store(ctx context.Context, kind, key string, rec record) {
	data, err := rec.marshal()
	if err != nil {
		return
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, cache.TTLSearch)
	})
	if err != nil {
		r.Logger.Warn("cache store failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
