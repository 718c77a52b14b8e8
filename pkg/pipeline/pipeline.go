// Package pipeline runs searches with result caching, hooks and logging.
//
// The CLI and the HTTP server both go through a [Runner], so a search
// answered once is replayed from the cache the next time any entry point
// asks for the same configuration.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Generate(ctx, cfg, target)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Outcome.Count, res.Hit)
//
// Runs that stopped on a timeout or cancellation are never stored: their
// result depends on the machine, not on the configuration.
package pipeline

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// Search kinds, used in cache keys and hook events.
const (
	KindGen   = "gen"
	KindTrans = "trans"
)

// Result describes one run.
type Result struct {
	// Key is the cache key of the configuration.
	Key string `json:"key"`
	// Hit reports that the patterns were replayed from the cache.
	Hit      bool             `json:"hit"`
	Outcome  siteswap.Outcome `json:"outcome"`
	Status   string           `json:"status"`
	Duration time.Duration    `json:"duration"`
}

// Line is one emitted pattern as stored in the cache.
type Line struct {
	Display   string `json:"display"`
	Notation  string `json:"notation"`
	Animation string `json:"animation"`
}

// record is the cached form of a finished run.
type record struct {
	Lines   []Line           `json:"lines"`
	Status  string           `json:"status"`
	Outcome siteswap.Outcome `json:"outcome"`
}

func (rec record) marshal() ([]byte, error) {
	return json.Marshal(rec)
}

func unmarshalRecord(data []byte) (record, error) {
	var rec record
	err := json.Unmarshal(data, &rec)
	return rec, err
}

// replay sends a cached run to target in its original order.
func (rec record) replay(target siteswap.Target) {
	for _, l := range rec.Lines {
		target.Emit(l.Display, l.Notation, l.Animation)
	}
	if rec.Status != "" {
		target.SetStatus(rec.Status)
	}
}

// tee forwards to the caller's target and keeps a copy for the cache.
type tee struct {
	next siteswap.Target
	rec  record
}

func (t *tee) Emit(display, notation, animation string) {
	t.rec.Lines = append(t.rec.Lines, Line{display, notation, animation})
	t.next.Emit(display, notation, animation)
}

func (t *tee) SetStatus(msg string) {
	t.rec.Status = msg
	t.next.SetStatus(msg)
}

// cacheable reports whether an outcome is a pure function of the config.
func cacheable(o siteswap.Outcome) bool {
	return o.Reason == siteswap.Completed || o.Reason == siteswap.LimitReached
}
