package pipeline

import (
	"context"
	"io"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jugglesearch/pkg/cache"
	"github.com/matzehuels/jugglesearch/pkg/observability"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/gen"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/trans"
)

type recorder struct {
	display []string
	status  string
}

func (r *recorder) Emit(display, notation, animation string) { r.display = append(r.display, display) }
func (r *recorder) SetStatus(msg string)                     { r.status = msg }

// memCache is a map-backed cache that counts writes.
type memCache struct {
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func genConfig(t *testing.T, args ...string) gen.Config {
	t.Helper()
	cfg, err := gen.ParseArgs(args)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestRunnerGenerateCaches(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	cfg := genConfig(t, "3", "5", "3", "-n")

	first := &recorder{}
	res, err := r.Generate(ctx, cfg, first)
	if err != nil {
		t.Fatal(err)
	}
	if res.Hit {
		t.Error("first run reported a cache hit")
	}
	if c.sets != 1 {
		t.Fatalf("sets = %d, want 1", c.sets)
	}
	if res.Outcome.Count != len(first.display) || res.Outcome.Count == 0 {
		t.Errorf("count = %d with %d lines", res.Outcome.Count, len(first.display))
	}

	second := &recorder{}
	res2, err := r.Generate(ctx, cfg, second)
	if err != nil {
		t.Fatal(err)
	}
	if !res2.Hit {
		t.Error("second run missed the cache")
	}
	if !slices.Equal(first.display, second.display) {
		t.Errorf("replay = %v, want %v", second.display, first.display)
	}
	if second.status != first.status || res2.Outcome != res.Outcome {
		t.Errorf("replayed status %q %+v, want %q %+v", second.status, res2.Outcome, first.status, res.Outcome)
	}
	if res2.Key != res.Key {
		t.Error("same config produced different keys")
	}
}

func TestRunnerRefresh(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	cfg := genConfig(t, "3", "4", "2")

	if _, err := r.Generate(ctx, cfg, &recorder{}); err != nil {
		t.Fatal(err)
	}
	r.Refresh = true
	res, err := r.Generate(ctx, cfg, &recorder{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Hit || c.sets != 2 {
		t.Errorf("refresh: hit=%v sets=%d", res.Hit, c.sets)
	}
}

func TestRunnerSkipsTimedOutRuns(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	cfg := genConfig(t, "5", "8", "6", "-se")
	cfg.Timeout = time.Nanosecond

	res, err := r.Generate(context.Background(), cfg, &recorder{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome.Reason != siteswap.TimedOut {
		t.Fatalf("reason = %v, want timeout", res.Outcome.Reason)
	}
	if c.sets != 0 {
		t.Error("a timed out run was cached")
	}
}

func TestRunnerUserErrors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	cfg := gen.DefaultConfig()
	if _, err := r.Generate(context.Background(), cfg, &recorder{}); err == nil {
		t.Error("zero balls should fail validation")
	}
	if _, err := r.Transitions(context.Background(), trans.DefaultConfig(), &recorder{}); err == nil {
		t.Error("missing endpoints should fail validation")
	}
}

func TestRunnerTransitions(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	cfg, err := trans.ParseArgs([]string{"3", "51"})
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	res, err := r.Transitions(ctx, cfg, rec)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome.Count != 2 || rec.status != "2 transitions found" {
		t.Errorf("outcome %+v status %q", res.Outcome, rec.status)
	}

	genKey := r.Keyer.SearchKey(KindGen, cfg)
	if genKey == res.Key {
		t.Error("search kinds share a key")
	}
}

type countingHooks struct {
	observability.NoopSearchHooks
	starts, completes, periods int
}

func (h *countingHooks) OnSearchStart(context.Context, string) { h.starts++ }
func (h *countingHooks) OnPeriod(context.Context, string, int, int) {
	h.periods++
}
func (h *countingHooks) OnSearchComplete(context.Context, string, int, string, time.Duration, error) {
	h.completes++
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestRunnerHooks(t *testing.T) {
	defer observability.Reset()
	sh := &countingHooks{}
	ch := &countingCacheHooks{}
	observability.SetSearchHooks(sh)
	observability.SetCacheHooks(ch)

	r := NewRunner(newMemCache(), nil, quietLogger())
	var periods []int
	r.Progress = func(period, count int) { periods = append(periods, period) }
	cfg := genConfig(t, "3", "5", "1-3")
	for range 2 {
		if _, err := r.Generate(context.Background(), cfg, &recorder{}); err != nil {
			t.Fatal(err)
		}
	}

	if sh.starts != 1 || sh.completes != 1 {
		t.Errorf("search hooks: starts=%d completes=%d, want 1 and 1", sh.starts, sh.completes)
	}
	if sh.periods != 3 {
		t.Errorf("periods = %d, want 3", sh.periods)
	}
	if !slices.Equal(periods, []int{1, 2, 3}) {
		t.Errorf("progress periods = %v, want [1 2 3]", periods)
	}
	if ch.misses != 1 || ch.hits != 1 || ch.sets != 1 {
		t.Errorf("cache hooks: %+v", *ch)
	}
}

func TestRunnerWithBoltCache(t *testing.T) {
	c, err := cache.NewBoltCache(t.TempDir() + "/results.db")
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, cache.NewScopedKeyer(nil, "test:"), quietLogger())
	defer r.Close()

	cfg := genConfig(t, "3", "4", "2", "-g")
	if _, err := r.Generate(context.Background(), cfg, &recorder{}); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	res, err := r.Generate(context.Background(), cfg, rec)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Hit || !slices.Equal(rec.display, []string{"42", "3"}) {
		t.Errorf("hit=%v display=%v", res.Hit, rec.display)
	}
}
