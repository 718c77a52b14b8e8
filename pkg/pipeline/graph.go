package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/jugglesearch/pkg/cache"
	"github.com/matzehuels/jugglesearch/pkg/observability"
	"github.com/matzehuels/jugglesearch/pkg/stategraph"
)

// KindGraph is the cache key type of rendered state graphs.
const KindGraph = "graph"

// GraphResult is a rendered state graph.
type GraphResult struct {
	Data []byte
	Hit  bool
	// Nodes and Edges are zero when the graph came from the cache.
	Nodes int
	Edges int
}

// Graph builds and renders the state graph of pattern, going through the
// cache like searches do.
func (r *Runner) Graph(ctx context.Context, pattern, format string, full bool) (GraphResult, error) {
	if err := stategraph.ValidateFormat(format); err != nil {
		return GraphResult{}, err
	}
	key := r.Keyer.GraphKey(pattern, cache.GraphKeyOpts{Format: format, Full: full})

	if !r.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache lookup failed", "kind", KindGraph, "err", err)
		case hit:
			observability.Cache().OnCacheHit(ctx, KindGraph)
			return GraphResult{Data: data, Hit: true}, nil
		default:
			observability.Cache().OnCacheMiss(ctx, KindGraph)
		}
	}

	start := time.Now()
	g, err := stategraph.Build(ctx, pattern, stategraph.Options{Full: full})
	if err != nil {
		return GraphResult{}, err
	}
	data, err := stategraph.Render(ctx, stategraph.ToDOT(g), format)
	if err != nil {
		return GraphResult{}, err
	}
	r.Logger.Debug("rendered state graph",
		"pattern", g.Pattern,
		"format", format,
		"nodes", len(g.Nodes),
		"duration", time.Since(start))

	err = cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, cache.TTLGraph)
	})
	if err != nil {
		r.Logger.Warn("cache store failed", "kind", KindGraph, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, KindGraph, len(data))
	}
	return GraphResult{Data: data, Nodes: len(g.Nodes), Edges: len(g.Edges)}, nil
}
