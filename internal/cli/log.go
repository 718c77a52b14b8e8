package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered 531 (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports search and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnSearchStart(ctx context.Context, kind string) {
	h.logger.Debug("search started", "kind", kind)
}

func (h logHooks) OnPeriod(ctx context.Context, kind string, period, count int) {}

func (h logHooks) OnSearchComplete(ctx context.Context, kind string, count int, reason string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("search failed", "kind", kind, "err", err)
		return
	}
	h.logger.Debug("search finished", "kind", kind, "count", count, "reason", reason, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cached result", "kind", keyType, "bytes", size)
}

func (h logHooks) OnRequest(ctx context.Context, method, path string) {}

func (h logHooks) OnResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("request", "method", method, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnError(ctx context.Context, method, path string, err error) {
	h.logger.Error("request failed", "method", method, "path", path, "err", err)
}
