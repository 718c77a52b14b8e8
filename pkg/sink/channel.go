package sink

import (
	"context"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// Event is one message of a Channel: a pattern, or a status when Status
// is set.
type Event struct {
	Record Record
	Status string
}

// Channel delivers events to a consumer on another goroutine, such as
// the terminal UI or a websocket writer. Sends block until the consumer
// reads or ctx is done; after that events are dropped.
type Channel struct {
	ctx context.Context
	C   chan Event
	run run
}

// NewChannel returns a channel sink with the given buffer size.
func NewChannel(ctx context.Context, buffer int, runID string) *Channel {
	return &Channel{ctx: ctx, C: make(chan Event, buffer), run: newRun(runID)}
}

// RunID returns the run identifier of the records.
func (c *Channel) RunID() string { return c.run.id }

// Emit implements siteswap.Target.
func (c *Channel) Emit(display, notation, animation string) {
	c.send(Event{Record: c.run.record(display, notation, animation)})
}

// SetStatus implements siteswap.Target.
func (c *Channel) SetStatus(msg string) {
	c.send(Event{Status: msg})
}

func (c *Channel) send(e Event) {
	select {
	case c.C <- e:
	case <-c.ctx.Done():
	}
}

// Close closes C. The search must have returned.
func (c *Channel) Close() {
	close(c.C)
}

var _ siteswap.Target = (*Channel)(nil)
