package siteswap

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// StopReason says why a search ended.
type StopReason int

const (
	// Completed means the search space was exhausted.
	Completed StopReason = iota
	// LimitReached means the maximum pattern count was emitted.
	LimitReached
	// TimedOut means the deadline passed.
	TimedOut
	// Canceled means the caller's context was canceled.
	Canceled
)

var stopReasonNames = [...]string{"completed", "limit", "timeout", "canceled"}

// String returns the reason name.
func (r StopReason) String() string {
	if r < 0 || int(r) >= len(stopReasonNames) {
		return fmt.Sprintf("reason(%d)", int(r))
	}
	return stopReasonNames[r]
}

// MarshalJSON writes the reason name.
func (r StopReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON reads a reason name.
func (r *StopReason) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range stopReasonNames {
		if name == s {
			*r = StopReason(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stop reason %q", s)
}

// Outcome is the result of a search that did not fail: how many patterns
// reached the Target and why the search ended.
type Outcome struct {
	Reason StopReason `json:"reason"`
	Count  int        `json:"count"`
}

// Stopped reports whether the search ended early on a limit.
func (o Outcome) Stopped() bool {
	return o.Reason != Completed
}

// Signal is threaded back through every recursive return of a search.
type Signal bool

const (
	Continue Signal = true
	Stop     Signal = false
)

// CheckInterval is how many recursive calls pass between clock checks.
const CheckInterval = 20000

// Budget enforces the pattern count limit and the deadline of one search.
// It is not safe for concurrent use.
type Budget struct {
	ctx      context.Context
	maxNum   int
	deadline time.Time
	calls    int
	count    int
	reason   StopReason
	stopped  bool
}

// NewBudget creates a budget. maxNum <= 0 means no count limit and
// timeout <= 0 means no deadline; ctx cancellation is always honored.
func NewBudget(ctx context.Context, maxNum int, timeout time.Duration) *Budget {
	b := &Budget{ctx: ctx, maxNum: maxNum}
	if timeout > 0 {
		b.deadline = time.Now().Add(timeout)
	}
	return b
}

// Tick counts one recursive call and, every CheckInterval calls, checks the
// deadline and the context. It returns Stop once the budget is exhausted.
func (b *Budget) Tick() Signal {
	if b.stopped {
		return Stop
	}
	b.calls++
	if b.calls%CheckInterval != 0 {
		return Continue
	}
	return b.Check()
}

// Check tests the deadline and the context now, outside the sampling.
func (b *Budget) Check() Signal {
	if b.stopped {
		return Stop
	}
	if b.ctx != nil && b.ctx.Err() != nil {
		return b.stop(Canceled)
	}
	if !b.deadline.IsZero() && time.Now().After(b.deadline) {
		return b.stop(TimedOut)
	}
	return Continue
}

// Emitted records one delivered pattern and returns Stop when the count
// limit has been reached.
func (b *Budget) Emitted() Signal {
	b.count++
	if b.maxNum > 0 && b.count >= b.maxNum {
		return b.stop(LimitReached)
	}
	return Continue
}

func (b *Budget) stop(r StopReason) Signal {
	if !b.stopped {
		b.stopped, b.reason = true, r
	}
	return Stop
}

// Stopped reports whether a limit has been hit.
func (b *Budget) Stopped() bool {
	return b.stopped
}

// Count returns the number of patterns emitted so far.
func (b *Budget) Count() int {
	return b.count
}

// Calls returns the number of recursive calls counted so far.
func (b *Budget) Calls() int {
	return b.calls
}

// Outcome returns the current outcome.
func (b *Budget) Outcome() Outcome {
	if !b.stopped {
		return Outcome{Reason: Completed, Count: b.count}
	}
	return Outcome{Reason: b.reason, Count: b.count}
}
