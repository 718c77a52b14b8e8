package sink

import (
	"sync"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// Memory collects everything it receives. It is safe to read while a
// search writes from another goroutine.
type Memory struct {
	mu      sync.Mutex
	records []Record
	status  string
}

// Emit implements siteswap.Target.
func (m *Memory) Emit(display, notation, animation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, Record{
		Seq:       len(m.records) + 1,
		Display:   display,
		Notation:  notation,
		Animation: animation,
	})
}

// SetStatus implements siteswap.Target.
func (m *Memory) SetStatus(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = msg
}

// Records returns a copy of the collected patterns.
func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.records...)
}

// Displays returns the display texts in emission order.
func (m *Memory) Displays() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.records))
	for i, r := range m.records {
		out[i] = r.Display
	}
	return out
}

// Status returns the last status message.
func (m *Memory) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

var _ siteswap.Target = (*Memory)(nil)
