// Package sink provides siteswap.Target implementations: in-memory
// collection, plain text, JSON lines, YAML documents, a MongoDB archive,
// a JavaScript predicate filter, fan-out and a channel feed for live UIs.
//
// Targets cannot fail from Emit, so sinks that write somewhere keep the
// first error and report it from Flush or Err.
package sink

import (
	"github.com/google/uuid"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// Record is one emitted pattern tagged with its run.
type Record struct {
	Run       string `json:"run,omitempty" yaml:"-" bson:"run"`
	Seq       int    `json:"seq" yaml:"seq" bson:"seq"`
	Display   string `json:"display" yaml:"display" bson:"display"`
	Notation  string `json:"notation" yaml:"notation" bson:"notation"`
	Animation string `json:"animation" yaml:"animation" bson:"animation"`
}

// Flusher is implemented by sinks that buffer output.
type Flusher interface {
	Flush() error
}

// Flush flushes t if it buffers output.
func Flush(t siteswap.Target) error {
	if f, ok := t.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// run numbers the records of one run.
type run struct {
	id  string
	seq int
}

func newRun(id string) run {
	if id == "" {
		id = NewRunID()
	}
	return run{id: id}
}

func (r *run) record(display, notation, animation string) Record {
	r.seq++
	return Record{Run: r.id, Seq: r.seq, Display: display, Notation: notation, Animation: animation}
}
