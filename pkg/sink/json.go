package sink

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// JSON writes one JSON object per pattern, then a status object:
//
//	{"run":"…","seq":1,"display":"441","notation":"siteswap","animation":"441"}
//	{"run":"…","status":"1 pattern found"}
type JSON struct {
	enc *json.Encoder
	run run
	err error
}

// NewJSON returns a JSON lines sink on w. An empty runID gets a new one.
func NewJSON(w io.Writer, runID string) *JSON {
	return &JSON{enc: json.NewEncoder(w), run: newRun(runID)}
}

// RunID returns the run identifier written with every line.
func (j *JSON) RunID() string { return j.run.id }

// Emit implements siteswap.Target.
func (j *JSON) Emit(display, notation, animation string) {
	j.encode(j.run.record(display, notation, animation))
}

// SetStatus implements siteswap.Target.
func (j *JSON) SetStatus(msg string) {
	j.encode(struct {
		Run    string `json:"run"`
		Status string `json:"status"`
	}{j.run.id, msg})
}

func (j *JSON) encode(v any) {
	if j.err == nil {
		j.err = j.enc.Encode(v)
	}
}

// Flush returns the first encoding error.
func (j *JSON) Flush() error { return j.err }

var _ siteswap.Target = (*JSON)(nil)
