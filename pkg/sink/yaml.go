package sink

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// yamlDoc is the document YAML writes on Flush.
type yamlDoc struct {
	Run      string   `yaml:"run"`
	Status   string   `yaml:"status,omitempty"`
	Patterns []Record `yaml:"patterns"`
}

// YAML collects a run and writes it as one YAML document on Flush.
type YAML struct {
	w   io.Writer
	run run
	doc yamlDoc
}

// NewYAML returns a YAML sink on w. An empty runID gets a new one.
func NewYAML(w io.Writer, runID string) *YAML {
	y := &YAML{w: w, run: newRun(runID)}
	y.doc.Run = y.run.id
	return y
}

// Emit implements siteswap.Target.
func (y *YAML) Emit(display, notation, animation string) {
	y.doc.Patterns = append(y.doc.Patterns, y.run.record(display, notation, animation))
}

// SetStatus implements siteswap.Target.
func (y *YAML) SetStatus(msg string) { y.doc.Status = msg }

// Flush writes the document.
func (y *YAML) Flush() error {
	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	if err := enc.Encode(y.doc); err != nil {
		return err
	}
	return enc.Close()
}

var _ siteswap.Target = (*YAML)(nil)
