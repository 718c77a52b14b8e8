package sink

import (
	"errors"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// Tee sends everything to each of its targets in order.
type Tee []siteswap.Target

// Emit implements siteswap.Target.
func (t Tee) Emit(display, notation, animation string) {
	for _, target := range t {
		target.Emit(display, notation, animation)
	}
}

// SetStatus implements siteswap.Target.
func (t Tee) SetStatus(msg string) {
	for _, target := range t {
		target.SetStatus(msg)
	}
}

// Flush flushes every target and joins their errors.
func (t Tee) Flush() error {
	var errs []error
	for _, target := range t {
		errs = append(errs, Flush(target))
	}
	return errors.Join(errs...)
}

var _ siteswap.Target = Tee(nil)
