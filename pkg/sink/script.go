package sink

import (
	"strings"

	"github.com/dop251/goja"

	"github.com/matzehuels/jugglesearch/pkg/errors"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// Script forwards only the patterns a JavaScript expression accepts.
// The expression sees the pattern as p, with fields display, notation,
// animation and length (the number of characters of the animation text):
//
//	p.animation.indexOf("5") >= 0 && p.length <= 4
//
// A runtime error in the expression drops the pattern and is kept for Err.
type Script struct {
	next siteswap.Target
	vm   *goja.Runtime
	fn   goja.Callable
	err  error

	passed, dropped int
}

// NewScript compiles expr and wraps next.
func NewScript(expr string, next siteswap.Target) (*Script, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty script expression")
	}
	vm := goja.New()
	v, err := vm.RunString("(function(p) { return (" + expr + "); })")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "script %q", expr)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "script %q is not an expression", expr)
	}
	return &Script{next: next, vm: vm, fn: fn}, nil
}

// Emit implements siteswap.Target.
func (s *Script) Emit(display, notation, animation string) {
	p := map[string]any{
		"display":   display,
		"notation":  notation,
		"animation": animation,
		"length":    len(animation),
	}
	v, err := s.fn(goja.Undefined(), s.vm.ToValue(p))
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		s.dropped++
		return
	}
	if !v.ToBoolean() {
		s.dropped++
		return
	}
	s.passed++
	s.next.Emit(display, notation, animation)
}

// SetStatus implements siteswap.Target.
func (s *Script) SetStatus(msg string) { s.next.SetStatus(msg) }

// Passed returns how many patterns the expression accepted.
func (s *Script) Passed() int { return s.passed }

// Dropped returns how many patterns the expression rejected or failed on.
func (s *Script) Dropped() int { return s.dropped }

// Err returns the first runtime error of the expression.
func (s *Script) Err() error { return s.err }

// Unwrap returns the wrapped target.
func (s *Script) Unwrap() siteswap.Target { return s.next }

// Flush flushes the wrapped target.
func (s *Script) Flush() error {
	if err := Flush(s.next); err != nil {
		return err
	}
	return s.err
}

var _ siteswap.Target = (*Script)(nil)
