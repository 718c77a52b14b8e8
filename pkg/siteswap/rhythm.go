package siteswap

import (
	"fmt"

	"github.com/matzehuels/jugglesearch/pkg/errors"
)

// MaxThrow is the largest throw expressible as a single base-36 digit.
const MaxThrow = 35

// Mode selects how hands map to jugglers and when they may throw.
type Mode int

const (
	// Async has one abstract hand per juggler throwing every beat.
	Async Mode = iota
	// Sync has two hands per juggler throwing together on even beats.
	Sync
	// Physical has two hands per juggler, each free to throw on any beat.
	Physical
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Async:
		return "async"
	case Sync:
		return "sync"
	case Physical:
		return "physical"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Side is the laterality of a hand.
type Side int

const (
	Right Side = iota
	Left
)

// String returns "R" or "L".
func (s Side) String() string {
	if s == Left {
		return "L"
	}
	return "R"
}

// Other returns the opposite side.
func (s Side) Other() Side {
	return 1 - s
}

// Rhythm describes the hands taking part and the beats they may throw on.
// A Rhythm is immutable once built.
type Rhythm struct {
	Mode     Mode
	Jugglers int
	Hands    int
	// Period is the rhythm period; every pattern period is a multiple of it.
	Period int
	// Capacity is the multiplex capacity of one hand on one beat.
	Capacity int

	avail [][]int // [hand][beat mod Period], 0 or Capacity
}

// RhythmFor builds the rhythm for a mode, juggler count and multiplex factor.
func RhythmFor(mode Mode, jugglers, multiplex int) (Rhythm, error) {
	if jugglers < 1 {
		return Rhythm{}, errors.New(errors.ErrCodeInvalidInput, "jugglers must be at least 1, got %d", jugglers)
	}
	if multiplex < 1 {
		return Rhythm{}, errors.New(errors.ErrCodeInvalidInput, "multiplex must be at least 1, got %d", multiplex)
	}

	r := Rhythm{Mode: mode, Jugglers: jugglers, Capacity: multiplex}
	switch mode {
	case Async:
		r.Hands, r.Period = jugglers, 1
	case Sync:
		r.Hands, r.Period = 2*jugglers, 2
	case Physical:
		r.Hands, r.Period = 2*jugglers, 1
	default:
		return Rhythm{}, errors.New(errors.ErrCodeUnsupported, "unknown rhythm mode %d", int(mode))
	}

	// Only beat 0 of the rhythm period is a throwing beat.
	r.avail = make([][]int, r.Hands)
	for h := range r.avail {
		r.avail[h] = make([]int, r.Period)
		r.avail[h][0] = multiplex
	}
	return r, nil
}

// Available returns how many objects hand h may throw on the given beat.
func (r Rhythm) Available(h, beat int) int {
	b := beat % r.Period
	if b < 0 {
		b += r.Period
	}
	return r.avail[h][b]
}

// Juggler returns the juggler owning hand h.
func (r Rhythm) Juggler(h int) int {
	if r.Mode == Async {
		return h
	}
	return h / 2
}

// Side returns the laterality of hand h. Async hands report Right.
func (r Rhythm) Side(h int) Side {
	if r.Mode == Async {
		return Right
	}
	return Side(h % 2)
}

// Hand returns the hand index for a juggler and side.
func (r Rhythm) Hand(juggler int, side Side) int {
	if r.Mode == Async {
		return juggler
	}
	return 2*juggler + int(side)
}

// IsHold reports whether t keeps the object in the hand that threw it:
// a 2 back to the same hand, or in the physical model also a 1.
func (r Rhythm) IsHold(t Throw) bool {
	if t.From != t.To {
		return false
	}
	if t.Value == 2 {
		return true
	}
	return r.Mode == Physical && t.Value == 1
}

// IsPass reports whether t moves the object to another juggler.
func (r Rhythm) IsPass(t Throw) bool {
	return r.Juggler(t.From) != r.Juggler(t.To)
}

// String returns a compact description such as "sync/2j/m1".
func (r Rhythm) String() string {
	return fmt.Sprintf("%s/%dj/m%d", r.Mode, r.Jugglers, r.Capacity)
}
