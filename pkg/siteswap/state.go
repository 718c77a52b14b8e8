package siteswap

import (
	"strconv"
	"strings"
)

// State is an occupancy matrix: At(h, o) objects land in hand h o beats
// from now. Offsets at or beyond Height read as zero.
//
// State values share their backing array; use Clone before keeping a copy.
type State struct {
	Hands  int
	Height int
	cells  []int
}

// NewState returns an empty state.
func NewState(hands, height int) State {
	return State{Hands: hands, Height: height, cells: make([]int, hands*height)}
}

// At returns the occupancy of hand h at offset o.
func (s State) At(h, o int) int {
	if o < 0 || o >= s.Height {
		return 0
	}
	return s.cells[h*s.Height+o]
}

// Set stores v at (h, o).
func (s State) Set(h, o, v int) {
	s.cells[h*s.Height+o] = v
}

// Add adds d at (h, o).
func (s State) Add(h, o, d int) {
	s.cells[h*s.Height+o] += d
}

// Reset zeroes every cell.
func (s State) Reset() {
	clear(s.cells)
}

// Objects returns the total occupancy.
func (s State) Objects() int {
	n := 0
	for _, v := range s.cells {
		n += v
	}
	return n
}

// Max returns the largest single occupancy.
func (s State) Max() int {
	m := 0
	for _, v := range s.cells {
		m = max(m, v)
	}
	return m
}

// Top returns one past the highest nonzero offset in any hand.
func (s State) Top() int {
	top := 0
	for h := 0; h < s.Hands; h++ {
		for o := s.Height - 1; o >= top; o-- {
			if s.At(h, o) > 0 {
				top = o + 1
				break
			}
		}
	}
	return top
}

// Clone returns an independent copy.
func (s State) Clone() State {
	c := State{Hands: s.Hands, Height: s.Height, cells: make([]int, len(s.cells))}
	copy(c.cells, s.cells)
	return c
}

// Resize returns a copy with a different height, truncating or zero-padding.
func (s State) Resize(height int) State {
	c := NewState(s.Hands, height)
	for h := 0; h < s.Hands; h++ {
		for o := 0; o < min(height, s.Height); o++ {
			c.Set(h, o, s.At(h, o))
		}
	}
	return c
}

// CopyFrom overwrites s with o; both must have the same shape.
func (s State) CopyFrom(o State) {
	copy(s.cells, o.cells)
}

// Equal reports whether both states have the same occupancy, ignoring
// trailing zero offsets.
func (s State) Equal(o State) bool {
	if s.Hands != o.Hands {
		return false
	}
	for h := 0; h < s.Hands; h++ {
		for k := 0; k < max(s.Height, o.Height); k++ {
			if s.At(h, k) != o.At(h, k) {
				return false
			}
		}
	}
	return true
}

// Shifted returns the state seen k beats later, assuming nothing is thrown.
// Objects at offsets below k are dropped.
func (s State) Shifted(k int) State {
	c := NewState(s.Hands, s.Height)
	for h := 0; h < s.Hands; h++ {
		for o := 0; o+k < s.Height; o++ {
			c.Set(h, o, s.At(h, o+k))
		}
	}
	return c
}

// String renders one row per hand, offsets left to right, "-" for empty
// and the count otherwise, e.g. "1-1|-1-".
func (s State) String() string {
	var b strings.Builder
	top := max(s.Top(), 1)
	for h := 0; h < s.Hands; h++ {
		if h > 0 {
			b.WriteByte('|')
		}
		for o := 0; o < top; o++ {
			if v := s.At(h, o); v > 0 {
				b.WriteString(strconv.Itoa(v))
			} else {
				b.WriteByte('-')
			}
		}
	}
	return b.String()
}

// GroundState packs n objects into the lowest available slots, offset by
// offset and hand by hand, filling each slot up to its rhythm capacity.
// It reports false when n objects do not fit below height.
func GroundState(r Rhythm, n, height int) (State, bool) {
	s := NewState(r.Hands, height)
	left := n
	for o := 0; o < height && left > 0; o++ {
		for h := 0; h < r.Hands && left > 0; h++ {
			c := min(r.Available(h, o), left)
			s.Set(h, o, c)
			left -= c
		}
	}
	return s, left == 0
}

// Order is the result of CompareStates.
type Order int

const (
	Lesser  Order = -1
	Equal   Order = 0
	Greater Order = 1
)

// CompareStates orders states first by their largest single occupancy, then
// lexicographically from the highest offset and hand index downward.
// It is a deterministic total order with no physical meaning.
func CompareStates(a, b State) Order {
	ma, mb := a.Max(), b.Max()
	switch {
	case ma > mb:
		return Greater
	case ma < mb:
		return Lesser
	}
	height := max(a.Height, b.Height)
	hands := max(a.Hands, b.Hands)
	for o := height - 1; o >= 0; o-- {
		for h := hands - 1; h >= 0; h-- {
			va, vb := cell(a, h, o), cell(b, h, o)
			switch {
			case va > vb:
				return Greater
			case va < vb:
				return Lesser
			}
		}
	}
	return Equal
}

func cell(s State, h, o int) int {
	if h >= s.Hands {
		return 0
	}
	return s.At(h, o)
}
