package siteswap

import (
	"github.com/matzehuels/jugglesearch/pkg/errors"
)

// Throw sends one object from hand From to hand To, landing Value beats later.
type Throw struct {
	From  int
	To    int
	Value int
}

// Sequence is an ordered list of beats; each beat lists its throws by
// source hand, multiplexed throws of one hand adjacent and in slot order.
type Sequence struct {
	Rhythm Rhythm
	Beats  [][]Throw
}

// Len returns the number of beats.
func (s Sequence) Len() int {
	return len(s.Beats)
}

// MaxValue returns the highest throw in the sequence.
func (s Sequence) MaxValue() int {
	m := 0
	for _, beat := range s.Beats {
		for _, t := range beat {
			m = max(m, t.Value)
		}
	}
	return m
}

// ThrowsFrom returns the throws made by hand h on beat b.
func (s Sequence) ThrowsFrom(b, h int) []Throw {
	var out []Throw
	for _, t := range s.Beats[b] {
		if t.From == h {
			out = append(out, t)
		}
	}
	return out
}

// Apply throws seq out of state and returns the state after seq.Len() beats.
// Every hand must throw exactly the objects landing in it on each beat.
func Apply(state State, seq Sequence) (State, error) {
	height := max(state.Height, seq.MaxValue()+1)
	cur := state.Resize(height)
	thrown := make([]int, state.Hands)

	for b, beat := range seq.Beats {
		clear(thrown)
		for _, t := range beat {
			if t.From < 0 || t.From >= state.Hands || t.To < 0 || t.To >= state.Hands {
				return State{}, errors.New(errors.ErrCodeInvalidPattern, "beat %d: throw between unknown hands %d->%d", b, t.From, t.To)
			}
			if t.Value > 0 {
				thrown[t.From]++
			}
		}
		for h := 0; h < state.Hands; h++ {
			if thrown[h] != cur.At(h, 0) {
				return State{}, errors.New(errors.ErrCodeInvalidPattern,
					"beat %d: hand %d throws %d objects but holds %d", b, h, thrown[h], cur.At(h, 0))
			}
		}
		next := cur.Shifted(1)
		for _, t := range beat {
			if t.Value > 0 {
				next.Add(t.To, t.Value-1, 1)
			}
		}
		cur = next
	}
	return cur, nil
}

// Clone returns a copy that shares nothing with s.
func (s Sequence) Clone() Sequence {
	beats := make([][]Throw, len(s.Beats))
	for i, beat := range s.Beats {
		if len(beat) > 0 {
			beats[i] = append([]Throw(nil), beat...)
		}
	}
	return Sequence{Rhythm: s.Rhythm, Beats: beats}
}
