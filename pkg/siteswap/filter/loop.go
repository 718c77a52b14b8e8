package filter

import (
	"slices"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// Delay is the passing communication delay: during the first Beats beats
// of a pattern only the Leader juggler may pass, since the others have not
// yet been told what to do.
type Delay struct {
	Beats  int
	Leader int
}

// Allows reports whether t may be thrown on beat pos.
func (d Delay) Allows(r siteswap.Rhythm, pos int, t siteswap.Throw) bool {
	if pos >= d.Beats || r.Jugglers < 2 || !r.IsPass(t) {
		return true
	}
	return r.Juggler(t.From) == d.Leader
}

// Connected reports whether every juggler is reachable from juggler 0
// through the passes of one period, ignoring pass direction.
func Connected(r siteswap.Rhythm, beats [][]siteswap.Throw) bool {
	if r.Jugglers < 2 {
		return true
	}
	parent := make([]int, r.Jugglers)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for _, beat := range beats {
		for _, t := range beat {
			if t.Value == 0 {
				continue
			}
			a, b := find(r.Juggler(t.From)), find(r.Juggler(t.To))
			if a != b {
				parent[b] = a
			}
		}
	}
	root := find(0)
	for j := 1; j < r.Jugglers; j++ {
		if find(j) != root {
			return false
		}
	}
	return true
}

// throwScore weights height first and passing second.
func throwScore(r siteswap.Rhythm, t siteswap.Throw) int {
	s := 2 * t.Value
	if r.IsPass(t) {
		s++
	}
	return s
}

// PermutationCanonical is an approximate test for the preferred labelling
// of the jugglers. Every juggler gets one score per beat, the sum of its
// throw scores on that beat, so a beat without throws scores 0. For each
// pair of adjacent jugglers it greedily pairs the beats of juggler m with
// the best unmatched beat of juggler m+1 and rejects the pattern when m+1
// comes out ahead. Two labellings with equal score lists both pass, so some
// permuted duplicates are still listed.
func PermutationCanonical(r siteswap.Rhythm, beats [][]siteswap.Throw) bool {
	if r.Jugglers < 2 {
		return true
	}
	scores := make([][]int, r.Jugglers)
	for j := range scores {
		scores[j] = make([]int, len(beats))
	}
	for b, beat := range beats {
		for _, t := range beat {
			scores[r.Juggler(t.From)][b] += throwScore(r, t)
		}
	}
	for _, s := range scores {
		slices.Sort(s)
		slices.Reverse(s)
	}
	for m := 0; m+1 < r.Jugglers; m++ {
		a, b := scores[m], scores[m+1]
		for i := range a {
			if b[i] > a[i] {
				return false
			}
			if a[i] > b[i] {
				break
			}
		}
	}
	return true
}

// Lame reports whether some hand makes a 1 to itself on two consecutive
// beats of the loop, the wrap from the last beat to the first included.
// The generator applies it only without multiplexing.
func Lame(r siteswap.Rhythm, beats [][]siteswap.Throw) bool {
	n := len(beats)
	if n == 0 {
		return false
	}
	selfOne := func(b, h int) bool {
		for _, t := range beats[b] {
			if t.From == h && t.To == h && t.Value == 1 {
				return true
			}
		}
		return false
	}
	for b := 0; b < n; b++ {
		for h := 0; h < r.Hands; h++ {
			if selfOne(b, h) && selfOne((b+1)%n, h) {
				return true
			}
		}
	}
	return false
}

// TrueMultiplex reports whether the throws one hand makes on one beat are a
// real multiplex: a single throw always is, and several throws need at
// least two that are not holds.
func TrueMultiplex(r siteswap.Rhythm, throws []siteswap.Throw) bool {
	if len(throws) < 2 {
		return true
	}
	moving := 0
	for _, t := range throws {
		if !r.IsHold(t) {
			moving++
		}
	}
	return moving >= 2
}
