package trans

import (
	"testing"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

type landing struct{ hand, beat int }
type origin struct{ hand, beat int }

// simultaneous replays the from loop before beat 0, the transition and the
// to loop after it on one timeline, and reports the first hand and beat at
// which a transition throw is caught together with a throw from another
// source. It shares no code with the finder.
func simultaneous(r siteswap.Rhythm, from, to *siteswap.Sequence, seq siteswap.Sequence) (landing, bool) {
	sources := map[landing]map[origin]bool{}
	mine := map[landing]bool{}
	add := func(t siteswap.Throw, at int, ours bool) {
		if t.From == t.To && (t.Value == 1 || t.Value == 2) {
			return
		}
		l := landing{t.To, at + t.Value}
		if sources[l] == nil {
			sources[l] = map[origin]bool{}
		}
		sources[l][origin{t.From, at}] = true
		if ours {
			mine[l] = true
		}
	}

	p := from.Len()
	for s := -1; s >= -4*p-siteswap.MaxThrow; s-- {
		for _, t := range from.Beats[((s%p)+p)%p] {
			if s+t.Value >= 0 {
				add(t, s, false)
			}
		}
	}
	for b, beat := range seq.Beats {
		for _, t := range beat {
			add(t, b, true)
		}
	}
	q := to.Len()
	for s := 0; s < 4*q+siteswap.MaxThrow; s++ {
		for _, t := range to.Beats[s%q] {
			add(t, seq.Len()+s, false)
		}
	}

	for l := range mine {
		if len(sources[l]) > 1 {
			return l, true
		}
	}
	return landing{}, false
}

// The from pattern [43]23 has a period of six beats and every transition
// out of it is shorter, so the catch projection has to wrap the from loop.
func TestSimultaneousCatchesShorterThanPreviousPeriod(t *testing.T) {
	restricted, from, to := physicalSearch(t, "[43]23", "4", 2)
	if from.Period() != 6 {
		t.Fatalf("from period = %d, want 6", from.Period())
	}
	if hi := MaxLength(restricted.From.State, 1); hi >= from.Period() {
		t.Fatalf("MaxLength = %d, want below the from period", hi)
	}

	seqs, _ := collect(t, restricted)
	if len(seqs) == 0 {
		t.Fatal("no transitions with the multiplex filter on")
	}
	for _, seq := range seqs {
		if seq.Len() >= from.Period() {
			t.Errorf("length %d is not below the from period", seq.Len())
		}
		if at, bad := simultaneous(restricted.Rhythm, &from.Loop, &to.Loop, seq); bad {
			t.Errorf("transition %v catches two sources in hand %d on beat %d", seq.Beats, at.hand, at.beat)
		}
	}

	free := restricted
	free.AllowSimultaneous = true
	all, _ := collect(t, free)
	if len(all) < len(seqs) {
		t.Errorf("unrestricted search found %d, restricted %d", len(all), len(seqs))
	}
	flagged := 0
	for _, seq := range all {
		if _, bad := simultaneous(free.Rhythm, &from.Loop, &to.Loop, seq); bad {
			flagged++
		}
	}
	if len(all)-flagged != len(seqs) {
		t.Errorf("restricted search found %d, want the %d unrestricted results without simultaneous catches", len(seqs), len(all)-flagged)
	}
}

func TestSimultaneousCatchesShortTransitionIntoLongLoop(t *testing.T) {
	// The to loop is longer than any transition into it.
	s, from, to := physicalSearch(t, "4", "[43]23", 2)
	seqs, _ := collect(t, s)
	for _, seq := range seqs {
		if seq.Len() >= to.Period() {
			t.Errorf("length %d is not below the to period", seq.Len())
		}
		if at, bad := simultaneous(s.Rhythm, &from.Loop, &to.Loop, seq); bad {
			t.Errorf("transition %v catches two sources in hand %d on beat %d", seq.Beats, at.hand, at.beat)
		}
	}
}
