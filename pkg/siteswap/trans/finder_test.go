package trans

import (
	"context"
	"testing"

	"github.com/matzehuels/jugglesearch/pkg/errors"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/notation"
)

func mustParse(t *testing.T, text string) *notation.Pattern {
	t.Helper()
	p, err := notation.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return p
}

// physicalSearch builds a search between two parsed patterns the way Run
// does.
func physicalSearch(t *testing.T, from, to string, multiplex int) (Search, *notation.Pattern, *notation.Pattern) {
	t.Helper()
	a, b := mustParse(t, from), mustParse(t, to)
	cfg := DefaultConfig()
	cfg.Multiplex = multiplex
	p, err := newPlan(cfg, Endpoints{From: a, To: b})
	if err != nil {
		t.Fatal(err)
	}
	return Search{Rhythm: p.rhythm, From: p.from, To: p.to, Clusters: true}, a, b
}

func collect(t *testing.T, s Search) ([]siteswap.Sequence, siteswap.Outcome) {
	t.Helper()
	var out []siteswap.Sequence
	outcome, err := Find(context.Background(), s, func(seq siteswap.Sequence) siteswap.Signal {
		out = append(out, seq.Clone())
		return siteswap.Continue
	})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	return out, outcome
}

func TestMinMaxLength(t *testing.T) {
	s, _, _ := physicalSearch(t, "3", "51", 1)
	if got := MinLength(s.From.State, s.To.State, 1); got != 2 {
		t.Errorf("MinLength(3, 51) = %d, want 2", got)
	}
	if got := MaxLength(s.From.State, 1); got != 3 {
		t.Errorf("MaxLength(3) = %d, want 3", got)
	}
	if got := MinLength(s.From.State, s.From.State, 1); got != 0 {
		t.Errorf("MinLength(3, 3) = %d, want 0", got)
	}
	// Sync lengths are whole rhythm periods.
	if got := MaxLength(s.From.State, 2); got != 4 {
		t.Errorf("MaxLength(3, rp 2) = %d, want 4", got)
	}
}

func TestFindCascadeToFiveOne(t *testing.T) {
	s, _, _ := physicalSearch(t, "3", "51", 1)
	seqs, outcome := collect(t, s)

	var got []string
	for _, seq := range seqs {
		got = append(got, notation.RenderTransition(seq))
	}
	want := []string{"34", "52"}
	if len(got) != len(want) {
		t.Fatalf("transitions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition %d = %q, want %q", i, got[i], want[i])
		}
	}
	if outcome.Reason != siteswap.Completed || outcome.Count != 2 {
		t.Errorf("outcome = %+v", outcome)
	}
}

func TestFindListsShortestLengthOnly(t *testing.T) {
	for _, pair := range [][2]string{{"3", "51"}, {"3", "531"}, {"51", "441"}} {
		s, _, _ := physicalSearch(t, pair[0], pair[1], 1)
		seqs, _ := collect(t, s)
		if len(seqs) == 0 {
			t.Fatalf("%s -> %s: no transitions", pair[0], pair[1])
		}
		n := seqs[0].Len()
		for _, seq := range seqs[1:] {
			if seq.Len() != n {
				t.Errorf("%s -> %s: lengths %d and %d", pair[0], pair[1], n, seq.Len())
			}
		}
	}
}

func TestFindTransitionsReachTarget(t *testing.T) {
	pairs := [][2]string{
		{"3", "51"},
		{"3", "531"},
		{"51", "3"},
		{"441", "3"},
		{"(4,4)", "4"},
		{"4", "(4,4)"},
		{"531", "51"},
		{"<3p|3p>", "<3|3>"},
	}
	for _, pair := range pairs {
		t.Run(pair[0]+"->"+pair[1], func(t *testing.T) {
			s, _, _ := physicalSearch(t, pair[0], pair[1], 1)
			seqs, _ := collect(t, s)
			if len(seqs) == 0 {
				t.Fatal("no transitions")
			}
			lo, hi := MinLength(s.From.State, s.To.State, 1), MaxLength(s.From.State, 1)
			for _, seq := range seqs {
				if seq.Len() < lo || seq.Len() > hi {
					t.Errorf("length %d outside [%d, %d]", seq.Len(), lo, hi)
				}
				// Rendered text must re-parse to the same effect.
				text := notation.RenderTransition(seq)
				again, err := notation.ParseSequence(text, s.Rhythm.Jugglers)
				if err != nil {
					t.Fatalf("re-parse %q: %v", text, err)
				}
				end, err := siteswap.Apply(s.From.State, again)
				if err != nil {
					t.Fatalf("Apply(%q): %v", text, err)
				}
				if !end.Equal(s.To.State) {
					t.Errorf("%q ends in %s, want %s", text, end, s.To.State)
				}
			}
		})
	}
}

func TestFindEqualStates(t *testing.T) {
	// 3 and 531 share the ground state: the transition is empty.
	s, _, _ := physicalSearch(t, "3", "531", 1)
	if got := MinLength(s.From.State, s.To.State, 1); got != 0 {
		t.Fatalf("MinLength = %d, want 0", got)
	}
	seqs, _ := collect(t, s)
	if len(seqs) != 1 || seqs[0].Len() != 0 {
		t.Fatalf("got %d transitions, want one empty", len(seqs))
	}
}

func TestFindFirstAsync(t *testing.T) {
	r, _ := siteswap.RhythmFor(siteswap.Async, 1, 1)
	ground, _ := siteswap.GroundState(r, 3, 5)
	excited := siteswap.NewState(1, 5)
	for _, o := range []int{0, 1, 3} {
		excited.Set(0, o, 1)
	}

	seq, err := FindFirst(context.Background(), Search{
		Rhythm:            r,
		From:              Endpoint{State: ground},
		To:                Endpoint{State: excited},
		AllowSimultaneous: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := notation.Render(seq); got != "4" {
		t.Errorf("ground to 11-1 = %q, want 4", got)
	}
}

func TestFindMismatchedObjects(t *testing.T) {
	r, _ := siteswap.RhythmFor(siteswap.Async, 1, 1)
	a, _ := siteswap.GroundState(r, 3, 5)
	b, _ := siteswap.GroundState(r, 4, 5)
	_, err := Find(context.Background(), Search{Rhythm: r, From: Endpoint{State: a}, To: Endpoint{State: b}},
		func(siteswap.Sequence) siteswap.Signal { return siteswap.Continue })
	if !errors.Is(err, errors.ErrCodeMismatchedPatterns) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeMismatchedPatterns)
	}
}

func TestFindStopsAtMaxNum(t *testing.T) {
	s, _, _ := physicalSearch(t, "3", "51", 1)
	s.MaxNum = 1
	seqs, outcome := collect(t, s)
	if len(seqs) != 1 {
		t.Errorf("got %d transitions, want 1", len(seqs))
	}
	if outcome.Reason != siteswap.LimitReached || outcome.Count != 1 {
		t.Errorf("outcome = %+v, want limit/1", outcome)
	}
}

func TestFindFirstEqualStates(t *testing.T) {
	r, _ := siteswap.RhythmFor(siteswap.Async, 1, 1)
	a, _ := siteswap.GroundState(r, 3, 5)
	seq, err := FindFirst(context.Background(), Search{Rhythm: r, From: Endpoint{State: a}, To: Endpoint{State: a.Clone()}})
	if err != nil {
		t.Fatalf("FindFirst: %v", err)
	}
	if seq.Len() != 0 {
		t.Errorf("got %d beats, want an empty transition", seq.Len())
	}
}
