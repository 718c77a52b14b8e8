package trans

import (
	"context"
	"time"

	"github.com/matzehuels/jugglesearch/pkg/errors"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/filter"
)

// Endpoint is one side of a transition: a state and, when known, the
// periodic loop that keeps producing it.
type Endpoint struct {
	State siteswap.State
	Loop  *siteswap.Sequence
}

// Search describes one transition search. It is not modified by Find.
type Search struct {
	Rhythm siteswap.Rhythm
	From   Endpoint
	To     Endpoint

	// AllowSimultaneous lets a multiplexing hand catch throws from different
	// sources on one beat. Without it the loops of From and To are projected
	// around the transition so their catches are counted too.
	AllowSimultaneous bool
	// Clusters lets objects thrown together from one hand land together.
	Clusters bool
	// FindFirst stops the search after one transition.
	FindFirst bool

	MaxNum  int
	Timeout time.Duration
}

func (s *Search) validate() error {
	a, b := s.From.State, s.To.State
	if a.Hands != s.Rhythm.Hands || b.Hands != s.Rhythm.Hands {
		return errors.New(errors.ErrCodeMismatchedPatterns, "states have %d and %d hands, rhythm has %d", a.Hands, b.Hands, s.Rhythm.Hands)
	}
	if a.Objects() != b.Objects() {
		return errors.New(errors.ErrCodeMismatchedPatterns, "patterns juggle %d and %d objects", a.Objects(), b.Objects())
	}
	return nil
}

// fits reports whether every landing still scheduled in from after n beats
// has room in to.
func fits(from, to siteswap.State, n int) bool {
	for h := 0; h < from.Hands; h++ {
		for o := 0; o+n < from.Height; o++ {
			if from.At(h, o+n) > to.At(h, o) {
				return false
			}
		}
	}
	return true
}

// MinLength returns the shortest length, a multiple of the rhythm period
// rp, after which no landing scheduled in from overflows to.
func MinLength(from, to siteswap.State, rp int) int {
	top := from.Top()
	for n := 0; ; n += rp {
		if n >= top || fits(from, to, n) {
			return n
		}
	}
}

// MaxLength returns one past the last offset at which from holds an
// object, rounded up to the rhythm period. By then every object of from has
// been thrown, so longer transitions add nothing.
func MaxLength(from siteswap.State, rp int) int {
	return (from.Top() + rp - 1) / rp * rp
}

// finder is the search context. Every array is sized once for the longest
// length and reused.
type finder struct {
	s        *Search
	r        siteswap.Rhythm
	hands    int
	physical bool

	length int
	size   int
	occ    [][]int // [hand][beat] objects landing
	limit  [][]int // [hand][beat] room left for landings
	beats  [][]siteswap.Throw
	held   [][]int // [beat][hand] 1s a hand kept to itself

	catches *filter.Catches
	budget  *siteswap.Budget
	emit    func(siteswap.Sequence) siteswap.Signal
	found   int
}

// Find searches transitions from s.From to s.To and calls emit with each,
// shortest length first. The sequence passed to emit is only valid during
// the call. The search stops at the end of the first length with results,
// when emit returns Stop, or on the count and time limits.
func Find(ctx context.Context, s Search, emit func(siteswap.Sequence) siteswap.Signal) (siteswap.Outcome, error) {
	if err := s.validate(); err != nil {
		return siteswap.Outcome{}, err
	}
	maxNum := s.MaxNum
	if s.FindFirst {
		maxNum = 1
	}
	f := &finder{
		s:        &s,
		r:        s.Rhythm,
		hands:    s.Rhythm.Hands,
		physical: s.Rhythm.Mode == siteswap.Physical,
		budget:   siteswap.NewBudget(ctx, maxNum, s.Timeout),
		emit:     emit,
	}

	a, b, rp := s.From.State, s.To.State, s.Rhythm.Period
	lo, hi := MinLength(a, b, rp), MaxLength(a, rp)
	f.alloc(hi)
	for n := lo; n <= hi; n += rp {
		if !fits(a, b, n) {
			continue
		}
		f.prepare(n)
		if f.fill(0, 0, 0, 0) == siteswap.Stop || f.found > 0 {
			break
		}
	}
	return f.budget.Outcome(), nil
}

// FindFirst returns one transition of the shortest possible length. Not
// finding one means the search rules are inconsistent, which is reported
// as an internal error.
func FindFirst(ctx context.Context, s Search) (siteswap.Sequence, error) {
	s.FindFirst = true
	var out siteswap.Sequence
	found := 0
	outcome, err := Find(ctx, s, func(seq siteswap.Sequence) siteswap.Signal {
		found++
		out = seq.Clone()
		return siteswap.Stop
	})
	if err != nil {
		return siteswap.Sequence{}, err
	}
	if outcome.Reason == siteswap.Canceled {
		return siteswap.Sequence{}, ctx.Err()
	}
	if found != 1 {
		return siteswap.Sequence{}, errors.Internal("expected one transition from %s to %s, found %d", s.From.State, s.To.State, found)
	}
	return out, nil
}

func (f *finder) alloc(maxLen int) {
	a, b := f.s.From.State, f.s.To.State
	f.size = max(a.Height, maxLen+b.Height) + 1
	f.occ = make([][]int, f.hands)
	f.limit = make([][]int, f.hands)
	for h := range f.occ {
		f.occ[h] = make([]int, f.size)
		f.limit[h] = make([]int, f.size)
	}
	f.beats = make([][]siteswap.Throw, maxLen)
	f.held = make([][]int, maxLen)
	for i := range f.beats {
		f.beats[i] = make([]siteswap.Throw, 0, f.hands*f.r.Capacity)
		f.held[i] = make([]int, f.hands)
	}
	if !f.s.AllowSimultaneous && f.r.Capacity > 1 {
		f.catches = filter.NewCatches(f.hands, f.size, f.s.Clusters)
	}
}

func (f *finder) prepare(n int) {
	a, b := f.s.From.State, f.s.To.State
	f.length = n
	for h := 0; h < f.hands; h++ {
		for i := 0; i < f.size; i++ {
			f.occ[h][i] = a.At(h, i)
			if i < n {
				f.limit[h][i] = f.r.Available(h, i)
			} else {
				f.limit[h][i] = b.At(h, i-n)
			}
		}
	}
	for i := range f.beats {
		f.beats[i] = f.beats[i][:0]
		clear(f.held[i])
	}
	f.seed()
}

// seed registers the catches of the surrounding loops: throws the From
// loop made before beat 0 and throws the To loop makes after the
// transition, both found by periodic projection.
func (f *finder) seed() {
	if f.catches == nil {
		return
	}
	f.catches.Reset()
	if loop := f.s.From.Loop; loop != nil && loop.Len() > 0 {
		p := loop.Len()
		for s := -1; s >= -siteswap.MaxThrow; s-- {
			for _, t := range loop.Beats[((s%p)+p)%p] {
				if land := s + t.Value; land >= 0 && !f.r.IsHold(t) {
					f.catches.Seed(t.To, land)
				}
			}
		}
	}
	if loop := f.s.To.Loop; loop != nil && loop.Len() > 0 {
		p := loop.Len()
		for s := 0; f.length+s < f.size; s++ {
			for _, t := range loop.Beats[s%p] {
				if !f.r.IsHold(t) {
					f.catches.Seed(t.To, f.length+s+t.Value)
				}
			}
		}
	}
}

// fill assigns the k-th throw of hand h on beat b. Keys order the throws of
// one multiplexing hand so each multiset is tried once.
func (f *finder) fill(b, h, k, prev int) siteswap.Signal {
	if f.budget.Tick() == siteswap.Stop {
		return siteswap.Stop
	}
	if b == f.length {
		return f.complete()
	}
	if h == f.hands {
		if f.physical && !f.adjacent(b) {
			return siteswap.Continue
		}
		return f.fill(b+1, 0, 0, 0)
	}
	if k == f.occ[h][b] {
		return f.fill(b, h+1, 0, 0)
	}

	// Throws that land in the target state first, then short fills.
	first := max(1, f.length-b)
	for v := first; v <= siteswap.MaxThrow; v++ {
		if f.try(b, h, k, prev, v) == siteswap.Stop {
			return siteswap.Stop
		}
	}
	for v := 1; v < first; v++ {
		if f.try(b, h, k, prev, v) == siteswap.Stop {
			return siteswap.Stop
		}
	}
	return siteswap.Continue
}

func (f *finder) try(b, h, k, prev, v int) siteswap.Signal {
	land := b + v
	if land >= f.size {
		return siteswap.Continue
	}
	for t := 0; t < f.hands; t++ {
		key := v*f.hands + t
		if key < prev || f.occ[t][land] >= f.limit[t][land] {
			continue
		}
		th := siteswap.Throw{From: h, To: t, Value: v}
		keep := f.physical && t == h && v == 1
		// Two 1s kept in a row are written as a 2.
		if keep && b > 0 && f.held[b-1][h] > 0 {
			continue
		}
		caught := false
		if f.catches != nil && !f.r.IsHold(th) {
			if !f.catches.Catch(t, land, filter.Source{Hand: h, Beat: b}) {
				continue
			}
			caught = true
		}

		f.occ[t][land]++
		f.beats[b] = append(f.beats[b], th)
		if keep {
			f.held[b][h]++
		}
		sig := f.fill(b, h, k+1, key)
		if keep {
			f.held[b][h]--
		}
		f.beats[b] = f.beats[b][:len(f.beats[b])-1]
		f.occ[t][land]--
		if caught {
			f.catches.Release(t, land)
		}

		if sig == siteswap.Stop {
			return siteswap.Stop
		}
	}
	return siteswap.Continue
}

// adjacent checks the physical rule that a hand which has to act on beat
// b+1 can only keep objects on beat b.
func (f *finder) adjacent(b int) bool {
	for h := 0; h < f.hands; h++ {
		if f.occ[h][b+1] == 0 {
			continue
		}
		for _, t := range f.beats[b] {
			if t.From == h && (t.To != h || t.Value != 1) {
				return false
			}
		}
	}
	return true
}

func (f *finder) complete() siteswap.Signal {
	f.found++
	seq := siteswap.Sequence{Rhythm: f.r, Beats: f.beats[:f.length]}
	if f.emit(seq) == siteswap.Stop {
		f.budget.Emitted()
		return siteswap.Stop
	}
	return f.budget.Emitted()
}
