package gen

import (
	"context"
	"math"
	"slices"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/filter"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/notation"
)

// Generator runs one configuration. It is not safe for concurrent use;
// hosts build one per goroutine.
type Generator struct {
	cfg     Config
	r       siteswap.Rhythm
	height  int
	matcher *filter.Matcher

	// Progress, when set, is called as each period starts with the number
	// of patterns found so far.
	Progress func(period, count int)
}

// New validates cfg and compiles its terms.
func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, err := cfg.Rhythm()
	if err != nil {
		return nil, err
	}
	m, err := filter.NewMatcher(cfg.Exclude, cfg.Include)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, r: r, height: cfg.Height(), matcher: m}, nil
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() Config {
	return g.cfg
}

// Run builds a generator for cfg and runs it.
func Run(ctx context.Context, cfg Config, target siteswap.Target) (siteswap.Outcome, error) {
	g, err := New(cfg)
	if err != nil {
		return siteswap.Outcome{}, err
	}
	return g.Run(ctx, target)
}

// Run searches every period of the range and emits each accepted pattern
// to target. Stopping on a limit is reported in the outcome, not as an
// error.
func (g *Generator) Run(ctx context.Context, target siteswap.Target) (siteswap.Outcome, error) {
	s := &search{
		ctx:    ctx,
		g:      g,
		cfg:    &g.cfg,
		r:      g.r,
		hands:  g.r.Hands,
		height: g.height,
		rp:     g.r.Period,
		delay:  filter.Delay{Beats: g.cfg.Delay, Leader: g.cfg.Leader},
		budget: siteswap.NewBudget(ctx, g.cfg.MaxNum, g.cfg.Timeout),
		target: target,
		ends:   make(map[string]ends),
	}

	first, last := g.cfg.Periods()
	if last == 0 {
		last = stateCount(g.r, g.cfg.Objects, g.height) * g.r.Period
	}
	s.first = first

	var ok bool
	if s.ground, ok = siteswap.GroundState(g.r, g.cfg.Objects, g.height); ok {
		for l := first; l <= last; l += g.r.Period {
			if g.Progress != nil {
				g.Progress(l, s.budget.Count())
			}
			if s.period(l) == siteswap.Stop {
				break
			}
		}
	}
	if s.err != nil {
		return siteswap.Outcome{}, s.err
	}

	outcome := s.budget.Outcome()
	if g.cfg.ShowCount || g.cfg.CountOnly {
		target.SetStatus(Status(outcome))
	}
	return outcome, nil
}

// stateCount bounds the number of distinct states, and so the period of a
// prime loop, for n objects below height. It saturates at math.MaxInt32.
func stateCount(r siteswap.Rhythm, n, height int) int {
	ways := make([]int, n+1)
	ways[0] = 1
	next := make([]int, n+1)
	for o := 0; o < height; o++ {
		for h := 0; h < r.Hands; h++ {
			c := r.Available(h, o)
			for k := range next {
				sum := 0
				for j := 0; j <= min(c, k); j++ {
					sum = min(sum+ways[k-j], math.MaxInt32)
				}
				next[k] = sum
			}
			ways, next = next, ways
		}
	}
	return max(ways[n], 1)
}

const noKey = math.MaxInt

// search is the context of one run. Its arrays are sized for the longest
// period searched so far and reused by every start state.
type search struct {
	ctx    context.Context
	g      *Generator
	cfg    *Config
	r      siteswap.Rhythm
	hands  int
	height int
	rp     int
	first  int

	ground     siteswap.State
	start      siteswap.State
	fromGround bool

	length int
	occ    [][]int            // [hand][beat] objects landing
	limit  [][]int            // [hand][beat] room for landings
	beats  [][]siteswap.Throw // [beat] throws so far
	states []siteswap.State   // [beat] state before the beat, start at 0
	text   []byte

	catches *filter.Catches
	delay   filter.Delay
	budget  *siteswap.Budget
	target  siteswap.Target
	ends    map[string]ends
	err     error
}

// ensure sizes the arrays for period l.
func (s *search) ensure(l int) {
	s.length = l
	size := l + s.height
	if len(s.beats) >= l {
		return
	}
	s.occ = make([][]int, s.hands)
	s.limit = make([][]int, s.hands)
	for h := range s.occ {
		s.occ[h] = make([]int, size)
		s.limit[h] = make([]int, size)
	}
	s.beats = make([][]siteswap.Throw, l)
	for i := range s.beats {
		s.beats[i] = make([]siteswap.Throw, 0, s.hands*s.r.Capacity)
	}
	s.states = make([]siteswap.State, l+1)
	for i := range s.states {
		s.states[i] = siteswap.NewState(s.hands, s.height)
	}
	s.start = s.states[0]
	if s.r.Capacity > 1 && s.cfg.MultiplexFilter {
		s.catches = filter.NewCatches(s.hands, l, s.cfg.Clusters)
	}
}

// period searches every start state for loops of length l.
func (s *search) period(l int) siteswap.Signal {
	s.ensure(l)
	if s.cfg.Ground == GroundOnly {
		s.start.CopyFrom(s.ground)
		if !strided(s.start, l) {
			return siteswap.Continue
		}
		return s.loops()
	}
	s.start.Reset()
	return s.place(0, 0)
}

// place puts the k-th object of the start state into cell c or a later one.
// Cells run offset by offset, hands within an offset, so every start state
// is built once and the ground state comes first.
func (s *search) place(k, c int) siteswap.Signal {
	if s.budget.Tick() == siteswap.Stop {
		return siteswap.Stop
	}
	if k == s.cfg.Objects {
		if s.cfg.Ground == ExcitedOnly && s.start.Equal(s.ground) {
			return siteswap.Continue
		}
		return s.loops()
	}
	for ; c < s.hands*s.height; c++ {
		h, o := c%s.hands, c/s.hands
		n := s.start.At(h, o)
		if n >= s.r.Available(h, o) {
			continue
		}
		// A state can only close a loop of length l if it does not grow
		// along strides of l.
		if o >= s.length && n >= s.start.At(h, o-s.length) {
			continue
		}
		s.start.Set(h, o, n+1)
		sig := s.place(k+1, c)
		s.start.Set(h, o, n)
		if sig == siteswap.Stop {
			return siteswap.Stop
		}
	}
	return siteswap.Continue
}

// strided reports whether st is non-increasing along strides of l.
func strided(st siteswap.State, l int) bool {
	for h := 0; h < st.Hands; h++ {
		for o := 0; o+l < st.Height; o++ {
			if st.At(h, o+l) > st.At(h, o) {
				return false
			}
		}
	}
	return true
}

// loops searches the loops through the current start state. Landings
// before the period may fill a hand to its capacity; landings after it
// may only refill the start state, so every complete assignment closes.
func (s *search) loops() siteswap.Signal {
	l := s.length
	s.fromGround = s.start.Equal(s.ground)
	for h := 0; h < s.hands; h++ {
		for b := range s.occ[h] {
			s.occ[h][b] = s.start.At(h, b)
			if b < l {
				s.limit[h][b] = s.r.Available(h, b)
			} else {
				s.limit[h][b] = s.start.At(h, b-l)
			}
		}
	}
	for i := range s.beats[:l] {
		s.beats[i] = s.beats[i][:0]
	}
	s.text = s.text[:0]
	if s.catches != nil {
		s.catches.Reset()
	}
	return s.fill(0, 0, 0, noKey)
}

// fill assigns the k-th throw of hand h on beat pos. Throws of one hand
// are tried in decreasing key order so each multiplex is built once.
func (s *search) fill(pos, h, k, prev int) siteswap.Signal {
	if s.budget.Tick() == siteswap.Stop {
		return siteswap.Stop
	}
	if h == s.hands {
		return s.beatDone(pos)
	}
	if k == s.occ[h][pos] {
		if k > 1 && s.cfg.TrueMultiplex {
			throws := s.beats[pos][len(s.beats[pos])-k:]
			if !filter.TrueMultiplex(s.r, throws) {
				return siteswap.Continue
			}
		}
		return s.fill(pos, h+1, 0, noKey)
	}

	for v := s.height; v >= 1; v-- {
		land := pos + v
		for t := 0; t < s.hands; t++ {
			key := v*s.hands + s.hands - 1 - t
			if key > prev || s.occ[t][land] >= s.limit[t][land] {
				continue
			}
			if s.try(pos, h, k, key, siteswap.Throw{From: h, To: t, Value: v}) == siteswap.Stop {
				return siteswap.Stop
			}
		}
	}
	return siteswap.Continue
}

func (s *search) try(pos, h, k, key int, th siteswap.Throw) siteswap.Signal {
	if !s.delay.Allows(s.r, pos, th) {
		return siteswap.Continue
	}
	land := pos + th.Value
	caught := false
	if s.catches != nil && !s.r.IsHold(th) {
		if !s.catches.Catch(th.To, land%s.length, filter.Source{Hand: h, Beat: pos}) {
			return siteswap.Continue
		}
		caught = true
	}

	s.occ[th.To][land]++
	s.beats[pos] = append(s.beats[pos], th)
	sig := s.fill(pos, h, k+1, key)
	s.beats[pos] = s.beats[pos][:len(s.beats[pos])-1]
	s.occ[th.To][land]--
	if caught {
		s.catches.Release(th.To, land%s.length)
	}
	return sig
}

// beatDone renders beat pos onto the notation prefix and continues.
func (s *search) beatDone(pos int) siteswap.Signal {
	mark := len(s.text)
	s.text = notation.AppendBeat(s.text, s.r, pos, s.beats[pos])
	sig := s.nextBeat(pos + 1)
	s.text = s.text[:mark]
	return sig
}

// nextBeat applies the checks on the state reached after p beats.
func (s *search) nextBeat(p int) siteswap.Signal {
	if s.g.matcher.HasExclude() && s.g.matcher.ExcludedPrefix(s.text) {
		return siteswap.Continue
	}
	if p == s.length {
		return s.complete(p)
	}

	cur := s.states[p]
	for h := 0; h < s.hands; h++ {
		for o := 0; o < s.height; o++ {
			cur.Set(h, o, s.occ[h][p+o])
		}
	}
	if !strided(cur, s.length) {
		return siteswap.Continue
	}

	if p%s.rp == 0 {
		switch {
		case cur.Equal(s.start):
			// Full keeps extending the branch for loops that pass
			// through the start state more than once.
			if sig := s.repeat(p); sig == siteswap.Stop || s.cfg.Enumeration != Full {
				return sig
			}
		case !s.cfg.Rotations && !s.fromGround &&
			(cur.Equal(s.ground) || siteswap.CompareStates(cur, s.start) == siteswap.Greater):
			return siteswap.Continue
		case s.cfg.Enumeration == Prime && s.revisits(p):
			return siteswap.Continue
		}
	}
	return s.fill(p, 0, 0, noKey)
}

// revisits reports whether the state after p beats was already reached on
// an earlier rhythm boundary.
func (s *search) revisits(p int) bool {
	for q := s.rp; q < p; q += s.rp {
		if s.states[q].Equal(s.states[p]) {
			return true
		}
	}
	return false
}

// repeat handles a branch back at its start state after p beats, short of
// the period. Its first p beats are a loop of their own, listed once at the
// first searched period that p divides; every other repetition is dropped.
func (s *search) repeat(p int) siteswap.Signal {
	if s.length%p != 0 || s.length != (s.first+p-1)/p*p {
		return siteswap.Continue
	}
	if s.catches != nil && clashes(s.r, s.beats[:p], s.cfg.Clusters) {
		return siteswap.Continue
	}
	return s.complete(p)
}

// clashes runs the multiplex filter over a finished loop.
func clashes(r siteswap.Rhythm, beats [][]siteswap.Throw, clusters bool) bool {
	n := len(beats)
	c := filter.NewCatches(r.Hands, n, clusters)
	for b, beat := range beats {
		for _, t := range beat {
			if !r.IsHold(t) && !c.Catch(t.To, (b+t.Value)%n, filter.Source{Hand: t.From, Beat: b}) {
				return true
			}
		}
	}
	return false
}

// repeats reports whether beats is an exact repetition of a shorter loop.
func repeats(beats [][]siteswap.Throw, rp int) bool {
	n := len(beats)
	for d := rp; d < n; d += rp {
		if n%d != 0 {
			continue
		}
		same := true
		for i := d; i < n && same; i++ {
			same = slices.Equal(beats[i], beats[i-d])
		}
		if same {
			return true
		}
	}
	return false
}

// complete runs the whole-pattern filters over the first n beats and emits
// the pattern.
func (s *search) complete(n int) siteswap.Signal {
	beats := s.beats[:n]
	c := s.cfg
	if c.Enumeration == Full && repeats(beats, s.rp) {
		return siteswap.Continue
	}
	if c.ExcludeLame && s.r.Capacity == 1 && filter.Lame(s.r, beats) {
		return siteswap.Continue
	}
	if c.Connected && !filter.Connected(s.r, beats) {
		return siteswap.Continue
	}
	if !c.JugglerPermutations && !filter.PermutationCanonical(s.r, beats) {
		return siteswap.Continue
	}
	text := string(s.text)
	if !s.g.matcher.Included(text) {
		return siteswap.Continue
	}

	if !c.CountOnly {
		display, animation, err := s.render(text)
		if err != nil {
			if s.ctx.Err() != nil {
				return s.budget.Check()
			}
			s.err = err
			return siteswap.Stop
		}
		s.target.Emit(display, siteswap.NotationSiteswap, animation)
	}
	return s.budget.Emitted()
}
