package notation

import (
	"slices"
	"strings"

	"github.com/matzehuels/jugglesearch/pkg/errors"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

type throwTok struct {
	value int
	cross bool
	pass  bool
	dest  int // 1-based juggler, 0 when implied
	col   int
}

type elemKind int

const (
	elemAsync elemKind = iota
	elemSync
	elemHand
)

type element struct {
	kind        elemKind
	side        siteswap.Side
	forced      bool
	throws      []throwTok
	left, right []throwTok
	bang        bool
}

// segment is one "<..|..>" group, or a run of elements in a solo pattern.
type segment struct {
	jugglers [][]element
	col      int
}

type parser struct {
	text     string
	pos      int
	jugglers int
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidPattern, "column %d: "+format, append([]any{pos + 1}, args...)...)
}

func isValue(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z'
}

func valueOf(c byte) int {
	if c <= '9' {
		return int(c - '0')
	}
	return int(c-'a') + 10
}

func (p *parser) skipSpace() {
	for p.pos < len(p.text) && (p.text[p.pos] == ' ' || p.text[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.text) && p.text[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

// countJugglers reads the juggler count from the first group.
func countJugglers(text string) int {
	open := strings.IndexByte(text, '<')
	if open < 0 {
		return 1
	}
	n := 1
	for i := open + 1; i < len(text) && text[i] != '>'; i++ {
		if text[i] == '|' {
			n++
		}
	}
	return n
}

func parseSegments(text string) ([]segment, int, error) {
	p := &parser{text: text, jugglers: countJugglers(text)}
	var segs []segment
	var solo []element
	soloCol := -1
	flush := func() {
		if len(solo) > 0 {
			segs = append(segs, segment{jugglers: [][]element{solo}, col: soloCol})
			solo, soloCol = nil, -1
		}
	}

	for p.skipSpace(); p.pos < len(p.text); p.skipSpace() {
		if p.text[p.pos] == '<' {
			flush()
			seg, err := p.group()
			if err != nil {
				return nil, 0, err
			}
			if len(seg.jugglers) != p.jugglers {
				return nil, 0, p.errorf(seg.col, "group has %d jugglers, expected %d", len(seg.jugglers), p.jugglers)
			}
			segs = append(segs, seg)
			continue
		}
		if p.jugglers > 1 {
			return nil, 0, p.errorf(p.pos, "%q outside a juggler group", p.text[p.pos])
		}
		if soloCol < 0 {
			soloCol = p.pos
		}
		el, err := p.element()
		if err != nil {
			return nil, 0, err
		}
		solo = append(solo, el)
	}
	flush()
	return segs, p.jugglers, nil
}

func (p *parser) group() (segment, error) {
	start := p.pos
	p.pos++
	seg := segment{col: start}
	var cur []element
	for {
		p.skipSpace()
		if p.pos >= len(p.text) {
			return seg, p.errorf(start, "unterminated '<'")
		}
		switch p.text[p.pos] {
		case '|':
			seg.jugglers = append(seg.jugglers, cur)
			cur = nil
			p.pos++
		case '>':
			seg.jugglers = append(seg.jugglers, cur)
			p.pos++
			return seg, nil
		case '<':
			return seg, p.errorf(p.pos, "nested '<'")
		default:
			el, err := p.element()
			if err != nil {
				return seg, err
			}
			cur = append(cur, el)
		}
	}
}

func (p *parser) element() (element, error) {
	c := p.text[p.pos]
	switch {
	case c == 'R' || c == 'L':
		side := siteswap.Right
		if c == 'L' {
			side = siteswap.Left
		}
		p.pos++
		p.skipSpace()
		if p.pos < len(p.text) && (isValue(p.text[p.pos]) || p.text[p.pos] == '[') {
			throws, err := p.hand()
			if err != nil {
				return element{}, err
			}
			return element{kind: elemAsync, side: side, forced: true, throws: throws}, nil
		}
		return element{kind: elemHand, side: side}, nil
	case c == '(':
		return p.sync()
	case isValue(c) || c == '[':
		throws, err := p.hand()
		if err != nil {
			return element{}, err
		}
		return element{kind: elemAsync, throws: throws}, nil
	}
	return element{}, p.errorf(p.pos, "unexpected %q", c)
}

func (p *parser) sync() (element, error) {
	start := p.pos
	p.pos++
	p.skipSpace()
	left, err := p.hand()
	if err != nil {
		return element{}, err
	}
	p.skipSpace()
	if !p.consume(',') {
		return element{}, p.errorf(p.pos, "expected ',' in sync beat opened at column %d", start+1)
	}
	p.skipSpace()
	right, err := p.hand()
	if err != nil {
		return element{}, err
	}
	p.skipSpace()
	if !p.consume(')') {
		return element{}, p.errorf(p.pos, "expected ')' closing sync beat opened at column %d", start+1)
	}
	bang := p.consume('!')
	return element{kind: elemSync, left: left, right: right, bang: bang}, nil
}

// hand reads one throw or a bracketed multiplex.
func (p *parser) hand() ([]throwTok, error) {
	if p.pos >= len(p.text) {
		return nil, p.errorf(p.pos, "expected a throw")
	}
	if !p.consume('[') {
		t, err := p.throw()
		if err != nil {
			return nil, err
		}
		return []throwTok{t}, nil
	}
	start := p.pos - 1
	var out []throwTok
	for {
		p.skipSpace()
		if p.pos >= len(p.text) {
			return nil, p.errorf(start, "unterminated '['")
		}
		if p.consume(']') {
			if len(out) == 0 {
				return nil, p.errorf(start, "empty multiplex")
			}
			return out, nil
		}
		t, err := p.throw()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
}

func (p *parser) throw() (throwTok, error) {
	if p.pos >= len(p.text) || !isValue(p.text[p.pos]) {
		if p.pos >= len(p.text) {
			return throwTok{}, p.errorf(p.pos, "expected a throw")
		}
		return throwTok{}, p.errorf(p.pos, "unexpected %q, expected a throw", p.text[p.pos])
	}
	t := throwTok{value: valueOf(p.text[p.pos]), col: p.pos}
	p.pos++
	for p.pos < len(p.text) {
		switch {
		case p.text[p.pos] == 'x' && !t.cross:
			t.cross = true
			p.pos++
		case p.text[p.pos] == 'p' && !t.pass:
			t.pass = true
			p.pos++
			if p.jugglers > 2 {
				if p.pos >= len(p.text) || !isValue(p.text[p.pos]) || p.text[p.pos] == '0' {
					return t, p.errorf(p.pos, "pass needs a destination juggler")
				}
				t.dest = valueOf(p.text[p.pos])
				p.pos++
			}
		default:
			return t, nil
		}
	}
	return t, nil
}

// builder lays parsed elements out on the physical rhythm.
type builder struct {
	r      siteswap.Rhythm
	beats  [][]siteswap.Throw
	pos    []int
	expect []siteswap.Side
}

func newBuilder(jugglers int) (*builder, error) {
	r, err := siteswap.RhythmFor(siteswap.Physical, jugglers, 1)
	if err != nil {
		return nil, err
	}
	return &builder{
		r:      r,
		pos:    make([]int, jugglers),
		expect: make([]siteswap.Side, jugglers),
	}, nil
}

func (bd *builder) grow(n int) {
	for len(bd.beats) < n {
		bd.beats = append(bd.beats, nil)
	}
}

func (bd *builder) place(j int, side siteswap.Side, b int, toks []throwTok) error {
	from := bd.r.Hand(j, side)
	for _, tk := range toks {
		if tk.value == 0 {
			continue
		}
		dj := j
		if tk.pass {
			switch {
			case bd.r.Jugglers == 1:
				return errors.New(errors.ErrCodeInvalidPattern, "column %d: pass in a solo pattern", tk.col+1)
			case tk.dest > 0:
				dj = tk.dest - 1
				if dj >= bd.r.Jugglers || dj == j {
					return errors.New(errors.ErrCodeInvalidPattern, "column %d: no juggler %d to pass to", tk.col+1, tk.dest)
				}
			default:
				dj = 1 - j
			}
		}
		ds := defaultSide(side, tk.value)
		if tk.cross {
			ds = ds.Other()
		}
		bd.beats[b] = append(bd.beats[b], siteswap.Throw{From: from, To: bd.r.Hand(dj, ds), Value: tk.value})
	}
	return nil
}

func (bd *builder) run(j int, els []element) error {
	for _, el := range els {
		switch el.kind {
		case elemHand:
			bd.expect[j] = el.side
		case elemAsync:
			side := bd.expect[j]
			if el.forced {
				side = el.side
			}
			b := bd.pos[j]
			bd.grow(b + 1)
			if err := bd.place(j, side, b, el.throws); err != nil {
				return err
			}
			bd.pos[j]++
			bd.expect[j] = side.Other()
		case elemSync:
			b := bd.pos[j]
			bd.grow(b + 1)
			if err := bd.place(j, siteswap.Left, b, el.left); err != nil {
				return err
			}
			if err := bd.place(j, siteswap.Right, b, el.right); err != nil {
				return err
			}
			if el.bang {
				bd.pos[j]++
				bd.expect[j] = bd.expect[j].Other()
			} else {
				bd.pos[j] += 2
				bd.grow(b + 2)
			}
		}
	}
	return nil
}

// read lays out every segment once, continuing from the current beat.
func (bd *builder) read(segs []segment) error {
	for _, seg := range segs {
		for j, els := range seg.jugglers {
			if err := bd.run(j, els); err != nil {
				return err
			}
		}
		for j := 1; j < len(bd.pos); j++ {
			if bd.pos[j] != bd.pos[0] {
				return errors.New(errors.ErrCodeInvalidPattern,
					"column %d: juggler 1 has %d beats but juggler %d has %d", seg.col+1, bd.pos[0], j+1, bd.pos[j])
			}
		}
	}
	return nil
}

func (bd *builder) restored() bool {
	for _, s := range bd.expect {
		if s != siteswap.Right {
			return false
		}
	}
	return true
}

// sequence finishes the layout: beats sorted by source hand and the rhythm
// capacity raised to the largest multiplex.
func (bd *builder) sequence() (siteswap.Sequence, error) {
	bd.grow(bd.pos[0])
	capacity := 1
	counts := make([]int, bd.r.Hands)
	for _, beat := range bd.beats {
		slices.SortStableFunc(beat, func(a, b siteswap.Throw) int { return a.From - b.From })
		clear(counts)
		for _, t := range beat {
			counts[t.From]++
			capacity = max(capacity, counts[t.From])
		}
	}
	r, err := siteswap.RhythmFor(siteswap.Physical, bd.r.Jugglers, capacity)
	if err != nil {
		return siteswap.Sequence{}, err
	}
	return siteswap.Sequence{Rhythm: r, Beats: bd.beats}, nil
}

// ParseSequence reads a non-periodic throw sequence such as a rendered
// transition. jugglers is used when the text has no juggler groups; a text
// with groups must agree with it.
func ParseSequence(text string, jugglers int) (siteswap.Sequence, error) {
	segs, n, err := parseSegments(strings.TrimSpace(text))
	if err != nil {
		return siteswap.Sequence{}, err
	}
	if n == 1 && jugglers > 1 && len(segs) > 0 {
		return siteswap.Sequence{}, errors.New(errors.ErrCodeInvalidPattern, "expected %d jugglers, got a solo sequence", jugglers)
	}
	if len(segs) == 0 {
		n = max(jugglers, 1)
	} else if jugglers > 0 && n != jugglers {
		return siteswap.Sequence{}, errors.New(errors.ErrCodeInvalidPattern, "expected %d jugglers, got %d", jugglers, n)
	}
	bd, err := newBuilder(n)
	if err != nil {
		return siteswap.Sequence{}, err
	}
	if err := bd.read(segs); err != nil {
		return siteswap.Sequence{}, err
	}
	return bd.sequence()
}
