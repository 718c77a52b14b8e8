package notation

import (
	"strconv"
	"strings"

	"github.com/matzehuels/jugglesearch/pkg/errors"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// Pattern is a parsed periodic pattern on the physical rhythm.
type Pattern struct {
	// Text is the pattern as written, without a leading "*".
	Text string
	// Excited is set when the text carried the "*" marker.
	Excited bool
	// Loop is one period of throws. Its length is a multiple of the written
	// length: the text is read twice when it does not restore hand parity.
	Loop siteswap.Sequence
	// Repeats is how many times Text was read to build Loop.
	Repeats int

	endRight bool
}

// Parse reads and validates a periodic pattern.
func Parse(text string) (*Pattern, error) {
	body := strings.TrimSpace(text)
	excited := false
	if rest, ok := strings.CutPrefix(body, "*"); ok {
		body, excited = strings.TrimSpace(rest), true
	}
	if body == "" {
		return nil, errors.New(errors.ErrCodeInvalidPattern, "empty pattern")
	}

	segs, jugglers, err := parseSegments(body)
	if err != nil {
		return nil, err
	}
	bd, err := newBuilder(jugglers)
	if err != nil {
		return nil, err
	}
	if err := bd.read(segs); err != nil {
		return nil, err
	}
	if bd.pos[0] == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPattern, "pattern %q has no beats", body)
	}
	repeats := 1
	if !bd.restored() {
		if err := bd.read(segs); err != nil {
			return nil, err
		}
		repeats = 2
	}
	seq, err := bd.sequence()
	if err != nil {
		return nil, err
	}

	p := &Pattern{Text: body, Excited: excited, Loop: seq, Repeats: repeats, endRight: bd.restored()}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Rhythm returns the physical rhythm of the pattern.
func (p *Pattern) Rhythm() siteswap.Rhythm {
	return p.Loop.Rhythm
}

// Jugglers returns the number of jugglers.
func (p *Pattern) Jugglers() int {
	return p.Loop.Rhythm.Jugglers
}

// Period returns the length of the physical loop.
func (p *Pattern) Period() int {
	return p.Loop.Len()
}

// Objects returns the number of objects juggled.
func (p *Pattern) Objects() int {
	sum := 0
	for _, beat := range p.Loop.Beats {
		for _, t := range beat {
			sum += t.Value
		}
	}
	return sum / p.Loop.Len()
}

// Validate checks that the throw values average to a whole number and
// that on every beat each hand throws exactly what it catches.
func (p *Pattern) Validate() error {
	r, period := p.Loop.Rhythm, p.Loop.Len()
	sum := 0
	catches := make([]int, r.Hands*period)
	throws := make([]int, r.Hands*period)
	for b, beat := range p.Loop.Beats {
		for _, t := range beat {
			sum += t.Value
			throws[t.From*period+b]++
			catches[t.To*period+(b+t.Value)%period]++
		}
	}
	if sum%period != 0 {
		return errors.New(errors.ErrCodeInvalidPattern, "pattern %q: throws average %d/%d, not a whole number of objects", p.Text, sum, period)
	}
	for h := 0; h < r.Hands; h++ {
		for b := 0; b < period; b++ {
			if c, t := catches[h*period+b], throws[h*period+b]; c != t {
				return errors.New(errors.ErrCodeInvalidPattern,
					"pattern %q: juggler %d %s hand catches %d and throws %d on beat %d",
					p.Text, r.Juggler(h)+1, r.Side(h), c, t, b+1)
			}
		}
	}
	return nil
}

// StartingState returns the state at the first beat of the loop when the
// pattern has been running forever. The state is at least height deep.
func (p *Pattern) StartingState(height int) siteswap.State {
	period := p.Loop.Len()
	s := siteswap.NewState(p.Loop.Rhythm.Hands, max(height, p.Loop.MaxValue()))
	for b, beat := range p.Loop.Beats {
		for _, t := range beat {
			for land := b - period + t.Value; land >= 0; land -= period {
				s.Add(t.To, land, 1)
			}
		}
	}
	return s
}

// LoopText returns text for one full loop that leaves every juggler on the
// right hand, ready to be followed by more notation.
func (p *Pattern) LoopText() string {
	text := strings.Repeat(p.Text, p.Repeats)
	if p.endRight {
		return text
	}
	if p.Jugglers() == 1 {
		return text + "R"
	}
	return text + "<" + strings.TrimSuffix(strings.Repeat("R|", p.Jugglers()), "|") + ">"
}

// Ground returns the ground pattern for objects shared by jugglers: "3" for
// three objects solo, "<3|3>" for six objects between two jugglers. Spare
// objects go to the first jugglers.
func Ground(objects, jugglers int) string {
	if jugglers <= 1 {
		return strconv.FormatInt(int64(objects), 36)
	}
	parts := make([]string, jugglers)
	for j := range parts {
		n := objects / jugglers
		if j < objects%jugglers {
			n++
		}
		parts[j] = strconv.FormatInt(int64(n), 36)
	}
	return "<" + strings.Join(parts, "|") + ">"
}
