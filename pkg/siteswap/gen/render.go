package gen

import (
	"fmt"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/notation"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/trans"
)

// ends are the shortest sequences from the ground state into an excited
// start state and back.
type ends struct {
	start string
	end   string
}

// render returns the display and animation texts of a loop. Ground loops
// stand alone. Excited loops get their start and end sequences, or a
// leading "*" when those are suppressed.
func (s *search) render(text string) (display, animation string, err error) {
	if s.fromGround {
		return text, text, nil
	}
	if !s.cfg.StartEnd {
		return "* " + text, text, nil
	}
	e, err := s.endsFor(s.start)
	if err != nil {
		return "", "", err
	}
	return e.start + " " + text + " " + e.end, e.start + text + e.end, nil
}

// endsFor finds and caches the start and end sequences of st.
func (s *search) endsFor(st siteswap.State) (ends, error) {
	key := st.String()
	if e, ok := s.ends[key]; ok {
		return e, nil
	}
	ground := trans.Endpoint{State: s.ground}
	excited := trans.Endpoint{State: st.Clone()}

	up, err := trans.FindFirst(s.ctx, trans.Search{
		Rhythm:            s.r,
		From:              ground,
		To:                excited,
		AllowSimultaneous: true,
		Clusters:          true,
	})
	if err != nil {
		return ends{}, err
	}
	down, err := trans.FindFirst(s.ctx, trans.Search{
		Rhythm:            s.r,
		From:              excited,
		To:                ground,
		AllowSimultaneous: true,
		Clusters:          true,
	})
	if err != nil {
		return ends{}, err
	}

	e := ends{start: notation.Render(up), end: notation.Render(down)}
	s.ends[key] = e
	return e, nil
}

// Status formats the end-of-run summary.
func Status(o siteswap.Outcome) string {
	noun := "patterns"
	if o.Count == 1 {
		noun = "pattern"
	}
	switch o.Reason {
	case siteswap.LimitReached:
		return fmt.Sprintf("%d %s found (stopped at the limit)", o.Count, noun)
	case siteswap.TimedOut:
		return fmt.Sprintf("%d %s found (stopped on timeout)", o.Count, noun)
	case siteswap.Canceled:
		return fmt.Sprintf("%d %s found (canceled)", o.Count, noun)
	}
	return fmt.Sprintf("%d %s found", o.Count, noun)
}
