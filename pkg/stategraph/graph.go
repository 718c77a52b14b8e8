package stategraph

import (
	"context"
	"strings"

	"github.com/matzehuels/jugglesearch/pkg/errors"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/notation"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/trans"
)

// Options configures Build.
type Options struct {
	// Full adds the ways in from the ground state and back out.
	Full bool
}

// Node is one distinct state.
type Node struct {
	ID     int    `json:"id"`
	State  string `json:"state"`
	Start  bool   `json:"start,omitempty"`
	Ground bool   `json:"ground,omitempty"`
}

// Edge is one beat from a state to the next.
type Edge struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Label string `json:"label"`
	// Entry marks beats of the ways in and out, not of the loop.
	Entry bool `json:"entry,omitempty"`
}

// Graph is the state cycle of one pattern.
type Graph struct {
	Pattern string `json:"pattern"`
	Objects int    `json:"objects"`
	Period  int    `json:"period"`
	Nodes   []Node `json:"nodes"`
	Edges   []Edge `json:"edges"`

	ids   map[string]int
	edges map[Edge]bool
}

// Build parses text and walks its loop.
func Build(ctx context.Context, text string, opts Options) (*Graph, error) {
	if err := errors.ValidatePatternText(text); err != nil {
		return nil, err
	}
	p, err := notation.Parse(text)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		Pattern: p.Text,
		Objects: p.Objects(),
		Period:  p.Period(),
		ids:     map[string]int{},
		edges:   map[Edge]bool{},
	}
	height := p.Loop.MaxValue()
	start := p.StartingState(height)
	g.node(start).Start = true

	end, err := g.walk(start, p.Loop, false)
	if err != nil {
		return nil, err
	}
	if end.String() != start.String() {
		return nil, errors.Internal("pattern %q does not return to %s, ends in %s", p.Text, start, end)
	}

	ground, err := groundOf(p, height)
	if err != nil {
		return nil, err
	}
	if id, ok := g.ids[ground.String()]; ok {
		g.Nodes[id].Ground = true
		return g.finish(), nil
	}
	if !opts.Full {
		return g.finish(), nil
	}

	g.node(ground).Ground = true
	for _, leg := range [][2]siteswap.State{{ground, start}, {start, ground}} {
		seq, err := trans.FindFirst(ctx, trans.Search{
			Rhythm:            p.Rhythm(),
			From:              trans.Endpoint{State: leg[0]},
			To:                trans.Endpoint{State: leg[1]},
			AllowSimultaneous: true,
			Clusters:          true,
		})
		if err != nil {
			return nil, err
		}
		if _, err := g.walk(leg[0], seq, true); err != nil {
			return nil, err
		}
	}
	return g.finish(), nil
}

func groundOf(p *notation.Pattern, height int) (siteswap.State, error) {
	gp, err := notation.Parse(notation.Ground(p.Objects(), p.Jugglers()))
	if err != nil {
		return siteswap.State{}, err
	}
	return gp.StartingState(max(height, gp.Loop.MaxValue())), nil
}

// walk applies seq beat by beat from st, adding nodes and edges, and
// returns the final state.
func (g *Graph) walk(st siteswap.State, seq siteswap.Sequence, entry bool) (siteswap.State, error) {
	cur := st
	for _, beat := range seq.Beats {
		next, err := siteswap.Apply(cur, siteswap.Sequence{Rhythm: seq.Rhythm, Beats: [][]siteswap.Throw{beat}})
		if err != nil {
			return siteswap.State{}, err
		}
		e := Edge{
			From:  g.node(cur).ID,
			To:    g.node(next).ID,
			Label: label(seq.Rhythm, beat),
			Entry: entry,
		}
		if !g.edges[e] {
			g.edges[e] = true
			g.Edges = append(g.Edges, e)
		}
		cur = next
	}
	return cur, nil
}

func (g *Graph) node(st siteswap.State) *Node {
	key := st.String()
	if id, ok := g.ids[key]; ok {
		return &g.Nodes[id]
	}
	id := len(g.Nodes)
	g.ids[key] = id
	g.Nodes = append(g.Nodes, Node{ID: id, State: key})
	return &g.Nodes[id]
}

func (g *Graph) finish() *Graph {
	g.ids, g.edges = nil, nil
	return g
}

// label lists the throws of a beat as side, value and pass target,
// e.g. "R5 L1" or "R3p2"; an empty beat is "-".
func label(r siteswap.Rhythm, beat []siteswap.Throw) string {
	var parts []string
	for _, t := range beat {
		if t.Value == 0 {
			continue
		}
		var b strings.Builder
		if r.Mode != siteswap.Async {
			b.WriteString(r.Side(t.From).String())
		}
		b.WriteByte(notation.Digit(t.Value))
		if r.IsPass(t) {
			b.WriteByte('p')
			b.WriteByte(notation.Digit(r.Juggler(t.To) + 1))
		}
		parts = append(parts, b.String())
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
