package notation

import (
	"testing"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

func mustRhythm(t *testing.T, mode siteswap.Mode, jugglers, multiplex int) siteswap.Rhythm {
	t.Helper()
	r, err := siteswap.RhythmFor(mode, jugglers, multiplex)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRender(t *testing.T) {
	async := mustRhythm(t, siteswap.Async, 1, 2)
	sync := mustRhythm(t, siteswap.Sync, 1, 1)
	three := mustRhythm(t, siteswap.Async, 3, 1)
	syncPass := mustRhythm(t, siteswap.Sync, 2, 1)

	tests := []struct {
		name string
		seq  siteswap.Sequence
		want string
	}{
		{"async", siteswap.Sequence{Rhythm: async, Beats: [][]siteswap.Throw{
			{{From: 0, To: 0, Value: 4}},
			{{From: 0, To: 0, Value: 4}},
			{{From: 0, To: 0, Value: 1}},
		}}, "441"},
		{"multiplex and empty", siteswap.Sequence{Rhythm: async, Beats: [][]siteswap.Throw{
			{{From: 0, To: 0, Value: 4}, {From: 0, To: 0, Value: 3}},
			{},
		}}, "[43]0"},
		{"sync crossing", siteswap.Sequence{Rhythm: sync, Beats: [][]siteswap.Throw{
			{{From: 0, To: 1, Value: 2}, {From: 1, To: 1, Value: 4}},
			{},
		}}, "(4,2x)"},
		{"three jugglers", siteswap.Sequence{Rhythm: three, Beats: [][]siteswap.Throw{
			{{From: 0, To: 1, Value: 3}, {From: 1, To: 1, Value: 3}, {From: 2, To: 2, Value: 3}},
		}}, "<3p2|3|3>"},
		{"sync passing", siteswap.Sequence{Rhythm: syncPass, Beats: [][]siteswap.Throw{
			{{From: 0, To: 3, Value: 4}, {From: 1, To: 1, Value: 4}, {From: 2, To: 2, Value: 4}, {From: 3, To: 0, Value: 4}},
			{},
		}}, "<(4,4xp)|(4xp,4)>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.seq); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendBeatSkipsOffBeats(t *testing.T) {
	r := mustRhythm(t, siteswap.Sync, 1, 1)
	if got := AppendBeat(nil, r, 1, nil); len(got) != 0 {
		t.Errorf("off beat rendered %q", got)
	}
}

func TestRenderedPatternsParse(t *testing.T) {
	// Generator output must be readable by the parser.
	for _, text := range []string{"441", "(4,2x)(2x,4)", "<3p|3p>", "[43]23", "<(4,4xp)|(4xp,4)>"} {
		if _, err := Parse(text); err != nil {
			t.Errorf("Parse(%q): %v", text, err)
		}
	}
}
