package notation

import (
	"reflect"
	"testing"

	"github.com/matzehuels/jugglesearch/pkg/errors"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text     string
		period   int
		repeats  int
		objects  int
		jugglers int
		capacity int
	}{
		{"3", 2, 2, 3, 1, 1},
		{"531", 6, 2, 3, 1, 1},
		{"42", 2, 1, 3, 1, 1},
		{"(4,2x)(2x,4)", 4, 1, 3, 1, 1},
		{"(4,4)", 2, 1, 4, 1, 1},
		{"<3p|3p>", 2, 2, 6, 2, 1},
		{"<3p|3p><3|3>", 2, 1, 6, 2, 1},
		{"<3p2|3p3|3p1>", 2, 2, 9, 3, 1},
		{"[43]23", 6, 2, 4, 1, 2},
		{"b", 2, 2, 11, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if p.Period() != tt.period {
				t.Errorf("Period() = %d, want %d", p.Period(), tt.period)
			}
			if p.Repeats != tt.repeats {
				t.Errorf("Repeats = %d, want %d", p.Repeats, tt.repeats)
			}
			if p.Objects() != tt.objects {
				t.Errorf("Objects() = %d, want %d", p.Objects(), tt.objects)
			}
			if p.Jugglers() != tt.jugglers {
				t.Errorf("Jugglers() = %d, want %d", p.Jugglers(), tt.jugglers)
			}
			if p.Rhythm().Capacity != tt.capacity {
				t.Errorf("Capacity = %d, want %d", p.Rhythm().Capacity, tt.capacity)
			}
			if got := p.StartingState(0).Objects(); got != tt.objects {
				t.Errorf("StartingState holds %d objects, want %d", got, tt.objects)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"only marker", "*"},
		{"pass in solo", "3p"},
		{"unclosed sync", "(4,4"},
		{"missing comma", "(44)"},
		{"unterminated group", "<3|3"},
		{"uneven jugglers", "<3|33>"},
		{"group size", "<3|3><3|3|3>"},
		{"throw outside group", "<3|3>3"},
		{"not whole", "52"},
		{"collision", "321"},
		{"empty multiplex", "[]3"},
		{"bad character", "3#"},
		{"pass to nobody", "<3p4|3p1|3p2>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded", tt.text)
			}
			if !errors.Is(err, errors.ErrCodeInvalidPattern) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidPattern)
			}
		})
	}
}

func TestParseNamesColumn(t *testing.T) {
	_, err := Parse("33#3")
	if err == nil {
		t.Fatal("expected an error")
	}
	if msg := errors.UserMessage(err); msg != `column 3: unexpected '#'` {
		t.Errorf("message = %q", msg)
	}
}

func TestParseExcitedMarker(t *testing.T) {
	p, err := Parse("* 51")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Excited || p.Text != "51" {
		t.Errorf("Excited = %v, Text = %q", p.Excited, p.Text)
	}
	// 5 crosses to the left hand, 1 crosses back to the right.
	if got := p.StartingState(0).String(); got != "1---|-1-1" {
		t.Errorf("StartingState = %s, want 1---|-1-1", got)
	}
}

func TestStartingStateOfCascade(t *testing.T) {
	p, err := Parse("3")
	if err != nil {
		t.Fatal(err)
	}
	s := p.StartingState(5)
	if s.Height != 5 {
		t.Errorf("Height = %d, want 5", s.Height)
	}
	if got := s.String(); got != "1-1|-1-" {
		t.Errorf("StartingState = %s, want 1-1|-1-", got)
	}
}

func TestLoopText(t *testing.T) {
	tests := []struct{ text, want string }{
		{"3", "33"},
		{"42", "42"},
		{"(4,4)", "(4,4)"},
		{"<3p|3p>", "<3p|3p><3p|3p>"},
	}
	for _, tt := range tests {
		p, err := Parse(tt.text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.text, err)
		}
		if got := p.LoopText(); got != tt.want {
			t.Errorf("LoopText(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestParseSequenceApply(t *testing.T) {
	from, _ := Parse("3")
	to, _ := Parse("51")
	a, b := from.StartingState(6), to.StartingState(6)

	for _, text := range []string{"34", "52"} {
		seq, err := ParseSequence(text, 1)
		if err != nil {
			t.Fatalf("ParseSequence(%q): %v", text, err)
		}
		got, err := siteswap.Apply(a, seq)
		if err != nil {
			t.Fatalf("Apply(%q): %v", text, err)
		}
		if !got.Equal(b) {
			t.Errorf("%q from 3 = %s, want %s", text, got, b)
		}
	}
}

func TestParseSequenceJugglers(t *testing.T) {
	if _, err := ParseSequence("33", 2); err == nil {
		t.Error("solo text for two jugglers should fail")
	}
	if _, err := ParseSequence("<3|3|3>", 2); err == nil {
		t.Error("three juggler text for two jugglers should fail")
	}
	seq, err := ParseSequence("", 2)
	if err != nil || seq.Len() != 0 || seq.Rhythm.Jugglers != 2 {
		t.Errorf("empty sequence = %+v, %v", seq, err)
	}
}

func TestRenderTransitionRoundTrip(t *testing.T) {
	tests := []struct {
		text     string
		jugglers int
		want     string
	}{
		{"34", 1, "34"},
		{"3", 1, "3R"},
		{"L3", 1, "L3"},
		{"(4,4)", 1, "(4,4)"},
		{"(4,4)!3", 1, "(4,4)!3"},
		{"[43]1x", 1, "[43]1x"},
		{"0", 1, "0R"},
		{"<3p|3p>", 2, "<3pR|3pR>"},
		{"<5p3|3|3>", 3, "<5p3R|3R|3R>"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			seq, err := ParseSequence(tt.text, tt.jugglers)
			if err != nil {
				t.Fatalf("ParseSequence: %v", err)
			}
			got := RenderTransition(seq)
			if got != tt.want {
				t.Errorf("RenderTransition = %q, want %q", got, tt.want)
			}
			again, err := ParseSequence(got, tt.jugglers)
			if err != nil {
				t.Fatalf("re-parse %q: %v", got, err)
			}
			if !reflect.DeepEqual(again.Beats, seq.Beats) {
				t.Errorf("re-parsed beats %v, want %v", again.Beats, seq.Beats)
			}
		})
	}
}

func TestGround(t *testing.T) {
	tests := []struct {
		objects, jugglers int
		want              string
	}{
		{3, 1, "3"},
		{10, 1, "a"},
		{6, 2, "<3|3>"},
		{7, 2, "<4|3>"},
	}
	for _, tt := range tests {
		if got := Ground(tt.objects, tt.jugglers); got != tt.want {
			t.Errorf("Ground(%d, %d) = %q, want %q", tt.objects, tt.jugglers, got, tt.want)
		}
		if _, err := Parse(Ground(tt.objects, tt.jugglers)); err != nil {
			t.Errorf("Ground(%d, %d) does not parse: %v", tt.objects, tt.jugglers, err)
		}
	}
}
