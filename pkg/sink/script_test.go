package sink

import (
	"testing"

	"github.com/matzehuels/jugglesearch/pkg/errors"
)

func TestScript(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{`p.animation.indexOf("5") >= 0`, []string{"531", "51"}},
		{`p.length == 3`, []string{"441", "531"}},
		{`p.display.charAt(0) == "*"`, []string{"* 15"}},
		{`true`, []string{"441", "531", "51", "* 15"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			m := &Memory{}
			s, err := NewScript(tt.expr, m)
			if err != nil {
				t.Fatal(err)
			}
			s.Emit("441", "siteswap", "441")
			s.Emit("531", "siteswap", "531")
			s.Emit("51", "siteswap", "51")
			s.Emit("* 15", "siteswap", "15")
			s.SetStatus("done")

			got := m.Displays()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
			if s.Passed() != len(tt.want) || s.Dropped() != 4-len(tt.want) {
				t.Errorf("passed %d dropped %d", s.Passed(), s.Dropped())
			}
			if m.Status() != "done" {
				t.Error("status not forwarded")
			}
		})
	}
}

func TestScriptErrors(t *testing.T) {
	for _, expr := range []string{"", "   ", "p.display ==="} {
		_, err := NewScript(expr, &Memory{})
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("NewScript(%q) error = %v", expr, err)
		}
	}

	s, err := NewScript("p.missing.field", &Memory{})
	if err != nil {
		t.Fatal(err)
	}
	s.Emit("3", "siteswap", "3")
	if s.Err() == nil || s.Dropped() != 1 {
		t.Error("a runtime error should drop the pattern and be kept")
	}
	if s.Flush() == nil {
		t.Error("Flush should report the runtime error")
	}
}
