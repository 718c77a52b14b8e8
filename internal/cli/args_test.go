package cli

import (
	"slices"
	"testing"

	"github.com/spf13/pflag"
)

func TestSplitArgs(t *testing.T) {
	flags := pflag.NewFlagSet("gen", pflag.ContinueOnError)
	flags.String("format", "", "")
	flags.String("where", "", "")
	flags.Bool("no-cache", false, "")

	tests := []struct {
		name   string
		args   []string
		own    []string
		driver []string
	}{
		{
			name:   "driver only",
			args:   []string{"3", "5", "3", "-g", "-x", "1", "2"},
			driver: []string{"3", "5", "3", "-g", "-x", "1", "2"},
		},
		{
			name:   "value flag takes the next argument",
			args:   []string{"3", "-", "3-5", "--format", "json", "-n"},
			own:    []string{"--format", "json"},
			driver: []string{"3", "-", "3-5", "-n"},
		},
		{
			name:   "equals form",
			args:   []string{"--where=p.length < 4", "3", "5", "3"},
			own:    []string{"--where=p.length < 4"},
			driver: []string{"3", "5", "3"},
		},
		{
			name:   "bool flag leaves the next argument",
			args:   []string{"--no-cache", "3", "5", "3"},
			own:    []string{"--no-cache"},
			driver: []string{"3", "5", "3"},
		},
		{
			name:   "verbose and help",
			args:   []string{"-v", "3", "5", "3", "-h"},
			own:    []string{"-v", "-h"},
			driver: []string{"3", "5", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			own, driver := splitArgs(flags, tt.args)
			if !slices.Equal(own, tt.own) {
				t.Errorf("own = %q, want %q", own, tt.own)
			}
			if !slices.Equal(driver, tt.driver) {
				t.Errorf("driver = %q, want %q", driver, tt.driver)
			}
		})
	}
}
