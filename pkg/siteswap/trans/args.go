package trans

import (
	"github.com/matzehuels/jugglesearch/pkg/errors"
)

// ParseArgs reads the transitioner argument vector:
//
//	<from|-> <to|-> [-mf] [-mc] [-m N] [-limits]
func ParseArgs(args []string) (Config, error) {
	cfg := DefaultConfig()
	if len(args) < 2 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "expected <from> <to>, got %d arguments", len(args))
	}
	cfg.From, cfg.To = args[0], args[1]

	for i := 2; i < len(args); i++ {
		switch args[i] {
		case "-mf":
			cfg.AllowSimultaneous = true
		case "-mc":
			cfg.Clusters = false
		case "-limits":
			cfg = cfg.WithDefaultLimits()
		case "-m":
			if i+1 >= len(args) {
				return cfg, errors.New(errors.ErrCodeInvalidInput, "-m needs a multiplex count")
			}
			i++
			n, err := errors.ParseInt("multiplex", args[i])
			if err != nil {
				return cfg, err
			}
			cfg.Multiplex = n
		default:
			return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown transitioner option %q", args[i])
		}
	}
	return cfg, cfg.Validate()
}
