package gen

import (
	"strings"

	"github.com/matzehuels/jugglesearch/pkg/errors"
)

// flags lists every option name; -x and -i stop collecting terms at the
// next one.
var flags = map[string]bool{
	"-n": true, "-no": true, "-g": true, "-ng": true, "-f": true, "-prime": true,
	"-rot": true, "-jp": true, "-lame": true, "-se": true, "-s": true, "-cp": true,
	"-mf": true, "-mc": true, "-mt": true, "-m": true, "-j": true, "-d": true,
	"-l": true, "-x": true, "-i": true,
}

// ParseArgs reads the generator argument vector:
//
//	<balls> <max-throw|-> <period|period-|-period|lo-hi|-> [options]
//
// Leaders are 1-based on the command line.
func ParseArgs(args []string) (Config, error) {
	cfg := DefaultConfig()
	if len(args) < 3 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "expected <balls> <max-throw> <period>, got %d arguments", len(args))
	}
	var err error
	if cfg.Objects, err = errors.ParseInt("balls", args[0]); err != nil {
		return cfg, err
	}
	if args[1] != "-" {
		if cfg.MaxThrow, err = errors.ParseInt("max throw", args[1]); err != nil {
			return cfg, err
		}
	}
	if cfg.PeriodMin, cfg.PeriodMax, err = parsePeriods(args[2]); err != nil {
		return cfg, err
	}

	leader := 1
	var groundOnly, excitedOnly bool
	for i := 3; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-n":
			cfg.ShowCount = true
		case "-no":
			cfg.CountOnly = true
		case "-g":
			cfg.Ground = GroundOnly
			groundOnly = true
		case "-ng":
			cfg.Ground = ExcitedOnly
			excitedOnly = true
		case "-f":
			cfg.Enumeration = Full
		case "-prime":
			cfg.Enumeration = Prime
		case "-rot":
			cfg.Rotations = true
		case "-jp":
			cfg.JugglerPermutations = true
		case "-lame":
			cfg.ExcludeLame = true
		case "-se":
			cfg.StartEnd = false
		case "-s":
			cfg.Sync = true
		case "-cp":
			cfg.Connected = true
		case "-mf":
			cfg.MultiplexFilter = false
		case "-mc":
			cfg.Clusters = false
		case "-mt":
			cfg.TrueMultiplex = true
		case "-m", "-j", "-d", "-l":
			if i+1 >= len(args) {
				return cfg, errors.New(errors.ErrCodeInvalidInput, "%s needs a number", arg)
			}
			i++
			n, err := errors.ParseInt(optionNames[arg], args[i])
			if err != nil {
				return cfg, err
			}
			switch arg {
			case "-m":
				cfg.Multiplex = n
			case "-j":
				cfg.Jugglers = n
			case "-d":
				cfg.Delay = n
			case "-l":
				leader = n
			}
		case "-x", "-i":
			var terms []string
			for i+1 < len(args) && !flags[args[i+1]] {
				i++
				terms = append(terms, args[i])
			}
			if len(terms) == 0 {
				return cfg, errors.New(errors.ErrCodeInvalidInput, "%s needs at least one term", arg)
			}
			if arg == "-x" {
				cfg.Exclude = append(cfg.Exclude, terms...)
			} else {
				cfg.Include = append(cfg.Include, terms...)
			}
		default:
			return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown generator option %q", arg)
		}
	}
	if groundOnly && excitedOnly {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "-g and -ng cannot be combined")
	}
	cfg.Leader = leader - 1
	return cfg, cfg.Validate()
}

var optionNames = map[string]string{
	"-m": "multiplex",
	"-j": "jugglers",
	"-d": "delay",
	"-l": "leader",
}

// parsePeriods reads "3", "3-", "-5", "2-4" or "-". A missing low end is
// returned as 0, the rhythm period, and a missing high end as 0, open.
func parsePeriods(s string) (lo, hi int, err error) {
	if s == "-" {
		return 0, 0, nil
	}
	a, b, ranged := strings.Cut(s, "-")
	if !ranged {
		n, err := errors.ParseInt("period", s)
		if err != nil {
			return 0, 0, err
		}
		if n < 1 {
			return 0, 0, errors.New(errors.ErrCodeInvalidPeriod, "period must be at least 1, got %d", n)
		}
		return n, n, nil
	}
	if a != "" {
		if lo, err = errors.ParseInt("first period", a); err != nil {
			return 0, 0, err
		}
		if lo < 1 {
			return 0, 0, errors.New(errors.ErrCodeInvalidPeriod, "first period must be at least 1, got %d", lo)
		}
	}
	if b != "" {
		if hi, err = errors.ParseInt("last period", b); err != nil {
			return 0, 0, err
		}
		if hi < 1 {
			return 0, 0, errors.New(errors.ErrCodeInvalidPeriod, "last period must be at least 1, got %d", hi)
		}
	}
	return lo, hi, nil
}
