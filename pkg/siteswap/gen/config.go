package gen

import (
	"time"

	"github.com/matzehuels/jugglesearch/pkg/errors"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// Default limits for hosts that must bound every search.
const (
	DefaultMaxNum  = 1000
	DefaultTimeout = 15 * time.Second
)

// GroundMode selects which start states are searched.
type GroundMode int

const (
	// Both lists ground and excited patterns.
	Both GroundMode = iota
	// GroundOnly lists patterns through the ground state.
	GroundOnly
	// ExcitedOnly lists patterns that avoid the ground state.
	ExcitedOnly
)

// Enumeration selects how loops that revisit a state are treated.
type Enumeration int

const (
	// Default rejects loops that return to their start state early.
	Default Enumeration = iota
	// Full adds composite loops and still lists exact repetitions in
	// primitive form only.
	Full
	// Prime rejects loops that visit any state twice.
	Prime
)

// Config is the generator configuration. It is built once, by ParseArgs or
// by hand, and not changed by a run.
type Config struct {
	Objects int `json:"objects"`
	// MaxThrow is the highest throw; 0 derives it from the period range.
	MaxThrow int `json:"max_throw"`
	// PeriodMin of 0 starts at the rhythm period and PeriodMax of 0 leaves
	// the range open, which only prime enumeration can search.
	PeriodMin int `json:"period_min"`
	PeriodMax int `json:"period_max"`

	Sync      bool `json:"sync"`
	Jugglers  int  `json:"jugglers"`
	Multiplex int  `json:"multiplex"`

	Ground              GroundMode  `json:"ground"`
	Enumeration         Enumeration `json:"enumeration"`
	Rotations           bool        `json:"rotations"`
	JugglerPermutations bool        `json:"juggler_permutations"`
	Connected           bool        `json:"connected"`
	ExcludeLame         bool        `json:"exclude_lame"`

	// Delay is the passing communication delay in beats and Leader the
	// 0-based juggler allowed to pass during it.
	Delay  int `json:"delay"`
	Leader int `json:"leader"`

	// MultiplexFilter rejects hands catching objects from different sources
	// on one beat; Clusters still lets a multiplex land together.
	MultiplexFilter bool `json:"multiplex_filter"`
	Clusters        bool `json:"clusters"`
	TrueMultiplex   bool `json:"true_multiplex"`

	// StartEnd adds the sequences from and back to the ground state to
	// excited patterns.
	StartEnd bool `json:"start_end"`
	// ShowCount reports the pattern count at the end and CountOnly reports
	// nothing else.
	ShowCount bool `json:"show_count"`
	CountOnly bool `json:"count_only"`

	Exclude []string `json:"exclude,omitempty"`
	Include []string `json:"include,omitempty"`

	MaxNum  int           `json:"max_num"`
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the configuration of a bare "<objects> - <period>"
// vector.
func DefaultConfig() Config {
	return Config{
		Jugglers:        1,
		Multiplex:       1,
		MultiplexFilter: true,
		Clusters:        true,
		StartEnd:        true,
	}
}

// WithDefaultLimits returns c with DefaultMaxNum and DefaultTimeout filled
// in where c has no limit.
func (c Config) WithDefaultLimits() Config {
	if c.MaxNum <= 0 {
		c.MaxNum = DefaultMaxNum
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Rhythm returns the rhythm the configuration searches on.
func (c Config) Rhythm() (siteswap.Rhythm, error) {
	mode := siteswap.Async
	if c.Sync {
		mode = siteswap.Sync
	}
	return siteswap.RhythmFor(mode, c.Jugglers, c.Multiplex)
}

// Periods returns the first and last period searched; last is 0 for an
// open range.
func (c Config) Periods() (first, last int) {
	first = c.PeriodMin
	if first == 0 {
		first = 1
		if c.Sync {
			first = 2
		}
	}
	return first, c.PeriodMax
}

// Height returns the max throw, derived as objects times the last period
// when not set, capped at siteswap.MaxThrow.
func (c Config) Height() int {
	if c.MaxThrow > 0 {
		return c.MaxThrow
	}
	return min(c.Objects*c.PeriodMax, siteswap.MaxThrow)
}

// Validate checks the configuration. Every failure is a user error naming
// the field.
func (c Config) Validate() error {
	if err := errors.ValidateRange("balls", c.Objects, 1, -1); err != nil {
		return err
	}
	if err := errors.ValidateRange("jugglers", c.Jugglers, 1, siteswap.MaxThrow-1); err != nil {
		return err
	}
	if err := errors.ValidateRange("multiplex", c.Multiplex, 1, 9); err != nil {
		return err
	}
	r, err := c.Rhythm()
	if err != nil {
		return err
	}

	first, last := c.Periods()
	if err := errors.ValidateRange("period", first, 1, -1); err != nil {
		return err
	}
	if err := errors.ValidateMultiple("period", first, r.Period); err != nil {
		return err
	}
	if last == 0 {
		if c.Enumeration != Prime {
			return errors.New(errors.ErrCodeInvalidPeriod, "an open period range can only be searched with -prime")
		}
		if c.MaxThrow == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "an open period range needs a max throw")
		}
	} else {
		if err := errors.ValidateRange("last period", last, first, -1); err != nil {
			return err
		}
		if err := errors.ValidateMultiple("period", last, r.Period); err != nil {
			return err
		}
	}
	if c.MaxThrow != 0 {
		if err := errors.ValidateRange("max throw", c.MaxThrow, 1, siteswap.MaxThrow); err != nil {
			return err
		}
	}

	if err := errors.ValidateRange("delay", c.Delay, 0, -1); err != nil {
		return err
	}
	if err := errors.ValidateRange("leader", c.Leader+1, 1, c.Jugglers); err != nil {
		return err
	}
	if err := errors.ValidateRange("max number", c.MaxNum, 0, -1); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout must not be negative")
	}
	return nil
}
