package trans

import (
	"time"

	"github.com/matzehuels/jugglesearch/pkg/errors"
)

// Default limits applied by "-limits" and by hosts that must bound every
// search, such as the HTTP server.
const (
	DefaultMaxNum  = 1000
	DefaultTimeout = 15 * time.Second
)

// Ground stands for the ground pattern of the other endpoint.
const Ground = "-"

// Config is the transitioner configuration. It is built once, by
// ParseArgs or by hand, and not changed by a run.
type Config struct {
	// From and To are pattern texts; either, but not both, may be Ground.
	From string `json:"from"`
	To   string `json:"to"`

	// Multiplex is the largest number of objects a hand may throw at once.
	// Patterns that multiplex more raise it.
	Multiplex int `json:"multiplex"`
	// AllowSimultaneous turns the multiplex filter off.
	AllowSimultaneous bool `json:"allow_simultaneous"`
	// Clusters allows objects thrown together to be caught together.
	Clusters bool `json:"clusters"`

	MaxNum  int           `json:"max_num"`
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns a configuration with no endpoints and no limits.
func DefaultConfig() Config {
	return Config{Multiplex: 1, Clusters: true}
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

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.From == "" || c.To == "" {
		return errors.New(errors.ErrCodeInvalidInput, "both a from and a to pattern are required")
	}
	if c.From == Ground && c.To == Ground {
		return errors.New(errors.ErrCodeInvalidInput, "from and to cannot both be the ground pattern")
	}
	if err := errors.ValidateRange("multiplex", c.Multiplex, 1, 9); err != nil {
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
