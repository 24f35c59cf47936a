package solver

import (
	"github.com/notargets/goclaw/limiter"
)

type SchemeType uint8

const (
	Classic SchemeType = iota
	SharpClaw
)

var schemeNames = []string{"classic", "sharpclaw"}

func (s SchemeType) String() string {
	if int(s) >= len(schemeNames) {
		return "scheme(?)"
	}
	return schemeNames[s]
}

const (
	// DefaultEpsWave guards the division by wave strength in the limiter
	// ratio; jumps smaller than this are treated as degenerate
	DefaultEpsWave = 1.e-10
	// DefaultEpsTime is the relative tolerance for landing exactly on a
	// requested output time
	DefaultEpsTime = 1.e-6
)

// Config fixes the numerical method for a run. Immutable after Validate.
type Config struct {
	Scheme    SchemeType
	Order     int      // Classic: 1 or 2. SharpClaw: WENO order, 5 supported
	Limiters  []string // One per wave family; a single entry applies to all
	CFLDesired float64
	CFLMax     float64
	DTInitial  float64
	DTMax      float64 // 0 means unclamped
	DTVariable bool    // Adaptive dt from CFL feedback when true
	MaxRetries int     // Rejected step attempts before giving up
	Source     SourceFunc
	UserBC     BCFunc

	EpsWave  float64
	EpsTime  float64
	LogEvery int // Accepted-step logging cadence

	limFuncs []limiter.Func // Resolved by Validate
}

// Validate checks consistency and resolves limiter names. Must be called
// (via NewSolver) before stepping.
func (c *Config) Validate(mwaves int) error {
	switch c.Scheme {
	case Classic:
		if c.Order != 1 && c.Order != 2 {
			return configErrf("classic scheme order %d not supported (want 1 or 2)", c.Order)
		}
	case SharpClaw:
		if c.Order != 5 {
			return configErrf("sharpclaw WENO order %d not supported (want 5)", c.Order)
		}
	default:
		return configErrf("unknown scheme %d", c.Scheme)
	}
	if c.CFLDesired <= 0 || c.CFLMax <= 0 {
		return configErrf("CFL targets must be positive, got desired=%g max=%g",
			c.CFLDesired, c.CFLMax)
	}
	if c.CFLDesired > c.CFLMax {
		return configErrf("desired CFL %g exceeds max CFL %g", c.CFLDesired, c.CFLMax)
	}
	if c.DTInitial <= 0 {
		return configErrf("initial dt %g must be positive", c.DTInitial)
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 10
	}
	if c.EpsWave == 0 {
		c.EpsWave = DefaultEpsWave
	}
	if c.EpsTime == 0 {
		c.EpsTime = DefaultEpsTime
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 50
	}
	if len(c.Limiters) == 0 {
		c.Limiters = []string{"none"}
	}
	if len(c.Limiters) == 1 && mwaves > 1 {
		one := c.Limiters[0]
		c.Limiters = make([]string, mwaves)
		for i := range c.Limiters {
			c.Limiters[i] = one
		}
	}
	if len(c.Limiters) != mwaves {
		return configErrf("need %d limiters (one per wave family), got %d",
			mwaves, len(c.Limiters))
	}
	c.limFuncs = make([]limiter.Func, mwaves)
	for i, name := range c.Limiters {
		f, err := limiter.Get(name)
		if err != nil {
			return &ConfigurationError{Reason: err.Error()}
		}
		c.limFuncs[i] = f
	}
	return nil
}
