// Package limiter holds the registry of TVD wave limiters applied to the
// characteristic decomposition during a high resolution update. Each limiter
// maps the upwind wave ratio theta to a rescaling factor phi(theta).
package limiter

import (
	"fmt"
	"math"
	"sort"
)

type Func func(theta float64) float64

var registry = map[string]Func{
	"none":     None,
	"minmod":   MinMod,
	"superbee": Superbee,
	"vanleer":  VanLeer,
	"mc":       MC,
}

// Get looks up a limiter by name
func Get(name string) (f Func, err error) {
	var ok bool
	if f, ok = registry[name]; !ok {
		err = fmt.Errorf("unknown limiter %q (have %v)", name, Names())
	}
	return
}

func Names() (names []string) {
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return
}

// None leaves the wave untouched, giving the unlimited scheme
func None(theta float64) float64 {
	return 1
}

func MinMod(theta float64) float64 {
	return math.Max(0, math.Min(1, theta))
}

func Superbee(theta float64) float64 {
	return math.Max(0, math.Max(math.Min(1, 2*theta), math.Min(2, theta)))
}

func VanLeer(theta float64) float64 {
	return (theta + math.Abs(theta)) / (1 + math.Abs(theta))
}

// MC is the monotonized central-difference limiter
func MC(theta float64) float64 {
	return math.Max(0, math.Min(math.Min((1+theta)/2, 2), 2*theta))
}
