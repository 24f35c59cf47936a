package grid

import "fmt"

// BCKind selects the ghost fill policy for one side of a dimension
type BCKind uint8

const (
	BCUserDefined BCKind = iota // delegated to a user callback
	BCExtrap                    // zero-order extrapolation
	BCPeriodic                  // filled by the ghost exchange, not the BC engine
	BCWall                      // reflecting solid wall
)

var bcNames = []string{"user", "extrap", "periodic", "wall"}

func (k BCKind) String() string {
	if int(k) >= len(bcNames) {
		return fmt.Sprintf("bc(%d)", int(k))
	}
	return bcNames[k]
}

// ParseBCKind maps the names used in input files to BC kinds
func ParseBCKind(name string) (k BCKind, err error) {
	for i, n := range bcNames {
		if n == name {
			return BCKind(i), nil
		}
	}
	err = fmt.Errorf("unknown boundary condition %q", name)
	return
}

type Dimension struct {
	Name         string
	Lower, Upper float64
	N            int // Interior cell count
	BCLower      BCKind
	BCUpper      BCKind
	// Edge ownership under domain decomposition. A partition interior to the
	// decomposition never applies physical BCs on that side - the ghost
	// exchange owns it.
	OnLowerEdge, OnUpperEdge bool
}

func NewDimension(name string, lower, upper float64, n int) Dimension {
	return Dimension{
		Name:        name,
		Lower:       lower,
		Upper:       upper,
		N:           n,
		BCLower:     BCExtrap,
		BCUpper:     BCExtrap,
		OnLowerEdge: true,
		OnUpperEdge: true,
	}
}

// Delta is the uniform cell width
func (d Dimension) Delta() float64 {
	return (d.Upper - d.Lower) / float64(d.N)
}

func (d Dimension) validate() error {
	if d.N <= 0 {
		return fmt.Errorf("dimension %s: cell count %d must be positive", d.Name, d.N)
	}
	if d.Upper <= d.Lower {
		return fmt.Errorf("dimension %s: upper bound %g must exceed lower bound %g",
			d.Name, d.Upper, d.Lower)
	}
	return nil
}
