package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// State owns the conserved solution Q and the auxiliary coefficient field Aux
// over one grid patch. The interior of Q is the authoritative solution at
// time T; ghost layers are scratch, valid only immediately after a boundary
// fill. Aux is never touched by the time stepper.
type State struct {
	Grid *Grid
	Q    *Array
	Aux  *Array // nil when maux == 0
	T    float64
}

func NewState(g *Grid, meqn, maux int) (s *State, err error) {
	if meqn < 1 {
		err = fmt.Errorf("meqn %d must be at least 1", meqn)
		return
	}
	if maux < 0 {
		err = fmt.Errorf("maux %d must not be negative", maux)
		return
	}
	s = &State{
		Grid: g,
		Q:    NewArray(g, meqn),
	}
	if maux > 0 {
		s.Aux = NewArray(g, maux)
	}
	return
}

// SetInterior writes component m at interior cell (i,j), indices counted
// from the first interior cell
func (s *State) SetInterior(m, i, j int, v float64) {
	mbc := s.Grid.Mbc
	if s.Grid.NDim() == 1 {
		s.Q.Set(m, i+mbc, 0, v)
		return
	}
	s.Q.Set(m, i+mbc, j+mbc, v)
}

// AtInterior reads component m at interior cell (i,j)
func (s *State) AtInterior(m, i, j int) float64 {
	mbc := s.Grid.Mbc
	if s.Grid.NDim() == 1 {
		return s.Q.At(m, i+mbc, 0)
	}
	return s.Q.At(m, i+mbc, j+mbc)
}

// InteriorComp copies component m's interior cells into a flat slice,
// x fastest
func (s *State) InteriorComp(m int) (out []float64) {
	var (
		g    = s.Grid
		mbc  = g.Mbc
		n1   = g.Dims[0].N
		n2   = 1
		jLow = 0
	)
	if g.NDim() == 2 {
		n2 = g.Dims[1].N
		jLow = mbc
	}
	out = make([]float64, 0, n1*n2)
	for j := 0; j < n2; j++ {
		for i := 0; i < n1; i++ {
			out = append(out, s.Q.At(m, i+mbc, j+jLow))
		}
	}
	return
}

// MassTotal is the cell-volume weighted sum of component m over the
// interior, the quantity conserved by the flux-difference update
func (s *State) MassTotal(m int) float64 {
	return floats.Sum(s.InteriorComp(m)) * s.Grid.CellVolume()
}
