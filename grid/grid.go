package grid

import "fmt"

// Grid is an ordered set of dimensions plus the ghost cell depth shared by
// all of them. Immutable after construction.
type Grid struct {
	Dims []Dimension
	Mbc  int // Ghost cell layers per side
}

func NewGrid(mbc int, dims ...Dimension) (g *Grid, err error) {
	if mbc < 1 {
		err = fmt.Errorf("ghost cell count %d must be at least 1", mbc)
		return
	}
	if len(dims) < 1 || len(dims) > 2 {
		err = fmt.Errorf("grid supports 1 or 2 dimensions, got %d", len(dims))
		return
	}
	for _, d := range dims {
		if err = d.validate(); err != nil {
			return
		}
	}
	g = &Grid{
		Dims: append([]Dimension{}, dims...),
		Mbc:  mbc,
	}
	return
}

func (g *Grid) NDim() int { return len(g.Dims) }

// NTot is the ghosted cell count along dimension d
func (g *Grid) NTot(d int) int { return g.Dims[d].N + 2*g.Mbc }

// CellCenters returns the interior cell center coordinates along dimension d
func (g *Grid) CellCenters(d int) (x []float64) {
	var (
		dim = g.Dims[d]
		dx  = dim.Delta()
	)
	x = make([]float64, dim.N)
	for i := range x {
		x[i] = dim.Lower + (float64(i)+0.5)*dx
	}
	return
}

// CellVolume is the product of cell widths over all dimensions
func (g *Grid) CellVolume() (v float64) {
	v = 1
	for _, d := range g.Dims {
		v *= d.Delta()
	}
	return
}
