package grid

import "math"

// Array is a dense field over a ghosted structured grid patch, one component
// per equation (or per aux coefficient). Storage is component major with the
// first grid index fastest, so a single component's x-line is contiguous.
type Array struct {
	Meqn   int
	N1, N2 int // Ghosted extents; N2 == 1 for 1D fields
	data   []float64
}

// NewArray allocates a zeroed field of meqn components over the ghosted grid
func NewArray(g *Grid, meqn int) (a *Array) {
	a = &Array{
		Meqn: meqn,
		N1:   g.NTot(0),
		N2:   1,
	}
	if g.NDim() == 2 {
		a.N2 = g.NTot(1)
	}
	a.data = make([]float64, meqn*a.N1*a.N2)
	return
}

func (a *Array) Data() []float64 { return a.data }

// Idx is the flat offset of component m at ghosted cell (i,j)
func (a *Array) Idx(m, i, j int) int {
	return m*a.N1*a.N2 + j*a.N1 + i
}

func (a *Array) At(m, i, j int) float64     { return a.data[a.Idx(m, i, j)] }
func (a *Array) Set(m, i, j int, v float64) { a.data[a.Idx(m, i, j)] = v }

// Comp returns the contiguous storage of component m
func (a *Array) Comp(m int) []float64 {
	sz := a.N1 * a.N2
	return a.data[m*sz : (m+1)*sz]
}

func (a *Array) Clone() (b *Array) {
	b = &Array{
		Meqn: a.Meqn,
		N1:   a.N1,
		N2:   a.N2,
		data: make([]float64, len(a.data)),
	}
	copy(b.data, a.data)
	return
}

func (a *Array) CopyFrom(b *Array) {
	copy(a.data, b.data)
}

// HasNonFinite reports whether any entry is NaN or Inf
func (a *Array) HasNonFinite() bool {
	for _, v := range a.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
