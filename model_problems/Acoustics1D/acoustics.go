package Acoustics1D

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/notargets/goclaw/grid"
	"github.com/notargets/goclaw/parallel"
	"github.com/notargets/goclaw/solver"
)

// Kernel decomposes the jump in (pressure, velocity) into left and right
// going acoustic waves. Impedance and sound speed come from the aux field
// when present (varying media), otherwise from the constant coefficients.
type Kernel struct {
	Rho, Bulk float64
}

func (Kernel) Meqn() int   { return 2 }
func (Kernel) Mwaves() int { return 2 }

func (k Kernel) impedance(aux []float64) (z, c float64) {
	if aux != nil {
		return aux[0], aux[1]
	}
	c = math.Sqrt(k.Bulk / k.Rho)
	z = k.Rho * c
	return
}

func (k Kernel) Solve(_ int, qL, qR, auxL, auxR []float64, out *solver.RiemannData) error {
	var (
		zl, cl = k.impedance(auxL)
		zr, cr = k.impedance(auxR)
		dp     = qR[0] - qL[0]
		du     = qR[1] - qL[1]
		alpha1 = (-dp + zr*du) / (zl + zr)
		alpha2 = (dp + zl*du) / (zl + zr)
	)
	out.Waves[0][0] = -alpha1 * zl
	out.Waves[0][1] = alpha1
	out.Speeds[0] = -cl
	out.Waves[1][0] = alpha2 * zr
	out.Waves[1][1] = alpha2
	out.Speeds[1] = cr
	for m := 0; m < 2; m++ {
		out.Amdq[m] = out.Speeds[0] * out.Waves[0][m]
		out.Apdq[m] = out.Speeds[1] * out.Waves[1][m]
	}
	return nil
}

// Acoustics solves the linear acoustics system on [-1, 1] with a Gaussian
// pressure pulse, a reflecting wall on the left and outflow on the right
type Acoustics struct {
	Rho, Bulk, CFL, FinalTime float64
	K                         int
	State                     *grid.State
	Solver                    *solver.Solver
}

func New(rho, bulk, CFL, FinalTime float64, K int, scheme solver.SchemeType, order int, limiterName string) (c *Acoustics, err error) {
	c = &Acoustics{
		Rho:       rho,
		Bulk:      bulk,
		CFL:       CFL,
		FinalTime: FinalTime,
		K:         K,
	}
	mbc := 2
	if scheme == solver.SharpClaw {
		mbc = 3
	}
	dim := grid.NewDimension("x", -1, 1, K)
	dim.BCLower, dim.BCUpper = grid.BCWall, grid.BCExtrap
	g, err := grid.NewGrid(mbc, dim)
	if err != nil {
		return nil, err
	}
	if c.State, err = grid.NewState(g, 2, 0); err != nil {
		return nil, err
	}
	for i, x := range g.CellCenters(0) {
		c.State.SetInterior(0, i, 0, math.Exp(-80*x*x))
	}
	sound := math.Sqrt(bulk / rho)
	cfg := &solver.Config{
		Scheme:     scheme,
		Order:      order,
		Limiters:   []string{limiterName},
		CFLDesired: CFL,
		CFLMax:     1.0,
		DTInitial:  CFL * dim.Delta() / sound,
		DTVariable: true,
	}
	c.Solver, err = solver.NewSolver(cfg, Kernel{Rho: rho, Bulk: bulk}, c.State, parallel.NewSerial(), zap.NewNop())
	if err != nil {
		return nil, err
	}
	return
}

func (c *Acoustics) Run(ctx context.Context) error {
	z := c.Rho * math.Sqrt(c.Bulk/c.Rho)
	fmt.Printf("Linear Acoustics in 1 Dimension\n")
	fmt.Printf("CFL = %8.4f, Z = %8.4f, Num Cells K = %d\n", c.CFL, z, c.K)
	return c.Solver.Evolve(ctx, c.State, c.FinalTime)
}
