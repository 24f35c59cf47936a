package Acoustics2D

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/notargets/goclaw/grid"
	"github.com/notargets/goclaw/parallel"
	"github.com/notargets/goclaw/solver"
)

// Kernel is 2D homogeneous acoustics (pressure and two velocity
// components). Each sweep direction couples pressure with its normal
// velocity; the transverse velocity rides along unchanged.
type Kernel struct {
	Rho, Bulk float64
}

func (Kernel) Meqn() int   { return 3 }
func (Kernel) Mwaves() int { return 2 }

func (k Kernel) Solve(dir int, qL, qR, _, _ []float64, out *solver.RiemannData) error {
	var (
		c      = math.Sqrt(k.Bulk / k.Rho)
		z      = k.Rho * c
		un     = 1 + dir // Normal velocity component for this sweep
		dp     = qR[0] - qL[0]
		du     = qR[un] - qL[un]
		alpha1 = (-dp + z*du) / (2 * z)
		alpha2 = (dp + z*du) / (2 * z)
	)
	for w := 0; w < 2; w++ {
		for m := 0; m < 3; m++ {
			out.Waves[w][m] = 0
		}
	}
	out.Waves[0][0] = -alpha1 * z
	out.Waves[0][un] = alpha1
	out.Speeds[0] = -c
	out.Waves[1][0] = alpha2 * z
	out.Waves[1][un] = alpha2
	out.Speeds[1] = c
	for m := 0; m < 3; m++ {
		out.Amdq[m] = out.Speeds[0] * out.Waves[0][m]
		out.Apdq[m] = out.Speeds[1] * out.Waves[1][m]
	}
	return nil
}

// Acoustics solves the 2D radial pulse problem on [-1,1]^2 with
// zero order extrapolation on all sides
type Acoustics struct {
	Rho, Bulk, CFL, FinalTime float64
	K                         int // Cells per side
	State                     *grid.State
	Solver                    *solver.Solver
}

func New(rho, bulk, CFL, FinalTime float64, K int, order int, limiterName string) (c *Acoustics, err error) {
	c = &Acoustics{
		Rho:       rho,
		Bulk:      bulk,
		CFL:       CFL,
		FinalTime: FinalTime,
		K:         K,
	}
	dimX := grid.NewDimension("x", -1, 1, K)
	dimY := grid.NewDimension("y", -1, 1, K)
	g, err := grid.NewGrid(2, dimX, dimY)
	if err != nil {
		return nil, err
	}
	if c.State, err = grid.NewState(g, 3, 0); err != nil {
		return nil, err
	}
	var (
		xc = g.CellCenters(0)
		yc = g.CellCenters(1)
	)
	for j, y := range yc {
		for i, x := range xc {
			r := math.Sqrt(x*x + y*y)
			c.State.SetInterior(0, i, j, math.Exp(-40*(r-0.3)*(r-0.3)))
		}
	}
	sound := math.Sqrt(bulk / rho)
	cfg := &solver.Config{
		Scheme:     solver.Classic,
		Order:      order,
		Limiters:   []string{limiterName},
		CFLDesired: CFL,
		CFLMax:     1.0,
		DTInitial:  CFL * dimX.Delta() / sound,
		DTVariable: true,
	}
	c.Solver, err = solver.NewSolver(cfg, Kernel{Rho: rho, Bulk: bulk}, c.State, parallel.NewSerial(), zap.NewNop())
	if err != nil {
		return nil, err
	}
	return
}

func (c *Acoustics) Run(ctx context.Context) error {
	fmt.Printf("Linear Acoustics in 2 Dimensions\n")
	fmt.Printf("CFL = %8.4f, Num Cells K = %dx%d\n", c.CFL, c.K, c.K)
	return c.Solver.Evolve(ctx, c.State, c.FinalTime)
}
