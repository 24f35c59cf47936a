package Advection1D

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/notargets/goclaw/grid"
	"github.com/notargets/goclaw/parallel"
	"github.com/notargets/goclaw/solver"
)

// Kernel is the constant coefficient advection Riemann kernel: one wave,
// the full jump, carried at speed U
type Kernel struct {
	U float64
}

func (Kernel) Meqn() int   { return 1 }
func (Kernel) Mwaves() int { return 1 }

func (k Kernel) Solve(_ int, qL, qR, _, _ []float64, out *solver.RiemannData) error {
	wave := qR[0] - qL[0]
	out.Waves[0][0] = wave
	out.Speeds[0] = k.U
	out.Amdq[0] = math.Min(k.U, 0) * wave
	out.Apdq[0] = math.Max(k.U, 0) * wave
	return nil
}

// Advection solves q_t + u q_x = 0 on [0, 2*pi) with periodic boundaries
// and a sinusoidal initial profile, the standard order verification problem
type Advection struct {
	U, CFL, FinalTime float64
	K                 int // Number of cells
	State             *grid.State
	Solver            *solver.Solver
	cfg               *solver.Config
}

func New(u, CFL, FinalTime float64, K int, scheme solver.SchemeType, order int, limiterName string) (c *Advection, err error) {
	c = &Advection{
		U:         u,
		CFL:       CFL,
		FinalTime: FinalTime,
		K:         K,
	}
	mbc := 2
	if scheme == solver.SharpClaw {
		mbc = 3
	}
	dim := grid.NewDimension("x", 0, 2*math.Pi, K)
	dim.BCLower, dim.BCUpper = grid.BCPeriodic, grid.BCPeriodic
	g, err := grid.NewGrid(mbc, dim)
	if err != nil {
		return nil, err
	}
	if c.State, err = grid.NewState(g, 1, 0); err != nil {
		return nil, err
	}
	for i, x := range g.CellCenters(0) {
		c.State.SetInterior(0, i, 0, math.Sin(x))
	}
	dx := dim.Delta()
	c.cfg = &solver.Config{
		Scheme:     scheme,
		Order:      order,
		Limiters:   []string{limiterName},
		CFLDesired: CFL,
		CFLMax:     math.Max(CFL, 1.0),
		DTInitial:  CFL * dx / math.Abs(u),
		DTVariable: false,
	}
	c.Solver, err = solver.NewSolver(c.cfg, Kernel{U: u}, c.State, parallel.NewSerial(), zap.NewNop())
	if err != nil {
		return nil, err
	}
	return
}

func (c *Advection) Run(ctx context.Context) error {
	fmt.Printf("Linear Advection in 1 Dimension\n")
	fmt.Printf("CFL = %8.4f, u = %8.4f, Num Cells K = %d\n", c.CFL, c.U, c.K)
	return c.Solver.Evolve(ctx, c.State, c.FinalTime)
}

// RunParallel evolves the same problem decomposed across np partition
// workers, gathering the result back into c.State
func (c *Advection) RunParallel(ctx context.Context, np int, log *zap.Logger) error {
	fmt.Printf("Linear Advection in 1 Dimension, %d partitions\n", np)
	fmt.Printf("CFL = %8.4f, u = %8.4f, Num Cells K = %d\n", c.CFL, c.U, c.K)
	return parallel.RunDecomposed(ctx, c.cfg, Kernel{U: c.U}, c.State, np, c.FinalTime, log)
}

// L1Error is the cell averaged L1 distance to the exact translated profile
func (c *Advection) L1Error() (e float64) {
	var (
		g  = c.State.Grid
		dx = g.Dims[0].Delta()
	)
	for i, x := range g.CellCenters(0) {
		exact := math.Sin(x - c.U*c.State.T)
		e += math.Abs(c.State.AtInterior(0, i, 0)-exact) * dx
	}
	return
}
