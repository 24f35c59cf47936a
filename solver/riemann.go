package solver

import (
	"context"

	"github.com/notargets/goclaw/grid"
)

// RiemannData receives one interface solve: the jump decomposed into mwaves
// waves with speeds, and the left/right going fluctuations. Buffers are
// allocated once per sweep line and reused.
type RiemannData struct {
	Waves  [][]float64 // [mwaves][meqn]
	Speeds []float64   // [mwaves]
	Amdq   []float64   // [meqn] left going fluctuation
	Apdq   []float64   // [meqn] right going fluctuation
}

func NewRiemannData(meqn, mwaves int) (rd *RiemannData) {
	rd = &RiemannData{
		Waves:  make([][]float64, mwaves),
		Speeds: make([]float64, mwaves),
		Amdq:   make([]float64, meqn),
		Apdq:   make([]float64, meqn),
	}
	for w := range rd.Waves {
		rd.Waves[w] = make([]float64, meqn)
	}
	return
}

// RiemannSolver is the pluggable wave decomposition kernel. Solve must be
// deterministic and side effect free; dir selects the sweep normal (0 = x,
// 1 = y). Aux slices are nil when the state carries no aux field.
type RiemannSolver interface {
	Meqn() int
	Mwaves() int
	Solve(dir int, qL, qR, auxL, auxR []float64, out *RiemannData) error
}

// SourceFunc applies a source term to q in place over an operator split
// interval dt
type SourceFunc func(s *grid.State, t, dt float64)

// BCFunc is the user defined boundary fill callback, invoked verbatim by
// the BC engine
type BCFunc func(g *grid.Grid, dim, side int, q *grid.Array)

// Exchanger is the distributed collaborator capability: blocking halo fill
// across partitions (including periodic wrap) and a blocking all-reduce.
// Single partition runs use the serial implementation in package parallel.
type Exchanger interface {
	ExchangeGhosts(ctx context.Context, s *grid.State) error
	GlobalMax(ctx context.Context, v float64) (float64, error)
}
