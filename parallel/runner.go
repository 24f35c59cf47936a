package parallel

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/notargets/goclaw/grid"
	"github.com/notargets/goclaw/solver"
)

// Decompose splits the global grid along x into np partition grids. Interior
// partition sides lose their physical edge ownership so the BC engine skips
// them; the exchange owns those ghosts instead.
func Decompose(g *grid.Grid, np int) (locals []*grid.Grid, pm *PartitionMap, err error) {
	if pm, err = NewPartitionMap(np, g.Dims[0].N); err != nil {
		return
	}
	var (
		dx = g.Dims[0].Delta()
	)
	locals = make([]*grid.Grid, np)
	for r := 0; r < np; r++ {
		lo, hi := pm.Range(r)
		dims := append([]grid.Dimension{}, g.Dims...)
		dims[0].Lower = g.Dims[0].Lower + float64(lo)*dx
		dims[0].Upper = g.Dims[0].Lower + float64(hi)*dx
		dims[0].N = hi - lo
		dims[0].OnLowerEdge = g.Dims[0].OnLowerEdge && r == 0
		dims[0].OnUpperEdge = g.Dims[0].OnUpperEdge && r == np-1
		if locals[r], err = grid.NewGrid(g.Mbc, dims...); err != nil {
			return
		}
	}
	return
}

// Scatter copies the global interior (q and aux) into per partition states
func Scatter(global *grid.State, locals []*grid.Grid, pm *PartitionMap) (states []*grid.State, err error) {
	maux := 0
	if global.Aux != nil {
		maux = global.Aux.Meqn
	}
	states = make([]*grid.State, len(locals))
	for r := range locals {
		if states[r], err = grid.NewState(locals[r], global.Q.Meqn, maux); err != nil {
			return
		}
		states[r].T = global.T
		lo, _ := pm.Range(r)
		copyInterior(global, states[r], lo, true)
	}
	return
}

// Gather copies every partition's interior solution back into the global
// state and advances its time
func Gather(global *grid.State, states []*grid.State, pm *PartitionMap) {
	for r, st := range states {
		lo, _ := pm.Range(r)
		copyInterior(global, st, lo, false)
	}
	if len(states) > 0 {
		global.T = states[0].T
	}
}

func copyInterior(global, local *grid.State, offset int, toLocal bool) {
	var (
		g  = local.Grid
		n1 = g.Dims[0].N
		n2 = 1
	)
	if g.NDim() == 2 {
		n2 = g.Dims[1].N
	}
	fields := [][2]*grid.Array{{global.Q, local.Q}}
	if global.Aux != nil && local.Aux != nil {
		fields = append(fields, [2]*grid.Array{global.Aux, local.Aux})
	}
	for _, f := range fields {
		ga, la := f[0], f[1]
		for m := 0; m < la.Meqn; m++ {
			for j := 0; j < n2; j++ {
				for i := 0; i < n1; i++ {
					gi, gj := i+offset+global.Grid.Mbc, j
					li, lj := i+g.Mbc, j
					if g.NDim() == 2 {
						gj += global.Grid.Mbc
						lj += g.Mbc
					}
					if toLocal {
						la.Set(m, li, lj, ga.At(m, gi, gj))
					} else {
						ga.Set(m, gi, gj, la.At(m, li, lj))
					}
				}
			}
		}
	}
}

// RunDecomposed evolves the global state to tEnd across np partition
// workers. Every worker runs the same controller; the topology's collectives
// keep dt and simulation time identical on all ranks.
func RunDecomposed(ctx context.Context, cfg *solver.Config, rp solver.RiemannSolver,
	global *grid.State, np int, tEnd float64, log *zap.Logger) error {
	locals, pm, err := Decompose(global.Grid, np)
	if err != nil {
		return err
	}
	states, err := Scatter(global, locals, pm)
	if err != nil {
		return err
	}
	t := NewTopology(np, isPeriodic(global.Grid.Dims[0]))
	defer t.Close()

	solvers := make([]*solver.Solver, np)
	for r := 0; r < np; r++ {
		if solvers[r], err = solver.NewSolver(cfg, rp, states[r], t.Rank(r), log); err != nil {
			return err
		}
	}
	eg, ctx := errgroup.WithContext(ctx)
	for r := 0; r < np; r++ {
		r := r
		eg.Go(func() error {
			return solvers[r].Evolve(ctx, states[r], tEnd)
		})
	}
	if err = eg.Wait(); err != nil {
		return err
	}
	Gather(global, states, pm)
	return nil
}
