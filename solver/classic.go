package solver

import (
	"context"
	"math"

	"github.com/notargets/goclaw/grid"
)

// stepper advances one candidate time step in place and reports the realized
// CFL number. The controller owns accept/reject.
type stepper interface {
	Step(ctx context.Context, s *grid.State, dt float64) (cfl float64, err error)
}

// fillFunc runs the ghost exchange followed by the physical BC fill
type fillFunc func(ctx context.Context, s *grid.State) error

// classicEngine is the Godunov wave propagation update: first order
// fluctuations from the Riemann kernel, plus a limited second order
// correction flux when Order == 2. Multiple dimensions are handled by
// dimensional splitting with a ghost refill between sweeps.
type classicEngine struct {
	cfg  *Config
	rp   RiemannSolver
	fill fillFunc

	rd     *RiemannData
	qline  [][]float64 // Gathered cell states along the sweep line
	aline  [][]float64 // Gathered aux states, nil without aux
	dq     [][]float64 // Accumulated update per cell
	waves  [][][]float64
	speeds [][]float64
	fadd   [][]float64 // Second order correction flux per interface
}

func newClassicEngine(cfg *Config, rp RiemannSolver, g *grid.Grid, maux int, fill fillFunc) (e *classicEngine) {
	var (
		nMax = g.NTot(0)
	)
	if g.NDim() == 2 && g.NTot(1) > nMax {
		nMax = g.NTot(1)
	}
	e = &classicEngine{
		cfg:    cfg,
		rp:     rp,
		fill:   fill,
		rd:     NewRiemannData(rp.Meqn(), rp.Mwaves()),
		qline:  allocLine(nMax, rp.Meqn()),
		dq:     allocLine(nMax, rp.Meqn()),
		speeds: allocLine(nMax+1, rp.Mwaves()),
		fadd:   allocLine(nMax+1, rp.Meqn()),
	}
	if maux > 0 {
		e.aline = allocLine(nMax, maux)
	}
	e.waves = make([][][]float64, nMax+1)
	for i := range e.waves {
		e.waves[i] = allocLine(rp.Mwaves(), rp.Meqn())
	}
	return
}

func allocLine(n, m int) (buf [][]float64) {
	buf = make([][]float64, n)
	for i := range buf {
		buf[i] = make([]float64, m)
	}
	return
}

func (e *classicEngine) Step(ctx context.Context, s *grid.State, dt float64) (cfl float64, err error) {
	var (
		cfg = e.cfg
	)
	if cfg.Source != nil {
		cfg.Source(s, s.T, dt/2)
	}
	for d := range s.Grid.Dims {
		if d > 0 {
			// Splitting: the y sweep reads ghosts of the x-updated state
			if err = e.fill(ctx, s); err != nil {
				return
			}
		}
		var c float64
		if c, err = e.sweep(s, d, dt); err != nil {
			return
		}
		cfl = math.Max(cfl, c)
	}
	if cfg.Source != nil {
		cfg.Source(s, s.T, dt/2)
	}
	if s.Q.HasNonFinite() {
		err = &NumericalInstabilityError{Reason: "non-finite value in updated state", T: s.T}
	}
	return
}

// sweep applies the 1D update along dimension d to every interior line
// perpendicular to it
func (e *classicEngine) sweep(s *grid.State, d int, dt float64) (cfl float64, err error) {
	var (
		g     = s.Grid
		mbc   = g.Mbc
		nTot  = g.NTot(d)
		dtdx  = dt / g.Dims[d].Delta()
		pLow  = 0
		pHigh = 1
	)
	if g.NDim() == 2 {
		// Interior rows/columns only; ghost lines are refilled next step
		pLow = mbc
		pHigh = g.NTot(1-d) - mbc
	}
	for p := pLow; p < pHigh; p++ {
		e.gather(s, d, p)
		var c float64
		if c, err = e.updateLine(d, nTot, mbc, dtdx); err != nil {
			return
		}
		cfl = math.Max(cfl, c)
		e.scatter(s, d, p, mbc, nTot)
	}
	return
}

func (e *classicEngine) gather(s *grid.State, d, p int) {
	var (
		nTot = s.Grid.NTot(d)
		meqn = s.Q.Meqn
	)
	for c := 0; c < nTot; c++ {
		i, j := lineCell(d, c, p)
		for m := 0; m < meqn; m++ {
			e.qline[c][m] = s.Q.At(m, i, j)
			e.dq[c][m] = 0
		}
		if e.aline != nil {
			for m := 0; m < s.Aux.Meqn; m++ {
				e.aline[c][m] = s.Aux.At(m, i, j)
			}
		}
	}
}

func (e *classicEngine) scatter(s *grid.State, d, p, mbc, nTot int) {
	for c := mbc; c < nTot-mbc; c++ {
		i, j := lineCell(d, c, p)
		for m := 0; m < s.Q.Meqn; m++ {
			s.Q.Set(m, i, j, e.qline[c][m]+e.dq[c][m])
		}
	}
}

func lineCell(d, c, p int) (i, j int) {
	if d == 0 {
		return c, p
	}
	return p, c
}

// updateLine runs the Riemann kernel at every interface of one gathered
// line, accumulates the first order fluctuations, and (at order 2) the
// limited correction flux divergence
func (e *classicEngine) updateLine(d, nTot, mbc int, dtdx float64) (cfl float64, err error) {
	var (
		meqn   = e.rp.Meqn()
		mwaves = e.rp.Mwaves()
		auxL   []float64
		auxR   []float64
	)
	// Interface i separates cells i-1 and i
	for i := 1; i < nTot; i++ {
		if e.aline != nil {
			auxL, auxR = e.aline[i-1], e.aline[i]
		}
		if err = e.rp.Solve(d, e.qline[i-1], e.qline[i], auxL, auxR, e.rd); err != nil {
			return
		}
		for w := 0; w < mwaves; w++ {
			copy(e.waves[i][w], e.rd.Waves[w])
			e.speeds[i][w] = e.rd.Speeds[w]
			if i >= mbc && i <= nTot-mbc {
				cfl = math.Max(cfl, dtdx*math.Abs(e.rd.Speeds[w]))
			}
		}
		// Godunov first order term
		for m := 0; m < meqn; m++ {
			e.dq[i-1][m] -= dtdx * e.rd.Amdq[m]
			e.dq[i][m] -= dtdx * e.rd.Apdq[m]
		}
	}
	if e.cfg.Order < 2 {
		return
	}
	// High resolution correction: limited waves become a flux at each
	// interface, applied in conservative flux difference form
	for i := 1; i <= nTot-1; i++ {
		for m := 0; m < meqn; m++ {
			e.fadd[i][m] = 0
		}
		if i < 2 || i > nTot-2 {
			continue // No upwind neighbor available
		}
		for w := 0; w < mwaves; w++ {
			var (
				sp    = e.speeds[i][w]
				wv    = e.waves[i][w]
				wnorm float64
			)
			for m := 0; m < meqn; m++ {
				wnorm += wv[m] * wv[m]
			}
			phi := 1.0
			if wnorm > e.cfg.EpsWave {
				up := i - 1
				if sp < 0 {
					up = i + 1
				}
				var dot float64
				for m := 0; m < meqn; m++ {
					dot += e.waves[up][w][m] * wv[m]
				}
				phi = e.cfg.limFuncs[w](dot / wnorm)
			}
			abss := math.Abs(sp)
			coef := 0.5 * abss * (1 - dtdx*abss) * phi
			for m := 0; m < meqn; m++ {
				e.fadd[i][m] += coef * wv[m]
			}
		}
	}
	for c := 2; c < nTot-2; c++ {
		for m := 0; m < meqn; m++ {
			e.dq[c][m] -= dtdx * (e.fadd[c+1][m] - e.fadd[c][m])
		}
	}
	return
}
