package solver

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/notargets/goclaw/grid"
)

// StepResult reports the outcome of one proposed step
type StepResult struct {
	CFL      float64
	DT       float64
	Accepted bool
	Retries  int
}

// Solver drives the update engine through the proposed/accepted/rejected
// step cycle and keeps the trial dt in the stable range via CFL feedback.
type Solver struct {
	cfg  *Config
	rp   RiemannSolver
	exch Exchanger
	eng  stepper
	log  *zap.Logger

	dt    float64 // Current trial step
	steps int
}

func NewSolver(cfg *Config, rp RiemannSolver, st *grid.State, exch Exchanger, log *zap.Logger) (sv *Solver, err error) {
	if err = cfg.Validate(rp.Mwaves()); err != nil {
		return
	}
	if rp.Meqn() != st.Q.Meqn {
		err = configErrf("kernel meqn %d does not match state meqn %d", rp.Meqn(), st.Q.Meqn)
		return
	}
	var (
		g   = st.Grid
		mbc = g.Mbc
	)
	switch {
	case cfg.Scheme == Classic && cfg.Order == 2 && mbc < 2:
		err = configErrf("classic order 2 needs at least 2 ghost layers, grid has %d", mbc)
		return
	case cfg.Scheme == SharpClaw && mbc < 3:
		err = configErrf("sharpclaw WENO5 needs at least 3 ghost layers, grid has %d", mbc)
		return
	}
	if log == nil {
		log = zap.NewNop()
	}
	sv = &Solver{
		cfg:  cfg,
		rp:   rp,
		exch: exch,
		log:  log,
		dt:   cfg.DTInitial,
	}
	maux := 0
	if st.Aux != nil {
		maux = st.Aux.Meqn
	}
	switch cfg.Scheme {
	case Classic:
		sv.eng = newClassicEngine(cfg, rp, g, maux, sv.fill)
	case SharpClaw:
		sv.eng = newSharpclawEngine(cfg, rp, st, sv.fill)
	}
	return
}

// fill synchronizes ghost cells: partition exchange (including periodic
// wrap) first, then the physical boundary fill on owned edges
func (sv *Solver) fill(ctx context.Context, s *grid.State) error {
	if err := sv.exch.ExchangeGhosts(ctx, s); err != nil {
		if _, ok := err.(*CollectiveFailureError); ok {
			return err
		}
		return &CollectiveFailureError{Op: "ghost exchange", Err: err}
	}
	return FillGhosts(s, sv.cfg)
}

// EvolveStep attempts one step of size dt, retrying with a reduced dt while
// the globally reduced CFL exceeds the maximum. On acceptance the state is
// committed and the next trial dt is stored.
func (sv *Solver) EvolveStep(ctx context.Context, s *grid.State, dt float64) (res StepResult, err error) {
	var (
		cfg  = sv.cfg
		qOld = s.Q.Clone()
	)
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err = sv.fill(ctx, s); err != nil {
			return
		}
		var cflLocal float64
		if cflLocal, err = sv.eng.Step(ctx, s, dt); err != nil {
			if ne, ok := err.(*NumericalInstabilityError); ok {
				ne.Step = sv.steps
			}
			return
		}
		// Every partition must see the same CFL so the accept decision and
		// the next dt are identical everywhere
		var cfl float64
		if cfl, err = sv.exch.GlobalMax(ctx, cflLocal); err != nil {
			if _, ok := err.(*CollectiveFailureError); !ok {
				err = &CollectiveFailureError{Op: "cfl reduction", Err: err}
			}
			return
		}
		if cfl <= cfg.CFLMax {
			s.T += dt
			sv.steps++
			if cfg.DTVariable && cfl > 0 {
				sv.dt = dt * cfg.CFLDesired / cfl
				if cfg.DTMax > 0 && sv.dt > cfg.DTMax {
					sv.dt = cfg.DTMax
				}
			}
			res = StepResult{CFL: cfl, DT: dt, Accepted: true, Retries: attempt}
			return
		}
		if !cfg.DTVariable {
			err = &NumericalInstabilityError{
				Reason: "CFL exceeds maximum with fixed dt",
				T:      s.T, Step: sv.steps,
			}
			return
		}
		// Rejected: discard the candidate update and shrink dt
		s.Q.CopyFrom(qOld)
		dt *= cfg.CFLDesired / cfl
		sv.log.Debug("step rejected",
			zap.Int("step", sv.steps), zap.Float64("cfl", cfl), zap.Float64("dtNext", dt))
	}
	err = &NumericalInstabilityError{
		Reason: "CFL retry limit exceeded",
		T:      s.T, Step: sv.steps,
	}
	return
}

// Evolve advances the state to tEnd, shrinking (never growing) the final
// steps to land on tEnd exactly
func (sv *Solver) Evolve(ctx context.Context, s *grid.State, tEnd float64) error {
	var (
		cfg = sv.cfg
		tol = cfg.EpsTime * math.Max(1, math.Abs(tEnd))
	)
	for s.T < tEnd-tol {
		dt := sv.dt
		if s.T+dt > tEnd {
			dt = tEnd - s.T
		}
		res, err := sv.EvolveStep(ctx, s, dt)
		if err != nil {
			return err
		}
		if sv.steps%cfg.LogEvery == 0 {
			sv.log.Info("step accepted",
				zap.Int("step", sv.steps),
				zap.Float64("t", s.T),
				zap.Float64("dt", res.DT),
				zap.Float64("cfl", res.CFL),
				zap.Int("retries", res.Retries))
		}
	}
	return nil
}

// DT returns the current trial time step
func (sv *Solver) DT() float64 { return sv.dt }

// Steps returns the number of accepted steps so far
func (sv *Solver) Steps() int { return sv.steps }
