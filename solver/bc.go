package solver

import (
	"github.com/notargets/goclaw/grid"
)

const (
	sideLower = 0
	sideUpper = 1
)

// FillGhosts applies the physical boundary conditions to every dimension and
// side of the state's ghost layers. Periodic sides are not touched here -
// they are owned by the ghost exchange, which must run before this fill.
// Interior partition sides (no physical edge ownership) are likewise skipped.
func FillGhosts(s *grid.State, cfg *Config) error {
	for d := range s.Grid.Dims {
		if err := fillSide(s, cfg, d, sideLower); err != nil {
			return err
		}
		if err := fillSide(s, cfg, d, sideUpper); err != nil {
			return err
		}
	}
	return nil
}

func fillSide(s *grid.State, cfg *Config, d, side int) error {
	var (
		g      = s.Grid
		dim    = g.Dims[d]
		kind   = dim.BCLower
		onEdge = dim.OnLowerEdge
	)
	if side == sideUpper {
		kind = dim.BCUpper
		onEdge = dim.OnUpperEdge
	}
	switch kind {
	case grid.BCUserDefined:
		if cfg.UserBC == nil {
			return configErrf("dimension %s: user BC selected but no callback supplied", dim.Name)
		}
		cfg.UserBC(g, d, side, s.Q)
	case grid.BCExtrap:
		if onEdge {
			fillExtrap(s.Q, g, d, side)
		}
	case grid.BCPeriodic:
		// Owned by the exchange
	case grid.BCWall:
		if g.NDim() > 2 {
			return configErrf("dimension %s: wall BC unimplemented for %dD", dim.Name, g.NDim())
		}
		if onEdge {
			fillWall(s.Q, g, d, side)
		}
	default:
		return configErrf("dimension %s: unrecognized BC kind %d", dim.Name, int(kind))
	}
	return nil
}

// ghostToSource maps each ghost index along the filled dimension to its
// source index: nearest interior cell for extrap, mirrored interior cell
// for wall
func ghostToSource(g *grid.Grid, d, side int, mirror bool) (ghosts, src []int) {
	var (
		mbc  = g.Mbc
		nTot = g.NTot(d)
	)
	for k := 0; k < mbc; k++ {
		if side == sideLower {
			ghosts = append(ghosts, k)
			if mirror {
				src = append(src, 2*mbc-1-k)
			} else {
				src = append(src, mbc)
			}
		} else {
			ghosts = append(ghosts, nTot-1-k)
			if mirror {
				src = append(src, nTot-2*mbc+k)
			} else {
				src = append(src, nTot-mbc-1)
			}
		}
	}
	return
}

func fillExtrap(q *grid.Array, g *grid.Grid, d, side int) {
	ghosts, src := ghostToSource(g, d, side, false)
	copyLines(q, g, d, ghosts, src, -1)
}

func fillWall(q *grid.Array, g *grid.Grid, d, side int) {
	ghosts, src := ghostToSource(g, d, side, true)
	// Normal momentum component sits at state index d+1
	copyLines(q, g, d, ghosts, src, d+1)
}

// copyLines copies whole state vectors from source cells to ghost cells
// along dimension d, negating component negComp if it is >= 0
func copyLines(q *grid.Array, g *grid.Grid, d int, ghosts, src []int, negComp int) {
	var (
		perp = 1
	)
	if g.NDim() == 2 {
		perp = g.NTot(1 - d)
	}
	for m := 0; m < q.Meqn; m++ {
		sign := 1.0
		if m == negComp {
			sign = -1.0
		}
		for p := 0; p < perp; p++ {
			for k := range ghosts {
				var gi, gj, si, sj int
				if d == 0 {
					gi, gj, si, sj = ghosts[k], p, src[k], p
				} else {
					gi, gj, si, sj = p, ghosts[k], p, src[k]
				}
				q.Set(m, gi, gj, sign*q.At(m, si, sj))
			}
		}
	}
}
