package parallel

import (
	"context"

	"github.com/notargets/goclaw/grid"
)

// Serial is the single partition exchanger: periodic wrap is a local copy
// from the opposite interior edge, and the CFL reduction is the identity.
type Serial struct{}

func NewSerial() *Serial { return &Serial{} }

func (Serial) ExchangeGhosts(_ context.Context, s *grid.State) error {
	for d := range s.Grid.Dims {
		if isPeriodic(s.Grid.Dims[d]) {
			wrapPeriodic(s.Q, s.Grid, d)
		}
	}
	return nil
}

func (Serial) GlobalMax(_ context.Context, v float64) (float64, error) {
	return v, nil
}

func isPeriodic(d grid.Dimension) bool {
	return d.BCLower == grid.BCPeriodic || d.BCUpper == grid.BCPeriodic
}

// wrapPeriodic fills both ghost layers of dimension d from the opposite
// interior edge, the single partition equivalent of the neighbor exchange
func wrapPeriodic(q *grid.Array, g *grid.Grid, d int) {
	var (
		mbc  = g.Mbc
		nTot = g.NTot(d)
		perp = 1
	)
	if g.NDim() == 2 {
		perp = g.NTot(1 - d)
	}
	for m := 0; m < q.Meqn; m++ {
		for p := 0; p < perp; p++ {
			for k := 0; k < mbc; k++ {
				gi, gj := lineIdx(d, k, p)
				si, sj := lineIdx(d, nTot-2*mbc+k, p)
				q.Set(m, gi, gj, q.At(m, si, sj))

				gi, gj = lineIdx(d, nTot-mbc+k, p)
				si, sj = lineIdx(d, mbc+k, p)
				q.Set(m, gi, gj, q.At(m, si, sj))
			}
		}
	}
}

func lineIdx(d, c, p int) (i, j int) {
	if d == 0 {
		return c, p
	}
	return p, c
}
