package parallel

import (
	"context"
	"fmt"

	"github.com/notargets/goclaw/grid"
	"github.com/notargets/goclaw/solver"
)

// Topology wires NP partition workers decomposed along the x dimension:
// buffered neighbor channels carry edge strips for the halo exchange, and a
// coordinator goroutine performs the all-reduce max. All collectives are
// blocking; a cancelled context surfaces as CollectiveFailureError on every
// waiting rank.
type Topology struct {
	NP        int
	PeriodicX bool

	fromLeft  []chan []float64 // fromLeft[r] receives rank r-1's right edge
	fromRight []chan []float64 // fromRight[r] receives rank r+1's left edge

	redIn   chan float64
	redOuts []chan float64
	done    chan struct{}
}

func NewTopology(np int, periodicX bool) (t *Topology) {
	t = &Topology{
		NP:        np,
		PeriodicX: periodicX,
		fromLeft:  make([]chan []float64, np),
		fromRight: make([]chan []float64, np),
		redIn:     make(chan float64, np),
		redOuts:   make([]chan float64, np),
		done:      make(chan struct{}),
	}
	for r := 0; r < np; r++ {
		t.fromLeft[r] = make(chan []float64, 1)
		t.fromRight[r] = make(chan []float64, 1)
		t.redOuts[r] = make(chan float64, 1)
	}
	go t.reduceLoop()
	return
}

// Close stops the reduction coordinator. Pending collectives fail.
func (t *Topology) Close() {
	close(t.done)
}

func (t *Topology) reduceLoop() {
	for {
		var (
			max  float64
			seen int
		)
		for seen < t.NP {
			select {
			case v := <-t.redIn:
				if seen == 0 || v > max {
					max = v
				}
				seen++
			case <-t.done:
				return
			}
		}
		for r := 0; r < t.NP; r++ {
			select {
			case t.redOuts[r] <- max:
			case <-t.done:
				return
			}
		}
	}
}

// Rank binds one partition's view of the topology
func (t *Topology) Rank(rank int) *Rank {
	return &Rank{t: t, rank: rank}
}

type Rank struct {
	t    *Topology
	rank int
}

var _ solver.Exchanger = (*Rank)(nil)

func collectiveErr(op string, err error) error {
	return &solver.CollectiveFailureError{Op: op, Err: err}
}

func (r *Rank) GlobalMax(ctx context.Context, v float64) (float64, error) {
	var (
		t = r.t
	)
	select {
	case t.redIn <- v:
	case <-ctx.Done():
		return 0, collectiveErr("cfl reduction", ctx.Err())
	case <-t.done:
		return 0, collectiveErr("cfl reduction", fmt.Errorf("topology closed"))
	}
	select {
	case max := <-t.redOuts[r.rank]:
		return max, nil
	case <-ctx.Done():
		return 0, collectiveErr("cfl reduction", ctx.Err())
	case <-t.done:
		return 0, collectiveErr("cfl reduction", fmt.Errorf("topology closed"))
	}
}

// ExchangeGhosts sends this partition's interior edge strips to its x
// neighbors and fills its x ghost layers from theirs. Periodic wrap in y
// (not decomposed) is a local copy.
func (r *Rank) ExchangeGhosts(ctx context.Context, s *grid.State) error {
	var (
		t         = r.t
		g         = s.Grid
		mbc       = g.Mbc
		nTot      = g.NTot(0)
		left      = r.rank - 1
		right     = r.rank + 1
		hasLeft   = left >= 0
		hasRight  = right < t.NP
	)
	if t.PeriodicX {
		left = (r.rank - 1 + t.NP) % t.NP
		right = (r.rank + 1) % t.NP
		hasLeft, hasRight = true, true
	}
	if t.NP == 1 {
		// Self exchange degenerates to the serial wrap
		if t.PeriodicX {
			wrapPeriodic(s.Q, g, 0)
		}
	} else {
		// Post both edges first, then block on the receives
		if hasRight {
			strip := packStrip(s.Q, nTot-2*mbc, mbc)
			if err := sendStrip(ctx, t, t.fromLeft[right], strip); err != nil {
				return err
			}
		}
		if hasLeft {
			strip := packStrip(s.Q, mbc, mbc)
			if err := sendStrip(ctx, t, t.fromRight[left], strip); err != nil {
				return err
			}
		}
		if hasLeft {
			strip, err := recvStrip(ctx, t, t.fromLeft[r.rank])
			if err != nil {
				return err
			}
			unpackStrip(s.Q, 0, mbc, strip)
		}
		if hasRight {
			strip, err := recvStrip(ctx, t, t.fromRight[r.rank])
			if err != nil {
				return err
			}
			unpackStrip(s.Q, nTot-mbc, mbc, strip)
		}
	}
	if g.NDim() == 2 && isPeriodic(g.Dims[1]) {
		wrapPeriodic(s.Q, g, 1)
	}
	return nil
}

func sendStrip(ctx context.Context, t *Topology, ch chan []float64, strip []float64) error {
	select {
	case ch <- strip:
		return nil
	case <-ctx.Done():
		return collectiveErr("ghost exchange", ctx.Err())
	case <-t.done:
		return collectiveErr("ghost exchange", fmt.Errorf("topology closed"))
	}
}

func recvStrip(ctx context.Context, t *Topology, ch chan []float64) ([]float64, error) {
	select {
	case strip := <-ch:
		return strip, nil
	case <-ctx.Done():
		return nil, collectiveErr("ghost exchange", ctx.Err())
	case <-t.done:
		return nil, collectiveErr("ghost exchange", fmt.Errorf("topology closed"))
	}
}

// packStrip copies width x columns starting at iStart, all components and
// all perpendicular cells
func packStrip(q *grid.Array, iStart, width int) (strip []float64) {
	strip = make([]float64, 0, q.Meqn*width*q.N2)
	for m := 0; m < q.Meqn; m++ {
		for j := 0; j < q.N2; j++ {
			for k := 0; k < width; k++ {
				strip = append(strip, q.At(m, iStart+k, j))
			}
		}
	}
	return
}

func unpackStrip(q *grid.Array, iStart, width int, strip []float64) {
	var n int
	for m := 0; m < q.Meqn; m++ {
		for j := 0; j < q.N2; j++ {
			for k := 0; k < width; k++ {
				q.Set(m, iStart+k, j, strip[n])
				n++
			}
		}
	}
}
