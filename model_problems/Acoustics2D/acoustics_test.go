package Acoustics2D

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goclaw/solver"
)

func TestKernelNormalDirection(t *testing.T) {
	var (
		k   = Kernel{Rho: 1, Bulk: 1}
		qL  = []float64{0, 0, 0}
		qR  = []float64{1, 0, 0}
		out = solver.NewRiemannData(3, 2)
	)
	// An x sweep must not produce transverse velocity waves
	require.NoError(t, k.Solve(0, qL, qR, nil, nil, out))
	assert.Zero(t, out.Waves[0][2])
	assert.Zero(t, out.Waves[1][2])
	assert.NotZero(t, out.Waves[0][1])

	// And symmetrically for y
	require.NoError(t, k.Solve(1, qL, qR, nil, nil, out))
	assert.Zero(t, out.Waves[0][1])
	assert.Zero(t, out.Waves[1][1])
	assert.NotZero(t, out.Waves[0][2])
}

func TestRadialPulse(t *testing.T) {
	c, err := New(1.0, 4.0, 0.8, 0.12, 50, 2, "mc")
	require.NoError(t, err)
	require.NoError(t, c.Run(context.Background()))

	assert.False(t, c.State.Q.HasNonFinite())
	assert.InDelta(t, 0.12, c.State.T, 1.e-6)

	// Initial data and method are mirror symmetric in x
	for j := 0; j < c.K; j++ {
		for i := 0; i < c.K; i++ {
			assert.InDelta(t, c.State.AtInterior(0, i, j),
				c.State.AtInterior(0, c.K-1-i, j), 1.e-9,
				"cells (%d,%d) and (%d,%d)", i, j, c.K-1-i, j)
		}
	}
}

func TestFirstOrderRadialPulse(t *testing.T) {
	c, err := New(1.0, 1.0, 0.5, 0.1, 40, 1, "none")
	require.NoError(t, err)
	require.NoError(t, c.Run(context.Background()))
	assert.False(t, c.State.Q.HasNonFinite())

	// First order smears: the pulse amplitude must strictly decay
	maxP := 0.0
	for j := 0; j < 40; j++ {
		for i := 0; i < 40; i++ {
			maxP = math.Max(maxP, c.State.AtInterior(0, i, j))
		}
	}
	assert.Less(t, maxP, 1.0)
	assert.Greater(t, maxP, 0.1)
}
