package Acoustics1D

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goclaw/solver"
)

// The fluctuations of a linear system must sum to the flux difference
// A*(qR - qL), here with A = [[0, bulk], [1/rho, 0]]
func TestKernelFluctuationConsistency(t *testing.T) {
	var (
		k   = Kernel{Rho: 2.0, Bulk: 0.5}
		qL  = []float64{1.3, -0.2}
		qR  = []float64{0.4, 0.7}
		out = solver.NewRiemannData(2, 2)
	)
	require.NoError(t, k.Solve(0, qL, qR, nil, nil, out))

	dp := qR[0] - qL[0]
	du := qR[1] - qL[1]
	assert.InDelta(t, k.Bulk*du, out.Amdq[0]+out.Apdq[0], 1.e-14)
	assert.InDelta(t, dp/k.Rho, out.Amdq[1]+out.Apdq[1], 1.e-14)

	// Waves reassemble the jump
	assert.InDelta(t, dp, out.Waves[0][0]+out.Waves[1][0], 1.e-14)
	assert.InDelta(t, du, out.Waves[0][1]+out.Waves[1][1], 1.e-14)
}

func TestKernelAuxOverride(t *testing.T) {
	var (
		k   = Kernel{Rho: 1, Bulk: 1}
		out = solver.NewRiemannData(2, 2)
		aux = []float64{3.0, 0.25} // Impedance, sound speed
	)
	require.NoError(t, k.Solve(0, []float64{0, 0}, []float64{1, 0}, aux, aux, out))
	assert.InDelta(t, -0.25, out.Speeds[0], 1.e-14)
	assert.InDelta(t, 0.25, out.Speeds[1], 1.e-14)
}

func TestGaussianPulse(t *testing.T) {
	c, err := New(1.0, 4.0, 0.8, 0.5, 200, solver.Classic, 2, "mc")
	require.NoError(t, err)
	require.NoError(t, c.Run(context.Background()))

	assert.False(t, c.State.Q.HasNonFinite())
	assert.InDelta(t, 0.5, c.State.T, 1.e-6)
	assert.Greater(t, c.Solver.Steps(), 0)

	// Linear problem: the pressure cannot overshoot the initial pulse by
	// more than the wall reflection can reconstruct
	maxP := 0.0
	for i := 0; i < c.K; i++ {
		maxP = math.Max(maxP, math.Abs(c.State.AtInterior(0, i, 0)))
	}
	assert.LessOrEqual(t, maxP, 1.1)
}

func TestSharpClawPulse(t *testing.T) {
	c, err := New(1.0, 1.0, 0.5, 0.3, 150, solver.SharpClaw, 5, "none")
	require.NoError(t, err)
	require.NoError(t, c.Run(context.Background()))
	assert.False(t, c.State.Q.HasNonFinite())
	assert.InDelta(t, 0.3, c.State.T, 1.e-6)
}
