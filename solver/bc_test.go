package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goclaw/grid"
)

func state1D(t *testing.T, n, mbc, meqn int) *grid.State {
	t.Helper()
	g, err := grid.NewGrid(mbc, grid.NewDimension("x", 0, 1, n))
	require.NoError(t, err)
	s, err := grid.NewState(g, meqn, 0)
	require.NoError(t, err)
	return s
}

func TestExtrapFill(t *testing.T) {
	s := state1D(t, 5, 2, 1)
	for i := 0; i < 5; i++ {
		s.SetInterior(0, i, 0, float64(i+1))
	}
	require.NoError(t, FillGhosts(s, &Config{}))
	// Every ghost equals the nearest interior cell
	assert.Equal(t, 1.0, s.Q.At(0, 0, 0))
	assert.Equal(t, 1.0, s.Q.At(0, 1, 0))
	assert.Equal(t, 5.0, s.Q.At(0, 7, 0))
	assert.Equal(t, 5.0, s.Q.At(0, 8, 0))
	// Idempotent under repeated application
	require.NoError(t, FillGhosts(s, &Config{}))
	assert.Equal(t, 1.0, s.Q.At(0, 0, 0))
	assert.Equal(t, 5.0, s.Q.At(0, 8, 0))
}

func TestExtrapSkippedOffEdge(t *testing.T) {
	s := state1D(t, 5, 2, 1)
	s.Grid.Dims[0].OnLowerEdge = false
	s.Q.Set(0, 0, 0, -99)
	s.Q.Set(0, 1, 0, -99)
	for i := 0; i < 5; i++ {
		s.SetInterior(0, i, 0, float64(i+1))
	}
	require.NoError(t, FillGhosts(s, &Config{}))
	// Partition interior side is left for the exchange
	assert.Equal(t, -99.0, s.Q.At(0, 0, 0))
	assert.Equal(t, -99.0, s.Q.At(0, 1, 0))
	// Physical side still filled
	assert.Equal(t, 5.0, s.Q.At(0, 8, 0))
}

func TestWallFill1D(t *testing.T) {
	s := state1D(t, 4, 2, 2)
	s.Grid.Dims[0].BCLower = grid.BCWall
	s.Grid.Dims[0].BCUpper = grid.BCWall
	for i := 0; i < 4; i++ {
		s.SetInterior(0, i, 0, float64(i+1)) // Pressure-like
		s.SetInterior(1, i, 0, float64(10*(i+1)))
	}
	require.NoError(t, FillGhosts(s, &Config{}))
	// Lower: ghost 1 mirrors interior cell 2, ghost 0 mirrors cell 3
	assert.Equal(t, 1.0, s.Q.At(0, 1, 0))
	assert.Equal(t, 2.0, s.Q.At(0, 0, 0))
	// Normal velocity negated
	assert.Equal(t, -10.0, s.Q.At(1, 1, 0))
	assert.Equal(t, -20.0, s.Q.At(1, 0, 0))
	// Upper: ghost 6 mirrors cell 5, ghost 7 mirrors cell 4
	assert.Equal(t, 4.0, s.Q.At(0, 6, 0))
	assert.Equal(t, 3.0, s.Q.At(0, 7, 0))
	assert.Equal(t, -40.0, s.Q.At(1, 6, 0))
	assert.Equal(t, -30.0, s.Q.At(1, 7, 0))
}

func TestWallFill2DNormalComponent(t *testing.T) {
	g, err := grid.NewGrid(2,
		grid.NewDimension("x", 0, 1, 4),
		grid.NewDimension("y", 0, 1, 4))
	require.NoError(t, err)
	s, err := grid.NewState(g, 3, 0)
	require.NoError(t, err)
	s.Grid.Dims[1].BCLower = grid.BCWall
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			s.SetInterior(0, i, j, 1)
			s.SetInterior(1, i, j, 2) // x velocity: copied unchanged
			s.SetInterior(2, i, j, 3) // y velocity: negated at the y wall
		}
	}
	require.NoError(t, FillGhosts(s, &Config{}))
	assert.Equal(t, 1.0, s.Q.At(0, 2, 1))
	assert.Equal(t, 2.0, s.Q.At(1, 2, 1))
	assert.Equal(t, -3.0, s.Q.At(2, 2, 1))
}

func TestPeriodicIsNoOp(t *testing.T) {
	s := state1D(t, 4, 2, 1)
	s.Grid.Dims[0].BCLower = grid.BCPeriodic
	s.Grid.Dims[0].BCUpper = grid.BCPeriodic
	s.Q.Set(0, 0, 0, -7)
	require.NoError(t, FillGhosts(s, &Config{}))
	// Ghosts untouched by the BC engine; the exchange owns them
	assert.Equal(t, -7.0, s.Q.At(0, 0, 0))
}

func TestUserBC(t *testing.T) {
	s := state1D(t, 4, 2, 1)
	s.Grid.Dims[0].BCLower = grid.BCUserDefined
	called := 0
	cfg := &Config{UserBC: func(g *grid.Grid, dim, side int, q *grid.Array) {
		called++
		assert.Equal(t, 0, dim)
	}}
	require.NoError(t, FillGhosts(s, cfg))
	assert.Equal(t, 1, called)

	// Missing callback is a configuration error
	err := FillGhosts(s, &Config{})
	var ce *ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestUnknownBCKind(t *testing.T) {
	s := state1D(t, 4, 2, 1)
	s.Grid.Dims[0].BCUpper = grid.BCKind(99)
	err := FillGhosts(s, &Config{})
	var ce *ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Reason, "unrecognized")
}
