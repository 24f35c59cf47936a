package convOrder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRecoversSlope(t *testing.T) {
	cs := NewStudy("synthetic h^2")
	for _, n := range []int{16, 32, 64, 128} {
		h := 1.0 / float64(n)
		cs.Add(h, 3.7*h*h)
	}
	p, err := cs.Order()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, p, 1.e-10)
}

func TestOrderNoisyFit(t *testing.T) {
	cs := NewStudy("noisy h^5")
	for i, n := range []int{20, 40, 80} {
		h := 1.0 / float64(n)
		// Perturb alternately so a least squares fit is actually exercised
		f := 1.0 + 0.05*math.Pow(-1, float64(i))
		cs.Add(h, f*math.Pow(h, 5))
	}
	p, err := cs.Order()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, p, 0.2)
}

func TestOrderErrors(t *testing.T) {
	cs := NewStudy("degenerate")
	cs.Add(0.1, 1.e-3)
	_, err := cs.Order()
	assert.Error(t, err)

	cs.Add(0.05, 0)
	_, err = cs.Order()
	assert.Error(t, err)
}
