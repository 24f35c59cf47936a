package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inputText = `
Title: "Acoustics Pulse"
Problem: acoustics1d
Scheme: classic
Order: 2
CFL: 0.8
FinalTime: 0.5
NCells: 200
Limiter: mc
Partitions: 4
Coeffs:
  rho: 1.0
  bulk: 4.0
`

func TestParse(t *testing.T) {
	var ip InputParameters
	require.NoError(t, ip.Parse([]byte(inputText)))
	assert.Equal(t, "Acoustics Pulse", ip.Title)
	assert.Equal(t, "acoustics1d", ip.Problem)
	assert.Equal(t, "classic", ip.Scheme)
	assert.Equal(t, 2, ip.Order)
	assert.Equal(t, 0.8, ip.CFL)
	assert.Equal(t, 200, ip.NCells)
	assert.Equal(t, 4, ip.Partitions)
	assert.Equal(t, 4.0, ip.Coeffs["bulk"])
}

func TestParseRejectsBadInput(t *testing.T) {
	var ip InputParameters
	assert.Error(t, ip.Parse([]byte("NCells: 0\nCFL: 0.5\n")))

	ip = InputParameters{}
	assert.Error(t, ip.Parse([]byte("NCells: 10\nCFL: -1\n")))

	ip = InputParameters{}
	err := ip.Parse([]byte("NCells: 10\nCFL: 0.5\nScheme: spectral\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scheme")
}
