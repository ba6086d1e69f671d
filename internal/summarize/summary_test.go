package summarize

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterKnownVector(t *testing.T) {
	s, err := Parameter("a", []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	assert.Equal(t, "a", s.Name)
	assert.Equal(t, 5, s.N)
	assert.InDelta(t, 3.0, s.Mean, 1e-12)
	assert.InDelta(t, 3.0, s.Median, 1e-12)
	// Sample SD of 1..5 is sqrt(2.5)
	assert.InDelta(t, 1.5811388300841898, s.SD, 1e-9)
	assert.InDelta(t, s.SD/2.2360679774997896, s.MCErr, 1e-9)
	assert.Less(t, s.Q25, s.Median)
	assert.Greater(t, s.Q75, s.Median)
}

func TestParameterRejectsTooFewDraws(t *testing.T) {
	_, err := Parameter("a", []float64{1})
	require.Error(t, err)
}

func TestIntervalWidth(t *testing.T) {
	s := Summary{Mean: 0.5, SD: 0.1}
	lo, hi := s.Interval()
	assert.InDelta(t, 0.5-IntervalMultiple*0.1, lo, 1e-12)
	assert.InDelta(t, 0.5+IntervalMultiple*0.1, hi, 1e-12)
	assert.InDelta(t, 2*IntervalMultiple*s.SD, hi-lo, 1e-12)
}

func TestQuantileOrderingOnNoisyDraws(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	draws := make([]float64, 4000)
	for i := range draws {
		draws[i] = 0.3 + 0.2*rng.NormFloat64()
	}

	s, err := Parameter("b1", draws)
	require.NoError(t, err)

	assert.True(t, s.Q2_5 < s.Q25 && s.Q25 < s.Median && s.Median < s.Q75 && s.Q75 < s.Q97_5)
	assert.InDelta(t, 0.3, s.Mean, 0.02)
	assert.InDelta(t, 0.2, s.SD, 0.02)
}
