package plot

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bayeslab/domain/draws"
	"bayeslab/internal/summarize"
)

func fakePosterior(t *testing.T) *draws.Posterior {
	t.Helper()
	post := draws.New("linear", []string{"a"}, 2, 50)
	rng := rand.New(rand.NewSource(3))
	for c := 0; c < 2; c++ {
		for i := 0; i < 50; i++ {
			post.Append("a", c, 0.1+0.05*rng.NormFloat64())
		}
	}
	return post
}

func TestDensityCurveIntegratesToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	xs := make([]float64, 2000)
	for i := range xs {
		xs[i] = 2 + 0.5*rng.NormFloat64()
	}

	curve := densityCurve(xs, 400)
	require.NotEmpty(t, curve)

	// Trapezoid rule over the grid; the KDE has nearly all mass inside it.
	area := 0.0
	for i := 1; i < len(curve); i++ {
		dx := curve[i].X - curve[i-1].X
		area += dx * (curve[i].Y + curve[i-1].Y) / 2
	}
	assert.InDelta(t, 1.0, area, 0.02)

	for _, pt := range curve {
		assert.GreaterOrEqual(t, pt.Y, 0.0)
	}
}

func TestDensityCurveEmptyInput(t *testing.T) {
	assert.Nil(t, densityCurve(nil, 100))
	assert.Nil(t, densityCurve([]float64{1, 2, 3}, 1))
}

func TestTraceAndDensityWriteFiles(t *testing.T) {
	post := fakePosterior(t)
	dir := t.TempDir()

	tracePath := filepath.Join(dir, "trace.png")
	require.NoError(t, Trace(post, "a", tracePath))
	info, err := os.Stat(tracePath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	densPath := filepath.Join(dir, "density.png")
	require.NoError(t, Density(post, "a", densPath))
	_, err = os.Stat(densPath)
	require.NoError(t, err)
}

func TestIntervalsWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intervals.png")

	summaries := []summarize.Summary{
		{Name: "p1", Mean: 0.35, SD: 0.05},
		{Name: "p2", Mean: 0.62, SD: 0.04},
	}
	require.NoError(t, Intervals("predicted probabilities", summaries, path))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestPredictiveOverlayWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.png")

	rng := rand.New(rand.NewSource(9))
	observed := make([]float64, 100)
	for i := range observed {
		observed[i] = rng.NormFloat64()
	}
	replicates := make([][]float64, 5)
	for r := range replicates {
		rep := make([]float64, 100)
		for i := range rep {
			rep[i] = rng.NormFloat64()
		}
		replicates[r] = rep
	}

	require.NoError(t, PredictiveOverlay("posterior predictive", observed, replicates, path))
	_, err := os.Stat(path)
	require.NoError(t, err)
}
