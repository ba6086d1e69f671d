package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bayeslab/adapters/engine/gibbs"
	"bayeslab/internal"
	"bayeslab/ports"
)

func TestRunAllProducesThreeLessons(t *testing.T) {
	outDir := t.TempDir()
	svc := NewLessonService(
		gibbs.New(),
		ports.NopRunRepository{},
		ports.SampleOptions{Iterations: 300, Warmup: 100, Chains: 2, Seed: 42},
		outDir,
		internal.NewLogger(internal.LogLevelError),
	)

	results, err := svc.RunAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	lessons := []string{"linear", "double-intercept", "probit"}
	for i, res := range results {
		assert.Equal(t, lessons[i], res.Section.Lesson)
		assert.NotEmpty(t, res.Section.Narrative)
		assert.Contains(t, res.Section.ModelText, "model {")
		assert.NotEmpty(t, res.Summaries)

		for _, p := range res.Section.Plots {
			info, err := os.Stat(filepath.Join(outDir, p.File))
			require.NoError(t, err, "plot %s should exist", p.File)
			assert.Greater(t, info.Size(), int64(0))
		}
	}

	// The probit lesson carries the derived probability summaries.
	var sawP1 bool
	for _, sum := range results[2].Summaries {
		if sum.Name == "p1" {
			sawP1 = true
			assert.GreaterOrEqual(t, sum.Mean, 0.0)
			assert.LessOrEqual(t, sum.Mean, 1.0)
		}
	}
	assert.True(t, sawP1, "probit lesson should summarize p1")
}

func TestPredictiveReplicatesShape(t *testing.T) {
	outDir := t.TempDir()
	svc := NewLessonService(
		gibbs.New(),
		ports.NopRunRepository{},
		ports.SampleOptions{Iterations: 200, Warmup: 50, Chains: 1, Seed: 7},
		outDir,
		internal.NewLogger(internal.LogLevelError),
	)

	res, err := svc.runLinearLesson(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "linear", res.Section.Lesson)
}
