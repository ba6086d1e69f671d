package app

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"bayeslab/adapters/plot"
	"bayeslab/domain/draws"
	"bayeslab/domain/model"
	"bayeslab/internal"
	"bayeslab/internal/errors"
	"bayeslab/internal/report"
	"bayeslab/internal/simulate"
	"bayeslab/internal/summarize"
	"bayeslab/ports"
)

// replicateCount is how many posterior-predictive datasets the overlay
// plot samples.
const replicateCount = 30

// LessonService runs the three lessons end to end: simulate, specify,
// sample through the engine port, summarize, plot, and collect report
// sections.
type LessonService struct {
	engine ports.Engine
	repo   ports.RunRepository
	opts   ports.SampleOptions
	outDir string
	logger *internal.Logger
}

// NewLessonService wires a lesson runner
func NewLessonService(engine ports.Engine, repo ports.RunRepository, opts ports.SampleOptions, outDir string, logger *internal.Logger) *LessonService {
	return &LessonService{
		engine: engine,
		repo:   repo,
		opts:   opts,
		outDir: outDir,
		logger: logger,
	}
}

// Result is everything a finished lesson contributes to the outputs.
type Result struct {
	Section   report.Section
	Summaries []summarize.Summary
}

// RunAll executes every lesson in teaching order.
func (s *LessonService) RunAll(ctx context.Context) ([]Result, error) {
	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	runners := []func(context.Context) (Result, error){
		s.runLinearLesson,
		s.runDoubleInterceptLesson,
		s.runProbitLesson,
	}
	results := make([]Result, 0, len(runners))
	for _, run := range runners {
		res, err := run(ctx)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// sampleAndSummarize is the shared lesson core: compile, sample, summarize
// every monitor, and persist the run.
func (s *LessonService) sampleAndSummarize(ctx context.Context, lesson string, spec *model.Spec, data map[string][]float64) (*draws.Posterior, []summarize.Summary, error) {
	compiled, err := s.engine.Compile(ctx, spec, data)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "compiling %s model", lesson)
	}

	s.logger.Info("lesson %s: sampling %d chains x %d iterations (+%d warmup) on engine %s",
		lesson, s.opts.Chains, s.opts.Iterations, s.opts.Warmup, s.engine.Name())

	post, err := compiled.Sample(ctx, s.opts)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "sampling %s model", lesson)
	}
	s.logger.Info("lesson %s: run %s finished in %s", lesson, post.RunID, post.Elapsed)

	summaries := make([]summarize.Summary, 0, len(post.Names))
	for _, name := range post.Names {
		sum, err := summarize.Parameter(name, post.Pooled(name))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "summarizing %s", name)
		}
		summaries = append(summaries, sum)
	}

	if err := s.persist(ctx, lesson, post, summaries); err != nil {
		// Persistence is an optional convenience; the lesson output stands
		// without it.
		s.logger.Warn("lesson %s: run persistence failed: %v", lesson, err)
	}

	return post, summaries, nil
}

func (s *LessonService) persist(ctx context.Context, lesson string, post *draws.Posterior, summaries []summarize.Summary) error {
	manifest := ports.RunManifest{
		RunID:      post.RunID,
		Lesson:     lesson,
		Model:      post.Model,
		Iterations: post.Iterations,
		Warmup:     post.Warmup,
		Chains:     post.NumChains,
		Seed:       post.Seed,
		ElapsedMS:  post.Elapsed.Milliseconds(),
		CreatedAt:  post.StartedAt,
	}
	rows := make([]ports.ParameterSummary, len(summaries))
	for i, sum := range summaries {
		rows[i] = ports.ParameterSummary{
			Name:   sum.Name,
			Mean:   sum.Mean,
			SD:     sum.SD,
			MCErr:  sum.MCErr,
			Median: sum.Median,
			Q2_5:   sum.Q2_5,
			Q97_5:  sum.Q97_5,
		}
	}
	return s.repo.SaveRun(ctx, manifest, rows)
}

// diagnosticPlots writes trace and density plots for the given names and
// returns their report references.
func (s *LessonService) diagnosticPlots(post *draws.Posterior, lesson string, names []string) ([]report.Plot, error) {
	var plots []report.Plot
	for _, name := range names {
		traceFile := fmt.Sprintf("%s_trace_%s.png", lesson, name)
		if err := plot.Trace(post, name, filepath.Join(s.outDir, traceFile)); err != nil {
			return nil, err
		}
		plots = append(plots, report.Plot{Caption: "Trace of " + name, File: traceFile})

		densityFile := fmt.Sprintf("%s_density_%s.png", lesson, name)
		if err := plot.Density(post, name, filepath.Join(s.outDir, densityFile)); err != nil {
			return nil, err
		}
		plots = append(plots, report.Plot{Caption: "Posterior density of " + name, File: densityFile})
	}
	return plots, nil
}

// predictiveReplicates simulates outcome vectors from randomly chosen
// posterior draws of the linear model, for the overlay plot.
func predictiveReplicates(post *draws.Posterior, d *simulate.LinearDataset, count int) [][]float64 {
	a := post.Pooled("a")
	b1 := post.Pooled("b1")
	b2 := post.Pooled("b2")
	sigma := post.Pooled("sigma")

	rng := rand.New(rand.NewSource(post.Seed + 1))
	reps := make([][]float64, count)
	for r := 0; r < count; r++ {
		k := rng.Intn(len(a))
		rep := make([]float64, len(d.Y))
		for i := range rep {
			mu := a[k] + b1[k]*d.X1[i] + b2[k]*d.X2[i]
			rep[i] = mu + sigma[k]*rng.NormFloat64()
		}
		reps[r] = rep
	}
	return reps
}
