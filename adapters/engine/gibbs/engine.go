// Package gibbs implements the sampler engine port with blocked Gibbs
// updates for the conjugate regression families the lesson models use.
// Every random draw is delegated to gonum's distuv/distmv distributions;
// this package only supplies the conditional parameters.
package gibbs

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"bayeslab/domain/draws"
	"bayeslab/domain/model"
	"bayeslab/internal/errors"
	"bayeslab/ports"
)

// Default run settings applied when SampleOptions leaves a field zero.
const (
	DefaultIterations = 5000
	DefaultWarmup     = 1000
)

// Engine compiles regression specs into Gibbs samplers.
type Engine struct{}

// New creates a Gibbs sampler engine
func New() *Engine {
	return &Engine{}
}

// Name identifies the engine
func (e *Engine) Name() string {
	return "gibbs"
}

// Compile validates the spec against the data and builds the design
// matrix, prior vectors, and per-monitor recorders.
func (e *Engine) Compile(ctx context.Context, spec *model.Spec, data map[string][]float64) (ports.CompiledModel, error) {
	if err := spec.Validate(data); err != nil {
		return nil, errors.ModelInvalid(err.Error())
	}

	y := data[spec.Response]
	n := len(y)
	p := len(spec.Predictors)

	x := mat.NewDense(n, p, nil)
	paramIndex := make(map[string]int, p)
	priorMean := make([]float64, p)
	priorPrec := make([]float64, p)
	for j, pred := range spec.Predictors {
		paramIndex[pred.Param] = j

		prior, _ := spec.Prior(pred.Param)
		if prior.Normal == nil {
			return nil, errors.ModelInvalid("coefficient " + pred.Param + " requires a normal prior")
		}
		priorMean[j] = prior.Normal.Mean
		priorPrec[j] = prior.Normal.Precision

		if pred.IsIntercept() {
			for i := 0; i < n; i++ {
				x.Set(i, j, 1)
			}
			continue
		}
		col := data[pred.Covariate]
		for i := 0; i < n; i++ {
			x.Set(i, j, col[i])
		}
	}

	// X'X is shared by every chain; each conditional rescales it by the
	// current residual precision.
	var xtx mat.SymDense
	xtx.SymOuterK(1, x.T())

	cm := &compiledModel{
		spec:       spec,
		x:          x,
		y:          append([]float64(nil), y...),
		n:          n,
		p:          p,
		xtx:        &xtx,
		paramIndex: paramIndex,
		priorMean:  priorMean,
		priorPrec:  priorPrec,
	}

	if spec.Family == model.FamilyGaussian {
		prior, _ := spec.Prior(spec.Scale)
		cm.sigmaLower = prior.UniformScale.Lower
		cm.sigmaUpper = prior.UniformScale.Upper
	}

	return cm, nil
}

// compiledModel is a spec bound to its design matrix.
type compiledModel struct {
	spec       *model.Spec
	x          *mat.Dense
	y          []float64
	n, p       int
	xtx        *mat.SymDense
	paramIndex map[string]int
	priorMean  []float64
	priorPrec  []float64
	sigmaLower float64
	sigmaUpper float64
}

// Sample runs the requested chains concurrently, each with its own seeded
// source, and discards warmup draws. Chains write to disjoint slices of the
// shared posterior, so no locking is needed.
func (m *compiledModel) Sample(ctx context.Context, opts ports.SampleOptions) (*draws.Posterior, error) {
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultIterations
	}
	if opts.Warmup <= 0 {
		opts.Warmup = DefaultWarmup
	}
	if opts.Chains <= 0 {
		opts.Chains = 1
	}

	start := time.Now()
	post := draws.New(m.spec.Name, m.spec.Monitors, opts.Chains, opts.Iterations)
	post.Seed = opts.Seed
	post.Warmup = opts.Warmup

	g, gctx := errgroup.WithContext(ctx)
	for c := 0; c < opts.Chains; c++ {
		g.Go(func() error {
			return m.runChain(gctx, c, opts, post)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.EngineError("sampling failed", err)
	}

	post.Elapsed = time.Since(start)
	return post, nil
}
