package gibbs

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"

	"bayeslab/domain/draws"
	"bayeslab/domain/model"
	"bayeslab/ports"
)

// maxScaleRejects bounds the rejection loop for the truncated precision
// conditional. The bound only binds when the data pushes sigma against the
// prior's upper limit.
const maxScaleRejects = 1000

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// chainState is the current position of one Gibbs chain.
type chainState struct {
	beta   []float64
	sigma2 float64
}

// runChain executes warmup + recorded iterations for chain c.
func (m *compiledModel) runChain(ctx context.Context, c int, opts ports.SampleOptions, post *draws.Posterior) error {
	// Independent deterministic stream per chain.
	src := rand.NewPCG(uint64(opts.Seed), uint64(c)+1)
	rng := rand.New(src)

	state := &chainState{
		beta:   make([]float64, m.p),
		sigma2: 1,
	}
	if m.spec.Family == model.FamilyGaussian {
		state.sigma2 = sampleVariance(m.y)
	}
	latent := make([]float64, m.n)

	total := opts.Warmup + opts.Iterations
	for iter := 0; iter < total; iter++ {
		if iter%512 == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		switch m.spec.Family {
		case model.FamilyGaussian:
			if err := m.updateCoefficients(src, state, m.y, 1/state.sigma2); err != nil {
				return err
			}
			m.updateScale(src, state, m.y)
		case model.FamilyBinomialProbit:
			m.updateLatent(rng, state, latent)
			if err := m.updateCoefficients(src, state, latent, 1); err != nil {
				return err
			}
		}

		if iter >= opts.Warmup {
			m.record(post, c, state)
		}
	}
	return nil
}

// updateCoefficients draws the full coefficient block from its multivariate
// normal conditional: precision A = tau*X'X + diag(priorPrec), mean
// A^{-1}(tau*X'resp + priorPrec*priorMean).
func (m *compiledModel) updateCoefficients(src rand.Source, state *chainState, resp []float64, tau float64) error {
	prec := mat.NewSymDense(m.p, nil)
	for i := 0; i < m.p; i++ {
		for j := i; j < m.p; j++ {
			v := tau * m.xtx.At(i, j)
			if i == j {
				v += m.priorPrec[i]
			}
			prec.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(prec); !ok {
		return fmt.Errorf("coefficient conditional precision is not positive definite")
	}

	// b = tau * X'resp + priorPrec .* priorMean
	b := mat.NewVecDense(m.p, nil)
	respVec := mat.NewVecDense(m.n, resp)
	b.MulVec(m.x.T(), respVec)
	for j := 0; j < m.p; j++ {
		b.SetVec(j, tau*b.AtVec(j)+m.priorPrec[j]*m.priorMean[j])
	}

	var mean mat.VecDense
	if err := chol.SolveVecTo(&mean, b); err != nil {
		return fmt.Errorf("solving coefficient conditional mean: %w", err)
	}

	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return fmt.Errorf("inverting coefficient conditional precision: %w", err)
	}

	meanVals := make([]float64, m.p)
	for j := range meanVals {
		meanVals[j] = mean.AtVec(j)
	}
	mvn, ok := distmv.NewNormal(meanVals, &cov, src)
	if !ok {
		return fmt.Errorf("coefficient conditional covariance is not positive definite")
	}
	mvn.Rand(state.beta)
	return nil
}

// updateScale draws the residual precision from its Gamma conditional and
// rejects draws whose implied sigma falls outside the bounded uniform
// prior, which is the exact conditional under that prior.
func (m *compiledModel) updateScale(src rand.Source, state *chainState, resp []float64) {
	rss := 0.0
	for i := 0; i < m.n; i++ {
		mu := 0.0
		for j := 0; j < m.p; j++ {
			mu += m.x.At(i, j) * state.beta[j]
		}
		r := resp[i] - mu
		rss += r * r
	}

	gamma := distuv.Gamma{
		Alpha: (float64(m.n) - 1) / 2,
		Beta:  rss / 2,
		Src:   src,
	}
	for reject := 0; reject < maxScaleRejects; reject++ {
		tau := gamma.Rand()
		sigma := 1 / math.Sqrt(tau)
		if sigma > m.sigmaLower && sigma <= m.sigmaUpper {
			state.sigma2 = 1 / tau
			return
		}
	}
	// The conditional mass sits essentially outside the prior bounds; pin
	// sigma to the boundary rather than spinning.
	state.sigma2 = m.sigmaUpper * m.sigmaUpper
}

// updateLatent refreshes the Albert-Chib latent outcomes: truncated normal
// draws above zero where y=1 and below zero where y=0, via inverse CDF.
func (m *compiledModel) updateLatent(rng *rand.Rand, state *chainState, latent []float64) {
	const eps = 1e-12
	for i := 0; i < m.n; i++ {
		mu := 0.0
		for j := 0; j < m.p; j++ {
			mu += m.x.At(i, j) * state.beta[j]
		}
		fa := stdNormal.CDF(-mu) // P(latent <= 0 | mu)
		u := rng.Float64()
		var q float64
		if m.y[i] == 1 {
			q = fa + u*(1-fa)
		} else {
			q = u * fa
		}
		q = math.Min(math.Max(q, eps), 1-eps)
		latent[i] = mu + stdNormal.Quantile(q)
	}
}

// record appends every monitored quantity for the current state.
func (m *compiledModel) record(post *draws.Posterior, c int, state *chainState) {
	value := func(param string) float64 {
		return state.beta[m.paramIndex[param]]
	}
	for _, name := range m.spec.Monitors {
		if j, ok := m.paramIndex[name]; ok {
			post.Append(name, c, state.beta[j])
			continue
		}
		if name == m.spec.Scale && m.spec.Scale != "" {
			post.Append(name, c, math.Sqrt(state.sigma2))
			continue
		}
		for _, d := range m.spec.Derived {
			if d.Name != name {
				continue
			}
			v := d.Expr.Eval(value)
			if d.Link == model.LinkPhi {
				v = stdNormal.CDF(v)
			}
			post.Append(name, c, v)
			break
		}
	}
}

func sampleVariance(xs []float64) float64 {
	n := float64(len(xs))
	if n < 2 {
		return 1
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / n
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return ss / (n - 1)
}
