package ports

import (
	"context"

	"bayeslab/domain/draws"
	"bayeslab/domain/model"
)

// SampleOptions controls one sampling run. Chains is the single canonical
// chain-count option; every engine honors it.
type SampleOptions struct {
	Iterations int   // post-warmup draws per chain
	Warmup     int   // discarded warmup draws per chain
	Chains     int   // independent chains
	Seed       int64 // base seed; chain c derives its own stream from it
}

// CompiledModel is a model bound to data, ready to sample.
type CompiledModel interface {
	// Sample draws from the posterior of every monitored name.
	Sample(ctx context.Context, opts SampleOptions) (*draws.Posterior, error)
}

// Engine is the Bayesian sampling engine boundary: compile a declarative
// model spec against a data mapping, then draw. Implementations own all
// numerical work; callers do no validation beyond what Compile reports.
type Engine interface {
	Name() string
	Compile(ctx context.Context, spec *model.Spec, data map[string][]float64) (CompiledModel, error)
}
