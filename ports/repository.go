package ports

import (
	"context"

	"bayeslab/domain/core"
)

// RunManifest records one sampling run for persistence.
type RunManifest struct {
	RunID      core.RunID
	Lesson     string
	Model      string
	Iterations int
	Warmup     int
	Chains     int
	Seed       int64
	ElapsedMS  int64
	CreatedAt  core.Timestamp
}

// ParameterSummary is the persisted summary row for one monitored name.
type ParameterSummary struct {
	Name   string
	Mean   float64
	SD     float64
	MCErr  float64
	Median float64
	Q2_5   float64
	Q97_5  float64
}

// RunRepository persists run manifests and their parameter summaries.
type RunRepository interface {
	SaveRun(ctx context.Context, manifest RunManifest, summaries []ParameterSummary) error
}

// NopRunRepository discards everything; used when no DATABASE_URL is set.
type NopRunRepository struct{}

func (NopRunRepository) SaveRun(ctx context.Context, manifest RunManifest, summaries []ParameterSummary) error {
	return nil
}
