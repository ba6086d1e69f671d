package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"bayeslab/internal/errors"
	"bayeslab/ports"
)

// RunRepositoryImpl implements RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a PostgreSQL run repository and ensures its schema
func NewRunRepository(db *sqlx.DB) (ports.RunRepository, error) {
	repo := &RunRepositoryImpl{db: db}
	if err := repo.ensureSchema(); err != nil {
		return nil, errors.Wrap(err, "ensuring run schema")
	}
	return repo, nil
}

func (r *RunRepositoryImpl) ensureSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sampling_runs (
			id TEXT PRIMARY KEY,
			lesson TEXT NOT NULL,
			model TEXT NOT NULL,
			iterations INTEGER NOT NULL,
			warmup INTEGER NOT NULL,
			chains INTEGER NOT NULL,
			seed BIGINT NOT NULL,
			elapsed_ms BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_summaries (
			run_id TEXT NOT NULL REFERENCES sampling_runs(id) ON DELETE CASCADE,
			parameter TEXT NOT NULL,
			mean DOUBLE PRECISION NOT NULL,
			sd DOUBLE PRECISION NOT NULL,
			mc_err DOUBLE PRECISION NOT NULL,
			median DOUBLE PRECISION NOT NULL,
			q2_5 DOUBLE PRECISION NOT NULL,
			q97_5 DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (run_id, parameter)
		)`,
	}
	for _, stmt := range schema {
		if _, err := r.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun inserts a run manifest and its parameter summaries in one
// transaction.
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, manifest ports.RunManifest, summaries []ports.ParameterSummary) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("starting run transaction: " + err.Error())
	}
	defer tx.Rollback()

	createdAt := manifest.CreatedAt.Time()
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sampling_runs (id, lesson, model, iterations, warmup, chains, seed, elapsed_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, manifest.RunID.String(), manifest.Lesson, manifest.Model, manifest.Iterations,
		manifest.Warmup, manifest.Chains, manifest.Seed, manifest.ElapsedMS, createdAt)
	if err != nil {
		return errors.Wrap(err, "inserting run manifest")
	}

	for _, s := range summaries {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_summaries (run_id, parameter, mean, sd, mc_err, median, q2_5, q97_5)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, manifest.RunID.String(), s.Name, s.Mean, s.SD, s.MCErr, s.Median, s.Q2_5, s.Q97_5)
		if err != nil {
			return errors.Wrapf(err, "inserting summary for %s", s.Name)
		}
	}

	return tx.Commit()
}
