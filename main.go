package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"bayeslab/adapters/engine/gibbs"
	"bayeslab/adapters/excel"
	"bayeslab/adapters/postgres"
	"bayeslab/app"
	"bayeslab/internal"
	"bayeslab/internal/config"
	"bayeslab/internal/report"
	"bayeslab/internal/summarize"
	"bayeslab/ports"
	"bayeslab/ui"
)

func main() {
	// Load .env file if present (ignore errors - env vars may be set directly)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()

	repo, cleanup, err := buildRunRepository(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize run repository: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := ports.SampleOptions{
		Iterations: cfg.Sampling.Iterations,
		Warmup:     cfg.Sampling.Warmup,
		Chains:     cfg.Sampling.Chains,
		Seed:       cfg.Sampling.Seed,
	}
	service := app.NewLessonService(gibbs.New(), repo, opts, cfg.Output.Dir, logger)

	results, err := service.RunAll(ctx)
	if err != nil {
		log.Fatalf("Lesson run failed: %v", err)
	}

	sections := make([]report.Section, len(results))
	for i, res := range results {
		sections[i] = res.Section
	}

	builder, err := report.NewBuilder()
	if err != nil {
		log.Fatalf("Failed to build report renderer: %v", err)
	}
	path, err := builder.WriteFile(cfg.Output.Dir, "Bayesian modeling lab", sections)
	if err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	logger.Info("report written to %s", path)

	if cfg.Export.ExcelFile != "" {
		if err := exportWorkbook(cfg.Export.ExcelFile, results); err != nil {
			logger.Error("excel export failed: %v", err)
		} else {
			logger.Info("summary workbook written to %s", cfg.Export.ExcelFile)
		}
	}

	if cfg.Server.Enabled {
		server := ui.NewServer(cfg.Output.Dir, cfg.Server.GinMode, logger)
		if err := server.Run(cfg.Server.Port); err != nil {
			log.Fatalf("Report server failed: %v", err)
		}
	}
}

// buildRunRepository connects the Postgres repository when DATABASE_URL is
// set and falls back to the no-op repository otherwise.
func buildRunRepository(cfg *config.Config, logger *internal.Logger) (ports.RunRepository, func(), error) {
	if cfg.Database.URL == "" {
		return ports.NopRunRepository{}, func() {}, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	repo, err := postgres.NewRunRepository(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Info("run persistence enabled")
	return repo, func() { db.Close() }, nil
}

func exportWorkbook(path string, results []app.Result) error {
	lessons := make([]string, len(results))
	byLesson := make(map[string][]summarize.Summary, len(results))
	for i, res := range results {
		lessons[i] = res.Section.Lesson
		byLesson[res.Section.Lesson] = res.Summaries
	}
	return excel.NewSummaryWriter(path).Write(lessons, byLesson)
}
