package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"draftflow/internal/adapter/repo"
	"draftflow/internal/domain"
	"draftflow/internal/engine"
	"draftflow/internal/infra"
	"draftflow/internal/storage"
)

type jobWorker struct {
	ctx          context.Context
	logger       infra.Logger
	pipeline     *engine.Pipeline
	products     domain.ProductRepository
	drafts       domain.DraftRepository
	templates    domain.TemplateRepository
	jobs         domain.DraftJobRepository
	store        *storage.DraftStore
	pollInterval time.Duration
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	storagePath := cfg.StoragePath
	if !filepath.IsAbs(storagePath) {
		if abs, err := filepath.Abs(storagePath); err == nil {
			storagePath = abs
		}
	}
	store, err := storage.NewDraftStore(storagePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure storage")
	}

	composer, err := engine.NewComposer(engine.ComposerOptions{FontPath: cfg.WatermarkFontPath})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure compositor")
	}

	worker := &jobWorker{
		ctx:          ctx,
		logger:       logger,
		pipeline:     engine.NewPipeline(composer, logger),
		products:     repo.NewProductRepository(pool),
		drafts:       repo.NewDraftRepository(pool),
		templates:    repo.NewTemplateRepository(pool),
		jobs:         repo.NewDraftJobRepository(pool),
		store:        store,
		pollInterval: cfg.JobPollInterval,
	}

	if err := worker.Run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func (w *jobWorker) Run() error {
	w.logger.Info().Msg("worker: started")
	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		job, err := w.jobs.ClaimNext(w.ctx)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				w.logger.Error().Err(err).Msg("worker: failed to claim job")
			}
			select {
			case <-w.ctx.Done():
				return w.ctx.Err()
			case <-time.After(w.pollInterval):
			}
			continue
		}

		w.handleJob(job)
	}
}

func (w *jobWorker) handleJob(job *domain.DraftJob) {
	w.logger.Info().Str("job_id", job.ID).Int("total", job.Total).Msg("worker: picked job")

	status := domain.JobStatusSucceeded
	errMsg := ""
	if err := w.generate(job); err != nil {
		status = domain.JobStatusFailed
		errMsg = err.Error()
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: job failed")
	}
	if err := w.jobs.MarkFinished(w.ctx, job.ID, status, errMsg); err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: mark finished failed")
	}
}

func (w *jobWorker) generate(job *domain.DraftJob) error {
	products, err := w.products.ListByIDs(w.ctx, job.ProductIDs)
	if err != nil {
		return err
	}

	opts := engine.Options{
		FailureMode: job.FailureMode,
		OnProgress: func(completed, total int) {
			if err := w.jobs.UpdateProgress(w.ctx, job.ID, completed, total); err != nil {
				w.logger.Warn().Err(err).Str("job_id", job.ID).Msg("worker: progress update failed")
			}
		},
	}

	var results []domain.DraftResult
	if job.TemplateID != "" {
		template, err := w.templates.GetByID(w.ctx, job.TemplateID)
		if err != nil {
			return err
		}
		results, err = w.pipeline.ApplyMany(w.ctx, products, template, opts)
		if err != nil {
			return err
		}
		// One application per batch, regardless of the product count.
		if err := w.templates.IncrementUsedCount(w.ctx, job.TemplateID); err != nil {
			w.logger.Warn().Err(err).Str("template_id", job.TemplateID).Msg("worker: used count update failed")
		}
	} else {
		results, err = w.pipeline.GenerateMany(w.ctx, products, opts)
		if err != nil {
			return err
		}
	}

	for i := range results {
		results[i].JobID = job.ID
	}
	if err := w.drafts.SaveAll(w.ctx, results); err != nil {
		return err
	}

	for _, draft := range results {
		if _, err := w.store.WriteDraftImage(w.ctx, draft.ID, draft.MainImageDraftURL); err != nil {
			w.logger.Warn().Err(err).Str("draft_id", draft.ID).Msg("worker: image mirror failed")
		}
	}
	return nil
}
