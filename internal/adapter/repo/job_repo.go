package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"draftflow/internal/domain"
)

// DraftJobRepositoryPG implements domain.DraftJobRepository using PostgreSQL.
type DraftJobRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDraftJobRepository creates a new job repository backed by PostgreSQL.
func NewDraftJobRepository(pool *pgxpool.Pool) *DraftJobRepositoryPG {
	return &DraftJobRepositoryPG{pool: pool}
}

// Create inserts a new queued job.
func (r *DraftJobRepositoryPG) Create(ctx context.Context, job *domain.DraftJob) error {
	query := `
INSERT INTO draft_jobs (id, template_id, product_ids, failure_mode, status, completed, total, error_message)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := r.pool.Exec(ctx, query,
		job.ID,
		nullableID(job.TemplateID),
		job.ProductIDs,
		job.FailureMode,
		job.Status,
		job.Completed,
		job.Total,
		job.ErrorMessage,
	)
	return err
}

// GetByID fetches a job by its identifier.
func (r *DraftJobRepositoryPG) GetByID(ctx context.Context, id string) (*domain.DraftJob, error) {
	query := `
SELECT id, COALESCE(template_id, ''), product_ids, failure_mode, status, completed, total, error_message, created_at, updated_at
FROM draft_jobs
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, id)
	var job domain.DraftJob
	if err := row.Scan(
		&job.ID,
		&job.TemplateID,
		&job.ProductIDs,
		&job.FailureMode,
		&job.Status,
		&job.Completed,
		&job.Total,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// ClaimNext atomically promotes the oldest queued job to running. Safe for
// concurrent workers: the row lock skips jobs another worker already claimed.
func (r *DraftJobRepositoryPG) ClaimNext(ctx context.Context) (*domain.DraftJob, error) {
	query := `
WITH next_job AS (
    SELECT id
    FROM draft_jobs
    WHERE status = 'queued'
    ORDER BY created_at ASC
    FOR UPDATE SKIP LOCKED
    LIMIT 1
),
updated AS (
    UPDATE draft_jobs
    SET status = 'running', updated_at = NOW()
    WHERE id IN (SELECT id FROM next_job)
    RETURNING id, COALESCE(template_id, ''), product_ids, failure_mode, status, completed, total, error_message, created_at, updated_at
)
SELECT * FROM updated;
`
	row := r.pool.QueryRow(ctx, query)
	var job domain.DraftJob
	if err := row.Scan(
		&job.ID,
		&job.TemplateID,
		&job.ProductIDs,
		&job.FailureMode,
		&job.Status,
		&job.Completed,
		&job.Total,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// UpdateProgress records how many drafts of the batch are finished.
func (r *DraftJobRepositoryPG) UpdateProgress(ctx context.Context, id string, completed, total int) error {
	query := `
UPDATE draft_jobs
SET completed = $2,
    total = $3,
    updated_at = NOW()
WHERE id = $1;
`
	_, err := r.pool.Exec(ctx, query, id, completed, total)
	return err
}

// MarkFinished moves a job into a terminal state.
func (r *DraftJobRepositoryPG) MarkFinished(ctx context.Context, id string, status domain.JobStatus, errMsg string) error {
	query := `
UPDATE draft_jobs
SET status = $2,
    error_message = $3,
    updated_at = NOW()
WHERE id = $1;
`
	_, err := r.pool.Exec(ctx, query, id, status, errMsg)
	return err
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
