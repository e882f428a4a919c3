package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"draftflow/internal/domain"
)

// DraftRepositoryPG implements domain.DraftRepository using PostgreSQL.
type DraftRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDraftRepository creates a new draft repository backed by PostgreSQL.
func NewDraftRepository(pool *pgxpool.Pool) *DraftRepositoryPG {
	return &DraftRepositoryPG{pool: pool}
}

// SaveAll persists a batch of drafts in one transaction, preserving order.
func (r *DraftRepositoryPG) SaveAll(ctx context.Context, drafts []domain.DraftResult) error {
	if len(drafts) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
INSERT INTO drafts (id, job_id, product_id, main_image_url, title, selling_points, selected, generation_error, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	for _, d := range drafts {
		if _, err := tx.Exec(ctx, query,
			d.ID,
			d.JobID,
			d.ProductID,
			d.MainImageDraftURL,
			d.Title,
			d.SellingPoints,
			d.Selected,
			d.GenerationError,
			d.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetByID fetches one draft.
func (r *DraftRepositoryPG) GetByID(ctx context.Context, id string) (*domain.DraftResult, error) {
	query := `
SELECT id, job_id, product_id, main_image_url, title, selling_points, selected, generation_error, created_at
FROM drafts
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, id)
	var d domain.DraftResult
	if err := row.Scan(&d.ID, &d.JobID, &d.ProductID, &d.MainImageDraftURL, &d.Title, &d.SellingPoints, &d.Selected, &d.GenerationError, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListByJobID returns all drafts of one job in generation order.
func (r *DraftRepositoryPG) ListByJobID(ctx context.Context, jobID string) ([]domain.DraftResult, error) {
	query := `
SELECT id, job_id, product_id, main_image_url, title, selling_points, selected, generation_error, created_at
FROM drafts
WHERE job_id = $1
ORDER BY created_at ASC, id ASC;
`
	return r.queryDrafts(ctx, query, jobID)
}

// List returns every stored draft, oldest first.
func (r *DraftRepositoryPG) List(ctx context.Context) ([]domain.DraftResult, error) {
	query := `
SELECT id, job_id, product_id, main_image_url, title, selling_points, selected, generation_error, created_at
FROM drafts
ORDER BY created_at ASC, id ASC;
`
	return r.queryDrafts(ctx, query)
}

// ListSelected returns drafts marked for export, oldest first.
func (r *DraftRepositoryPG) ListSelected(ctx context.Context) ([]domain.DraftResult, error) {
	query := `
SELECT id, job_id, product_id, main_image_url, title, selling_points, selected, generation_error, created_at
FROM drafts
WHERE selected = TRUE
ORDER BY created_at ASC, id ASC;
`
	return r.queryDrafts(ctx, query)
}

// SetSelected flips the export flag on one draft.
func (r *DraftRepositoryPG) SetSelected(ctx context.Context, id string, selected bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE drafts SET selected = $2 WHERE id = $1;`, id, selected)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Clear removes every draft.
func (r *DraftRepositoryPG) Clear(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM drafts;`)
	return err
}

func (r *DraftRepositoryPG) queryDrafts(ctx context.Context, query string, args ...any) ([]domain.DraftResult, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []domain.DraftResult
	for rows.Next() {
		var d domain.DraftResult
		if err := rows.Scan(&d.ID, &d.JobID, &d.ProductID, &d.MainImageDraftURL, &d.Title, &d.SellingPoints, &d.Selected, &d.GenerationError, &d.CreatedAt); err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}
