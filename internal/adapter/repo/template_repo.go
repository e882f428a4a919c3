package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"draftflow/internal/domain"
)

// TemplateRepositoryPG implements domain.TemplateRepository using PostgreSQL.
// Elements and content are stored as jsonb so the template shape can evolve
// without schema migrations.
type TemplateRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a new template repository backed by PostgreSQL.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepositoryPG {
	return &TemplateRepositoryPG{pool: pool}
}

// Create inserts a new template record.
func (r *TemplateRepositoryPG) Create(ctx context.Context, template *domain.Template) error {
	elements, err := json.Marshal(template.Elements)
	if err != nil {
		return fmt.Errorf("marshal elements: %w", err)
	}
	content, err := json.Marshal(template.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	query := `
INSERT INTO templates (id, name, tags, thumbnail, elements, content, used_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err = r.pool.Exec(ctx, query,
		template.ID,
		template.Name,
		template.Tags,
		template.Thumbnail,
		elements,
		content,
		template.UsedCount,
		template.CreatedAt,
	)
	return err
}

// GetByID fetches a template by its identifier.
func (r *TemplateRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	query := `
SELECT id, name, tags, thumbnail, elements, content, used_count, created_at
FROM templates
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, id)
	t, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns all templates, newest first.
func (r *TemplateRepositoryPG) List(ctx context.Context) ([]domain.Template, error) {
	query := `
SELECT id, name, tags, thumbnail, elements, content, used_count, created_at
FROM templates
ORDER BY created_at DESC;
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// IncrementUsedCount bumps the usage counter by one.
func (r *TemplateRepositoryPG) IncrementUsedCount(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE templates SET used_count = used_count + 1 WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes one template.
func (r *TemplateRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTemplate(row pgx.Row) (*domain.Template, error) {
	var t domain.Template
	var elements, content []byte
	if err := row.Scan(&t.ID, &t.Name, &t.Tags, &t.Thumbnail, &elements, &content, &t.UsedCount, &t.CreatedAt); err != nil {
		return nil, err
	}
	if len(elements) > 0 {
		if err := json.Unmarshal(elements, &t.Elements); err != nil {
			return nil, fmt.Errorf("unmarshal elements: %w", err)
		}
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &t.Content); err != nil {
			return nil, fmt.Errorf("unmarshal content: %w", err)
		}
	}
	return &t, nil
}
