package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"draftflow/internal/domain"
)

// ProductRepositoryPG implements domain.ProductRepository using PostgreSQL.
type ProductRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewProductRepository constructs a new product repository instance.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepositoryPG {
	return &ProductRepositoryPG{pool: pool}
}

// Upsert inserts or replaces a product record.
func (r *ProductRepositoryPG) Upsert(ctx context.Context, product *domain.Product) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO products (id, name, category, brand, material, size, color, target_audience, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    category = EXCLUDED.category,
    brand = EXCLUDED.brand,
    material = EXCLUDED.material,
    size = EXCLUDED.size,
    color = EXCLUDED.color,
    target_audience = EXCLUDED.target_audience,
    image_url = EXCLUDED.image_url;
`, product.ID, product.Name, product.Category, product.Brand, product.Material, product.Size, product.Color, product.TargetAudience, product.ImageURL)
	return err
}

// GetByID fetches one product.
func (r *ProductRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, category, brand, material, size, color, target_audience, image_url, created_at
FROM products
WHERE id = $1;
`, id)
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Brand, &p.Material, &p.Size, &p.Color, &p.TargetAudience, &p.ImageURL, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByIDs returns products in the order of the given ids. A missing id is
// an error: drafts must never reference products that no longer exist.
func (r *ProductRepositoryPG) ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, name, category, brand, material, size, color, target_audience, image_url, created_at
FROM products
WHERE id = ANY($1);
`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]domain.Product, len(ids))
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Brand, &p.Material, &p.Size, &p.Color, &p.TargetAudience, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		products = append(products, p)
	}
	return products, nil
}

// List returns all products, oldest first.
func (r *ProductRepositoryPG) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, category, brand, material, size, color, target_audience, image_url, created_at
FROM products
ORDER BY created_at ASC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Brand, &p.Material, &p.Size, &p.Color, &p.TargetAudience, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Delete removes one product.
func (r *ProductRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Clear removes every product.
func (r *ProductRepositoryPG) Clear(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM products;`)
	return err
}
