package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"recipe-recommender/internal/core/ingredient"
	"recipe-recommender/internal/infrastructure/resilience"
)

// CatalogRepository 讀取食材目錄表 bahan，每一列是某份食譜用到的一個食材
type CatalogRepository struct {
	db      *sql.DB
	breaker *resilience.Breaker
}

func NewCatalogRepository(db *sql.DB, breaker *resilience.Breaker) *CatalogRepository {
	return &CatalogRepository{db: db, breaker: breaker}
}

func (r *CatalogRepository) ListIngredients(ctx context.Context) ([]ingredient.CatalogEntry, error) {
	var entries []ingredient.CatalogEntry
	err := r.breaker.Execute(func() error {
		var err error
		entries, err = r.listIngredients(ctx)
		return err
	})
	return entries, err
}

func (r *CatalogRepository) listIngredients(ctx context.Context) ([]ingredient.CatalogEntry, error) {
	const query = `SELECT nama_bahan, kategori FROM bahan`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	entries := make([]ingredient.CatalogEntry, 0)
	for rows.Next() {
		var (
			name     string
			category sql.NullString
		)
		if err := rows.Scan(&name, &category); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		entries = append(entries, ingredient.CatalogEntry{RawName: name, CategoryHint: category.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}
	return entries, nil
}
