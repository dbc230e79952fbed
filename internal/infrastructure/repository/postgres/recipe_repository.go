package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"recipe-recommender/internal/infrastructure/resilience"
	"recipe-recommender/internal/pkg/common"
)

// RecipeRepository 由 resep 表解析推薦出的食譜 ID
type RecipeRepository struct {
	db      *sql.DB
	breaker *resilience.Breaker
}

func NewRecipeRepository(db *sql.DB, breaker *resilience.Breaker) *RecipeRepository {
	return &RecipeRepository{db: db, breaker: breaker}
}

// ResolveRecipes 回傳存在的食譜，順序不保證；呼叫端負責依推薦順序排列
func (r *RecipeRepository) ResolveRecipes(ctx context.Context, ids []int64) ([]common.RecipeSummary, error) {
	if len(ids) == 0 {
		return []common.RecipeSummary{}, nil
	}

	var recipes []common.RecipeSummary
	err := r.breaker.Execute(func() error {
		var err error
		recipes, err = r.resolve(ctx, ids)
		return err
	})
	return recipes, err
}

func (r *RecipeRepository) resolve(ctx context.Context, ids []int64) ([]common.RecipeSummary, error) {
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = id
	}
	query := `SELECT id, title, image, deskripsi_singkat FROM resep WHERE id IN (` +
		strings.Join(placeholders, ", ") + `)`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]common.RecipeSummary, 0, len(ids))
	for rows.Next() {
		var (
			rec         common.RecipeSummary
			image       sql.NullString
			description sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Title, &image, &description); err != nil {
			return nil, fmt.Errorf("scan recipe row: %w", err)
		}
		if image.Valid {
			img := image.String
			rec.Image = &img
		}
		rec.Description = description.String
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe rows: %w", err)
	}
	return recipes, nil
}
