package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chrisdamba/foodash/internal/models"
)

// MenuItemRepository owns the categories and products tables.
type MenuItemRepository struct {
	pool *pgxpool.Pool
}

func NewMenuItemRepository(pool *pgxpool.Pool) *MenuItemRepository {
	return &MenuItemRepository{pool: pool}
}

func (r *MenuItemRepository) BulkCreateCategories(ctx context.Context, categories []models.Category) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"categories"},
		[]string{"id", "name"},
		pgx.CopyFromSlice(len(categories), func(i int) ([]any, error) {
			return []any{categories[i].ID, categories[i].Name}, nil
		}),
	)
	return err
}

func (r *MenuItemRepository) BulkCreate(ctx context.Context, products []models.Product) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"products"},
		[]string{"id", "restaurant_id", "category_id", "name", "price"},
		pgx.CopyFromSlice(len(products), func(i int) ([]any, error) {
			p := products[i]
			return []any{p.ID, p.RestaurantID, p.CategoryID, p.Name, p.Price}, nil
		}),
	)
	return err
}

func (r *MenuItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}

func (r *MenuItemRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE products, categories CASCADE")
	return err
}
