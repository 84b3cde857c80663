package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chrisdamba/foodash/internal/models"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) BulkCreate(ctx context.Context, users []models.UserRecord) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"users"},
		[]string{"id", "role", "created_at"},
		pgx.CopyFromSlice(len(users), func(i int) ([]any, error) {
			return []any{users[i].ID, users[i].Role, users[i].CreatedAt}, nil
		}),
	)
	return err
}

func (r *UserRepository) FetchRange(ctx context.Context, f models.Filter) ([]models.UserRecord, error) {
	query := `
        SELECT id, role, created_at
        FROM users
        WHERE created_at >= $1 AND created_at < $2
        ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, f.StartDate, f.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.UserRecord
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) CountBefore(ctx context.Context, t time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE created_at < $1", t).Scan(&count)
	return count, err
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE users CASCADE")
	return err
}
