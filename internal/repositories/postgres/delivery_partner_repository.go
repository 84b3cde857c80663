package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chrisdamba/foodash/internal/models"
)

type DeliveryPartnerRepository struct {
	pool *pgxpool.Pool
}

func NewDeliveryPartnerRepository(pool *pgxpool.Pool) *DeliveryPartnerRepository {
	return &DeliveryPartnerRepository{pool: pool}
}

func (r *DeliveryPartnerRepository) BulkCreate(ctx context.Context, couriers []models.Courier) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"couriers"},
		[]string{"id", "user_id", "name", "zone", "speed", "rating"},
		pgx.CopyFromSlice(len(couriers), func(i int) ([]any, error) {
			c := couriers[i]
			return []any{c.ID, c.UserID, c.Name, c.Zone, c.Speed, c.Rating}, nil
		}),
	)
	return err
}

func (r *DeliveryPartnerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM couriers").Scan(&count)
	return count, err
}

func (r *DeliveryPartnerRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE couriers CASCADE")
	return err
}
