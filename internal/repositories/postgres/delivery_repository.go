package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chrisdamba/foodash/internal/models"
)

type DeliveryRepository struct {
	pool *pgxpool.Pool
}

func NewDeliveryRepository(pool *pgxpool.Pool) *DeliveryRepository {
	return &DeliveryRepository{pool: pool}
}

// BulkCreate stores the delivery rows. RestaurantID and EstimatedDeliveryTime
// live on the order and are not copied.
func (r *DeliveryRepository) BulkCreate(ctx context.Context, deliveries []models.DeliveryRecord) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"deliveries"},
		[]string{"id", "order_id", "courier_id", "zone", "distance_km", "started_at", "completed_at", "rating"},
		pgx.CopyFromSlice(len(deliveries), func(i int) ([]any, error) {
			d := deliveries[i]
			return []any{d.ID, d.OrderID, d.DeliveryPersonID, d.Zone, d.Distance, d.StartedAt, d.CompletedAt, d.Rating}, nil
		}),
	)
	return err
}

func (r *DeliveryRepository) FetchRange(ctx context.Context, f models.Filter) ([]models.DeliveryRecord, error) {
	query := `
        SELECT
            d.id, d.order_id, o.restaurant_id, d.courier_id, d.zone, d.distance_km,
            d.started_at, d.completed_at, o.estimated_delivery_time, d.rating
        FROM deliveries d
        JOIN orders o ON o.id = d.order_id
        WHERE d.started_at >= $1 AND d.started_at < $2
          AND ($3::bigint IS NULL OR o.restaurant_id = $3)
        ORDER BY d.started_at, d.id`

	rows, err := r.pool.Query(ctx, query, f.StartDate, f.EndDate, f.RestaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []models.DeliveryRecord
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

func (r *DeliveryRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM deliveries").Scan(&count)
	return count, err
}

func (r *DeliveryRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE deliveries")
	return err
}
