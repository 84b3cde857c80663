package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chrisdamba/foodash/internal/models"
)

const orderWindow = `o.created_at >= $1 AND o.created_at < $2 AND ($3::bigint IS NULL OR o.restaurant_id = $3)`

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// BulkCreate copies orders and their line items in one transaction.
func (r *OrderRepository) BulkCreate(ctx context.Context, orders []models.OrderRecord) error {
	type itemRow struct {
		orderID int64
		item    models.LineItem
	}
	var items []itemRow
	for _, o := range orders {
		for _, it := range o.Items {
			items = append(items, itemRow{orderID: o.ID, item: it})
		}
	}

	return execTxWithRetry(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"orders"},
			[]string{
				"id", "user_id", "restaurant_id", "courier_id", "status",
				"subtotal", "delivery_fee", "total", "created_at",
				"estimated_delivery_time", "actual_delivery_time",
			},
			pgx.CopyFromSlice(len(orders), func(i int) ([]any, error) {
				o := orders[i]
				return []any{
					o.ID,
					o.UserID,
					o.RestaurantID,
					o.DeliveryPersonID,
					string(o.Status),
					o.Subtotal,
					o.DeliveryFee,
					o.Total,
					o.CreatedAt,
					o.EstimatedDeliveryTime,
					o.ActualDeliveryTime,
				}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy orders: %w", err)
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"order_items"},
			[]string{"order_id", "product_id", "quantity", "line_revenue"},
			pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
				it := items[i]
				return []any{it.orderID, it.item.ProductID, it.item.Quantity, it.item.LineRevenue}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy order items: %w", err)
		}
		return nil
	}, 3)
}

// FetchRange returns orders pre-joined with restaurant, product and category
// names.
func (r *OrderRepository) FetchRange(ctx context.Context, f models.Filter) ([]models.OrderRecord, error) {
	orderQuery := `
        SELECT
            o.id, o.user_id, o.restaurant_id, r.name, o.courier_id, o.status,
            o.subtotal::float8, o.delivery_fee::float8, o.total::float8,
            o.created_at, o.estimated_delivery_time, o.actual_delivery_time
        FROM orders o
        JOIN restaurants r ON r.id = o.restaurant_id
        WHERE ` + orderWindow + `
        ORDER BY o.created_at, o.id`

	rows, err := r.pool.Query(ctx, orderQuery, f.StartDate, f.EndDate, f.RestaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.OrderRecord
	index := make(map[int64]int)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemQuery := `
        SELECT oi.order_id, oi.product_id, p.name, p.category_id, c.name, oi.quantity, oi.line_revenue::float8
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        JOIN products p ON p.id = oi.product_id
        JOIN categories c ON c.id = p.category_id
        WHERE ` + orderWindow + `
        ORDER BY oi.order_id, oi.product_id`

	itemRows, err := r.pool.Query(ctx, itemQuery, f.StartDate, f.EndDate, f.RestaurantID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		orderID, item, err := scanLineItem(itemRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}

func (r *OrderRepository) CountBefore(ctx context.Context, f models.Filter, t time.Time) (int, error) {
	query := `
        SELECT COUNT(*) FROM orders
        WHERE created_at < $1
          AND ($2::bigint IS NULL OR restaurant_id = $2)
          AND ($3::text IS NULL OR status = $3)`

	var count int
	err := r.pool.QueryRow(ctx, query, t, f.RestaurantID, statusParam(f.Status)).Scan(&count)
	return count, err
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count)
	return count, err
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE orders CASCADE")
	return err
}
