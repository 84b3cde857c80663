package postgres

import (
	"time"

	"github.com/chrisdamba/foodash/internal/models"
)

// rowScanner is satisfied by pgx.Rows and pgx.Row.
type rowScanner interface {
	Scan(dest ...any) error
}

// Explicit row-to-record conversions. Column order must match the SELECT
// lists in the repositories.

func scanUser(row rowScanner) (models.UserRecord, error) {
	var u models.UserRecord
	if err := row.Scan(&u.ID, &u.Role, &u.CreatedAt); err != nil {
		return u, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func scanOrder(row rowScanner) (models.OrderRecord, error) {
	var (
		o      models.OrderRecord
		status string
	)
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.RestaurantID,
		&o.RestaurantName,
		&o.DeliveryPersonID,
		&status,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.Total,
		&o.CreatedAt,
		&o.EstimatedDeliveryTime,
		&o.ActualDeliveryTime,
	)
	if err != nil {
		return o, err
	}
	o.Status = models.OrderStatus(status)
	o.CreatedAt = o.CreatedAt.UTC()
	o.EstimatedDeliveryTime = o.EstimatedDeliveryTime.UTC()
	o.ActualDeliveryTime = utcPtr(o.ActualDeliveryTime)
	return o, nil
}

func scanLineItem(row rowScanner) (int64, models.LineItem, error) {
	var (
		orderID int64
		item    models.LineItem
	)
	err := row.Scan(
		&orderID,
		&item.ProductID,
		&item.ProductName,
		&item.CategoryID,
		&item.CategoryName,
		&item.Quantity,
		&item.LineRevenue,
	)
	return orderID, item, err
}

func scanDelivery(row rowScanner) (models.DeliveryRecord, error) {
	var d models.DeliveryRecord
	err := row.Scan(
		&d.ID,
		&d.OrderID,
		&d.RestaurantID,
		&d.DeliveryPersonID,
		&d.Zone,
		&d.Distance,
		&d.StartedAt,
		&d.CompletedAt,
		&d.EstimatedDeliveryTime,
		&d.Rating,
	)
	if err != nil {
		return d, err
	}
	d.StartedAt = d.StartedAt.UTC()
	d.CompletedAt = utcPtr(d.CompletedAt)
	d.EstimatedDeliveryTime = d.EstimatedDeliveryTime.UTC()
	return d, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func statusParam(s *models.OrderStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
