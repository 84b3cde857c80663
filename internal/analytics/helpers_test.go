package analytics

import (
	"time"

	"github.com/chrisdamba/foodash/internal/models"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func newTestEngine() *Engine {
	return NewEngine(NewBucketer(time.UTC), DefaultOptions())
}

func dailyFilter(start, end time.Time) models.Filter {
	return models.Filter{StartDate: start, EndDate: end, Interval: models.IntervalDaily}
}

func order(id, user, restaurant int64, status models.OrderStatus, total float64, created time.Time, items ...models.LineItem) models.OrderRecord {
	return models.OrderRecord{
		ID:           id,
		UserID:       user,
		RestaurantID: restaurant,
		Status:       status,
		Total:        total,
		CreatedAt:    created,
		Items:        items,
	}
}

func item(product, category int64, qty int, revenue float64) models.LineItem {
	return models.LineItem{ProductID: product, CategoryID: category, Quantity: qty, LineRevenue: revenue}
}

func ptr[T any](v T) *T {
	return &v
}
