package repositories

import (
	"context"
	"time"

	"github.com/chrisdamba/foodash/internal/models"
)

// Range reads take a filter whose StartDate is inclusive and EndDate
// exclusive. Restaurant constraints are honoured where the record carries a
// restaurant; status is left to the calculators.

type UserRepository interface {
	BulkCreate(ctx context.Context, users []models.UserRecord) error
	FetchRange(ctx context.Context, f models.Filter) ([]models.UserRecord, error)
	CountBefore(ctx context.Context, t time.Time) (int, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type OrderRepository interface {
	BulkCreate(ctx context.Context, orders []models.OrderRecord) error
	FetchRange(ctx context.Context, f models.Filter) ([]models.OrderRecord, error)
	CountBefore(ctx context.Context, f models.Filter, t time.Time) (int, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type DeliveryRepository interface {
	BulkCreate(ctx context.Context, deliveries []models.DeliveryRecord) error
	FetchRange(ctx context.Context, f models.Filter) ([]models.DeliveryRecord, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type RestaurantRepository interface {
	BulkCreate(ctx context.Context, restaurants []models.Restaurant) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// MenuItemRepository stores categories and the products listed under them.
type MenuItemRepository interface {
	BulkCreateCategories(ctx context.Context, categories []models.Category) error
	BulkCreate(ctx context.Context, products []models.Product) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type DeliveryPartnerRepository interface {
	BulkCreate(ctx context.Context, couriers []models.Courier) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
