package repositories

import (
	"context"
	"time"

	"github.com/chrisdamba/foodash/internal/models"
)

// Gateway adapts the record repositories to the dashboard's data gateway,
// including the optional baseline counts.
type Gateway struct {
	Users      UserRepository
	Orders     OrderRepository
	Deliveries DeliveryRepository
}

func NewGateway(users UserRepository, orders OrderRepository, deliveries DeliveryRepository) *Gateway {
	return &Gateway{Users: users, Orders: orders, Deliveries: deliveries}
}

func (g *Gateway) FetchOrders(ctx context.Context, f models.Filter) ([]models.OrderRecord, error) {
	return g.Orders.FetchRange(ctx, f)
}

func (g *Gateway) FetchUsers(ctx context.Context, f models.Filter) ([]models.UserRecord, error) {
	return g.Users.FetchRange(ctx, f)
}

func (g *Gateway) FetchDeliveries(ctx context.Context, f models.Filter) ([]models.DeliveryRecord, error) {
	return g.Deliveries.FetchRange(ctx, f)
}

func (g *Gateway) CountUsersBefore(ctx context.Context, t time.Time) (int, error) {
	return g.Users.CountBefore(ctx, t)
}

func (g *Gateway) CountOrdersBefore(ctx context.Context, f models.Filter, t time.Time) (int, error) {
	return g.Orders.CountBefore(ctx, f, t)
}
