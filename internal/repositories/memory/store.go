// Package memory keeps records in process memory. It backs the synthetic
// data source and the tests; nothing survives a restart.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/chrisdamba/foodash/internal/models"
)

func inRange(t time.Time, f models.Filter) bool {
	return !t.Before(f.StartDate) && t.Before(f.EndDate)
}

type UserRepository struct {
	mu    sync.RWMutex
	users []models.UserRecord
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) BulkCreate(ctx context.Context, users []models.UserRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, users...)
	return nil
}

func (r *UserRepository) FetchRange(ctx context.Context, f models.Filter) ([]models.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.UserRecord
	for _, u := range r.users {
		if inRange(u.CreatedAt, f) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepository) CountBefore(ctx context.Context, t time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, u := range r.users {
		if u.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = nil
	return nil
}

type OrderRepository struct {
	mu     sync.RWMutex
	orders []models.OrderRecord
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// BulkCreate stores copies of the orders; later changes to the caller's
// item slices are not visible to readers.
func (r *OrderRepository) BulkCreate(ctx context.Context, orders []models.OrderRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range orders {
		o.Items = slices.Clone(o.Items)
		r.orders = append(r.orders, o)
	}
	return nil
}

// FetchRange honours the time window and restaurant; status is left to the
// calculators, which need cancelled orders for their rates.
func (r *OrderRepository) FetchRange(ctx context.Context, f models.Filter) ([]models.OrderRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.OrderRecord
	for _, o := range r.orders {
		if !inRange(o.CreatedAt, f) {
			continue
		}
		if f.RestaurantID != nil && o.RestaurantID != *f.RestaurantID {
			continue
		}
		o.Items = slices.Clone(o.Items)
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepository) CountBefore(ctx context.Context, f models.Filter, t time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, o := range r.orders {
		if o.CreatedAt.Before(t) && f.MatchesOrder(o) {
			n++
		}
	}
	return n, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders), nil
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = nil
	return nil
}

type DeliveryRepository struct {
	mu         sync.RWMutex
	deliveries []models.DeliveryRecord
}

func NewDeliveryRepository() *DeliveryRepository {
	return &DeliveryRepository{}
}

func (r *DeliveryRepository) BulkCreate(ctx context.Context, deliveries []models.DeliveryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, deliveries...)
	return nil
}

// FetchRange windows deliveries on when they started.
func (r *DeliveryRepository) FetchRange(ctx context.Context, f models.Filter) ([]models.DeliveryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.DeliveryRecord
	for _, d := range r.deliveries {
		if inRange(d.StartedAt, f) && f.MatchesDelivery(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *DeliveryRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.deliveries), nil
}

func (r *DeliveryRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = nil
	return nil
}
