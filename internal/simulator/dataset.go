package simulator

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodash/internal/repositories"
	"github.com/chrisdamba/foodash/internal/repositories/memory"
)

const loadBatchSize = 1000

// Store is the set of repositories a dataset is written to. Catalog
// repositories may be nil when the target keeps pre-joined records only.
type Store struct {
	Users       repositories.UserRepository
	Restaurants repositories.RestaurantRepository
	MenuItems   repositories.MenuItemRepository
	Couriers    repositories.DeliveryPartnerRepository
	Orders      repositories.OrderRepository
	Deliveries  repositories.DeliveryRepository
}

// Load writes the dataset in foreign-key order. step is called after every
// batch with the number of records written in it.
func (d *Dataset) Load(ctx context.Context, st Store, step func(n int)) error {
	if step == nil {
		step = func(int) {}
	}

	if err := loadBatches(ctx, d.Users, st.Users.BulkCreate, step); err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if st.Restaurants != nil {
		if err := loadBatches(ctx, d.Restaurants, st.Restaurants.BulkCreate, step); err != nil {
			return fmt.Errorf("load restaurants: %w", err)
		}
	}
	if st.MenuItems != nil {
		if err := st.MenuItems.BulkCreateCategories(ctx, d.Categories); err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		step(len(d.Categories))
		if err := loadBatches(ctx, d.Products, st.MenuItems.BulkCreate, step); err != nil {
			return fmt.Errorf("load products: %w", err)
		}
	}
	if st.Couriers != nil {
		if err := loadBatches(ctx, d.Couriers, st.Couriers.BulkCreate, step); err != nil {
			return fmt.Errorf("load couriers: %w", err)
		}
	}
	if err := loadBatches(ctx, d.Orders, st.Orders.BulkCreate, step); err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	if err := loadBatches(ctx, d.Deliveries, st.Deliveries.BulkCreate, step); err != nil {
		return fmt.Errorf("load deliveries: %w", err)
	}
	return nil
}

// Size is the number of records Load reports through its step callback.
func (d *Dataset) Size() int {
	return len(d.Users) + len(d.Restaurants) + len(d.Categories) + len(d.Products) +
		len(d.Couriers) + len(d.Orders) + len(d.Deliveries)
}

func loadBatches[T any](ctx context.Context, records []T, create func(context.Context, []T) error, step func(int)) error {
	for start := 0; start < len(records); start += loadBatchSize {
		end := min(start+loadBatchSize, len(records))
		if err := create(ctx, records[start:end]); err != nil {
			return err
		}
		step(end - start)
	}
	return nil
}

// MemoryGateway loads the dataset into fresh in-memory repositories.
func (d *Dataset) MemoryGateway(ctx context.Context) (*repositories.Gateway, error) {
	st := Store{
		Users:      memory.NewUserRepository(),
		Orders:     memory.NewOrderRepository(),
		Deliveries: memory.NewDeliveryRepository(),
	}
	if err := d.Load(ctx, st, nil); err != nil {
		return nil, err
	}
	return repositories.NewGateway(st.Users, st.Orders, st.Deliveries), nil
}
