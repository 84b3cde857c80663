package analytics

import (
	"testing"
	"time"

	"github.com/chrisdamba/foodash/internal/models"
	"github.com/google/go-cmp/cmp"
)

func TestTopRestaurants(t *testing.T) {
	f := dailyFilter(at(2024, 1, 1, 0), at(2024, 1, 2, 0))
	orders := []models.OrderRecord{
		order(1, 1, 1, models.OrderStatusCompleted, 10, at(2024, 1, 1, 9)),
		order(2, 1, 2, models.OrderStatusCompleted, 25, at(2024, 1, 1, 9)),
		order(3, 1, 3, models.OrderStatusCompleted, 10, at(2024, 1, 1, 9)),
		order(4, 1, 3, models.OrderStatusCancelled, 100, at(2024, 1, 1, 9)),
		order(5, 1, 1, models.OrderStatusPlaced, 0, at(2024, 1, 2, 9)),
	}

	opts := DefaultOptions()
	opts.TopN = 2
	got, err := NewEngine(NewBucketer(time.UTC), opts).TopRestaurants(f, orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.RestaurantRanking{
		{RestaurantID: 2, Orders: 1, Revenue: 25},
		{RestaurantID: 1, Orders: 2, Revenue: 10}, // ties with 3 on revenue, wins on orders
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("top restaurants mismatch (-want +got):\n%s", diff)
	}
}

func TestTopProducts(t *testing.T) {
	f := dailyFilter(at(2024, 1, 1, 0), at(2024, 1, 1, 0))
	orders := []models.OrderRecord{
		order(1, 1, 1, models.OrderStatusCompleted, 30, at(2024, 1, 1, 9), item(100, 1, 2, 10), item(200, 2, 1, 20)),
		order(2, 2, 1, models.OrderStatusCompleted, 5, at(2024, 1, 1, 10), item(100, 1, 1, 5)),
		order(3, 3, 1, models.OrderStatusCancelled, 50, at(2024, 1, 1, 11), item(200, 2, 5, 50)),
	}
	got, err := newTestEngine().TopProducts(f, orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.ProductRanking{
		{ProductID: 100, CategoryID: 1, Quantity: 3, Revenue: 15},
		{ProductID: 200, CategoryID: 2, Quantity: 1, Revenue: 20},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("top products mismatch (-want +got):\n%s", diff)
	}
}

func TestLimit(t *testing.T) {
	s := []int{1, 2, 3}
	if got := limit(s, 0); len(got) != 3 {
		t.Errorf("non-positive limit should keep everything, got %v", got)
	}
	if got := limit(s, 2); len(got) != 2 {
		t.Errorf("got %v, want two items", got)
	}
}
