package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chrisdamba/foodash/internal/models"
	"github.com/chrisdamba/foodash/internal/repositories"
)

var (
	_ repositories.UserRepository            = (*UserRepository)(nil)
	_ repositories.OrderRepository           = (*OrderRepository)(nil)
	_ repositories.DeliveryRepository        = (*DeliveryRepository)(nil)
	_ repositories.RestaurantRepository      = (*RestaurantRepository)(nil)
	_ repositories.MenuItemRepository        = (*MenuItemRepository)(nil)
	_ repositories.DeliveryPartnerRepository = (*DeliveryPartnerRepository)(nil)
)

// fakeRow hands out column values the way pgx would after decoding.
type fakeRow []any

func (r fakeRow) Scan(dest ...any) error {
	if len(dest) != len(r) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(r))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r[i].(int64)
		case *int:
			*p = r[i].(int)
		case *string:
			*p = r[i].(string)
		case *float64:
			*p = r[i].(float64)
		case *time.Time:
			*p = r[i].(time.Time)
		case **int64:
			*p, _ = r[i].(*int64)
		case **float64:
			*p, _ = r[i].(*float64)
		case **time.Time:
			*p, _ = r[i].(*time.Time)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

func TestScanOrder(t *testing.T) {
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	created := time.Date(2024, 1, 1, 14, 0, 0, 0, plus2)
	courier := int64(9)

	row := fakeRow{
		int64(1), int64(2), int64(3), "Luigi's", &courier, "completed",
		18.5, 2.5, 21.0, created, created.Add(40 * time.Minute), (*time.Time)(nil),
	}
	got, err := scanOrder(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.OrderRecord{
		ID:                    1,
		UserID:                2,
		RestaurantID:          3,
		RestaurantName:        "Luigi's",
		DeliveryPersonID:      &courier,
		Status:                models.OrderStatusCompleted,
		Subtotal:              18.5,
		DeliveryFee:           2.5,
		Total:                 21,
		CreatedAt:             time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		EstimatedDeliveryTime: time.Date(2024, 1, 1, 12, 40, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestScanDelivery(t *testing.T) {
	started := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	done := started.Add(30 * time.Minute)
	rating := 4.5

	row := fakeRow{
		int64(7), int64(70), int64(3), int64(9), "north", 2.4,
		started, &done, started.Add(35 * time.Minute), &rating,
	}
	got, err := scanDelivery(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 7 || got.RestaurantID != 3 || got.DeliveryPersonID != 9 || !got.IsCompleted() {
		t.Errorf("unexpected delivery: %+v", got)
	}
	if got.Rating == nil || *got.Rating != 4.5 {
		t.Errorf("rating = %v, want 4.5", got.Rating)
	}
}

func TestScanLineItem(t *testing.T) {
	orderID, item, err := scanLineItem(fakeRow{int64(5), int64(11), "Margherita", int64(2), "Pizza", 2, 19.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.LineItem{ProductID: 11, ProductName: "Margherita", CategoryID: 2, CategoryName: "Pizza", Quantity: 2, LineRevenue: 19}
	if orderID != 5 {
		t.Errorf("order id = %d, want 5", orderID)
	}
	if diff := cmp.Diff(want, item); diff != "" {
		t.Errorf("line item mismatch (-want +got):\n%s", diff)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", fmt.Errorf("copy orders: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusParam(t *testing.T) {
	if statusParam(nil) != nil {
		t.Error("nil status should stay nil")
	}
	s := models.OrderStatusCancelled
	if got := statusParam(&s); got == nil || *got != "cancelled" {
		t.Errorf("got %v, want cancelled", got)
	}
}
