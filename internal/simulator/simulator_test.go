package simulator

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/chrisdamba/foodash/internal/models"
)

func testConfig() models.SeedConfig {
	return models.SeedConfig{
		Users:        120,
		Restaurants:  5,
		Couriers:     4,
		OrdersPerDay: 60,
		Days:         14,
		StartDate:    time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Zones:        []string{"urban_core", "suburban"},
		Categories:   []string{"Pizza", "Burgers", "Drinks"},
		CancelRate:   0.1,
		Seed:         42,
	}
}

func generate(t *testing.T, cfg models.SeedConfig) *Dataset {
	t.Helper()
	ds, err := NewSimulator(cfg, time.UTC).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return ds
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generate(t, testConfig())
	b := generate(t, testConfig())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different datasets (-a +b):\n%s", diff)
	}
}

func TestGenerate_RecordsAreConsistent(t *testing.T) {
	cfg := testConfig()
	ds := generate(t, cfg)

	if len(ds.Restaurants) != cfg.Restaurants || len(ds.Couriers) != cfg.Couriers {
		t.Fatalf("got %d restaurants %d couriers", len(ds.Restaurants), len(ds.Couriers))
	}
	if want := cfg.Users + cfg.Restaurants + cfg.Couriers; len(ds.Users) != want {
		t.Fatalf("got %d users, want %d", len(ds.Users), want)
	}
	if len(ds.Orders) == 0 || len(ds.Deliveries) == 0 {
		t.Fatal("simulation produced no orders")
	}

	signup := map[int64]time.Time{}
	for _, u := range ds.Users {
		signup[u.ID] = u.CreatedAt
	}

	byID := map[int64]models.OrderRecord{}
	cancelled := 0
	for i, o := range ds.Orders {
		byID[o.ID] = o
		if i > 0 && o.CreatedAt.Before(ds.Orders[i-1].CreatedAt) {
			t.Fatalf("order %d placed before its predecessor", o.ID)
		}
		if o.CreatedAt.Before(ds.Start) || !o.CreatedAt.Before(ds.End) {
			t.Fatalf("order %d at %v outside the simulated period", o.ID, o.CreatedAt)
		}
		if at, ok := signup[o.UserID]; !ok || o.CreatedAt.Before(at) {
			t.Fatalf("order %d by user %d before signup", o.ID, o.UserID)
		}
		if !o.Status.Valid() || len(o.Items) == 0 {
			t.Fatalf("order %d malformed: %+v", o.ID, o)
		}

		sum := 0.0
		for _, it := range o.Items {
			if it.Quantity < 1 || it.CategoryName == "" {
				t.Fatalf("order %d has bad line %+v", o.ID, it)
			}
			sum += it.LineRevenue
		}
		if roundMoney(sum) != o.Subtotal || roundMoney(o.Subtotal+o.DeliveryFee) != o.Total {
			t.Fatalf("order %d totals do not add up: %+v", o.ID, o)
		}

		if o.IsCompleted() != (o.ActualDeliveryTime != nil) {
			t.Fatalf("order %d status %s with actual delivery %v", o.ID, o.Status, o.ActualDeliveryTime)
		}
		if o.IsCancelled() {
			cancelled++
			if o.DeliveryPersonID != nil {
				t.Fatalf("cancelled order %d has a courier", o.ID)
			}
		}
	}
	if cancelled == 0 {
		t.Error("expected some cancelled orders at a 10% cancel rate")
	}

	for _, d := range ds.Deliveries {
		o, ok := byID[d.OrderID]
		if !ok || o.IsCancelled() {
			t.Fatalf("delivery %d for missing or cancelled order %d", d.ID, d.OrderID)
		}
		if d.StartedAt.Before(o.CreatedAt) {
			t.Fatalf("delivery %d started before its order", d.ID)
		}
		if d.CompletedAt != nil && d.CompletedAt.Before(d.StartedAt) {
			t.Fatalf("delivery %d completed before it started", d.ID)
		}
		if d.Rating != nil && (*d.Rating < 1 || *d.Rating > 5) {
			t.Fatalf("delivery %d rating %v out of range", d.ID, *d.Rating)
		}
		if o.DeliveryPersonID == nil || *o.DeliveryPersonID != d.DeliveryPersonID {
			t.Fatalf("delivery %d courier does not match order", d.ID)
		}
	}
}

func TestGenerate_ReportsProgress(t *testing.T) {
	cfg := testConfig()
	cfg.Days = 3
	sim := NewSimulator(cfg, time.UTC)
	var calls []int
	sim.Progress = func(done, total int) {
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		calls = append(calls, done)
	}
	if _, err := sim.Generate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, calls); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSimulator(testConfig(), time.UTC).Generate(ctx); err == nil {
		t.Error("expected context error")
	}
}

func TestGenerate_RejectsEmptyCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.Restaurants = 0
	if _, err := NewSimulator(cfg, time.UTC).Generate(context.Background()); err == nil {
		t.Error("expected error for zero restaurants")
	}
}

func TestMemoryGateway(t *testing.T) {
	ds := generate(t, testConfig())
	ctx := context.Background()
	gw, err := ds.MemoryGateway(ctx)
	if err != nil {
		t.Fatal(err)
	}

	f := models.Filter{StartDate: ds.Start, EndDate: ds.End, Interval: models.IntervalDaily}
	orders, err := gw.FetchOrders(ctx, f)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != len(ds.Orders) {
		t.Errorf("gateway returned %d orders, want %d", len(orders), len(ds.Orders))
	}
	before, err := gw.CountUsersBefore(ctx, ds.Start)
	if err != nil {
		t.Fatal(err)
	}
	if before < testConfig().Restaurants+testConfig().Couriers {
		t.Errorf("staff accounts should predate the period, got %d", before)
	}
}

func TestWeekProfile_AverageDaySumsToOne(t *testing.T) {
	p := newWeekProfile()
	total := 0.0
	for d := range p {
		for h := range p[d] {
			total += p[d][h]
		}
	}
	if diff := total/7 - 1; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("average day weight = %v, want 1", total/7)
	}
	if p[time.Friday][19] <= p[time.Tuesday][4] {
		t.Error("friday dinner should be busier than tuesday 4am")
	}
}

func TestPoisson(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, lambda := range []float64{0.5, 4, 200} {
		sum := 0
		const n = 2000
		for i := 0; i < n; i++ {
			sum += poisson(rng, lambda)
		}
		mean := float64(sum) / n
		if mean < lambda*0.9 || mean > lambda*1.1 {
			t.Errorf("lambda %v: sample mean %v", lambda, mean)
		}
	}
	if poisson(rng, 0) != 0 {
		t.Error("zero mean should give zero events")
	}
}

func TestCalculateDeliveryFee(t *testing.T) {
	tests := []struct {
		subtotal float64
		want     float64
	}{
		{10, baseDeliveryFee + smallOrderFee},
		{20, baseDeliveryFee},
		{40, 0},
	}
	for _, tt := range tests {
		if got := calculateDeliveryFee(tt.subtotal); got != tt.want {
			t.Errorf("calculateDeliveryFee(%v) = %v, want %v", tt.subtotal, got, tt.want)
		}
	}
}

func TestSelectWeighted(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := selectWeighted(rng, []float64{0, 0}); got != -1 {
		t.Errorf("all-zero weights gave %d", got)
	}
	for i := 0; i < 100; i++ {
		if got := selectWeighted(rng, []float64{0, 3, 0}); got != 1 {
			t.Fatalf("only positive weight is index 1, got %d", got)
		}
	}
}
