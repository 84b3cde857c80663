package analytics

import (
	"errors"
	"math"
	"testing"

	"github.com/chrisdamba/foodash/internal/models"
	"github.com/google/go-cmp/cmp"
)

func TestRestaurantPerformance_Ratios(t *testing.T) {
	e := newTestEngine()
	f := dailyFilter(at(2024, 1, 1, 0), at(2024, 1, 3, 0))
	orders := []models.OrderRecord{
		order(1, 1, 7, models.OrderStatusCompleted, 20, at(2024, 1, 1, 12), item(100, 1, 2, 12), item(101, 2, 1, 8)),
		order(2, 2, 7, models.OrderStatusCompleted, 30, at(2024, 1, 1, 13), item(102, 3, 3, 30)),
		order(3, 1, 7, models.OrderStatusCancelled, 10, at(2024, 1, 2, 19), item(100, 1, 1, 10)),
		order(4, 3, 8, models.OrderStatusCompleted, 99, at(2024, 1, 2, 19)), // other restaurant
	}

	perf, err := e.RestaurantPerformance(f, 7, orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if perf.TotalOrders != 3 {
		t.Errorf("total orders = %d, want 3", perf.TotalOrders)
	}
	if perf.AverageOrderValue != 20 {
		t.Errorf("average order value = %v, want 20", perf.AverageOrderValue)
	}
	if perf.OrderFrequency != 1.5 {
		t.Errorf("order frequency = %v, want 1.5 (3 orders over 2 active days)", perf.OrderFrequency)
	}
	if math.Abs(perf.CancellationRate-1.0/3) > 1e-9 {
		t.Errorf("cancellation rate = %v, want 1/3", perf.CancellationRate)
	}

	// cancelled order 3 is not a sale
	want := []models.MenuPerformance{
		{CategoryID: 3, TotalSold: 3, Revenue: 30, Contribution: 60},
		{CategoryID: 1, TotalSold: 2, Revenue: 12, Contribution: 24},
		{CategoryID: 2, TotalSold: 1, Revenue: 8, Contribution: 16},
	}
	if diff := cmp.Diff(want, perf.MenuPerformance); diff != "" {
		t.Errorf("menu performance mismatch (-want +got):\n%s", diff)
	}
}

func TestRestaurantPerformance_NoOrders(t *testing.T) {
	e := newTestEngine()
	perf, err := e.RestaurantPerformance(dailyFilter(at(2024, 1, 1, 0), at(2024, 1, 3, 0)), 7, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perf.AverageOrderValue != 0 || perf.OrderFrequency != 0 || perf.CancellationRate != 0 || perf.CustomerRetentionRate != 0 {
		t.Errorf("want zero-valued performance, got %+v", perf)
	}
	if perf.MenuPerformance == nil || perf.PeakTimes == nil {
		t.Error("empty sections should be empty slices, not nil")
	}
}

func TestRestaurantPerformance_RejectsNonPositiveID(t *testing.T) {
	e := newTestEngine()
	_, err := e.RestaurantPerformance(dailyFilter(at(2024, 1, 1, 0), at(2024, 1, 3, 0)), 0, nil)
	var rangeErr *InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
}

func TestMenuPerformance_ContributionsSumTo100(t *testing.T) {
	tests := []struct {
		name  string
		items []models.LineItem
	}{
		{"equal thirds", []models.LineItem{item(1, 1, 1, 10), item(2, 2, 1, 10), item(3, 3, 1, 10)}},
		{"sevenths", []models.LineItem{
			item(1, 1, 1, 1), item(2, 2, 1, 1), item(3, 3, 1, 1), item(4, 4, 1, 1),
			item(5, 5, 1, 1), item(6, 6, 1, 1), item(7, 7, 1, 1),
		}},
		{"skewed with zero-sale category", []models.LineItem{
			item(1, 1, 5, 123.45), item(2, 2, 1, 0.07), item(3, 3, 0, 0), item(4, 4, 2, 9.99),
		}},
		{"free items fall back to quantity", []models.LineItem{item(1, 1, 1, 0), item(2, 2, 3, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := []models.OrderRecord{order(1, 1, 1, models.OrderStatusCompleted, 1, at(2024, 1, 1, 1), tt.items...)}
			menu := menuPerformance(orders)

			sum := 0.0
			for _, m := range menu {
				if m.TotalSold < 1 {
					t.Errorf("category %d with no sales was reported", m.CategoryID)
				}
				sum += m.Contribution
			}
			if math.Abs(sum-100) > 0.1 {
				t.Errorf("contributions sum to %v, want 100 ± 0.1", sum)
			}
		})
	}
}

func TestApportion(t *testing.T) {
	got := apportion([]float64{1, 1, 1}, 10000)
	want := []int{3334, 3333, 3333}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("apportion mismatch (-want +got):\n%s", diff)
	}
	if got := apportion([]float64{0, 0}, 100); got[0] != 0 || got[1] != 0 {
		t.Errorf("zero weights should get nothing, got %v", got)
	}
}

func TestPeakWindows(t *testing.T) {
	var hist [24]int
	hist[3] = 1
	hist[12], hist[13] = 5, 5
	hist[19], hist[20] = 8, 8

	tests := []struct {
		name string
		opts PeakOptions
		want []models.PeakWindow
	}{
		{
			name: "top quartile floor, three windows",
			opts: PeakOptions{Quantile: 0.75, MaxWindows: 3},
			want: []models.PeakWindow{
				{StartHour: 19, EndHour: 21, Label: "19:00-21:00", OrderCount: 16},
				{StartHour: 12, EndHour: 14, Label: "12:00-14:00", OrderCount: 10},
				{StartHour: 3, EndHour: 4, Label: "03:00-04:00", OrderCount: 1},
			},
		},
		{
			name: "window cap",
			opts: PeakOptions{Quantile: 0.75, MaxWindows: 1},
			want: []models.PeakWindow{
				{StartHour: 19, EndHour: 21, Label: "19:00-21:00", OrderCount: 16},
			},
		},
		{
			name: "higher floor drops small hours",
			opts: PeakOptions{Quantile: 0.8, MaxWindows: 3},
			want: []models.PeakWindow{
				{StartHour: 19, EndHour: 21, Label: "19:00-21:00", OrderCount: 16},
				{StartHour: 12, EndHour: 14, Label: "12:00-14:00", OrderCount: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := peakWindows(hist, tt.opts)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("peak windows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPeakWindows_TieBreaksOnLowestHour(t *testing.T) {
	var hist [24]int
	hist[18] = 4
	hist[9] = 4
	got := peakWindows(hist, PeakOptions{Quantile: 0.75, MaxWindows: 3})
	if len(got) != 2 || got[0].StartHour != 9 || got[1].StartHour != 18 {
		t.Errorf("got %+v, want 09:00 window first", got)
	}
}

func TestRestaurantPerformances_AllRestaurants(t *testing.T) {
	e := newTestEngine()
	f := dailyFilter(at(2024, 1, 1, 0), at(2024, 1, 2, 0))
	orders := []models.OrderRecord{
		order(1, 1, 7, models.OrderStatusCompleted, 20, at(2024, 1, 1, 12)),
		order(2, 2, 8, models.OrderStatusCompleted, 50, at(2024, 1, 1, 13)),
	}
	perfs, err := e.RestaurantPerformances(f, orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(perfs) != 2 || perfs[0].RestaurantID != 8 || perfs[1].RestaurantID != 7 {
		t.Errorf("want restaurants ordered by revenue (8, 7), got %+v", perfs)
	}
}
