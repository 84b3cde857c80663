package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/chrisdamba/foodash/internal/dashboard"
	"github.com/chrisdamba/foodash/internal/models"
)

func TestBuildRequest(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	cfg := &models.Config{Interval: models.IntervalDaily}
	lastDay := time.Date(2024, 3, 31, 0, 0, 0, 0, loc)

	t.Run("defaults", func(t *testing.T) {
		req, err := buildRequest(dashboardOptions{view: "growth"}, cfg, loc, lastDay)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := models.Filter{
			StartDate: time.Date(2024, 3, 2, 0, 0, 0, 0, loc),
			EndDate:   lastDay,
			Interval:  models.IntervalDaily,
		}
		if diff := cmp.Diff(want, req.Filter); diff != "" {
			t.Errorf("filter mismatch (-want +got):\n%s", diff)
		}
		if req.View != dashboard.ViewGrowth {
			t.Errorf("view = %q, want growth", req.View)
		}
	})

	t.Run("explicit", func(t *testing.T) {
		opts := dashboardOptions{
			view:          "restaurant-performance",
			start:         "2024-01-01",
			end:           "2024-01-31T23:00:00Z",
			interval:      "weekly",
			restaurantID:  0,
			hasRestaurant: true,
			status:        "completed",
		}
		req, err := buildRequest(opts, cfg, loc, lastDay)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f := req.Filter
		if !f.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, loc)) {
			t.Errorf("start = %v", f.StartDate)
		}
		if !f.EndDate.Equal(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)) || f.EndDate.Location() != loc {
			t.Errorf("end = %v, want 2024-01-31T23:00Z in %v", f.EndDate, loc)
		}
		if f.Interval != models.IntervalWeekly {
			t.Errorf("interval = %q, want weekly", f.Interval)
		}
		// an explicit zero id is kept so the service can reject it
		if f.RestaurantID == nil || *f.RestaurantID != 0 {
			t.Errorf("restaurant id = %v, want explicit 0", f.RestaurantID)
		}
		if f.Status == nil || *f.Status != models.OrderStatusCompleted {
			t.Errorf("status = %v, want completed", f.Status)
		}
	})

	t.Run("unknown view", func(t *testing.T) {
		_, err := buildRequest(dashboardOptions{view: "revenue"}, cfg, loc, lastDay)
		if !errors.Is(err, dashboard.ErrUnknownView) {
			t.Errorf("got %v, want ErrUnknownView", err)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := buildRequest(dashboardOptions{view: "growth", start: "01/02/2024"}, cfg, loc, lastDay)
		if err == nil {
			t.Error("expected an error for a malformed start date")
		}
	})
}

func TestOpenSourceUnknown(t *testing.T) {
	if _, err := openSource(t.Context(), &models.Config{}, time.UTC, "mysql"); err == nil {
		t.Error("expected an error for an unknown source")
	}
}
