package analytics

import (
	"time"

	"github.com/chrisdamba/foodash/internal/models"
)

// Baseline carries the population sizes before the filter window starts.
type Baseline struct {
	Users  int
	Orders int
}

// GrowthSeries turns per-bucket new counts into cumulative totals and
// period-over-period growth rates. The growth rate is a signed relative
// change: (cur - prev) / prev, and 0 when prev is 0 or for the first bucket.
func GrowthSeries(buckets []Bucket, baseline int) []models.GrowthPoint {
	points := make([]models.GrowthPoint, len(buckets))
	total := baseline
	for i, b := range buckets {
		total += b.Count
		growth := 0.0
		if i > 0 {
			prev := float64(buckets[i-1].Count)
			growth = round(div(float64(b.Count)-prev, prev), 4)
		}
		points[i] = growthPoint(b, total, growth)
	}
	return points
}

// Growth computes user growth, order growth and the revenue series.
// Revenue counts every order in scope except cancelled ones.
func (e *Engine) Growth(f models.Filter, users []models.UserRecord, orders []models.OrderRecord, baseline Baseline) (*models.GrowthResponse, error) {
	if err := checkUsers(users); err != nil {
		return nil, err
	}
	if err := checkOrders(orders); err != nil {
		return nil, err
	}

	userBuckets, err := Aggregate(e.bucketer, f.StartDate, f.EndDate, f.Interval, users,
		func(u models.UserRecord) time.Time { return u.CreatedAt }, nil)
	if err != nil {
		return nil, err
	}

	scoped := make([]models.OrderRecord, 0, len(orders))
	for _, o := range orders {
		if f.MatchesOrder(o) {
			scoped = append(scoped, o)
		}
	}
	orderBuckets, err := Aggregate(e.bucketer, f.StartDate, f.EndDate, f.Interval, scoped,
		func(o models.OrderRecord) time.Time { return o.CreatedAt }, nil)
	if err != nil {
		return nil, err
	}

	revenue, err := e.RevenueSeries(f, orders)
	if err != nil {
		return nil, err
	}

	return &models.GrowthResponse{
		Interval:    f.Interval,
		UserGrowth:  GrowthSeries(userBuckets, baseline.Users),
		OrderGrowth: GrowthSeries(orderBuckets, baseline.Orders),
		Revenue:     revenue,
	}, nil
}

// RevenueSeries sums order totals per period for non-cancelled orders in scope.
func (e *Engine) RevenueSeries(f models.Filter, orders []models.OrderRecord) ([]models.RevenuePoint, error) {
	if err := checkOrders(orders); err != nil {
		return nil, err
	}
	billable := make([]models.OrderRecord, 0, len(orders))
	for _, o := range orders {
		if f.MatchesOrder(o) && !o.IsCancelled() {
			billable = append(billable, o)
		}
	}
	buckets, err := Aggregate(e.bucketer, f.StartDate, f.EndDate, f.Interval, billable,
		func(o models.OrderRecord) time.Time { return o.CreatedAt },
		func(o models.OrderRecord) float64 { return o.Total })
	if err != nil {
		return nil, err
	}
	points := make([]models.RevenuePoint, len(buckets))
	for i, b := range buckets {
		points[i] = revenuePoint(b)
	}
	return points, nil
}
