package analytics

import (
	"sort"

	"github.com/chrisdamba/foodash/internal/models"
)

type deliveryAcc struct {
	total     int
	completed int
	onTime    int
	minutes   float64
	distance  float64
	ratingSum float64
	rated     int
}

func (a *deliveryAcc) averageMinutes() float64 {
	return div(a.minutes, float64(a.completed))
}

// DeliveryMetrics aggregates deliveries started inside the window. Delivery
// time is completedAt - startedAt in minutes; a delivery is on time when it
// completed no later than its estimate plus the configured grace.
func (e *Engine) DeliveryMetrics(f models.Filter, deliveries []models.DeliveryRecord) (*models.DeliveryMetrics, error) {
	if err := checkDeliveries(deliveries); err != nil {
		return nil, err
	}
	_, from, to, err := e.window(f)
	if err != nil {
		return nil, err
	}

	var overall deliveryAcc
	couriers := make(map[int64]*deliveryAcc)
	zones := make(map[string]*deliveryAcc)

	for _, d := range deliveries {
		if !f.MatchesDelivery(d) || !inWindow(d.StartedAt, from, to) {
			continue
		}
		c, ok := couriers[d.DeliveryPersonID]
		if !ok {
			c = &deliveryAcc{}
			couriers[d.DeliveryPersonID] = c
		}
		z, ok := zones[d.Zone]
		if !ok {
			z = &deliveryAcc{}
			zones[d.Zone] = z
		}
		for _, acc := range []*deliveryAcc{&overall, c, z} {
			e.accumulate(acc, d)
		}
	}

	metrics := &models.DeliveryMetrics{
		TotalDeliveries:     overall.total,
		CompletedDeliveries: overall.completed,
		AverageDeliveryTime: round(overall.averageMinutes(), 2),
		OnTimeDeliveryRate:  rate(float64(overall.onTime), float64(overall.completed)),
		Couriers:            make([]models.CourierStat, 0, len(couriers)),
		Zones:               make([]models.ZoneStat, 0, len(zones)),
	}
	for id, acc := range couriers {
		metrics.Couriers = append(metrics.Couriers, courierStat(id, acc))
	}
	sort.Slice(metrics.Couriers, func(i, j int) bool {
		return metrics.Couriers[i].DeliveryPersonID < metrics.Couriers[j].DeliveryPersonID
	})
	for zone, acc := range zones {
		metrics.Zones = append(metrics.Zones, zoneStat(zone, acc))
	}
	sort.Slice(metrics.Zones, func(i, j int) bool {
		return metrics.Zones[i].Zone < metrics.Zones[j].Zone
	})
	return metrics, nil
}

func (e *Engine) accumulate(acc *deliveryAcc, d models.DeliveryRecord) {
	acc.total++
	acc.distance += d.Distance
	if d.Rating != nil {
		acc.ratingSum += *d.Rating
		acc.rated++
	}
	if !d.IsCompleted() {
		return
	}
	acc.completed++
	acc.minutes += d.CompletedAt.Sub(d.StartedAt).Minutes()
	if !d.CompletedAt.After(d.EstimatedDeliveryTime.Add(e.opts.OnTimeGrace)) {
		acc.onTime++
	}
}
