package simulator

import (
	"math"
	"time"

	"github.com/chrisdamba/foodash/internal/models"
)

type DeliveryCluster struct {
	Name           string
	TrafficDensity float64
	SpeedRange     struct {
		Min float64
		Max float64
	}
	MeanDistance float64 // km
	PeakSlowdown float64
}

var DeliveryClusters = map[string]DeliveryCluster{
	"urban_core": {
		Name:           "urban_core",
		TrafficDensity: 1.5,
		SpeedRange: struct {
			Min float64
			Max float64
		}{15, 35},
		MeanDistance: 1.8,
		PeakSlowdown: 0.7,
	},
	"urban_residential": {
		Name:           "urban_residential",
		TrafficDensity: 1.2,
		SpeedRange: struct {
			Min float64
			Max float64
		}{20, 45},
		MeanDistance: 3.2,
		PeakSlowdown: 0.8,
	},
	"suburban": {
		Name:           "suburban",
		TrafficDensity: 0.8,
		SpeedRange: struct {
			Min float64
			Max float64
		}{25, 55},
		MeanDistance: 5.5,
		PeakSlowdown: 0.9,
	},
}

// clusterFor maps a zone to its traffic cluster. Zones without a cluster of
// their own behave like residential areas.
func clusterFor(zone string) DeliveryCluster {
	if c, ok := DeliveryClusters[zone]; ok {
		return c
	}
	c := DeliveryClusters["urban_residential"]
	c.Name = zone
	return c
}

func (s *Simulator) generateNormalized(mean, std, min, max float64) float64 {
	// Box-Muller transform for normal distribution
	u1 := 1 - s.Rng.Float64() // (0, 1], keeps the log finite
	u2 := s.Rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

	return math.Max(min, math.Min(max, mean+z*std))
}

func (s *Simulator) calculateAdjustedDeliverySpeed(courier models.Courier, zone string, t time.Time) float64 {
	cluster := clusterFor(zone)

	speed := courier.Speed * getTimeBasedSpeedMultiplier(t) / cluster.TrafficDensity
	if isWeekdayPeakHour(t.Hour()) {
		speed *= cluster.PeakSlowdown
	}

	// clamp to cluster's speed range
	return math.Max(cluster.SpeedRange.Min, math.Min(cluster.SpeedRange.Max, speed))
}

func getTimeBasedSpeedMultiplier(t time.Time) float64 {
	hour := t.Hour()
	multiplier := 1.0

	// rush hour traffic
	if (hour >= 7 && hour <= 9) || (hour >= 16 && hour <= 18) {
		multiplier *= 0.7
	}
	// empty roads at night
	if hour >= 22 || hour <= 4 {
		multiplier *= 1.3
	}
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		if hour >= 10 && hour <= 20 {
			multiplier *= 0.85
		}
	}
	return multiplier
}
