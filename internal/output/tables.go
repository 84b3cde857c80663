package output

import (
	"strconv"
	"strings"

	"github.com/chrisdamba/foodash/internal/models"
)

// table is one flat projection of a snapshot. schema is a zero row the
// Parquet writer derives its schema from.
type table struct {
	name   string
	schema any
	rows   []row
}

const (
	tableSeries      = "series"
	tableRetention   = "retention"
	tableHeatmap     = "heatmap"
	tableRestaurants = "restaurants"
	tableDelivery    = "delivery"
	tableRankings    = "rankings"
)

// tables flattens the sections present in the snapshot. Empty tables are
// left out.
func (s *Snapshot) tables() []table {
	all := []table{
		{tableSeries, new(SeriesRow), s.seriesRows()},
		{tableRetention, new(RetentionRow), s.retentionRows()},
		{tableHeatmap, new(HeatmapRow), s.heatmapRows()},
		{tableRestaurants, new(RestaurantRow), s.restaurantRows()},
		{tableDelivery, new(DeliveryRow), s.deliveryRows()},
		{tableRankings, new(RankingRow), s.rankingRows()},
	}
	out := all[:0]
	for _, t := range all {
		if len(t.rows) > 0 {
			out = append(out, t)
		}
	}
	return out
}

func (s *Snapshot) seriesRows() []row {
	g := s.Growth
	if g == nil {
		return nil
	}
	var rows []row
	growth := func(metric string, points []models.GrowthPoint) {
		for _, p := range points {
			rows = append(rows, SeriesRow{
				SnapshotID:  s.ID,
				Metric:      metric,
				Period:      p.Period,
				PeriodStart: p.PeriodDate.UnixMilli(),
				Count:       int64(p.NewCount),
				Total:       int64(p.Total),
				GrowthRate:  p.GrowthRate,
			})
		}
	}
	growth("users", g.UserGrowth)
	growth("orders", g.OrderGrowth)
	for _, p := range g.Revenue {
		rows = append(rows, SeriesRow{
			SnapshotID:  s.ID,
			Metric:      "revenue",
			Period:      p.Period,
			PeriodStart: p.PeriodDate.UnixMilli(),
			Count:       int64(p.Orders),
			Revenue:     p.Revenue,
		})
	}
	return rows
}

func (s *Snapshot) retentionRows() []row {
	if s.Retention == nil {
		return nil
	}
	var rows []row
	for _, c := range s.Retention.Cohorts {
		for _, p := range c.RetentionData {
			rows = append(rows, RetentionRow{
				SnapshotID:    s.ID,
				Cohort:        c.Cohort,
				InitialUsers:  int64(c.InitialUsers),
				Offset:        int64(p.Period),
				ActiveUsers:   int64(p.ActiveUsers),
				RetentionRate: p.RetentionRate,
			})
		}
	}
	return rows
}

func (s *Snapshot) heatmapRows() []row {
	if s.Heatmap == nil {
		return nil
	}
	rows := make([]row, 0, len(s.Heatmap.Cells))
	for _, c := range s.Heatmap.Cells {
		rows = append(rows, HeatmapRow{
			SnapshotID: s.ID,
			DayOfWeek:  int32(c.DayOfWeek),
			DayName:    c.DayName,
			Hour:       int32(c.Hour),
			Count:      int64(c.Count),
		})
	}
	return rows
}

func (s *Snapshot) restaurantRows() []row {
	perfs := s.Restaurants
	if s.Restaurant != nil {
		perfs = append([]models.RestaurantPerformance{*s.Restaurant}, perfs...)
	}
	rows := make([]row, 0, len(perfs))
	for _, p := range perfs {
		labels := make([]string, len(p.PeakTimes))
		for i, w := range p.PeakTimes {
			labels[i] = w.Label
		}
		rows = append(rows, RestaurantRow{
			SnapshotID:            s.ID,
			RestaurantID:          p.RestaurantID,
			RestaurantName:        p.RestaurantName,
			TotalOrders:           int64(p.TotalOrders),
			TotalRevenue:          p.TotalRevenue,
			AverageOrderValue:     p.AverageOrderValue,
			OrderFrequency:        p.OrderFrequency,
			CancellationRate:      p.CancellationRate,
			CustomerRetentionRate: p.CustomerRetentionRate,
			PeakTimes:             strings.Join(labels, ";"),
		})
	}
	return rows
}

func (s *Snapshot) deliveryRows() []row {
	d := s.Delivery
	if d == nil {
		return nil
	}
	rows := []row{DeliveryRow{
		SnapshotID:          s.ID,
		Scope:               "overall",
		Key:                 "all",
		Deliveries:          int64(d.TotalDeliveries),
		AverageDeliveryTime: d.AverageDeliveryTime,
		OnTimeDeliveryRate:  d.OnTimeDeliveryRate,
	}}
	for _, c := range d.Couriers {
		rows = append(rows, DeliveryRow{
			SnapshotID:          s.ID,
			Scope:               "courier",
			Key:                 strconv.FormatInt(c.DeliveryPersonID, 10),
			Deliveries:          int64(c.TotalDeliveries),
			AverageDeliveryTime: c.AverageDeliveryTime,
			OnTimeDeliveryRate:  c.OnTimeDeliveryRate,
			AverageRating:       c.AverageRating,
		})
	}
	for _, z := range d.Zones {
		rows = append(rows, DeliveryRow{
			SnapshotID:          s.ID,
			Scope:               "zone",
			Key:                 z.Zone,
			Deliveries:          int64(z.OrderCount),
			AverageDeliveryTime: z.AverageDeliveryTime,
			AverageDistance:     z.AverageDistance,
		})
	}
	return rows
}

func (s *Snapshot) rankingRows() []row {
	var rows []row
	for i, r := range s.TopRestaurants {
		rows = append(rows, RankingRow{
			SnapshotID: s.ID,
			Kind:       "restaurant",
			Rank:       int32(i + 1),
			ID:         r.RestaurantID,
			Name:       r.RestaurantName,
			Volume:     int64(r.Orders),
			Revenue:    r.Revenue,
		})
	}
	for i, p := range s.TopProducts {
		rows = append(rows, RankingRow{
			SnapshotID: s.ID,
			Kind:       "product",
			Rank:       int32(i + 1),
			ID:         p.ProductID,
			Name:       p.ProductName,
			Volume:     int64(p.Quantity),
			Revenue:    p.Revenue,
		})
	}
	return rows
}
