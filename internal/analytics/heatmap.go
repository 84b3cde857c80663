package analytics

import (
	"time"

	"github.com/chrisdamba/foodash/internal/models"
)

const (
	daysPerWeek = 7
	hoursPerDay = 24
)

// grid is indexed [time.Weekday][hour].
type grid [daysPerWeek][hoursPerDay]int

func (e *Engine) buildGrid(orders []models.OrderRecord) grid {
	var g grid
	loc := e.bucketer.Location()
	for _, o := range orders {
		t := o.CreatedAt.In(loc)
		g[t.Weekday()][t.Hour()]++
	}
	return g
}

// Heatmap counts filtered orders per (day of week, hour). All 168 cells are
// always present, Sunday first, hours ascending.
func (e *Engine) Heatmap(f models.Filter, orders []models.OrderRecord) (*models.HeatmapResponse, error) {
	if err := checkOrders(orders); err != nil {
		return nil, err
	}
	_, from, to, err := e.window(f)
	if err != nil {
		return nil, err
	}
	scoped := scopeOrders(f, orders, from, to)
	g := e.buildGrid(scoped)

	resp := &models.HeatmapResponse{
		Cells:       make([]models.HeatmapCell, 0, daysPerWeek*hoursPerDay),
		TotalOrders: len(scoped),
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		for hour := 0; hour < hoursPerDay; hour++ {
			count := g[day][hour]
			resp.Cells = append(resp.Cells, heatmapCell(day, hour, count))
			resp.MaxCount = max(resp.MaxCount, count)
		}
	}
	return resp, nil
}

// HourlyHistogram collapses the heatmap into order counts per hour of day.
func HourlyHistogram(h *models.HeatmapResponse) [hoursPerDay]int {
	var hist [hoursPerDay]int
	for _, c := range h.Cells {
		if c.Hour >= 0 && c.Hour < hoursPerDay {
			hist[c.Hour] += c.Count
		}
	}
	return hist
}
