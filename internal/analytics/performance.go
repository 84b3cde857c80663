package analytics

import (
	"math"
	"sort"

	"github.com/chrisdamba/foodash/internal/models"
)

// contributionUnits is 100% expressed in hundredths of a percent.
const contributionUnits = 10000

// RestaurantPerformance summarizes one restaurant over the filter window.
// Average order value and total revenue are taken over every order in scope,
// cancelled ones included; menu performance only counts non-cancelled orders.
func (e *Engine) RestaurantPerformance(f models.Filter, restaurantID int64, orders []models.OrderRecord) (*models.RestaurantPerformance, error) {
	if restaurantID <= 0 {
		return nil, &InvalidRangeError{Reason: "restaurantId must be positive"}
	}
	if err := checkOrders(orders); err != nil {
		return nil, err
	}
	rf := f.WithRestaurant(restaurantID)
	periods, from, to, err := e.window(rf)
	if err != nil {
		return nil, err
	}
	scoped := scopeOrders(rf, orders, from, to)

	perf := &models.RestaurantPerformance{
		RestaurantID:    restaurantID,
		TotalOrders:     len(scoped),
		MenuPerformance: menuPerformance(scoped),
	}

	var gross money
	cancelled := 0
	activeDays := make(map[string]struct{})
	loc := e.bucketer.Location()
	for _, o := range scoped {
		gross.add(o.Total)
		if o.IsCancelled() {
			cancelled++
		}
		activeDays[o.CreatedAt.In(loc).Format("2006-01-02")] = struct{}{}
		if perf.RestaurantName == "" {
			perf.RestaurantName = o.RestaurantName
		}
	}
	perf.TotalRevenue = gross.float()
	perf.AverageOrderValue = roundMoney(div(perf.TotalRevenue, float64(len(scoped))))
	perf.OrderFrequency = round(div(float64(len(scoped)), float64(len(activeDays))), 2)
	perf.CancellationRate = rate(float64(cancelled), float64(len(scoped)))
	perf.CustomerRetentionRate = customerRetention(periods, scoped).RetentionRate

	heat, err := e.Heatmap(rf, orders)
	if err != nil {
		return nil, err
	}
	perf.PeakTimes = peakWindows(HourlyHistogram(heat), e.opts.Peak)
	return perf, nil
}

// RestaurantPerformances reports every restaurant with at least one order in
// the window, highest total revenue first.
func (e *Engine) RestaurantPerformances(f models.Filter, orders []models.OrderRecord) ([]models.RestaurantPerformance, error) {
	if err := checkOrders(orders); err != nil {
		return nil, err
	}
	_, from, to, err := e.window(f)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{})
	var ids []int64
	for _, o := range scopeOrders(f, orders, from, to) {
		if _, ok := seen[o.RestaurantID]; !ok {
			seen[o.RestaurantID] = struct{}{}
			ids = append(ids, o.RestaurantID)
		}
	}

	out := make([]models.RestaurantPerformance, 0, len(ids))
	for _, id := range ids {
		perf, err := e.RestaurantPerformance(f, id, orders)
		if err != nil {
			return nil, err
		}
		out = append(out, *perf)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalRevenue != out[j].TotalRevenue {
			return out[i].TotalRevenue > out[j].TotalRevenue
		}
		return out[i].RestaurantID < out[j].RestaurantID
	})
	return out, nil
}

type categoryAcc struct {
	id      int64
	name    string
	sold    int
	revenue money
}

func menuPerformance(orders []models.OrderRecord) []models.MenuPerformance {
	byCategory := make(map[int64]*categoryAcc)
	for _, o := range orders {
		if o.IsCancelled() {
			continue
		}
		for _, item := range o.Items {
			if item.Quantity <= 0 {
				continue
			}
			acc, ok := byCategory[item.CategoryID]
			if !ok {
				acc = &categoryAcc{id: item.CategoryID, name: item.CategoryName}
				byCategory[item.CategoryID] = acc
			}
			acc.sold += item.Quantity
			acc.revenue.add(item.LineRevenue)
		}
	}

	cats := make([]*categoryAcc, 0, len(byCategory))
	for _, acc := range byCategory {
		cats = append(cats, acc)
	}
	sort.Slice(cats, func(i, j int) bool {
		ri, rj := cats[i].revenue.float(), cats[j].revenue.float()
		if ri != rj {
			return ri > rj
		}
		return cats[i].id < cats[j].id
	})

	weights := make([]float64, len(cats))
	totalRevenue := 0.0
	for i, c := range cats {
		weights[i] = c.revenue.float()
		totalRevenue += weights[i]
	}
	if totalRevenue == 0 {
		// free items only: share by quantity so the set still sums to 100%
		for i, c := range cats {
			weights[i] = float64(c.sold)
		}
	}
	shares := apportion(weights, contributionUnits)

	out := make([]models.MenuPerformance, len(cats))
	for i, c := range cats {
		out[i] = models.MenuPerformance{
			CategoryID:   c.id,
			CategoryName: c.name,
			TotalSold:    c.sold,
			Revenue:      c.revenue.float(),
			Contribution: float64(shares[i]) / 100,
		}
	}
	return out
}

// apportion splits units proportionally to weights with the largest-remainder
// method, so the parts always add up to exactly units. Ties go to the lower index.
func apportion(weights []float64, units int) []int {
	parts := make([]int, len(weights))
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return parts
	}

	type rem struct {
		idx  int
		frac float64
	}
	rems := make([]rem, len(weights))
	assigned := 0
	for i, w := range weights {
		exact := w / total * float64(units)
		parts[i] = int(math.Floor(exact))
		assigned += parts[i]
		rems[i] = rem{idx: i, frac: exact - float64(parts[i])}
	}
	sort.SliceStable(rems, func(i, j int) bool {
		return rems[i].frac > rems[j].frac
	})
	for i := 0; assigned < units && i < len(rems); i++ {
		parts[rems[i].idx]++
		assigned++
	}
	return parts
}

// peakWindows finds contiguous hour runs whose counts are strictly above the
// configured quantile of the 24 hourly counts. Windows do not wrap past midnight.
func peakWindows(hist [hoursPerDay]int, opts PeakOptions) []models.PeakWindow {
	windows := make([]models.PeakWindow, 0)
	total := 0
	for _, c := range hist {
		total += c
	}
	if total == 0 || opts.MaxWindows <= 0 {
		return windows
	}

	floor := quantile(hist[:], opts.Quantile)
	for h := 0; h < hoursPerDay; {
		if hist[h] <= floor {
			h++
			continue
		}
		start, count := h, 0
		for h < hoursPerDay && hist[h] > floor {
			count += hist[h]
			h++
		}
		windows = append(windows, peakWindow(start, h, count))
	}

	sort.SliceStable(windows, func(i, j int) bool {
		if windows[i].OrderCount != windows[j].OrderCount {
			return windows[i].OrderCount > windows[j].OrderCount
		}
		return windows[i].StartHour < windows[j].StartHour
	})
	if len(windows) > opts.MaxWindows {
		windows = windows[:opts.MaxWindows]
	}
	return windows
}

// quantile uses the nearest-rank method on a copy of values.
func quantile(values []int, q float64) int {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	q = clamp(q, 0, 1)
	idx := int(math.Ceil(q*float64(len(sorted)))) - 1
	idx = max(0, min(idx, len(sorted)-1))
	return sorted[idx]
}
