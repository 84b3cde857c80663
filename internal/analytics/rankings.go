package analytics

import (
	"sort"

	"github.com/chrisdamba/foodash/internal/models"
)

// TopRestaurants ranks restaurants by revenue of non-cancelled orders.
func (e *Engine) TopRestaurants(f models.Filter, orders []models.OrderRecord) ([]models.RestaurantRanking, error) {
	if err := checkOrders(orders); err != nil {
		return nil, err
	}
	_, from, to, err := e.window(f)
	if err != nil {
		return nil, err
	}

	type acc struct {
		ranking models.RestaurantRanking
		revenue money
	}
	byID := make(map[int64]*acc)
	for _, o := range scopeOrders(f, orders, from, to) {
		if o.IsCancelled() {
			continue
		}
		a, ok := byID[o.RestaurantID]
		if !ok {
			a = &acc{ranking: models.RestaurantRanking{RestaurantID: o.RestaurantID, RestaurantName: o.RestaurantName}}
			byID[o.RestaurantID] = a
		}
		a.ranking.Orders++
		a.revenue.add(o.Total)
	}

	out := make([]models.RestaurantRanking, 0, len(byID))
	for _, a := range byID {
		a.ranking.Revenue = a.revenue.float()
		out = append(out, a.ranking)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].RestaurantID < out[j].RestaurantID
	})
	return limit(out, e.opts.TopN), nil
}

// TopProducts ranks products by quantity sold in non-cancelled orders.
func (e *Engine) TopProducts(f models.Filter, orders []models.OrderRecord) ([]models.ProductRanking, error) {
	if err := checkOrders(orders); err != nil {
		return nil, err
	}
	_, from, to, err := e.window(f)
	if err != nil {
		return nil, err
	}

	type acc struct {
		ranking models.ProductRanking
		revenue money
	}
	byID := make(map[int64]*acc)
	for _, o := range scopeOrders(f, orders, from, to) {
		if o.IsCancelled() {
			continue
		}
		for _, item := range o.Items {
			a, ok := byID[item.ProductID]
			if !ok {
				a = &acc{ranking: models.ProductRanking{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					CategoryID:  item.CategoryID,
				}}
				byID[item.ProductID] = a
			}
			a.ranking.Quantity += item.Quantity
			a.revenue.add(item.LineRevenue)
		}
	}

	out := make([]models.ProductRanking, 0, len(byID))
	for _, a := range byID {
		a.ranking.Revenue = a.revenue.float()
		out = append(out, a.ranking)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].ProductID < out[j].ProductID
	})
	return limit(out, e.opts.TopN), nil
}

func limit[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
