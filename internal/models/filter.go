package models

import "time"

// Filter bounds a dashboard computation. StartDate and EndDate are inclusive:
// every period touched by the range is reported.
type Filter struct {
	StartDate    time.Time    `json:"startDate"`
	EndDate      time.Time    `json:"endDate"`
	RestaurantID *int64       `json:"restaurantId,omitempty"`
	Status       *OrderStatus `json:"status,omitempty"`
	Interval     Interval     `json:"interval"`
}

// MatchesOrder applies the optional restaurant and status constraints.
// Time bounds are handled by the bucketing engine.
func (f Filter) MatchesOrder(o OrderRecord) bool {
	if f.RestaurantID != nil && o.RestaurantID != *f.RestaurantID {
		return false
	}
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	return true
}

// MatchesDelivery applies only the restaurant constraint. Status is an order
// attribute a delivery record does not carry, so it never narrows deliveries.
func (f Filter) MatchesDelivery(d DeliveryRecord) bool {
	return f.RestaurantID == nil || d.RestaurantID == *f.RestaurantID
}

// WithRestaurant returns a copy of f scoped to one restaurant.
func (f Filter) WithRestaurant(id int64) Filter {
	f.RestaurantID = &id
	return f
}
