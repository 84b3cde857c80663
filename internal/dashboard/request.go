package dashboard

import (
	"fmt"
	"time"

	"github.com/chrisdamba/foodash/internal/analytics"
	"github.com/chrisdamba/foodash/internal/models"
)

type View string

const (
	ViewGrowth                View = "growth"
	ViewRetention             View = "retention"
	ViewHeatmap               View = "heatmap"
	ViewRestaurantPerformance View = "restaurant-performance"
	ViewDeliveryMetrics       View = "delivery-metrics"
	ViewFullDashboard         View = "full-dashboard"
)

var views = []View{
	ViewGrowth,
	ViewRetention,
	ViewHeatmap,
	ViewRestaurantPerformance,
	ViewDeliveryMetrics,
	ViewFullDashboard,
}

func ParseView(s string) (View, error) {
	for _, v := range views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownView, s)
}

type Request struct {
	Filter models.Filter
	View   View
}

// Result is a plain record tree. Only the sections the view asked for are
// set; a section whose calculator failed is nil and listed in Warnings.
type Result struct {
	View           View                           `json:"view"`
	Filter         models.Filter                  `json:"filter"`
	GeneratedAt    time.Time                      `json:"generatedAt"`
	Growth         *models.GrowthResponse         `json:"growth,omitempty"`
	Retention      *models.RetentionResponse      `json:"retention,omitempty"`
	Heatmap        *models.HeatmapResponse        `json:"heatmap,omitempty"`
	Restaurant     *models.RestaurantPerformance  `json:"restaurant,omitempty"`
	Restaurants    []models.RestaurantPerformance `json:"restaurants,omitempty"`
	Delivery       *models.DeliveryMetrics        `json:"delivery,omitempty"`
	TopRestaurants []models.RestaurantRanking     `json:"topRestaurants,omitempty"`
	TopProducts    []models.ProductRanking        `json:"topProducts,omitempty"`
	Warnings       []PartialComputationWarning    `json:"warnings,omitempty"`
}

// section names, in the order they appear in a Result
const (
	sectionGrowth         = "growth"
	sectionRetention      = "retention"
	sectionHeatmap        = "heatmap"
	sectionRestaurant     = "restaurant"
	sectionRestaurants    = "restaurants"
	sectionDelivery       = "delivery"
	sectionTopRestaurants = "topRestaurants"
	sectionTopProducts    = "topProducts"
)

var sectionOrder = map[string]int{
	sectionGrowth:         0,
	sectionRetention:      1,
	sectionHeatmap:        2,
	sectionRestaurant:     3,
	sectionRestaurants:    4,
	sectionDelivery:       5,
	sectionTopRestaurants: 6,
	sectionTopProducts:    7,
}

// needs lists the record sets a view reads.
type needs struct {
	orders, users, deliveries, baseline bool
}

func (r Request) needs() needs {
	switch r.View {
	case ViewGrowth:
		return needs{orders: true, users: true, baseline: true}
	case ViewRetention:
		return needs{orders: true, users: true}
	case ViewHeatmap, ViewRestaurantPerformance:
		return needs{orders: true}
	case ViewDeliveryMetrics:
		return needs{deliveries: true}
	default:
		return needs{orders: true, users: true, deliveries: true, baseline: true}
	}
}

func (r Request) sections() []string {
	restaurant := sectionRestaurants
	if r.Filter.RestaurantID != nil {
		restaurant = sectionRestaurant
	}
	switch r.View {
	case ViewGrowth:
		return []string{sectionGrowth}
	case ViewRetention:
		return []string{sectionRetention}
	case ViewHeatmap:
		return []string{sectionHeatmap}
	case ViewRestaurantPerformance:
		return []string{restaurant}
	case ViewDeliveryMetrics:
		return []string{sectionDelivery}
	default:
		return []string{
			sectionGrowth, sectionRetention, sectionHeatmap, restaurant,
			sectionDelivery, sectionTopRestaurants, sectionTopProducts,
		}
	}
}

// validate rejects a request before any I/O happens.
func (r Request) validate(b analytics.Bucketer) error {
	if _, err := ParseView(string(r.View)); err != nil {
		return err
	}
	f := r.Filter
	if f.StartDate.IsZero() || f.EndDate.IsZero() {
		return &analytics.InvalidRangeError{Start: f.StartDate, End: f.EndDate, Reason: "startDate and endDate are required"}
	}
	if err := b.ValidateRange(f.StartDate, f.EndDate, f.Interval); err != nil {
		return err
	}
	if f.RestaurantID != nil && *f.RestaurantID <= 0 {
		return &analytics.InvalidRangeError{Reason: fmt.Sprintf("restaurantId %d must be positive", *f.RestaurantID)}
	}
	if f.Status != nil && !f.Status.Valid() {
		return &analytics.InvalidRangeError{Reason: fmt.Sprintf("unknown status %q", *f.Status)}
	}
	return nil
}
