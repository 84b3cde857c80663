// Package simulator generates a consistent synthetic food-delivery history:
// a catalog, users who sign up over time, and orders with their deliveries
// following daily and weekly demand patterns. The same seed always yields
// the same dataset.
package simulator

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/chrisdamba/foodash/internal/factories"
	"github.com/chrisdamba/foodash/internal/logging"
	"github.com/chrisdamba/foodash/internal/models"
)

// share of customers that signed up before the simulated period
const existingCustomerShare = 0.3

// Dataset is everything one simulation run produced.
type Dataset struct {
	Start       time.Time
	End         time.Time
	Users       []models.UserRecord
	Restaurants []models.Restaurant
	Categories  []models.Category
	Products    []models.Product
	Couriers    []models.Courier
	Orders      []models.OrderRecord
	Deliveries  []models.DeliveryRecord
}

type Simulator struct {
	Config   models.SeedConfig
	Location *time.Location
	Rng      *rand.Rand
	// Progress, when set, is called after each simulated day.
	Progress func(done, total int)

	logger zerolog.Logger

	userFactory       *factories.UserFactory
	restaurantFactory *factories.RestaurantFactory
	menuFactory       *factories.MenuItemFactory
	partnerFactory    *factories.DeliveryPartnerFactory

	start, end     time.Time
	profile        weekProfile
	customers      []factories.Customer // by signup time
	maxOrderWeight float64
	restaurantPick []float64
	menus          map[int64][]models.Product
	categoryNames  map[int64]string
	couriersByZone map[string][]models.Courier

	data *Dataset
}

func NewSimulator(cfg models.SeedConfig, loc *time.Location) *Simulator {
	if loc == nil {
		loc = time.UTC
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Simulator{
		Config:            cfg,
		Location:          loc,
		Rng:               rng,
		logger:            logging.With().Str("component", "simulator").Logger(),
		userFactory:       factories.NewUserFactory(rng),
		restaurantFactory: factories.NewRestaurantFactory(rng),
		menuFactory:       factories.NewMenuItemFactory(rng),
		partnerFactory:    factories.NewDeliveryPartnerFactory(rng),
		profile:           newWeekProfile(),
	}
}

// Generate runs the simulation day by day. It checks ctx between days.
func (s *Simulator) Generate(ctx context.Context) (*Dataset, error) {
	if s.Config.Restaurants < 1 || s.Config.Couriers < 1 || s.Config.Days < 1 {
		return nil, errors.New("simulator: need at least one restaurant, courier and day")
	}
	if len(s.Config.Categories) == 0 {
		return nil, errors.New("simulator: no menu categories configured")
	}

	s.start = s.startDate()
	s.end = s.start.AddDate(0, 0, s.Config.Days)
	s.data = &Dataset{Start: s.start, End: s.end}
	s.initializeData()

	s.logger.Info().
		Time("start", s.start).
		Time("end", s.end).
		Int("customers", len(s.customers)).
		Int("restaurants", len(s.data.Restaurants)).
		Msg("simulation starts")

	for day := 0; day < s.Config.Days; day++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.simulateDay(s.start.AddDate(0, 0, day))
		if s.Progress != nil {
			s.Progress(day+1, s.Config.Days)
		}
	}

	s.logger.Info().
		Int("orders", len(s.data.Orders)).
		Int("deliveries", len(s.data.Deliveries)).
		Msg("simulation completed")
	return s.data, nil
}

func (s *Simulator) startDate() time.Time {
	d := s.Config.StartDate
	if d.IsZero() {
		d = time.Now().In(s.Location).AddDate(0, 0, -s.Config.Days)
	}
	d = d.In(s.Location)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.Location)
}

func (s *Simulator) initializeData() {
	var nextUser int64

	s.data.Categories = s.menuFactory.CreateCategories(s.Config.Categories)
	s.categoryNames = make(map[int64]string, len(s.data.Categories))
	for _, c := range s.data.Categories {
		s.categoryNames[c.ID] = c.Name
	}

	s.menus = make(map[int64][]models.Product)
	var nextProduct int64
	for i := 1; i <= s.Config.Restaurants; i++ {
		nextUser++
		s.data.Users = append(s.data.Users, s.userFactory.CreateStaff(nextUser, models.RoleRestaurant, s.start))

		r := s.restaurantFactory.CreateRestaurant(int64(i), nextUser, s.Config.Zones)
		s.data.Restaurants = append(s.data.Restaurants, r)
		s.restaurantPick = append(s.restaurantPick, r.Rating*r.Rating)

		items := 4 + s.Rng.Intn(5)
		for j := 0; j < items; j++ {
			nextProduct++
			p := s.menuFactory.CreateMenuItem(nextProduct, r, s.data.Categories)
			s.menus[r.ID] = append(s.menus[r.ID], p)
			s.data.Products = append(s.data.Products, p)
		}
	}

	s.couriersByZone = make(map[string][]models.Courier)
	for i := 1; i <= s.Config.Couriers; i++ {
		nextUser++
		s.data.Users = append(s.data.Users, s.userFactory.CreateStaff(nextUser, models.RoleCourier, s.start))

		zone := ""
		if len(s.Config.Zones) > 0 {
			zone = s.Config.Zones[(i-1)%len(s.Config.Zones)]
		}
		c := s.partnerFactory.CreateDeliveryPartner(int64(i), nextUser, zone)
		s.data.Couriers = append(s.data.Couriers, c)
		s.couriersByZone[zone] = append(s.couriersByZone[zone], c)
	}

	existing := int(math.Round(float64(s.Config.Users) * existingCustomerShare))
	for i := 0; i < s.Config.Users; i++ {
		nextUser++
		from, to := s.start, s.end
		if i < existing {
			from, to = s.start.AddDate(0, 0, -30), s.start
		}
		c := s.userFactory.CreateCustomer(nextUser, from, to)
		s.customers = append(s.customers, c)
		s.data.Users = append(s.data.Users, c.Record)
		s.maxOrderWeight = math.Max(s.maxOrderWeight, c.OrderFrequency*c.PeakHourBias)
	}
	sort.SliceStable(s.customers, func(i, j int) bool {
		return s.customers[i].Record.CreatedAt.Before(s.customers[j].Record.CreatedAt)
	})
}

func (s *Simulator) simulateDay(day time.Time) {
	for hour := 0; hour < 24; hour++ {
		at := day.Add(time.Duration(hour) * time.Hour)
		expected := float64(s.Config.OrdersPerDay) * s.profile[at.Weekday()][hour]

		n := poisson(s.Rng, expected)
		offsets := make([]int, n)
		for i := range offsets {
			offsets[i] = s.Rng.Intn(3600)
		}
		sort.Ints(offsets)
		for _, sec := range offsets {
			s.placeOrder(at.Add(time.Duration(sec) * time.Second))
		}
	}
}

// selectCustomer picks a customer who had signed up by t, favouring
// frequent orderers and, at peak hours, peak-biased ones.
func (s *Simulator) selectCustomer(t time.Time) (factories.Customer, bool) {
	eligible := sort.Search(len(s.customers), func(i int) bool {
		return s.customers[i].Record.CreatedAt.After(t)
	})
	if eligible == 0 {
		return factories.Customer{}, false
	}

	var c factories.Customer
	for try := 0; try < 8; try++ {
		c = s.customers[s.Rng.Intn(eligible)]
		w := c.OrderFrequency
		if isWeekdayPeakHour(t.Hour()) {
			w *= c.PeakHourBias
		}
		if s.Rng.Float64()*s.maxOrderWeight < w {
			break
		}
	}
	return c, true
}

func (s *Simulator) selectCourier(zone string) models.Courier {
	if pool := s.couriersByZone[zone]; len(pool) > 0 {
		return pool[s.Rng.Intn(len(pool))]
	}
	return s.data.Couriers[s.Rng.Intn(len(s.data.Couriers))]
}

func (s *Simulator) selectMenuItems(restaurant models.Restaurant) []models.LineItem {
	menu := s.menus[restaurant.ID]
	lines := 1 + s.Rng.Intn(min(3, len(menu)))

	items := make([]models.LineItem, 0, lines)
	for _, idx := range s.Rng.Perm(len(menu))[:lines] {
		p := menu[idx]
		qty := 1 + selectWeighted(s.Rng, []float64{0.65, 0.25, 0.1})
		items = append(items, models.LineItem{
			ProductID:    p.ID,
			ProductName:  p.Name,
			CategoryID:   p.CategoryID,
			CategoryName: s.categoryNames[p.CategoryID],
			Quantity:     qty,
			LineRevenue:  roundMoney(p.Price * float64(qty)),
		})
	}
	return items
}

func (s *Simulator) placeOrder(at time.Time) {
	customer, ok := s.selectCustomer(at)
	if !ok {
		return
	}
	restaurant := s.data.Restaurants[selectWeighted(s.Rng, s.restaurantPick)]
	items := s.selectMenuItems(restaurant)

	subtotal := 0.0
	for _, it := range items {
		subtotal += it.LineRevenue
	}
	subtotal = roundMoney(subtotal)
	fee := calculateDeliveryFee(subtotal)

	courier := s.selectCourier(restaurant.Zone)
	cluster := clusterFor(restaurant.Zone)
	distance := math.Round(s.generateNormalized(cluster.MeanDistance, cluster.MeanDistance/3, 0.3, 15)*100) / 100
	prep := minutes(s.generateNormalized(18, 6, 8, 45))
	pickup := at.Add(prep)
	speed := s.calculateAdjustedDeliverySpeed(courier, restaurant.Zone, pickup)
	travel := time.Duration(distance / speed * float64(time.Hour))

	order := models.OrderRecord{
		ID:                    int64(len(s.data.Orders) + 1),
		UserID:                customer.Record.ID,
		RestaurantID:          restaurant.ID,
		RestaurantName:        restaurant.Name,
		Status:                models.OrderStatusCompleted,
		Subtotal:              subtotal,
		DeliveryFee:           fee,
		Total:                 roundMoney(subtotal + fee),
		CreatedAt:             at,
		EstimatedDeliveryTime: at.Add(prep + travel + 5*time.Minute).Truncate(time.Minute),
		Items:                 items,
	}

	if s.Rng.Float64() < s.Config.CancelRate {
		order.Status = models.OrderStatusCancelled
		s.data.Orders = append(s.data.Orders, order)
		return
	}

	pickup = at.Add(time.Duration(float64(prep) * s.generateNormalized(1, 0.2, 0.7, 1.8)))
	delivered := pickup.Add(time.Duration(float64(travel) * s.generateNormalized(1, 0.25, 0.6, 2.0)))
	order.DeliveryPersonID = &courier.ID

	switch {
	case !pickup.Before(s.end):
		// still in the kitchen when the simulation stops
		order.Status = models.OrderStatusPreparing
		s.data.Orders = append(s.data.Orders, order)
		return
	case !delivered.Before(s.end):
		order.Status = models.OrderStatusInDelivery
	default:
		order.ActualDeliveryTime = &delivered
	}
	s.data.Orders = append(s.data.Orders, order)

	d := models.DeliveryRecord{
		ID:                    int64(len(s.data.Deliveries) + 1),
		OrderID:               order.ID,
		RestaurantID:          restaurant.ID,
		DeliveryPersonID:      courier.ID,
		Zone:                  restaurant.Zone,
		Distance:              distance,
		StartedAt:             pickup,
		CompletedAt:           order.ActualDeliveryTime,
		EstimatedDeliveryTime: order.EstimatedDeliveryTime,
	}
	if d.CompletedAt != nil && s.Rng.Float64() < 0.6 {
		rating := s.rateDelivery(*d.CompletedAt, d.EstimatedDeliveryTime)
		d.Rating = &rating
	}
	s.data.Deliveries = append(s.data.Deliveries, d)
}

// rateDelivery scores a delivery from 1 to 5, losing up to two stars for lateness.
func (s *Simulator) rateDelivery(delivered, estimate time.Time) float64 {
	mean := 4.3
	if late := delivered.Sub(estimate).Minutes(); late > 0 {
		mean -= math.Min(late/10, 2)
	}
	return math.Round(s.generateNormalized(mean, 0.6, 1, 5)*10) / 10
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
