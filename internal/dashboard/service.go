package dashboard

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/chrisdamba/foodash/internal/analytics"
	"github.com/chrisdamba/foodash/internal/logging"
	"github.com/chrisdamba/foodash/internal/metrics"
	"github.com/chrisdamba/foodash/internal/models"
)

// Gateway supplies raw records. The filter it receives has been widened to
// whole periods with EndDate exclusive; implementations must return at least
// every record whose timestamp falls in [StartDate, EndDate) and may return
// more. FetchUsers ignores the restaurant and status constraints.
type Gateway interface {
	FetchOrders(ctx context.Context, f models.Filter) ([]models.OrderRecord, error)
	FetchUsers(ctx context.Context, f models.Filter) ([]models.UserRecord, error)
	FetchDeliveries(ctx context.Context, f models.Filter) ([]models.DeliveryRecord, error)
}

// BaselineCounter is an optional Gateway extension. Without it growth totals
// start from zero at the beginning of the window.
type BaselineCounter interface {
	CountUsersBefore(ctx context.Context, t time.Time) (int, error)
	CountOrdersBefore(ctx context.Context, f models.Filter, t time.Time) (int, error)
}

// Calculators is satisfied by *analytics.Engine.
type Calculators interface {
	Growth(f models.Filter, users []models.UserRecord, orders []models.OrderRecord, baseline analytics.Baseline) (*models.GrowthResponse, error)
	Retention(f models.Filter, users []models.UserRecord, orders []models.OrderRecord) (*models.RetentionResponse, error)
	Heatmap(f models.Filter, orders []models.OrderRecord) (*models.HeatmapResponse, error)
	RestaurantPerformance(f models.Filter, restaurantID int64, orders []models.OrderRecord) (*models.RestaurantPerformance, error)
	RestaurantPerformances(f models.Filter, orders []models.OrderRecord) ([]models.RestaurantPerformance, error)
	DeliveryMetrics(f models.Filter, deliveries []models.DeliveryRecord) (*models.DeliveryMetrics, error)
	TopRestaurants(f models.Filter, orders []models.OrderRecord) ([]models.RestaurantRanking, error)
	TopProducts(f models.Filter, orders []models.OrderRecord) ([]models.ProductRanking, error)
}

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	// Bucketer defaults to UTC.
	Bucketer analytics.Bucketer
	// Workers bounds how many calculators run at once.
	Workers int
	Metrics metrics.Recorder
	Logger  *zerolog.Logger
	Now     func() time.Time
}

// Service answers dashboard requests over a Gateway.
type Service struct {
	gateway  Gateway
	calc     Calculators
	bucketer analytics.Bucketer
	workers  int
	metrics  metrics.Recorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewService wires a gateway and calculators into a Service.
func NewService(gateway Gateway, calc Calculators, opts Options) *Service {
	s := &Service{
		gateway:  gateway,
		calc:     calc,
		bucketer: opts.Bucketer,
		workers:  opts.Workers,
		metrics:  opts.Metrics,
		now:      opts.Now,
	}
	if s.workers <= 0 {
		s.workers = 1
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	} else {
		s.log = logging.With().Str("component", "dashboard").Logger()
	}
	return s
}

// snapshot is the immutable record set one request computes over.
type snapshot struct {
	orders     []models.OrderRecord
	users      []models.UserRecord
	deliveries []models.DeliveryRecord
	baseline   analytics.Baseline
}

// Compute validates the request, fetches what the view needs and runs its
// calculators. A gateway failure fails the request with a
// DataUnavailableError; a calculator failure only drops its section.
func (s *Service) Compute(ctx context.Context, req Request) (res *Result, err error) {
	started := time.Now()
	defer func() {
		warnings := 0
		if res != nil {
			warnings = len(res.Warnings)
		}
		s.metrics.ObserveRequest(string(req.View), time.Since(started), warnings, err)
	}()

	if err := req.validate(s.bucketer); err != nil {
		return nil, err
	}

	snap, err := s.fetch(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Str("view", string(req.View)).Msg("fetch failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res = &Result{
		View:        req.View,
		Filter:      req.Filter,
		GeneratedAt: s.now().UTC(),
	}
	s.calculate(req, snap, res)

	s.log.Info().
		Str("view", string(req.View)).
		Int("orders", len(snap.orders)).
		Int("users", len(snap.users)).
		Int("deliveries", len(snap.deliveries)).
		Int("warnings", len(res.Warnings)).
		Dur("took", time.Since(started)).
		Msg("dashboard computed")
	return res, nil
}

// fetchFilter widens the request filter to whole periods.
func (s *Service) fetchFilter(f models.Filter) models.Filter {
	periods, err := s.bucketer.Periods(f.StartDate, f.EndDate, f.Interval)
	if err != nil || len(periods) == 0 {
		return f
	}
	f.StartDate = periods[0].Start
	f.EndDate = periods[len(periods)-1].End
	return f
}

func (s *Service) fetch(ctx context.Context, req Request) (*snapshot, error) {
	need := req.needs()
	ff := s.fetchFilter(req.Filter)
	snap := &snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	if need.orders {
		g.Go(func() error {
			var err error
			snap.orders, err = observe(s, "orders", func() ([]models.OrderRecord, error) {
				return s.gateway.FetchOrders(gctx, ff)
			})
			return err
		})
	}
	if need.users {
		g.Go(func() error {
			var err error
			snap.users, err = observe(s, "users", func() ([]models.UserRecord, error) {
				return s.gateway.FetchUsers(gctx, ff)
			})
			return err
		})
	}
	if need.deliveries {
		g.Go(func() error {
			var err error
			snap.deliveries, err = observe(s, "deliveries", func() ([]models.DeliveryRecord, error) {
				return s.gateway.FetchDeliveries(gctx, ff)
			})
			return err
		})
	}
	if counter, ok := s.gateway.(BaselineCounter); ok && need.baseline {
		g.Go(func() error {
			var err error
			snap.baseline, err = observe(s, "baseline", func() (analytics.Baseline, error) {
				users, err := counter.CountUsersBefore(gctx, ff.StartDate)
				if err != nil {
					return analytics.Baseline{}, err
				}
				orders, err := counter.CountOrdersBefore(gctx, ff, ff.StartDate)
				return analytics.Baseline{Users: users, Orders: orders}, err
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func observe[T any](s *Service, source string, fetch func() (T, error)) (T, error) {
	started := time.Now()
	v, err := fetch()
	s.metrics.ObserveFetch(source, time.Since(started), err)
	if err != nil {
		var zero T
		return zero, &DataUnavailableError{Source: source, Err: err}
	}
	return v, nil
}

// calculate fans the view's sections out over at most s.workers goroutines.
// Each section writes a distinct Result field.
func (s *Service) calculate(req Request, snap *snapshot, res *Result) {
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.workers)

	for _, section := range req.sections() {
		run := s.section(section, req.Filter, snap, res)
		g.Go(func() error {
			started := time.Now()
			err := run()
			s.metrics.ObserveSection(section, time.Since(started), err)
			if err != nil {
				s.log.Warn().Err(err).Str("section", section).Msg("section omitted")
				mu.Lock()
				res.Warnings = append(res.Warnings, newWarning(section, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(res.Warnings, func(i, j int) bool {
		return sectionOrder[res.Warnings[i].Section] < sectionOrder[res.Warnings[j].Section]
	})
}

func (s *Service) section(name string, f models.Filter, snap *snapshot, res *Result) func() error {
	switch name {
	case sectionGrowth:
		return func() (err error) {
			res.Growth, err = s.calc.Growth(f, snap.users, snap.orders, snap.baseline)
			return err
		}
	case sectionRetention:
		return func() (err error) {
			res.Retention, err = s.calc.Retention(f, snap.users, snap.orders)
			return err
		}
	case sectionHeatmap:
		return func() (err error) {
			res.Heatmap, err = s.calc.Heatmap(f, snap.orders)
			return err
		}
	case sectionRestaurant:
		return func() (err error) {
			res.Restaurant, err = s.calc.RestaurantPerformance(f, *f.RestaurantID, snap.orders)
			return err
		}
	case sectionRestaurants:
		return func() (err error) {
			res.Restaurants, err = s.calc.RestaurantPerformances(f, snap.orders)
			return err
		}
	case sectionDelivery:
		return func() (err error) {
			res.Delivery, err = s.calc.DeliveryMetrics(f, snap.deliveries)
			return err
		}
	case sectionTopRestaurants:
		return func() (err error) {
			res.TopRestaurants, err = s.calc.TopRestaurants(f, snap.orders)
			return err
		}
	case sectionTopProducts:
		return func() (err error) {
			res.TopProducts, err = s.calc.TopProducts(f, snap.orders)
			return err
		}
	}
	return func() error {
		return errors.New("no calculator for section " + name)
	}
}

var _ Calculators = (*analytics.Engine)(nil)
