package analytics

import (
	"time"

	"github.com/chrisdamba/foodash/internal/models"
)

// PeakOptions controls peak-window detection. An hour is "busy" when its order
// count is strictly above the Quantile of the 24 hourly counts.
type PeakOptions struct {
	Quantile   float64
	MaxWindows int
}

type Options struct {
	// OnTimeGrace is added to the estimated delivery time before comparing.
	OnTimeGrace time.Duration
	Peak        PeakOptions
	TopN        int
}

func DefaultOptions() Options {
	return Options{
		Peak: PeakOptions{
			Quantile:   0.75,
			MaxWindows: 3,
		},
		TopN: 10,
	}
}

// OptionsFromConfig maps the analytics-related config fields onto Options.
func OptionsFromConfig(cfg *models.Config) Options {
	opts := DefaultOptions()
	opts.OnTimeGrace = cfg.OnTimeGrace
	if cfg.PeakQuantile > 0 {
		opts.Peak.Quantile = cfg.PeakQuantile
	}
	if cfg.PeakMaxWindows > 0 {
		opts.Peak.MaxWindows = cfg.PeakMaxWindows
	}
	if cfg.TopN > 0 {
		opts.TopN = cfg.TopN
	}
	return opts
}

// Engine holds the calculators. All methods are pure: they read the records
// they are given and never retain or modify them, so one Engine may serve
// concurrent calls.
type Engine struct {
	bucketer Bucketer
	opts     Options
}

func NewEngine(bucketer Bucketer, opts Options) *Engine {
	return &Engine{bucketer: bucketer, opts: opts}
}

func (e *Engine) Bucketer() Bucketer {
	return e.bucketer
}

func (e *Engine) Options() Options {
	return e.opts
}

// window resolves the filter into its periods and the half-open instant range
// of the requested days. The range is not widened to whole periods, so
// views that are not time series see the same records for every interval.
func (e *Engine) window(f models.Filter) ([]Period, time.Time, time.Time, error) {
	periods, err := e.bucketer.Periods(f.StartDate, f.EndDate, f.Interval)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	from, to := e.bucketer.DayRange(f.StartDate, f.EndDate)
	return periods, from, to, nil
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// scopeOrders keeps orders inside the window that satisfy the filter's
// restaurant and status constraints.
func scopeOrders(f models.Filter, orders []models.OrderRecord, from, to time.Time) []models.OrderRecord {
	out := make([]models.OrderRecord, 0, len(orders))
	for _, o := range orders {
		if f.MatchesOrder(o) && inWindow(o.CreatedAt, from, to) {
			out = append(out, o)
		}
	}
	return out
}
