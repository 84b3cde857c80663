package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/foodash/internal/analytics"
	"github.com/chrisdamba/foodash/internal/dashboard"
	"github.com/chrisdamba/foodash/internal/logging"
	"github.com/chrisdamba/foodash/internal/metrics"
	"github.com/chrisdamba/foodash/internal/models"
	"github.com/chrisdamba/foodash/internal/output"
	"github.com/chrisdamba/foodash/internal/repositories"
	"github.com/chrisdamba/foodash/internal/repositories/postgres"
	"github.com/chrisdamba/foodash/internal/simulator"
)

const (
	sourcePostgres  = "postgres"
	sourceSynthetic = "synthetic"

	defaultDays = 30
)

type dashboardOptions struct {
	view          string
	start         string
	end           string
	interval      string
	restaurantID  int64
	hasRestaurant bool
	status        string
	source        string
	output        string
}

var dashOpts dashboardOptions

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Compute a dashboard view and publish it",
	Example: `  foodash dashboard --view growth --start 2024-01-01 --end 2024-03-31 --interval weekly
  foodash dashboard --view restaurant-performance --restaurant-id 7 --source postgres --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dashOpts.hasRestaurant = cmd.Flags().Changed("restaurant-id")
		if dashOpts.output != "" {
			cfg.OutputFormat = dashOpts.output
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		return runDashboard(cmd.Context(), cfg, dashOpts)
	},
}

func init() {
	f := dashboardCmd.Flags()
	f.StringVar(&dashOpts.view, "view", string(dashboard.ViewFullDashboard), "growth, retention, heatmap, restaurant-performance, delivery-metrics or full-dashboard")
	f.StringVar(&dashOpts.start, "start", "", "first day of the range, YYYY-MM-DD or RFC3339 (default: 30 days before --end)")
	f.StringVar(&dashOpts.end, "end", "", "last day of the range, inclusive (default: today, or the last synthetic day)")
	f.StringVar(&dashOpts.interval, "interval", "", "daily, weekly or monthly (default from config)")
	f.Int64Var(&dashOpts.restaurantID, "restaurant-id", 0, "scope the dashboard to one restaurant")
	f.StringVar(&dashOpts.status, "status", "", "only count orders with this status")
	f.StringVar(&dashOpts.source, "source", sourceSynthetic, "record source: postgres or synthetic")
	f.StringVar(&dashOpts.output, "output", "", "console, json, csv, parquet or kafka (default from config)")
}

func runDashboard(ctx context.Context, cfg *models.Config, opts dashboardOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
	}
	ctx = logging.ContextWithRequestID(ctx, "")
	log := logging.Ctx(ctx)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	src, err := openSource(ctx, cfg, loc, opts.source)
	if err != nil {
		return err
	}
	defer src.close()

	req, err := buildRequest(opts, cfg, loc, src.lastDay)
	if err != nil {
		return err
	}

	bucketer := analytics.NewBucketer(loc)
	collector := metrics.NewCollector()
	svc := dashboard.NewService(src.gateway, analytics.NewEngine(bucketer, analytics.OptionsFromConfig(cfg)), dashboard.Options{
		Bucketer: bucketer,
		Workers:  cfg.Workers,
		Metrics:  collector,
		Logger:   log,
	})

	res, err := svc.Compute(ctx, req)
	if cfg.MetricsFile != "" {
		if werr := collector.WriteTextfile(cfg.MetricsFile); werr != nil {
			log.Warn().Err(werr).Str("path", cfg.MetricsFile).Msg("failed to write metrics")
		}
	}
	if err != nil {
		return err
	}
	out, err := output.New(ctx, cfg)
	if err != nil {
		return err
	}
	snap := output.NewSnapshot(res)
	if err := out.WriteSnapshot(ctx, snap); err != nil {
		out.Close()
		return fmt.Errorf("publish dashboard: %w", err)
	}
	log.Info().Str("snapshot_id", snap.ID).Str("output", cfg.OutputFormat).Msg("dashboard published")
	return out.Close()
}

type recordSource struct {
	gateway dashboard.Gateway
	// lastDay is the default end of the range.
	lastDay time.Time
	close   func()
}

func openSource(ctx context.Context, cfg *models.Config, loc *time.Location, name string) (*recordSource, error) {
	switch name {
	case sourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		gw := repositories.NewGateway(
			postgres.NewUserRepository(pool),
			postgres.NewOrderRepository(pool),
			postgres.NewDeliveryRepository(pool),
		)
		return &recordSource{gateway: gw, lastDay: time.Now().In(loc), close: pool.Close}, nil

	case sourceSynthetic:
		ds, err := simulator.NewSimulator(cfg.Seed, loc).Generate(ctx)
		if err != nil {
			return nil, err
		}
		gw, err := ds.MemoryGateway(ctx)
		if err != nil {
			return nil, err
		}
		return &recordSource{gateway: gw, lastDay: ds.End.AddDate(0, 0, -1), close: func() {}}, nil

	default:
		return nil, fmt.Errorf("unknown source %q: want %s or %s", name, sourcePostgres, sourceSynthetic)
	}
}

// buildRequest turns flags into a request. Values are passed through as
// given; the dashboard service validates them.
func buildRequest(opts dashboardOptions, cfg *models.Config, loc *time.Location, lastDay time.Time) (dashboard.Request, error) {
	view, err := dashboard.ParseView(opts.view)
	if err != nil {
		return dashboard.Request{}, err
	}

	end := lastDay
	if opts.end != "" {
		if end, err = parseDate(opts.end, loc); err != nil {
			return dashboard.Request{}, fmt.Errorf("--end: %w", err)
		}
	}
	start := end.AddDate(0, 0, -(defaultDays - 1))
	if opts.start != "" {
		if start, err = parseDate(opts.start, loc); err != nil {
			return dashboard.Request{}, fmt.Errorf("--start: %w", err)
		}
	}

	f := models.Filter{
		StartDate: start,
		EndDate:   end,
		Interval:  cfg.Interval,
	}
	if opts.interval != "" {
		f.Interval = models.Interval(opts.interval)
	}
	if opts.hasRestaurant {
		f = f.WithRestaurant(opts.restaurantID)
	}
	if opts.status != "" {
		status := models.OrderStatus(opts.status)
		f.Status = &status
	}
	return dashboard.Request{Filter: f, View: view}, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("want YYYY-MM-DD or RFC3339, got %q", s)
	}
	return t.In(loc), nil
}
