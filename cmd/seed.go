package cmd

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/chrisdamba/foodash/internal/logging"
	"github.com/chrisdamba/foodash/internal/models"
	"github.com/chrisdamba/foodash/internal/repositories/postgres"
	"github.com/chrisdamba/foodash/internal/simulator"
)

var (
	seedTruncate   bool
	seedCategories string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate Postgres with a synthetic order history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedCategories != "" {
			if err := cfg.LoadCategoryData(seedCategories); err != nil {
				return fmt.Errorf("load categories: %w", err)
			}
		}
		return runSeed(cmd.Context(), cfg, seedTruncate)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedTruncate, "truncate", false, "delete existing records first")
	seedCmd.Flags().StringVar(&seedCategories, "categories", "", "CSV file of menu categories (id,name)")
}

func runSeed(ctx context.Context, cfg *models.Config, truncate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}
	if truncate {
		if err := postgres.TruncateAll(ctx, pool); err != nil {
			return err
		}
	}

	sim := simulator.NewSimulator(cfg.Seed, loc)
	simBar := progressbar.Default(int64(cfg.Seed.Days), "simulating days")
	sim.Progress = func(done, total int) {
		_ = simBar.Set(done)
	}
	ds, err := sim.Generate(ctx)
	if err != nil {
		return err
	}
	_ = simBar.Finish()

	store := simulator.Store{
		Users:       postgres.NewUserRepository(pool),
		Restaurants: postgres.NewRestaurantRepository(pool),
		MenuItems:   postgres.NewMenuItemRepository(pool),
		Couriers:    postgres.NewDeliveryPartnerRepository(pool),
		Orders:      postgres.NewOrderRepository(pool),
		Deliveries:  postgres.NewDeliveryRepository(pool),
	}
	loadBar := progressbar.Default(int64(ds.Size()), "writing records")
	if err := ds.Load(ctx, store, func(n int) { _ = loadBar.Add(n) }); err != nil {
		return err
	}
	_ = loadBar.Finish()

	logging.Info().
		Int("users", len(ds.Users)).
		Int("orders", len(ds.Orders)).
		Int("deliveries", len(ds.Deliveries)).
		Time("start", ds.Start).
		Time("end", ds.End).
		Msg("seed completed")
	return nil
}
