// Command reviews opens the configured review store and logs the two best
// rated restaurants.
//
// Settings come from YELP_* environment variables (see internal/config).
// With -demo, a few sample customers, restaurants and reviews are written
// first, which is useful with YELP_STORAGE_DRIVER=memory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonah-kayiwa/yelp/internal/cache"
	"github.com/jonah-kayiwa/yelp/internal/config"
	"github.com/jonah-kayiwa/yelp/internal/metrics"
	"github.com/jonah-kayiwa/yelp/internal/service"
	"github.com/jonah-kayiwa/yelp/internal/storage"
	"github.com/jonah-kayiwa/yelp/internal/storage/gormstore"
	"github.com/jonah-kayiwa/yelp/internal/storage/memory"
	"github.com/jonah-kayiwa/yelp/internal/storage/postgres"
	"github.com/jonah-kayiwa/yelp/internal/storage/sqlite"
	"github.com/jonah-kayiwa/yelp/pkg/logging"
)

func main() {
	demo := flag.Bool("demo", false, "write sample data before reporting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *demo); err != nil {
		slog.Error("reviews failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, demo bool) error {
	m := metrics.New(prometheus.NewRegistry())

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.Storage.Driver)

	opts := []service.Option{service.WithMetrics(m)}
	if cfg.CacheEnabled() {
		rc, err := cache.NewRedis(ctx, cfg.Redis.Address, cfg.Redis.Prefix)
		if err != nil {
			return err
		}
		defer rc.Close()
		opts = append(opts, service.WithRankingCache(rc, cfg.Ranking.CacheTTL))
		slog.Info("Ranking cache enabled", "address", cfg.Redis.Address, "ttl", cfg.Ranking.CacheTTL)
	}

	svc := service.NewReviewService(storage.Instrumented(store, m), opts...)

	if demo {
		if err := seed(ctx, svc); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	top, err := svc.TopTwo(ctx)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		slog.Info("No restaurants to rank")
		return nil
	}
	for i, r := range top {
		slog.Info("Top restaurant",
			"rank", i+1,
			"restaurant_id", r.ID,
			"name", r.Name,
			"average", r.AverageStarRating(),
			"reviews", r.ReviewCount(),
		)
	}
	return nil
}

// openStore builds the backend named by cfg.Storage.Driver.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverSQLite:
		return sqlite.New(cfg.Storage.SQLitePath)
	case config.DriverGorm:
		return gormstore.New(cfg.Storage.SQLitePath)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.Postgres.DSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func seed(ctx context.Context, svc *service.ReviewService) error {
	ada, err := svc.RegisterCustomer(ctx, "Ada", "Lovelace")
	if err != nil {
		return err
	}
	grace, err := svc.RegisterCustomer(ctx, "Grace", "Hopper")
	if err != nil {
		return err
	}

	ratings := map[string][2]int{
		"Noma":      {5, 4},
		"Zuni Cafe": {3, 3},
		"Benu":      {5, 5},
	}
	for _, name := range []string{"Noma", "Zuni Cafe", "Benu"} {
		r, err := svc.RegisterRestaurant(ctx, name)
		if err != nil {
			return err
		}
		if _, err := svc.AddReview(ctx, ada.ID, r.ID, ratings[name][0]); err != nil {
			return err
		}
		if _, err := svc.AddReview(ctx, grace.ID, r.ID, ratings[name][1]); err != nil {
			return err
		}
	}
	return nil
}
