// Command seed fills the blog database with generated posts, tags and comments.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"blogseed/internal/cache"
	"blogseed/internal/config"
	"blogseed/internal/database"
	"blogseed/internal/observability"
	"blogseed/internal/repository"
	"blogseed/internal/seed"

	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	// .env is optional
	_ = godotenv.Load()

	flags := newFlagSet(seed.DefaultOptions())
	_ = flags.Parse(os.Args[1:])
	if err := bindFlags(flags); err != nil {
		log.Fatalf("Failed to read flags: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	observability.InitLogger(cfg.Env)

	if err := run(cfg); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func run(cfg *config.Config) error {
	if err := cfg.ValidateSeeding(); err != nil {
		return err
	}
	opts := seedOptions(cfg)
	if err := opts.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceVersion: version,
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampler,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			observability.Logger.Error("tracing shutdown failed", slog.String("error", err.Error()))
		}
	}()

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			observability.Logger.Error("closing database failed", slog.String("error", err.Error()))
		}
	}()

	metrics := observability.NewSeedMetrics()
	seeder := seed.NewSeeder(repository.NewRepositories(db),
		seed.WithContent(seed.NewFakerSource(cfg.SeedRandom)),
		seed.WithMetrics(metrics),
		seed.WithAuthorPassword(cfg.SeedAuthorPassword),
	)

	report, err := seeder.Run(ctx, opts)
	if err != nil {
		return err
	}

	invalidateCache(ctx, cfg, metrics, report)

	if cfg.SeedMetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.SeedMetricsFile); err != nil {
			return fmt.Errorf("write metrics file: %w", err)
		}
	}
	return nil
}

func seedOptions(cfg *config.Config) seed.Options {
	return seed.Options{
		Number:      cfg.SeedNumber,
		Delete:      cfg.SeedDelete,
		MinComments: cfg.SeedMinComments,
		MaxComments: cfg.SeedMaxComments,
	}
}

// invalidateCache drops cached listings so a running blog shows the new posts.
// Cache failures never fail the run.
func invalidateCache(ctx context.Context, cfg *config.Config, metrics *observability.SeedMetrics, report *seed.Report) {
	cache.InitRedis(cfg.RedisURL, metrics.RedisErrors)
	defer cache.Close()
	if cache.GetClient() == nil {
		return
	}

	ids := make([]uint, 0, len(report.Outcomes))
	slugs := make([]string, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		if o.PostID != 0 {
			ids = append(ids, o.PostID)
			slugs = append(slugs, o.Slug)
		}
	}
	if err := cache.InvalidatePosts(ctx, ids, slugs); err != nil {
		observability.Logger.WarnContext(ctx, "post cache invalidation failed", slog.String("error", err.Error()))
	}

	n, err := cache.InvalidatePostLists(ctx)
	if err != nil {
		observability.Logger.WarnContext(ctx, "list cache invalidation failed", slog.String("error", err.Error()))
		return
	}
	observability.Logger.InfoContext(ctx, "cache invalidated", slog.Int64("keys", n))
}
