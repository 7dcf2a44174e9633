package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/genomic-vcf-service/internal/annotation"
	"github.com/genomic-vcf-service/internal/api"
	"github.com/genomic-vcf-service/internal/config"
	"github.com/genomic-vcf-service/internal/database"
	"github.com/genomic-vcf-service/internal/domain"
	"github.com/genomic-vcf-service/internal/service"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation failed: %v\n", err)
		os.Exit(1)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(cfg.Logging)

	logger.WithFields(logrus.Fields{
		"host":    cfg.Server.Host,
		"port":    cfg.Server.Port,
		"backend": cfg.Annotation.Backend,
	}).Info("Starting genomic VCF service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, checks, cleanup, err := buildAnnotationSource(ctx, configManager, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize annotation source")
	}
	defer cleanup()

	pipeline := service.NewPipeline(logger, source)
	server := api.NewServer(configManager, logger, pipeline, checks...)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.WithField("signal", sig.String()).Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	// Start server; blocks until the context is cancelled.
	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}

// newLogger configures logrus per the logging configuration.
func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.ToLower(cfg.Format) == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// buildAnnotationSource constructs the configured backend and stacks the
// cache and breaker decorators around it. It also returns the health probes
// for the backend's dependencies. The returned cleanup releases the
// backend's resources and is safe to call once.
func buildAnnotationSource(ctx context.Context, manager *config.Manager, logger *logrus.Logger) (domain.AnnotationSource, []api.HealthCheck, func(), error) {
	cfg := manager.GetAnnotationConfig()
	cleanup := func() {}

	var source domain.AnnotationSource
	var checks []api.HealthCheck

	switch cfg.Backend {
	case "memory":
		source = annotation.NewMemoryStore(cfg.RandomSeed)
		logger.Info("Using in-memory annotation store")

	case "sqlite":
		store, err := annotation.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening sqlite annotation store: %w", err)
		}
		source = store.WithFallback(annotation.NewMemoryStore(cfg.RandomSeed))
		checks = append(checks, api.HealthCheck{
			Name: "sqlite",
			Check: func(ctx context.Context) (map[string]any, error) {
				return nil, store.Health(ctx)
			},
		})
		cleanup = func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("Closing sqlite store failed")
			}
		}
		logger.WithField("path", cfg.SQLitePath).Info("Using sqlite annotation store")

	case "postgres":
		if err := runMigrations(ctx, manager, logger); err != nil {
			return nil, nil, nil, err
		}

		pool, err := database.NewConnection(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening database pool: %w", err)
		}

		store, err := annotation.NewPostgresStoreFromDSN(manager.GetDatabaseConnectionString(), cfg.Database)
		if err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("opening postgres annotation store: %w", err)
		}
		if err := store.SeedIfEmpty(ctx); err != nil {
			store.Close()
			pool.Close()
			return nil, nil, nil, fmt.Errorf("seeding annotation table: %w", err)
		}
		source = store.WithFallback(annotation.NewMemoryStore(cfg.RandomSeed))
		checks = append(checks, api.HealthCheck{
			Name: "postgres",
			Check: func(ctx context.Context) (map[string]any, error) {
				stat := pool.Stats()
				details := map[string]any{
					"total_conns":    stat.TotalConns(),
					"idle_conns":     stat.IdleConns(),
					"acquired_conns": stat.AcquiredConns(),
				}
				return details, pool.Health(ctx)
			},
		})
		cleanup = func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("Closing postgres store failed")
			}
			pool.Close()
		}
		logger.WithFields(logrus.Fields{
			"host":     cfg.Database.Host,
			"database": cfg.Database.Database,
		}).Info("Using postgres annotation store")

	default:
		return nil, nil, nil, fmt.Errorf("unknown annotation backend %q", cfg.Backend)
	}

	if cfg.Cache.Enabled {
		cached, err := annotation.NewCachedSource(source, cfg.Cache.LRUSize, logger)
		if err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("building annotation cache: %w", err)
		}
		if cfg.Cache.RedisURL != "" {
			if _, err := cached.WithRedis(cfg.Cache.RedisURL, cfg.Cache.RedisTTL, cfg.Cache.DialTimeout); err != nil {
				cleanup()
				return nil, nil, nil, fmt.Errorf("attaching redis cache tier: %w", err)
			}
		}
		inner := cleanup
		cleanup = func() {
			if err := cached.Close(); err != nil {
				logger.WithError(err).Warn("Closing annotation cache failed")
			}
			inner()
		}
		source = cached
	}

	if cfg.Breaker.Enabled {
		source = annotation.NewBreakerSource(source, cfg.Breaker, logger)
	}

	return source, checks, cleanup, nil
}

// runMigrations applies the annotation schema before the postgres store opens.
func runMigrations(ctx context.Context, manager *config.Manager, logger *logrus.Logger) error {
	cfg := manager.GetAnnotationConfig()

	runner, err := database.NewMigrationRunner(manager.GetDatabaseURL(), cfg.Database.MigrationsPath, logger)
	if err != nil {
		return fmt.Errorf("creating migration runner: %w", err)
	}
	defer func() {
		if err := runner.Close(); err != nil {
			logger.WithError(err).Warn("Closing migration runner failed")
		}
	}()

	if err := runner.Up(ctx); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
