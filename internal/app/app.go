// Package app wires the catalogue service together: configuration, logging,
// storage, event publishing, HTTP transport and lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kolanot/catalog-service/internal/config"
	"github.com/Kolanot/catalog-service/internal/event"
	handlerhttp "github.com/Kolanot/catalog-service/internal/handler/http"
	"github.com/Kolanot/catalog-service/internal/repository/postgres"
	"github.com/Kolanot/catalog-service/internal/service"
	"github.com/Kolanot/catalog-service/migrations"
	"github.com/Kolanot/catalog-service/pkg/database"
	"github.com/Kolanot/catalog-service/pkg/health"
	"github.com/Kolanot/catalog-service/pkg/kafka"
	"github.com/Kolanot/catalog-service/pkg/middleware"
)

// App is the assembled service.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	producer *kafka.Producer
	server   *http.Server
}

// New builds the application from configuration: it connects the database
// pool, runs migrations, sets up the Kafka producer when enabled, and wires
// handlers into the HTTP server.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	pool, err := database.NewPostgresPoolWithLogger(ctx, cfg.Postgres.PoolConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrations.Files, log); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	database.RegisterPoolMetrics(pool, cfg.ServiceName)

	var producer *kafka.Producer
	var publisher event.Publisher = event.NopPublisher{}
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.Kafka.Brokers), log)
		publisher = event.NewProducer(producer, log)
	}

	repo := postgres.NewRepository(pool)
	svc := service.NewCatalogueService(repo, publisher, log)

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", pool.Ping)
	if producer != nil {
		healthHandler.Register("kafka", producer.Ping)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.HTTP.CORSOrigins

	router := handlerhttp.NewRouter(handlerhttp.RouterConfig{
		CatalogueHandler: handlerhttp.NewCatalogueHandler(svc, log),
		LineHandler:      handlerhttp.NewLineHandler(svc, log),
		Health:           healthHandler,
		Logger:           log,
		ServiceName:      cfg.ServiceName,
		CORS:             corsCfg,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:      cfg,
		logger:   log,
		pool:     pool,
		producer: producer,
		server:   server,
	}, nil
}

// Logger exposes the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening",
			slog.String("addr", a.server.Addr),
			slog.String("environment", a.cfg.Environment),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown failed", slog.String("error", err.Error()))
	}
	a.close()
	return nil
}

func (a *App) close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close failed", slog.String("error", err.Error()))
		}
	}
	a.pool.Close()
}
