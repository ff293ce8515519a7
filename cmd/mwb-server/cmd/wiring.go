package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/donaldgifford/mwb-pricing/internal/api/handlers"
	mw "github.com/donaldgifford/mwb-pricing/internal/api/middleware"
	"github.com/donaldgifford/mwb-pricing/internal/config"
	"github.com/donaldgifford/mwb-pricing/internal/engine"
	"github.com/donaldgifford/mwb-pricing/internal/store"
	"github.com/donaldgifford/mwb-pricing/pkg/logger"
)

// loadConfig reads the config file and builds the process logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)
	return cfg, log, nil
}

func openStore(ctx context.Context, cfg *config.Config) (*store.PostgresStore, error) {
	s, err := store.NewPostgresStore(ctx, cfg.Database.DSN(),
		store.WithMaxConns(int32(cfg.Database.PoolSize)), //nolint:gosec // validated small pool size
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return s, nil
}

func newEngine(cfg *config.Config, s store.Store, log *slog.Logger) *engine.Engine {
	opts := []engine.EngineOption{
		engine.WithLogger(log),
		engine.WithParams(cfg.Pricing.Params()),
		engine.WithMaxObservations(cfg.Pricing.MaxObservations),
	}
	if cfg.Pricing.DisableCostFloor {
		opts = append(opts, engine.WithCostLookup(nil))
	}
	return engine.NewEngine(s, opts...)
}

func batchWatches(cfg *config.BatchConfig) []engine.Watch {
	watches := make([]engine.Watch, 0, len(cfg.Watches))
	for i := range cfg.Watches {
		w := &cfg.Watches[i]
		watches = append(watches, engine.Watch{
			Name:       w.Name,
			CustomerID: w.CustomerID,
			ItemID:     w.ItemID,
			Quantity:   w.QuantityDecimal(),
		})
	}
	return watches
}

// newServer builds the echo server with probes, metrics and the huma API.
func newServer(cfg *config.Config, s store.Store, p engine.Pricer, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(
		mw.RequestLog(log),
		mw.Metrics(),
		mw.Tracing(otel.GetTracerProvider()),
		mw.Recovery(log),
	)
	if cfg.RateLimit.Enabled {
		e.Use(mw.RateLimit(mw.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			PathPrefix:        "/api/",
		}))
	}

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(s))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("MWB Pricing API", Version))
	handlers.RegisterPriceRoutes(api, handlers.NewPriceHandler(p))
	handlers.RegisterObservationRoutes(api, handlers.NewObservationsHandler(s))

	return e
}
