package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fxconvert/internal/adapters"
	"fxconvert/internal/adapters/cache"
	"fxconvert/internal/adapters/postgres"
	"fxconvert/internal/adapters/providers"
	"fxconvert/internal/api"
	"fxconvert/internal/config"
	"fxconvert/internal/metrics"
	"fxconvert/internal/platform/db"
	httpserver "fxconvert/internal/platform/http"
	"fxconvert/internal/rate"
	"fxconvert/internal/rate/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if appCfg.DbServer.Migrate {
		if err = db.Migrate(startupCtx, appCfg.DbServer.GetConnectionStr()); err != nil {
			logrus.WithError(err).Error("Failed to apply migrations")
			return err
		}
		logrus.Info("✅ Migrations applied")
	}

	// Metrics on the default registry, exposed under /metrics
	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	// Quote cache (memory or redis, per config)
	quoteCache, closeCache, err := buildQuoteCache(startupCtx, appCfg.Cache)
	if err != nil {
		logrus.WithError(err).Error("Failed to create quote cache")
		return err
	}
	defer closeCache()
	logrus.Infof("✅ Quote cache ready (%s backend)", appCfg.Cache.Backend)

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// Provider clients; priority order below is also the fallback order
	rateProviders := buildProviders(appCfg.Providers, baseHTTPClient)
	if len(rateProviders) == 0 {
		return fmt.Errorf("at least one rate provider must be configured")
	}
	logrus.Infof("✅ %d rate providers configured", len(rateProviders))

	// Repositories and services
	historyRepo := postgres.NewHistoryRepository(pool)
	aggregator := rate.NewAggregator(rateProviders, appMetrics, time.Duration(appCfg.Providers.TimeoutSeconds)*time.Second)
	rateService := rate.NewService(quoteCache, historyRepo, aggregator, appMetrics)
	rateValidator := rate.NewValidator()

	// Background jobs
	scheduler := rate.NewScheduler(historyRepo, quoteCache, aggregator, appMetrics, rate.SchedulerConfig{
		RefreshEnabled:      appCfg.Scheduler.Refresh.Enabled,
		RefreshInterval:     time.Duration(appCfg.Scheduler.Refresh.IntervalSeconds) * time.Second,
		RefreshWorkers:      appCfg.Scheduler.Refresh.Workers,
		RetentionEnabled:    appCfg.Scheduler.Retention.Enabled,
		RetentionInterval:   time.Duration(appCfg.Scheduler.Retention.IntervalHours) * time.Hour,
		RetentionMaxAgeDays: appCfg.Scheduler.Retention.MaxAgeDays,
	})
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	rateHandler := handler.NewRateHandler(rateValidator, rateService)
	var rateLimiter *limiter.Limiter
	if appCfg.RateLimit.Enabled {
		rateLimiter = limiter.New(limitermem.NewStore(), limiter.Rate{
			Period: time.Minute,
			Limit:  appCfg.RateLimit.RequestsPerMinute,
		})
	}
	router := api.NewRouter(rateHandler, rateLimiter)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func buildQuoteCache(ctx context.Context, cfg config.Cache) (adapters.QuoteCache, func(), error) {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	switch strings.ToLower(cfg.Backend) {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		return cache.NewRedisQuoteCache(client, cfg.KeyPrefix, ttl), func() { _ = client.Close() }, nil
	case "", "memory":
		memCache, err := cache.NewMemoryQuoteCache(cfg.MaxItems, ttl)
		if err != nil {
			return nil, nil, err
		}
		return memCache, memCache.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// buildProviders returns the clients whose required settings are present.
// Keyed providers need base_url and api_key; frankfurter only a base_url.
func buildProviders(cfg config.Providers, httpClient *http.Client) []adapters.RateProvider {
	var list []adapters.RateProvider

	if cfg.ExchangeRateAPI.BaseURL != "" && cfg.ExchangeRateAPI.APIKey != "" {
		list = append(list, providers.NewExchangeRateAPIClient(
			httpClient,
			strings.TrimSuffix(cfg.ExchangeRateAPI.BaseURL, "/"),
			cfg.ExchangeRateAPI.APIKey,
		))
	}
	if cfg.Fixer.BaseURL != "" && cfg.Fixer.APIKey != "" {
		list = append(list, providers.NewFixerClient(
			httpClient,
			strings.TrimSuffix(cfg.Fixer.BaseURL, "/"),
			cfg.Fixer.APIKey,
		))
	}
	if cfg.Frankfurter.BaseURL != "" {
		list = append(list, providers.NewFrankfurterClient(
			httpClient,
			strings.TrimSuffix(cfg.Frankfurter.BaseURL, "/"),
		))
	}
	return list
}
