package di

import (
	"fmt"

	domrepo "PortfolioPulse/internal/domain/repository"
	"PortfolioPulse/internal/handler/api"
	internalrepo "PortfolioPulse/internal/repository"
	"PortfolioPulse/internal/usecase"
	"PortfolioPulse/pkg/cache"
	"PortfolioPulse/pkg/config"
	xhttp "PortfolioPulse/pkg/http"
	"PortfolioPulse/pkg/logger"
	"PortfolioPulse/pkg/metrics"
	"PortfolioPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder. Disabled
// metrics yield a nil recorder; consumers treat nil as a no-op.
func ProvideMetrics(cfg *config.Config) domrepo.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New()
}

// ProvideCache creates the cache service for the configured backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "", "none":
		return nil, nil
	case "memory":
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MaxEntries),
		), nil
	case "redis":
		return cache.NewRedisCache(redisOptions(cfg)...)
	case "layered":
		rc, err := cache.NewRedisCache(redisOptions(cfg)...)
		if err != nil {
			return nil, err
		}
		return cache.NewLayeredCache(rc,
			cache.WithLayeredMemorySize(cfg.Cache.MaxEntries),
		), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

func redisOptions(cfg *config.Config) []cache.RedisOption {
	return []cache.RedisOption{
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	}
}

// ProvideSeriesStore creates the file-backed series repository.
func ProvideSeriesStore(cfg *config.Config, cacheSvc cache.Service, m domrepo.Metrics) *internalrepo.SeriesStore {
	return internalrepo.NewSeriesStore(cfg.Catalog(), cacheSvc, cfg.Cache.TTL, m)
}

// ProvideAssetSeriesUseCase creates the single-asset pipeline use case.
func ProvideAssetSeriesUseCase(store *internalrepo.SeriesStore, m domrepo.Metrics) *usecase.AssetSeriesUseCase {
	return usecase.NewAssetSeriesUseCase(store, m)
}

// ProvideCombinedUseCase creates the weighted-composite use case.
func ProvideCombinedUseCase(cfg *config.Config, store *internalrepo.SeriesStore, m domrepo.Metrics) *usecase.CombinedUseCase {
	return usecase.NewCombinedUseCase(
		store,
		cfg.Portfolio.Weights,
		cfg.Portfolio.Benchmark,
		cfg.Portfolio.RebaseOnAlign,
		m,
	)
}

// ProvideHandler creates the Echo HTTP handler.
func ProvideHandler(
	l *logger.Logger,
	assets *usecase.AssetSeriesUseCase,
	combined *usecase.CombinedUseCase,
	store *internalrepo.SeriesStore,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewSeriesEchoHandler(l, assets, combined, store, cfg.Data.DefaultAsset, cfg.Data.DefaultFrequency)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *logger.Logger, h xhttp.Handler, cacheSvc cache.Service) *server.App {
	return server.New(cfg, l, h, cacheSvc)
}
