package repository

import (
	"context"

	"PortfolioPulse/internal/domain/models"
)

// SeriesLoader loads a normalized time series for a configured asset.
type SeriesLoader interface {
	Load(ctx context.Context, assetID string) (models.TimeSeries, error)
	Assets() []string
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordSeriesRequest(asset, freq string)
	RecordError(kind string)
	RecordCacheHit()
	RecordCacheMiss()
	RecordLastIndex(asset string, value float64)
	RecordLatency(op string, seconds float64)
}
