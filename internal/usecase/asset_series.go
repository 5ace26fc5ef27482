package usecase

import (
	"context"
	"math"
	"time"

	"PortfolioPulse/internal/domain/models"
	domrepo "PortfolioPulse/internal/domain/repository"
	"PortfolioPulse/internal/series"
	"PortfolioPulse/pkg/util"
)

// Served values are rounded to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AssetSeriesUseCase serves one asset's rescaled series at a reporting
// frequency.
type AssetSeriesUseCase struct {
	loader  domrepo.SeriesLoader
	metrics domrepo.Metrics
}

func NewAssetSeriesUseCase(loader domrepo.SeriesLoader, metrics domrepo.Metrics) *AssetSeriesUseCase {
	return &AssetSeriesUseCase{loader: loader, metrics: metrics}
}

// Get runs the single-asset pipeline: load, resample, rescale, format.
func (uc *AssetSeriesUseCase) Get(ctx context.Context, assetID, freqID string) (*models.SeriesResult, error) {
	start := time.Now()

	assetID = util.NormalizeToken(assetID)
	freq := series.ParseFrequency(freqID)

	ts, err := uc.loader.Load(ctx, assetID)
	if err != nil {
		uc.recordError("load")
		return nil, err
	}

	sampled := series.Resample(ts, freq)
	rescaled, err := series.Rescale(sampled)
	if err != nil {
		uc.recordError("rescale")
		return nil, err
	}

	labels := make([]string, len(rescaled))
	values := make([]float64, len(rescaled))
	for i, p := range rescaled {
		labels[i] = freq.Label(p.Date)
		values[i] = round2(p.Value)
	}

	result := &models.SeriesResult{
		Asset:  assetID,
		Freq:   freq.String(),
		Points: len(values),
		Labels: labels,
		Values: values,
	}
	if len(rescaled) > 0 {
		result.BaseDate = rescaled.First().Date.Format("2006-01-02")
	}

	if uc.metrics != nil {
		uc.metrics.RecordSeriesRequest(assetID, freq.String())
		if len(values) > 0 {
			uc.metrics.RecordLastIndex(assetID, values[len(values)-1])
		}
		uc.metrics.RecordLatency("asset_series", time.Since(start).Seconds())
	}
	return result, nil
}

func (uc *AssetSeriesUseCase) recordError(kind string) {
	if uc.metrics != nil {
		uc.metrics.RecordError(kind)
	}
}
