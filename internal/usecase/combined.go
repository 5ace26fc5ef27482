package usecase

import (
	"context"
	"sort"
	"time"

	"PortfolioPulse/internal/domain/models"
	domrepo "PortfolioPulse/internal/domain/repository"
	"PortfolioPulse/internal/portfolio"
	"PortfolioPulse/internal/series"
)

// CombinedUseCase serves the weighted composite alongside the configured
// benchmark over their aligned dates.
type CombinedUseCase struct {
	loader    domrepo.SeriesLoader
	weights   portfolio.Weights
	benchmark string
	rebase    bool
	metrics   domrepo.Metrics
}

func NewCombinedUseCase(loader domrepo.SeriesLoader, weights map[string]float64, benchmark string, rebaseOnAlign bool, metrics domrepo.Metrics) *CombinedUseCase {
	return &CombinedUseCase{
		loader:    loader,
		weights:   portfolio.Weights(weights),
		benchmark: benchmark,
		rebase:    rebaseOnAlign,
		metrics:   metrics,
	}
}

// Get runs the multi-asset pipeline: load + resample + rescale every
// constituent, then align and aggregate.
func (uc *CombinedUseCase) Get(ctx context.Context, freqID string) (*models.CombinedResult, error) {
	start := time.Now()
	freq := series.ParseFrequency(freqID)

	byAsset := make(map[string]models.TimeSeries, len(uc.weights)+1)
	for _, id := range uc.constituents() {
		ts, err := uc.loader.Load(ctx, id)
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
		byAsset[id] = rescaled
	}

	res, err := portfolio.Aggregate(byAsset, uc.weights, uc.benchmark, portfolio.Options{RebaseOnAlign: uc.rebase})
	if err != nil {
		uc.recordError("aggregate")
		return nil, err
	}

	labels := make([]string, len(res.Dates))
	benchmark := make([]float64, len(res.Dates))
	composite := make([]float64, len(res.Dates))
	for i := range res.Dates {
		labels[i] = freq.Label(res.Dates[i])
		benchmark[i] = round2(res.Benchmark[i])
		composite[i] = round2(res.Portfolio[i])
	}

	if uc.metrics != nil {
		uc.metrics.RecordSeriesRequest("combined", freq.String())
		if len(composite) > 0 {
			uc.metrics.RecordLastIndex("portfolio", composite[len(composite)-1])
		}
		uc.metrics.RecordLatency("combined", time.Since(start).Seconds())
	}

	return &models.CombinedResult{
		BaseDate: res.BaseDate.Format("2006-01-02"),
		Freq:     freq.String(),
		Points:   len(labels),
		Labels:   labels,
		Series: models.CombinedSeries{
			Benchmark: benchmark,
			Portfolio: composite,
		},
	}, nil
}

// constituents lists every asset that participates in the aggregation:
// the weighted set plus the benchmark, without duplicates.
func (uc *CombinedUseCase) constituents() []string {
	out := make([]string, 0, len(uc.weights)+1)
	seen := make(map[string]bool, len(uc.weights)+1)
	for _, id := range sortedKeys(uc.weights) {
		out = append(out, id)
		seen[id] = true
	}
	if !seen[uc.benchmark] {
		out = append(out, uc.benchmark)
	}
	return out
}

func (uc *CombinedUseCase) recordError(kind string) {
	if uc.metrics != nil {
		uc.metrics.RecordError(kind)
	}
}

// Deterministic load order keeps logs and failures stable.
func sortedKeys(w portfolio.Weights) []string {
	out := make([]string, 0, len(w))
	for id := range w {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
