// Package portfolio aligns several base-100 series on their common dates
// and computes a fixed-weight composite alongside a benchmark.
package portfolio

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"PortfolioPulse/internal/domain/models"
	"PortfolioPulse/internal/series"
)

// Weights maps asset ids to fractional weights. Weights are configuration
// and are never validated or renormalized to sum to 1.
type Weights map[string]float64

// Options controls aggregation behavior.
type Options struct {
	// RebaseOnAlign rescales every aligned series so the first surviving
	// aligned date reads exactly 100 before weighting.
	RebaseOnAlign bool
}

// Result holds the aligned composite and benchmark.
type Result struct {
	BaseDate  time.Time
	Dates     []time.Time
	Benchmark []float64
	Portfolio []float64
}

// InsufficientOverlapError means the date intersection across the
// supplied constituents is empty.
type InsufficientOverlapError struct {
	Assets []string
}

func (e *InsufficientOverlapError) Error() string {
	return fmt.Sprintf("no common dates across constituents: %s", strings.Join(e.Assets, ", "))
}

// Aggregate computes the weighted composite over the strict intersection
// of the constituents' dates. Every series in byAsset participates in the
// alignment; the composite sums over the assets named in weights.
func Aggregate(byAsset map[string]models.TimeSeries, weights Weights, benchmarkID string, opts Options) (*Result, error) {
	if len(byAsset) == 0 {
		return nil, &InsufficientOverlapError{}
	}
	if _, ok := byAsset[benchmarkID]; !ok {
		return nil, fmt.Errorf("benchmark series '%s' not supplied", benchmarkID)
	}
	for id := range weights {
		if _, ok := byAsset[id]; !ok {
			return nil, fmt.Errorf("weighted asset '%s' has no series", id)
		}
	}

	assets := make([]string, 0, len(byAsset))
	for id := range byAsset {
		assets = append(assets, id)
	}
	sort.Strings(assets)

	dates := alignDates(byAsset, assets)
	if len(dates) == 0 {
		return nil, &InsufficientOverlapError{Assets: assets}
	}

	aligned := make(map[string][]float64, len(byAsset))
	for id, s := range byAsset {
		index := make(map[time.Time]float64, len(s))
		for _, p := range s {
			index[p.Date] = p.Value
		}
		values := make([]float64, len(dates))
		for i, d := range dates {
			values[i] = index[d]
		}
		if opts.RebaseOnAlign {
			rebased, err := rebase(dates, values)
			if err != nil {
				return nil, fmt.Errorf("asset '%s': %w", id, err)
			}
			values = rebased
		}
		aligned[id] = values
	}

	composite := make([]float64, len(dates))
	for id, w := range weights {
		for i, v := range aligned[id] {
			composite[i] += w * v
		}
	}

	return &Result{
		BaseDate:  dates[0],
		Dates:     dates,
		Benchmark: aligned[benchmarkID],
		Portfolio: composite,
	}, nil
}

// alignDates returns the sorted intersection of the date keys across all
// constituents (inner join).
func alignDates(byAsset map[string]models.TimeSeries, assets []string) []time.Time {
	counts := make(map[time.Time]int)
	for _, id := range assets {
		for _, p := range byAsset[id] {
			counts[p.Date]++
		}
	}

	// Walking one constituent keeps the result ordered without another sort.
	shared := make([]time.Time, 0)
	for _, p := range byAsset[assets[0]] {
		if counts[p.Date] == len(assets) {
			shared = append(shared, p.Date)
		}
	}
	return shared
}

func rebase(dates []time.Time, values []float64) ([]float64, error) {
	base := values[0]
	if base == 0 {
		return nil, &series.UndefinedBaseError{Date: dates[0]}
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / base * 100
	}
	return out, nil
}
