package usecase

import (
	"context"
	"errors"
	"testing"

	"PortfolioPulse/internal/portfolio"
	"PortfolioPulse/internal/repository"
)

func TestCombinedWeightedComposite(t *testing.T) {
	store := newStore(t, map[string]string{
		"ls80": "date;close\n01/01/2021;100\n01/02/2021;110\n",
		"gold": "date;close\n01/01/2021;50\n01/02/2021;51\n",
	})
	weights := map[string]float64{"ls80": 0.8, "gold": 0.2}
	uc := NewCombinedUseCase(store, weights, "ls80", true, nil)

	res, err := uc.Get(context.Background(), "daily")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if res.Points != 2 {
		t.Fatalf("points = %d", res.Points)
	}
	if res.BaseDate != "2021-01-01" {
		t.Errorf("base date = %s", res.BaseDate)
	}
	// 0.8*110 + 0.2*102 = 108.4
	if res.Series.Portfolio[0] != 100 || res.Series.Portfolio[1] != 108.4 {
		t.Errorf("portfolio = %v", res.Series.Portfolio)
	}
	if res.Series.Benchmark[0] != 100 || res.Series.Benchmark[1] != 110 {
		t.Errorf("benchmark = %v", res.Series.Benchmark)
	}
}

func TestCombinedBenchmarkOutsideWeights(t *testing.T) {
	store := newStore(t, map[string]string{
		"ls80": "date;close\n01/01/2021;100\n01/02/2021;110\n",
		"gold": "date;close\n01/01/2021;50\n01/02/2021;55\n",
		"btc":  "date;close\n01/01/2021;10\n01/02/2021;12\n",
	})
	weights := map[string]float64{"gold": 0.5, "btc": 0.5}
	uc := NewCombinedUseCase(store, weights, "ls80", true, nil)

	res, err := uc.Get(context.Background(), "daily")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// 0.5*110 + 0.5*120 = 115
	if res.Series.Portfolio[1] != 115 {
		t.Errorf("portfolio = %v", res.Series.Portfolio)
	}
	if res.Series.Benchmark[1] != 110 {
		t.Errorf("benchmark = %v", res.Series.Benchmark)
	}
}

func TestCombinedDisjointCalendars(t *testing.T) {
	store := newStore(t, map[string]string{
		"ls80": "date;close\n01/01/2021;100\n",
		"gold": "date;close\n01/06/2021;50\n",
	})
	weights := map[string]float64{"ls80": 0.8, "gold": 0.2}
	uc := NewCombinedUseCase(store, weights, "ls80", true, nil)

	_, err := uc.Get(context.Background(), "daily")
	var oerr *portfolio.InsufficientOverlapError
	if !errors.As(err, &oerr) {
		t.Fatalf("expected InsufficientOverlapError, got %v", err)
	}
}

func TestCombinedUnknownConstituent(t *testing.T) {
	store := newStore(t, map[string]string{
		"ls80": "date;close\n01/01/2021;100\n",
	})
	weights := map[string]float64{"ls80": 0.8, "gold": 0.2}
	uc := NewCombinedUseCase(store, weights, "ls80", true, nil)

	_, err := uc.Get(context.Background(), "daily")
	var uerr *repository.UnknownAssetError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnknownAssetError, got %v", err)
	}
}

func TestCombinedFrequencyFallback(t *testing.T) {
	store := newStore(t, map[string]string{
		"ls80": "date;close\n01/01/2021;100\n01/02/2021;110\n",
	})
	weights := map[string]float64{"ls80": 1}
	uc := NewCombinedUseCase(store, weights, "ls80", true, nil)

	res, err := uc.Get(context.Background(), "whenever")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if res.Freq != "monthly" {
		t.Errorf("freq = %s, want monthly fallback", res.Freq)
	}
}
