package portfolio

import (
	"errors"
	"math"
	"testing"
	"time"

	"PortfolioPulse/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time { return models.Day(y, m, d) }

func pair(d1, d2 time.Time, v1, v2 float64) models.TimeSeries {
	return models.TimeSeries{
		{Date: d1, Value: v1},
		{Date: d2, Value: v2},
	}
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAggregateWeightedComposite(t *testing.T) {
	d1, d2 := day(2021, time.January, 31), day(2021, time.February, 28)
	byAsset := map[string]models.TimeSeries{
		"a": pair(d1, d2, 100, 110),
		"b": pair(d1, d2, 100, 90),
	}
	weights := Weights{"a": 0.8, "b": 0.2}

	res, err := Aggregate(byAsset, weights, "a", Options{})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !res.BaseDate.Equal(d1) {
		t.Errorf("base date = %v", res.BaseDate)
	}
	if !almostEqual(res.Portfolio[0], 100) || !almostEqual(res.Portfolio[1], 106) {
		t.Errorf("portfolio = %v, want [100 106]", res.Portfolio)
	}
	if !almostEqual(res.Benchmark[1], 110) {
		t.Errorf("benchmark = %v", res.Benchmark)
	}
}

func TestAggregateInnerJoinDropsPartialDates(t *testing.T) {
	d1, d2, d3 := day(2021, time.January, 31), day(2021, time.February, 28), day(2021, time.March, 31)
	byAsset := map[string]models.TimeSeries{
		"a": {{Date: d1, Value: 100}, {Date: d2, Value: 105}, {Date: d3, Value: 120}},
		"b": {{Date: d1, Value: 100}, {Date: d3, Value: 130}},
	}
	res, err := Aggregate(byAsset, Weights{"a": 0.5, "b": 0.5}, "a", Options{})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(res.Dates) != 2 {
		t.Fatalf("aligned dates = %v", res.Dates)
	}
	if !res.Dates[0].Equal(d1) || !res.Dates[1].Equal(d3) {
		t.Errorf("dates = %v", res.Dates)
	}
}

func TestAggregateIntersectionBoundedByShortest(t *testing.T) {
	d1, d2 := day(2021, time.January, 31), day(2021, time.February, 28)
	byAsset := map[string]models.TimeSeries{
		"a": {{Date: d1, Value: 1}, {Date: d2, Value: 2}},
		"b": {{Date: d2, Value: 3}},
	}
	res, err := Aggregate(byAsset, Weights{"a": 1}, "a", Options{})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	min := len(byAsset["b"])
	if len(res.Dates) > min {
		t.Errorf("intersection %d exceeds shortest input %d", len(res.Dates), min)
	}
}

func TestAggregateNoOverlap(t *testing.T) {
	byAsset := map[string]models.TimeSeries{
		"a": pair(day(2021, time.January, 31), day(2021, time.February, 28), 100, 101),
		"b": pair(day(2021, time.May, 31), day(2021, time.June, 30), 100, 99),
	}
	_, err := Aggregate(byAsset, Weights{"a": 0.5, "b": 0.5}, "a", Options{})
	var oerr *InsufficientOverlapError
	if !errors.As(err, &oerr) {
		t.Fatalf("expected InsufficientOverlapError, got %v", err)
	}
	if len(oerr.Assets) != 2 {
		t.Errorf("constituents = %v", oerr.Assets)
	}
}

func TestAggregateRebaseOnAlign(t *testing.T) {
	// Only the later dates overlap; with rebase the composite restarts
	// at 100 on the first aligned date.
	d1, d2, d3 := day(2021, time.January, 31), day(2021, time.February, 28), day(2021, time.March, 31)
	byAsset := map[string]models.TimeSeries{
		"a": {{Date: d1, Value: 100}, {Date: d2, Value: 110}, {Date: d3, Value: 121}},
		"b": {{Date: d2, Value: 100}, {Date: d3, Value: 90}},
	}

	res, err := Aggregate(byAsset, Weights{"a": 0.5, "b": 0.5}, "a", Options{RebaseOnAlign: true})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !res.BaseDate.Equal(d2) {
		t.Errorf("base date = %v", res.BaseDate)
	}
	if !almostEqual(res.Portfolio[0], 100) {
		t.Errorf("portfolio[0] = %v, want 100", res.Portfolio[0])
	}
	if !almostEqual(res.Benchmark[0], 100) || !almostEqual(res.Benchmark[1], 110) {
		t.Errorf("benchmark = %v", res.Benchmark)
	}

	// Without rebase, asset a keeps its original-series base.
	raw, err := Aggregate(byAsset, Weights{"a": 0.5, "b": 0.5}, "a", Options{})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !almostEqual(raw.Benchmark[0], 110) {
		t.Errorf("raw benchmark[0] = %v, want carried-over 110", raw.Benchmark[0])
	}
}

func TestAggregateWeightsNotRenormalized(t *testing.T) {
	d1, d2 := day(2021, time.January, 31), day(2021, time.February, 28)
	byAsset := map[string]models.TimeSeries{
		"a": pair(d1, d2, 100, 110),
	}
	// Weights summing to 0.5 are configuration freedom, not an error.
	res, err := Aggregate(byAsset, Weights{"a": 0.5}, "a", Options{})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !almostEqual(res.Portfolio[0], 50) || !almostEqual(res.Portfolio[1], 55) {
		t.Errorf("portfolio = %v", res.Portfolio)
	}
}

func TestAggregateMissingWeightedSeries(t *testing.T) {
	byAsset := map[string]models.TimeSeries{
		"a": pair(day(2021, time.January, 31), day(2021, time.February, 28), 100, 110),
	}
	if _, err := Aggregate(byAsset, Weights{"a": 0.8, "ghost": 0.2}, "a", Options{}); err == nil {
		t.Fatal("expected error for weighted asset without series")
	}
}
