package models

import "time"

// Point is a single dated observation. Dates are day-granular and
// normalized to midnight UTC.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TimeSeries is a time series with strictly ascending, unique dates and
// finite values. Transformations return a new series; a TimeSeries is
// never mutated in place.
type TimeSeries []Point

// Len returns the number of observations.
func (s TimeSeries) Len() int { return len(s) }

// First returns the earliest observation. Callers must check Len first.
func (s TimeSeries) First() Point { return s[0] }

// Last returns the latest observation. Callers must check Len first.
func (s TimeSeries) Last() Point { return s[len(s)-1] }

// Dates returns the observation dates in order.
func (s TimeSeries) Dates() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Date
	}
	return out
}

// Values returns the observation values in order.
func (s TimeSeries) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Clone returns a copy of the series.
func (s TimeSeries) Clone() TimeSeries {
	out := make(TimeSeries, len(s))
	copy(out, s)
	return out
}

// Day normalizes a timestamp to midnight UTC.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
