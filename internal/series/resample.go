package series

import "PortfolioPulse/internal/domain/models"

// Resample reduces a series to the chronologically last observation per
// period bucket, keyed by the bucket's end date. Buckets with no
// observations are omitted; there is no forward-fill. Resampling an
// already-bucketed series at the same frequency is a no-op.
func Resample(s models.TimeSeries, freq Frequency) models.TimeSeries {
	if freq == Daily || len(s) == 0 {
		return s.Clone()
	}

	out := make(models.TimeSeries, 0, len(s))
	for _, p := range s {
		end := freq.BucketEnd(p.Date)
		// Input dates are ascending, so bucket ends are non-decreasing;
		// a repeated end date means the same bucket and the later
		// observation wins.
		if n := len(out); n > 0 && out[n-1].Date.Equal(end) {
			out[n-1].Value = p.Value
			continue
		}
		out = append(out, models.Point{Date: end, Value: p.Value})
	}
	return out
}
