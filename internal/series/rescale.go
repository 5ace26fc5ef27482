package series

import "PortfolioPulse/internal/domain/models"

// Rescale rebases a series so its first point equals exactly 100. An
// empty series is returned unchanged. A zero first value has no defined
// ratio and fails with UndefinedBaseError rather than propagating Inf or
// NaN downstream.
func Rescale(s models.TimeSeries) (models.TimeSeries, error) {
	if len(s) == 0 {
		return s, nil
	}

	base := s[0].Value
	if base == 0 {
		return nil, &UndefinedBaseError{Date: s[0].Date}
	}

	out := make(models.TimeSeries, len(s))
	for i, p := range s {
		out[i] = models.Point{Date: p.Date, Value: p.Value / base * 100}
	}
	return out, nil
}
