package models

// SeriesResult is the payload served for a single rescaled asset series.
type SeriesResult struct {
	Asset    string    `json:"asset"`
	Freq     string    `json:"freq"`
	BaseDate string    `json:"base_date"`
	Points   int       `json:"points"`
	Labels   []string  `json:"labels"`
	Values   []float64 `json:"values"`
}

// CombinedSeries carries the two aligned series of a combined response.
type CombinedSeries struct {
	Benchmark []float64 `json:"benchmark"`
	Portfolio []float64 `json:"portfolio"`
}

// CombinedResult is the payload served for the weighted composite
// alongside its benchmark.
type CombinedResult struct {
	BaseDate string         `json:"base_date"`
	Freq     string         `json:"freq"`
	Points   int            `json:"points"`
	Labels   []string       `json:"labels"`
	Series   CombinedSeries `json:"series"`
}
