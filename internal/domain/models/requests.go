package models

// SeriesRequest carries query parameters for the single-asset endpoint.
// Asset and frequency defaults are applied by the handler from
// configuration.
type SeriesRequest struct {
	Asset string `query:"asset" validate:"omitempty,max=32"`
	Freq  string `query:"freq" validate:"omitempty,max=16"`
}

// CombinedRequest carries query parameters for the combined endpoint.
type CombinedRequest struct {
	Freq string `query:"freq" validate:"omitempty,max=16"`
}
