// Package series turns raw tabular pairs into clean time series and
// applies the periodic resampling and base-100 rescaling transforms.
package series

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"PortfolioPulse/internal/domain/models"
	"PortfolioPulse/internal/ingest"
)

// Day-first layouts; the source data is predominantly European-format.
// Go's parser accepts zero-padded digits for the single-digit verbs.
var dateLayouts = []string{
	"2/1/2006",
	"2/1/06",
	"2006/1/2",
}

// Normalize parses a raw table into a strictly ordered, duplicate-free
// numeric time series.
func Normalize(table ingest.RawTable) (models.TimeSeries, error) {
	parsed := make(models.TimeSeries, 0, len(table))
	for _, row := range table {
		date, ok := parseDate(row.Date)
		if !ok {
			continue
		}
		value, ok := parseValue(row.Value)
		if !ok {
			continue
		}
		parsed = append(parsed, models.Point{Date: date, Value: value})
	}

	if len(parsed) == 0 {
		return nil, &EmptySeriesError{Rows: len(table)}
	}

	// Stable sort keeps source order within equal dates, so the last
	// occurrence in the file wins the duplicate tie-break.
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].Date.Before(parsed[j].Date)
	})

	out := make(models.TimeSeries, 0, len(parsed))
	for _, p := range parsed {
		if n := len(out); n > 0 && out[n-1].Date.Equal(p.Date) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// parseDate attempts a day-first calendar parse. A non-slash separator
// (period, dash) is substituted with a slash and retried.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, ok := tryLayouts(s); ok {
		return t, true
	}

	for _, sep := range []string{".", "-"} {
		if strings.Contains(s, sep) {
			if t, ok := tryLayouts(strings.ReplaceAll(s, sep, "/")); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func tryLayouts(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Day(t.Date()), true
		}
	}
	return time.Time{}, false
}

// parseValue cleans and parses a numeric cell: whitespace and NBSP
// removal, thousands-grouping detection, decimal comma conversion. Only
// finite numbers survive.
func parseValue(s string) (float64, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\u00a0', '\'':
			return -1
		default:
			return r
		}
	}, s)
	if s == "" {
		return 0, false
	}

	// A period alongside a decimal comma implies the period is a
	// thousands mark.
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
