package ingest

import (
	"strconv"
	"strings"
)

// Column selection runs an ordered list of matcher strategies; the first
// one returning a definite index wins. Selection depends only on the fixed
// alias priority, never on map iteration order.

var dateAliases = []string{"date", "data", "datetime", "timestamp", "time", "giorno"}

var valueAliases = []string{"value", "valore", "close", "price", "prezzo", "adj close", "last", "nav"}

type columnMatcher func(headers []string, rows [][]string, taken int) int

// aliasMatcher returns the first column whose normalized header is an
// exact member of the alias set, honoring alias priority order.
func aliasMatcher(aliases []string) columnMatcher {
	return func(headers []string, _ [][]string, taken int) int {
		for _, alias := range aliases {
			for i, h := range headers {
				if i == taken {
					continue
				}
				if h == alias {
					return i
				}
			}
		}
		return -1
	}
}

// firstColumn matches the first column not already taken.
func firstColumn(headers []string, _ [][]string, taken int) int {
	for i := range headers {
		if i != taken {
			return i
		}
	}
	return -1
}

// mostlyNumeric matches the first remaining column whose sampled entries
// are predominantly numeric-looking.
func mostlyNumeric(headers []string, rows [][]string, taken int) int {
	for i := range headers {
		if i == taken {
			continue
		}
		sampled, numeric := 0, 0
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			sampled++
			if numericLooking(cell) {
				numeric++
			}
			if sampled >= 50 {
				break
			}
		}
		if sampled > 0 && numeric*10 >= sampled*6 {
			return i
		}
	}
	return -1
}

// lastColumn matches the last column not already taken.
func lastColumn(headers []string, _ [][]string, taken int) int {
	for i := len(headers) - 1; i >= 0; i-- {
		if i != taken {
			return i
		}
	}
	return -1
}

// selectColumns picks the date and value column indices for a parsed
// table. It always succeeds for tables with at least two columns.
func selectColumns(headers []string, rows [][]string) (dateIdx, valueIdx int) {
	dateIdx = -1
	for _, m := range []columnMatcher{aliasMatcher(dateAliases), firstColumn} {
		if idx := m(headers, rows, -1); idx >= 0 {
			dateIdx = idx
			break
		}
	}

	valueIdx = -1
	for _, m := range []columnMatcher{aliasMatcher(valueAliases), mostlyNumeric, lastColumn} {
		if idx := m(headers, rows, dateIdx); idx >= 0 {
			valueIdx = idx
			break
		}
	}
	return dateIdx, valueIdx
}

// numericLooking reports whether a cell plausibly holds a number,
// tolerating decimal commas, grouping marks, and sign.
func numericLooking(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\'':
			return -1
		default:
			return r
		}
	}, s)
	if strings.Contains(cleaned, ",") && strings.Contains(cleaned, ".") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	_, err := strconv.ParseFloat(cleaned, 64)
	return err == nil
}

// syntheticHeaders reports whether a header row carries no real names
// (empty or pandas-style "unnamed" placeholders).
func syntheticHeaders(headers []string) bool {
	for _, h := range headers {
		if h != "" && !strings.HasPrefix(h, "unnamed") {
			return false
		}
	}
	return true
}

// headerlessRow reports whether the would-be header row already looks
// like data, meaning the source has no header line at all.
func headerlessRow(headers []string) bool {
	if len(headers) < 2 {
		return false
	}
	for _, h := range headers {
		if numericLooking(h) {
			return true
		}
	}
	return false
}
