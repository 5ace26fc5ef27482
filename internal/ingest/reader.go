// Package ingest reads raw delimited price-history files into two-column
// (date text, value text) tables. It tolerates unknown delimiters,
// byte-order marks, Excel "sep=" directives, and ambiguous headers; no
// date or numeric coercion happens here.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Row is one raw (date, value) pair, still as text.
type Row struct {
	Date  string
	Value string
}

// RawTable is the ordered two-column projection of a source file.
type RawTable []Row

// Delimiter fallback priority; zero means generic whitespace splitting.
var delimiterPriority = []rune{';', ',', '\t', '|', 0}

// Read ingests a source file into a RawTable. Given the same bytes it
// always produces the same table.
func Read(path string) (RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &IngestError{Path: path, Kind: KindMissing, Err: err}
		}
		return nil, &IngestError{Path: path, Kind: KindUnreadable, Err: err}
	}

	text := strings.TrimPrefix(string(data), "\ufeff")
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, &IngestError{Path: path, Kind: KindEmpty}
	}

	// An optional first line may declare the separator (Excel convention:
	// "sep=;"). It is skipped when parsing the body.
	var forced rune
	if sep, ok := separatorDirective(lines[0]); ok {
		forced = sep
		lines = lines[1:]
		if len(lines) == 0 {
			return nil, &IngestError{Path: path, Kind: KindEmpty}
		}
	}

	for _, delim := range candidateDelimiters(forced, lines) {
		table, ok := parseWith(lines, delim)
		if ok {
			return table, nil
		}
	}

	return nil, &IngestError{Path: path, Kind: KindNoColumns}
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func separatorDirective(line string) (rune, bool) {
	l := strings.ToLower(strings.TrimSpace(line))
	if !strings.HasPrefix(l, "sep=") {
		return 0, false
	}
	rest := []rune(strings.TrimSpace(line)[4:])
	if len(rest) != 1 {
		return 0, false
	}
	return rest[0], true
}

// candidateDelimiters orders the attempts: a forced directive wins
// outright; otherwise the sniffed delimiter is tried first, then the
// fixed fallback priority list.
func candidateDelimiters(forced rune, lines []string) []rune {
	if forced != 0 {
		return []rune{forced}
	}

	out := make([]rune, 0, len(delimiterPriority)+1)
	if detected, ok := detectDelimiter(lines); ok {
		out = append(out, detected)
	}
	for _, d := range delimiterPriority {
		if len(out) > 0 && d == out[0] {
			continue
		}
		out = append(out, d)
	}
	return out
}

// detectDelimiter scores each candidate by its minimum occurrence count
// across a sample of lines and picks the best consistent one.
func detectDelimiter(lines []string) (rune, bool) {
	sample := lines
	if len(sample) > 10 {
		sample = sample[:10]
	}

	best, bestScore := rune(0), 0
	for _, d := range delimiterPriority {
		if d == 0 {
			continue
		}
		score := -1
		for _, l := range sample {
			n := strings.Count(l, string(d))
			if score < 0 || n < score {
				score = n
			}
		}
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	if bestScore == 0 {
		return 0, false
	}
	return best, true
}

// parseWith attempts one delimiter. It succeeds only when the result has
// at least two columns and at least one data row.
func parseWith(lines []string, delim rune) (RawTable, bool) {
	records := splitRecords(lines, delim)
	if len(records) == 0 || len(records[0]) < 2 {
		return nil, false
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	body := records[1:]
	if syntheticHeaders(headers) || headerlessRow(headers) {
		// No usable header names; fall back to positional names and keep
		// the first record as data.
		body = records
		for i := range headers {
			headers[i] = fmt.Sprintf("col%d", i)
		}
	}
	if len(body) == 0 {
		return nil, false
	}

	dateIdx, valueIdx := selectColumns(headers, body)

	table := make(RawTable, 0, len(body))
	for _, rec := range body {
		if dateIdx >= len(rec) || valueIdx >= len(rec) {
			continue
		}
		table = append(table, Row{Date: rec[dateIdx], Value: rec[valueIdx]})
	}
	if len(table) == 0 {
		return nil, false
	}
	return table, true
}

func splitRecords(lines []string, delim rune) [][]string {
	if delim == 0 {
		records := make([][]string, 0, len(lines))
		for _, l := range lines {
			records = append(records, strings.Fields(l))
		}
		return records
	}

	r := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil
	}
	return records
}
