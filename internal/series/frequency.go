package series

import (
	"strings"
	"time"

	"PortfolioPulse/internal/domain/models"
)

// Frequency is the reporting period for resampling.
type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (f Frequency) String() string {
	switch f {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		return "monthly"
	}
}

// DefaultFrequency is the fallback for unrecognized identifiers.
func DefaultFrequency() Frequency { return Monthly }

// ParseFrequency maps human synonyms onto a canonical frequency. An
// unrecognized identifier falls back to Monthly; this leniency is part of
// the contract and never an error.
func ParseFrequency(s string) Frequency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return Daily
	case "weekly", "week", "w":
		return Weekly
	case "monthly", "month", "m":
		return Monthly
	case "quarterly", "quarter", "q":
		return Quarterly
	case "yearly", "year", "y", "annual", "annually":
		return Yearly
	default:
		return DefaultFrequency()
	}
}

// BucketEnd returns the end date of the period bucket containing t.
// Weeks end on Friday; months, quarters and years end on their calendar
// boundary. Daily is the identity.
func (f Frequency) BucketEnd(t time.Time) time.Time {
	y, m, d := t.Date()
	switch f {
	case Daily:
		return models.Day(y, m, d)
	case Weekly:
		offset := (int(time.Friday) - int(t.Weekday()) + 7) % 7
		return models.Day(y, m, d+offset)
	case Monthly:
		return models.Day(y, m+1, 0)
	case Quarterly:
		endMonth := ((int(m)-1)/3)*3 + 3
		return models.Day(y, time.Month(endMonth)+1, 0)
	case Yearly:
		return models.Day(y, time.December, 31)
	default:
		return models.Day(y, m+1, 0)
	}
}

// Label formats a period-end date at the granularity of the frequency:
// month level for monthly/quarterly, calendar day for daily/weekly, year
// for yearly.
func (f Frequency) Label(t time.Time) string {
	switch f {
	case Monthly, Quarterly:
		return t.Format("2006-01")
	case Yearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}
