package series

import (
	"fmt"
	"time"
)

// EmptySeriesError means every row of a source table was dropped during
// date/value parsing.
type EmptySeriesError struct {
	Rows int
}

func (e *EmptySeriesError) Error() string {
	return fmt.Sprintf("no valid rows survived parsing (%d raw rows)", e.Rows)
}

// UndefinedBaseError means a series cannot be rebased to 100 because its
// first value is zero. Rescaling fails instead of propagating Inf/NaN.
type UndefinedBaseError struct {
	Date time.Time
}

func (e *UndefinedBaseError) Error() string {
	return fmt.Sprintf("cannot rescale to base 100: first value at %s is zero", e.Date.Format("2006-01-02"))
}
