package ingest

import "fmt"

// Kind discriminates ingestion failures so callers can tell a missing
// file from a file with no usable tabular structure.
type Kind int

const (
	KindMissing Kind = iota
	KindUnreadable
	KindEmpty
	KindNoColumns
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindUnreadable:
		return "unreadable"
	case KindEmpty:
		return "empty"
	case KindNoColumns:
		return "no_columns"
	default:
		return "unknown"
	}
}

// IngestError is a fatal ingestion failure for one source file.
type IngestError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *IngestError) Error() string {
	switch e.Kind {
	case KindMissing:
		return fmt.Sprintf("ingest %s: file not found", e.Path)
	case KindUnreadable:
		return fmt.Sprintf("ingest %s: %v", e.Path, e.Err)
	case KindEmpty:
		return fmt.Sprintf("ingest %s: file is empty", e.Path)
	case KindNoColumns:
		return fmt.Sprintf("ingest %s: no two-column structure found after delimiter fallback", e.Path)
	default:
		return fmt.Sprintf("ingest %s: failed", e.Path)
	}
}

func (e *IngestError) Unwrap() error { return e.Err }
