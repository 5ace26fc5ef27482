package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asset.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSemicolonWithHeader(t *testing.T) {
	table, err := Read(writeSource(t, "Date;Close\n01/02/2021;100\n01/03/2021;110\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("rows = %d", len(table))
	}
	if table[0].Date != "01/02/2021" || table[0].Value != "100" {
		t.Errorf("row 0 = %+v", table[0])
	}
	if table[1].Value != "110" {
		t.Errorf("row 1 = %+v", table[1])
	}
}

func TestReadPipeDelimitedFallback(t *testing.T) {
	table, err := Read(writeSource(t, "date|value\n01/02/2021|100\n01/03/2021|110\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("rows = %d", len(table))
	}
	if table[1].Date != "01/03/2021" {
		t.Errorf("row 1 = %+v", table[1])
	}
}

func TestReadSeparatorDirective(t *testing.T) {
	table, err := Read(writeSource(t, "sep=;\ndate;close\n01/02/2021;100\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(table) != 1 {
		t.Fatalf("rows = %d", len(table))
	}
	if table[0].Value != "100" {
		t.Errorf("row 0 = %+v", table[0])
	}
}

func TestReadByteOrderMark(t *testing.T) {
	table, err := Read(writeSource(t, "\ufeffdate,close\n01/02/2021,100\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if table[0].Date != "01/02/2021" {
		t.Errorf("row 0 = %+v", table[0])
	}
}

func TestReadBlankLinesTolerated(t *testing.T) {
	table, err := Read(writeSource(t, "date,close\n\n01/02/2021,100\n\n01/03/2021,110\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("rows = %d", len(table))
	}
}

func TestReadHeaderless(t *testing.T) {
	table, err := Read(writeSource(t, "01/02/2021;100\n01/03/2021;110\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// The first record is data, not a header, and must survive.
	if len(table) != 2 {
		t.Fatalf("rows = %d", len(table))
	}
	if table[0].Date != "01/02/2021" {
		t.Errorf("row 0 = %+v", table[0])
	}
}

func TestReadWhitespaceDelimited(t *testing.T) {
	table, err := Read(writeSource(t, "date close\n01/02/2021 100\n01/03/2021 110\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("rows = %d", len(table))
	}
}

func TestReadValueColumnAlias(t *testing.T) {
	// "close" outranks an extra numeric column by alias priority.
	table, err := Read(writeSource(t, "date,volume,close\n01/02/2021,9999,100\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if table[0].Value != "100" {
		t.Errorf("value = %q, want close column", table[0].Value)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.csv"))
	var ierr *IngestError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected IngestError, got %v", err)
	}
	if ierr.Kind != KindMissing {
		t.Errorf("kind = %v", ierr.Kind)
	}
}

func TestReadEmptyFile(t *testing.T) {
	_, err := Read(writeSource(t, ""))
	var ierr *IngestError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected IngestError, got %v", err)
	}
	if ierr.Kind != KindEmpty {
		t.Errorf("kind = %v", ierr.Kind)
	}
}

func TestReadSingleColumn(t *testing.T) {
	_, err := Read(writeSource(t, "justonecolumn\nxyz\n"))
	var ierr *IngestError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected IngestError, got %v", err)
	}
	if ierr.Kind != KindNoColumns {
		t.Errorf("kind = %v", ierr.Kind)
	}
}

func TestReadDeterministic(t *testing.T) {
	path := writeSource(t, "date;close\n01/02/2021;100\n01/03/2021;110\n")
	first, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Read(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: rows differ", i)
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d row %d: %+v != %+v", i, j, again[j], first[j])
			}
		}
	}
}
