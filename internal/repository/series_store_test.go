package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"PortfolioPulse/internal/ingest"
	"PortfolioPulse/pkg/cache"
)

func writeAsset(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWithoutCache(t *testing.T) {
	dir := t.TempDir()
	path := writeAsset(t, dir, "a.csv", "date;close\n01/02/2021;100\n01/03/2021;110\n")

	store := NewSeriesStore(map[string]string{"a": path}, nil, 0, nil)
	ts, err := store.Load(context.Background(), "a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ts) != 2 || ts[1].Value != 110 {
		t.Errorf("series = %+v", ts)
	}
}

func TestLoadUnknownAsset(t *testing.T) {
	store := NewSeriesStore(map[string]string{"a": "a.csv"}, nil, 0, nil)
	_, err := store.Load(context.Background(), "nope")
	var uerr *UnknownAssetError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnknownAssetError, got %v", err)
	}
	if len(uerr.Known) != 1 || uerr.Known[0] != "a" {
		t.Errorf("known = %v", uerr.Known)
	}
}

func TestLoadMissingSource(t *testing.T) {
	store := NewSeriesStore(map[string]string{"a": filepath.Join(t.TempDir(), "absent.csv")}, nil, 0, nil)
	_, err := store.Load(context.Background(), "a")
	var ierr *ingest.IngestError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected IngestError, got %v", err)
	}
	if ierr.Kind != ingest.KindMissing {
		t.Errorf("kind = %v", ierr.Kind)
	}
}

func TestLoadServesFromCache(t *testing.T) {
	dir := t.TempDir()
	path := writeAsset(t, dir, "a.csv", "date;close\n01/02/2021;100\n")

	mc := cache.NewMemoryCache()
	defer mc.Close()
	store := NewSeriesStore(map[string]string{"a": path}, mc, time.Minute, nil)
	ctx := context.Background()

	first, err := store.Load(ctx, "a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Rewrite the file content without letting the mtime move; the cached
	// snapshot for the same (asset, mtime) key must win.
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	writeAsset(t, dir, "a.csv", "date;close\n01/02/2021;999\n")
	if err := os.Chtimes(path, fi.ModTime(), fi.ModTime()); err != nil {
		t.Fatal(err)
	}

	second, err := store.Load(ctx, "a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if second[0].Value != first[0].Value {
		t.Errorf("cache bypassed: got %v, want %v", second[0].Value, first[0].Value)
	}
}

func TestLoadWholesaleInvalidation(t *testing.T) {
	dir := t.TempDir()
	pathA := writeAsset(t, dir, "a.csv", "date;close\n01/02/2021;100\n")
	pathB := writeAsset(t, dir, "b.csv", "date;close\n01/02/2021;50\n")

	mc := cache.NewMemoryCache()
	defer mc.Close()
	catalog := map[string]string{"a": pathA, "b": pathB}
	store := NewSeriesStore(catalog, mc, time.Minute, nil)
	ctx := context.Background()

	if _, err := store.Load(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(ctx, "b"); err != nil {
		t.Fatal(err)
	}

	// Touching one source must flush every cached series, not just its own.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(pathA, future, future); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	bMtime, err := sourceMtime(pathB)
	if err != nil {
		t.Fatal(err)
	}
	bKey := cache.GenerateKeyWithParams("series", "b", bMtime)
	if ok, _ := mc.Exists(ctx, bKey); ok {
		t.Error("sibling cache entry survived wholesale invalidation")
	}
}

func TestHealthReportsMissingSources(t *testing.T) {
	dir := t.TempDir()
	pathA := writeAsset(t, dir, "a.csv", "date;close\n01/02/2021;100\n")
	store := NewSeriesStore(map[string]string{
		"a": pathA,
		"b": filepath.Join(dir, "absent.csv"),
	}, nil, 0, nil)

	health := store.Health(context.Background())
	if health["a"] != nil {
		t.Errorf("asset a: %v", health["a"])
	}
	if health["b"] == nil {
		t.Error("asset b should report missing source")
	}
}
