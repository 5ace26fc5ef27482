// Package repository loads normalized asset series from configured source
// files, optionally through a cache keyed by (asset id, source mtime).
package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"PortfolioPulse/internal/domain/models"
	domrepo "PortfolioPulse/internal/domain/repository"
	"PortfolioPulse/internal/ingest"
	"PortfolioPulse/internal/series"
	"PortfolioPulse/pkg/cache"
)

const cachePrefix = "series"

// UnknownAssetError names an asset id outside the configured catalog.
type UnknownAssetError struct {
	Asset string
	Known []string
}

func (e *UnknownAssetError) Error() string {
	return fmt.Sprintf("unknown asset '%s', valid assets: %s", e.Asset, strings.Join(e.Known, ", "))
}

// SeriesStore implements domain.repository.SeriesLoader over a read-only
// catalog of source files. The cache, when present, is invalidated in
// full whenever any tracked source changes; partial invalidation could
// serve a fresh asset next to a stale sibling in one aggregation.
type SeriesStore struct {
	catalog map[string]string // asset id -> source path
	cache   cache.Service     // nil disables caching
	ttl     time.Duration
	metrics domrepo.Metrics

	mu     sync.Mutex
	mtimes map[string]int64 // snapshot of tracked source mtimes
}

// NewSeriesStore creates a store over the given catalog. cacheSvc may be
// nil; metrics may be nil.
func NewSeriesStore(catalog map[string]string, cacheSvc cache.Service, ttl time.Duration, metrics domrepo.Metrics) *SeriesStore {
	return &SeriesStore{
		catalog: catalog,
		cache:   cacheSvc,
		ttl:     ttl,
		metrics: metrics,
		mtimes:  make(map[string]int64, len(catalog)),
	}
}

// Assets returns the configured asset ids, sorted.
func (s *SeriesStore) Assets() []string {
	out := make([]string, 0, len(s.catalog))
	for id := range s.catalog {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Load ingests and normalizes the series for one asset, serving from
// cache when the source file is unchanged.
func (s *SeriesStore) Load(ctx context.Context, assetID string) (models.TimeSeries, error) {
	path, ok := s.catalog[assetID]
	if !ok {
		return nil, &UnknownAssetError{Asset: assetID, Known: s.Assets()}
	}

	if s.cache == nil {
		return s.loadFromFile(path)
	}

	mtime, statErr := sourceMtime(path)
	if statErr != nil {
		// Let ingest produce the properly typed error.
		return s.loadFromFile(path)
	}

	s.invalidateIfChanged(ctx)

	key := cache.GenerateKeyWithParams(cachePrefix, assetID, mtime)
	var cached models.TimeSeries
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		if s.metrics != nil {
			s.metrics.RecordCacheHit()
		}
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		return nil, fmt.Errorf("series cache: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordCacheMiss()
	}

	ts, err := s.loadFromFile(path)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, ts, s.ttl)
	return ts, nil
}

// Health stats every tracked source file.
func (s *SeriesStore) Health(_ context.Context) map[string]error {
	out := make(map[string]error, len(s.catalog))
	for id, path := range s.catalog {
		_, err := os.Stat(path)
		out[id] = err
	}
	return out
}

func (s *SeriesStore) loadFromFile(path string) (models.TimeSeries, error) {
	table, err := ingest.Read(path)
	if err != nil {
		return nil, err
	}
	return series.Normalize(table)
}

// invalidateIfChanged compares the current mtimes of every tracked
// source with the last snapshot and clears the whole series cache when
// any of them moved.
func (s *SeriesStore) invalidateIfChanged(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	current := make(map[string]int64, len(s.catalog))
	for id, path := range s.catalog {
		mtime, err := sourceMtime(path)
		if err != nil {
			mtime = -1
		}
		current[id] = mtime
		if prev, ok := s.mtimes[id]; ok && prev != mtime {
			changed = true
		}
	}

	if changed {
		_ = s.cache.DeleteByPattern(ctx, cache.BuildPattern(cachePrefix+":"))
	}
	s.mtimes = current
}

func sourceMtime(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.ModTime().UnixNano(), nil
}
