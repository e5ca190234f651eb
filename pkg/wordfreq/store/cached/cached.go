package cached

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/report"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
	"github.com/cognicore/wordfreq/pkg/wordfreq/topk"
)

// DefaultSize is the number of reports kept in memory.
const DefaultSize = 128

// Store wraps another store.Store with an LRU cache for GetReport.
type Store struct {
	next  store.Store
	cache *lru.Cache[string, report.Report]
}

// New wraps next. size <= 0 uses DefaultSize.
func New(next store.Store, size int) (*Store, error) {
	if next == nil {
		return nil, fmt.Errorf("%w: nil backing store", internalerr.ErrInvalidInput)
	}
	if size <= 0 {
		size = DefaultSize
	}
	cache, err := lru.New[string, report.Report](size)
	if err != nil {
		return nil, err
	}
	return &Store{next: next, cache: cache}, nil
}

// Close closes the backing store and drops the cache.
func (s *Store) Close() error {
	s.cache.Purge()
	return s.next.Close()
}

// SaveReport writes through to the backing store.
func (s *Store) SaveReport(ctx context.Context, r report.Report) error {
	if err := s.next.SaveReport(ctx, r); err != nil {
		return err
	}
	s.cache.Add(r.ID, clone(r))
	return nil
}

// GetReport serves from the cache when possible.
func (s *Store) GetReport(ctx context.Context, id string) (report.Report, error) {
	if r, ok := s.cache.Get(id); ok {
		return clone(r), nil
	}
	r, err := s.next.GetReport(ctx, id)
	if err != nil {
		return report.Report{}, err
	}
	s.cache.Add(id, clone(r))
	return r, nil
}

// ListReports is not cached.
func (s *Store) ListReports(ctx context.Context, limit int) ([]report.Report, error) {
	return s.next.ListReports(ctx, limit)
}

// Len returns the number of cached reports.
func (s *Store) Len() int {
	return s.cache.Len()
}

func clone(r report.Report) report.Report {
	r.Top = append([]topk.Entry(nil), r.Top...)
	r.Bottom = append([]topk.Entry(nil), r.Bottom...)
	return r
}
