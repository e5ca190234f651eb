package freq

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
)

// TokenSource yields normalized tokens one at a time.
// Next returns io.EOF once the sequence is exhausted.
type TokenSource interface {
	Next() (string, error)
}

// SliceSource is a TokenSource over an in-memory token list.
type SliceSource struct {
	tokens []string
	pos    int
}

// NewSliceSource wraps tokens without copying them.
func NewSliceSource(tokens []string) *SliceSource {
	return &SliceSource{tokens: tokens}
}

// Next implements TokenSource.
func (s *SliceSource) Next() (string, error) {
	if s.pos >= len(s.tokens) {
		return "", io.EOF
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

// cancelCheckInterval controls how often Build polls the context.
const cancelCheckInterval = 1024

// Build consumes src once and counts every token.
// A source failure aborts the build and no partial table is returned.
func Build(ctx context.Context, src TokenSource) (*Table, error) {
	table := NewTable()
	for n := 0; ; n++ {
		if n%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		tok, err := src.Next()
		if errors.Is(err, io.EOF) {
			return table, nil
		}
		if err != nil {
			if errors.Is(err, internalerr.ErrSourceRead) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", internalerr.ErrSourceRead, err)
		}
		table.Add(tok)
	}
}

// BuildParallel builds one partial table per source using at most workers
// goroutines and merges them in source order.
// The result equals Build over the concatenation of all sources.
func BuildParallel(ctx context.Context, srcs []TokenSource, workers int) (*Table, error) {
	if workers <= 0 {
		workers = 1
	}
	partials := make([]*Table, len(srcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range srcs {
		g.Go(func() error {
			t, err := Build(gctx, src)
			if err != nil {
				return fmt.Errorf("source %d: %w", i, err)
			}
			partials[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := NewTable()
	for _, p := range partials {
		merged.Merge(p)
	}
	return merged, nil
}
