package wordfreq

import (
	"context"
	"fmt"
	"io"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/ingest"
	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/report"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
	"github.com/cognicore/wordfreq/pkg/wordfreq/topk"
)

// Analyzer is the main word-frequency facade
type Analyzer struct {
	tokenizer *ingest.Tokenizer
	store     store.Store
	builder   *report.Builder
	k         int
	workers   int
}

// Options configures an Analyzer
type Options struct {
	Tokenizer *ingest.Tokenizer // nil uses a tokenizer with no stopwords
	Store     store.Store       // optional; reports are persisted when set
	K         int               // entries per list; 0 gives empty lists, config.DefaultK is the usual 10
	Workers   int               // parallel table builds; 0 means 1
	Builder   *report.Builder   // optional; tests inject a fixed clock
}

// New creates an Analyzer with the given dependencies
func New(opts Options) (*Analyzer, error) {
	if opts.K < 0 {
		return nil, fmt.Errorf("%w: k must be >= 0, got %d", internalerr.ErrInvalidInput, opts.K)
	}
	a := &Analyzer{
		tokenizer: opts.Tokenizer,
		store:     opts.Store,
		builder:   opts.Builder,
		k:         opts.K,
		workers:   opts.Workers,
	}
	if a.tokenizer == nil {
		a.tokenizer = ingest.NewTokenizer(nil)
	}
	if a.builder == nil {
		a.builder = report.New()
	}
	if a.workers <= 0 {
		a.workers = 1
	}
	return a, nil
}

// Close cleanly shuts down the Analyzer
func (a *Analyzer) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// K returns the configured selection size.
func (a *Analyzer) K() int {
	return a.k
}

// Analyze counts the words of r and reports the k most and least frequent.
// The report is persisted when the Analyzer has a store.
func (a *Analyzer) Analyze(ctx context.Context, name string, r io.Reader) (report.Report, error) {
	table, err := freq.Build(ctx, a.tokenizer.Stream(r))
	if err != nil {
		return report.Report{}, fmt.Errorf("analyze %s: %w", name, err)
	}
	return a.Report(ctx, name, table)
}

// AnalyzeSources counts several readers in parallel and reports on the
// merged table as if they had been read back to back.
func (a *Analyzer) AnalyzeSources(ctx context.Context, name string, readers []io.Reader) (report.Report, error) {
	table, err := a.Count(ctx, readers)
	if err != nil {
		return report.Report{}, fmt.Errorf("analyze %s: %w", name, err)
	}
	return a.Report(ctx, name, table)
}

// Count builds one frequency table over all readers without selecting or
// persisting anything. Multiple readers are counted in parallel.
func (a *Analyzer) Count(ctx context.Context, readers []io.Reader) (*freq.Table, error) {
	if len(readers) == 1 {
		return freq.Build(ctx, a.tokenizer.Stream(readers[0]))
	}
	srcs := make([]freq.TokenSource, len(readers))
	for i, r := range readers {
		srcs[i] = a.tokenizer.Stream(r)
	}
	return freq.BuildParallel(ctx, srcs, a.workers)
}

// Report selects the top and bottom entries of a counted table and
// persists the resulting report when a store is set.
func (a *Analyzer) Report(ctx context.Context, name string, table *freq.Table) (report.Report, error) {
	res, err := topk.Select(table, a.k)
	if err != nil {
		return report.Report{}, err
	}
	rep := a.builder.Build(name, a.k, table, res)

	if a.store != nil {
		if err := a.store.SaveReport(ctx, rep); err != nil {
			return report.Report{}, fmt.Errorf("save report %s: %w", rep.ID, err)
		}
	}
	return rep, nil
}

// History returns the newest persisted reports.
func (a *Analyzer) History(ctx context.Context, limit int) ([]report.Report, error) {
	if a.store == nil {
		return nil, fmt.Errorf("%w: no store configured", internalerr.ErrStoreUnavailable)
	}
	return a.store.ListReports(ctx, limit)
}

// Analysis is the side-effect free core: it consumes src once and returns
// the frequency table with its top and bottom k entries.
func Analysis(ctx context.Context, src freq.TokenSource, k int) (topk.Result, *freq.Table, error) {
	if k < 0 {
		return topk.Result{}, nil, fmt.Errorf("%w: k must be >= 0, got %d", internalerr.ErrInvalidInput, k)
	}
	table, err := freq.Build(ctx, src)
	if err != nil {
		return topk.Result{}, nil, err
	}
	res, err := topk.Select(table, k)
	if err != nil {
		return topk.Result{}, nil, err
	}
	return res, table, nil
}
