package store

import (
	"context"

	"github.com/cognicore/wordfreq/pkg/wordfreq/report"
)

// Store is the main interface for persisting analysis reports
type Store interface {
	Close() error

	// SaveReport inserts or replaces a report, keyed by its ID.
	SaveReport(ctx context.Context, r report.Report) error
	// GetReport returns internalerr.ErrNotFound for unknown IDs.
	GetReport(ctx context.Context, id string) (report.Report, error)
	// ListReports returns the newest reports first. limit <= 0 means all.
	ListReports(ctx context.Context, limit int) ([]report.Report, error)
}
