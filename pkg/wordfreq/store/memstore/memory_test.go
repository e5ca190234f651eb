package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/report"
	"github.com/cognicore/wordfreq/pkg/wordfreq/topk"
)

func sampleReport(id string, at time.Time) report.Report {
	return report.Report{
		ID:            id,
		Source:        "book.txt",
		CreatedAt:     at,
		K:             2,
		TotalTokens:   6,
		DistinctWords: 3,
		Top:           []topk.Entry{{Word: "a", Count: 3}, {Word: "b", Count: 2}},
		Bottom:        []topk.Entry{{Word: "c", Count: 1}, {Word: "b", Count: 2}},
	}
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := New()

	r := sampleReport("01A", time.Now())
	if err := s.SaveReport(ctx, r); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	got, err := s.GetReport(ctx, "01A")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.Source != r.Source || len(got.Top) != 2 || got.Bottom[0].Word != "c" {
		t.Errorf("GetReport = %+v", got)
	}

	// Mutating the returned copy must not leak into the store
	got.Top[0].Word = "mutated"
	again, _ := s.GetReport(ctx, "01A")
	if again.Top[0].Word != "a" {
		t.Error("store should return copies")
	}
}

func TestGetMissing(t *testing.T) {
	_, err := New().GetReport(context.Background(), "nope")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("GetReport missing = %v, want ErrNotFound", err)
	}
}

func TestSaveRequiresID(t *testing.T) {
	err := New().SaveReport(context.Background(), report.Report{})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("SaveReport without ID = %v, want ErrInvalidInput", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2023, 10, 19, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"01A", "01B", "01C"} {
		if err := s.SaveReport(ctx, sampleReport(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveReport: %v", err)
		}
	}

	all, _ := s.ListReports(ctx, 0)
	if len(all) != 3 || all[0].ID != "01C" || all[2].ID != "01A" {
		t.Errorf("ListReports order = %v", ids(all))
	}

	limited, _ := s.ListReports(ctx, 2)
	if len(limited) != 2 || limited[0].ID != "01C" {
		t.Errorf("ListReports(2) = %v", ids(limited))
	}
}

func ids(rs []report.Report) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
