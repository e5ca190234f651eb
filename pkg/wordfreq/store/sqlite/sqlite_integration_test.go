package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/report"
	"github.com/cognicore/wordfreq/pkg/wordfreq/topk"
)

func sampleReport(id string, at time.Time) report.Report {
	return report.Report{
		ID:            id,
		Source:        "war-and-peace.txt",
		CreatedAt:     at,
		K:             2,
		TotalTokens:   6,
		DistinctWords: 3,
		Top:           []topk.Entry{{Word: "a", Count: 3}, {Word: "b", Count: 2}},
		Bottom:        []topk.Entry{{Word: "c", Count: 1}, {Word: "b", Count: 2}},
	}
}

// TestSQLiteIntegrationBasic tests save/get round trips
func TestSQLiteIntegrationBasic(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	at := time.Date(2023, 10, 19, 8, 30, 0, 123, time.UTC)
	r := sampleReport("01HBASIC", at)
	if err := st.SaveReport(ctx, r); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	got, err := st.GetReport(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.Source != r.Source || got.K != 2 || got.TotalTokens != 6 || got.DistinctWords != 3 {
		t.Errorf("GetReport header = %+v", got)
	}
	if !got.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, at)
	}
	if len(got.Top) != 2 || got.Top[0] != r.Top[0] || got.Top[1] != r.Top[1] {
		t.Errorf("Top = %v, want %v", got.Top, r.Top)
	}
	if len(got.Bottom) != 2 || got.Bottom[0] != r.Bottom[0] || got.Bottom[1] != r.Bottom[1] {
		t.Errorf("Bottom = %v, want %v", got.Bottom, r.Bottom)
	}
}

func TestSQLiteUpsertReplacesEntries(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	r := sampleReport("01HUPSERT", time.Now())
	if err := st.SaveReport(ctx, r); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	r.Top = []topk.Entry{{Word: "only", Count: 9}}
	r.Bottom = nil
	if err := st.SaveReport(ctx, r); err != nil {
		t.Fatalf("SaveReport again: %v", err)
	}

	got, err := st.GetReport(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if len(got.Top) != 1 || got.Top[0].Word != "only" {
		t.Errorf("Top after upsert = %v", got.Top)
	}
	if len(got.Bottom) != 0 {
		t.Errorf("Bottom after upsert = %v, want empty", got.Bottom)
	}
}

func TestSQLiteGetMissing(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	if _, err := st.GetReport(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("GetReport missing = %v, want ErrNotFound", err)
	}
}

func TestSQLiteListNewestFirst(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	base := time.Date(2023, 10, 19, 12, 0, 0, 0, time.UTC)
	// half-second offsets exercise fractional timestamps in ordering
	for i, id := range []string{"01A", "01B", "01C"} {
		at := base.Add(time.Duration(i) * 500 * time.Millisecond)
		if err := st.SaveReport(ctx, sampleReport(id, at)); err != nil {
			t.Fatalf("SaveReport %s: %v", id, err)
		}
	}

	all, err := st.ListReports(ctx, 0)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	want := []string{"01C", "01B", "01A"}
	if len(all) != len(want) {
		t.Fatalf("ListReports len = %d, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("ListReports[%d] = %s, want %s", i, all[i].ID, id)
		}
		if len(all[i].Top) != 2 {
			t.Errorf("ListReports[%d] should load entries, got %v", i, all[i].Top)
		}
	}

	limited, err := st.ListReports(ctx, 1)
	if err != nil {
		t.Fatalf("ListReports(1): %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "01C" {
		t.Errorf("ListReports(1) = %v", limited)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.SaveReport(ctx, sampleReport("01HREOPEN", time.Now())); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	if _, err := st.GetReport(ctx, "01HREOPEN"); err != nil {
		t.Errorf("GetReport after reopen: %v", err)
	}
}
