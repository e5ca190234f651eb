package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/topk"
)

func TestBuilderBuild(t *testing.T) {
	table := freq.NewTable()
	for _, w := range []string{"a", "b", "a", "c", "b", "a"} {
		table.Add(w)
	}
	res, err := topk.Select(table, 2)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	fixed := time.Date(2023, 10, 19, 12, 0, 0, 0, time.UTC)
	b := New()
	b.SetClock(func() time.Time { return fixed })

	r := b.Build("war-and-peace.txt", 2, table, res)
	if r.ID == "" {
		t.Error("report should have an ID")
	}
	if !r.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", r.CreatedAt, fixed)
	}
	if r.TotalTokens != 6 || r.DistinctWords != 3 {
		t.Errorf("TotalTokens/DistinctWords = %d/%d, want 6/3", r.TotalTokens, r.DistinctWords)
	}
	if len(r.Top) != 2 || r.Top[0].Word != "a" {
		t.Errorf("Top = %v", r.Top)
	}
}

func TestBuilderIDsMonotonic(t *testing.T) {
	b := New()
	b.SetClock(func() time.Time { return time.Unix(1700000000, 0) })

	prev := ""
	for i := 0; i < 100; i++ {
		id := b.Build("src", 1, nil, topk.Result{}).ID
		if id <= prev {
			t.Fatalf("ID %s not greater than previous %s", id, prev)
		}
		prev = id
	}
}

func TestWriteText(t *testing.T) {
	r := Report{
		Source:        "book.txt",
		K:             2,
		TotalTokens:   1234567,
		DistinctWords: 3,
		Top:           []topk.Entry{{Word: "и", Count: 10543}, {Word: "the", Count: 9}},
		Bottom:        nil,
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, r); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"1,234,567", "Most frequent words (top 2)", "10,543", "Most rare words (last 2)", "(none)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
