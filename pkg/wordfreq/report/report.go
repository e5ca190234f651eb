package report

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/topk"
)

// Report is the outcome of one analysis run
type Report struct {
	ID            string       `json:"id"`
	Source        string       `json:"source"`
	CreatedAt     time.Time    `json:"created_at"`
	K             int          `json:"k"`
	TotalTokens   int64        `json:"total_tokens"`
	DistinctWords int          `json:"distinct_words"`
	Top           []topk.Entry `json:"top"`
	Bottom        []topk.Entry `json:"bottom"`
}

// Builder assigns sortable IDs to reports
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (b *Builder) SetClock(now func() time.Time) {
	if now != nil {
		b.now = now
	}
}

// Build creates a report from a counted table and its selection
func (b *Builder) Build(source string, k int, table *freq.Table, res topk.Result) Report {
	b.mu.Lock()
	now := b.now().UTC()
	id := ulid.MustNew(ulid.Timestamp(now), b.entropy).String()
	b.mu.Unlock()

	r := Report{
		ID:        id,
		Source:    source,
		CreatedAt: now,
		K:         k,
		Top:       res.Top,
		Bottom:    res.Bottom,
	}
	if table != nil {
		r.TotalTokens = table.Total()
		r.DistinctWords = table.Len()
	}
	return r
}

// WriteText renders a report as two aligned word lists.
func WriteText(w io.Writer, r Report) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Source: %s\n", r.Source)
	fmt.Fprintf(&sb, "Tokens: %s, distinct words: %s\n",
		humanize.Comma(r.TotalTokens), humanize.Comma(int64(r.DistinctWords)))
	writeList(&sb, fmt.Sprintf("Most frequent words (top %d)", r.K), r.Top)
	writeList(&sb, fmt.Sprintf("Most rare words (last %d)", r.K), r.Bottom)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeList(sb *strings.Builder, title string, entries []topk.Entry) {
	fmt.Fprintf(sb, "\n%s:\n", title)
	if len(entries) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	width := 0
	for _, e := range entries {
		if n := len([]rune(e.Word)); n > width {
			width = n
		}
	}
	for i, e := range entries {
		pad := width - len([]rune(e.Word))
		fmt.Fprintf(sb, "  %2d. %s%s  %s\n", i+1, e.Word, strings.Repeat(" ", pad), humanize.Comma(e.Count))
	}
}
