package stoplist

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
)

// Manager handles the set of words excluded from counting
type Manager struct {
	stops map[string]Reason
}

// Reason explains why a word is a stopword
type Reason struct {
	Manual       bool    // listed by the user
	HighShare    bool    // makes up a large share of all tokens
	SharePercent float64 // share of all tokens, in percent
}

// NewManager creates a new stoplist manager
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]Reason, len(initialStops))
	for _, s := range initialStops {
		stops[strings.ToLower(s)] = Reason{Manual: true}
	}
	return &Manager{stops: stops}
}

// IsStop checks if a word is a stopword
func (m *Manager) IsStop(word string) bool {
	_, ok := m.stops[word]
	return ok
}

// Add adds a word to the stoplist with a reason
func (m *Manager) Add(word string, reason Reason) {
	m.stops[strings.ToLower(word)] = reason
}

// Remove removes a word from the stoplist
func (m *Manager) Remove(word string) {
	delete(m.stops, strings.ToLower(word))
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords in sorted order
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Candidate represents a candidate stopword
type Candidate struct {
	Word   string
	Count  int64
	Reason Reason
	Score  float64 // share of all tokens in [0,1]
}

// Thresholds defines criteria for stopword identification
type Thresholds struct {
	SharePercent float64 // e.g. 1.0 - word is at least 1% of all tokens
	MaxLength    int     // only short function words qualify; 0 disables the check
}

// DefaultThresholds returns sensible default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SharePercent: 1.0,
		MaxLength:    4,
	}
}

// SuggestCandidates suggests words that should be stopwords, based on how
// much of the counted text they account for. Words already on the list are
// skipped. Results are sorted by score descending, then by word.
func (m *Manager) SuggestCandidates(table *freq.Table, thresholds Thresholds) []Candidate {
	if table == nil || table.Total() == 0 {
		return nil
	}
	if thresholds.SharePercent <= 0 {
		thresholds.SharePercent = DefaultThresholds().SharePercent
	}

	total := float64(table.Total())
	var candidates []Candidate
	table.Each(func(e freq.Entry) bool {
		if m.IsStop(e.Word) {
			return true
		}
		if thresholds.MaxLength > 0 && utf8.RuneCountInString(e.Word) > thresholds.MaxLength {
			return true
		}
		share := float64(e.Count) / total
		if share*100 < thresholds.SharePercent {
			return true
		}
		candidates = append(candidates, Candidate{
			Word:  e.Word,
			Count: e.Count,
			Reason: Reason{
				HighShare:    true,
				SharePercent: share * 100,
			},
			Score: share,
		})
		return true
	})

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Word < candidates[j].Word
	})
	return candidates
}
