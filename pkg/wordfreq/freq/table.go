package freq

// Entry is a word with its number of occurrences.
type Entry struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

// Table maps each distinct word to its count.
// Keys are kept in first-seen order so iteration is reproducible.
type Table struct {
	counts map[string]int64
	order  []string
	total  int64
}

// NewTable creates an empty frequency table.
func NewTable() *Table {
	return &Table{counts: make(map[string]int64)}
}

// Add counts one occurrence of word.
func (t *Table) Add(word string) {
	t.AddN(word, 1)
}

// AddN counts n occurrences of word. Non-positive n is ignored.
func (t *Table) AddN(word string, n int64) {
	if n <= 0 {
		return
	}
	if _, ok := t.counts[word]; !ok {
		t.order = append(t.order, word)
	}
	t.counts[word] += n
	t.total += n
}

// Count returns the count for word, 0 if absent.
func (t *Table) Count(word string) int64 {
	return t.counts[word]
}

// Len returns the number of distinct words.
func (t *Table) Len() int {
	return len(t.order)
}

// Total returns the number of tokens counted.
func (t *Table) Total() int64 {
	return t.total
}

// Each calls fn for every entry in first-seen order until fn returns false.
func (t *Table) Each(fn func(Entry) bool) {
	for _, w := range t.order {
		if !fn(Entry{Word: w, Count: t.counts[w]}) {
			return
		}
	}
}

// Entries returns all entries in first-seen order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	t.Each(func(e Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Map returns a copy of the word counts.
func (t *Table) Map() map[string]int64 {
	out := make(map[string]int64, len(t.counts))
	for w, c := range t.counts {
		out[w] = c
	}
	return out
}

// Merge adds every count of other into t.
// Words new to t are appended in other's order.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	for _, w := range other.order {
		t.AddN(w, other.counts[w])
	}
}
