package topk

import (
	"fmt"
	"sort"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
)

// Result holds the most and least frequent words.
// Top is ordered by count descending, Bottom by count ascending.
type Result struct {
	Top    []Entry
	Bottom []Entry
}

// Select picks the k most and k least frequent entries of table in a
// single pass, without sorting the whole vocabulary.
func Select(table *freq.Table, k int) (Result, error) {
	if k < 0 {
		return Result{}, fmt.Errorf("%w: k must be >= 0, got %d", internalerr.ErrInvalidInput, k)
	}
	if k == 0 || table == nil || table.Len() == 0 {
		return Result{Top: []Entry{}, Bottom: []Entry{}}, nil
	}

	top := NewBoundedHeap(k, KeepLargest)
	bottom := NewBoundedHeap(k, KeepSmallest)
	table.Each(func(e Entry) bool {
		top.Offer(e)
		bottom.Offer(e)
		return true
	})

	return Result{Top: top.Drain(), Bottom: bottom.Drain()}, nil
}

// SelectMap runs Select over a plain count map.
// Keys are visited in lexicographic order so ties resolve alphabetically.
func SelectMap(counts map[string]int64, k int) (Result, error) {
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Strings(words)

	table := freq.NewTable()
	for _, w := range words {
		table.AddN(w, counts[w])
	}
	return Select(table, k)
}
