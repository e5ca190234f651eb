package topk

import (
	"container/heap"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
)

// Entry is a candidate word with its count.
type Entry = freq.Entry

// Order selects which extreme a BoundedHeap keeps.
type Order int

const (
	// KeepLargest keeps the k highest counts and evicts the smallest.
	KeepLargest Order = iota
	// KeepSmallest keeps the k lowest counts and evicts the largest.
	KeepSmallest
)

// BoundedHeap holds at most k entries with the eviction candidate at the root.
//
// Ties are broken by offer order: among equal counts the entry offered
// first ranks better, and an incoming entry only replaces the root when
// its count is strictly better.
type BoundedHeap struct {
	k     int
	order Order
	h     candidateHeap
	seq   int
}

type candidate struct {
	entry Entry
	seq   int
}

// NewBoundedHeap creates an empty heap with capacity k.
// Negative k is treated as 0.
func NewBoundedHeap(k int, order Order) *BoundedHeap {
	if k < 0 {
		k = 0
	}
	return &BoundedHeap{
		k:     k,
		order: order,
		h:     candidateHeap{order: order, items: make([]candidate, 0, k)},
	}
}

// Offer considers e for the heap and reports whether it was kept.
func (b *BoundedHeap) Offer(e Entry) bool {
	if b.k == 0 {
		return false
	}
	c := candidate{entry: e, seq: b.seq}
	b.seq++

	if b.h.Len() < b.k {
		heap.Push(&b.h, c)
		return true
	}
	if !b.strictlyBetter(e.Count, b.h.items[0].entry.Count) {
		return false
	}
	b.h.items[0] = c
	heap.Fix(&b.h, 0)
	return true
}

func (b *BoundedHeap) strictlyBetter(count, root int64) bool {
	if b.order == KeepLargest {
		return count > root
	}
	return count < root
}

// PeekWorst returns the entry that would be evicted next.
func (b *BoundedHeap) PeekWorst() (Entry, bool) {
	if b.h.Len() == 0 {
		return Entry{}, false
	}
	return b.h.items[0].entry, true
}

// Len returns the number of entries held.
func (b *BoundedHeap) Len() int {
	return b.h.Len()
}

// Cap returns the capacity k.
func (b *BoundedHeap) Cap() int {
	return b.k
}

// Drain empties the heap and returns its entries best first:
// descending counts for KeepLargest, ascending for KeepSmallest.
func (b *BoundedHeap) Drain() []Entry {
	out := make([]Entry, b.h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&b.h).(candidate).entry
	}
	return out
}

// candidateHeap orders candidates worst first.
type candidateHeap struct {
	order Order
	items []candidate
}

func (h candidateHeap) Len() int { return len(h.items) }

func (h candidateHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.entry.Count != b.entry.Count {
		if h.order == KeepLargest {
			return a.entry.Count < b.entry.Count
		}
		return a.entry.Count > b.entry.Count
	}
	// later offers are worse on ties
	return a.seq > b.seq
}

func (h candidateHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *candidateHeap) Push(x any) { h.items = append(h.items, x.(candidate)) }

func (h *candidateHeap) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}
