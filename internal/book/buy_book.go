package book

import "container/heap"

// buyHeap orders entries highest price first; ties broken by earliest
// arrival, then by order id as a final deterministic tiebreak for the
// case where two entries land on the exact same arrival timestamp.
type buyHeap []Entry

func (h buyHeap) Len() int { return len(h) }

func (h buyHeap) Less(i, j int) bool {
	if !h[i].Price.Equal(h[j].Price) {
		return h[i].Price.GreaterThan(h[j].Price)
	}
	if h[i].Arrival != h[j].Arrival {
		return h[i].Arrival < h[j].Arrival
	}
	return h[i].OrderID < h[j].OrderID
}

func (h buyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *buyHeap) Push(x any) { *h = append(*h, x.(Entry)) }

func (h *buyHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// BuyBook is the bid side's priority queue: highest price first, ties
// broken by earliest arrival.
type BuyBook struct {
	h buyHeap
}

func NewBuyBook() *BuyBook { return &BuyBook{} }

func (b *BuyBook) Push(e Entry) { heap.Push(&b.h, e) }

// Peek returns the entry at the root without removing it. The second
// return value is false if the book is empty.
func (b *BuyBook) Peek() (Entry, bool) {
	if len(b.h) == 0 {
		return Entry{}, false
	}
	return b.h[0], true
}

func (b *BuyBook) Pop() Entry { return heap.Pop(&b.h).(Entry) }

func (b *BuyBook) IsEmpty() bool { return len(b.h) == 0 }

func (b *BuyBook) Len() int { return len(b.h) }
