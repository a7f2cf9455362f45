package book

import "container/heap"

// sellHeap orders entries lowest price first; ties broken by earliest
// arrival, then by order id.
type sellHeap []Entry

func (h sellHeap) Len() int { return len(h) }

func (h sellHeap) Less(i, j int) bool {
	if !h[i].Price.Equal(h[j].Price) {
		return h[i].Price.LessThan(h[j].Price)
	}
	if h[i].Arrival != h[j].Arrival {
		return h[i].Arrival < h[j].Arrival
	}
	return h[i].OrderID < h[j].OrderID
}

func (h sellHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *sellHeap) Push(x any) { *h = append(*h, x.(Entry)) }

func (h *sellHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// SellBook is the ask side's priority queue: lowest price first, ties
// broken by earliest arrival.
type SellBook struct {
	h sellHeap
}

func NewSellBook() *SellBook { return &SellBook{} }

func (s *SellBook) Push(e Entry) { heap.Push(&s.h, e) }

func (s *SellBook) Peek() (Entry, bool) {
	if len(s.h) == 0 {
		return Entry{}, false
	}
	return s.h[0], true
}

func (s *SellBook) Pop() Entry { return heap.Pop(&s.h).(Entry) }

func (s *SellBook) IsEmpty() bool { return len(s.h) == 0 }

func (s *SellBook) Len() int { return len(s.h) }
