package book

import "github.com/tidwall/btree"

// Index is a non-destructively scannable mirror of one side's live
// heap entries, ordered the same way the heap would pop them: best
// price first, ties by earliest arrival, then order id. The matching
// engine keeps one Index per side in lockstep with its BuyBook/SellBook
// so that producing a resting-book snapshot never has to drain (and
// thus destroy) the heap that the matching pass depends on — the
// teacher's own btree-backed order book (internal/engine/orderbook.go)
// is repurposed here as that read-side index rather than the primary
// matching structure.
type Index struct {
	tr *btree.BTreeG[Entry]
}

func newIndex(less func(a, b Entry) bool) *Index {
	return &Index{tr: btree.NewBTreeG(less)}
}

// NewBuyIndex mirrors a BuyBook's priority order.
func NewBuyIndex() *Index {
	return newIndex(func(a, b Entry) bool {
		if !a.Price.Equal(b.Price) {
			return a.Price.GreaterThan(b.Price)
		}
		if a.Arrival != b.Arrival {
			return a.Arrival < b.Arrival
		}
		return a.OrderID < b.OrderID
	})
}

// NewSellIndex mirrors a SellBook's priority order.
func NewSellIndex() *Index {
	return newIndex(func(a, b Entry) bool {
		if !a.Price.Equal(b.Price) {
			return a.Price.LessThan(b.Price)
		}
		if a.Arrival != b.Arrival {
			return a.Arrival < b.Arrival
		}
		return a.OrderID < b.OrderID
	})
}

func (idx *Index) Set(e Entry) { idx.tr.Set(e) }

func (idx *Index) Delete(e Entry) { idx.tr.Delete(e) }

// Scan visits every entry in priority order, best first, until fn
// returns false.
func (idx *Index) Scan(fn func(Entry) bool) { idx.tr.Scan(fn) }

func (idx *Index) Len() int { return idx.tr.Len() }
