package engine

import (
	"github.com/shopspring/decimal"

	"ember/internal/book"
)

// Row is one resting order's contribution to a book-side snapshot:
// its currently displayed volume at its price. For an iceberg this is
// the visible slice, not the full residual — matching what the order
// itself offers to a crossing counterparty.
type Row struct {
	Price  decimal.Decimal
	Volume uint64
}

// Snapshot returns both sides of the resting book in priority order,
// best to worst, without disturbing the live matching queues — it
// reads through the book.Index mirrors rather than draining the
// heaps.
func (e *Engine) Snapshot() (buys, sells []Row) {
	e.buyIndex.Scan(func(entry book.Entry) bool {
		o := e.byID[entry.OrderID]
		buys = append(buys, Row{Price: o.Price(), Volume: o.DisplayedVolume()})
		return true
	})
	e.sellIndex.Scan(func(entry book.Entry) bool {
		o := e.byID[entry.OrderID]
		sells = append(sells, Row{Price: o.Price(), Volume: o.DisplayedVolume()})
		return true
	})
	return buys, sells
}
