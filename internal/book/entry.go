// Package book implements the per-side priority queue over resting
// orders: price then arrival time. It stores only priority keys and
// order ids — the authoritative order record lives in the engine's id
// index — so an iceberg restart can re-key an entry without touching
// the record itself.
package book

import "github.com/shopspring/decimal"

// Entry is one (priority key, order id) pair. The queue may contain at
// most one live entry per order id at any time; the matching engine
// guarantees this by popping an entry before deciding whether to
// re-push it on restart.
type Entry struct {
	OrderID string
	Price   decimal.Decimal
	Arrival float64
}
