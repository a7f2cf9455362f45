// Package sink implements the trade sink: the ordered emission
// surface for finalised trade records produced by one matching pass.
// The engine commits at most one batch per Submit call (none when the
// pass produced no trades); within a batch,
// ordering is by first-seen wall-clock time, and between batches
// order follows submission order.
package sink

import "github.com/shopspring/decimal"

// Trade is one aggregated, finalised trade record.
type Trade struct {
	AggressorID string
	PassiveID   string
	Price       decimal.Decimal
	Amount      uint64
}

// TradeSink is the opaque consumer the engine commits trade batches
// to. How a batch reaches a terminal, file, or socket is entirely up
// to the implementation.
type TradeSink interface {
	EmitBatch(trades []Trade) error
}
