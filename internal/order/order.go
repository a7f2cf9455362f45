// Package order implements the resting-order state machine: the
// regular/iceberg volume-accounting rules and the aggressive/passive
// trade semantics that the matching engine drives.
package order

import "github.com/shopspring/decimal"

// Side identifies which side of the book an order rests on.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "B"
	}
	return "S"
}

// Order is the capability set the matching engine drives against a
// resting order. Dispatch is static over the two concrete variants,
// Regular and Iceberg; there is no open extension.
type Order interface {
	ID() string
	Side() Side
	Price() decimal.Decimal
	Volume() uint64

	// ArrivalTS is the timestamp the engine assigned at submission. It
	// never changes afterward, even across an iceberg restart: a
	// restart re-keys the order's position in its side book, but the
	// aggressive/passive rule compares against this original value, not
	// the restarted book position. Reassigning it on restart would let
	// a passive iceberg flip into its own counterparty's aggressor
	// partway through a pass, splitting one aggregated trade into
	// several.
	ArrivalTS() float64

	// SetArrivalTS is called exactly once, by the engine, at Submit.
	SetArrivalTS(ts float64)

	// DisplayedVolume is the quantity this order offers to a crossing
	// counterparty right now: all of it for a regular order, only the
	// visible slice for an iceberg.
	DisplayedVolume() uint64

	// Trade reduces this order's residual according to the variant's
	// rule and returns the amount actually consumed, 0 <= amount <=
	// requested. counterTS is the arrival timestamp of the order on the
	// other side of the cross being processed; regular orders ignore
	// it, iceberg orders use it to decide aggressive vs. passive.
	Trade(requested uint64, counterTS float64) uint64

	// IsComplete reports whether this order should leave its side
	// book's live queue right now. For an iceberg this can be true
	// while residual volume remains (its visible slice is merely
	// exhausted) — see ShouldRestart.
	IsComplete() bool

	// ShouldRestart reports whether, having just gone complete, this
	// order has residual volume and must be re-queued under a fresh
	// priority-key timestamp (ArrivalTS itself is unchanged). As a side effect it refills the visible slice
	// when true. Regular orders never restart.
	ShouldRestart() bool
}

// base holds the fields common to every order variant.
type base struct {
	id        string
	side      Side
	price     decimal.Decimal
	volume    uint64
	arrivalTS float64
}

func (b *base) ID() string             { return b.id }
func (b *base) Side() Side              { return b.side }
func (b *base) Price() decimal.Decimal  { return b.price }
func (b *base) Volume() uint64          { return b.volume }
func (b *base) ArrivalTS() float64      { return b.arrivalTS }
func (b *base) SetArrivalTS(ts float64) { b.arrivalTS = ts }

func min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
