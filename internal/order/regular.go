package order

import "github.com/shopspring/decimal"

// Regular is a plain limit order: its full residual volume is always
// displayed, and it never restarts once complete.
type Regular struct {
	base
}

// NewRegular constructs a resting regular order. arrivalTS is assigned
// by the caller (the engine), not taken from input.
func NewRegular(id string, side Side, price decimal.Decimal, volume uint64, arrivalTS float64) *Regular {
	return &Regular{base{id: id, side: side, price: price, volume: volume, arrivalTS: arrivalTS}}
}

func (r *Regular) DisplayedVolume() uint64 { return r.volume }

func (r *Regular) Trade(requested uint64, _ float64) uint64 {
	amount := min(r.volume, requested)
	r.volume -= amount
	return amount
}

func (r *Regular) IsComplete() bool { return r.volume == 0 }

func (r *Regular) ShouldRestart() bool { return false }
