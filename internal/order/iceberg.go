package order

import "github.com/shopspring/decimal"

// Iceberg exposes only a visible slice (peak) of its total volume at a
// time, refilling it as the slice is consumed. A refill sends the
// order to the back of its price level: time priority is lost on
// every restart.
type Iceberg struct {
	base
	peak    uint64 // configured visible slice, immutable after submission
	visible uint64 // current visible residual, 0 <= visible <= min(volume, peak)
}

// NewIceberg constructs a resting iceberg order. A peak >= volume is
// accepted and clamped immediately, so Visible never has to be
// reconciled against Peak later: the invariant holds from construction
// rather than being restored on the first trade.
func NewIceberg(id string, side Side, price decimal.Decimal, volume, peak uint64, arrivalTS float64) *Iceberg {
	i := &Iceberg{
		base: base{id: id, side: side, price: price, volume: volume, arrivalTS: arrivalTS},
		peak: peak,
	}
	i.visible = min(i.peak, i.volume)
	return i
}

func (i *Iceberg) Peak() uint64    { return i.peak }
func (i *Iceberg) Visible() uint64 { return i.visible }

func (i *Iceberg) DisplayedVolume() uint64 { return i.visible }

// Trade implements the aggressive/passive rule. This order is
// aggressive iff it arrived after the counterparty currently on the
// other side of the cross — it is the order that caused the cross.
func (i *Iceberg) Trade(requested uint64, counterTS float64) uint64 {
	aggressive := i.arrivalTS > counterTS

	var amount uint64
	if aggressive {
		// Sweep first; the visible tip only matters once volume drops
		// below it.
		amount = min(i.volume, requested)
		i.volume -= amount
	} else {
		amount = min(i.visible, requested)
		i.visible -= amount
		i.volume -= amount
	}
	i.visible = min(i.visible, i.volume)
	return amount
}

func (i *Iceberg) IsComplete() bool { return i.visible == 0 }

func (i *Iceberg) ShouldRestart() bool {
	if i.visible == 0 && i.volume > 0 {
		i.visible = min(i.peak, i.volume)
		return true
	}
	return false
}
