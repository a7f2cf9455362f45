package order_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ember/internal/order"
)

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRegular_PartialTradeReducesVolume(t *testing.T) {
	r := order.NewRegular("A", order.Buy, price("100.00"), 100, 0)

	require.Equal(t, uint64(100), r.DisplayedVolume())

	traded := r.Trade(30, 0)
	assert.Equal(t, uint64(30), traded)
	assert.Equal(t, uint64(70), r.Volume())
	assert.False(t, r.IsComplete())
	assert.False(t, r.ShouldRestart())
}

func TestRegular_ExactFillCompletes(t *testing.T) {
	r := order.NewRegular("A", order.Buy, price("100.00"), 50, 0)
	traded := r.Trade(50, 0)
	assert.Equal(t, uint64(50), traded)
	assert.True(t, r.IsComplete())
}

func TestRegular_RequestBeyondVolumeClamped(t *testing.T) {
	r := order.NewRegular("A", order.Buy, price("100.00"), 30, 0)
	traded := r.Trade(1000, 0)
	assert.Equal(t, uint64(30), traded)
	assert.True(t, r.IsComplete())
}

func TestIceberg_InitialVisibleIsPeak(t *testing.T) {
	i := order.NewIceberg("I", order.Buy, price("100.00"), 1000, 100, 0)
	assert.Equal(t, uint64(100), i.DisplayedVolume())
	assert.Equal(t, uint64(1000), i.Volume())
}

func TestIceberg_PeakGreaterThanVolumeClampsAtConstruction(t *testing.T) {
	i := order.NewIceberg("I", order.Buy, price("100.00"), 50, 100, 0)
	assert.Equal(t, uint64(50), i.DisplayedVolume())
}

func TestIceberg_PassiveTradeConsumesVisibleAndVolume(t *testing.T) {
	// Passive: this order arrived before its counterparty.
	i := order.NewIceberg("I", order.Buy, price("100.00"), 1000, 100, 1.0)
	traded := i.Trade(30, 2.0)
	assert.Equal(t, uint64(30), traded)
	assert.Equal(t, uint64(970), i.Volume())
	assert.Equal(t, uint64(70), i.Visible())
}

func TestIceberg_PassiveSliceExhaustionTriggersRestart(t *testing.T) {
	i := order.NewIceberg("I", order.Buy, price("100.00"), 1000, 100, 1.0)

	traded := i.Trade(100, 2.0)
	assert.Equal(t, uint64(100), traded)
	assert.True(t, i.IsComplete())
	assert.True(t, i.ShouldRestart())
	assert.Equal(t, uint64(100), i.Visible())
	assert.Equal(t, uint64(900), i.Volume())
}

func TestIceberg_AggressiveTradeSweepsVolumeThenClampsVisible(t *testing.T) {
	// Aggressive: this order arrived after its counterparty.
	i := order.NewIceberg("I", order.Buy, price("100.00"), 200, 50, 2.0)

	traded := i.Trade(40, 1.0)
	assert.Equal(t, uint64(40), traded)
	assert.Equal(t, uint64(160), i.Volume())
	assert.Equal(t, uint64(50), i.Visible()) // unaffected until volume < peak

	traded = i.Trade(40, 1.0)
	assert.Equal(t, uint64(40), traded)
	traded = i.Trade(40, 1.0)
	assert.Equal(t, uint64(40), traded)
	assert.Equal(t, uint64(80), i.Volume())
	assert.Equal(t, uint64(50), i.Visible())
}

func TestIceberg_AggressiveClampsVisibleWhenVolumeDropsBelowPeak(t *testing.T) {
	i := order.NewIceberg("I", order.Buy, price("100.00"), 60, 50, 2.0)
	i.Trade(30, 1.0) // volume -> 30, visible clamps to 30
	assert.Equal(t, uint64(30), i.Volume())
	assert.Equal(t, uint64(30), i.Visible())
}

func TestIceberg_PermanentlyCompleteWhenVolumeExhausted(t *testing.T) {
	i := order.NewIceberg("I", order.Sell, price("100.00"), 50, 100, 1.0)
	traded := i.Trade(50, 2.0)
	assert.Equal(t, uint64(50), traded)
	assert.True(t, i.IsComplete())
	assert.False(t, i.ShouldRestart())
}
