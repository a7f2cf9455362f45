package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ember/internal/engine"
	"ember/internal/order"
	"ember/internal/sink"
)

func TestProperty_NoCrossOnQuiescence(t *testing.T) {
	c := sink.NewCollector()
	e := engine.New(c)

	require.NoError(t, e.Submit(order.NewRegular("b1", order.Buy, price("99.00"), 20, 0)))
	require.NoError(t, e.Submit(order.NewIceberg("b2", order.Buy, price("100.00"), 500, 60, 0)))
	require.NoError(t, e.Submit(order.NewRegular("s1", order.Sell, price("101.00"), 10, 0)))
	require.NoError(t, e.Submit(order.NewRegular("taker", order.Sell, price("100.00"), 30, 0)))

	buys, sells := e.Snapshot()
	require.NotEmpty(t, buys)
	require.NotEmpty(t, sells)
	assert.True(t, buys[0].Price.LessThan(sells[0].Price), "resting best bid must not cross resting best ask once a pass settles")
}

// Regular orders display their full residual, so a regular-only
// sequence lets the resting snapshot stand in for true residual volume
// when checking conservation.
func TestProperty_ConservationOfVolumeForRegularOrders(t *testing.T) {
	c := sink.NewCollector()
	e := engine.New(c)

	require.NoError(t, e.Submit(order.NewRegular("A", order.Buy, price("100.00"), 70, 0)))
	require.NoError(t, e.Submit(order.NewRegular("B", order.Buy, price("100.00"), 50, 0)))
	require.NoError(t, e.Submit(order.NewRegular("X", order.Sell, price("100.00"), 90, 0)))

	consumed := make(map[string]uint64)
	for _, tr := range c.Trades() {
		consumed[tr.AggressorID] += tr.Amount
		consumed[tr.PassiveID] += tr.Amount
	}

	buys, _ := e.Snapshot()
	residual := make(map[string]uint64)
	for _, row := range buys {
		residual["B"] = row.Volume // only B should remain: A (70) fully absorbed by X's 90 before B
	}

	assert.Equal(t, uint64(90), consumed["X"])
	assert.Equal(t, uint64(70), consumed["A"])
	assert.Equal(t, uint64(20), consumed["B"])
	assert.Equal(t, uint64(30), residual["B"], "B started at 50, gave up 20, 30 remains resting")
}

func TestProperty_IcebergVisibleNeverExceedsPeakOrVolume(t *testing.T) {
	i := order.NewIceberg("I", order.Buy, price("100.00"), 130, 50, 0)
	for _, amt := range []uint64{10, 20, 5, 60, 40} {
		i.Trade(amt, 1)
		assert.LessOrEqual(t, i.Visible(), i.Peak())
		assert.LessOrEqual(t, i.Visible(), i.Volume())
		if i.IsComplete() {
			i.ShouldRestart()
		}
	}
}

func TestProperty_AggregationIsIdempotentAcrossFreshEngines(t *testing.T) {
	run := func() []sink.Trade {
		c := sink.NewCollector()
		e := engine.New(c)
		require.NoError(t, e.Submit(order.NewIceberg("I", order.Buy, price("100.00"), 1000, 100, 0)))
		require.NoError(t, e.Submit(order.NewRegular("X", order.Sell, price("100.00"), 250, 0)))
		return c.Trades()
	}

	first := run()
	second := run()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].AggressorID, second[i].AggressorID)
		assert.Equal(t, first[i].PassiveID, second[i].PassiveID)
		assert.Equal(t, first[i].Amount, second[i].Amount)
		assert.True(t, first[i].Price.Equal(second[i].Price))
	}
}
