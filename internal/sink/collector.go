package sink

import "sync"

// Collector is an in-memory TradeSink used by tests to assert on the
// emitted trade stream without driving an io.Writer.
type Collector struct {
	mu     sync.Mutex
	trades []Trade
}

func NewCollector() *Collector { return &Collector{} }

func (c *Collector) EmitBatch(trades []Trade) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trades = append(c.trades, trades...)
	return nil
}

func (c *Collector) Trades() []Trade {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Trade, len(c.trades))
	copy(out, c.trades)
	return out
}
