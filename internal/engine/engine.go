// Package engine owns the two side books and the id index, and drives
// the price-time-priority matching loop. It is the hard part: priority
// ordering, partial-fill bookkeeping, and trade-log aggregation all
// have to hold simultaneously.
package engine

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"ember/internal/book"
	"ember/internal/order"
	"ember/internal/sink"
)

var (
	// ErrDuplicateOrderID is returned when Submit is called with an id
	// already resting in the book. The source leaves this undefined
	// (it silently overwrites the id index and leaves a stale heap
	// entry behind); this implementation rejects the submission at the
	// boundary instead.
	ErrDuplicateOrderID = errors.New("engine: duplicate order id")
)

// Engine owns both side books and the id index exclusively. It is
// strictly single-threaded and synchronous: Submit is not re-entrant
// and runs the full matching pass to completion before returning.
type Engine struct {
	buy  *book.BuyBook
	sell *book.SellBook

	// buyIndex/sellIndex mirror buy/sell for non-destructive snapshot
	// iteration; see book.Index.
	buyIndex  *book.Index
	sellIndex *book.Index

	byID map[string]order.Order

	start  time.Time
	lastTS float64
	sink   sink.TradeSink
	runID  string
	logger zerolog.Logger
}

// New constructs an engine with its own epoch. The start time is
// sampled once, here, and every arrival timestamp thereafter is
// relative to it.
func New(s sink.TradeSink) *Engine {
	runID := uuid.New().String()
	return &Engine{
		buy:       book.NewBuyBook(),
		sell:      book.NewSellBook(),
		buyIndex:  book.NewBuyIndex(),
		sellIndex: book.NewSellIndex(),
		byID:      make(map[string]order.Order),
		start:     time.Now(),
		sink:      s,
		runID:     runID,
		logger:    log.With().Str("run_id", runID).Logger(),
	}
}

// nextTimestamp returns a relative timestamp strictly greater than any
// previously returned, falling back to a logical increment when
// wall-clock resolution is too coarse to guarantee strict monotonicity
// within a burst of submissions.
func (e *Engine) nextTimestamp() float64 {
	ts := time.Since(e.start).Seconds()
	if ts <= e.lastTS {
		ts = e.lastTS + 1e-9
	}
	e.lastTS = ts
	return ts
}

// Submit is the engine's sole entry point. It assigns the order's
// arrival timestamp, inserts it, and runs a full matching pass before
// returning.
func (e *Engine) Submit(o order.Order) error {
	if _, exists := e.byID[o.ID()]; exists {
		return ErrDuplicateOrderID
	}

	o.SetArrivalTS(e.nextTimestamp())

	// A zero-volume submission is a no-op: it is already complete and
	// never rests. The external reader is expected to reject these
	// first, but the core tolerates them regardless.
	if o.Volume() == 0 {
		return nil
	}

	e.byID[o.ID()] = o
	entry := book.Entry{OrderID: o.ID(), Price: o.Price(), Arrival: o.ArrivalTS()}
	switch o.Side() {
	case order.Buy:
		e.buy.Push(entry)
		e.buyIndex.Set(entry)
	case order.Sell:
		e.sell.Push(entry)
		e.sellIndex.Set(entry)
	}

	e.match()
	return nil
}

type matchKey struct {
	aggressorID  string
	passiveID    string
	passivePrice string
}

type matchRecord struct {
	aggressor string
	passive   string
	price     decimal.Decimal
	firstSeen time.Time
	amount    uint64
}

// match repeatedly crosses the best bid against the best ask until no
// crossing remains, aggregating same-key matches produced when an
// iceberg restarts mid-pass, then flushes the aggregated log to the
// sink in first-seen order.
func (e *Engine) match() {
	log := make([]*matchRecord, 0)
	index := make(map[matchKey]*matchRecord)

	for {
		buyEntry, buyOK := e.buy.Peek()
		sellEntry, sellOK := e.sell.Peek()
		if !buyOK || !sellOK || buyEntry.Price.LessThan(sellEntry.Price) {
			break
		}

		buyOrder := e.mustLookup(buyEntry.OrderID)
		sellOrder := e.mustLookup(sellEntry.OrderID)

		requested := buyOrder.DisplayedVolume()
		traded := sellOrder.Trade(requested, buyOrder.ArrivalTS())

		// The later-arrived of the two crossing orders is the
		// aggressor and pays the earlier (passive) order's price.
		var aggressorID, passiveID string
		var passivePrice decimal.Decimal
		if buyOrder.ArrivalTS() > sellOrder.ArrivalTS() {
			aggressorID, passiveID, passivePrice = buyOrder.ID(), sellOrder.ID(), sellOrder.Price()
		} else {
			aggressorID, passiveID, passivePrice = sellOrder.ID(), buyOrder.ID(), buyOrder.Price()
		}

		key := matchKey{aggressorID: aggressorID, passiveID: passiveID, passivePrice: passivePrice.String()}
		if rec, ok := index[key]; ok {
			rec.amount += traded
		} else {
			rec := &matchRecord{
				aggressor: aggressorID,
				passive:   passiveID,
				price:     passivePrice,
				firstSeen: time.Now(),
				amount:    traded,
			}
			index[key] = rec
			log = append(log, rec)
		}

		// Reciprocal update; its return value is discarded by
		// construction it equals traded.
		buyOrder.Trade(traded, sellOrder.ArrivalTS())

		e.settle(sellOrder, order.Sell)
		e.settle(buyOrder, order.Buy)
	}

	if len(log) == 0 {
		return
	}

	sort.SliceStable(log, func(i, j int) bool { return log[i].firstSeen.Before(log[j].firstSeen) })

	trades := make([]sink.Trade, len(log))
	for i, rec := range log {
		trades[i] = sink.Trade{
			AggressorID: rec.aggressor,
			PassiveID:   rec.passive,
			Price:       rec.price,
			Amount:      rec.amount,
		}
	}
	if err := e.sink.EmitBatch(trades); err != nil {
		e.logger.Error().Err(err).Msg("trade sink rejected batch")
	}
}

// settle pops o from its side's live queue if it just went complete,
// then either re-queues it (iceberg restart) or removes it from the
// id index permanently. Removal from the index is the sole point of
// destruction, and happens only after the side-book entry is popped.
func (e *Engine) settle(o order.Order, side order.Side) {
	if !o.IsComplete() {
		return
	}

	var popped book.Entry
	switch side {
	case order.Buy:
		popped = e.buy.Pop()
		e.buyIndex.Delete(popped)
	case order.Sell:
		popped = e.sell.Pop()
		e.sellIndex.Delete(popped)
	}
	if popped.OrderID != o.ID() {
		e.logger.Fatal().Str("expected", o.ID()).Str("got", popped.OrderID).Msg("invariant violation: side book head did not match settled order")
	}

	if o.ShouldRestart() {
		// The restarted entry gets a fresh priority-key timestamp so it
		// goes to the back of its price level, but the order's own
		// ArrivalTS is left untouched: aggressive/passive determination
		// (both here and inside Iceberg.Trade) must keep comparing
		// against the order's ORIGINAL arrival, or a restart would
		// flip a passive iceberg into its own counterparty's aggressor
		// partway through a pass, splitting one aggregated trade into
		// several.
		entry := book.Entry{OrderID: o.ID(), Price: o.Price(), Arrival: e.nextTimestamp()}
		switch side {
		case order.Buy:
			e.buy.Push(entry)
			e.buyIndex.Set(entry)
		case order.Sell:
			e.sell.Push(entry)
			e.sellIndex.Set(entry)
		}
		return
	}

	delete(e.byID, o.ID())
}

// mustLookup fetches an order by id from the authoritative index. A
// miss here means a side-book entry outlived its record, which is the
// one internal invariant violation the engine cannot recover from.
func (e *Engine) mustLookup(id string) order.Order {
	o, ok := e.byID[id]
	if !ok {
		e.logger.Fatal().Str("id", id).Msg("invariant violation: id index miss")
	}
	return o
}

// RunID is the correlation id this engine tags its log lines with,
// the same role a UUID plays in the teacher's execution reports.
func (e *Engine) RunID() string { return e.runID }
