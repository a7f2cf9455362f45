package sink

import (
	"context"

	tomb "gopkg.in/tomb.v2"
)

const asyncSinkBuffer = 256

// AsyncSink decouples the matching pass from a potentially slow
// writer by draining trade batches on a single tomb-supervised
// goroutine, the same supervision idiom the teacher's worker pool
// (internal/worker.go) uses for connection handlers. Unlike that pool
// there is exactly one consumer here, never more: batch order must
// follow submission order, and a pool would reorder concurrently
// drained batches.
type AsyncSink struct {
	inner   TradeSink
	batches chan []Trade
	t       *tomb.Tomb
}

func NewAsyncSink(ctx context.Context, inner TradeSink) *AsyncSink {
	t, ctx := tomb.WithContext(ctx)
	s := &AsyncSink{
		inner:   inner,
		batches: make(chan []Trade, asyncSinkBuffer),
		t:       t,
	}
	t.Go(func() error { return s.drain(ctx) })
	return s
}

// EmitBatch enqueues a batch for the drain goroutine. It waits on the
// underlying sink's I/O only when the asyncSinkBuffer-deep channel is
// full.
func (s *AsyncSink) EmitBatch(trades []Trade) error {
	select {
	case s.batches <- trades:
		return nil
	case <-s.t.Dying():
		return s.t.Err()
	}
}

func (s *AsyncSink) drain(ctx context.Context) error {
	for {
		select {
		case batch := <-s.batches:
			if err := s.inner.EmitBatch(batch); err != nil {
				return err
			}
		case <-ctx.Done():
			return s.drainRemaining()
		}
	}
}

// drainRemaining flushes whatever was already queued before shutdown,
// preserving submission order for every batch that made it onto the
// channel.
func (s *AsyncSink) drainRemaining() error {
	for {
		select {
		case batch := <-s.batches:
			if err := s.inner.EmitBatch(batch); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// Close signals the drain goroutine to flush and exit, and waits for
// it to finish.
func (s *AsyncSink) Close() error {
	s.t.Kill(nil)
	if err := s.t.Wait(); err != nil {
		return err
	}
	return nil
}
