package sink

import (
	"bufio"
	"fmt"
	"io"
)

// WriterSink formats each trade as a single line and writes it to an
// underlying io.Writer:
//
//	trade <aggressor_id>, <passive_id>, <price>, <amount>
//
// Price is rendered with as many decimal places as the input that
// produced it (the parsed decimal's exponent) — no trailing-zero
// normalisation.
type WriterSink struct {
	w *bufio.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

func (s *WriterSink) EmitBatch(trades []Trade) error {
	for _, t := range trades {
		places := -t.Price.Exponent()
		if places < 0 {
			places = 0
		}
		if _, err := fmt.Fprintf(s.w, "trade %s, %s, %s, %d\n", t.AggressorID, t.PassiveID, t.Price.StringFixed(places), t.Amount); err != nil {
			return err
		}
	}
	return s.w.Flush()
}
