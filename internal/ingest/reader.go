// Package ingest is the external reader the core deliberately excludes:
// it tokenises one order per line into the core's Submit entry point.
// Malformed input never reaches the engine — every rejection here is
// an input-malformation error, not an internal invariant violation.
package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"ember/internal/order"
)

var (
	ErrFieldCount  = errors.New("ingest: wrong field count")
	ErrEmptyID     = errors.New("ingest: empty order id")
	ErrInvalidSide = errors.New("ingest: side must be B or S")
	ErrInvalidPrice = errors.New("ingest: invalid price")
	ErrInvalidVolume = errors.New("ingest: volume must be a positive integer")
	ErrInvalidPeak = errors.New("ingest: peak must be a positive integer")
)

// ParseLine tokenises one input record:
//
//	id,side,price,volume[,peak]
//
// The presence of a fifth field identifies the order as an iceberg.
// arrival_ts is left unset — the engine assigns it at Submit time, not
// from input.
func ParseLine(line string) (order.Order, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 && len(fields) != 5 {
		return nil, fmt.Errorf("%w: expected 4 or 5 fields, got %d", ErrFieldCount, len(fields))
	}

	id := strings.TrimSpace(fields[0])
	if id == "" {
		return nil, ErrEmptyID
	}

	var side order.Side
	switch strings.TrimSpace(fields[1]) {
	case "B":
		side = order.Buy
	case "S":
		side = order.Sell
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSide, fields[1])
	}

	price, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}

	volume, err := strconv.ParseUint(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil || volume == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVolume, fields[3])
	}

	if len(fields) == 5 {
		peak, err := strconv.ParseUint(strings.TrimSpace(fields[4]), 10, 64)
		if err != nil || peak == 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPeak, fields[4])
		}
		return order.NewIceberg(id, side, price, volume, peak, 0), nil
	}

	return order.NewRegular(id, side, price, volume, 0), nil
}
