// Package present is the external pretty-printer the core deliberately
// excludes: it formats the resting book for a human reader after all
// input has been consumed.
package present

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ember/internal/engine"
)

// Snapshot writes the two-column resting-book listing: buys left
// (volume, price), sells right (price, volume), each column in
// priority order from best to worst, independently of the other side.
// The shorter side is padded with blanks. Volumes are rendered with
// thousands separators.
func Snapshot(w io.Writer, buys, sells []engine.Row) error {
	p := message.NewPrinter(language.English)

	if _, err := fmt.Fprintf(w, "%-19s  %s\n", "Buyers", "Sellers"); err != nil {
		return err
	}

	rows := len(buys)
	if len(sells) > rows {
		rows = len(sells)
	}

	for i := 0; i < rows; i++ {
		var buyVol, buyPrice string
		if i < len(buys) {
			buyVol = p.Sprintf("%d", buys[i].Volume)
			buyPrice = buys[i].Price.String()
		}
		var sellPrice, sellVol string
		if i < len(sells) {
			sellPrice = sells[i].Price.String()
			sellVol = p.Sprintf("%d", sells[i].Volume)
		}
		line := fmt.Sprintf("%-11s %-11s | %-11s %-11s\n", buyVol, buyPrice, sellPrice, sellVol)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
