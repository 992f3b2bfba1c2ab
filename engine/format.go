/*
format.go - Tray title formatting

PURPOSE:
  Turns a Snapshot into the short text shown next to the menubar icon.
  Amounts are floored to whole won and grouped with commas; the display
  mode picks which figure (today vs period-to-date) is shown, or hides
  the title entirely.
*/
package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayMode selects what the tray title shows.
type DisplayMode string

const (
	DisplayNone        DisplayMode = "none"
	DisplayDaily       DisplayMode = "daily"
	DisplayAccumulated DisplayMode = "accumulated"
)

// TrayTitle renders the tray text for a snapshot. ok is false when the
// title should be hidden (mode none, or a day off with nothing accrued).
func TrayTitle(snap Snapshot, mode DisplayMode) (title string, ok bool) {
	if mode == DisplayNone {
		return "", false
	}
	if snap.Status == StatusDayOff {
		return "", false
	}

	amount := snap.TodayEarnings
	if mode == DisplayAccumulated {
		amount = snap.AccumulatedEarnings
	}
	// Leading space pads the text away from the menubar icon.
	return " " + FormatCurrency(amount), true
}

// FormatCurrency floors to whole won and inserts thousands separators:
// 214285.71 -> "214,285원".
func FormatCurrency(d decimal.Decimal) string {
	whole := d.Floor().String()

	neg := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString("원")
	return b.String()
}
