package engine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewatch/salary-engine/engine"
)

// =============================================================================
// CURRENCY FORMATTING
// =============================================================================

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0원"},
		{999, "999원"},
		{1000, "1,000원"},
		{214285.71, "214,285원"}, // floored, never rounded up
		{4500000, "4,500,000원"},
		{71428.9999, "71,428원"},
	}
	for _, c := range cases {
		got := engine.FormatCurrency(decimal.NewFromFloat(c.in))
		if got != c.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

// =============================================================================
// TRAY TITLE
// =============================================================================

func TestTrayTitle(t *testing.T) {
	snap := engine.Snapshot{
		At:                  time.Date(2025, time.May, 14, 12, 0, 0, 0, time.UTC),
		Status:              engine.StatusWorking,
		TodayEarnings:       decimal.NewFromFloat(71428.57),
		AccumulatedEarnings: decimal.NewFromFloat(2857142.85),
	}

	// The title carries a leading space so the text does not sit flush
	// against the menubar icon.
	title, ok := engine.TrayTitle(snap, engine.DisplayDaily)
	if !ok || title != " 71,428원" {
		t.Errorf("daily: (%q, %v)", title, ok)
	}

	title, ok = engine.TrayTitle(snap, engine.DisplayAccumulated)
	if !ok || title != " 2,857,142원" {
		t.Errorf("accumulated: (%q, %v)", title, ok)
	}

	if _, ok = engine.TrayTitle(snap, engine.DisplayNone); ok {
		t.Error("mode none should hide the title")
	}

	snap.Status = engine.StatusDayOff
	if _, ok = engine.TrayTitle(snap, engine.DisplayDaily); ok {
		t.Error("day off should hide the title")
	}
}
