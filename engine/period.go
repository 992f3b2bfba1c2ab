package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// PAY PERIOD - the accrual window between two consecutive pay days
// =============================================================================

// PayPeriod is the half-open date range [Start, End) between two
// consecutive pay days. Derived fresh every resolution, never persisted.
type PayPeriod struct {
	Start time.Time
	End   time.Time
}

// Contains returns true if t falls within [Start, End).
func (p PayPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

func (p PayPeriod) String() string {
	return fmt.Sprintf("[%s, %s)", DayString(p.Start), DayString(p.End))
}

// =============================================================================
// PAY PERIOD RESOLUTION
// =============================================================================

// ResolvePayPeriod computes the pay period containing now.
//
// If now.Day() >= payDay the period runs from this month's pay day to
// next month's; otherwise from last month's to this month's. The
// comparison uses the raw configured pay day; only the boundary dates
// clamp to each month's actual length, so pay day 31 slides to
// Feb 28/29 instead of rolling into March. This is the only place
// month-length arithmetic occurs.
func ResolvePayPeriod(now time.Time, payDay int) (PayPeriod, error) {
	if payDay < 1 || payDay > 31 {
		return PayPeriod{}, ErrInvalidPayDay
	}

	year, month, day := now.Year(), now.Month(), now.Day()
	loc := now.Location()

	if day >= payDay {
		return PayPeriod{
			Start: clampedDate(year, month, payDay, loc),
			End:   clampedDate(year, month+1, payDay, loc),
		}, nil
	}
	return PayPeriod{
		Start: clampedDate(year, month-1, payDay, loc),
		End:   clampedDate(year, month, payDay, loc),
	}, nil
}

// IsPayday reports whether today is the (clamped) pay day.
func IsPayday(now time.Time, payDay int) bool {
	return now.Day() == clampDay(payDay, now.Year(), now.Month())
}

// =============================================================================
// MONTH ARITHMETIC
// =============================================================================

// daysInMonth returns the length of the given month. Month may be
// outside 1-12; time.Date normalizes it (month 13 is January next year).
func daysInMonth(year int, month time.Month) int {
	// First of the next month, minus one day.
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1).Day()
}

func clampDay(payDay, year int, month time.Month) int {
	if n := daysInMonth(year, month); payDay > n {
		return n
	}
	return payDay
}

// clampedDate builds the pay-day date in the given month, sliding to the
// month's last day when the pay day exceeds it.
func clampedDate(year int, month time.Month, payDay int, loc *time.Location) time.Time {
	// Normalize month overflow/underflow first so clamping uses the
	// right month length.
	norm := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	y, m := norm.Year(), norm.Month()
	return time.Date(y, m, clampDay(payDay, y, m), 0, 0, 0, 0, loc)
}
