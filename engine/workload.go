package engine

import "time"

// =============================================================================
// WORKLOAD COUNTER - weekday membership over a date range
// =============================================================================

// CountWorkDays counts calendar days in [start, end) whose weekday is in
// the set. Used both for "workdays in the pay period" (the daily-rate
// denominator) and "workdays elapsed since period start, excluding
// today" (the accumulated-earnings multiplier). start == end is zero
// days. O(days), fine for periods of at most ~31 days.
func CountWorkDays(start, end time.Time, days WeekdaySet) int {
	count := 0
	for cur := Midnight(start); cur.Before(end); cur = cur.AddDate(0, 0, 1) {
		if days.Has(cur.Weekday()) {
			count++
		}
	}
	return count
}
