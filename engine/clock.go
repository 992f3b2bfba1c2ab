/*
Package engine implements the salary accrual and work-state engine.

PURPOSE:
  Given a user's salary settings, an optional today-only schedule
  override, and the wall clock, the engine computes, once per second,
  how much money has been earned today and in the current pay period,
  and which work state the user is in (before work, working, completed,
  day off). The whole pipeline is stateless: every tick is a fresh,
  side-effect-free calculation from whatever is currently stored.

KEY CONCEPTS IN THIS FILE (clock.go):
  - Minutes: minutes since local midnight, the unit all schedule
    comparisons happen in
  - Overnight normalization: shifts where end <= start cross midnight
    and are unfolded onto a 0..2879 minute axis so downstream code can
    use plain < / >= comparisons
  - Clock: the single injection point for wall-clock time

DESIGN PRINCIPLES:
  1. Fail fast: malformed "HH:MM" input is an error, never coerced
  2. Purity: only Clock implementations touch time.Now()
  3. Precision: monetary math lives elsewhere (decimal.Decimal); this
     file is integer minute arithmetic only

SEE ALSO:
  - period.go: pay-period boundaries
  - resolver.go: where normalized minutes drive the state machine
*/
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// MINUTES - minutes since local midnight
// =============================================================================

type Minutes int

const MinutesPerDay Minutes = 24 * 60

// ParseClock converts an "HH:MM" string to minutes since midnight.
// Returns a *ParseError for anything that is not two colon-separated
// numeric fields in range; callers are expected to validate user input
// at the boundary and only pass clean strings further down.
func ParseClock(s string) (Minutes, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, &ParseError{Input: s, Reason: "expected HH:MM"}
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &ParseError{Input: s, Reason: "non-numeric hour"}
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &ParseError{Input: s, Reason: "non-numeric minute"}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, &ParseError{Input: s, Reason: "out of range"}
	}
	return Minutes(h*60 + m), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
// Inputs outside [0, 1440) wrap around modulo 24h rather than clamping,
// so that schedule arithmetic (end shifted earlier, start plus duration)
// always lands on a valid clock face.
func FormatClock(m Minutes) string {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// NormalizeOvernight unfolds an overnight shift onto a single axis.
//
// If end <= start the shift crosses midnight and end is pushed out by
// 24h. If additionally now < start, "now" belongs to the morning after
// the shift started and is pushed out too. end == start is defined as a
// full 24-hour shift, not a zero-length one.
func NormalizeOvernight(start, end, now Minutes) (normEnd, normNow Minutes) {
	normEnd, normNow = end, now
	if end <= start {
		normEnd = end + MinutesPerDay
		if now < start {
			normNow = now + MinutesPerDay
		}
	}
	return normEnd, normNow
}

// =============================================================================
// CLOCK - the only non-deterministic input
// =============================================================================

// Clock abstracts wall-clock access so the resolver and ticker can be
// tested with a frozen time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// =============================================================================
// TIME HELPERS
// =============================================================================

const dayLayout = "2006-01-02"

// DayString renders a time as the "YYYY-MM-DD" key used for date-scoped
// storage (overrides, vacation and acknowledgment flags).
func DayString(t time.Time) string { return t.Format(dayLayout) }

// ClockString renders the time-of-day as "HH:MM".
func ClockString(t time.Time) string { return t.Format("15:04") }

// MinuteOfDay returns minutes since midnight for t.
func MinuteOfDay(t time.Time) Minutes { return Minutes(t.Hour()*60 + t.Minute()) }

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
