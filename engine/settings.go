/*
settings.go - User settings, today-only overrides, and session flags

PURPOSE:
  The external inputs of the engine. Settings are read-only from the
  engine's point of view; overrides and flags are written through the
  StateStore by user actions and read fresh on every resolution.

INVARIANT:
  All settings fields must be present before the engine runs. Absence
  is a precondition failure (ErrNotOnboarded), not a silent default.

SEE ALSO:
  - store.go: how these are persisted
  - resolver.go: how they are consumed
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SALARY TYPE
// =============================================================================

type SalaryType string

const (
	SalaryMonthly SalaryType = "monthly"
	SalaryYearly  SalaryType = "yearly"
)

// =============================================================================
// WEEKDAY SET - which days of the week are workdays
// =============================================================================

// WeekdaySet is a bitmask over time.Weekday (Sunday = bit 0).
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// WeekdaysMonFri is the default Monday-to-Friday schedule.
var WeekdaysMonFri = NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)

func (s WeekdaySet) Has(d time.Weekday) bool { return s&(1<<uint(d)) != 0 }

func (s WeekdaySet) Count() int {
	n := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Weekdays returns the members in Sunday-first order.
func (s WeekdaySet) Weekdays() []time.Weekday {
	var out []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// =============================================================================
// SETTINGS
// =============================================================================

// Settings is the user's standing configuration. WorkStart/WorkEnd are
// "HH:MM" strings (the storage contract); they are parsed at the
// resolution boundary, not here.
type Settings struct {
	SalaryType   SalaryType
	SalaryAmount decimal.Decimal
	PayDay       int // day of month, 1-31
	WorkDays     WeekdaySet
	WorkStart    string
	WorkEnd      string
}

// Validate checks the onboarding precondition: every field present and
// well-formed. The engine refuses to run on anything less.
func (s Settings) Validate() error {
	switch s.SalaryType {
	case SalaryMonthly, SalaryYearly:
	default:
		return ErrNotOnboarded
	}
	if !s.SalaryAmount.IsPositive() {
		return ErrNotOnboarded
	}
	if s.PayDay < 1 || s.PayDay > 31 {
		return ErrInvalidPayDay
	}
	if s.WorkDays == 0 {
		return ErrNotOnboarded
	}
	if _, err := ParseClock(s.WorkStart); err != nil {
		return err
	}
	if _, err := ParseClock(s.WorkEnd); err != nil {
		return err
	}
	return nil
}

// MonthlySalary returns the monthly figure: the amount itself, or the
// yearly amount divided by twelve.
func (s Settings) MonthlySalary() decimal.Decimal {
	if s.SalaryType == SalaryYearly {
		return s.SalaryAmount.Div(decimal.NewFromInt(12))
	}
	return s.SalaryAmount
}

// =============================================================================
// TODAY-ONLY OVERRIDE
// =============================================================================

// DayOverride replaces the standing schedule for exactly one calendar
// day. An override whose Day is not today is treated as absent; date
// rollover clears it implicitly.
type DayOverride struct {
	Day       string // "YYYY-MM-DD"
	WorkStart string // "HH:MM"
	WorkEnd   string // "HH:MM"
}

// ForDay returns o if it is scoped to the given day, nil otherwise.
func (o *DayOverride) ForDay(day string) *DayOverride {
	if o == nil || o.Day != day {
		return nil
	}
	return o
}

// =============================================================================
// SESSION FLAGS
// =============================================================================

// SessionFlags are the per-day user-toggled inputs of the screen state
// machine. PendingWrite marks an in-flight mutation: the current screen
// keeps its tag but its actions are disabled until the persisted state
// round-trips.
type SessionFlags struct {
	OnVacation   bool
	Acknowledged bool
	PendingWrite bool
}
