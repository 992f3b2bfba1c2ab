/*
resolver.go - Work-state resolution and earnings snapshot

PURPOSE:
  The deterministic core: combines settings, the (date-filtered) today
  override, and "now" into one immutable Snapshot. There is no stored
  current state to corrupt: every call recomputes from scratch, so a
  missed tick self-heals on the next one.

STATES:
  day-off     weekday not in the work set and no override present
  before-work now is before today's effective start
  working     start <= now < end, earnings accrue per second
  completed   now past the effective end, earnings capped at the daily
              rate (no overtime accrual)

OVERNIGHT SHIFTS:
  When the effective schedule crosses midnight (end <= start), the end
  and "now" minutes are unfolded past 1440 so the comparisons above stay
  plain. In the post-midnight window the weekday check is attributed to
  the previous calendar day: a Friday 22:00-06:00 shift is still
  "working" at Saturday 02:00.

SEE ALSO:
  - accrual.go: rate derivation
  - screen.go: mapping a Snapshot onto a screen variant
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// WORK STATUS
// =============================================================================

type WorkStatus string

const (
	StatusDayOff     WorkStatus = "day-off"
	StatusBeforeWork WorkStatus = "before-work"
	StatusWorking    WorkStatus = "working"
	StatusCompleted  WorkStatus = "completed"
)

// =============================================================================
// SNAPSHOT - one tick's worth of output, recomputed every second
// =============================================================================

// Snapshot is the engine output for a single resolution. All monetary
// fields are non-negative, and AccumulatedEarnings >= TodayEarnings
// whenever Status != day-off.
type Snapshot struct {
	At     time.Time
	Period PayPeriod

	DailyRate           decimal.Decimal
	HourlyRate          decimal.Decimal
	PerSecond           decimal.Decimal
	TodayEarnings       decimal.Decimal
	AccumulatedEarnings decimal.Decimal

	Status    WorkStatus
	IsWorkDay bool

	// WorkedDays counts workdays from period start up to, but excluding,
	// today.
	WorkedDays int
}

// =============================================================================
// RESOLVER
// =============================================================================

// ResolveInput carries everything one resolution needs. Override may be
// nil or stale; a stale one (Day != today) is treated as absent.
type ResolveInput struct {
	Settings Settings
	Override *DayOverride
	Now      time.Time
}

// Resolve runs the full pipeline: pay period, workload count, rates,
// work state, earnings. It is pure: same input, same Snapshot.
func Resolve(in ResolveInput) (Snapshot, error) {
	if err := in.Settings.Validate(); err != nil {
		return Snapshot{}, err
	}

	now := in.Now
	today := DayString(now)
	override := in.Override.ForDay(today)

	period, err := ResolvePayPeriod(now, in.Settings.PayDay)
	if err != nil {
		return Snapshot{}, err
	}

	workDaysInPeriod := CountWorkDays(period.Start, period.End, in.Settings.WorkDays)
	rates, err := ComputeRates(in.Settings, override, period, workDaysInPeriod)
	if err != nil {
		return Snapshot{}, err
	}

	startStr, endStr := in.Settings.WorkStart, in.Settings.WorkEnd
	if override != nil {
		startStr, endStr = override.WorkStart, override.WorkEnd
	}
	start, _ := ParseClock(startStr) // validated by ComputeRates
	rawEnd, _ := ParseClock(endStr)

	rawNow := MinuteOfDay(now)
	overnight := rawEnd <= start

	// Post-midnight window of an overnight shift: the shift belongs to
	// the previous calendar day for the weekday check.
	effectiveDay := now
	if overnight && rawNow < rawEnd {
		effectiveDay = now.AddDate(0, 0, -1)
	}
	isWorkDay := in.Settings.WorkDays.Has(effectiveDay.Weekday()) || override != nil

	normEnd, normNow := NormalizeOvernight(start, rawEnd, rawNow)

	var status WorkStatus
	var todayEarnings decimal.Decimal
	switch {
	case !isWorkDay:
		status = StatusDayOff
	case normNow < start:
		status = StatusBeforeWork
	case normNow >= normEnd:
		status = StatusCompleted
		todayEarnings = rates.Daily
	default:
		status = StatusWorking
		workedSeconds := int64(normNow-start)*60 + int64(now.Second())
		todayEarnings = rates.PerSecond.Mul(decimal.NewFromInt(workedSeconds))
	}

	workedDays := CountWorkDays(period.Start, Midnight(now), in.Settings.WorkDays)
	accumulated := rates.Daily.Mul(decimal.NewFromInt(int64(workedDays))).Add(todayEarnings)

	return Snapshot{
		At:                  now,
		Period:              period,
		DailyRate:           rates.Daily,
		HourlyRate:          rates.Hourly,
		PerSecond:           rates.PerSecond,
		TodayEarnings:       todayEarnings,
		AccumulatedEarnings: accumulated,
		Status:              status,
		IsWorkDay:           isWorkDay,
		WorkedDays:          workedDays,
	}, nil
}
