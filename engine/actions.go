/*
actions.go - User-initiated mutations

PURPOSE:
  The write side of the engine: each method persists an override or a
  flag through the StateStore and records an audit entry. None of them
  touch the snapshot directly; the next tick's fresh read picks the
  change up. Every method is idempotent at the storage layer: repeating
  an action rewrites the same day-keyed row.

ACTIONS:
  StartWork             clock in early; the end time shifts earlier by
                        the same margin so the paid day keeps its length
  EarlyLeave            set today's end to now; no-op if already past
                        the effective end
  TodayWorkFromDayOff   seed an override starting now with the standing
                        schedule's duration
  TodayWorkFromVacation cancel vacation and record the standing schedule
  Vacation              mark today as vacation
  Acknowledge           dismiss the "work completed" screen
  StillWorking          undo: clear both the override and the
                        acknowledgment, snapping back to working

SEE ALSO:
  - screen.go: which actions each screen permits
*/
package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Actions executes user write intents against the store.
type Actions struct {
	Store StateStore
	Log   ActionLog // optional
	Clock Clock
}

func NewActions(store StateStore, log ActionLog, clock Clock) *Actions {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Actions{Store: store, Log: log, Clock: clock}
}

// =============================================================================
// SCHEDULE ACTIONS
// =============================================================================

// StartWork clocks in at the current time. Starting early shifts the
// end time earlier by the same number of minutes, preserving the total
// scheduled duration; starting late (or on time) just records today's
// effective schedule as an override.
func (a *Actions) StartWork(ctx context.Context) error {
	now := a.Clock.Now()
	day := DayString(now)

	start, end, err := a.effectiveSchedule(ctx, day)
	if err != nil {
		return err
	}

	nowMin := MinuteOfDay(now)
	early := start - nowMin
	if early <= 0 {
		return a.saveOverride(ctx, ActionStartWork, day, FormatClock(start), FormatClock(end))
	}
	return a.saveOverride(ctx, ActionStartWork, day, FormatClock(nowMin), FormatClock(end-early))
}

// EarlyLeave sets today's end time to now. Returns applied=false (and
// writes nothing) when now is already at or past the effective end.
func (a *Actions) EarlyLeave(ctx context.Context) (applied bool, err error) {
	now := a.Clock.Now()
	day := DayString(now)

	start, end, err := a.effectiveSchedule(ctx, day)
	if err != nil {
		return false, err
	}

	nowMin := MinuteOfDay(now)
	normEnd, normNow := NormalizeOvernight(start, end, nowMin)
	if normNow >= normEnd {
		return false, nil
	}

	// Persisting end == start would read back as a 24-hour shift, so an
	// early leave in the first scheduled minute rounds up to start+1.
	newEnd := nowMin
	if newEnd == start {
		newEnd = start + 1
	}
	if err := a.saveOverride(ctx, ActionEarlyLeave, day, FormatClock(start), FormatClock(newEnd)); err != nil {
		return false, err
	}
	return true, nil
}

// TodayWorkFromDayOff turns a day off into a workday: the override
// starts now and lasts as long as the standing schedule.
func (a *Actions) TodayWorkFromDayOff(ctx context.Context) error {
	now := a.Clock.Now()
	day := DayString(now)

	settings, err := a.settings(ctx)
	if err != nil {
		return err
	}
	start, _ := ParseClock(settings.WorkStart)
	end, _ := ParseClock(settings.WorkEnd)
	normEnd, _ := NormalizeOvernight(start, end, 0)
	duration := normEnd - start

	nowMin := MinuteOfDay(now)
	return a.saveOverride(ctx, ActionTodayWork, day, FormatClock(nowMin), FormatClock(nowMin+duration))
}

// TodayWorkFromVacation cancels today's vacation and records the
// standing schedule as today's override.
func (a *Actions) TodayWorkFromVacation(ctx context.Context) error {
	now := a.Clock.Now()
	day := DayString(now)

	settings, err := a.settings(ctx)
	if err != nil {
		return err
	}
	if err := a.Store.ClearFlag(ctx, day, FlagVacation); err != nil {
		return err
	}
	return a.saveOverride(ctx, ActionTodayWork, day, settings.WorkStart, settings.WorkEnd)
}

// =============================================================================
// FLAG ACTIONS
// =============================================================================

// Vacation marks today as vacation.
func (a *Actions) Vacation(ctx context.Context) error {
	day := DayString(a.Clock.Now())
	if err := a.Store.SetFlag(ctx, day, FlagVacation); err != nil {
		return err
	}
	return a.audit(ctx, ActionVacation, day, "")
}

// Acknowledge dismisses the work-completed screen for today.
func (a *Actions) Acknowledge(ctx context.Context) error {
	day := DayString(a.Clock.Now())
	if err := a.Store.SetFlag(ctx, day, FlagAcknowledged); err != nil {
		return err
	}
	return a.audit(ctx, ActionAcknowledge, day, "")
}

// StillWorking undoes an early leave after the fact: both the override
// and the acknowledgment are cleared, so the next tick resolves back to
// working against the standing schedule with earnings continuous.
func (a *Actions) StillWorking(ctx context.Context) error {
	day := DayString(a.Clock.Now())
	if err := a.Store.ClearOverride(ctx, day); err != nil {
		return err
	}
	if err := a.Store.ClearFlag(ctx, day, FlagAcknowledged); err != nil {
		return err
	}
	return a.audit(ctx, ActionStillWorking, day, "")
}

// =============================================================================
// HELPERS
// =============================================================================

func (a *Actions) settings(ctx context.Context) (*Settings, error) {
	settings, err := a.Store.LoadSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, ErrNotOnboarded
	}
	return settings, nil
}

// effectiveSchedule returns today's schedule in minutes: the override
// if one is stored for today, the standing schedule otherwise.
func (a *Actions) effectiveSchedule(ctx context.Context, day string) (start, end Minutes, err error) {
	settings, err := a.settings(ctx)
	if err != nil {
		return 0, 0, err
	}
	startStr, endStr := settings.WorkStart, settings.WorkEnd
	override, err := a.Store.LoadOverride(ctx, day)
	if err != nil {
		return 0, 0, err
	}
	if o := override.ForDay(day); o != nil {
		startStr, endStr = o.WorkStart, o.WorkEnd
	}
	if start, err = ParseClock(startStr); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(endStr); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func (a *Actions) saveOverride(ctx context.Context, action Action, day, start, end string) error {
	if err := a.Store.SaveOverride(ctx, DayOverride{Day: day, WorkStart: start, WorkEnd: end}); err != nil {
		return err
	}
	return a.audit(ctx, action, day, fmt.Sprintf("%s-%s", start, end))
}

func (a *Actions) audit(ctx context.Context, action Action, day, detail string) error {
	if a.Log == nil {
		return nil
	}
	return a.Log.AppendAction(ctx, ActionEntry{
		ID:     uuid.NewString(),
		At:     a.Clock.Now(),
		Action: action,
		Day:    day,
		Detail: detail,
	})
}
