/*
screen.go - Screen state machine

PURPOSE:
  Maps a Snapshot plus the per-day session flags onto exactly one of six
  screen variants, evaluated in strict priority order (first match
  wins). Each variant carries the data its screen needs plus the set of
  actions that are currently valid; the caller looks up handlers from a
  fixed table keyed by Action instead of capturing closures.

PRIORITY ORDER:
  1. vacation        (flag wins over everything)
  2. day-off
  3. before-work
  4. working
  5. completed       (not yet acknowledged)
  6. post-completed  (acknowledged; "still working" undo available only
                     while now is before the ORIGINAL standing end)

PENDING:
  While a mutation is in flight the screen keeps its tag but its action
  list is emptied and Pending is set, so the UI renders the same screen
  with disabled controls instead of a parallel shadow state machine.

SEE ALSO:
  - actions.go: the handlers behind each Action
*/
package engine

// =============================================================================
// SCREEN KINDS AND ACTIONS
// =============================================================================

type ScreenKind string

const (
	ScreenVacation      ScreenKind = "vacation"
	ScreenDayOff        ScreenKind = "day-off"
	ScreenBeforeWork    ScreenKind = "before-work"
	ScreenWorking       ScreenKind = "working"
	ScreenCompleted     ScreenKind = "completed"
	ScreenPostCompleted ScreenKind = "post-completed"
)

type Action string

const (
	ActionTodayWork    Action = "today-work"
	ActionStartWork    Action = "start-work"
	ActionEarlyLeave   Action = "early-leave"
	ActionVacation     Action = "vacation"
	ActionAcknowledge  Action = "acknowledge"
	ActionStillWorking Action = "still-working"
)

// =============================================================================
// SCREEN STATE
// =============================================================================

// ScreenState is the tagged union consumed by the UI layer. WorkStart
// and WorkEnd are today's effective schedule (override or standing).
type ScreenState struct {
	Kind     ScreenKind
	Snapshot Snapshot

	WorkStart string
	WorkEnd   string

	Actions []Action
	Pending bool
}

// Allows reports whether the given action is currently valid.
func (s ScreenState) Allows(a Action) bool {
	for _, x := range s.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// =============================================================================
// RESOLUTION
// =============================================================================

// ResolveScreen picks the screen variant for a snapshot. The override
// passed here must already be date-filtered (as Resolve does); the
// standing settings are needed separately because the "still working"
// undo is gated on the ORIGINAL end time, ignoring any override.
func ResolveScreen(snap Snapshot, settings Settings, override *DayOverride, flags SessionFlags) ScreenState {
	effStart, effEnd := settings.WorkStart, settings.WorkEnd
	if o := override.ForDay(DayString(snap.At)); o != nil {
		effStart, effEnd = o.WorkStart, o.WorkEnd
	}

	st := ScreenState{Snapshot: snap, WorkStart: effStart, WorkEnd: effEnd}

	switch {
	case flags.OnVacation:
		// Vacation earnings keep accruing at perSecond as if working.
		st.Kind = ScreenVacation
		st.Actions = []Action{ActionTodayWork}

	case snap.Status == StatusDayOff:
		st.Kind = ScreenDayOff
		st.Actions = []Action{ActionTodayWork}

	case snap.Status == StatusBeforeWork:
		st.Kind = ScreenBeforeWork
		st.Actions = []Action{ActionVacation, ActionStartWork}

	case snap.Status == StatusWorking:
		st.Kind = ScreenWorking
		st.Actions = []Action{ActionEarlyLeave, ActionVacation}

	case !flags.Acknowledged:
		st.Kind = ScreenCompleted
		st.Actions = []Action{ActionAcknowledge}

	default:
		st.Kind = ScreenPostCompleted
		if beforeStandingEnd(settings, snap) {
			st.Actions = []Action{ActionStillWorking}
		}
	}

	if flags.PendingWrite {
		st.Pending = true
		st.Actions = nil
	}
	return st
}

// beforeStandingEnd reports whether now is still before the standing
// schedule's end time. Used to decide if an early leave can be undone.
func beforeStandingEnd(settings Settings, snap Snapshot) bool {
	start, err := ParseClock(settings.WorkStart)
	if err != nil {
		return false
	}
	end, err := ParseClock(settings.WorkEnd)
	if err != nil {
		return false
	}
	normEnd, normNow := NormalizeOvernight(start, end, MinuteOfDay(snap.At))
	return normNow < normEnd
}
