/*
store.go - Persistence interfaces for engine state

PURPOSE:
  Defines the boundary between the engine and whatever stores its
  inputs. The engine itself performs no storage I/O: it reads settings,
  the today override, and the per-day flags fresh at the start of each
  resolution and writes user-intent mutations through these interfaces.

CONTRACT:
  - Overrides and flags are keyed by calendar day ("YYYY-MM-DD").
    A row for a day other than today is simply never read back; date
    rollover clears state implicitly.
  - Writes are last-accepted-wins. The engine never cancels anything;
    the next tick reflects whatever is currently stored. A write must be
    visible by the next tick's read; one stale frame is tolerable and
    self-heals.

IMPLEMENTATIONS:
  - engine/store: in-memory, for tests and dev
  - store/sqlite: production SQLite

SEE ALSO:
  - actions.go: the only writers
  - ticker.go: the periodic reader
*/
package engine

import (
	"context"
	"time"
)

// =============================================================================
// FLAGS
// =============================================================================

// FlagKind names a per-day boolean. Both flags auto-expire at date
// rollover because they are keyed by day.
type FlagKind string

const (
	// FlagVacation marks today as vacation regardless of weekday.
	FlagVacation FlagKind = "vacation"

	// FlagAcknowledged marks the "work completed" screen as dismissed.
	FlagAcknowledged FlagKind = "work-completed-ack"
)

// =============================================================================
// STATE STORE
// =============================================================================

// StateStore persists the engine's external state.
type StateStore interface {
	// LoadSettings returns the stored settings, or (nil, nil) when the
	// user has not completed onboarding.
	LoadSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, s Settings) error

	// LoadOverride returns the override for the given day, or (nil, nil)
	// when absent.
	LoadOverride(ctx context.Context, day string) (*DayOverride, error)
	SaveOverride(ctx context.Context, o DayOverride) error
	ClearOverride(ctx context.Context, day string) error

	LoadFlag(ctx context.Context, day string, kind FlagKind) (bool, error)
	SetFlag(ctx context.Context, day string, kind FlagKind) error
	ClearFlag(ctx context.Context, day string, kind FlagKind) error
}

// =============================================================================
// ACTION LOG - append-only audit of accepted write intents
// =============================================================================

// ActionEntry records one accepted user action.
type ActionEntry struct {
	ID     string
	At     time.Time
	Action Action
	Day    string
	Detail string
}

// ActionLog stores action entries. Append-only; no update, no delete.
type ActionLog interface {
	AppendAction(ctx context.Context, e ActionEntry) error
	ListActions(ctx context.Context, limit int) ([]ActionEntry, error)
}
