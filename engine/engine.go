package engine

import "context"

// =============================================================================
// ENGINE - store-backed facade over Resolve/ResolveScreen
// =============================================================================

// Engine binds the pure resolution pipeline to a StateStore and a
// Clock. Each call reads all inputs fresh; nothing is cached here.
type Engine struct {
	Store StateStore
	Clock Clock
}

func New(store StateStore, clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{Store: store, Clock: clock}
}

// Resolve loads the current state and runs one full resolution cycle,
// returning both the snapshot and its screen state.
//
// ErrNotOnboarded is returned when settings are missing so callers can
// route to onboarding instead of showing numbers.
func (e *Engine) Resolve(ctx context.Context) (Snapshot, ScreenState, error) {
	now := e.Clock.Now()
	today := DayString(now)

	settings, err := e.Store.LoadSettings(ctx)
	if err != nil {
		return Snapshot{}, ScreenState{}, err
	}
	if settings == nil {
		return Snapshot{}, ScreenState{}, ErrNotOnboarded
	}

	override, err := e.Store.LoadOverride(ctx, today)
	if err != nil {
		return Snapshot{}, ScreenState{}, err
	}
	onVacation, err := e.Store.LoadFlag(ctx, today, FlagVacation)
	if err != nil {
		return Snapshot{}, ScreenState{}, err
	}
	acknowledged, err := e.Store.LoadFlag(ctx, today, FlagAcknowledged)
	if err != nil {
		return Snapshot{}, ScreenState{}, err
	}

	snap, err := Resolve(ResolveInput{Settings: *settings, Override: override, Now: now})
	if err != nil {
		return Snapshot{}, ScreenState{}, err
	}

	screen := ResolveScreen(snap, *settings, override, SessionFlags{
		OnVacation:   onVacation,
		Acknowledged: acknowledged,
	})
	return snap, screen, nil
}
