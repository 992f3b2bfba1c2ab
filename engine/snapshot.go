package engine

import "sync"

// =============================================================================
// SNAPSHOT HOLDER - the injectable "current snapshot" cache
// =============================================================================

// SnapshotHolder owns the latest resolved snapshot and screen state.
// The ticker writes it; readers (tray title, HTTP handlers that prefer
// the cached frame) take a copy. This replaces any notion of hidden
// process-wide state: whoever drives the tick loop owns the holder.
type SnapshotHolder struct {
	mu     sync.RWMutex
	valid  bool
	snap   Snapshot
	screen ScreenState
}

func NewSnapshotHolder() *SnapshotHolder { return &SnapshotHolder{} }

// Set stores the latest frame.
func (h *SnapshotHolder) Set(snap Snapshot, screen ScreenState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snap, h.screen, h.valid = snap, screen, true
}

// Clear drops the cached frame (e.g. after settings become invalid).
func (h *SnapshotHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.valid = false
}

// Latest returns the most recent snapshot, if any tick has completed.
func (h *SnapshotHolder) Latest() (Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap, h.valid
}

// LatestScreen returns the most recent screen state, if any.
func (h *SnapshotHolder) LatestScreen() (ScreenState, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.screen, h.valid
}
