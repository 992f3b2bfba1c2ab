// Package store provides StateStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/wagewatch/salary-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	settings  *engine.Settings
	overrides map[string]engine.DayOverride
	flags     map[flagKey]bool
	actions   []engine.ActionEntry
}

type flagKey struct {
	Day  string
	Kind engine.FlagKind
}

func NewMemory() *Memory {
	return &Memory{
		overrides: make(map[string]engine.DayOverride),
		flags:     make(map[flagKey]bool),
	}
}

func (m *Memory) LoadSettings(_ context.Context) (*engine.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return nil, nil
	}
	s := *m.settings
	return &s, nil
}

func (m *Memory) SaveSettings(_ context.Context, s engine.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = &s
	return nil
}

func (m *Memory) LoadOverride(_ context.Context, day string) (*engine.DayOverride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.overrides[day]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *Memory) SaveOverride(_ context.Context, o engine.DayOverride) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[o.Day] = o
	return nil
}

func (m *Memory) ClearOverride(_ context.Context, day string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overrides, day)
	return nil
}

func (m *Memory) LoadFlag(_ context.Context, day string, kind engine.FlagKind) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[flagKey{Day: day, Kind: kind}], nil
}

func (m *Memory) SetFlag(_ context.Context, day string, kind engine.FlagKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[flagKey{Day: day, Kind: kind}] = true
	return nil
}

func (m *Memory) ClearFlag(_ context.Context, day string, kind engine.FlagKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flags, flagKey{Day: day, Kind: kind})
	return nil
}

// =============================================================================
// ACTION LOG
// =============================================================================

// AppendAction adds an entry. Append-only.
func (m *Memory) AppendAction(_ context.Context, e engine.ActionEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, e)
	return nil
}

// ListActions returns the most recent entries, newest first.
func (m *Memory) ListActions(_ context.Context, limit int) ([]engine.ActionEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.actions)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]engine.ActionEntry, 0, n)
	for i := len(m.actions) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, m.actions[i])
	}
	return result, nil
}
