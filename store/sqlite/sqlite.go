/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements engine.StateStore and engine.ActionLog using SQLite. The
  engine state is tiny (one settings row, day-keyed overrides and flags)
  but it must survive restarts: a relaunch mid-shift resumes accrual at
  the correct figure because everything the resolver needs is here.

INTERFACES IMPLEMENTED:
  engine.StateStore: settings, day overrides, day flags
  engine.ActionLog:  append-only audit of accepted user actions

KEY TABLES:
  settings:      single row (id = 1), the standing schedule and salary
  day_overrides: one row per day, today's effective schedule
  day_flags:     (day, kind) pairs for vacation and completed-ack
  action_log:    immutable audit trail of user actions

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/salary.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  eng := engine.New(store, nil)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/store.go: Interface definitions
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/wagewatch/salary-engine/engine"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Settings (single row, id = 1)
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		salary_type TEXT NOT NULL,
		salary_amount TEXT NOT NULL,
		pay_day INTEGER NOT NULL,
		work_days INTEGER NOT NULL,
		work_start TEXT NOT NULL,
		work_end TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Day overrides (today's effective schedule; stale days never read)
	CREATE TABLE IF NOT EXISTS day_overrides (
		day TEXT PRIMARY KEY,
		work_start TEXT NOT NULL,
		work_end TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Day flags (vacation, work-completed-ack)
	CREATE TABLE IF NOT EXISTS day_flags (
		day TEXT NOT NULL,
		kind TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (day, kind)
	);

	-- Action log (append-only audit)
	CREATE TABLE IF NOT EXISTS action_log (
		id TEXT PRIMARY KEY,
		at TEXT NOT NULL,
		action TEXT NOT NULL,
		day TEXT NOT NULL,
		detail TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_action_log_at
		ON action_log(at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SETTINGS (engine.StateStore interface)
// =============================================================================

// LoadSettings returns the stored settings, or (nil, nil) before
// onboarding has completed.
func (s *Store) LoadSettings(ctx context.Context) (*engine.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		salaryType   string
		salaryAmount string
		payDay       int
		workDays     int
		workStart    string
		workEnd      string
	)

	err := s.db.QueryRowContext(ctx,
		"SELECT salary_type, salary_amount, pay_day, work_days, work_start, work_end FROM settings WHERE id = 1",
	).Scan(&salaryType, &salaryAmount, &payDay, &workDays, &workStart, &workEnd)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	amount, err := decimal.NewFromString(salaryAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored salary amount %q: %w", salaryAmount, err)
	}

	return &engine.Settings{
		SalaryType:   engine.SalaryType(salaryType),
		SalaryAmount: amount,
		PayDay:       payDay,
		WorkDays:     engine.WeekdaySet(workDays),
		WorkStart:    workStart,
		WorkEnd:      workEnd,
	}, nil
}

// SaveSettings upserts the single settings row.
func (s *Store) SaveSettings(ctx context.Context, settings engine.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO settings (id, salary_type, salary_amount, pay_day, work_days, work_start, work_end, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			salary_type = excluded.salary_type,
			salary_amount = excluded.salary_amount,
			pay_day = excluded.pay_day,
			work_days = excluded.work_days,
			work_start = excluded.work_start,
			work_end = excluded.work_end,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		string(settings.SalaryType),
		settings.SalaryAmount.String(),
		settings.PayDay,
		int(settings.WorkDays),
		settings.WorkStart,
		settings.WorkEnd,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// =============================================================================
// DAY OVERRIDES
// =============================================================================

// LoadOverride returns the override for the given day, or (nil, nil).
func (s *Store) LoadOverride(ctx context.Context, day string) (*engine.DayOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var o engine.DayOverride
	err := s.db.QueryRowContext(ctx,
		"SELECT day, work_start, work_end FROM day_overrides WHERE day = ?",
		day,
	).Scan(&o.Day, &o.WorkStart, &o.WorkEnd)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load override: %w", err)
	}
	return &o, nil
}

// SaveOverride upserts the override for its day. Last write wins.
func (s *Store) SaveOverride(ctx context.Context, o engine.DayOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO day_overrides (day, work_start, work_end, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			work_start = excluded.work_start,
			work_end = excluded.work_end
	`

	_, err := s.db.ExecContext(ctx, query,
		o.Day, o.WorkStart, o.WorkEnd,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save override: %w", err)
	}
	return nil
}

// ClearOverride removes the override for a day. Missing rows are fine.
func (s *Store) ClearOverride(ctx context.Context, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM day_overrides WHERE day = ?", day)
	return err
}

// =============================================================================
// DAY FLAGS
// =============================================================================

func (s *Store) LoadFlag(ctx context.Context, day string, kind engine.FlagKind) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM day_flags WHERE day = ? AND kind = ?",
		day, string(kind),
	).Scan(&count)

	return count > 0, err
}

func (s *Store) SetFlag(ctx context.Context, day string, kind engine.FlagKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO day_flags (day, kind, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(day, kind) DO NOTHING
	`

	_, err := s.db.ExecContext(ctx, query,
		day, string(kind), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) ClearFlag(ctx context.Context, day string, kind engine.FlagKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"DELETE FROM day_flags WHERE day = ? AND kind = ?",
		day, string(kind),
	)
	return err
}

// =============================================================================
// ACTION LOG (engine.ActionLog interface)
// =============================================================================

// AppendAction adds an audit entry. Append-only: no UPDATE, no DELETE.
func (s *Store) AppendAction(ctx context.Context, e engine.ActionEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO action_log (id, at, action, day, detail) VALUES (?, ?, ?, ?, ?)",
		e.ID,
		e.At.UTC().Format(time.RFC3339),
		string(e.Action),
		e.Day,
		e.Detail,
	)
	if err != nil {
		return fmt.Errorf("failed to append action: %w", err)
	}
	return nil
}

// ListActions returns the most recent entries, newest first.
func (s *Store) ListActions(ctx context.Context, limit int) ([]engine.ActionEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, at, action, day, detail FROM action_log ORDER BY at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %w", err)
	}
	defer rows.Close()

	var entries []engine.ActionEntry
	for rows.Next() {
		var e engine.ActionEntry
		var at string
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &at, &e.Action, &e.Day, &detail); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		e.At, _ = time.Parse(time.RFC3339, at)
		e.Detail = detail.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"settings", "day_overrides", "day_flags", "action_log"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
