/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract: decimals are
  rendered as float64 at this edge only, weekday sets become readable
  name lists, and internal enums pass through as their string values.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/resolver.go: The Snapshot these views are built from
*/
package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/wagewatch/salary-engine/engine"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// SnapshotDTO is the per-tick earnings view.
type SnapshotDTO struct {
	At          string `json:"at"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`

	DailyRate           float64 `json:"daily_rate"`
	HourlyRate          float64 `json:"hourly_rate"`
	PerSecond           float64 `json:"per_second"`
	TodayEarnings       float64 `json:"today_earnings"`
	AccumulatedEarnings float64 `json:"accumulated_earnings"`

	Status     string `json:"status"`
	IsWorkDay  bool   `json:"is_work_day"`
	WorkedDays int    `json:"worked_days"`
	IsPayday   bool   `json:"is_payday"`
}

// ScreenDTO is the screen state machine output.
type ScreenDTO struct {
	Kind      string      `json:"kind"`
	WorkStart string      `json:"work_start"`
	WorkEnd   string      `json:"work_end"`
	Actions   []string    `json:"actions"`
	Pending   bool        `json:"pending"`
	Snapshot  SnapshotDTO `json:"snapshot"`
}

// SettingsDTO mirrors engine.Settings with weekday names instead of the
// internal bitmask.
type SettingsDTO struct {
	SalaryType   string   `json:"salary_type"`
	SalaryAmount float64  `json:"salary_amount"`
	PayDay       int      `json:"pay_day"`
	WorkDays     []string `json:"work_days"`
	WorkStart    string   `json:"work_start"`
	WorkEnd      string   `json:"work_end"`
}

// ActionEntryDTO is one audit log row.
type ActionEntryDTO struct {
	ID     string `json:"id"`
	At     string `json:"at"`
	Action string `json:"action"`
	Day    string `json:"day"`
	Detail string `json:"detail,omitempty"`
}

// ActionResultDTO is returned by action endpoints. Applied is false when
// the action was a valid no-op (e.g. early leave after the shift ended).
type ActionResultDTO struct {
	Applied bool      `json:"applied"`
	Screen  ScreenDTO `json:"screen"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// PutSettingsRequest is the onboarding/settings update body.
type PutSettingsRequest struct {
	SalaryType   string   `json:"salary_type"`
	SalaryAmount float64  `json:"salary_amount"`
	PayDay       int      `json:"pay_day"`
	WorkDays     []string `json:"work_days"`
	WorkStart    string   `json:"work_start"`
	WorkEnd      string   `json:"work_end"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toSnapshotDTO(s engine.Snapshot, payDay int) SnapshotDTO {
	return SnapshotDTO{
		At:                  s.At.Format(time.RFC3339),
		PeriodStart:         s.Period.Start.Format("2006-01-02"),
		PeriodEnd:           s.Period.End.Format("2006-01-02"),
		DailyRate:           s.DailyRate.InexactFloat64(),
		HourlyRate:          s.HourlyRate.InexactFloat64(),
		PerSecond:           s.PerSecond.InexactFloat64(),
		TodayEarnings:       s.TodayEarnings.InexactFloat64(),
		AccumulatedEarnings: s.AccumulatedEarnings.InexactFloat64(),
		Status:              string(s.Status),
		IsWorkDay:           s.IsWorkDay,
		WorkedDays:          s.WorkedDays,
		IsPayday:            engine.IsPayday(s.At, payDay),
	}
}

func toScreenDTO(sc engine.ScreenState, payDay int) ScreenDTO {
	actions := make([]string, len(sc.Actions))
	for i, a := range sc.Actions {
		actions[i] = string(a)
	}
	return ScreenDTO{
		Kind:      string(sc.Kind),
		WorkStart: sc.WorkStart,
		WorkEnd:   sc.WorkEnd,
		Actions:   actions,
		Pending:   sc.Pending,
		Snapshot:  toSnapshotDTO(sc.Snapshot, payDay),
	}
}

func toSettingsDTO(s engine.Settings) SettingsDTO {
	days := s.WorkDays.Weekdays()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = strings.ToLower(d.String())
	}
	return SettingsDTO{
		SalaryType:   string(s.SalaryType),
		SalaryAmount: s.SalaryAmount.InexactFloat64(),
		PayDay:       s.PayDay,
		WorkDays:     names,
		WorkStart:    s.WorkStart,
		WorkEnd:      s.WorkEnd,
	}
}

func toActionEntryDTO(e engine.ActionEntry) ActionEntryDTO {
	return ActionEntryDTO{
		ID:     e.ID,
		At:     e.At.Format(time.RFC3339),
		Action: string(e.Action),
		Day:    e.Day,
		Detail: e.Detail,
	}
}

// parseWeekdays converts lowercase day names to the internal set.
func parseWeekdays(names []string) (engine.WeekdaySet, error) {
	byName := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	var set engine.WeekdaySet
	for _, n := range names {
		d, ok := byName[strings.ToLower(n)]
		if !ok {
			return 0, fmt.Errorf("unknown weekday %q", n)
		}
		set |= engine.NewWeekdaySet(d)
	}
	return set, nil
}
