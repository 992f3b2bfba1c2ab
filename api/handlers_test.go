/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Onboarding gate (409 before settings exist)
- Settings PUT/GET round trip
- Snapshot and screen reads
- Action dispatch and the audit log
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewatch/salary-engine/engine"
	"github.com/wagewatch/salary-engine/engine/store"
)

type frozenClock struct{ t time.Time }

func (c frozenClock) Now() time.Time { return c.t }

// newTestServer wires a full router over a memory store with time
// frozen at Wed May 14 2025, 12:00.
func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()

	mem := store.NewMemory()
	clock := frozenClock{t: time.Date(2025, time.May, 14, 12, 0, 0, 0, time.UTC)}
	eng := engine.New(mem, clock)
	actions := engine.NewActions(mem, mem, clock)
	holder := engine.NewSnapshotHolder()

	h := NewHandler(eng, actions, mem, mem, holder)
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, mem
}

func onboard(t *testing.T, mem *store.Memory) {
	t.Helper()
	err := mem.SaveSettings(context.Background(), engine.Settings{
		SalaryType:   engine.SalaryMonthly,
		SalaryAmount: decimal.NewFromInt(4_500_000),
		PayDay:       25,
		WorkDays:     engine.WeekdaysMonFri,
		WorkStart:    "09:00",
		WorkEnd:      "18:00",
	})
	if err != nil {
		t.Fatalf("save settings: %v", err)
	}
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

// =============================================================================
// ONBOARDING GATE
// =============================================================================

func TestGetSnapshot_NotOnboardedIs409(t *testing.T) {
	srv, _ := newTestServer(t)

	var errResp ErrorResponse
	status := getJSON(t, srv.URL+"/api/snapshot", &errResp)
	if status != http.StatusConflict {
		t.Fatalf("status = %d, want 409", status)
	}
	if errResp.Code != "not_onboarded" {
		t.Errorf("code = %q, want not_onboarded", errResp.Code)
	}
}

// =============================================================================
// SETTINGS
// =============================================================================

func TestPutSettings_ThenSnapshotResolves(t *testing.T) {
	srv, _ := newTestServer(t)

	body, _ := json.Marshal(PutSettingsRequest{
		SalaryType:   "monthly",
		SalaryAmount: 4_500_000,
		PayDay:       25,
		WorkDays:     []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		WorkStart:    "09:00",
		WorkEnd:      "18:00",
	})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT settings: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
	}

	var snap SnapshotDTO
	if status := getJSON(t, srv.URL+"/api/snapshot", &snap); status != http.StatusOK {
		t.Fatalf("GET snapshot status = %d, want 200", status)
	}
	if snap.Status != "working" {
		t.Errorf("status = %q, want working at Wed 12:00", snap.Status)
	}
	if snap.PeriodStart != "2025-04-25" || snap.PeriodEnd != "2025-05-25" {
		t.Errorf("period = %s..%s", snap.PeriodStart, snap.PeriodEnd)
	}
	if snap.WorkedDays != 13 {
		t.Errorf("workedDays = %d, want 13", snap.WorkedDays)
	}
	if snap.TodayEarnings < 71428 || snap.TodayEarnings > 71429 {
		t.Errorf("today = %f, want ~71428.57", snap.TodayEarnings)
	}
}

func TestPutSettings_RejectsBadInput(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []PutSettingsRequest{
		{SalaryType: "weekly", SalaryAmount: 1, PayDay: 25, WorkDays: []string{"monday"}, WorkStart: "09:00", WorkEnd: "18:00"},
		{SalaryType: "monthly", SalaryAmount: 1, PayDay: 0, WorkDays: []string{"monday"}, WorkStart: "09:00", WorkEnd: "18:00"},
		{SalaryType: "monthly", SalaryAmount: 1, PayDay: 25, WorkDays: []string{"moonday"}, WorkStart: "09:00", WorkEnd: "18:00"},
		{SalaryType: "monthly", SalaryAmount: 1, PayDay: 25, WorkDays: []string{"monday"}, WorkStart: "25:00", WorkEnd: "18:00"},
	}
	for i, c := range cases {
		body, _ := json.Marshal(c)
		req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/settings", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("PUT settings: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, resp.StatusCode)
		}
	}
}

// =============================================================================
// SCREEN AND ACTIONS
// =============================================================================

func TestGetScreen_WorkingActions(t *testing.T) {
	srv, mem := newTestServer(t)
	onboard(t, mem)

	var screen ScreenDTO
	if status := getJSON(t, srv.URL+"/api/screen", &screen); status != http.StatusOK {
		t.Fatalf("GET screen status = %d, want 200", status)
	}
	if screen.Kind != "working" {
		t.Fatalf("kind = %q, want working", screen.Kind)
	}
	want := map[string]bool{"early-leave": true, "vacation": true}
	for _, a := range screen.Actions {
		if !want[a] {
			t.Errorf("unexpected action %q", a)
		}
		delete(want, a)
	}
	if len(want) != 0 {
		t.Errorf("missing actions: %v", want)
	}
}

func TestPostAction_EarlyLeaveThenLog(t *testing.T) {
	srv, mem := newTestServer(t)
	onboard(t, mem)

	var result ActionResultDTO
	if status := postJSON(t, srv.URL+"/api/actions/early-leave", &result); status != http.StatusOK {
		t.Fatalf("POST early-leave status = %d, want 200", status)
	}
	if !result.Applied {
		t.Error("early leave at 12:00 should apply")
	}
	if result.Screen.Kind != "completed" {
		t.Errorf("post-action kind = %q, want completed", result.Screen.Kind)
	}
	if result.Screen.WorkEnd != "12:00" {
		t.Errorf("effective end = %q, want 12:00", result.Screen.WorkEnd)
	}

	var entries []ActionEntryDTO
	if status := getJSON(t, srv.URL+"/api/actions/log", &entries); status != http.StatusOK {
		t.Fatalf("GET log status = %d, want 200", status)
	}
	if len(entries) != 1 || entries[0].Action != "early-leave" {
		t.Errorf("log = %+v, want one early-leave entry", entries)
	}
}

func TestPostAction_NotAllowedOnCurrentScreen(t *testing.T) {
	// start-work is a before-work action; at 12:00 the screen is working
	srv, mem := newTestServer(t)
	onboard(t, mem)

	var errResp ErrorResponse
	if status := postJSON(t, srv.URL+"/api/actions/start-work", &errResp); status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if errResp.Code != "action_not_available" {
		t.Errorf("code = %q, want action_not_available", errResp.Code)
	}
}

func TestPostAction_VacationFlowRoundTrip(t *testing.T) {
	srv, mem := newTestServer(t)
	onboard(t, mem)

	var result ActionResultDTO
	if status := postJSON(t, srv.URL+"/api/actions/vacation", &result); status != http.StatusOK {
		t.Fatalf("POST vacation status = %d, want 200", status)
	}
	if result.Screen.Kind != "vacation" {
		t.Fatalf("kind = %q, want vacation", result.Screen.Kind)
	}

	// today-work from the vacation screen cancels it
	if status := postJSON(t, srv.URL+"/api/actions/today-work", &result); status != http.StatusOK {
		t.Fatalf("POST today-work status = %d, want 200", status)
	}
	if result.Screen.Kind != "working" {
		t.Errorf("kind = %q, want working after cancelling vacation", result.Screen.Kind)
	}
}

// =============================================================================
// TRAY
// =============================================================================

func TestGetTray_HiddenUntilFirstTick(t *testing.T) {
	srv, mem := newTestServer(t)
	onboard(t, mem)

	var tray struct {
		Visible bool   `json:"visible"`
		Title   string `json:"title"`
	}
	if status := getJSON(t, srv.URL+"/api/tray", &tray); status != http.StatusOK {
		t.Fatalf("GET tray status = %d, want 200", status)
	}
	if tray.Visible {
		t.Error("tray should be hidden before any tick has run")
	}
}
