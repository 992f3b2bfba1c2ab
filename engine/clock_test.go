package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/wagewatch/salary-engine/engine"
)

// =============================================================================
// CLOCK PARSING
// =============================================================================

func TestParseClock_Valid(t *testing.T) {
	cases := []struct {
		input string
		want  engine.Minutes
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"18:00", 1080},
		{"23:59", 1439},
		{"9:5", 545}, // single digits are fine, only the value matters
	}
	for _, c := range cases {
		got, err := engine.ParseClock(c.input)
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestParseClock_Malformed(t *testing.T) {
	// GIVEN: inputs that are not two in-range colon-separated numbers
	// THEN: each fails with ErrMalformedClock, never a coerced value
	inputs := []string{"", "9", "09:00:00", "24:00", "12:60", "ab:cd", "-1:30", "12:-5"}
	for _, in := range inputs {
		_, err := engine.ParseClock(in)
		if err == nil {
			t.Errorf("ParseClock(%q): expected error, got nil", in)
			continue
		}
		if !errors.Is(err, engine.ErrMalformedClock) {
			t.Errorf("ParseClock(%q): error %v does not wrap ErrMalformedClock", in, err)
		}
	}
}

func TestFormatClock_RoundTripAndWrap(t *testing.T) {
	if got := engine.FormatClock(540); got != "09:00" {
		t.Errorf("FormatClock(540) = %q, want 09:00", got)
	}
	// Values past midnight wrap onto the clock face
	if got := engine.FormatClock(1500); got != "01:00" {
		t.Errorf("FormatClock(1500) = %q, want 01:00", got)
	}
	if got := engine.FormatClock(-30); got != "23:30" {
		t.Errorf("FormatClock(-30) = %q, want 23:30", got)
	}
}

// =============================================================================
// OVERNIGHT NORMALIZATION
// =============================================================================

func TestNormalizeOvernight(t *testing.T) {
	cases := []struct {
		name             string
		start, end, now  engine.Minutes
		wantEnd, wantNow engine.Minutes
	}{
		{"day shift untouched", 540, 1080, 720, 1080, 720},
		{"ends at midnight", 1080, 0, 1200, 1440, 1200},
		{"post-midnight now unfolds", 1320, 360, 120, 1800, 1560},
		{"pre-shift evening stays", 1320, 360, 1200, 1800, 1200},
		{"end equals start is 24h", 540, 540, 540, 1980, 540},
	}
	for _, c := range cases {
		gotEnd, gotNow := engine.NormalizeOvernight(c.start, c.end, c.now)
		if gotEnd != c.wantEnd || gotNow != c.wantNow {
			t.Errorf("%s: NormalizeOvernight(%d, %d, %d) = (%d, %d), want (%d, %d)",
				c.name, c.start, c.end, c.now, gotEnd, gotNow, c.wantEnd, c.wantNow)
		}
	}
}

func TestMinuteOfDayAndMidnight(t *testing.T) {
	at := time.Date(2025, time.May, 14, 12, 34, 56, 0, time.UTC)

	if got := engine.MinuteOfDay(at); got != 754 {
		t.Errorf("MinuteOfDay = %d, want 754", got)
	}
	if got := engine.Midnight(at); !got.Equal(time.Date(2025, time.May, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Midnight = %v", got)
	}
	if got := engine.DayString(at); got != "2025-05-14" {
		t.Errorf("DayString = %q", got)
	}
}
