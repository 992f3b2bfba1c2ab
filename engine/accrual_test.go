package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewatch/salary-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func monFriSettings() engine.Settings {
	return engine.Settings{
		SalaryType:   engine.SalaryMonthly,
		SalaryAmount: decimal.NewFromInt(4_500_000),
		PayDay:       25,
		WorkDays:     engine.WeekdaysMonFri,
		WorkStart:    "09:00",
		WorkEnd:      "18:00",
	}
}

func aprilPeriod() engine.PayPeriod {
	return engine.PayPeriod{Start: date(2025, time.April, 25), End: date(2025, time.May, 25)}
}

// approxEqual checks two decimals agree to within a hundredth of a won.
func approxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(decimal.NewFromFloat(0.01))
}

// =============================================================================
// RATE DERIVATION
// =============================================================================

func TestComputeRates_StandardDay(t *testing.T) {
	// GIVEN: 4,500,000/month, 21 workdays in period, 09:00-18:00
	// THEN: daily = 214,285.71.., hourly = daily/9, perSecond = hourly/3600
	rates, err := engine.ComputeRates(monFriSettings(), nil, aprilPeriod(), 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approxEqual(rates.Daily, decimal.NewFromFloat(214285.7142857143)) {
		t.Errorf("daily = %v", rates.Daily)
	}
	if !approxEqual(rates.Hourly, decimal.NewFromFloat(23809.5238095238)) {
		t.Errorf("hourly = %v", rates.Hourly)
	}
	if !approxEqual(rates.PerSecond, decimal.NewFromFloat(6.6137566138)) {
		t.Errorf("perSecond = %v", rates.PerSecond)
	}
	if rates.WorkMinutes != 540 {
		t.Errorf("workMinutes = %d, want 540", rates.WorkMinutes)
	}
}

func TestComputeRates_YearlySalaryDividedByTwelve(t *testing.T) {
	s := monFriSettings()
	s.SalaryType = engine.SalaryYearly
	s.SalaryAmount = decimal.NewFromInt(54_000_000)

	rates, err := engine.ComputeRates(s, nil, aprilPeriod(), 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 54,000,000 / 12 = 4,500,000/month: identical to the monthly case
	if !approxEqual(rates.Daily, decimal.NewFromFloat(214285.7142857143)) {
		t.Errorf("daily = %v", rates.Daily)
	}
}

func TestComputeRates_ZeroWorkdaysIsError(t *testing.T) {
	_, err := engine.ComputeRates(monFriSettings(), nil, aprilPeriod(), 0)
	if !errors.Is(err, engine.ErrNoWorkdays) {
		t.Errorf("expected ErrNoWorkdays, got %v", err)
	}
}

func TestComputeRates_OvernightDenominator(t *testing.T) {
	// GIVEN: an 18:00-00:00 schedule
	// THEN: the hourly denominator is 6 hours, not -18
	s := monFriSettings()
	s.WorkStart = "18:00"
	s.WorkEnd = "00:00"

	rates, err := engine.ComputeRates(s, nil, aprilPeriod(), 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rates.WorkMinutes != 360 {
		t.Errorf("workMinutes = %d, want 360", rates.WorkMinutes)
	}
	if !approxEqual(rates.Hourly, rates.Daily.Div(decimal.NewFromInt(6))) {
		t.Errorf("hourly = %v, want daily/6", rates.Hourly)
	}
}

func TestComputeRates_EndEqualsStartIsFullDay(t *testing.T) {
	s := monFriSettings()
	s.WorkStart = "09:00"
	s.WorkEnd = "09:00"

	rates, err := engine.ComputeRates(s, nil, aprilPeriod(), 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rates.WorkMinutes != 1440 {
		t.Errorf("workMinutes = %d, want 1440", rates.WorkMinutes)
	}
}

func TestComputeRates_OverrideWinsOverStanding(t *testing.T) {
	override := &engine.DayOverride{Day: "2025-05-14", WorkStart: "10:00", WorkEnd: "16:00"}

	rates, err := engine.ComputeRates(monFriSettings(), override, aprilPeriod(), 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rates.WorkMinutes != 360 {
		t.Errorf("workMinutes = %d, want 360 from the override", rates.WorkMinutes)
	}
	// The daily rate does not change with the schedule, only hourly does
	if !approxEqual(rates.Daily, decimal.NewFromFloat(214285.7142857143)) {
		t.Errorf("daily = %v", rates.Daily)
	}
}

func TestComputeRates_MalformedClockIsError(t *testing.T) {
	s := monFriSettings()
	s.WorkEnd = "25:00"

	_, err := engine.ComputeRates(s, nil, aprilPeriod(), 21)
	if !errors.Is(err, engine.ErrMalformedClock) {
		t.Errorf("expected ErrMalformedClock, got %v", err)
	}
}
