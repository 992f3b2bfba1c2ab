/*
accrual.go - Pay-rate derivation

PURPOSE:
  Converts the monthly salary figure and the effective per-day work span
  into the three rates everything else is priced in: daily, hourly, and
  per-second. All arithmetic is decimal.Decimal; float rounding must
  never show up in displayed currency.

RATE PIPELINE:
  monthly  = amount            (monthly salary type)
           = amount / 12       (yearly salary type)
  daily    = monthly / workdays-in-period
  hourly   = daily / effective work hours per day
  perSecond = hourly / 3600

OVERNIGHT DENOMINATOR:
  The work-hour span applies overnight normalization: an 18:00-00:00
  schedule is 6 hours, 22:00-06:00 is 8, and end == start is a full
  24-hour shift. Without this a midnight-crossing schedule would
  produce a negative denominator.

SEE ALSO:
  - resolver.go: applies these rates to elapsed time
*/
package engine

import "github.com/shopspring/decimal"

var (
	sixty        = decimal.NewFromInt(60)
	secondsPerHr = decimal.NewFromInt(3600)
)

// Rates are the derived pay rates for one resolution cycle.
type Rates struct {
	Daily     decimal.Decimal
	Hourly    decimal.Decimal
	PerSecond decimal.Decimal

	// WorkMinutes is the effective scheduled span, after overnight
	// normalization.
	WorkMinutes Minutes
}

// ComputeRates derives the rates from settings, the effective schedule
// (override wins over the standing one), and the number of workdays in
// the current pay period. Zero workdays is a configuration error.
func ComputeRates(s Settings, override *DayOverride, period PayPeriod, workDaysInPeriod int) (Rates, error) {
	if workDaysInPeriod == 0 {
		return Rates{}, &NoWorkdaysError{Period: period}
	}

	startStr, endStr := s.WorkStart, s.WorkEnd
	if override != nil {
		startStr, endStr = override.WorkStart, override.WorkEnd
	}

	start, err := ParseClock(startStr)
	if err != nil {
		return Rates{}, err
	}
	end, err := ParseClock(endStr)
	if err != nil {
		return Rates{}, err
	}
	normEnd, _ := NormalizeOvernight(start, end, 0)
	workMinutes := normEnd - start

	daily := s.MonthlySalary().Div(decimal.NewFromInt(int64(workDaysInPeriod)))
	hours := decimal.NewFromInt(int64(workMinutes)).Div(sixty)
	hourly := daily.Div(hours)

	return Rates{
		Daily:       daily,
		Hourly:      hourly,
		PerSecond:   hourly.Div(secondsPerHr),
		WorkMinutes: workMinutes,
	}, nil
}
