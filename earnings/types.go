/*
Package earnings turns a pay configuration into a live "earned so far today"
figure.

PURPOSE:
  Two pure operations make up the whole engine:

    rate := calc.Compute(cfg)                  // once per configuration
    text := earnings.ProjectIncome(cfg, rate, now) // every tick

  Everything stateful (ticking, reloading settings, showing and hiding the
  reading) lives in the host package. Nothing here locks, blocks or fails.

SALARY PERIODS:
  Monthly: salary covers the work days of the current calendar month
           (weekday count for the month "today" falls in)
  Weekly:  salary covers one week of the configured work days
  Daily:   salary covers a single work window
  Unknown values behave as Monthly.

MISCONFIGURATION:
  A schedule with no work hours (empty work-day set, or end <= start)
  yields a zero rate and Breakdown.Computable == false instead of an
  infinite rate.

SEE ALSO:
  - rate.go: RateCalculator
  - projection.go: IncomeProjector
  - generic/period.go: Weekday counting
*/
package earnings

import (
	"github.com/warp/pay-per-second/generic"
)

// =============================================================================
// SALARY PERIOD
// =============================================================================

type SalaryPeriod string

const (
	Monthly SalaryPeriod = "Monthly"
	Weekly  SalaryPeriod = "Weekly"
	Daily   SalaryPeriod = "Daily"
)

// Known reports whether p is one of the three supported periods.
func (p SalaryPeriod) Known() bool {
	switch p {
	case Monthly, Weekly, Daily:
		return true
	default:
		return false
	}
}

// =============================================================================
// PAY CONFIGURATION
// =============================================================================

const DefaultSymbol = "💰"

// PayConfiguration is one immutable snapshot of the user's settings.
type PayConfiguration struct {
	Salary       float64
	SalaryPeriod SalaryPeriod
	Symbol       string
	WorkDays     generic.WeekdaySet
	StartTime    generic.TimeOfDay
	EndTime      generic.TimeOfDay
}

// DefaultConfiguration mirrors an untouched settings page: no salary,
// Monday to Friday, 09:00 to 18:00.
func DefaultConfiguration() PayConfiguration {
	return PayConfiguration{
		Salary:       0,
		SalaryPeriod: Monthly,
		Symbol:       DefaultSymbol,
		WorkDays:     generic.Weekdays,
		StartTime:    generic.TimeOfDay{Hour: 9},
		EndTime:      generic.TimeOfDay{Hour: 18},
	}
}

// WorkHoursPerDay is EndTime - StartTime in fractional hours.
func (c PayConfiguration) WorkHoursPerDay() float64 {
	return c.EndTime.Sub(c.StartTime).Hours()
}

// Unit returns the display unit for amounts under this configuration.
func (c PayConfiguration) Unit() generic.Unit { return generic.Unit(c.Symbol) }

// =============================================================================
// RATE
// =============================================================================

// Rate is currency earned per elapsed second inside the work window.
type Rate float64

func (r Rate) Float64() float64 { return float64(r) }
