/*
Package generic provides the calendar and money primitives the earnings
engine is built on.

PURPOSE:
  Domain-agnostic helpers for turning a salary and a schedule into
  per-second figures. Nothing here knows about salary periods or display
  strings; the earnings package layers that on top.

KEY CONCEPTS:
  - Amount: A decimal quantity with a unit (e.g., 666.6667 "💰")
  - TimePoint: A calendar day (time.go)
  - TimeOfDay: A wall-clock HH:MM without a date (time.go)
  - WeekdaySet: Set of working weekdays (time.go)
  - Period: Inclusive day range with weekday counting (period.go)
  - Clock: Injectable source of "now" (time.go)

DESIGN PRINCIPLES:
  1. Precision: Display values go through decimal.Decimal, never fmt's %f
  2. Determinism: Anything that depends on "today" takes a Clock
  3. Totality: Helpers return zero values instead of failing where the
     callers expect a figure

USAGE:
  start := generic.MustParseTimeOfDay("09:00")
  end := generic.MustParseTimeOfDay("18:00")
  hours := end.Sub(start).Hours() // 9

  march := generic.MonthPeriod(1999, time.March)
  workDays := march.CountWeekdays(generic.Weekdays) // 23

SEE ALSO:
  - period.go: Period and PeriodConfig
  - errors.go: Sentinel and structured errors
  - earnings/rate.go: Uses these primitives to derive a rate
*/
package generic

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of fractional digits shown for earnings.
const DisplayPlaces = 4

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

// Unit is the display prefix of an amount (a currency symbol or emoji).
type Unit string

func NewAmount(value float64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Unit: unit}
}

func NewAmountFromInt(value int, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Unit: unit}
}

func (a Amount) IsZero() bool { return a.Value.IsZero() }

// String renders the unit followed by the value with DisplayPlaces decimals.
func (a Amount) String() string {
	return string(a.Unit) + a.Value.StringFixed(DisplayPlaces)
}

// FormatFixed renders v with exactly places decimals, rounding half away
// from zero. NaN and infinities, which decimal cannot represent, use
// strconv's spelling.
func FormatFixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', int(places), 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}
