package earnings

import (
	"github.com/warp/pay-per-second/generic"
)

// =============================================================================
// RATE CALCULATOR
// =============================================================================

// Breakdown records how a rate was derived.
type Breakdown struct {
	Period          SalaryPeriod
	PeriodSpan      generic.Period // calendar span containing today
	WorkHoursPerDay float64
	WorkDays        int // work days the salary is spread over
	TotalWorkHours  float64
	Rate            Rate
	Computable      bool // false when there are no work hours to spread the salary over
}

// RateCalculator derives the per-second rate. Clock decides which month
// "current" means for Monthly salaries.
type RateCalculator struct {
	Clock generic.Clock
}

// NewRateCalculator returns a calculator reading "today" from clock,
// or from the system clock when clock is nil.
func NewRateCalculator(clock generic.Clock) *RateCalculator {
	if clock == nil {
		clock = generic.SystemClock{}
	}
	return &RateCalculator{Clock: clock}
}

// ComputeRate derives the rate against the system clock.
func ComputeRate(cfg PayConfiguration) Rate {
	return NewRateCalculator(nil).Compute(cfg)
}

// Compute returns the per-second rate for cfg.
func (rc *RateCalculator) Compute(cfg PayConfiguration) Rate {
	return rc.Breakdown(cfg).Rate
}

// Breakdown derives the rate and the figures it was derived from.
func (rc *RateCalculator) Breakdown(cfg PayConfiguration) Breakdown {
	b := Breakdown{
		Period:          cfg.SalaryPeriod,
		WorkHoursPerDay: cfg.WorkHoursPerDay(),
	}

	switch cfg.SalaryPeriod {
	case Weekly:
		b.PeriodSpan = rc.span(generic.PeriodWeek)
		b.WorkDays = cfg.WorkDays.Len()
	case Daily:
		b.PeriodSpan = rc.span(generic.PeriodDay)
		b.WorkDays = 1
	default:
		b.Period = Monthly
		b.PeriodSpan = rc.span(generic.PeriodMonth)
		b.WorkDays = b.PeriodSpan.CountWeekdays(cfg.WorkDays)
	}

	b.TotalWorkHours = float64(b.WorkDays) * b.WorkHoursPerDay
	if b.TotalWorkHours <= 0 {
		return b
	}

	b.Computable = true
	b.Rate = Rate(cfg.Salary / hoursToSeconds(b.TotalWorkHours))
	return b
}

// span returns the period of type t containing today. Only the Monthly
// span feeds the rate; Weekly and Daily spans are informational.
func (rc *RateCalculator) span(t generic.PeriodType) generic.Period {
	clock := rc.Clock
	if clock == nil {
		clock = generic.SystemClock{}
	}
	today := generic.DayOf(clock.Now())
	return generic.PeriodConfig{Type: t}.PeriodFor(today)
}

func hoursToSeconds(hours float64) float64 { return hours * 60 * 60 }
