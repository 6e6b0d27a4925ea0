package earnings_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/pay-per-second/earnings"
	"github.com/warp/pay-per-second/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func hhmm(s string) generic.TimeOfDay { return generic.MustParseTimeOfDay(s) }

func dailyConfig() earnings.PayConfiguration {
	return earnings.PayConfiguration{
		Salary:       6000,
		SalaryPeriod: earnings.Daily,
		Symbol:       "💰",
		WorkDays:     generic.Weekdays,
		StartTime:    hhmm("09:00"),
		EndTime:      hhmm("18:00"),
	}
}

func calculatorOn(year int, month time.Month, day int) *earnings.RateCalculator {
	return earnings.NewRateCalculator(generic.FixedClock{At: time.Date(year, month, day, 12, 0, 0, 0, time.UTC)})
}

func at(hour, minute, second int) time.Time {
	return time.Date(2025, time.March, 12, hour, minute, second, 0, time.UTC)
}

// =============================================================================
// RATE CALCULATOR
// =============================================================================

func TestRate_Daily(t *testing.T) {
	// GIVEN: 6000 per day, 09:00-18:00
	// THEN: 6000 / (9h * 3600s), regardless of work days or date

	cfg := dailyConfig()
	want := 6000.0 / (9 * 3600)

	assert.InDelta(t, want, calculatorOn(2025, time.March, 12).Compute(cfg).Float64(), 1e-15)
	assert.InDelta(t, 0.185185, calculatorOn(1999, time.February, 1).Compute(cfg).Float64(), 1e-6)

	cfg.WorkDays = generic.NewWeekdaySet(time.Sunday)
	assert.InDelta(t, want, calculatorOn(2025, time.March, 12).Compute(cfg).Float64(), 1e-15)
}

func TestRate_Weekly(t *testing.T) {
	// GIVEN: 5000 per week, 4 work days of 9.5 hours
	// THEN: 5000 / (4 * 9.5 * 3600)

	cfg := earnings.PayConfiguration{
		Salary:       5000,
		SalaryPeriod: earnings.Weekly,
		WorkDays:     generic.NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday),
		StartTime:    hhmm("08:30"),
		EndTime:      hhmm("18:00"),
	}

	b := calculatorOn(2025, time.March, 12).Breakdown(cfg)
	assert.Equal(t, 4, b.WorkDays)
	assert.Equal(t, "[2025-03-10, 2025-03-16]", b.PeriodSpan.String(), "Monday-based week")
	assert.Equal(t, 9.5, b.WorkHoursPerDay)
	assert.Equal(t, 38.0, b.TotalWorkHours)
	assert.True(t, b.Computable)
	assert.InDelta(t, 5000.0/(4*9.5*3600), b.Rate.Float64(), 1e-15)
}

func TestRate_Monthly_March1999(t *testing.T) {
	// GIVEN: "today" is in March 1999, Monday-Friday, 8 hour days
	// THEN: 23 work days -> salary / (23 * 8 * 3600)

	cfg := earnings.PayConfiguration{
		Salary:       23 * 8 * 3600,
		SalaryPeriod: earnings.Monthly,
		WorkDays:     generic.Weekdays,
		StartTime:    hhmm("09:00"),
		EndTime:      hhmm("17:00"),
	}

	b := calculatorOn(1999, time.March, 24).Breakdown(cfg)
	assert.Equal(t, 23, b.WorkDays)
	assert.Equal(t, "[1999-03-01, 1999-03-31]", b.PeriodSpan.String())
	assert.InDelta(t, 1.0, b.Rate.Float64(), 1e-12)
}

func TestRate_Monthly_FollowsCurrentMonth(t *testing.T) {
	cfg := dailyConfig()
	cfg.SalaryPeriod = earnings.Monthly

	// February 2023 has 20 weekdays, March 2023 has 23
	feb := calculatorOn(2023, time.February, 10).Breakdown(cfg)
	mar := calculatorOn(2023, time.March, 10).Breakdown(cfg)

	assert.Equal(t, 20, feb.WorkDays)
	assert.Equal(t, 23, mar.WorkDays)
	assert.Greater(t, feb.Rate.Float64(), mar.Rate.Float64())
}

func TestRate_UnknownPeriodFallsBackToMonthly(t *testing.T) {
	cfg := dailyConfig()
	cfg.SalaryPeriod = "Fortnightly"
	calc := calculatorOn(1999, time.March, 24)

	monthly := cfg
	monthly.SalaryPeriod = earnings.Monthly

	b := calc.Breakdown(cfg)
	assert.Equal(t, earnings.Monthly, b.Period)
	assert.Equal(t, calc.Compute(monthly), b.Rate)
}

func TestRate_Deterministic(t *testing.T) {
	cfg := dailyConfig()
	cfg.SalaryPeriod = earnings.Monthly
	calc := calculatorOn(2025, time.June, 1)

	assert.Equal(t, calc.Compute(cfg), calc.Compute(cfg))
}

func TestRate_ZeroSalary(t *testing.T) {
	cfg := dailyConfig()
	cfg.Salary = 0

	b := calculatorOn(2025, time.March, 12).Breakdown(cfg)
	assert.True(t, b.Computable)
	assert.Zero(t, b.Rate)
}

func TestRate_NoWorkHours_GuardedToZero(t *testing.T) {
	// GIVEN: Schedules with nothing to spread the salary over
	// THEN: Rate 0, flagged as not computable, never Inf/NaN

	empty := dailyConfig()
	empty.SalaryPeriod = earnings.Weekly
	empty.WorkDays = 0

	sameTime := dailyConfig()
	sameTime.EndTime = sameTime.StartTime

	reversed := dailyConfig()
	reversed.StartTime, reversed.EndTime = reversed.EndTime, reversed.StartTime

	monthlyEmpty := dailyConfig()
	monthlyEmpty.SalaryPeriod = earnings.Monthly
	monthlyEmpty.WorkDays = 0

	for name, cfg := range map[string]earnings.PayConfiguration{
		"empty work days":       empty,
		"start equals end":      sameTime,
		"end before start":      reversed,
		"monthly, no work days": monthlyEmpty,
	} {
		b := calculatorOn(2025, time.March, 12).Breakdown(cfg)
		assert.False(t, b.Computable, name)
		assert.Zero(t, b.Rate, name)
		assert.False(t, math.IsNaN(b.Rate.Float64()) || math.IsInf(b.Rate.Float64(), 0), name)
	}
}

// =============================================================================
// INCOME PROJECTOR
// =============================================================================

func TestProjectIncome_EndToEnd(t *testing.T) {
	// GIVEN: 6000 Daily, 09:00-18:00
	cfg := dailyConfig()
	rate := calculatorOn(2025, time.March, 12).Compute(cfg)

	// One hour in
	assert.Equal(t, "💰666.6667", earnings.ProjectIncome(cfg, rate, at(10, 0, 0)))
	// Exactly at start
	assert.Equal(t, "💰0.0000", earnings.ProjectIncome(cfg, rate, at(9, 0, 0)))
	// One hour after end: clamped to the 9-hour total
	assert.Equal(t, "💰6000.0000", earnings.ProjectIncome(cfg, rate, at(19, 0, 0)))
}

func TestProjectIncome_ZeroSalary(t *testing.T) {
	cfg := dailyConfig()
	cfg.Salary = 0

	for _, now := range []time.Time{at(0, 0, 0), at(9, 0, 1), at(12, 0, 0), at(23, 59, 59)} {
		assert.Equal(t, "💰0.0000", earnings.ProjectIncome(cfg, 1.5, now))
	}
	assert.Equal(t, earnings.PhaseUnpaid, earnings.Project(cfg, 1.5, at(12, 0, 0)).Phase)
}

func TestProjectIncome_BeforeStart(t *testing.T) {
	cfg := dailyConfig()
	rate := calculatorOn(2025, time.March, 12).Compute(cfg)

	assert.Equal(t, "💰0.0000", earnings.ProjectIncome(cfg, rate, at(0, 0, 0)))
	assert.Equal(t, "💰0.0000", earnings.ProjectIncome(cfg, rate, at(8, 59, 59)))
	assert.Equal(t, earnings.PhaseBeforeWork, earnings.Project(cfg, rate, at(9, 0, 0)).Phase)
}

func TestProjectIncome_ClampedAfterEnd(t *testing.T) {
	cfg := dailyConfig()
	rate := calculatorOn(2025, time.March, 12).Compute(cfg)

	atEnd := earnings.ProjectIncome(cfg, rate, at(18, 0, 0))
	for _, now := range []time.Time{at(18, 0, 1), at(20, 30, 0), at(23, 59, 59)} {
		assert.Equal(t, atEnd, earnings.ProjectIncome(cfg, rate, now))
	}

	p := earnings.Project(cfg, rate, at(22, 0, 0))
	assert.Equal(t, earnings.PhaseAfterWork, p.Phase)
	assert.Equal(t, int64(9*3600), p.ElapsedSeconds)
}

func TestProjectIncome_TruncatesToWholeSeconds(t *testing.T) {
	cfg := dailyConfig()
	cfg.Salary = 9 * 3600 // 1 per second
	rate := calculatorOn(2025, time.March, 12).Compute(cfg)

	now := at(9, 0, 1).Add(999 * time.Millisecond)
	p := earnings.Project(cfg, rate, now)
	assert.Equal(t, earnings.PhaseWorking, p.Phase)
	assert.Equal(t, int64(1), p.ElapsedSeconds)
	assert.Equal(t, "💰1.0000", p.Text())
}

func TestProjectIncome_MonotonicInsideWindow(t *testing.T) {
	cfg := dailyConfig()
	cfg.SalaryPeriod = earnings.Monthly
	rate := calculatorOn(2025, time.March, 12).Compute(cfg)

	prev := -1.0
	for now := at(9, 0, 0); !now.After(at(18, 0, 0)); now = now.Add(37 * time.Second) {
		earned := earnings.Project(cfg, rate, now).Earned
		require.GreaterOrEqual(t, earned, prev, "at %s", now.Format(time.TimeOnly))
		prev = earned
	}
}

func TestProjectIncome_UsesLocationOfNow(t *testing.T) {
	cfg := dailyConfig()
	rate := calculatorOn(2025, time.March, 12).Compute(cfg)
	tokyo := time.FixedZone("JST", 9*3600)

	// 01:00 UTC is 10:00 in Tokyo: one hour into the local window
	now := time.Date(2025, time.March, 12, 1, 0, 0, 0, time.UTC).In(tokyo)
	assert.Equal(t, "💰666.6667", earnings.ProjectIncome(cfg, rate, now))
}

func TestProjectIncome_EmptySymbol(t *testing.T) {
	cfg := dailyConfig()
	cfg.Symbol = ""
	rate := calculatorOn(2025, time.March, 12).Compute(cfg)

	assert.Equal(t, "666.6667", earnings.ProjectIncome(cfg, rate, at(10, 0, 0)))
}

func TestProjectIncome_NonFiniteRatePassesThrough(t *testing.T) {
	cfg := dailyConfig()

	assert.Equal(t, "💰+Inf", earnings.ProjectIncome(cfg, earnings.Rate(math.Inf(1)), at(10, 0, 0)))
}

func TestDefaultConfiguration(t *testing.T) {
	cfg := earnings.DefaultConfiguration()

	assert.Zero(t, cfg.Salary)
	assert.Equal(t, earnings.Monthly, cfg.SalaryPeriod)
	assert.Equal(t, "💰", cfg.Symbol)
	assert.Equal(t, generic.Weekdays, cfg.WorkDays)
	assert.Equal(t, 9.0, cfg.WorkHoursPerDay())
	assert.Equal(t, "💰0.0000", earnings.ProjectIncome(cfg, earnings.ComputeRate(cfg), time.Now()))
}
