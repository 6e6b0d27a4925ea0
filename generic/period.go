package generic

import "time"

// =============================================================================
// PERIOD - Calendar span a salary figure covers
// =============================================================================

// Period is an inclusive day range [Start, End].
//
// Examples:
//   - Month of March 1999: Mar 1 - Mar 31
//   - ISO week: Monday - Sunday
//   - Single day: Start == End
type Period struct {
	Start TimePoint
	End   TimePoint
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// Days returns all days in the period as a slice of TimePoints.
func (p Period) Days() []TimePoint {
	var days []TimePoint
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// Len returns the number of days in the period, 0 if End precedes Start.
func (p Period) Len() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// CountWeekdays returns how many days of the period fall on a weekday in set.
// Closed form: for each weekday, find its first occurrence and count whole
// weeks after it.
func (p Period) CountWeekdays(set WeekdaySet) int {
	n := p.Len()
	if n == 0 || set.IsEmpty() {
		return 0
	}
	first := p.Start.Weekday()
	count := 0
	for _, wd := range set.Days() {
		offset := (int(wd) - int(first) + 7) % 7
		if offset < n {
			count += (n-1-offset)/7 + 1
		}
	}
	return count
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// PeriodType defines how periods are calculated
type PeriodType string

const (
	PeriodMonth PeriodType = "month" // 1st - last day of the calendar month
	PeriodWeek  PeriodType = "week"  // Monday - Sunday
	PeriodDay   PeriodType = "day"
)

// PeriodConfig defines how to calculate periods
type PeriodConfig struct {
	Type PeriodType
}

// =============================================================================
// PERIOD CALCULATOR - Determines which period a date falls into
// =============================================================================

// PeriodFor returns the period that contains the given date
func (pc PeriodConfig) PeriodFor(date TimePoint) Period {
	switch pc.Type {
	case PeriodWeek:
		// Monday-based week
		back := (int(date.Weekday()) + 6) % 7
		start := DayOf(date.Time).AddDays(-back)
		return Period{Start: start, End: start.AddDays(6)}

	case PeriodDay:
		day := DayOf(date.Time)
		return Period{Start: day, End: day}

	default:
		return MonthPeriod(date.Year(), date.Month())
	}
}

// MonthPeriod returns the whole calendar month.
func MonthPeriod(year int, month time.Month) Period {
	return Period{Start: StartOfMonth(year, month), End: EndOfMonth(year, month)}
}
