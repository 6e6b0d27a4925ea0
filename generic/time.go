package generic

import (
	"fmt"
	"math/bits"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// TIME POINT - Calendar day abstraction
// =============================================================================

type TimePoint struct {
	Time        time.Time
	Granularity Granularity
}

type Granularity int

const (
	GranularityDay Granularity = iota
	GranularityMinute
	GranularitySecond
)

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Granularity: GranularityDay}
}

// DayOf returns the calendar day containing t, keeping t's location.
func DayOf(t time.Time) TimePoint {
	return TimePoint{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), Granularity: GranularityDay}
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.normalize().Before(other.normalize()) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.normalize().Equal(other.normalize()) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.normalize().After(other.normalize()) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return tp.Before(other) || tp.Equal(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return tp.After(other) || tp.Equal(other) }

func (tp TimePoint) normalize() time.Time {
	t := tp.Time
	switch tp.Granularity {
	case GranularityDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case GranularityMinute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	default:
		return t.Truncate(time.Second)
	}
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint {
	return TimePoint{Time: tp.Time.AddDate(0, 0, n), Granularity: tp.Granularity}
}

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }
func (tp TimePoint) IsZero() bool          { return tp.Time.IsZero() }

func (tp TimePoint) String() string {
	switch tp.Granularity {
	case GranularityDay:
		return tp.Time.Format("2006-01-02")
	case GranularityMinute:
		return tp.Time.Format("2006-01-02 15:04")
	default:
		return tp.Time.Format(time.RFC3339)
	}
}

// =============================================================================
// TIME OF DAY - Wall-clock HH:MM without a date
// =============================================================================

// TimeOfDayPattern is the accepted 24-hour HH:MM form.
var TimeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// TimeOfDay is a minute-precision wall-clock time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// IsTimeOfDay reports whether s matches TimeOfDayPattern.
func IsTimeOfDay(s string) bool { return TimeOfDayPattern.MatchString(s) }

// ParseTimeOfDay parses a strict HH:MM value.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if !IsTimeOfDay(s) {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	hh, mm, _ := strings.Cut(s, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// MustParseTimeOfDay panics on malformed input. Intended for constants and tests.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// On anchors the time of day to the date of d, seconds truncated to zero.
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, d.Location())
}

// Sub returns t - other on the same synthetic day.
func (t TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return time.Duration(t.Minutes()-other.Minutes()) * time.Minute
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// =============================================================================
// WEEKDAY SET
// =============================================================================

// WeekdaySet is a set of weekdays stored as a bitmask indexed by time.Weekday.
type WeekdaySet uint8

// Weekdays is Monday through Friday.
const Weekdays WeekdaySet = 1<<time.Monday | 1<<time.Tuesday | 1<<time.Wednesday | 1<<time.Thursday | 1<<time.Friday

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	if d < time.Sunday || d > time.Saturday {
		return s
	}
	return s | 1<<d
}

func (s WeekdaySet) Has(d time.Weekday) bool { return d >= time.Sunday && d <= time.Saturday && s&(1<<d) != 0 }
func (s WeekdaySet) Len() int                { return bits.OnesCount8(uint8(s)) }
func (s WeekdaySet) IsEmpty() bool           { return s == 0 }

// Days lists the members from Sunday to Saturday.
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, s.Len())
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// ParseWeekday accepts English weekday names, case-insensitively.
func ParseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	default:
		return 0, false
	}
}

// =============================================================================
// CLOCK
// =============================================================================

// Clock supplies the current wall-clock instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns At.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// =============================================================================
// TIME UTILITIES
// =============================================================================

func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }
func EndOfMonth(year int, month time.Month) TimePoint {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return TimePoint{Time: t, Granularity: GranularityDay}
}

// DaysInMonth returns 28..31, leap-year aware.
func DaysInMonth(year int, month time.Month) int { return EndOfMonth(year, month).Day() }

func DaysBetween(from, to TimePoint) int {
	f, t := from.normalize(), to.normalize()
	fu := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	tu := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(tu.Sub(fu).Hours() / 24)
}
