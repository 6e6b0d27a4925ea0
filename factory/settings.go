/*
Package factory provides JSON to Go settings conversion.

PURPOSE:
  Converts user-facing JSON settings into earnings.PayConfiguration values.
  This is the host's "configuration collaborator": it validates, fills in
  defaults and downgrades bad schedules so the earnings core only ever sees
  well-formed input.

JSON SCHEMA:
  {
    "salary": 6000,
    "salary_type": "Monthly",          // Monthly | Weekly | Daily
    "symbol": "💰",
    "work_days": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday"],
    "start_time": "09:00",             // HH:MM, 24-hour clock
    "end_time": "18:00"
  }

  Every field is optional; absent fields take the defaults from
  earnings.DefaultConfiguration.

DOWNGRADES (warnings, not errors):
  - start_time / end_time not HH:MM: salary forced to 0, display reads 0.0000
  - unknown salary_type: treated as Monthly
  - unknown work day name: ignored

REJECTIONS (errors):
  - malformed JSON
  - negative salary
  - symbol longer than 16 characters

USAGE:
  f := NewSettingsFactory()
  res, err := f.ParseSettings(data)
  for _, w := range res.Warnings {
      log.Warn().Msg(w)
  }
  rate := calc.Compute(res.Config)

SEE ALSO:
  - earnings/types.go: PayConfiguration
  - api/handlers.go: PUT /api/settings
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/warp/pay-per-second/earnings"
	"github.com/warp/pay-per-second/generic"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// SettingsJSON is the JSON representation of the pay settings.
type SettingsJSON struct {
	Salary     *float64 `json:"salary,omitempty" validate:"omitempty,gte=0"`
	SalaryType *string  `json:"salary_type,omitempty"`
	Symbol     *string  `json:"symbol,omitempty" validate:"omitempty,max=16"`
	WorkDays   []string `json:"work_days"`
	StartTime  *string  `json:"start_time,omitempty" validate:"omitnil,hhmm"`
	EndTime    *string  `json:"end_time,omitempty" validate:"omitnil,hhmm"`
}

// Result is a usable configuration plus the downgrades applied to it.
type Result struct {
	Config   earnings.PayConfiguration
	Warnings []string
}

// Warning messages shown to the user.
const (
	WarnInvalidStartTime = "Invalid start-time format, Please use HH:MM (24-hour clock)."
	WarnInvalidEndTime   = "Invalid end-time format, Please use HH:MM (24-hour clock)."
)

// =============================================================================
// SETTINGS FACTORY
// =============================================================================

// SettingsFactory converts JSON settings to PayConfiguration.
type SettingsFactory struct {
	validate *validator.Validate
}

// NewSettingsFactory creates a factory with the "hhmm" validation tag registered.
func NewSettingsFactory() *SettingsFactory {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names, not Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "-" || tag == "" {
			return fld.Name
		}
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		return tag
	})

	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return generic.IsTimeOfDay(fl.Field().String())
	})

	return &SettingsFactory{validate: v}
}

// ParseSettings parses a JSON document into a configuration.
func (f *SettingsFactory) ParseSettings(data []byte) (Result, error) {
	var sj SettingsJSON
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &sj); err != nil {
			return Result{}, fmt.Errorf("%w: failed to parse settings JSON: %v", generic.ErrInvalidSettings, err)
		}
	}
	return f.FromJSON(sj)
}

// ReadSettingsFile loads settings from path. An empty path yields defaults.
func (f *SettingsFactory) ReadSettingsFile(path string) (Result, error) {
	if path == "" {
		return f.FromJSON(SettingsJSON{})
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	return f.ParseSettings(data)
}

// FromJSON validates sj and converts it, applying defaults and downgrades.
func (f *SettingsFactory) FromJSON(sj SettingsJSON) (Result, error) {
	res := Result{Config: earnings.DefaultConfiguration()}
	badTimes := map[string]bool{}

	if err := f.validate.Struct(sj); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Result{}, fmt.Errorf("%w: %v", generic.ErrInvalidSettings, err)
		}
		for _, fe := range verrs {
			switch fe.Tag() {
			case "hhmm":
				badTimes[fe.Field()] = true
			case "gte":
				return Result{}, &generic.SettingsError{Field: fe.Field(), Value: fe.Value(), Err: generic.ErrNegativeSalary}
			default:
				return Result{}, &generic.SettingsError{
					Field: fe.Field(),
					Value: fe.Value(),
					Err:   fmt.Errorf("%w: failed %q constraint", generic.ErrInvalidSettings, fe.Tag()),
				}
			}
		}
	}

	// the core must never see a malformed time
	for field, v := range map[string]*string{"start_time": sj.StartTime, "end_time": sj.EndTime} {
		if v != nil && !generic.IsTimeOfDay(*v) {
			badTimes[field] = true
		}
	}

	cfg := &res.Config
	if sj.Salary != nil {
		cfg.Salary = *sj.Salary
	}
	if sj.SalaryType != nil {
		period, ok := parseSalaryPeriod(*sj.SalaryType)
		if !ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Unknown salary type %q, using Monthly.", *sj.SalaryType))
		}
		cfg.SalaryPeriod = period
	}
	if sj.Symbol != nil {
		cfg.Symbol = *sj.Symbol
	}
	if sj.WorkDays != nil {
		days, unknown := parseWorkDays(sj.WorkDays)
		cfg.WorkDays = days
		for _, name := range unknown {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Unknown work day %q ignored.", name))
		}
	}

	// The start time is checked first; one bad time is enough to zero the salary.
	switch {
	case badTimes["start_time"]:
		res.Warnings = append(res.Warnings, WarnInvalidStartTime)
		cfg.Salary = 0
	case badTimes["end_time"]:
		res.Warnings = append(res.Warnings, WarnInvalidEndTime)
		cfg.Salary = 0
	}
	if t, ok := parseTime(sj.StartTime); ok && !badTimes["start_time"] {
		cfg.StartTime = t
	}
	if t, ok := parseTime(sj.EndTime); ok && !badTimes["end_time"] {
		cfg.EndTime = t
	}

	return res, nil
}

// ToJSON converts a PayConfiguration to SettingsJSON with every field set.
func (f *SettingsFactory) ToJSON(cfg earnings.PayConfiguration) SettingsJSON {
	salary := cfg.Salary
	salaryType := string(cfg.SalaryPeriod)
	symbol := cfg.Symbol
	start := cfg.StartTime.String()
	end := cfg.EndTime.String()

	days := make([]string, 0, cfg.WorkDays.Len())
	for _, d := range cfg.WorkDays.Days() {
		days = append(days, d.String())
	}

	return SettingsJSON{
		Salary:     &salary,
		SalaryType: &salaryType,
		Symbol:     &symbol,
		WorkDays:   days,
		StartTime:  &start,
		EndTime:    &end,
	}
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseSalaryPeriod(s string) (earnings.SalaryPeriod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly":
		return earnings.Monthly, true
	case "weekly":
		return earnings.Weekly, true
	case "daily":
		return earnings.Daily, true
	default:
		return earnings.Monthly, false
	}
}

func parseTime(s *string) (generic.TimeOfDay, bool) {
	if s == nil {
		return generic.TimeOfDay{}, false
	}
	t, err := generic.ParseTimeOfDay(*s)
	return t, err == nil
}

func parseWorkDays(names []string) (generic.WeekdaySet, []string) {
	var set generic.WeekdaySet
	var unknown []string
	for _, name := range names {
		d, ok := generic.ParseWeekday(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		set = set.With(d)
	}
	return set, unknown
}
