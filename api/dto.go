/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  earnings and host types from the wire contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Response: Complex response wrappers

SEE ALSO:
  - handlers.go: Uses these types
  - factory/settings.go: SettingsJSON (used as the settings body)
*/
package api

import (
	"time"

	"github.com/warp/pay-per-second/earnings"
	"github.com/warp/pay-per-second/factory"
	"github.com/warp/pay-per-second/host"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ReadingDTO is the current display state.
type ReadingDTO struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
	Phase   string `json:"phase,omitempty"`
	At      string `json:"at"`
}

// RateDTO describes how the active rate was derived.
type RateDTO struct {
	SalaryType      string  `json:"salary_type"`
	PeriodStart     string  `json:"period_start,omitempty"`
	PeriodEnd       string  `json:"period_end,omitempty"`
	WorkHoursPerDay float64 `json:"work_hours_per_day"`
	WorkDays        int     `json:"work_days"`
	TotalWorkHours  float64 `json:"total_work_hours"`
	RatePerSecond   float64 `json:"rate_per_second"`
	Computable      bool    `json:"computable"`
}

// SettingsResponse returns the active settings after a read or an update.
type SettingsResponse struct {
	Settings factory.SettingsJSON `json:"settings"`
	Warnings []string             `json:"warnings,omitempty"`
	Rate     *RateDTO             `json:"rate,omitempty"`
}

// ToggleResponse reports the display state after a toggle.
type ToggleResponse struct {
	Visible bool `json:"visible"`
}

// ErrorResponse is returned for all errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toReadingDTO(r host.Reading) ReadingDTO {
	return ReadingDTO{
		Text:    r.Text,
		Visible: r.Visible,
		Phase:   string(r.Phase),
		At:      r.At.Format(time.RFC3339),
	}
}

func toRateDTO(b earnings.Breakdown) RateDTO {
	dto := RateDTO{
		SalaryType:      string(b.Period),
		WorkHoursPerDay: b.WorkHoursPerDay,
		WorkDays:        b.WorkDays,
		TotalWorkHours:  b.TotalWorkHours,
		RatePerSecond:   b.Rate.Float64(),
		Computable:      b.Computable,
	}
	if !b.PeriodSpan.Start.IsZero() {
		dto.PeriodStart = b.PeriodSpan.Start.String()
		dto.PeriodEnd = b.PeriodSpan.End.String()
	}
	return dto
}
