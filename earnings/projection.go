package earnings

import (
	"math"
	"time"

	"github.com/warp/pay-per-second/generic"
)

// =============================================================================
// INCOME PROJECTOR
// =============================================================================

// Phase locates an instant relative to the day's work window.
type Phase string

const (
	PhaseUnpaid     Phase = "unpaid" // salary is zero, nothing to project
	PhaseBeforeWork Phase = "before_work"
	PhaseWorking    Phase = "working"
	PhaseAfterWork  Phase = "after_work" // clamped to the full window
)

// Projection is the numeric result behind a display string.
type Projection struct {
	Phase          Phase
	WorkStart      time.Time
	WorkEnd        time.Time
	ElapsedSeconds int64
	Earned         float64
	Symbol         string
}

// Text renders the projection as "{symbol}{earned with 4 decimals}".
func (p Projection) Text() string {
	unit := generic.Unit(p.Symbol)
	switch {
	case p.Phase == PhaseUnpaid || p.Phase == PhaseBeforeWork:
		return generic.NewAmountFromInt(0, unit).String()
	case math.IsNaN(p.Earned) || math.IsInf(p.Earned, 0):
		// decimal has no NaN or Inf
		return p.Symbol + generic.FormatFixed(p.Earned, generic.DisplayPlaces)
	default:
		return generic.NewAmount(p.Earned, unit).String()
	}
}

// Project computes how much of today's window has been earned at now.
// The window is anchored to now's calendar date in now's location.
func Project(cfg PayConfiguration, rate Rate, now time.Time) Projection {
	p := Projection{Symbol: cfg.Symbol}
	if cfg.Salary == 0 {
		p.Phase = PhaseUnpaid
		return p
	}

	p.WorkStart = cfg.StartTime.On(now)
	p.WorkEnd = cfg.EndTime.On(now)

	switch {
	case !now.After(p.WorkStart):
		p.Phase = PhaseBeforeWork
		return p
	case !now.Before(p.WorkEnd):
		p.Phase = PhaseAfterWork
		p.ElapsedSeconds = wholeSeconds(p.WorkEnd.Sub(p.WorkStart))
	default:
		p.Phase = PhaseWorking
		p.ElapsedSeconds = wholeSeconds(now.Sub(p.WorkStart))
	}

	p.Earned = float64(rate) * float64(p.ElapsedSeconds)
	return p
}

// ProjectIncome returns the display string for now.
func ProjectIncome(cfg PayConfiguration, rate Rate, now time.Time) string {
	return Project(cfg, rate, now).Text()
}

func wholeSeconds(d time.Duration) int64 { return int64(d / time.Second) }
