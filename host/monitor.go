/*
Package host runs the earnings core as a live display.

PURPOSE:
  The earnings package is pure; something has to hold the current
  configuration, remember the derived rate, ask for a fresh reading every
  second and hand it to whatever shows it. That is the Monitor.

LIFECYCLE:
  m := host.NewMonitor(host.Options{...})
  m.AddSink(console)          // anything implementing Sink
  m.Start()                   // begins ticking
  m.Apply(newConfig)          // on every settings change
  m.Toggle()                  // hide + pause / show + resume
  m.Stop()

CONCURRENCY:
  Readings are computed from a snapshot taken under a read lock, so ticks
  never block on each other. Lifecycle operations (Start, Stop, Apply,
  Recompute, Toggle) are serialized by a separate mutex because stopping a ticker
  waits for its in-flight tick, and that tick takes the data lock.

SEE ALSO:
  - ticker.go: Cancellable periodic handle
  - scheduler.go: Daily rate recomputation
  - earnings/: The two pure operations
*/
package host

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/warp/pay-per-second/earnings"
	"github.com/warp/pay-per-second/generic"
)

// =============================================================================
// READING & SINKS
// =============================================================================

// Reading is what the display should show at At.
type Reading struct {
	Text    string         `json:"text"`
	Visible bool           `json:"visible"`
	Phase   earnings.Phase `json:"phase"`
	At      time.Time      `json:"at"`
}

// Sink receives every published reading. Publish must not block for long.
type Sink interface {
	Publish(r Reading)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(r Reading)

func (f SinkFunc) Publish(r Reading) { f(r) }

// =============================================================================
// MONITOR
// =============================================================================

// Options configures a Monitor.
type Options struct {
	Config   earnings.PayConfiguration
	Clock    generic.Clock // defaults to the system clock
	Interval time.Duration // defaults to one second
	Logger   zerolog.Logger
}

// Monitor owns the configuration, the derived rate and the tick handle.
type Monitor struct {
	log      zerolog.Logger
	clock    generic.Clock
	calc     *earnings.RateCalculator
	interval time.Duration

	lifecycle sync.Mutex
	ticker    *Ticker
	started   bool

	mu        sync.RWMutex
	cfg       earnings.PayConfiguration
	breakdown earnings.Breakdown
	visible   bool
	last      Reading
	sinks     []Sink
}

// NewMonitor creates a stopped, visible monitor and derives the initial rate.
func NewMonitor(opts Options) *Monitor {
	clock := opts.Clock
	if clock == nil {
		clock = generic.SystemClock{}
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = time.Second
	}

	m := &Monitor{
		log:      opts.Logger.With().Str("component", "monitor").Logger(),
		clock:    clock,
		calc:     earnings.NewRateCalculator(clock),
		interval: interval,
		visible:  true,
	}
	m.setConfig(opts.Config)
	return m
}

// AddSink registers s for every subsequent reading.
func (m *Monitor) AddSink(s Sink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sinks = append(m.sinks, s)
}

// Start begins ticking. Calling Start twice is a no-op.
func (m *Monitor) Start() {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	if m.started {
		return
	}
	m.started = true
	m.ticker = m.newTicker()
	if !m.Visible() {
		m.ticker.Pause()
	}
	m.ticker.Start()
	m.log.Info().Dur("interval", m.interval).Msg("Monitor started")
}

// Stop stops ticking and waits for the last tick to finish.
func (m *Monitor) Stop() {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	if !m.started {
		return
	}
	m.ticker.Stop()
	m.ticker = nil
	m.started = false
	m.log.Info().Msg("Monitor stopped")
}

// Apply replaces the configuration, recomputes the rate and restarts
// ticking with a fresh handle.
func (m *Monitor) Apply(cfg earnings.PayConfiguration) earnings.Breakdown {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	b := m.setConfig(cfg)
	m.restartLocked()
	return b
}

// Recompute derives the rate again from the current configuration. A
// Monthly rate changes when the calendar month does.
func (m *Monitor) Recompute() earnings.Breakdown {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	m.mu.RLock()
	cfg := m.cfg
	m.mu.RUnlock()
	return m.setConfig(cfg)
}

func (m *Monitor) setConfig(cfg earnings.PayConfiguration) earnings.Breakdown {
	b := m.calc.Breakdown(cfg)

	m.mu.Lock()
	m.cfg = cfg
	m.breakdown = b
	m.mu.Unlock()

	event := m.log.Info()
	if !b.Computable {
		event = m.log.Warn().Str("reason", "no work hours in period")
	}
	event.
		Str("period", string(b.Period)).
		Int("work_days", b.WorkDays).
		Float64("hours_per_day", b.WorkHoursPerDay).
		Float64("rate", b.Rate.Float64()).
		Bool("computable", b.Computable).
		Msg("Rate derived")
	return b
}

func (m *Monitor) restartLocked() {
	if !m.started {
		return
	}
	paused := m.ticker.Paused()
	m.ticker.Stop()
	m.ticker = m.newTicker()
	if paused {
		m.ticker.Pause()
	}
	m.ticker.Start()
}

func (m *Monitor) newTicker() *Ticker {
	return NewTicker(m.interval, func(time.Time) { m.Tick() })
}

// Toggle flips visibility and returns the new state. Hiding pauses
// ticking; showing resumes it.
func (m *Monitor) Toggle() bool {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	m.mu.Lock()
	m.visible = !m.visible
	visible := m.visible
	m.mu.Unlock()

	if m.ticker != nil {
		if visible {
			m.ticker.Resume()
		} else {
			m.ticker.Pause()
		}
	}
	if !visible {
		m.publish(m.Current())
	}

	m.log.Info().Bool("visible", visible).Msg("Display toggled")
	return visible
}

// Visible reports whether the reading is being shown.
func (m *Monitor) Visible() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.visible
}

// Tick computes the reading for now and publishes it to every sink.
func (m *Monitor) Tick() Reading {
	r := m.Current()
	m.publish(r)
	return r
}

// Current computes the reading for now without publishing it. A hidden
// monitor yields an empty text.
func (m *Monitor) Current() Reading {
	m.mu.RLock()
	cfg, rate, visible := m.cfg, m.breakdown.Rate, m.visible
	m.mu.RUnlock()

	now := m.clock.Now()
	r := Reading{Visible: visible, At: now}
	if !visible {
		return r
	}
	p := earnings.Project(cfg, rate, now)
	r.Text = p.Text()
	r.Phase = p.Phase
	return r
}

// Last returns the most recently published reading.
func (m *Monitor) Last() Reading {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

func (m *Monitor) publish(r Reading) {
	m.mu.Lock()
	m.last = r
	sinks := append([]Sink(nil), m.sinks...)
	m.mu.Unlock()

	for _, s := range sinks {
		s.Publish(r)
	}
	m.log.Debug().Str("text", r.Text).Bool("visible", r.Visible).Msg("Reading published")
}

// Config returns the active configuration.
func (m *Monitor) Config() earnings.PayConfiguration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Breakdown returns how the active rate was derived.
func (m *Monitor) Breakdown() earnings.Breakdown {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.breakdown
}
