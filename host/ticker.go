/*
ticker.go - Cancellable periodic task handle

PURPOSE:
  Drives the once-per-interval refresh of the earnings reading. Each
  Ticker is an explicit handle: whoever starts it owns it and stops it.
  Reconfiguring the monitor stops the old handle and starts a new one.

DESIGN:
  - Background goroutine over time.Ticker, stop channel, WaitGroup
  - Fires once immediately on Start, then every Interval
  - Stop blocks until the goroutine has exited; safe to call twice
  - Pause/Resume stop and restart ticking without losing the handle

USAGE:
  t := NewTicker(time.Second, func(now time.Time) { ... })
  t.Start()
  defer t.Stop()

SEE ALSO:
  - monitor.go: Owns the Ticker
*/
package host

import (
	"sync"
	"time"
)

// Ticker calls Fn every Interval until stopped.
type Ticker struct {
	Interval time.Duration
	Fn       func(now time.Time)

	ticker *time.Ticker
	stop   chan struct{}
	paused bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewTicker creates a stopped ticker.
func NewTicker(interval time.Duration, fn func(now time.Time)) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{Interval: interval, Fn: fn}
}

// Start begins ticking. A running or paused ticker is left as is.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ticker != nil || t.paused {
		return
	}
	t.startLocked()
}

func (t *Ticker) startLocked() {
	t.ticker = time.NewTicker(t.Interval)
	t.stop = make(chan struct{})
	t.wg.Add(1)

	go t.run(t.ticker, t.stop)
}

// Stop stops ticking and waits for an in-flight call to finish.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.paused = false
	t.stopLocked()
}

func (t *Ticker) stopLocked() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	close(t.stop)
	t.wg.Wait()
	t.ticker = nil
}

// Pause stops ticking until Resume. Pausing a stopped ticker makes the
// next Start a no-op.
func (t *Ticker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.paused = true
}

// Resume restarts a paused ticker.
func (t *Ticker) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.paused {
		return
	}
	t.paused = false
	t.startLocked()
}

// Running reports whether the ticker is currently firing.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticker != nil
}

// Paused reports whether the ticker is paused.
func (t *Ticker) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

func (t *Ticker) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer t.wg.Done()

	// Run immediately on start
	t.Fn(time.Now())

	for {
		select {
		case now := <-ticker.C:
			t.Fn(now)
		case <-stop:
			return
		}
	}
}
