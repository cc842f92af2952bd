// Package tick provides a fixed-interval trigger driven by an external clock.
package tick

import "errors"

// ErrNegativeStep is returned when a gate is configured with a negative interval.
var ErrNegativeStep = errors.New("tick: step must not be negative")

// Gate fires at most once per step of caller-supplied time.
//
// Time is whatever the caller passes to Tick, usually seconds since start.
// A time earlier than the last recorded one re-arms the gate.
type Gate struct {
	step    float64
	prev    float64
	started bool
}

// New constructs a Gate with the given interval.
func New(step float64) (*Gate, error) {
	g := &Gate{}
	if err := g.SetStep(step); err != nil {
		return nil, err
	}
	return g, nil
}

// SetStep changes the interval. The recorded time is kept.
func (g *Gate) SetStep(step float64) error {
	if step < 0 {
		return ErrNegativeStep
	}
	g.step = step
	return nil
}

// Step returns the interval.
func (g *Gate) Step() float64 {
	return g.step
}

// Tick reports whether a step is due at now and records now when it is.
// The first call always fires.
func (g *Gate) Tick(now float64) bool {
	if !g.started || now < g.prev || now-g.prev > g.step {
		g.prev = now
		g.started = true
		return true
	}
	return false
}

// Reset forgets the recorded time so the next Tick fires.
func (g *Gate) Reset() {
	g.started = false
	g.prev = 0
}
