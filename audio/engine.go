// Package audio plays bounce feedback through the system speaker. All
// failures are non-fatal: the simulation runs fine in silence.
package audio

import (
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Engine produces a short tone per bounce; pitch and length track impact
// speed so hard hits sound harder.
type Engine struct {
	initialized bool
	muted       atomic.Bool
}

// NewEngine initializes the speaker. The returned error is informational;
// the engine stays usable (as a no-op) either way.
func NewEngine() (*Engine, error) {
	e := &Engine{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return e, err
	}
	e.initialized = true
	return e, nil
}

// ToggleMute flips the mute state and returns the new value
func (e *Engine) ToggleMute() bool {
	muted := !e.muted.Load()
	e.muted.Store(muted)
	return muted
}

// PlayBounce emits a tone for an impact at the given speed, relative to the
// configured maximum. Silent when muted or uninitialized.
func (e *Engine) PlayBounce(speed, maxSpeed float64) {
	if !e.initialized || e.muted.Load() {
		return
	}
	if maxSpeed <= 0 || speed <= 0 {
		return
	}

	// Harder impacts ring higher and longer
	intensity := speed / maxSpeed
	if intensity > 1 {
		intensity = 1
	}
	freq := 220 + 660*intensity
	duration := time.Duration(20+60*intensity) * time.Millisecond

	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(duration), tone))
}

// Close releases the speaker
func (e *Engine) Close() {
	if e.initialized {
		speaker.Close()
	}
}
