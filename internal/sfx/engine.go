package sfx

import (
	"math"
	"sync/atomic"
)

// Engine is an endless io.Reader producing the engine hum. The frame loop
// sets the throttle from telemetry while the audio driver reads from
// another goroutine.
type Engine struct {
	// throttle holds the float64 bits of a value in [0,1].
	throttle atomic.Uint64
	boosted  atomic.Bool
	muted    atomic.Bool

	rate  float64
	phase float64
	freq  float64
	seed  uint64
}

const (
	engineIdleHz = 55.0
	engineTopHz  = 220.0
	engineGlide  = 0.0005
)

func NewEngine(rate int) *Engine {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Engine{rate: float64(rate), freq: engineIdleHz, seed: 0x3A7}
}

// Set updates the hum from speed over max speed; values are clamped.
func (e *Engine) Set(throttle float64, boosted bool) {
	throttle = math.Max(0, math.Min(1, math.Abs(throttle)))
	e.throttle.Store(math.Float64bits(throttle))
	e.boosted.Store(boosted)
}

func (e *Engine) Throttle() float64 {
	return math.Float64frombits(e.throttle.Load())
}

// Mute silences the hum without stopping the stream.
func (e *Engine) Mute(m bool) { e.muted.Store(m) }

func (e *Engine) Read(p []byte) (int, error) {
	frames := len(p) / BytesPerFrame
	target := engineIdleHz + (engineTopHz-engineIdleHz)*e.Throttle()
	if e.boosted.Load() {
		target *= 1.25
	}
	gain := 0.18
	if e.muted.Load() {
		gain = 0
	}
	for i := 0; i < frames; i++ {
		e.freq += (target - e.freq) * engineGlide
		e.phase += 2 * math.Pi * e.freq / e.rate
		if e.phase > 2*math.Pi {
			e.phase -= 2 * math.Pi
		}
		s := math.Sin(e.phase)*0.6 + math.Sin(2*e.phase)*0.25 + lcg(&e.seed)*0.05
		putStereo(p, i, softSat(s*gain))
	}
	return frames * BytesPerFrame, nil
}
