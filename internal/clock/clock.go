package clock

import "math"

// DefaultMaxDelta caps a single frame step at 100ms.
const DefaultMaxDelta = 0.1

// Clock accumulates scene time from externally supplied frame deltas.
// Every component of a scene reads the same Clock so that waypoints, clips
// and camera keyframes agree on the timeline.
type Clock struct {
	MaxDelta  float64
	TimeScale float64

	now   float64
	ticks int
}

func New(maxDelta, timeScale float64) *Clock {
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	if timeScale <= 0 {
		timeScale = 1.0
	}
	return &Clock{MaxDelta: maxDelta, TimeScale: timeScale}
}

// Tick advances the timeline and returns the step actually applied.
func (c *Clock) Tick(dt float64) float64 {
	step := Clamp(dt, c.MaxDelta)
	if c.TimeScale > 0 {
		step *= c.TimeScale
	}
	c.now += step
	c.ticks++
	return step
}

// Now returns the elapsed scene time in seconds.
func (c *Clock) Now() float64 {
	return c.now
}

// Ticks returns how many times Tick has been called since the last Reset.
func (c *Clock) Ticks() int {
	return c.ticks
}

func (c *Clock) Reset() {
	c.now = 0
	c.ticks = 0
}

// Clamp sanitizes a frame delta: NaN and negative values become zero and
// anything above max is cut down to max.
func Clamp(dt, max float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if max > 0 && dt > max {
		return max
	}
	return dt
}
