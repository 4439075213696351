package audio

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fader ramps a volume linearly over a duration.
type Fader struct {
	tween *gween.Tween
	value float64
	done  bool
}

func NewFader(from, to, duration float64) *Fader {
	if duration <= 0 {
		return &Fader{value: to, done: true}
	}
	return &Fader{
		tween: gween.New(float32(from), float32(to), float32(duration), ease.Linear),
		value: from,
	}
}

// Update advances the ramp and returns the new volume and whether the ramp
// has reached its end.
func (f *Fader) Update(dt float64) (float64, bool) {
	if f.done {
		return f.value, true
	}
	v, finished := f.tween.Update(float32(dt))
	f.value = float64(v)
	f.done = finished
	return f.value, f.done
}

func (f *Fader) Value() float64 { return f.value }

func (f *Fader) Done() bool { return f.done }
