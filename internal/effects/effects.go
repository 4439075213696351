package effects

import (
	"image/color"
	"log"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultDuration is how long the cover is held between scenes.
const DefaultDuration = 5.0

// finishEpsilon absorbs float error when frame deltas sum to the duration.
const finishEpsilon = 1e-6

// Kind names the transition requested by a scene. Every kind renders as the
// same solid cover; the name is kept for logs and scripts.
type Kind string

const (
	KindFade     Kind = "fade"
	KindCut      Kind = "cut"
	KindDissolve Kind = "dissolve"
)

// Backdrop is the renderer's clear colour.
type Backdrop interface {
	Background() color.RGBA
	SetBackground(c color.RGBA)
}

// Transition covers the screen between two scenes. Start clears the world
// immediately; Update reports true on the tick the cover has been held for
// the full duration.
type Transition struct {
	Cover color.RGBA
	// Pulse is how far the cover brightens towards white at the peak of
	// its breathing cycle.
	Pulse float64

	backdrop Backdrop
	onClear  func()

	active    bool
	kind      Kind
	duration  float64
	elapsed   float64
	progress  float64
	intensity float64
	saved     color.RGBA
	pulse     *gween.Sequence
}

func NewTransition(cover color.RGBA, backdrop Backdrop, onClear func()) *Transition {
	return &Transition{
		Cover:    cover,
		Pulse:    0.08,
		backdrop: backdrop,
		onClear:  onClear,
	}
}

// Start activates the cover and clears the world before returning.
func (t *Transition) Start(kind Kind, duration float64) {
	if t.active {
		log.Printf("[!] [transition] %s requested while %s is running, ignoring", kind, t.kind)
		return
	}
	if duration < 0 {
		duration = 0
	}

	t.active = true
	t.kind = kind
	t.duration = duration
	t.elapsed = 0
	t.progress = 0
	t.intensity = 0
	t.pulse = gween.NewSequence(
		gween.New(0, 1, 0.5, ease.InOutSine),
		gween.New(1, 0, 0.5, ease.InOutSine),
	)
	t.pulse.SetLoop(-1)

	if t.backdrop != nil {
		t.saved = t.backdrop.Background()
	}
	if t.onClear != nil {
		t.onClear()
	}
	t.applyCover()
	log.Printf("[*] [transition] %s started (%.1fs)", kind, duration)
}

// Update advances the cover. It returns true exactly once, on the tick the
// transition ends.
func (t *Transition) Update(dt float64) bool {
	if !t.active {
		return false
	}

	t.elapsed += dt
	if t.duration > 0 {
		t.progress = t.elapsed / t.duration
	}
	if t.progress > 1 {
		t.progress = 1
	}

	if t.elapsed >= t.duration-finishEpsilon {
		t.progress = 1
		t.active = false
		t.intensity = 0
		if t.backdrop != nil {
			t.backdrop.SetBackground(t.saved)
		}
		log.Printf("[*] [transition] %s finished", t.kind)
		return true
	}

	v, _, _ := t.pulse.Update(float32(dt))
	t.intensity = float64(v)
	t.applyCover()
	return false
}

func (t *Transition) applyCover() {
	if t.backdrop != nil {
		t.backdrop.SetBackground(t.CoverColor())
	}
}

// CoverColor is the cover colour for the current pulse phase.
func (t *Transition) CoverColor() color.RGBA {
	k := t.Pulse * t.intensity
	return color.RGBA{
		R: brighten(t.Cover.R, k),
		G: brighten(t.Cover.G, k),
		B: brighten(t.Cover.B, k),
		A: 0xff,
	}
}

func brighten(c uint8, k float64) uint8 {
	v := float64(c) + (255-float64(c))*k
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}

func (t *Transition) Active() bool { return t.active }

func (t *Transition) Progress() float64 { return t.progress }

func (t *Transition) Kind() Kind { return t.kind }
