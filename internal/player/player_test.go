package player

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ivlev/choreo/internal/engine"
)

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name string
		want ebiten.Key
		ok   bool
	}{
		{engine.KeyUp, ebiten.KeyArrowUp, true},
		{engine.KeyRise, ebiten.KeyPeriod, true},
		{engine.KeyCapture, ebiten.KeyEnter, true},
		{engine.KeySkip, ebiten.KeySpace, true},
		{"W", ebiten.KeyW, true},
		{"7", ebiten.KeyDigit7, true},
		{"f13", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyFor(tt.name)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("KeyFor(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestEveryEngineKeyIsMapped(t *testing.T) {
	names := []string{
		engine.KeyUp, engine.KeyDown, engine.KeyLeft, engine.KeyRight,
		engine.KeyRise, engine.KeyLower, engine.KeyTurnLeft, engine.KeyTurnRight,
		engine.KeyEnableManual, engine.KeyDisableManual, engine.KeyResetPose,
		engine.KeyCapture, engine.KeySkip,
		engine.KeyLookForward, engine.KeyLookBack, engine.KeyLookLeft, engine.KeyLookRight,
		engine.KeyLookTurnLeft, engine.KeyLookTurnRight, engine.KeyLookUp, engine.KeyLookDown,
	}
	for _, n := range names {
		if _, ok := KeyFor(n); !ok {
			t.Errorf("key %q has no ebiten mapping", n)
		}
	}
}

func TestBackdrop(t *testing.T) {
	b := &Backdrop{}
	c := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	b.SetBackground(c)
	if b.Background() != c {
		t.Errorf("expected %v, got %v", c, b.Background())
	}
}
