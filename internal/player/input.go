package player

import (
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

var keyNames = map[string]ebiten.Key{
	"up":        ebiten.KeyArrowUp,
	"down":      ebiten.KeyArrowDown,
	"left":      ebiten.KeyArrowLeft,
	"right":     ebiten.KeyArrowRight,
	".":         ebiten.KeyPeriod,
	"-":         ebiten.KeyMinus,
	"tab":       ebiten.KeyTab,
	"backspace": ebiten.KeyBackspace,
	"return":    ebiten.KeyEnter,
	"enter":     ebiten.KeyEnter,
	"space":     ebiten.KeySpace,
	"escape":    ebiten.KeyEscape,

	"a": ebiten.KeyA,
	"b": ebiten.KeyB,
	"c": ebiten.KeyC,
	"d": ebiten.KeyD,
	"e": ebiten.KeyE,
	"f": ebiten.KeyF,
	"g": ebiten.KeyG,
	"h": ebiten.KeyH,
	"i": ebiten.KeyI,
	"j": ebiten.KeyJ,
	"k": ebiten.KeyK,
	"l": ebiten.KeyL,
	"m": ebiten.KeyM,
	"n": ebiten.KeyN,
	"o": ebiten.KeyO,
	"p": ebiten.KeyP,
	"q": ebiten.KeyQ,
	"r": ebiten.KeyR,
	"s": ebiten.KeyS,
	"t": ebiten.KeyT,
	"u": ebiten.KeyU,
	"v": ebiten.KeyV,
	"w": ebiten.KeyW,
	"x": ebiten.KeyX,
	"y": ebiten.KeyY,
	"z": ebiten.KeyZ,

	"0": ebiten.KeyDigit0,
	"1": ebiten.KeyDigit1,
	"2": ebiten.KeyDigit2,
	"3": ebiten.KeyDigit3,
	"4": ebiten.KeyDigit4,
	"5": ebiten.KeyDigit5,
	"6": ebiten.KeyDigit6,
	"7": ebiten.KeyDigit7,
	"8": ebiten.KeyDigit8,
	"9": ebiten.KeyDigit9,
}

// KeyFor resolves an input name to an ebiten key.
func KeyFor(name string) (ebiten.Key, bool) {
	k, ok := keyNames[strings.ToLower(name)]
	return k, ok
}

// Keyboard polls the ebiten keyboard by input name.
type Keyboard struct {
	unknown map[string]bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{unknown: make(map[string]bool)}
}

func (k *Keyboard) Pressed(name string) bool {
	key, ok := KeyFor(name)
	if !ok {
		if !k.unknown[name] {
			k.unknown[name] = true
			log.Printf("[!] [input] no key named %q", name)
		}
		return false
	}
	return ebiten.IsKeyPressed(key)
}
