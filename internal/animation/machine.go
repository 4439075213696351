package animation

import (
	"fmt"
	"log"

	"github.com/ivlev/choreo/internal/scenegraph"
)

type Mode int

const (
	// Cyclic wraps around the clip forever.
	Cyclic Mode = iota
	// Finite stops on the last frame, or jumps back to LoopFrom when Loops
	// is set.
	Finite
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "cyclic":
		return Cyclic, nil
	case "finite":
		return Finite, nil
	}
	return Cyclic, fmt.Errorf("unknown playback mode %q", s)
}

// State binds a named animation state to a clip. Frames advance once every
// TicksPerFrame updates regardless of dt. Hold keeps frame 0 on screen for
// that many seconds after entering the state.
type State struct {
	Name          string
	Clip          string
	TicksPerFrame int
	Mode          Mode
	Loops         bool
	LoopFrom      int
	Hold          float64
}

// Machine drives the actor's displayed pose from a small set of states.
type Machine struct {
	clips  Clips
	stage  *Stage
	states map[string]State

	current    string
	frameIndex int
	tickCount  int
	stateTime  float64
	warned     map[string]bool
}

func NewMachine(clips Clips, stage *Stage, states []State) *Machine {
	m := &Machine{
		clips:  clips,
		stage:  stage,
		states: make(map[string]State, len(states)),
		warned: make(map[string]bool),
	}
	for _, s := range states {
		if s.TicksPerFrame <= 0 {
			s.TicksPerFrame = 1
		}
		m.states[s.Name] = s
	}
	return m
}

// Transition enters a state, rewinding to frame 0. Entering the current
// state again does nothing.
func (m *Machine) Transition(name string) bool {
	if name == m.current {
		return false
	}
	st, ok := m.states[name]
	if !ok {
		log.Printf("[!] [animation] unknown state %q, staying in %q", name, m.current)
		return false
	}

	m.current = name
	m.frameIndex = 0
	m.tickCount = 0
	m.stateTime = 0

	if frames, ok := m.frames(st); ok {
		m.show(frames, 0)
	}
	return true
}

// Update advances the active clip by one tick.
func (m *Machine) Update(dt float64) {
	st, ok := m.states[m.current]
	if !ok {
		return
	}
	frames, ok := m.frames(st)
	if !ok {
		return
	}

	m.stateTime += dt
	if m.stateTime < st.Hold {
		return
	}

	m.tickCount++
	if m.tickCount < st.TicksPerFrame {
		return
	}
	m.tickCount = 0

	next := m.nextFrame(st, len(frames))
	if next != m.frameIndex {
		m.show(frames, next)
	}
}

func (m *Machine) nextFrame(st State, n int) int {
	if st.Mode == Cyclic {
		return (m.frameIndex + 1) % n
	}
	if m.frameIndex < n-1 {
		return m.frameIndex + 1
	}
	if st.Loops && st.LoopFrom >= 0 && st.LoopFrom < n {
		return st.LoopFrom
	}
	return m.frameIndex
}

// show swaps in frame i. Out of range indices are rejected.
func (m *Machine) show(frames []scenegraph.Object, i int) {
	if i < 0 || i >= len(frames) {
		log.Printf("[!] [animation] frame %d out of range for %q (%d frames)", i, m.current, len(frames))
		return
	}
	m.frameIndex = i
	m.stage.Swap(frames[i])
}

// frames looks up the clip for st. A missing or empty clip is reported once
// and leaves the last pose on screen.
func (m *Machine) frames(st State) ([]scenegraph.Object, bool) {
	frames, ok := m.clips.Clip(st.Clip)
	if ok && len(frames) > 0 {
		return frames, true
	}
	if !m.warned[st.Clip] {
		m.warned[st.Clip] = true
		log.Printf("[!] [animation] clip %q for state %q is missing or empty", st.Clip, st.Name)
	}
	return nil, false
}

func (m *Machine) State() string { return m.current }

func (m *Machine) Frame() int { return m.frameIndex }
