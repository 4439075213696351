package engine

import (
	"log"

	"github.com/ivlev/choreo/internal/audio"
	"github.com/ivlev/choreo/internal/clock"
	"github.com/ivlev/choreo/internal/director"
)

// Interlude is a timed scene without an actor: an empty world, its own
// music and a key that ends it early.
type Interlude struct {
	script director.SceneScript

	world    *World
	clock    *clock.Clock
	music    *audio.Timeline
	sounds   *audio.Cues
	skipped  bool
	finished bool
}

func NewInterlude(script director.SceneScript) *Interlude {
	if script.SkipKey == "" {
		script.SkipKey = KeySkip
	}
	return &Interlude{script: script}
}

func (s *Interlude) Name() string { return s.script.Name }

func (s *Interlude) Initialize(w *World) {
	s.world = w
	s.skipped = false
	s.finished = false
	s.clock = clock.New(w.Config.MaxDelta, w.Config.TimeScale)

	if w.Actor.Present() {
		w.Graph.Remove(w.Actor.Pose())
	}
	w.Actor.Detach()
	applyBackground(w, s.script.Background, s.script.Name)

	s.music, s.sounds = newSoundtrack(w, s.script)
	s.music.Update(0)
	s.sounds.Update(0)
	log.Printf("[*] [%s] interlude for %.1fs, %q skips", s.script.Name, s.Duration(), s.script.SkipKey)
}

func (s *Interlude) Update(dt float64) {
	if s.world == nil || s.finished {
		return
	}
	if s.world.Input.Pressed(s.script.SkipKey) {
		log.Printf("[*] [%s] skipped at %.2fs", s.script.Name, s.clock.Now())
		s.skipped = true
		s.finished = true
		return
	}
	s.clock.Tick(dt)
	s.music.Update(s.clock.Now())
	s.sounds.Update(s.clock.Now())
	s.finished = s.clock.Now() >= s.Duration()
}

func (s *Interlude) Duration() float64 { return s.script.Duration }

func (s *Interlude) Finished() bool { return s.finished }

func (s *Interlude) Skipped() bool { return s.skipped }

func (s *Interlude) Teardown() {
	if s.music != nil {
		s.music.Stop()
	}
}
