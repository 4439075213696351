package engine

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/choreo/internal/animation"
	"github.com/ivlev/choreo/internal/audio"
	"github.com/ivlev/choreo/internal/clock"
	"github.com/ivlev/choreo/internal/config"
	"github.com/ivlev/choreo/internal/director"
)

// ScriptedScene plays one scene script: props, an animated actor walking a
// waypoint path, a camera track and the music timeline.
type ScriptedScene struct {
	script director.SceneScript

	world    *World
	clock    *clock.Clock
	stage    *animation.Stage
	machine  *animation.Machine
	path     *director.Path
	track    *director.Track
	music    *audio.Timeline
	sounds   *audio.Cues
	finished bool
}

func NewScriptedScene(script director.SceneScript) *ScriptedScene {
	return &ScriptedScene{script: script}
}

func (s *ScriptedScene) Name() string { return s.script.Name }

func (s *ScriptedScene) Initialize(w *World) {
	s.world = w
	s.finished = false
	s.clock = clock.New(w.Config.MaxDelta, w.Config.TimeScale)

	s.placeProps()
	s.applyBackground()

	if s.script.Entry != nil {
		w.Actor.SetTransform(*s.script.Entry)
	} else if len(s.script.Waypoints) > 0 {
		w.Actor.SetTransform(s.script.Waypoints[0].Pose())
	}

	s.stage = animation.NewStage(w.Graph, w.Actor)
	s.machine = animation.NewMachine(w.Library, s.stage, s.states())
	initial := s.script.InitialState
	if initial == "" && len(s.script.Waypoints) > 0 {
		initial = s.script.Waypoints[0].Animation
	}
	if initial != "" {
		s.machine.Transition(initial)
	}

	s.path = director.NewPath(s.clock, w.Actor, s.script.Waypoints)
	s.path.OnEnter = func(_ int, wp director.Waypoint) {
		if wp.Animation != "" {
			s.machine.Transition(wp.Animation)
		}
	}
	s.path.OnComplete = func() {
		log.Printf("[*] [%s] path complete at %.2fs", s.script.Name, s.clock.Now())
	}
	s.path.Start()

	s.track = director.NewTrack(s.clock, w.Camera, s.keyframes())
	s.track.Subject = func() (mgl64.Vec3, bool) {
		return w.Actor.Transform().Position, w.Actor.Present()
	}
	s.track.LookHeight = w.Config.LookAtHeight
	if s.script.LookAtHeight > 0 {
		s.track.LookHeight = s.script.LookAtHeight
	}
	s.track.EntryLookHeight = w.Config.EntryLookAtHeight
	if w.Control != nil && w.Control.FreeCamera() {
		s.track.Disable()
	}
	s.track.Start()

	s.music, s.sounds = newSoundtrack(w, s.script)
	s.music.Update(0)
	s.sounds.Update(0)
}

func (s *ScriptedScene) placeProps() {
	for _, pl := range s.script.Props {
		node, ok := s.world.Library.Prop(pl.Name)
		if !ok {
			log.Printf("[!] [%s] prop %q is not loaded", s.script.Name, pl.Name)
			continue
		}
		node.SetPosition(pl.Position)
		node.SetRotationY(pl.Rotation)
		s.world.Graph.Add(node)
		if s.world.Control != nil {
			s.world.Control.RegisterProp(pl.Name, node)
		}
	}
}

func (s *ScriptedScene) applyBackground() {
	applyBackground(s.world, s.script.Background, s.script.Name)
}

func (s *ScriptedScene) states() []animation.State {
	out := make([]animation.State, 0, len(s.script.States))
	for _, spec := range s.script.States {
		mode, err := animation.ParseMode(spec.Mode)
		if err != nil {
			log.Printf("[!] [%s] state %q: %v, using cyclic", s.script.Name, spec.Name, err)
		}
		st := animation.State{
			Name:          spec.Name,
			Clip:          spec.Clip,
			TicksPerFrame: spec.TicksPerFrame,
			Mode:          mode,
			Hold:          spec.Hold,
		}
		if spec.LoopFrom != nil {
			st.Loops = true
			st.LoopFrom = *spec.LoopFrom
		}
		out = append(out, st)
	}
	return out
}

// keyframes falls back to generated coverage when the script has no shots.
func (s *ScriptedScene) keyframes() []director.CameraKeyframe {
	if len(s.script.Camera) > 0 || len(s.script.Waypoints) == 0 {
		return s.script.Camera
	}
	shots, err := director.NewDirector().GenerateCoverage(s.script.Waypoints)
	if err != nil {
		log.Printf("[!] [%s] no camera coverage: %v", s.script.Name, err)
		return nil
	}
	log.Printf("[*] [%s] generated %d camera shots", s.script.Name, len(shots))
	return shots
}

// Update advances the scene. While the keyboard owns the actor the scene
// clock stands still and only the pose animation runs.
func (s *ScriptedScene) Update(dt float64) {
	if s.world == nil || s.finished {
		return
	}
	if s.world.Control != nil && s.world.Control.ManualControl() {
		s.machine.Update(dt)
		return
	}

	scaled := s.clock.Tick(dt)
	s.path.Advance(scaled)
	s.machine.Update(scaled)
	s.track.Update()
	s.music.Update(s.clock.Now())
	s.sounds.Update(s.clock.Now())

	if len(s.script.Waypoints) > 0 {
		s.finished = s.path.Complete()
	} else {
		s.finished = s.clock.Now() >= s.Duration()
	}
}

// Duration is the scripted duration, or the longer of path and camera
// track when none is given.
func (s *ScriptedScene) Duration() float64 {
	if s.script.Duration > 0 {
		return s.script.Duration
	}
	d := s.script.PathDuration()
	if t := s.script.TrackDuration(); t > d {
		d = t
	}
	return d
}

func (s *ScriptedScene) Finished() bool { return s.finished }

func (s *ScriptedScene) Path() *director.Path { return s.path }

func (s *ScriptedScene) CameraTrack() *director.Track { return s.track }

func (s *ScriptedScene) Machine() *animation.Machine { return s.machine }

func (s *ScriptedScene) Clock() *clock.Clock { return s.clock }

func (s *ScriptedScene) Teardown() {
	if s.music != nil {
		s.music.Stop()
	}
}

func newSoundtrack(w *World, script director.SceneScript) (*audio.Timeline, *audio.Cues) {
	entries := make([]audio.Entry, 0, len(script.Music))
	for _, m := range script.Music {
		entries = append(entries, audio.Entry{
			Start:  m.Start,
			End:    m.End,
			Music:  m.Music,
			Volume: m.Volume,
			Loop:   m.Loop,
			FadeIn: m.FadeIn,
		})
	}
	music := audio.NewTimeline(w.Audio, entries)
	if w.Config.MusicFade > 0 {
		music.FadeDuration = w.Config.MusicFade
	}

	cues := make([]audio.Cue, 0, len(script.Sounds))
	for _, c := range script.Sounds {
		cues = append(cues, audio.Cue{At: c.At, Sound: c.Sound, Volume: c.Volume})
	}
	return music, audio.NewCues(w.Audio, cues)
}

func applyBackground(w *World, name, scene string) {
	if w.Backdrop == nil {
		return
	}
	bg := w.Config.Background()
	if name != "" {
		c, err := config.ParseColor(name)
		if err != nil {
			log.Printf("[!] [%s] %v", scene, err)
		} else {
			bg = c
		}
	}
	w.Backdrop.SetBackground(bg)
}
