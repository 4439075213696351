package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/ivlev/choreo/internal/animation"
	"github.com/ivlev/choreo/internal/audio"
	"github.com/ivlev/choreo/internal/clock"
	"github.com/ivlev/choreo/internal/config"
	"github.com/ivlev/choreo/internal/effects"
	"github.com/ivlev/choreo/internal/motion"
	"github.com/ivlev/choreo/internal/scenegraph"
)

// Production sequences scenes, owns the actor transform and routes every
// frame either to the active scene or to the transition between scenes.
type Production struct {
	Config  *config.Config
	Graph   *scenegraph.Graph
	Camera  *scenegraph.Camera
	Rig     *FreeLook
	Actor   *motion.Actor
	Library *animation.Library
	Audio   audio.Service
	Input   Input

	// OnSceneStart runs after a scene has been initialized.
	OnSceneStart func(index int, s Scene)
	// OnCapture receives the snippet produced by the capture key.
	OnCapture func(snippet string)

	backdrop   effects.Backdrop
	transition *effects.Transition
	scenes     []Scene
	index      int
	pending    int
	current    Scene
	manual     bool
	props      map[string]scenegraph.Object
	done       bool

	elapsed     float64
	lastCapture float64
	frames      int
	startTime   time.Time
}

func NewProduction(cfg *config.Config, lib *animation.Library, svc audio.Service, input Input, backdrop effects.Backdrop) *Production {
	if lib == nil {
		lib = animation.NewLibrary()
	}
	if svc == nil {
		svc = &audio.Silent{}
	}
	if input == nil {
		input = NoInput{}
	}

	p := &Production{
		Config:      cfg,
		Graph:       scenegraph.NewGraph(),
		Camera:      scenegraph.NewCamera("camera"),
		Actor:       motion.NewActor(motion.Transform{}),
		Library:     lib,
		Audio:       svc,
		Input:       input,
		backdrop:    backdrop,
		index:       -1,
		pending:     -1,
		props:       make(map[string]scenegraph.Object),
		lastCapture: -1,
	}
	p.Rig = NewFreeLook(p.Camera, cfg.FreeLookSpeed, cfg.TurnSpeed)
	p.Graph.Add(p.Camera)
	p.Graph.Add(p.Rig.Node())
	p.transition = effects.NewTransition(cfg.Cover(), backdrop, p.clearWorld)
	return p
}

// Start activates scenes[first] directly, without a transition.
func (p *Production) Start(scenes []Scene, first int) {
	p.scenes = scenes
	p.done = false
	p.startTime = time.Now()
	if first < 0 || first >= len(scenes) {
		if len(scenes) > 0 {
			log.Printf("[!] Scene %d does not exist, starting from 0", first)
		}
		first = 0
	}
	if len(scenes) == 0 {
		log.Printf("[!] Nothing to play")
		p.done = true
		return
	}
	fmt.Printf("[*] Scenes: %d | starting with %s\n", len(scenes), scenes[first].Name())
	p.activate(first)
}

// Update runs one frame.
func (p *Production) Update(dt float64) {
	if p.done {
		return
	}
	dt = clock.Clamp(dt, p.Config.MaxDelta)
	p.elapsed += dt
	p.frames++
	p.Audio.Update(dt)

	if p.Config.FreeCamera {
		p.Rig.Update(p.Input, dt)
	}

	if p.Actor.Moving() && p.Actor.Driver() == motion.DriverFree {
		p.Actor.StepMovement(dt)
	}

	p.handleManual()

	if p.transition.Active() {
		if p.transition.Update(dt) {
			p.activate(p.pending)
		}
		return
	}

	if p.current == nil {
		return
	}
	p.current.Update(dt)
	if p.current.Finished() {
		p.advance()
	}
}

// SkipScene ends the current scene now.
func (p *Production) SkipScene() {
	if p.done || p.transition.Active() || p.current == nil {
		return
	}
	log.Printf("[*] Skipping %s", p.current.Name())
	p.advance()
}

// Reload swaps in a new scene list, for example after the script changed
// on disk, and replays the current scene index from its start.
func (p *Production) Reload(scenes []Scene) {
	if len(scenes) == 0 {
		log.Printf("[!] Reload without scenes ignored")
		return
	}
	idx := p.index
	if idx < 0 {
		idx = 0
	}
	if idx >= len(scenes) {
		idx = len(scenes) - 1
	}
	p.scenes = scenes
	p.done = false
	p.pending = idx
	if !p.transition.Active() {
		p.transition.Start(effects.KindCut, 0)
	}
}

func (p *Production) advance() {
	next := p.index + 1
	if next >= len(p.scenes) {
		p.finish()
		return
	}
	p.pending = next
	p.transition.Start(effects.KindFade, p.Config.TransitionDuration)
}

func (p *Production) finish() {
	if p.current != nil {
		if td, ok := p.current.(HasTeardown); ok {
			td.Teardown()
		}
	}
	p.done = true
	log.Printf("[+] Production finished after %d scenes", len(p.scenes))
}

func (p *Production) activate(i int) {
	p.index = i
	p.pending = -1
	p.current = p.scenes[i]
	log.Printf("[*] Scene %d/%d: %s", i+1, len(p.scenes), p.current.Name())
	p.current.Initialize(p.world())
	if p.OnSceneStart != nil {
		p.OnSceneStart(i, p.current)
	}
}

// clearWorld runs inside Transition.Start: everything but the camera and
// its rig leaves the graph and every per-scene reference is dropped.
func (p *Production) clearWorld() {
	if p.current != nil {
		if td, ok := p.current.(HasTeardown); ok {
			td.Teardown()
		}
	}
	removed := p.Graph.Clear(p.Camera, p.Rig.Node())
	p.Actor.Detach()
	p.props = make(map[string]scenegraph.Object)
	p.manual = false
	p.current = nil
	log.Printf("[*] World cleared (%d objects)", removed)
}

func (p *Production) world() *World {
	return &World{
		Config:   p.Config,
		Graph:    p.Graph,
		Camera:   p.Camera,
		Actor:    p.Actor,
		Library:  p.Library,
		Audio:    p.Audio,
		Input:    p.Input,
		Backdrop: p.backdrop,
		Control:  p,
	}
}

// StartMovementTo moves the actor outside of any waypoint path. It fails
// when there is no actor on screen, callers fall back to a teleport, and
// while a smooth waypoint owns the actor.
func (p *Production) StartMovementTo(req motion.Request) bool {
	if p.Actor.Moving() && p.Actor.Driver() == motion.DriverPath {
		log.Printf("[!] Cannot start movement: the waypoint path is moving the actor")
		return false
	}
	if !p.Actor.StartMovement(req, motion.DriverFree) {
		log.Printf("[!] Cannot start movement: no actor")
		return false
	}
	if p.manual {
		p.DisableManualControl()
	}
	return true
}

func (p *Production) StopMovement() {
	p.Actor.StopMovement()
}

func (p *Production) FreeCamera() bool { return p.Config.FreeCamera }

func (p *Production) RegisterProp(name string, obj scenegraph.Object) {
	p.props[name] = obj
}

func (p *Production) Prop(name string) (scenegraph.Object, bool) {
	obj, ok := p.props[name]
	return obj, ok
}

func (p *Production) Done() bool { return p.done }

func (p *Production) Current() Scene { return p.current }

func (p *Production) Index() int { return p.index }

func (p *Production) Transition() *effects.Transition { return p.transition }

func (p *Production) Frames() int { return p.frames }

// Elapsed is the total clamped time fed to the production.
func (p *Production) Elapsed() float64 { return p.elapsed }
