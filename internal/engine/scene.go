package engine

import (
	"github.com/ivlev/choreo/internal/animation"
	"github.com/ivlev/choreo/internal/audio"
	"github.com/ivlev/choreo/internal/config"
	"github.com/ivlev/choreo/internal/director"
	"github.com/ivlev/choreo/internal/effects"
	"github.com/ivlev/choreo/internal/motion"
	"github.com/ivlev/choreo/internal/scenegraph"
)

// Scene is one unit of the production. Initialize is called when the scene
// becomes active; Update once per frame until Finished reports true.
type Scene interface {
	Name() string
	Initialize(w *World)
	Update(dt float64)
	Duration() float64
	Finished() bool
}

// HasWaypointPath is implemented by scenes that move the actor along a path.
type HasWaypointPath interface {
	Path() *director.Path
}

// HasCameraSystem is implemented by scenes that drive the camera.
type HasCameraSystem interface {
	CameraTrack() *director.Track
}

// HasTeardown is implemented by scenes that hold resources beyond the
// scene graph, such as playing music.
type HasTeardown interface {
	Teardown()
}

// Controller is the actor control surface the production offers to scenes.
type Controller interface {
	StartMovementTo(req motion.Request) bool
	StopMovement()
	EnableManualControl(pose *motion.Transform) bool
	DisableManualControl()
	ManualControl() bool
	FreeCamera() bool
	RegisterProp(name string, obj scenegraph.Object)
	Prop(name string) (scenegraph.Object, bool)
}

// World is what a scene gets to work with while it is active.
type World struct {
	Config   *config.Config
	Graph    *scenegraph.Graph
	Camera   *scenegraph.Camera
	Actor    *motion.Actor
	Library  *animation.Library
	Audio    audio.Service
	Input    Input
	Backdrop effects.Backdrop
	Control  Controller
}

// Input is polled once per frame by key name.
type Input interface {
	Pressed(key string) bool
}

// Key names understood by the production and its scenes.
const (
	KeyUp            = "up"
	KeyDown          = "down"
	KeyLeft          = "left"
	KeyRight         = "right"
	KeyRise          = "."
	KeyLower         = "-"
	KeyTurnLeft      = "z"
	KeyTurnRight     = "x"
	KeyEnableManual  = "c"
	KeyDisableManual = "tab"
	KeyResetPose     = "backspace"
	KeyCapture       = "return"
	KeySkip          = "space"

	KeyLookForward   = "w"
	KeyLookBack      = "s"
	KeyLookLeft      = "a"
	KeyLookRight     = "d"
	KeyLookTurnLeft  = "q"
	KeyLookTurnRight = "e"
	KeyLookUp        = "r"
	KeyLookDown      = "f"
)

// NoInput never reports a key as pressed.
type NoInput struct{}

func (NoInput) Pressed(string) bool { return false }
