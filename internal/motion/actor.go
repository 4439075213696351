package motion

import (
	"github.com/ivlev/choreo/internal/angle"
	"github.com/ivlev/choreo/internal/scenegraph"
)

// Driver records who steps the live movement. Path-started moves are
// stepped by the waypoint path; everything else by the orchestrator.
type Driver int

const (
	DriverFree Driver = iota
	DriverPath
)

// Actor is the single source of truth for the actor pose. The displayed
// pose frame, when one is attached, mirrors every transform write.
type Actor struct {
	transform Transform
	pose      scenegraph.Object
	move      *Movement
	driver    Driver
}

func NewActor(start Transform) *Actor {
	return &Actor{transform: start}
}

func (a *Actor) Transform() Transform { return a.transform }

// SetTransform writes the canonical pose and mirrors it onto the displayed
// frame. The rotation is stored normalized.
func (a *Actor) SetTransform(t Transform) {
	t.Rotation = angle.Normalize(t.Rotation)
	a.transform = t
	if a.pose != nil {
		a.pose.SetPosition(t.Position)
		a.pose.SetRotationY(t.Rotation)
	}
}

// Pose returns the currently displayed pose frame or nil.
func (a *Actor) Pose() scenegraph.Object { return a.pose }

// SetPose replaces the displayed frame reference and applies the current
// transform to it.
func (a *Actor) SetPose(obj scenegraph.Object) {
	a.pose = obj
	if obj != nil {
		obj.SetPosition(a.transform.Position)
		obj.SetRotationY(a.transform.Rotation)
	}
}

// Present reports whether the actor has something on screen to move.
func (a *Actor) Present() bool { return a.pose != nil }

// Detach forgets the displayed frame and drops any live movement without
// firing its callback.
func (a *Actor) Detach() {
	a.pose = nil
	a.move = nil
}

// StartMovement installs a new live command, replacing any previous one.
// It fails when no actor is present.
func (a *Actor) StartMovement(req Request, driver Driver) bool {
	if a.pose == nil {
		return false
	}
	a.move = NewMovement(a.transform, req)
	a.driver = driver
	return true
}

// StepMovement advances the live command and writes the result. It returns
// true on the step that completes the command.
func (a *Actor) StepMovement(dt float64) bool {
	if a.move == nil {
		return false
	}
	t, done := a.move.Step(dt)
	if done {
		a.FinishMovement()
		return true
	}
	a.SetTransform(t)
	return false
}

// FinishMovement snaps to the exact target, clears the command, then fires
// its callback once.
func (a *Actor) FinishMovement() {
	m := a.move
	if m == nil {
		return
	}
	a.move = nil
	a.SetTransform(m.Target())
	m.Finish()
}

// StopMovement clears the live command where it stands.
func (a *Actor) StopMovement() {
	a.move = nil
}

func (a *Actor) Moving() bool { return a.move != nil }

func (a *Actor) Driver() Driver { return a.driver }

func (a *Actor) Movement() *Movement { return a.move }
