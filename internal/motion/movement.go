// Package motion owns the actor's canonical transform and the single live
// move-to command that interpolates it.
package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/choreo/internal/angle"
)

// PhaseSplit is the share of a face-while-moving command spent turning
// towards the travel direction. The rest turns to the final facing.
const PhaseSplit = 0.8

// headingEpsilon is the smallest ground displacement that defines a heading.
const headingEpsilon = 0.001

// Transform is the actor's pose on the ground plane.
type Transform struct {
	Position mgl64.Vec3 `yaml:"position"`
	Rotation float64    `yaml:"rotation"`
}

// Request describes a move-to command. A nil Rotation means "keep facing"
// for plain moves and "face the travel direction" when AutoFace is set.
type Request struct {
	Target   mgl64.Vec3
	Rotation *float64
	Duration float64
	AutoFace bool
	Done     func()
}

// Movement interpolates one Request. Position is linear over progress.
// Rotation is either a shortest-path blend or, with AutoFace, a turn to the
// heading over [0, PhaseSplit) followed by a turn to the final facing.
type Movement struct {
	startPos  mgl64.Vec3
	targetPos mgl64.Vec3
	startRot  float64
	targetRot float64
	heading   float64
	autoFace  bool
	duration  float64
	progress  float64
	done      func()
	finished  bool
}

func NewMovement(from Transform, req Request) *Movement {
	m := &Movement{
		startPos:  from.Position,
		targetPos: req.Target,
		startRot:  from.Rotation,
		autoFace:  req.AutoFace,
		duration:  req.Duration,
		done:      req.Done,
	}

	dx := req.Target.X() - from.Position.X()
	dz := req.Target.Z() - from.Position.Z()
	m.heading = from.Rotation
	if math.Abs(dx) > headingEpsilon || math.Abs(dz) > headingEpsilon {
		m.heading = angle.Heading(dx, dz)
	}

	switch {
	case req.Rotation != nil:
		m.targetRot = *req.Rotation
	case req.AutoFace:
		m.targetRot = m.heading
	default:
		m.targetRot = from.Rotation
	}
	if !m.autoFace {
		m.targetRot = angle.Optimize(m.startRot, m.targetRot)
	}
	return m
}

// Step advances the command by dt seconds and returns the interpolated pose.
// On the step that reaches the end it returns the exact target and true; the
// caller is expected to call Finish.
func (m *Movement) Step(dt float64) (Transform, bool) {
	if m.finished {
		return m.Target(), true
	}
	if m.duration <= 0 {
		m.progress = 1
	} else {
		m.progress += dt / m.duration
	}
	if m.progress >= 1 {
		m.progress = 1
		return m.Target(), true
	}
	return m.Sample(m.progress), false
}

// Sample evaluates the pose at progress p in [0, 1] without side effects.
func (m *Movement) Sample(p float64) Transform {
	p = mgl64.Clamp(p, 0, 1)
	pos := m.startPos.Add(m.targetPos.Sub(m.startPos).Mul(p))

	var rot float64
	if m.autoFace {
		if p < PhaseSplit {
			rot = m.startRot + angle.Diff(m.startRot, m.heading)*(p/PhaseSplit)
		} else {
			rot = m.heading + angle.Diff(m.heading, m.targetRot)*((p-PhaseSplit)/(1-PhaseSplit))
		}
	} else {
		rot = m.startRot + (m.targetRot-m.startRot)*p
	}
	return Transform{Position: pos, Rotation: angle.Normalize(rot)}
}

// Target is the exact terminal pose.
func (m *Movement) Target() Transform {
	return Transform{Position: m.targetPos, Rotation: angle.Normalize(m.targetRot)}
}

// Finish marks the command complete and fires its callback. Only the first
// call has an effect.
func (m *Movement) Finish() Transform {
	if !m.finished {
		m.finished = true
		m.progress = 1
		if m.done != nil {
			m.done()
		}
	}
	return m.Target()
}

func (m *Movement) Progress() float64 { return m.progress }

func (m *Movement) Heading() float64 { return m.heading }

func (m *Movement) Finished() bool { return m.finished }
