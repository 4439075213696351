package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/choreo/internal/scenegraph"
)

// FreeLook flies the camera from the keyboard. Its node stays in the graph
// across scene changes together with the camera.
type FreeLook struct {
	Speed     float64
	TurnSpeed float64

	node   *scenegraph.Node
	camera *scenegraph.Camera
}

func NewFreeLook(camera *scenegraph.Camera, speed, turnSpeed float64) *FreeLook {
	if speed <= 0 {
		speed = 2.0
	}
	if turnSpeed <= 0 {
		turnSpeed = 0.05
	}
	return &FreeLook{
		Speed:     speed,
		TurnSpeed: turnSpeed,
		node:      scenegraph.NewNode("camera_rig", scenegraph.KindRig),
		camera:    camera,
	}
}

func (f *FreeLook) Node() *scenegraph.Node { return f.node }

// Update moves the camera along its own heading. Speed is in units per
// second, TurnSpeed in radians per tick.
func (f *FreeLook) Update(in Input, dt float64) {
	yaw := f.camera.RotationY()
	forward := mgl64.Vec3{math.Sin(yaw), 0, -math.Cos(yaw)}
	right := mgl64.Vec3{math.Cos(yaw), 0, math.Sin(yaw)}

	var move mgl64.Vec3
	if in.Pressed(KeyLookForward) {
		move = move.Add(forward)
	}
	if in.Pressed(KeyLookBack) {
		move = move.Sub(forward)
	}
	if in.Pressed(KeyLookRight) {
		move = move.Add(right)
	}
	if in.Pressed(KeyLookLeft) {
		move = move.Sub(right)
	}
	if in.Pressed(KeyLookUp) {
		move = move.Add(mgl64.Vec3{0, 1, 0})
	}
	if in.Pressed(KeyLookDown) {
		move = move.Sub(mgl64.Vec3{0, 1, 0})
	}

	turn := 0.0
	if in.Pressed(KeyLookTurnLeft) {
		turn -= f.TurnSpeed
	}
	if in.Pressed(KeyLookTurnRight) {
		turn += f.TurnSpeed
	}

	if move.Len() > 0 {
		f.camera.SetPosition(f.camera.Position().Add(move.Normalize().Mul(f.Speed * dt)))
	}
	if turn != 0 {
		f.camera.SetRotationY(yaw + turn)
	}
	f.node.SetPosition(f.camera.Position())
	f.node.SetRotationY(f.camera.RotationY())
}
