package scenegraph

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var up = mgl64.Vec3{0, 1, 0}

// Camera is the world camera. It keeps its own view matrix so that the
// debug renderer and tests can read back the orientation that LookAt
// produced.
type Camera struct {
	name     string
	position mgl64.Vec3
	target   mgl64.Vec3
	yaw      float64
	pitch    float64
	view     mgl64.Mat4
}

func NewCamera(name string) *Camera {
	c := &Camera{name: name}
	c.SetRotationY(0)
	return c
}

func (c *Camera) Name() string { return c.name }

func (c *Camera) Position() mgl64.Vec3 { return c.position }

// SetPosition moves the camera without changing its orientation.
func (c *Camera) SetPosition(p mgl64.Vec3) {
	c.target = c.target.Add(p.Sub(c.position))
	c.position = p
	c.LookAt(c.target)
}

// LookAt aims the camera at target. Looking at its own position or straight
// up or down keeps the previous yaw.
func (c *Camera) LookAt(target mgl64.Vec3) {
	c.target = target
	d := target.Sub(c.position)
	horizontal := math.Hypot(d.X(), d.Z())
	if horizontal < 1e-9 {
		if math.Abs(d.Y()) > 1e-9 {
			// Straight up or down: the old heading becomes the up vector.
			c.pitch = math.Copysign(math.Pi/2, d.Y())
			heading := mgl64.Vec3{math.Sin(c.yaw), 0, -math.Cos(c.yaw)}
			c.view = mgl64.LookAtV(c.position, target, heading.Mul(-math.Copysign(1, d.Y())))
		}
		return
	}
	c.yaw = math.Atan2(d.X(), -d.Z())
	c.pitch = math.Atan2(d.Y(), horizontal)
	c.view = mgl64.LookAtV(c.position, target, up)
}

// SetRotationY points the camera along yaw on the horizontal plane.
func (c *Camera) SetRotationY(yaw float64) {
	c.LookAt(c.position.Add(mgl64.Vec3{math.Sin(yaw), 0, -math.Cos(yaw)}))
}

func (c *Camera) RotationY() float64 { return c.yaw }

func (c *Camera) Pitch() float64 { return c.pitch }

func (c *Camera) Target() mgl64.Vec3 { return c.target }

func (c *Camera) View() mgl64.Mat4 { return c.view }
