package engine

import (
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/choreo/internal/director"
	"github.com/ivlev/choreo/internal/motion"
)

// ResetPose is where the reset key puts the actor.
var ResetPose = motion.Transform{Position: mgl64.Vec3{1.7, 0.09, 0.5}, Rotation: -math.Pi / 2}

const captureDebounce = 1.0

// EnableManualControl hands the actor to the keyboard, optionally placing
// it first. It fails while no actor is on screen.
func (p *Production) EnableManualControl(pose *motion.Transform) bool {
	if !p.Actor.Present() {
		log.Printf("[!] Manual control needs an actor on screen")
		return false
	}
	p.Actor.StopMovement()
	if pose != nil {
		p.Actor.SetTransform(*pose)
	}
	if !p.manual {
		log.Printf("[*] Manual control on")
	}
	p.manual = true
	return true
}

func (p *Production) DisableManualControl() {
	if p.manual {
		log.Printf("[*] Manual control off")
	}
	p.manual = false
}

func (p *Production) ManualControl() bool { return p.manual }

// handleManual polls the manual-control keys. Manual control is only
// offered in free-camera mode.
func (p *Production) handleManual() {
	if !p.Config.FreeCamera {
		return
	}
	if !p.manual {
		if !p.Actor.Moving() && p.Input.Pressed(KeyEnableManual) {
			p.EnableManualControl(nil)
		}
		return
	}
	if p.Actor.Moving() {
		p.DisableManualControl()
		return
	}

	in := p.Input
	if in.Pressed(KeyDisableManual) {
		p.DisableManualControl()
		return
	}
	if in.Pressed(KeyResetPose) {
		p.Actor.SetTransform(ResetPose)
		return
	}
	if in.Pressed(KeyCapture) && (p.lastCapture < 0 || p.elapsed-p.lastCapture >= captureDebounce) {
		p.lastCapture = p.elapsed
		p.capture()
	}

	t := p.Actor.Transform()
	step := p.Config.MoveSpeed
	var d mgl64.Vec3
	if in.Pressed(KeyUp) {
		d[2] -= step
	}
	if in.Pressed(KeyDown) {
		d[2] += step
	}
	if in.Pressed(KeyLeft) {
		d[0] -= step
	}
	if in.Pressed(KeyRight) {
		d[0] += step
	}
	if in.Pressed(KeyRise) {
		d[1] += step
	}
	if in.Pressed(KeyLower) {
		d[1] -= step
	}
	turn := 0.0
	if in.Pressed(KeyTurnLeft) {
		turn += p.Config.TurnSpeed
	}
	if in.Pressed(KeyTurnRight) {
		turn -= p.Config.TurnSpeed
	}
	if d != (mgl64.Vec3{}) || turn != 0 {
		p.Actor.SetTransform(motion.Transform{Position: t.Position.Add(d), Rotation: t.Rotation + turn})
	}
}

type capturedPose struct {
	Waypoint director.Waypoint       `yaml:"waypoint"`
	Camera   director.CameraKeyframe `yaml:"camera"`
}

// CaptureSnippet renders the current actor and camera pose as a script
// fragment that can be pasted into a scene.
func (p *Production) CaptureSnippet() (string, error) {
	t := p.Actor.Transform()
	cam := p.Camera.Position()
	snippet := capturedPose{
		Waypoint: director.Waypoint{
			Position:    round3(t.Position),
			Rotation:    math.Round(t.Rotation*1000) / 1000,
			Duration:    1.0,
			Movement:    director.MoveStatic,
			Description: "captured",
		},
		Camera: director.CameraKeyframe{
			Start:       round3(cam),
			End:         round3(cam),
			Rotation:    math.Round(p.Camera.RotationY()*1000) / 1000,
			Duration:    1.0,
			Movement:    director.CameraStatic,
			Description: "captured",
		},
	}
	data, err := yaml.Marshal(snippet)
	if err != nil {
		return "", fmt.Errorf("marshal capture: %w", err)
	}
	return string(data), nil
}

func (p *Production) capture() {
	snippet, err := p.CaptureSnippet()
	if err != nil {
		log.Printf("[!] Capture failed: %v", err)
		return
	}
	log.Printf("[*] Captured pose:\n%s", snippet)
	if p.OnCapture != nil {
		p.OnCapture(snippet)
	}
}

func round3(v mgl64.Vec3) mgl64.Vec3 {
	for i := range v {
		v[i] = math.Round(v[i]*1000) / 1000
	}
	return v
}
