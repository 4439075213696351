package director

import "github.com/go-gl/mathgl/mgl64"

// SampleKeyframe returns the camera position t of the way through kf,
// with t clamped to [0, 1]. Static shots stay on Start.
func SampleKeyframe(kf CameraKeyframe, t float64) mgl64.Vec3 {
	if kf.Movement == CameraStatic {
		return kf.Start
	}
	eased := easeShot(mgl64.Clamp(t, 0, 1))
	return kf.Start.Add(kf.End.Sub(kf.Start).Mul(eased))
}

// easeShot is a cubic ease-in-out: a dolly starts and stops at rest and
// crosses the midpoint of its travel at half time.
func easeShot(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2 - 2*t
	return 1 - u*u*u/2
}
