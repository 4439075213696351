// Package angle holds the yaw arithmetic shared by movement and camera code.
// All angles are radians.
package angle

import "math"

const TwoPi = 2 * math.Pi

// Normalize wraps a into [-π, π]. Non-finite input yields 0.
func Normalize(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	return math.Remainder(a, TwoPi)
}

// Diff returns the shortest signed rotation taking from to to.
func Diff(from, to float64) float64 {
	return Normalize(to - from)
}

// Optimize picks the representative of target, target-2π or target+2π
// closest to start, so a linear blend from start never takes the long way.
func Optimize(start, target float64) float64 {
	best := target
	bestDist := math.Abs(target - start)
	for _, c := range [2]float64{target - TwoPi, target + TwoPi} {
		if d := math.Abs(c - start); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Heading returns the yaw facing along a displacement on the ground plane.
// Yaw 0 faces -Z and positive yaw turns towards +X.
func Heading(dx, dz float64) float64 {
	return math.Atan2(dx, -dz)
}

// Lerp blends along the shortest arc between a and b.
func Lerp(a, b, t float64) float64 {
	return a + Diff(a, b)*t
}
