package director

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Director generates camera coverage for scenes that ship without
// keyframes: one look-at-actor shot per dwell window along the path.
type Director struct {
	Offset   mgl64.Vec3 // Camera position relative to the actor
	MinDwell float64    // Minimum time per shot (seconds)
	MaxDwell float64    // Maximum time per shot (seconds)
	Travel   float64    // Distance above which a shot follows the actor
}

// NewDirector creates a new Director with default settings
func NewDirector() *Director {
	return &Director{
		Offset:   mgl64.Vec3{0, 1.2, 2.5},
		MinDwell: 1.0,
		MaxDwell: 8.0,
		Travel:   0.5,
	}
}

type window struct {
	from, to mgl64.Vec3
	duration float64
}

// GenerateCoverage creates camera keyframes whose durations add up to the
// path duration.
func (d *Director) GenerateCoverage(waypoints []Waypoint) ([]CameraKeyframe, error) {
	if len(waypoints) == 0 {
		return nil, fmt.Errorf("no waypoints to cover")
	}

	windows := d.groupWaypoints(waypoints)

	var keyframes []CameraKeyframe
	for i, w := range windows {
		keyframes = append(keyframes, d.generateShots(i, w)...)
	}
	return keyframes, nil
}

// GenerateScript fills in coverage for every scripted scene that has
// waypoints but no camera keyframes and returns how many scenes changed.
func (d *Director) GenerateScript(script *Script) (int, error) {
	changed := 0
	for i := range script.Scenes {
		sc := &script.Scenes[i]
		if sc.Kind != KindScripted || len(sc.Camera) > 0 || len(sc.Waypoints) == 0 {
			continue
		}
		kfs, err := d.GenerateCoverage(sc.Waypoints)
		if err != nil {
			return changed, fmt.Errorf("scene %s: %w", sc.Name, err)
		}
		sc.Camera = kfs
		changed++
	}
	return changed, nil
}

// groupWaypoints merges consecutive waypoints until each window lasts at
// least MinDwell. A short tail joins the previous window.
func (d *Director) groupWaypoints(waypoints []Waypoint) []window {
	var windows []window
	var cur *window
	prev := waypoints[0].Position

	for _, wp := range waypoints {
		from := prev
		if wp.Movement != MoveSmooth {
			from = wp.Position
		}
		if cur == nil {
			cur = &window{from: from}
		}
		cur.to = wp.Position
		cur.duration += wp.Duration
		prev = wp.Position

		if cur.duration >= d.MinDwell {
			windows = append(windows, *cur)
			cur = nil
		}
	}

	if cur != nil {
		if len(windows) == 0 {
			windows = append(windows, *cur)
		} else {
			last := &windows[len(windows)-1]
			last.to = cur.to
			last.duration += cur.duration
		}
	}
	return windows
}

// generateShots splits a window into shots no longer than MaxDwell.
func (d *Director) generateShots(index int, w window) []CameraKeyframe {
	pieces := 1
	if d.MaxDwell > 0 && w.duration > d.MaxDwell {
		pieces = int(math.Ceil(w.duration / d.MaxDwell))
	}

	moving := w.to.Sub(w.from).Len() > d.Travel
	shots := make([]CameraKeyframe, 0, pieces)
	for k := 0; k < pieces; k++ {
		start := alongWindow(w, float64(k)/float64(pieces)).Add(d.Offset)
		end := alongWindow(w, float64(k+1)/float64(pieces)).Add(d.Offset)

		kf := CameraKeyframe{
			Start:       start,
			End:         end,
			Duration:    w.duration / float64(pieces),
			Movement:    CameraStatic,
			LookAtActor: true,
			Description: fmt.Sprintf("coverage_%d_%d", index+1, k+1),
		}
		if moving {
			kf.Movement = CameraSmoothApproach
		} else {
			kf.End = kf.Start
		}
		shots = append(shots, kf)
	}
	return shots
}

// alongWindow is the actor position a fraction f of the way through w.
func alongWindow(w window, f float64) mgl64.Vec3 {
	return w.from.Add(w.to.Sub(w.from).Mul(f))
}
