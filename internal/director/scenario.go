package director

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/choreo/internal/motion"
)

// Script is a complete production: the assets it needs and its scenes in
// playback order.
type Script struct {
	Version string        `yaml:"version"`
	Assets  Assets        `yaml:"assets"`
	Scenes  []SceneScript `yaml:"scenes"`
}

// Assets maps clip and prop names to files relative to Root.
type Assets struct {
	Root  string            `yaml:"root,omitempty"`
	Clips map[string]string `yaml:"clips,omitempty"`
	Props map[string]string `yaml:"props,omitempty"`
}

type SceneKind string

const (
	KindScripted  SceneKind = "scripted"
	KindInterlude SceneKind = "interlude"
)

// SceneScript describes one scene. Interludes only use Name, Duration,
// SkipKey, Background and the audio cues.
type SceneScript struct {
	Name         string            `yaml:"name"`
	Kind         SceneKind         `yaml:"kind,omitempty"`
	Duration     float64           `yaml:"duration,omitempty"`
	SkipKey      string            `yaml:"skip_key,omitempty"`
	Background   string            `yaml:"background,omitempty"`
	Entry        *motion.Transform `yaml:"entry,omitempty"`
	InitialState string            `yaml:"initial_state,omitempty"`
	LookAtHeight float64           `yaml:"look_at_height,omitempty"`
	States       []StateSpec       `yaml:"states,omitempty"`
	Waypoints    []Waypoint        `yaml:"waypoints,omitempty"`
	Camera       []CameraKeyframe  `yaml:"camera,omitempty"`
	Props        []PropPlacement   `yaml:"props,omitempty"`
	Music        []MusicCue        `yaml:"music,omitempty"`
	Sounds       []SoundCue        `yaml:"sounds,omitempty"`
}

type MovementType string

const (
	MoveStatic   MovementType = "static"
	MoveTeleport MovementType = "teleport"
	MoveSmooth   MovementType = "smooth"
)

// Waypoint is one scripted actor pose held for Duration seconds.
type Waypoint struct {
	Position    mgl64.Vec3   `yaml:"position"`
	Rotation    float64      `yaml:"rotation"`
	Animation   string       `yaml:"animation,omitempty"`
	Duration    float64      `yaml:"duration"`
	Movement    MovementType `yaml:"movement"`
	AutoFace    bool         `yaml:"auto_face,omitempty"`
	Description string       `yaml:"description,omitempty"`
}

func (w Waypoint) Pose() motion.Transform {
	return motion.Transform{Position: w.Position, Rotation: w.Rotation}
}

type CameraMovement string

const (
	CameraStatic         CameraMovement = "static"
	CameraSmoothApproach CameraMovement = "smooth_approach"
	CameraSmoothZoomOut  CameraMovement = "smooth_zoom_out"
)

// CameraKeyframe is one camera shot. Smooth shots ease from Start to End.
type CameraKeyframe struct {
	Start       mgl64.Vec3     `yaml:"position_start"`
	End         mgl64.Vec3     `yaml:"position_end"`
	Rotation    float64        `yaml:"rotation"`
	Duration    float64        `yaml:"duration"`
	Movement    CameraMovement `yaml:"movement"`
	LookAtActor bool           `yaml:"look_at_actor,omitempty"`
	Description string         `yaml:"description,omitempty"`
}

// StateSpec binds an animation state to a clip.
type StateSpec struct {
	Name          string  `yaml:"name"`
	Clip          string  `yaml:"clip"`
	TicksPerFrame int     `yaml:"ticks_per_frame"`
	Mode          string  `yaml:"mode"`
	LoopFrom      *int    `yaml:"loop_from,omitempty"`
	Hold          float64 `yaml:"hold,omitempty"`
}

type PropPlacement struct {
	Name     string     `yaml:"name"`
	Position mgl64.Vec3 `yaml:"position"`
	Rotation float64    `yaml:"rotation,omitempty"`
}

// MusicCue plays Music while the scene timeline is in [Start, End).
type MusicCue struct {
	Start  float64 `yaml:"start"`
	End    float64 `yaml:"end"`
	Music  string  `yaml:"music"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop,omitempty"`
	FadeIn bool    `yaml:"fade_in,omitempty"`
}

// SoundCue plays Sound once when the timeline passes At.
type SoundCue struct {
	At     float64 `yaml:"at"`
	Sound  string  `yaml:"sound"`
	Volume float64 `yaml:"volume"`
}

// PathDuration is the sum of the waypoint durations.
func (s *SceneScript) PathDuration() float64 {
	total := 0.0
	for _, w := range s.Waypoints {
		total += w.Duration
	}
	return total
}

// TrackDuration is the sum of the camera keyframe durations.
func (s *SceneScript) TrackDuration() float64 {
	total := 0.0
	for _, k := range s.Camera {
		total += k.Duration
	}
	return total
}
