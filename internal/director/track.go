package director

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/choreo/internal/clock"
)

// Aimer is the camera surface a Track drives.
type Aimer interface {
	SetPosition(p mgl64.Vec3)
	LookAt(target mgl64.Vec3)
	Position() mgl64.Vec3
}

// Track plays camera keyframes with the same duration gating as Path.
// Shots are hard cuts: entering a keyframe jumps straight to its Start.
type Track struct {
	clock     *clock.Clock
	camera    Aimer
	keyframes []CameraKeyframe

	// Subject reports the actor position for look-at shots.
	Subject func() (mgl64.Vec3, bool)
	// LookHeight is added to the subject position every tick.
	LookHeight float64
	// EntryLookHeight is used on the tick a keyframe starts.
	EntryLookHeight float64

	index    int
	start    float64
	started  bool
	done     bool
	disabled bool
}

func NewTrack(clk *clock.Clock, camera Aimer, keyframes []CameraKeyframe) *Track {
	kfs := make([]CameraKeyframe, len(keyframes))
	copy(kfs, keyframes)
	return &Track{
		clock:           clk,
		camera:          camera,
		keyframes:       kfs,
		LookHeight:      0.4,
		EntryLookHeight: 0.8,
	}
}

// Start cuts to the first keyframe.
func (t *Track) Start() {
	t.index = 0
	t.start = t.clock.Now()
	t.started = true
	t.done = len(t.keyframes) == 0
	if t.disabled || t.done {
		return
	}
	t.enter(0)
}

// Update poses the camera for the current timeline.
func (t *Track) Update() {
	if !t.started {
		t.Start()
	}
	if t.disabled || t.done {
		return
	}

	kf := t.keyframes[t.index]
	elapsed := t.clock.Now() - t.start
	if elapsed >= kf.Duration {
		if t.index == len(t.keyframes)-1 {
			t.done = true
			log.Printf("[*] [camera] track finished")
			return
		}
		t.index++
		t.start += kf.Duration
		t.enter(t.index)
		return
	}

	t.camera.SetPosition(SampleKeyframe(kf, elapsed/kf.Duration))
	t.orient(kf, t.LookHeight)
}

func (t *Track) enter(i int) {
	kf := t.keyframes[i]
	if kf.Description != "" {
		log.Printf("[*] [camera] keyframe %d: %s", i, kf.Description)
	}
	t.camera.SetPosition(kf.Start)
	t.orient(kf, t.EntryLookHeight)
}

func (t *Track) orient(kf CameraKeyframe, height float64) {
	if kf.LookAtActor && t.Subject != nil {
		if pos, ok := t.Subject(); ok {
			t.camera.LookAt(pos.Add(mgl64.Vec3{0, height, 0}))
			return
		}
	}
	p := t.camera.Position()
	t.camera.LookAt(p.Add(mgl64.Vec3{math.Sin(kf.Rotation), 0, -math.Cos(kf.Rotation)}))
}

// Disable stops the track from touching the camera, e.g. while free-look
// owns it.
func (t *Track) Disable() { t.disabled = true }

func (t *Track) Enable() { t.disabled = false }

func (t *Track) Disabled() bool { return t.disabled }

func (t *Track) Done() bool { return t.done }

func (t *Track) Index() int { return t.index }

func (t *Track) Len() int { return len(t.keyframes) }
