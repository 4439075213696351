package animation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/choreo/internal/motion"
	"github.com/ivlev/choreo/internal/scenegraph"
)

func makeClip(name string, n int) []scenegraph.Object {
	frames := make([]scenegraph.Object, n)
	for i := range frames {
		frames[i] = scenegraph.NewNode(fmt.Sprintf("%s_%d", name, i), scenegraph.KindPose)
	}
	return frames
}

type fixture struct {
	graph *scenegraph.Graph
	actor *motion.Actor
	lib   *Library
	stage *Stage
}

func newFixture() *fixture {
	f := &fixture{
		graph: scenegraph.NewGraph(),
		actor: motion.NewActor(motion.Transform{Position: mgl64.Vec3{1, 0, 2}, Rotation: 0.5}),
		lib:   NewLibrary(),
	}
	f.lib.AddClip("walk", makeClip("walk", 4))
	f.lib.AddClip("stand", makeClip("stand", 3))
	f.lib.AddClip("sleep", makeClip("sleep", 6))
	f.lib.AddClip("empty", nil)
	f.stage = NewStage(f.graph, f.actor)
	return f
}

func (f *fixture) attachedPoses() int {
	n := 0
	for _, c := range f.graph.Children() {
		if node, ok := c.(*scenegraph.Node); ok && node.Kind == scenegraph.KindPose {
			n++
		}
	}
	return n
}

func TestCyclicClipWraps(t *testing.T) {
	f := newFixture()
	m := NewMachine(f.lib, f.stage, []State{{Name: "WALKING", Clip: "walk", TicksPerFrame: 2, Mode: Cyclic}})
	m.Transition("WALKING")

	var seen []int
	for i := 0; i < 10; i++ {
		m.Update(0.016)
		seen = append(seen, m.Frame())
		if n := f.attachedPoses(); n != 1 {
			t.Fatalf("tick %d: %d pose frames attached", i, n)
		}
	}

	want := []int{0, 1, 1, 2, 2, 3, 3, 0, 0, 1}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected frames %v, got %v", want, seen)
		}
	}
}

func TestFiniteClipHoldsLastFrame(t *testing.T) {
	f := newFixture()
	m := NewMachine(f.lib, f.stage, []State{{Name: "STANDING", Clip: "stand", TicksPerFrame: 1, Mode: Finite}})
	m.Transition("STANDING")

	for i := 0; i < 10; i++ {
		m.Update(0.1)
	}
	if m.Frame() != 2 {
		t.Errorf("expected to hold the last frame, got %d", m.Frame())
	}
}

func TestFiniteClipLoopsFromFrame(t *testing.T) {
	f := newFixture()
	m := NewMachine(f.lib, f.stage, []State{{Name: "SLEEPING", Clip: "sleep", TicksPerFrame: 1, Mode: Finite, Loops: true, LoopFrom: 4}})
	m.Transition("SLEEPING")

	var seen []int
	for i := 0; i < 9; i++ {
		m.Update(0.1)
		seen = append(seen, m.Frame())
	}
	want := []int{1, 2, 3, 4, 5, 4, 5, 4, 5}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected frames %v, got %v", want, seen)
		}
	}
}

func TestHoldKeepsFirstFrame(t *testing.T) {
	f := newFixture()
	m := NewMachine(f.lib, f.stage, []State{{Name: "STANDING", Clip: "stand", TicksPerFrame: 1, Mode: Finite, Hold: 1.0}})
	m.Transition("STANDING")

	for i := 0; i < 9; i++ {
		m.Update(0.1)
	}
	if m.Frame() != 0 {
		t.Fatalf("expected frame 0 during the hold, got %d", m.Frame())
	}
	m.Update(0.2)
	if m.Frame() != 1 {
		t.Errorf("expected playback after the hold, got %d", m.Frame())
	}
}

func TestTransitionResetsAndPoses(t *testing.T) {
	f := newFixture()
	m := NewMachine(f.lib, f.stage, []State{
		{Name: "WALKING", Clip: "walk", TicksPerFrame: 1, Mode: Cyclic},
		{Name: "IDLE", Clip: "stand", TicksPerFrame: 1, Mode: Cyclic},
	})
	m.Transition("WALKING")
	m.Update(0.1)
	m.Update(0.1)

	f.actor.SetTransform(motion.Transform{Position: mgl64.Vec3{5, 0, 5}, Rotation: 1.0})
	if !m.Transition("IDLE") {
		t.Fatal("expected the transition to happen")
	}
	if m.Frame() != 0 || m.State() != "IDLE" {
		t.Errorf("expected IDLE frame 0, got %s frame %d", m.State(), m.Frame())
	}

	pose := f.actor.Pose()
	if pose == nil || pose.Name() != "stand_0" {
		t.Fatalf("expected stand_0 on screen, got %v", pose)
	}
	if pose.Position() != (mgl64.Vec3{5, 0, 5}) || pose.RotationY() != 1.0 {
		t.Errorf("new frame was not posed at the actor transform")
	}
	if f.attachedPoses() != 1 {
		t.Errorf("expected exactly one attached frame, got %d", f.attachedPoses())
	}

	if m.Transition("IDLE") {
		t.Error("re-entering the same state should be a no-op")
	}
	if m.Transition("DANCING") {
		t.Error("unknown states must be rejected")
	}
}

func TestMissingClipDegrades(t *testing.T) {
	f := newFixture()
	m := NewMachine(f.lib, f.stage, []State{
		{Name: "WALKING", Clip: "walk", TicksPerFrame: 1},
		{Name: "GHOST", Clip: "nope", TicksPerFrame: 1},
		{Name: "BLANK", Clip: "empty", TicksPerFrame: 1},
	})
	m.Transition("WALKING")
	shown := f.actor.Pose()

	for _, name := range []string{"GHOST", "BLANK"} {
		m.Transition(name)
		for i := 0; i < 3; i++ {
			m.Update(0.1)
		}
		if f.actor.Pose() != shown {
			t.Errorf("%s: the last pose should stay on screen", name)
		}
	}
}

func TestStageSwapWhenAlreadyDetached(t *testing.T) {
	f := newFixture()
	frames, _ := f.lib.Clip("walk")

	f.stage.Swap(frames[0])
	f.graph.Remove(frames[0])
	if !f.stage.Swap(frames[1]) {
		t.Fatal("swap should succeed when the old frame is gone")
	}
	if f.attachedPoses() != 1 || !f.graph.Contains(frames[1]) {
		t.Error("expected only the new frame attached")
	}

	if f.stage.Swap(frames[1]) {
		t.Error("swapping to the displayed frame should be a no-op")
	}

	f.stage.Clear()
	if f.actor.Present() || f.attachedPoses() != 0 {
		t.Error("clear should detach the displayed frame")
	}
}

func TestLoaderLoadsClipsInOrder(t *testing.T) {
	root := t.TempDir()
	walkDir := filepath.Join(root, "human", "walk")
	os.MkdirAll(walkDir, 0755)
	for _, n := range []int{10, 2, 1, 3} {
		os.WriteFile(filepath.Join(walkDir, fmt.Sprintf("walk%d.egg", n)), []byte("frame"), 0644)
	}
	os.WriteFile(filepath.Join(root, "room.obj"), []byte("o room"), 0644)

	loader := &Loader{Root: root, Workers: 2}
	lib, err := loader.Load(context.Background(),
		map[string]string{"walk": "human/walk", "missing": "human/nothing"},
		map[string]string{"room": "room.obj", "lamp": "lamp.obj"},
	)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	frames, ok := lib.Clip("walk")
	if !ok || len(frames) != 4 {
		t.Fatalf("expected 4 walk frames, got %d", len(frames))
	}
	want := []string{"walk1.egg", "walk2.egg", "walk3.egg", "walk10.egg"}
	for i, w := range want {
		node := frames[i].(*scenegraph.Node)
		if filepath.Base(node.Source) != w {
			t.Errorf("frame %d: expected %s, got %s", i, w, node.Source)
		}
	}

	if _, ok := lib.Clip("missing"); ok {
		t.Error("missing clips should be skipped")
	}
	if _, ok := lib.Prop("room"); !ok {
		t.Error("expected the room prop")
	}
	if _, ok := lib.Prop("lamp"); ok {
		t.Error("missing props should be skipped")
	}
}
