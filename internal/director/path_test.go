package director

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/choreo/internal/clock"
	"github.com/ivlev/choreo/internal/motion"
	"github.com/ivlev/choreo/internal/scenegraph"
)

func newPresentActor() *motion.Actor {
	a := motion.NewActor(motion.Transform{})
	a.SetPose(scenegraph.NewNode("pose", scenegraph.KindPose))
	return a
}

func TestPathStaticThenSmooth(t *testing.T) {
	clk := clock.New(1.0, 1.0)
	actor := newPresentActor()
	path := NewPath(clk, actor, []Waypoint{
		{Position: mgl64.Vec3{0, 0, 0}, Rotation: 0, Duration: 2, Movement: MoveStatic},
		{Position: mgl64.Vec3{10, 0, 0}, Rotation: 0, Duration: 4, Movement: MoveSmooth, AutoFace: true},
	})
	completions := 0
	path.OnComplete = func() { completions++ }
	path.Start()

	wantX := []float64{0, 0, 2.5, 5, 7.5, 10, 10, 10}
	for tick, want := range wantX {
		clk.Tick(1.0)
		path.Advance(1.0)

		got := actor.Transform()
		if math.Abs(got.Position.X()-want) > 1e-9 || got.Position.Y() != 0 || got.Position.Z() != 0 {
			t.Errorf("tick %d: expected x=%.1f, got %v", tick+1, want, got.Position)
		}
		t.Logf("tick %d: pos=%v rot=%.3f", tick+1, got.Position, got.Rotation)
	}

	if actor.Transform().Position != (mgl64.Vec3{10, 0, 0}) {
		t.Errorf("expected exact landing, got %v", actor.Transform().Position)
	}
	if actor.Transform().Rotation != 0 {
		t.Errorf("expected final rotation 0, got %f", actor.Transform().Rotation)
	}
	if completions != 1 {
		t.Errorf("expected path complete once, got %d", completions)
	}
	if !path.Complete() {
		t.Error("path should report complete")
	}
}

func TestPathCommitsExactTarget(t *testing.T) {
	clk := clock.New(1.0, 1.0)
	actor := newPresentActor()
	target := mgl64.Vec3{1, 0, 2}
	path := NewPath(clk, actor, []Waypoint{
		{Position: mgl64.Vec3{}, Duration: 0.5, Movement: MoveStatic},
		{Position: target, Rotation: 1.0, Duration: 1.0, Movement: MoveSmooth},
		{Position: target, Rotation: 1.0, Duration: 1.0, Movement: MoveStatic},
	})
	path.Start()

	for path.Index() < 2 {
		clk.Tick(0.3)
		path.Advance(0.3)
		if clk.Now() > 5 {
			t.Fatal("path never reached the third waypoint")
		}
	}

	got := actor.Transform()
	if got.Position != target {
		t.Errorf("expected exact position %v, got %v", target, got.Position)
	}
	if got.Rotation != 1.0 {
		t.Errorf("expected exact rotation 1.0, got %f", got.Rotation)
	}
	if actor.Moving() {
		t.Error("movement should be cleared after commit")
	}
}

func TestPathTeleportsWithoutActor(t *testing.T) {
	clk := clock.New(1.0, 1.0)
	actor := motion.NewActor(motion.Transform{})
	path := NewPath(clk, actor, []Waypoint{
		{Position: mgl64.Vec3{4, 0, 4}, Rotation: 0.5, Duration: 3, Movement: MoveSmooth, AutoFace: true},
	})
	path.Start()

	if actor.Transform().Position != (mgl64.Vec3{4, 0, 4}) {
		t.Errorf("expected teleport to target, got %v", actor.Transform().Position)
	}

	for i := 0; i < 3; i++ {
		clk.Tick(1.0)
		path.Advance(1.0)
	}
	if !path.Complete() {
		t.Error("a degraded path must still complete")
	}
}

func TestPathEnterAndAppend(t *testing.T) {
	clk := clock.New(1.0, 1.0)
	actor := newPresentActor()
	path := NewPath(clk, actor, []Waypoint{
		{Position: mgl64.Vec3{}, Duration: 1, Movement: MoveStatic, Animation: "STANDING"},
	})

	var entered []string
	path.OnEnter = func(i int, wp Waypoint) { entered = append(entered, wp.Animation) }
	path.Start()

	clk.Tick(1.0)
	path.Advance(1.0)
	if !path.Complete() {
		t.Fatal("expected completion after the only waypoint")
	}

	path.Append(Waypoint{Position: mgl64.Vec3{0, 0, -3}, Duration: 1, Movement: MoveTeleport, Animation: "IDLE"})
	if path.Complete() {
		t.Error("appending should resume the path")
	}
	if actor.Transform().Position != (mgl64.Vec3{0, 0, -3}) {
		t.Errorf("teleport waypoint should apply on entry, got %v", actor.Transform().Position)
	}

	if len(entered) != 2 || entered[0] != "STANDING" || entered[1] != "IDLE" {
		t.Errorf("unexpected enter sequence %v", entered)
	}
}

func TestEmptyPathCompletes(t *testing.T) {
	clk := clock.New(1.0, 1.0)
	path := NewPath(clk, newPresentActor(), nil)
	calls := 0
	path.OnComplete = func() { calls++ }

	path.Advance(0.1)
	path.Advance(0.1)
	if !path.Complete() || calls != 1 {
		t.Errorf("expected a single completion, complete=%v calls=%d", path.Complete(), calls)
	}
}

func TestPathKeepsScheduleAcrossWaypoints(t *testing.T) {
	clk := clock.New(1.0, 1.0)
	actor := newPresentActor()
	path := NewPath(clk, actor, []Waypoint{
		{Position: mgl64.Vec3{}, Duration: 1, Movement: MoveStatic},
		{Position: mgl64.Vec3{1, 0, 0}, Duration: 1, Movement: MoveStatic},
	})
	path.Start()

	// 0.7, 1.4, 2.1: the overshoot past the first waypoint counts toward
	// the second, so the path ends on the third tick.
	for tick := 1; tick <= 3; tick++ {
		clk.Tick(0.7)
		path.Advance(0.7)
		if tick < 3 && path.Complete() {
			t.Fatalf("path complete early at tick %d (%.2fs)", tick, clk.Now())
		}
	}
	if !path.Complete() {
		t.Errorf("path should be complete at %.2fs", clk.Now())
	}
}

func TestPathCommitStopsFreeMovement(t *testing.T) {
	clk := clock.New(1.0, 1.0)
	actor := newPresentActor()
	wp := Waypoint{Position: mgl64.Vec3{1, 0, 1}, Rotation: 0.5, Duration: 2, Movement: MoveStatic}
	path := NewPath(clk, actor, []Waypoint{wp, {Position: mgl64.Vec3{1, 0, 1}, Rotation: 0.5, Duration: 5, Movement: MoveStatic}})
	path.Start()

	if !actor.StartMovement(motion.Request{Target: mgl64.Vec3{1, 0, 9}, Duration: 10}, motion.DriverFree) {
		t.Fatal("free movement should start")
	}
	clk.Tick(1.0)
	actor.StepMovement(1.0)
	path.Advance(1.0)
	clk.Tick(1.0)
	actor.StepMovement(1.0)
	path.Advance(1.0)

	if actor.Moving() {
		t.Error("commit should stop a movement the path did not start")
	}
	if actor.Transform() != wp.Pose() {
		t.Errorf("expected the exact waypoint pose, got %+v", actor.Transform())
	}

	clk.Tick(1.0)
	actor.StepMovement(1.0)
	path.Advance(1.0)
	if actor.Transform() != wp.Pose() {
		t.Errorf("pose changed after the commit: %+v", actor.Transform())
	}
}
