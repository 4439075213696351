package director

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestGenerateCoverage(t *testing.T) {
	director := NewDirector()

	waypoints := []Waypoint{
		{Position: mgl64.Vec3{0, 0, 0}, Duration: 0.4, Movement: MoveStatic},
		{Position: mgl64.Vec3{0, 0, 0}, Duration: 0.8, Movement: MoveStatic},
		{Position: mgl64.Vec3{6, 0, 0}, Duration: 12, Movement: MoveSmooth},
		{Position: mgl64.Vec3{6, 0, 0}, Duration: 0.5, Movement: MoveStatic},
	}

	keyframes, err := director.GenerateCoverage(waypoints)
	if err != nil {
		t.Fatalf("GenerateCoverage failed: %v", err)
	}

	total := 0.0
	for i, kf := range keyframes {
		total += kf.Duration
		if kf.Duration > director.MaxDwell+1e-9 {
			t.Errorf("keyframe %d lasts %.2fs, longer than MaxDwell", i, kf.Duration)
		}
		if !kf.LookAtActor {
			t.Errorf("keyframe %d should look at the actor", i)
		}
		t.Logf("Keyframe %d: %s %s %.2fs start=%v end=%v", i, kf.Description, kf.Movement, kf.Duration, kf.Start, kf.End)
	}

	if math.Abs(total-13.7) > 1e-9 {
		t.Errorf("coverage should last as long as the path, got %.2f", total)
	}

	// Short opening waypoints merge into one static shot, the long walk
	// splits in two and the short tail joins the walk.
	if len(keyframes) != 3 {
		t.Fatalf("expected 3 keyframes, got %d", len(keyframes))
	}
	if keyframes[0].Movement != CameraStatic {
		t.Errorf("expected static opening shot, got %s", keyframes[0].Movement)
	}
	if keyframes[1].Movement != CameraSmoothApproach || keyframes[2].Movement != CameraSmoothApproach {
		t.Errorf("expected the walk to be followed")
	}
	if !keyframes[2].End.ApproxEqualThreshold(mgl64.Vec3{6, 1.2, 2.5}, 1e-9) {
		t.Errorf("last shot should end at the final offset, got %v", keyframes[2].End)
	}
}

func TestGenerateCoverageEmpty(t *testing.T) {
	if _, err := NewDirector().GenerateCoverage(nil); err == nil {
		t.Error("expected an error for an empty path")
	}
}

func TestGenerateScript(t *testing.T) {
	script := &Script{Scenes: []SceneScript{
		{Name: "covered", Kind: KindScripted, Waypoints: []Waypoint{{Duration: 2, Movement: MoveStatic}}},
		{Name: "authored", Kind: KindScripted, Waypoints: []Waypoint{{Duration: 2, Movement: MoveStatic}},
			Camera: []CameraKeyframe{{Duration: 2, Movement: CameraStatic}}},
		{Name: "rally", Kind: KindInterlude, Duration: 30},
	}}

	changed, err := NewDirector().GenerateScript(script)
	if err != nil {
		t.Fatalf("GenerateScript failed: %v", err)
	}
	if changed != 1 {
		t.Errorf("expected one scene to change, got %d", changed)
	}
	if len(script.Scenes[0].Camera) == 0 {
		t.Error("expected coverage for the first scene")
	}
	if len(script.Scenes[1].Camera) != 1 {
		t.Error("authored camera keyframes must be left alone")
	}
}

func TestScriptWriteRead(t *testing.T) {
	loop := 4
	script := &Script{
		Version: "1.0",
		Assets:  Assets{Clips: map[string]string{"walk": "human/walk"}},
		Scenes: []SceneScript{
			{
				Name:         "bedroom",
				Kind:         KindScripted,
				InitialState: "SLEEPING",
				States: []StateSpec{
					{Name: "SLEEPING", Clip: "sleep", TicksPerFrame: 8, Mode: "finite", LoopFrom: &loop},
				},
				Waypoints: []Waypoint{
					{Position: mgl64.Vec3{1.7, 0.09, 0.5}, Rotation: -math.Pi / 2, Duration: 5, Movement: MoveTeleport, Animation: "SLEEPING"},
				},
				Camera: []CameraKeyframe{
					{Start: mgl64.Vec3{0, 2, 3}, End: mgl64.Vec3{0, 2, 3}, Duration: 5, Movement: CameraStatic, LookAtActor: true},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := WriteScript(script, path); err != nil {
		t.Fatalf("WriteScript failed: %v", err)
	}

	read, err := ReadScript(path)
	if err != nil {
		t.Fatalf("ReadScript failed: %v", err)
	}

	if read.Version != script.Version {
		t.Errorf("Version mismatch: expected %s, got %s", script.Version, read.Version)
	}
	if len(read.Scenes) != 1 {
		t.Fatalf("expected 1 scene, got %d", len(read.Scenes))
	}
	sc := read.Scenes[0]
	if sc.Waypoints[0].Position != script.Scenes[0].Waypoints[0].Position {
		t.Errorf("waypoint position mismatch: %v", sc.Waypoints[0].Position)
	}
	if sc.States[0].LoopFrom == nil || *sc.States[0].LoopFrom != 4 {
		t.Errorf("loop_from did not survive the round trip")
	}
}

func TestParseScriptDefaultsAndValidation(t *testing.T) {
	data := []byte(`
scenes:
  - name: music_room
    waypoints:
      - position: [0, 0, 0]
        duration: 2
      - position: [1, 0, 0]
        duration: 3
        movement: smooth
        auto_face: true
`)
	script, err := ParseScript(data)
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	sc := script.Scenes[0]
	if sc.Kind != KindScripted {
		t.Errorf("expected default kind scripted, got %s", sc.Kind)
	}
	if sc.Waypoints[0].Movement != MoveStatic {
		t.Errorf("expected default movement static, got %s", sc.Waypoints[0].Movement)
	}
	if sc.PathDuration() != 5 {
		t.Errorf("expected path duration 5, got %f", sc.PathDuration())
	}

	bad := []byte(`
scenes:
  - name: broken
    waypoints:
      - position: [0, 0, 0]
        duration: 0
        movement: crawl
  - name: rally
    kind: interlude
`)
	_, err = ParseScript(bad)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"duration must be positive", "unknown movement", "interlude duration"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestGenerateScriptPath(t *testing.T) {
	path := GenerateScriptPath("scripts")

	if !strings.Contains(path, "script_") {
		t.Errorf("Path should contain 'script_': %s", path)
	}
	if filepath.Dir(path) != "scripts" {
		t.Errorf("Path should be in scripts: %s", path)
	}
	t.Logf("Generated path: %s", path)
}

func TestFindLatestScript(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "script_a.yaml"),
		filepath.Join(dir, "script_b.yaml"),
		filepath.Join(dir, "script_c.yml"),
	}

	for i, f := range files {
		if err := os.WriteFile(f, []byte("scenes: []"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(f, modTime, modTime)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)

	latest, err := FindLatestScript(dir)
	if err != nil {
		t.Fatalf("FindLatestScript failed: %v", err)
	}
	if latest != files[2] {
		t.Errorf("Expected %s, got %s", files[2], latest)
	}

	if _, err := FindLatestScript(t.TempDir()); err == nil {
		t.Error("expected an error for an empty directory")
	}
}
