package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/choreo/internal/system"
)

// Status is the one-line overlay shown by the player.
func (p *Production) Status() string {
	if p.done {
		return "finished"
	}
	if p.transition.Active() {
		return fmt.Sprintf("transition %.0f%%", p.transition.Progress()*100)
	}
	if p.current == nil {
		return "idle"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "scene %d/%d %s", p.index+1, len(p.scenes), p.current.Name())
	if hp, ok := p.current.(HasWaypointPath); ok && hp.Path() != nil && hp.Path().Len() > 0 {
		fmt.Fprintf(&b, " | waypoint %d/%d", hp.Path().Index()+1, hp.Path().Len())
	}
	if hc, ok := p.current.(HasCameraSystem); ok && hc.CameraTrack() != nil && hc.CameraTrack().Len() > 0 {
		if hc.CameraTrack().Disabled() {
			b.WriteString(" | free camera")
		} else {
			fmt.Fprintf(&b, " | shot %d/%d", hc.CameraTrack().Index()+1, hc.CameraTrack().Len())
		}
	}
	t := p.Actor.Transform()
	fmt.Fprintf(&b, " | actor (%.2f, %.2f, %.2f) %.2f", t.Position.X(), t.Position.Y(), t.Position.Z(), t.Rotation)
	if p.manual {
		b.WriteString(" | manual")
	}
	return b.String()
}

// Report prints the performance report and appends a line to benchmark.log
// when ShowStats is set.
func (p *Production) Report(scriptPath string) {
	if !p.Config.ShowStats {
		return
	}
	totalTime := time.Since(p.startTime)
	fps := 0.0
	if totalTime > 0 {
		fps = float64(p.frames) / totalTime.Seconds()
	}
	snap, err := system.TakeSnapshot()
	if err != nil {
		fmt.Printf("[!] Process stats unavailable: %v\n", err)
	}

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Wall Time: %.2fs\n"+
			"Timeline: %.2fs\n"+
			"Frames: %d\n"+
			"Effective FPS: %.2f\n"+
			"Process: %s\n"+
			"----------------------------\n",
		p.Config.BuildVersion, totalTime.Seconds(), p.elapsed, p.frames, fps, snap,
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Script: %s | Scenes: %d | Wall: %.2fs | Timeline: %.2fs | FPS: %.2f | RSS: %.1fMB\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(scriptPath),
		len(p.scenes),
		totalTime.Seconds(),
		p.elapsed,
		fps,
		float64(snap.RSS)/(1<<20),
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Could not write benchmark.log: %v\n", err)
	}
}
