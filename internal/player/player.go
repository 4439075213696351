// Package player runs a production inside an ebiten window and draws a
// top-down debug view of the scene.
package player

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"

	"github.com/ivlev/choreo/internal/director"
	"github.com/ivlev/choreo/internal/engine"
	"github.com/ivlev/choreo/internal/scenegraph"
	"github.com/ivlev/choreo/internal/system"
)

// pixelsPerUnit is the zoom of the top-down view.
const pixelsPerUnit = 60.0

// Backdrop holds the colour the window is cleared with.
type Backdrop struct {
	current color.RGBA
}

func (b *Backdrop) Background() color.RGBA { return b.current }

func (b *Backdrop) SetBackground(c color.RGBA) { b.current = c }

// Player is the ebiten.Game driving a Production.
type Player struct {
	Production *engine.Production
	Backdrop   *Backdrop
	ScriptPath string

	watcher   *system.Watcher
	clipboard bool
	width     int
	height    int
}

func New(p *engine.Production, backdrop *Backdrop, scriptPath string) *Player {
	pl := &Player{
		Production: p,
		Backdrop:   backdrop,
		ScriptPath: scriptPath,
		width:      p.Config.Width,
		height:     p.Config.Height,
	}
	if err := clipboard.Init(); err != nil {
		log.Printf("[!] Clipboard unavailable, captures go to the log only: %v", err)
	} else {
		pl.clipboard = true
	}
	prev := p.OnCapture
	p.OnCapture = func(snippet string) {
		if prev != nil {
			prev(snippet)
		}
		if pl.clipboard {
			clipboard.Write(clipboard.FmtText, []byte(snippet))
			fmt.Println("[*] Pose copied to clipboard")
		}
	}
	return pl
}

// Watch reloads the script whenever it changes on disk.
func (pl *Player) Watch(w *system.Watcher) {
	pl.watcher = w
}

// Run opens the window and blocks until the production ends or the window
// is closed.
func (pl *Player) Run() error {
	ebiten.SetWindowSize(pl.width, pl.height)
	ebiten.SetWindowTitle("choreo")
	ebiten.SetTPS(pl.Production.Config.TPS)
	err := ebiten.RunGame(pl)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (pl *Player) Update() error {
	pl.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		pl.Production.SkipScene()
	}

	pl.Production.Update(1.0 / float64(ebiten.TPS()))
	if pl.Production.Done() {
		return ebiten.Termination
	}
	return nil
}

func (pl *Player) pollWatcher() {
	if pl.watcher == nil {
		return
	}
	select {
	case name := <-pl.watcher.Events:
		if name != pl.ScriptPath {
			return
		}
		script, err := director.ReadScript(name)
		if err != nil {
			log.Printf("[!] Reload of %s failed: %v", name, err)
			return
		}
		log.Printf("[*] Reloading %s", name)
		pl.Production.Reload(engine.BuildScenes(script))
	case err := <-pl.watcher.Errors:
		log.Printf("[!] Watch error: %v", err)
	default:
	}
}

func (pl *Player) Draw(screen *ebiten.Image) {
	screen.Fill(pl.Backdrop.Background())

	if !pl.Production.Transition().Active() {
		pl.drawGrid(screen)
		for _, obj := range pl.Production.Graph.Children() {
			pl.drawObject(screen, obj)
		}
		if a := pl.Production.Actor; a.Present() {
			t := a.Transform()
			pl.drawMarker(screen, t.Position.X(), t.Position.Z(), t.Rotation, 10, colornames.Orange)
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nTPS %.0f | FPS %.0f", pl.Production.Status(), ebiten.ActualTPS(), ebiten.ActualFPS()))
}

func (pl *Player) Layout(outsideWidth, outsideHeight int) (int, int) {
	return pl.width, pl.height
}

func (pl *Player) project(x, z float64) (float32, float32) {
	return float32(float64(pl.width)/2 + x*pixelsPerUnit), float32(float64(pl.height)/2 + z*pixelsPerUnit)
}

func (pl *Player) drawGrid(screen *ebiten.Image) {
	grid := color.RGBA{R: 60, G: 60, B: 60, A: 255}
	for i := -10; i <= 10; i++ {
		x0, z0 := pl.project(float64(i), -10)
		x1, z1 := pl.project(float64(i), 10)
		vector.StrokeLine(screen, x0, z0, x1, z1, 1, grid, false)
		x0, z0 = pl.project(-10, float64(i))
		x1, z1 = pl.project(10, float64(i))
		vector.StrokeLine(screen, x0, z0, x1, z1, 1, grid, false)
	}
}

func (pl *Player) drawObject(screen *ebiten.Image, obj scenegraph.Object) {
	pos := obj.Position()
	switch o := obj.(type) {
	case *scenegraph.Camera:
		pl.drawMarker(screen, pos.X(), pos.Z(), o.RotationY(), 6, colornames.Skyblue)
	case *scenegraph.Node:
		switch o.Kind {
		case scenegraph.KindProp:
			x, z := pl.project(pos.X(), pos.Z())
			vector.FillRect(screen, x-8, z-8, 16, 16, colornames.Olivedrab, false)
		case scenegraph.KindLight:
			x, z := pl.project(pos.X(), pos.Z())
			vector.StrokeRect(screen, x-4, z-4, 8, 8, 1, colornames.Yellow, false)
		}
	}
}

// drawMarker draws a square with a line pointing along yaw.
func (pl *Player) drawMarker(screen *ebiten.Image, wx, wz, yaw float64, size float32, clr color.Color) {
	x, z := pl.project(wx, wz)
	vector.FillRect(screen, x-size/2, z-size/2, size, size, clr, false)
	hx := x + float32(math.Sin(yaw))*size*2
	hz := z - float32(math.Cos(yaw))*size*2
	vector.StrokeLine(screen, x, z, hx, hz, 2, clr, true)
}
