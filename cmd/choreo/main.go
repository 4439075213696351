package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ivlev/choreo/internal/animation"
	"github.com/ivlev/choreo/internal/audio"
	"github.com/ivlev/choreo/internal/config"
	"github.com/ivlev/choreo/internal/director"
	"github.com/ivlev/choreo/internal/engine"
	"github.com/ivlev/choreo/internal/player"
	"github.com/ivlev/choreo/internal/progress"
	"github.com/ivlev/choreo/internal/system"
)

var buildVersion = "dev"

func main() {
	system.InitResourceLimits()

	cfg := config.Default()
	cfg.BuildVersion = buildVersion

	configPtr := flag.String("config", "", "YAML config file applied before the flags")
	scriptPtr := flag.String("script", "", "Scene script (default: newest script in -scripts-dir)")
	scriptsDirPtr := flag.String("scripts-dir", cfg.ScriptsDir, "Directory searched for scripts")
	assetsPtr := flag.String("assets", cfg.AssetRoot, "Asset root for clips, props and audio")
	widthPtr := flag.Int("width", cfg.Width, "Window width")
	heightPtr := flag.Int("height", cfg.Height, "Window height")
	tpsPtr := flag.Int("tps", cfg.TPS, "Updates per second")
	maxDeltaPtr := flag.Float64("max-delta", cfg.MaxDelta, "Largest frame step in seconds")
	timeScalePtr := flag.Float64("time-scale", cfg.TimeScale, "Scene clock speed")
	transitionPtr := flag.Float64("transition", cfg.TransitionDuration, "Scene transition length in seconds")
	coverPtr := flag.String("cover", cfg.CoverColor, "Transition cover colour name")
	freeCameraPtr := flag.Bool("free-camera", cfg.FreeCamera, "Free-look camera and manual actor control")
	startPtr := flag.Int("start", cfg.StartScene, "Scene index to start from")
	resumePtr := flag.Bool("resume", cfg.Resume, "Start from the last scene reached with this script")
	watchPtr := flag.Bool("watch", cfg.Watch, "Reload the script when it changes")
	statsPtr := flag.Bool("stats", cfg.ShowStats, "Print the performance report at exit")
	headlessPtr := flag.Bool("headless", cfg.Headless, "Run without a window")
	framesPtr := flag.Int("frames", cfg.HeadlessFrames, "Frame limit for headless runs (0: until done)")
	workersPtr := flag.Int("workers", cfg.Workers, "Asset loader workers")
	generatePtr := flag.Bool("generate-camera", false, "Write a copy of the script with generated camera coverage and exit")

	flag.Parse()

	if *configPtr != "" {
		if err := config.LoadFile(*configPtr, cfg); err != nil {
			log.Fatalf("[-] Config error: %v", err)
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "script":
			cfg.ScriptPath = *scriptPtr
		case "scripts-dir":
			cfg.ScriptsDir = *scriptsDirPtr
		case "assets":
			cfg.AssetRoot = *assetsPtr
		case "width":
			cfg.Width = *widthPtr
		case "height":
			cfg.Height = *heightPtr
		case "tps":
			cfg.TPS = *tpsPtr
		case "max-delta":
			cfg.MaxDelta = *maxDeltaPtr
		case "time-scale":
			cfg.TimeScale = *timeScalePtr
		case "transition":
			cfg.TransitionDuration = *transitionPtr
		case "cover":
			cfg.CoverColor = *coverPtr
		case "free-camera":
			cfg.FreeCamera = *freeCameraPtr
		case "start":
			cfg.StartScene = *startPtr
		case "resume":
			cfg.Resume = *resumePtr
		case "watch":
			cfg.Watch = *watchPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		case "headless":
			cfg.Headless = *headlessPtr
		case "frames":
			cfg.HeadlessFrames = *framesPtr
		case "workers":
			cfg.Workers = *workersPtr
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Invalid configuration:\n%v", err)
	}

	if cfg.ScriptPath == "" {
		latest, err := director.FindLatestScript(cfg.ScriptsDir)
		if err != nil {
			log.Fatalf("[-] %v. Put a script into %s/", err, cfg.ScriptsDir)
		}
		cfg.ScriptPath = latest
		fmt.Printf("[*] Selected script: %s\n", cfg.ScriptPath)
	}

	script, err := director.ReadScript(cfg.ScriptPath)
	if err != nil {
		log.Fatalf("[-] Script error: %v", err)
	}

	if *generatePtr {
		generateCamera(script, cfg.ScriptsDir)
		return
	}

	assetRoot := cfg.AssetRoot
	if script.Assets.Root != "" {
		assetRoot = script.Assets.Root
	}
	loader := &animation.Loader{Root: assetRoot, Workers: cfg.Workers}
	lib, err := loader.Load(context.Background(), script.Assets.Clips, script.Assets.Props)
	if err != nil {
		log.Fatalf("[-] Asset error: %v", err)
	}

	scenes := engine.BuildScenes(script)
	if len(scenes) == 0 {
		log.Fatalf("[-] Script %s has no playable scenes", cfg.ScriptPath)
	}

	store := progress.Open("choreo")
	first := cfg.StartScene
	if cfg.Resume {
		if idx, ok, err := store.Load(cfg.ScriptPath); err != nil {
			log.Printf("[!] Could not read progress: %v", err)
		} else if ok {
			first = idx
			fmt.Printf("[*] Resuming at scene %d\n", idx)
		}
	}

	var svc audio.Service
	backdrop := &player.Backdrop{}
	if cfg.Headless {
		svc = &audio.Silent{Verbose: true}
	} else {
		svc = player.NewSound(filepath.Join(assetRoot, "audio"))
	}

	prod := engine.NewProduction(cfg, lib, svc, nil, backdrop)
	prod.OnSceneStart = func(i int, s engine.Scene) {
		if err := store.Save(cfg.ScriptPath, i, s.Name()); err != nil {
			log.Printf("[!] Could not save progress: %v", err)
		}
	}

	if cfg.Headless {
		runHeadless(prod, scenes, first)
	} else {
		prod.Input = player.NewKeyboard()
		pl := player.New(prod, backdrop, cfg.ScriptPath)
		if cfg.Watch {
			w, err := system.NewWatcher(filepath.Dir(cfg.ScriptPath))
			if err != nil {
				log.Printf("[!] Hot reload disabled: %v", err)
			} else {
				defer w.Close()
				pl.Watch(w)
				pl.ScriptPath = filepath.Clean(cfg.ScriptPath)
				fmt.Printf("[*] Watching %s\n", cfg.ScriptPath)
			}
		}
		prod.Start(scenes, first)
		if err := pl.Run(); err != nil {
			log.Fatalf("[-] Player error: %v", err)
		}
	}

	prod.Report(cfg.ScriptPath)
	fmt.Printf("[+] Done: %d frames, %.2fs of timeline\n", prod.Frames(), prod.Elapsed())
}

func runHeadless(prod *engine.Production, scenes []engine.Scene, first int) {
	dt := 1.0 / float64(prod.Config.TPS)
	prod.Start(scenes, first)
	for !prod.Done() {
		if prod.Config.HeadlessFrames > 0 && prod.Frames() >= prod.Config.HeadlessFrames {
			fmt.Printf("[*] Frame limit reached: %s\n", prod.Status())
			break
		}
		prod.Update(dt)
	}
}

func generateCamera(script *director.Script, dir string) {
	n, err := director.NewDirector().GenerateScript(script)
	if err != nil {
		log.Fatalf("[-] Camera generation failed: %v", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("[-] %v", err)
	}
	out := director.GenerateScriptPath(dir)
	if err := director.WriteScript(script, out); err != nil {
		log.Fatalf("[-] %v", err)
	}
	fmt.Printf("[+] Camera coverage for %d scenes written to %s\n", n, out)
}
