package engine

import (
	"log"

	"github.com/ivlev/choreo/internal/director"
)

// BuildScenes turns a validated script into playable scenes.
func BuildScenes(script *director.Script) []Scene {
	scenes := make([]Scene, 0, len(script.Scenes))
	for _, sc := range script.Scenes {
		switch sc.Kind {
		case director.KindInterlude:
			scenes = append(scenes, NewInterlude(sc))
		case director.KindScripted, "":
			scenes = append(scenes, NewScriptedScene(sc))
		default:
			log.Printf("[!] Scene %q has unknown kind %q, skipping", sc.Name, sc.Kind)
		}
	}
	return scenes
}
