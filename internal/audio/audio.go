// Package audio keeps background music and one-shot sounds in step with a
// scene timeline. Playback itself is behind Service so scenes can run
// without a sound device.
package audio

import "log"

// Service plays named music tracks and sound effects.
type Service interface {
	PlayMusic(name string, volume float64, loop bool, fadeIn float64) bool
	StopMusic(fadeOut float64)
	PauseMusic()
	ResumeMusic()
	PlaySound(name string, volume float64) bool
	// Update advances fades by dt seconds.
	Update(dt float64)
}

// Silent is a Service that only logs. It is used in headless runs.
type Silent struct {
	Verbose bool
}

func (s *Silent) PlayMusic(name string, volume float64, loop bool, fadeIn float64) bool {
	if s.Verbose {
		log.Printf("[*] [audio] music %s (volume %.2f, loop %v, fade %.1fs)", name, volume, loop, fadeIn)
	}
	return true
}

func (s *Silent) StopMusic(fadeOut float64) {
	if s.Verbose {
		log.Printf("[*] [audio] music stop (fade %.1fs)", fadeOut)
	}
}

func (s *Silent) PauseMusic() {}

func (s *Silent) ResumeMusic() {}

func (s *Silent) PlaySound(name string, volume float64) bool {
	if s.Verbose {
		log.Printf("[*] [audio] sound %s (volume %.2f)", name, volume)
	}
	return true
}

func (s *Silent) Update(dt float64) {}
