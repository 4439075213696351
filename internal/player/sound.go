package player

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/ivlev/choreo/internal/audio"
	"github.com/ivlev/choreo/internal/system"
)

const sampleRate = 48000

type fading struct {
	player *eaudio.Player
	fader  *audio.Fader
}

// Sound is the ebiten implementation of audio.Service. Names are resolved
// against Dir, with or without an extension.
type Sound struct {
	Dir string

	ctx       *eaudio.Context
	data      map[string][]byte
	music     *eaudio.Player
	musicName string
	fadeIn    *audio.Fader
	outgoing  []fading
}

func NewSound(dir string) *Sound {
	return &Sound{
		Dir:  dir,
		ctx:  eaudio.NewContext(sampleRate),
		data: make(map[string][]byte),
	}
}

func (s *Sound) PlayMusic(name string, volume float64, loop bool, fadeIn float64) bool {
	if s.music != nil && s.musicName == name && s.music.IsPlaying() {
		return true
	}
	s.StopMusic(fadeIn)

	p, err := s.newPlayer(name, loop)
	if err != nil {
		log.Printf("[!] [audio] %v", err)
		return false
	}
	s.fadeIn = audio.NewFader(0, volume, fadeIn)
	p.SetVolume(s.fadeIn.Value())
	p.Play()
	s.music = p
	s.musicName = name
	return true
}

// StopMusic fades the current track out over fadeOut seconds.
func (s *Sound) StopMusic(fadeOut float64) {
	if s.music == nil {
		return
	}
	s.outgoing = append(s.outgoing, fading{player: s.music, fader: audio.NewFader(s.music.Volume(), 0, fadeOut)})
	s.music = nil
	s.musicName = ""
	s.fadeIn = nil
}

func (s *Sound) PauseMusic() {
	if s.music != nil {
		s.music.Pause()
	}
}

func (s *Sound) ResumeMusic() {
	if s.music != nil {
		s.music.Play()
	}
}

func (s *Sound) PlaySound(name string, volume float64) bool {
	p, err := s.newPlayer(name, false)
	if err != nil {
		log.Printf("[!] [audio] %v", err)
		return false
	}
	p.SetVolume(volume)
	p.Play()
	return true
}

func (s *Sound) Update(dt float64) {
	if s.music != nil && s.fadeIn != nil && !s.fadeIn.Done() {
		v, _ := s.fadeIn.Update(dt)
		s.music.SetVolume(v)
	}

	kept := s.outgoing[:0]
	for _, f := range s.outgoing {
		v, done := f.fader.Update(dt)
		f.player.SetVolume(v)
		if done {
			f.player.Pause()
			f.player.Close()
			continue
		}
		kept = append(kept, f)
	}
	s.outgoing = kept
}

func (s *Sound) newPlayer(name string, loop bool) (*eaudio.Player, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, ok := s.data[path]
	if !ok {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
		}
		s.data[path] = data
	}

	var stream interface {
		io.ReadSeeker
		Length() int64
	}
	reader := bytes.NewReader(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, err = mp3.DecodeWithoutResampling(reader)
	case ".ogg":
		stream, err = vorbis.DecodeWithoutResampling(reader)
	case ".wav":
		stream, err = wav.DecodeWithoutResampling(reader)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if loop {
		return s.ctx.NewPlayer(eaudio.NewInfiniteLoop(stream, stream.Length()))
	}
	return s.ctx.NewPlayer(stream)
}

func (s *Sound) resolve(name string) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Dir, name)
	}
	if filepath.Ext(path) != "" {
		return path, nil
	}
	for _, ext := range system.AudioExtensions {
		if _, err := os.Stat(path + ext); err == nil {
			return path + ext, nil
		}
	}
	return "", fmt.Errorf("no audio file for %q in %s", name, s.Dir)
}
