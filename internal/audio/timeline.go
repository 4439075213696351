package audio

import (
	"log"
	"sort"
)

// DefaultFade is the music cross-fade length in seconds.
const DefaultFade = 2.0

// Entry plays Music while the timeline is inside [Start, End).
type Entry struct {
	Start  float64
	End    float64
	Music  string
	Volume float64
	Loop   bool
	FadeIn bool
}

// Timeline switches background music as a shared clock moves through its
// entries.
type Timeline struct {
	FadeDuration float64

	svc     Service
	entries []Entry
	current int
	paused  bool
	stopped bool
}

func NewTimeline(svc Service, entries []Entry) *Timeline {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	return &Timeline{
		FadeDuration: DefaultFade,
		svc:          svc,
		entries:      sorted,
		current:      -1,
	}
}

// Update follows the timeline to now.
func (t *Timeline) Update(now float64) {
	if t.paused || t.stopped || len(t.entries) == 0 {
		return
	}

	idx := t.find(now)
	if idx == t.current {
		return
	}

	if idx < 0 {
		log.Printf("[*] [music] %.1fs: no entry, fading out", now)
		t.svc.StopMusic(t.FadeDuration)
		t.current = -1
		return
	}

	e := t.entries[idx]
	fade := 0.0
	if e.FadeIn {
		fade = t.FadeDuration
	}
	log.Printf("[*] [music] %.1fs: %s", now, e.Music)
	if !t.svc.PlayMusic(e.Music, e.Volume, e.Loop, fade) {
		log.Printf("[!] [music] could not play %s", e.Music)
	}
	t.current = idx
}

// Current returns the entry covering now.
func (t *Timeline) Current(now float64) (Entry, bool) {
	idx := t.find(now)
	if idx < 0 {
		return Entry{}, false
	}
	return t.entries[idx], true
}

func (t *Timeline) find(now float64) int {
	for i, e := range t.entries {
		if now >= e.Start && now < e.End {
			return i
		}
	}
	return -1
}

func (t *Timeline) Pause() {
	if t.paused || t.stopped {
		return
	}
	t.paused = true
	t.svc.PauseMusic()
}

func (t *Timeline) Resume() {
	if !t.paused {
		return
	}
	t.paused = false
	t.svc.ResumeMusic()
}

// Stop fades out whatever is playing and ignores further updates.
func (t *Timeline) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	if t.current >= 0 {
		t.svc.StopMusic(t.FadeDuration)
	}
	t.current = -1
}

// Cue is a one-shot sound played when the timeline passes At.
type Cue struct {
	At     float64
	Sound  string
	Volume float64
}

// Cues fires each sound once.
type Cues struct {
	svc   Service
	cues  []Cue
	fired []bool
}

func NewCues(svc Service, cues []Cue) *Cues {
	return &Cues{svc: svc, cues: cues, fired: make([]bool, len(cues))}
}

func (c *Cues) Update(now float64) {
	for i, cue := range c.cues {
		if c.fired[i] || now < cue.At {
			continue
		}
		c.fired[i] = true
		if !c.svc.PlaySound(cue.Sound, cue.Volume) {
			log.Printf("[!] [music] could not play sound %s", cue.Sound)
		}
	}
}
