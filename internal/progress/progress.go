// Package progress remembers the last scene a script reached so a run can
// resume there.
package progress

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	progressObject   = "progress"
	progressProperty = "last_scene"
)

// Record is the persisted resume point.
type Record struct {
	Script    string    `yaml:"script"`
	Scene     int       `yaml:"scene"`
	SceneName string    `yaml:"scene_name"`
	SavedAt   time.Time `yaml:"saved_at"`
}

// Store keeps the record in gdata storage. With a nil manager it only keeps
// the record in memory.
type Store struct {
	manager *gdata.Manager
	last    *Record
}

// Open creates the gdata manager for appName. If the platform storage is
// unavailable the store still works, without persistence.
func Open(appName string) *Store {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[!] [progress] storage unavailable, resume disabled: %v", err)
		return NewStore(nil)
	}
	return NewStore(manager)
}

func NewStore(manager *gdata.Manager) *Store {
	return &Store{manager: manager}
}

// Save records that scene index of script has started.
func (s *Store) Save(script string, index int, name string) error {
	rec := &Record{Script: key(script), Scene: index, SceneName: name, SavedAt: time.Now()}
	s.last = rec
	if s.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := s.manager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// Load returns the saved scene index for script. ok is false when nothing
// was saved for that script.
func (s *Store) Load(script string) (index int, ok bool, err error) {
	rec, err := s.record()
	if err != nil || rec == nil {
		return 0, false, err
	}
	if rec.Script != key(script) {
		return 0, false, nil
	}
	return rec.Scene, true, nil
}

func (s *Store) record() (*Record, error) {
	if s.manager == nil {
		return s.last, nil
	}
	if !s.manager.ObjectPropExists(progressObject, progressProperty) {
		return nil, nil
	}
	data, err := s.manager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	return &rec, nil
}

func key(script string) string {
	if abs, err := filepath.Abs(script); err == nil {
		return abs
	}
	return script
}
