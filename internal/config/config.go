package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"runtime"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ScriptPath         string  `yaml:"script"`
	ScriptsDir         string  `yaml:"scripts_dir"`
	AssetRoot          string  `yaml:"asset_root"`
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	TPS                int     `yaml:"tps"`
	MaxDelta           float64 `yaml:"max_delta"`
	TimeScale          float64 `yaml:"time_scale"`
	TransitionDuration float64 `yaml:"transition_duration"`
	CoverColor         string  `yaml:"cover_color"`
	BackgroundColor    string  `yaml:"background_color"`
	LookAtHeight       float64 `yaml:"look_at_height"`
	EntryLookAtHeight  float64 `yaml:"entry_look_at_height"`
	MoveSpeed          float64 `yaml:"move_speed"`
	TurnSpeed          float64 `yaml:"turn_speed"`
	FreeCamera         bool    `yaml:"free_camera"`
	FreeLookSpeed      float64 `yaml:"free_look_speed"`
	StartScene         int     `yaml:"start_scene"`
	Resume             bool    `yaml:"resume"`
	Watch              bool    `yaml:"watch"`
	ShowStats          bool    `yaml:"show_stats"`
	Headless           bool    `yaml:"headless"`
	HeadlessFrames     int     `yaml:"headless_frames"`
	MusicFade          float64 `yaml:"music_fade"`
	Workers            int     `yaml:"workers"`
	BuildVersion       string  `yaml:"-"`
}

func Default() *Config {
	return &Config{
		ScriptsDir:         "scripts",
		AssetRoot:          "assets",
		Width:              1280,
		Height:             720,
		TPS:                60,
		MaxDelta:           0.1,
		TimeScale:          1.0,
		TransitionDuration: 5.0,
		CoverColor:         "black",
		BackgroundColor:    "black",
		LookAtHeight:       0.4,
		EntryLookAtHeight:  0.8,
		MoveSpeed:          0.02,
		TurnSpeed:          0.05,
		FreeLookSpeed:      2.0,
		MusicFade:          2.0,
		Workers:            runtime.NumCPU(),
	}
}

// LoadFile overlays the YAML file at path onto cfg. Fields missing from the
// file keep their current values.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	if c.MaxDelta <= 0 {
		errs = append(errs, fmt.Errorf("max_delta must be positive, got %f", c.MaxDelta))
	}
	if c.TimeScale <= 0 {
		errs = append(errs, fmt.Errorf("time_scale must be positive, got %f", c.TimeScale))
	}
	if c.TransitionDuration < 0 {
		errs = append(errs, fmt.Errorf("transition_duration must not be negative, got %f", c.TransitionDuration))
	}
	if c.MoveSpeed <= 0 || c.TurnSpeed <= 0 {
		errs = append(errs, errors.New("manual move and turn speeds must be positive"))
	}
	if c.StartScene < 0 {
		errs = append(errs, fmt.Errorf("start_scene must not be negative, got %d", c.StartScene))
	}
	if _, err := ParseColor(c.CoverColor); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseColor(c.BackgroundColor); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) Cover() color.RGBA {
	col, _ := ParseColor(c.CoverColor)
	return col
}

func (c *Config) Background() color.RGBA {
	col, _ := ParseColor(c.BackgroundColor)
	return col
}

// ParseColor resolves an SVG colour name such as "black" or "midnightblue".
func ParseColor(name string) (color.RGBA, error) {
	col, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown colour %q", name)
	}
	return col, nil
}
