package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ingyamilmolinar/vscroll/internal/scroll"
)

const (
	DefaultWidth  = 512
	DefaultHeight = 512
	DefaultTPS    = 60
)

// Config is the full set of user-tunable knobs. Fields missing from a loaded
// file keep their defaults.
type Config struct {
	Window Window `json:"window"`
	Scene  Scene  `json:"scene"`
	Audio  Audio  `json:"audio"`
	Log    Log    `json:"log"`
	// Seed fixes the random layout. 0 picks a new seed every run.
	Seed int64 `json:"seed"`
}

type Window struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	TPS    int    `json:"tps"`
}

// Scene controls the column layout: block widths and scroll speeds are drawn
// uniformly from [Min, Max).
type Scene struct {
	MinBlockWidth float64 `json:"minBlockWidth"`
	MaxBlockWidth float64 `json:"maxBlockWidth"`
	MinSpeed      float64 `json:"minSpeed"`
	MaxSpeed      float64 `json:"maxSpeed"`
	// Gap is the horizontal padding on each side of a column.
	Gap float64 `json:"gap"`
}

type Audio struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sampleRate"`
	Gain       float64 `json:"gain"`
}

type Log struct {
	Level string `json:"level"`
}

func Default() Config {
	return Config{
		Window: Window{Width: DefaultWidth, Height: DefaultHeight, Title: "vscroll", TPS: DefaultTPS},
		Scene: Scene{
			MinBlockWidth: 8,
			MaxBlockWidth: 32,
			MinSpeed:      0.5,
			MaxSpeed:      3,
			Gap:           1,
		},
		Audio: Audio{Enabled: true, SampleRate: 44100, Gain: 0.5},
		Log:   Log{Level: "INFO"},
	}
}

// ErrInvalid is wrapped by Validate.
var ErrInvalid = errors.New("invalid config")

func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.Window.Width > 0, "window.width %d must be positive", c.Window.Width)
	check(c.Window.Height > 0, "window.height %d must be positive", c.Window.Height)
	check(c.Window.TPS > 0, "window.tps %d must be positive", c.Window.TPS)
	check(c.Scene.MinBlockWidth >= scroll.MinBlockWidth,
		"scene.minBlockWidth %v is below %v", c.Scene.MinBlockWidth, scroll.MinBlockWidth)
	check(c.Scene.MaxBlockWidth >= c.Scene.MinBlockWidth,
		"scene.maxBlockWidth %v is below minBlockWidth %v", c.Scene.MaxBlockWidth, c.Scene.MinBlockWidth)
	check(c.Scene.MinSpeed >= 0, "scene.minSpeed %v must not be negative", c.Scene.MinSpeed)
	check(c.Scene.MaxSpeed >= c.Scene.MinSpeed,
		"scene.maxSpeed %v is below minSpeed %v", c.Scene.MaxSpeed, c.Scene.MinSpeed)
	check(c.Scene.Gap >= 0, "scene.gap %v must not be negative", c.Scene.Gap)
	check(c.Audio.SampleRate >= 8000 && c.Audio.SampleRate <= 192000,
		"audio.sampleRate %d outside [8000, 192000]", c.Audio.SampleRate)
	check(c.Audio.Gain >= 0 && c.Audio.Gain <= 1, "audio.gain %v outside [0, 1]", c.Audio.Gain)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Load reads a JSON file over the defaults and validates the result. An
// empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
