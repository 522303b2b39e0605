// Package config resolves runtime settings from defaults, an optional TOML
// file and RAYCAST_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/lixenwraith/vi-raycast/toml"
)

var ErrInvalid = errors.New("invalid configuration")

// Config is the full set of knobs the program reads at start-up
type Config struct {
	Debug bool    `toml:"debug"`
	Speed float64 `toml:"speed"` // cells per second
	Level string  `toml:"level"` // level file; empty selects the built-in room

	Maze  MazeConfig  `toml:"maze"`
	Sound SoundConfig `toml:"sound"`
}

// MazeConfig replaces the level with a generated maze when Enabled
type MazeConfig struct {
	Enabled  bool    `toml:"enabled"`
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Braiding float64 `toml:"braiding"`
	Seed     int64   `toml:"seed"` // 0 seeds from the clock
}

type SoundConfig struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"` // 0.0 - 1.0
	SampleRate int     `toml:"sample_rate"`
}

func Default() *Config {
	return &Config{
		Speed: 0.4,
		Maze: MazeConfig{
			Width:    21,
			Height:   21,
			Braiding: 0.1,
		},
		Sound: SoundConfig{
			Volume:     0.5,
			SampleRate: 44100,
		},
	}
}

// Load reads path over the defaults; keys absent from the file keep their default
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays RAYCAST_* variables; unparsable values are ignored
func (c *Config) ApplyEnv() {
	if v := os.Getenv("RAYCAST_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}

	if v := os.Getenv("RAYCAST_SOUND"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Sound.Enabled = b
		}
	}

	// Volume as 0-100, clamped
	if v := os.Getenv("RAYCAST_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Sound.Volume = math.Min(math.Max(float64(n)/100.0, 0), 1)
		}
	}

	if v := os.Getenv("RAYCAST_SPEED"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Speed = f
		}
	}

	if v := os.Getenv("RAYCAST_LEVEL"); v != "" {
		c.Level = v
	}
}

// Validate rejects settings the game cannot run with
func (c *Config) Validate() error {
	var errs []error

	if math.IsNaN(c.Speed) || math.IsInf(c.Speed, 0) || c.Speed <= 0 {
		errs = append(errs, fmt.Errorf("speed must be a positive number, got %v", c.Speed))
	}
	if c.Maze.Width < 5 || c.Maze.Height < 5 {
		errs = append(errs, fmt.Errorf("maze must be at least 5x5, got %dx%d", c.Maze.Width, c.Maze.Height))
	}
	if c.Maze.Braiding < 0 || c.Maze.Braiding > 1 {
		errs = append(errs, fmt.Errorf("maze braiding must be within [0, 1], got %v", c.Maze.Braiding))
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errs = append(errs, fmt.Errorf("sound volume must be within [0, 1], got %v", c.Sound.Volume))
	}
	if c.Sound.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sound sample rate must be positive, got %d", c.Sound.SampleRate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
