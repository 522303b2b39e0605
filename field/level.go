package field

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/vi-raycast/toml"
)

var ErrBadSpawn = errors.New("player spawn is outside the grid or inside a wall")

// Level is the on-disk form of a field
type Level struct {
	Name   string      `toml:"name"`
	Rows   []string    `toml:"rows"`
	Player LevelPlayer `toml:"player"`
}

// LevelPlayer places the player; heading is in degrees, 0 = +x, 90 = +y
type LevelPlayer struct {
	X       float64 `toml:"x"`
	Y       float64 `toml:"y"`
	Heading float64 `toml:"heading"`
}

// ParseLevel decodes a TOML level document
func ParseLevel(data []byte) (*Field, string, error) {
	var lvl Level
	if err := toml.Unmarshal(data, &lvl); err != nil {
		return nil, "", fmt.Errorf("parse level: %w", err)
	}
	f, err := lvl.Build()
	return f, lvl.Name, err
}

// LoadLevel reads a level file; .json files use the JSON form, anything else TOML
func LoadLevel(path string) (*Field, string, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return loadLevelJSON(path)
	}

	var lvl Level
	if err := toml.DecodeFile(path, &lvl); err != nil {
		return nil, "", fmt.Errorf("load level: %w", err)
	}
	f, err := lvl.Build()
	return f, lvl.Name, err
}

// Build validates the level and constructs its field
func (l Level) Build() (*Field, error) {
	p := Player{
		X:     l.Player.X,
		Y:     l.Player.Y,
		Angle: l.Player.Heading * math.Pi / 180,
	}
	if !p.Finite() {
		return nil, fmt.Errorf("%w: non-finite pose %+v", ErrBadSpawn, l.Player)
	}

	f, err := New(l.Rows, p)
	if err != nil {
		return nil, err
	}

	x, y := p.Cell()
	if !f.InBounds(x, y) || f.IsWall(x, y) {
		return nil, fmt.Errorf("%w: (%g, %g)", ErrBadSpawn, p.X, p.Y)
	}
	return f, nil
}
