package main

import (
	"fmt"
	"log"

	"github.com/lixenwraith/vi-raycast/config"
	"github.com/lixenwraith/vi-raycast/field"
	"github.com/lixenwraith/vi-raycast/maze"
)

// loadField picks the play field: a generated maze, a level file, or the built-in room
func loadField(cfg *config.Config) (*field.Field, string, error) {
	switch {
	case cfg.Maze.Enabled:
		res := maze.Generate(maze.Config{
			Width:    cfg.Maze.Width,
			Height:   cfg.Maze.Height,
			Braiding: cfg.Maze.Braiding,
			Seed:     cfg.Maze.Seed,
		})
		spawn := field.Player{
			X:     float64(res.Start.X) + 0.5,
			Y:     float64(res.Start.Y) + 0.5,
			Angle: res.OpenHeading(res.Start),
		}
		f, err := field.FromGrid(res.Grid, spawn)
		if err != nil {
			return nil, "", fmt.Errorf("build maze: %w", err)
		}
		log.Printf("maze %dx%d, solution %d steps", f.Width(), f.Height(), len(res.SolutionPath))
		return f, "maze", nil

	case cfg.Level != "":
		f, name, err := field.LoadLevel(cfg.Level)
		if err != nil {
			return nil, "", err
		}
		if name == "" {
			name = cfg.Level
		}
		return f, name, nil
	}

	return field.Default(), "default", nil
}
