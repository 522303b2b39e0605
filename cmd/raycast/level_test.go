package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/vi-raycast/config"
	"github.com/lixenwraith/vi-raycast/field"
)

func TestLoadFieldDefault(t *testing.T) {
	f, name, err := loadField(config.Default())
	if err != nil {
		t.Fatalf("loadField failed: %v", err)
	}
	if name != "default" || f.Width() != len(field.DefaultRows[0]) {
		t.Errorf("Expected built-in room, got %q %dx%d", name, f.Width(), f.Height())
	}
}

func TestLoadFieldMaze(t *testing.T) {
	cfg := config.Default()
	cfg.Maze.Enabled = true
	cfg.Maze.Seed = 7
	cfg.Level = "ignored.toml"

	f, name, err := loadField(cfg)
	if err != nil {
		t.Fatalf("loadField failed: %v", err)
	}
	if name != "maze" {
		t.Errorf("Maze should take precedence over level, got %q", name)
	}
	if f.Width() != cfg.Maze.Width || f.Height() != cfg.Maze.Height {
		t.Errorf("Expected %dx%d maze, got %dx%d", cfg.Maze.Width, cfg.Maze.Height, f.Width(), f.Height())
	}
	if f.PlayerInWall() {
		t.Error("Maze spawn inside a wall")
	}
}

func TestLoadFieldLevelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hall.toml")
	content := "rows = [\"#####\", \"#   #\", \"#####\"]\n[player]\nx = 2.5\ny = 1.5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := config.Default()
	cfg.Level = path

	f, name, err := loadField(cfg)
	if err != nil {
		t.Fatalf("loadField failed: %v", err)
	}
	if name != path {
		t.Errorf("Unnamed level should report its path, got %q", name)
	}
	if f.Player.X != 2.5 {
		t.Errorf("Spawn not applied: %+v", f.Player)
	}

	cfg.Level = filepath.Join(t.TempDir(), "missing.toml")
	if _, _, err := loadField(cfg); err == nil {
		t.Error("Expected error for missing level file")
	}
}
