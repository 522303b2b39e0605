package field

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestNewValidatesShape(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want error
	}{
		{"no rows", nil, ErrEmptyLayout},
		{"empty row", []string{""}, ErrEmptyLayout},
		{"ragged", []string{"###", "#"}, ErrRaggedLayout},
		{"valid", []string{"##", "# "}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rows, Player{})
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCellLookup(t *testing.T) {
	f, err := New([]string{
		"###",
		"# .",
	}, Player{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if f.Width() != 3 || f.Height() != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", f.Width(), f.Height())
	}
	if !f.IsWall(0, 1) || f.IsWall(1, 1) || f.IsWall(2, 1) {
		t.Error("Row 1 tags mismatch; only '#' is a wall")
	}

	// Out of bounds reads as wall but is not in bounds
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}} {
		if f.InBounds(p[0], p[1]) {
			t.Errorf("%v reported in bounds", p)
		}
		if !f.IsWall(p[0], p[1]) {
			t.Errorf("%v should read as wall", p)
		}
	}
}

func TestPlayerCellFloors(t *testing.T) {
	tests := []struct {
		x, y   float64
		cx, cy int
	}{
		{1.5, 1.5, 1, 1},
		{0, 0, 0, 0},
		{2.999, 0.001, 2, 0},
		{-0.5, 1.2, -1, 1},
	}
	for _, tt := range tests {
		cx, cy := Player{X: tt.x, Y: tt.y}.Cell()
		if cx != tt.cx || cy != tt.cy {
			t.Errorf("(%v,%v): expected cell (%d,%d), got (%d,%d)", tt.x, tt.y, tt.cx, tt.cy, cx, cy)
		}
	}
}

func TestPlayerFinite(t *testing.T) {
	if !(Player{X: 1, Y: 2, Angle: 3}).Finite() {
		t.Error("Finite pose reported non-finite")
	}
	if (Player{VelX: math.NaN()}).Finite() {
		t.Error("NaN velocity reported finite")
	}
	if (Player{Angle: math.Inf(1)}).Finite() {
		t.Error("Inf angle reported finite")
	}
}

func TestDefaultField(t *testing.T) {
	f := Default()
	if f.Width() != 5 || f.Height() != 5 {
		t.Fatalf("Expected 5x5, got %dx%d", f.Width(), f.Height())
	}
	if f.PlayerInWall() {
		t.Error("Default spawn is inside a wall")
	}
	if !slices.Equal(f.Rows(), DefaultRows) {
		t.Errorf("Rows round-trip mismatch: %q", f.Rows())
	}

	// Fresh copy every call
	f.Player.X = 3.5
	if Default().Player.X != 1.5 {
		t.Error("Default shares player state between calls")
	}
}

func TestFromGrid(t *testing.T) {
	f, err := FromGrid([][]bool{
		{true, true, true},
		{true, false, true},
		{true, true, true},
	}, Player{X: 1.5, Y: 1.5})
	if err != nil {
		t.Fatalf("FromGrid failed: %v", err)
	}
	if f.PlayerInWall() || !f.IsWall(0, 0) {
		t.Error("Grid tags not preserved")
	}
}

func TestParseLevel(t *testing.T) {
	data := []byte(`
name = "Corridor"
rows = [
  "######",
  "#    #",
  "######",
]

[player]
x = 1.5
y = 1.5
heading = 180
`)
	f, name, err := ParseLevel(data)
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}
	if name != "Corridor" {
		t.Errorf("Name mismatch: %q", name)
	}
	if f.Width() != 6 || f.Height() != 3 {
		t.Errorf("Expected 6x3, got %dx%d", f.Width(), f.Height())
	}
	if math.Abs(f.Player.Angle-math.Pi) > 1e-12 {
		t.Errorf("Expected heading pi, got %v", f.Player.Angle)
	}
}

func TestLevelSpawnValidation(t *testing.T) {
	rows := []string{"###", "# #", "###"}
	tests := []struct {
		name string
		p    LevelPlayer
	}{
		{"inside wall", LevelPlayer{X: 0.5, Y: 0.5}},
		{"outside grid", LevelPlayer{X: 5, Y: 1.5}},
		{"non-finite", LevelPlayer{X: math.NaN(), Y: 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Level{Rows: rows, Player: tt.p}.Build()
			if !errors.Is(err, ErrBadSpawn) {
				t.Errorf("Expected ErrBadSpawn, got %v", err)
			}
		})
	}
}

func TestLoadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.toml")
	content := "rows = [\"###\", \"# #\", \"###\"]\n[player]\nx = 1.5\ny = 1.5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, _, err := LoadLevel(path)
	if err != nil {
		t.Fatalf("LoadLevel failed: %v", err)
	}
	if f.Width() != 3 {
		t.Errorf("Expected width 3, got %d", f.Width())
	}

	if _, _, err := LoadLevel(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Expected error for missing level")
	}
}

func TestParseLevelJSON(t *testing.T) {
	data := []byte(`{
  "name": "Hall",
  "rows": ["#####", "#   #", "#####"],
  "player": {"x": 2.5, "y": 1.5, "heading": 90}
}`)
	f, name, err := ParseLevelJSON(data)
	if err != nil {
		t.Fatalf("ParseLevelJSON failed: %v", err)
	}
	if name != "Hall" || f.Width() != 5 || f.Height() != 3 {
		t.Errorf("Unexpected level %q %dx%d", name, f.Width(), f.Height())
	}
	if math.Abs(f.Player.Angle-math.Pi/2) > 1e-12 || f.Player.X != 2.5 {
		t.Errorf("Spawn mismatch: %+v", f.Player)
	}
}

func TestParseLevelJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", `rows = ["#"]`, ErrBadJSON},
		{"rows missing", `{"name": "x"}`, ErrBadJSON},
		{"row not string", `{"rows": ["###", 7]}`, ErrBadJSON},
		{"heading not number", `{"rows": ["###", "# #", "###"], "player": {"x": 1.5, "y": 1.5, "heading": "east"}}`, ErrBadJSON},
		{"spawn in wall", `{"rows": ["###", "# #", "###"], "player": {"x": 0.5, "y": 0.5}}`, ErrBadSpawn},
		{"ragged", `{"rows": ["###", "#"], "player": {"x": 0.5, "y": 0.5}}`, ErrRaggedLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseLevelJSON([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadLevelDispatchesOnExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.JSON")
	content := `{"rows": ["###", "# #", "###"], "player": {"x": 1.5, "y": 1.5}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, _, err := LoadLevel(path)
	if err != nil {
		t.Fatalf("LoadLevel failed: %v", err)
	}
	if f.Width() != 3 {
		t.Errorf("Expected width 3, got %d", f.Width())
	}
}
