// Package field holds the occupancy grid and the single player pose moving through it.
package field

import (
	"errors"
	"fmt"
	"math"
)

// Cell is the tag of one grid square
type Cell uint8

const (
	Empty Cell = iota
	Wall
)

// WallGlyph marks a wall in textual layouts; any other byte is empty
const WallGlyph = '#'

var (
	ErrEmptyLayout  = errors.New("layout has no cells")
	ErrRaggedLayout = errors.New("layout rows differ in length")
)

// Player position is in cell units with (0,0) at the top-left corner of the
// grid; flooring the coordinates yields the cell the player stands in.
type Player struct {
	X, Y  float64
	Angle float64 // radians
	VelX  float64
	VelY  float64
}

// Cell returns the grid cell containing the player
func (p Player) Cell() (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// Finite reports whether no component has become NaN or infinite
func (p Player) Finite() bool {
	for _, v := range [...]float64{p.X, p.Y, p.Angle, p.VelX, p.VelY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Field is a fixed-size rectangular grid, row-major: cells[y*width + x]
type Field struct {
	width  int
	height int
	cells  []Cell

	Player Player
}

// New creates a field from equal-length rows; row index is y, byte index is x
func New(rows []string, player Player) (*Field, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyLayout
	}

	width := len(rows[0])
	cells := make([]Cell, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedLayout, y, len(row), width)
		}
		for x := 0; x < width; x++ {
			if row[x] == WallGlyph {
				cells = append(cells, Wall)
			} else {
				cells = append(cells, Empty)
			}
		}
	}

	return &Field{
		width:  width,
		height: len(rows),
		cells:  cells,
		Player: player,
	}, nil
}

// FromGrid builds a field from a boolean wall grid indexed [y][x]
func FromGrid(grid [][]bool, player Player) (*Field, error) {
	rows := make([]string, len(grid))
	for y, line := range grid {
		b := make([]byte, len(line))
		for x, wall := range line {
			if wall {
				b[x] = WallGlyph
			} else {
				b[x] = ' '
			}
		}
		rows[y] = string(b)
	}
	return New(rows, player)
}

func (f *Field) Width() int  { return f.width }
func (f *Field) Height() int { return f.height }

// InBounds reports whether (x, y) addresses a cell
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.width && y < f.height
}

// At returns the cell tag; out-of-bounds reads as Wall
func (f *Field) At(x, y int) Cell {
	if !f.InBounds(x, y) {
		return Wall
	}
	return f.cells[y*f.width+x]
}

// IsWall reports whether the cell at (x, y) blocks movement
func (f *Field) IsWall(x, y int) bool {
	return f.At(x, y) == Wall
}

// PlayerInWall reports whether the player currently stands inside a blocking cell
func (f *Field) PlayerInWall() bool {
	return f.IsWall(f.Player.Cell())
}

// Rows renders the grid back to its textual layout
func (f *Field) Rows() []string {
	rows := make([]string, f.height)
	for y := 0; y < f.height; y++ {
		b := make([]byte, f.width)
		for x := 0; x < f.width; x++ {
			if f.cells[y*f.width+x] == Wall {
				b[x] = WallGlyph
			} else {
				b[x] = ' '
			}
		}
		rows[y] = string(b)
	}
	return rows
}
