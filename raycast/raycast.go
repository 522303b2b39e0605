// Package raycast projects an occupancy field into a character framebuffer
// by marching one ray per screen column.
package raycast

import (
	"math"

	"github.com/lixenwraith/vi-raycast/field"
)

const (
	// FOVFor200 is the horizontal field of view of a 200-column viewport;
	// narrower or wider viewports scale it linearly
	FOVFor200 = math.Pi * 80 / 180

	// AngleStep is the ray angle between adjacent columns
	AngleStep = FOVFor200 / 200

	// StepSize is the ray-march increment in cell units
	StepSize = 0.02

	// MaxDistance is the fog horizon; rays reaching it or leaving the grid are misses
	MaxDistance = 6.0
)

// Glyphs
const (
	GlyphCeiling = ' '
	GlyphFloor   = '.'
	GlyphNear    = '▓'
	GlyphMid     = '▒'
	GlyphFar     = '░'
)

// Shade picks the wall glyph for a distance: three discrete fog bands
func Shade(distance float64) rune {
	switch {
	case distance <= MaxDistance/3:
		return GlyphNear
	case distance <= MaxDistance*2/3:
		return GlyphMid
	default:
		return GlyphFar
	}
}

// CastRay marches from (x, y) along angle and returns the distance to the
// first wall cell, or MaxDistance on a miss
func CastRay(f *field.Field, x, y, angle float64) float64 {
	dx := math.Cos(angle) * StepSize
	dy := math.Sin(angle) * StepSize

	distance := 0.0
	for {
		cx, cy := int(math.Floor(x)), int(math.Floor(y))
		if !f.InBounds(cx, cy) {
			return MaxDistance
		}
		if f.At(cx, cy) == field.Wall {
			return distance
		}

		distance += StepSize
		x += dx
		y += dy
		if distance >= MaxDistance {
			return MaxDistance
		}
	}
}

// WallSpan returns the wall band rows [top, bottom) for a column at distance
func WallSpan(distance float64, height int) (top, bottom int) {
	h := float64(height)
	wallHeight := h / (distance + 1)
	return int((h - wallHeight) / 2), int((h + wallHeight) / 2)
}

// Render draws the field from the player's pose into fb, resizing it to
// width*height. Columns sweep from the leftmost ray rightward with the
// angle decreasing by AngleStep per column.
func Render(fb *Framebuffer, f *field.Field, width, height int) {
	fb.Resize(width, height)
	if width <= 0 || height <= 0 {
		return
	}

	p := f.Player
	halfFOV := FOVFor200 * float64(width) / 200 / 2

	for col := 0; col < width; col++ {
		angle := p.Angle + halfFOV - float64(col)*AngleStep
		distance := CastRay(f, p.X, p.Y, angle)
		top, bottom := WallSpan(distance, height)
		wall := Shade(distance)

		for row := 0; row < height; row++ {
			switch {
			case row < top:
				fb.set(col, row, GlyphCeiling)
			case row < bottom:
				fb.set(col, row, wall)
			default:
				fb.set(col, row, GlyphFloor)
			}
		}
	}
}
