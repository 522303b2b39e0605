package game

import (
	"math"
)

// TurnStep is the heading change per rotate key press
const TurnStep = math.Pi / 90

// applyInput processes a batch of key bytes in order.
// Returns true when a quit key was seen; bytes after it are not processed.
func (l *Loop) applyInput(in []byte) bool {
	p := &l.field.Player
	for _, c := range in {
		switch c {
		case 'q':
			return true
		case 'p':
			if l.state == Paused {
				l.setState(Running)
				l.clocked = false
			} else {
				l.setState(Paused)
			}
		case 'h', 'j':
			p.Angle += TurnStep
		case 'l', 'k':
			p.Angle -= TurnStep
		case 'w', 's':
			// Both keys push along the heading
			p.VelX = math.Cos(p.Angle) * l.speed
			p.VelY = math.Sin(p.Angle) * l.speed
		case 'd':
			p.VelX = math.Sin(p.Angle) * l.speed
			p.VelY = -math.Cos(p.Angle) * l.speed
		case 'a':
			p.VelX = -math.Sin(p.Angle) * l.speed
			p.VelY = math.Cos(p.Angle) * l.speed
		case ' ':
			p.VelX, p.VelY = 0, 0
		}
	}
	return false
}
