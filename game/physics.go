package game

import (
	"log"
	"math"
)

// stopSpeed is the velocity magnitude below which the player is at rest
const stopSpeed = 1e-4

// integrate advances the player by dt seconds: move, resolve collision, brake
func (l *Loop) integrate(dt float64) {
	f := l.field
	p := &f.Player

	p.X += p.VelX * dt
	p.Y += p.VelY * dt
	if f.PlayerInWall() {
		moving := p.VelX != 0 || p.VelY != 0
		// Second push carries the player through thin walls
		p.X += p.VelX * dt
		p.Y += p.VelY * dt
		p.VelX, p.VelY = 0, 0
		if moving {
			l.collisions++
			log.Printf("game: collision at (%.3f, %.3f)", p.X, p.Y)
			if l.opts.OnCollision != nil {
				l.opts.OnCollision()
			}
		}
	}

	speed := math.Hypot(p.VelX, p.VelY)
	if speed < stopSpeed {
		p.VelX, p.VelY = 0, 0
		return
	}
	// Each component loses at least its share of speed·dt along the motion,
	// so |v| shrinks by speed·dt per second whatever the heading
	share := l.speed * dt / speed
	p.VelX = brake(p.VelX, math.Cos(p.Angle)*l.speed*dt, math.Abs(p.VelX)*share)
	p.VelY = brake(p.VelY, math.Sin(p.Angle)*l.speed*dt, math.Abs(p.VelY)*share)
}

// brake moves v toward zero by the heading deceleration d when d points the
// same way as v, or by floor when that is larger. It never flips the sign.
func brake(v, d, floor float64) float64 {
	step := floor
	switch {
	case v > 0 && d > step:
		step = d
	case v < 0 && -d > step:
		step = -d
	}
	switch {
	case v > 0:
		return math.Max(v-step, 0)
	case v < 0:
		return math.Min(v+step, 0)
	}
	return 0
}
