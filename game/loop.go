// Package game runs the real-time frame loop: input, physics, rendering and
// output to a raw terminal screen.
package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/vi-raycast/field"
	"github.com/lixenwraith/vi-raycast/interrupt"
	"github.com/lixenwraith/vi-raycast/raycast"
)

// SpeedFactor is the default movement speed in cells per second
const SpeedFactor = 0.4

// HeaderRows is the number of status lines above the 3-D view
const HeaderRows = 2

// Screen is the output surface and input source of the loop
type Screen interface {
	ReadInput() ([]byte, error)
	WriteFull(p []byte) error
	WritePartial(p []byte) error
}

// Options tunes a Loop; zero values select defaults
type Options struct {
	// Terminal dimensions in cells; the view loses HeaderRows rows
	Width, Height int

	// Speed overrides SpeedFactor when positive
	Speed float64

	// Cancel is polled once per iteration
	Cancel *interrupt.Flag

	// OnCollision fires each time the player is pushed out of a wall
	OnCollision func()
}

// Loop owns the player, the framebuffer and the output buffer for one session
type Loop struct {
	screen Screen
	field  *field.Field
	opts   Options
	speed  float64

	viewW, viewH int
	fb           *raycast.Framebuffer
	out          []byte

	state      State
	frame      uint64
	fps        int
	prev       time.Time
	clocked    bool
	lastInput  []byte
	collisions int
}

// New builds a loop drawing into screen. The viewport takes the whole width
// and the height left under the header; Speed falls back to SpeedFactor.
func New(screen Screen, f *field.Field, opts Options) *Loop {
	speed := opts.Speed
	if speed <= 0 {
		speed = SpeedFactor
	}
	viewH := opts.Height - HeaderRows
	if viewH < 0 {
		viewH = 0
	}
	viewW := opts.Width
	if viewW < 0 {
		viewW = 0
	}

	return &Loop{
		screen:    screen,
		field:     f,
		opts:      opts,
		speed:     speed,
		viewW:     viewW,
		viewH:     viewH,
		fb:        raycast.NewFramebuffer(viewW, viewH),
		out:       make([]byte, 0, viewW*viewH*3),
		lastInput: []byte{},
	}
}

// State returns the current run state
func (l *Loop) State() State { return l.state }

// Frame returns the number of frames drawn so far
func (l *Loop) Frame() uint64 { return l.frame }

// FPS returns the rate derived from the last frame delta
func (l *Loop) FPS() int { return l.fps }

// Collisions returns how many wall impacts the player has had
func (l *Loop) Collisions() int { return l.collisions }

// Field returns the field the loop mutates
func (l *Loop) Field() *field.Field { return l.field }

// Framebuffer returns the viewport buffer of the last rendered frame
func (l *Loop) Framebuffer() *raycast.Framebuffer { return l.fb }

// Stop moves the loop to its terminal state
func (l *Loop) Stop() {
	l.setState(Stopped)
}

func (l *Loop) setState(s State) {
	if l.state == s {
		return
	}
	log.Printf("game: %s -> %s", l.state, s)
	l.state = s
}

// Run iterates until the loop stops, the flag is raised or ctx is done.
// Frames are not paced; the loop polls as fast as the screen accepts output.
func (l *Loop) Run(ctx context.Context) error {
	for l.state != Stopped {
		if ctx.Err() != nil {
			l.setState(Stopped)
			break
		}
		if err := l.Step(time.Now()); err != nil {
			return err
		}
	}
	log.Printf("game: finished after %d frames, %d collisions", l.frame, l.collisions)
	return nil
}

// Step runs one iteration with now as the frame timestamp
func (l *Loop) Step(now time.Time) error {
	if l.state == Stopped {
		return nil
	}
	if l.opts.Cancel != nil && l.opts.Cancel.Cancelled() {
		l.setState(Stopped)
		return nil
	}

	in, err := l.screen.ReadInput()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if l.applyInput(in) {
		l.setState(Stopped)
		return nil
	}
	if len(in) > 0 {
		l.lastInput = append(l.lastInput[:0], in...)
	}

	if !l.clocked || l.state == Paused {
		// Paused time is never integrated
		l.prev = now
		l.clocked = true
		if l.state == Paused {
			return nil
		}
	}

	dt := now.Sub(l.prev).Seconds()
	l.prev = now
	if dt > 0 {
		l.fps = int(1 / dt)
	} else {
		dt = 0
		l.fps = 0
	}

	l.integrate(dt)
	raycast.Render(l.fb, l.field, l.viewW, l.viewH)

	if err := l.draw(in); err != nil {
		return err
	}
	l.frame++
	return nil
}

// draw emits both header lines and the view
func (l *Loop) draw(in []byte) error {
	l.out = l.out[:0]
	l.out = fmt.Appendf(l.out, "Size: %d x %d, frame: %d, fps: %d", l.viewW, l.viewH, l.frame, l.fps)
	l.out = fitLine(l.out, l.viewW)
	if err := l.screen.WriteFull(l.out); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	l.out = l.out[:0]
	l.out = fmt.Appendf(l.out, "last input: %v, current input: %v", l.lastInput, in)
	l.out = fitLine(l.out, l.viewW)
	if err := l.screen.WritePartial(l.out); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	l.out = l.fb.AppendUTF8(l.out[:0])
	if err := l.screen.WritePartial(l.out); err != nil {
		return fmt.Errorf("write view: %w", err)
	}
	return nil
}

// fitLine space-pads or truncates an ASCII line to exactly width bytes
func fitLine(line []byte, width int) []byte {
	if len(line) >= width {
		return line[:width]
	}
	for len(line) < width {
		line = append(line, ' ')
	}
	return line
}
