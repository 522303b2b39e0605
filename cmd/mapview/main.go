// Command mapview shows a level from above: walls, the spawn pose, the cells
// the renderer's edge and centre rays hit, and for mazes the solution path.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-raycast/field"
	"github.com/lixenwraith/vi-raycast/maze"
	"github.com/lixenwraith/vi-raycast/raycast"
	"github.com/mattn/go-runewidth"
)

var (
	levelFlag  = flag.String("level", "", "path to a TOML level file")
	mazeFlag   = flag.Bool("maze", false, "view a generated maze")
	seedFlag   = flag.Int64("seed", 0, "maze seed (0 = time based)")
	widthFlag  = flag.Int("width", 41, "maze width")
	heightFlag = flag.Int("height", 21, "maze height")
	braidFlag  = flag.Float64("braid", 0.1, "maze braiding factor [0.0 - 1.0]")
	colsFlag   = flag.Int("cols", 80, "view width used to derive the field of view")
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	stylePath   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHit    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

// viewer holds the map being shown and the pan offset
type viewer struct {
	screen tcell.Screen

	field *field.Field
	name  string
	path  map[maze.Point]bool
	seed  int64

	offX, offY   int
	showPath     bool
	showRays     bool
	viewColumns  int
	statusMsg    string
	statusExpiry time.Time
}

func main() {
	flag.Parse()

	v := &viewer{showRays: true, viewColumns: *colsFlag, seed: *seedFlag}
	if err := v.load(); err != nil {
		fmt.Fprintf(os.Stderr, "mapview: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mapview: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "mapview: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	v.screen = screen
	v.run()
}

// load (re)builds the field from flags
func (v *viewer) load() error {
	v.path = nil

	if *mazeFlag {
		res := maze.Generate(maze.Config{
			Width:    *widthFlag,
			Height:   *heightFlag,
			Braiding: *braidFlag,
			Seed:     v.seed,
		})
		spawn := field.Player{
			X:     float64(res.Start.X) + 0.5,
			Y:     float64(res.Start.Y) + 0.5,
			Angle: res.OpenHeading(res.Start),
		}
		f, err := field.FromGrid(res.Grid, spawn)
		if err != nil {
			return err
		}
		v.field = f
		v.name = "maze"
		v.path = make(map[maze.Point]bool, len(res.SolutionPath))
		for _, p := range res.SolutionPath {
			v.path[p] = true
		}
		return nil
	}

	if *levelFlag != "" {
		f, name, err := field.LoadLevel(*levelFlag)
		if err != nil {
			return err
		}
		v.field, v.name = f, name
		if v.name == "" {
			v.name = *levelFlag
		}
		return nil
	}

	v.field, v.name = field.Default(), "default"
	return nil
}

func (v *viewer) run() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(v.screen, events, done)

	v.draw()
	for {
		select {
		case ev := <-events:
			if !v.handleEvent(ev) {
				return
			}
			v.draw()
		case <-ticker.C:
			if !v.statusExpiry.IsZero() && time.Now().After(v.statusExpiry) {
				v.statusMsg = ""
				v.statusExpiry = time.Time{}
				v.draw()
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent returns false when the viewer should exit
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.offX--
		case tcell.KeyRight:
			v.offX++
		case tcell.KeyUp:
			v.offY--
		case tcell.KeyDown:
			v.offY++
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				v.offX--
			case 'l':
				v.offX++
			case 'k':
				v.offY--
			case 'j':
				v.offY++
			case '0':
				v.offX, v.offY = 0, 0
			case 'p':
				v.showPath = !v.showPath
			case 'v':
				v.showRays = !v.showRays
			case 'r':
				if !*mazeFlag {
					v.flash("r only regenerates mazes")
					break
				}
				v.seed = time.Now().UnixNano()
				if err := v.load(); err != nil {
					v.flash(err.Error())
				} else {
					v.flash(fmt.Sprintf("seed %d", v.seed))
				}
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) flash(msg string) {
	v.statusMsg = msg
	v.statusExpiry = time.Now().Add(2 * time.Second)
}

func (v *viewer) draw() {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	f := v.field

	var hits map[[2]int]bool
	if v.showRays {
		hits = rayHits(f, v.viewColumns)
	}

	// Last row is the status bar
	for sy := 0; sy < sh-1; sy++ {
		y := sy + v.offY
		for sx := 0; sx < sw; sx++ {
			x := sx + v.offX
			if !f.InBounds(x, y) {
				continue
			}
			r, style := '.', styleFloor
			switch {
			case hits[[2]int{x, y}]:
				r, style = '█', styleHit
			case f.IsWall(x, y):
				r, style = '█', styleWall
			case v.showPath && v.path[maze.Point{X: x, Y: y}]:
				r, style = '•', stylePath
			}
			v.screen.SetContent(sx, sy, r, nil, style)
		}
	}

	px, py := f.Player.Cell()
	if sx, sy := px-v.offX, py-v.offY; sx >= 0 && sy >= 0 && sx < sw && sy < sh-1 {
		v.screen.SetContent(sx, sy, headingGlyph(f.Player.Angle), nil, stylePlayer)
	}

	status := fmt.Sprintf(" %s %dx%d  pos (%.2f, %.2f)  heading %.0f°  [hjkl] pan [p] path [v] rays [r] regen [q] quit ",
		v.name, f.Width(), f.Height(), f.Player.X, f.Player.Y, f.Player.Angle*180/math.Pi)
	if v.statusMsg != "" {
		status = " " + v.statusMsg + " "
	}
	x := 0
	for _, r := range runewidth.Truncate(status, sw, "…") {
		v.screen.SetContent(x, sh-1, r, nil, styleStatus)
		x += runewidth.RuneWidth(r)
	}

	v.screen.Show()
}

// rayHits marks the wall cells struck by the leftmost, centre and rightmost
// rays of a view columns wide
func rayHits(f *field.Field, columns int) map[[2]int]bool {
	hits := make(map[[2]int]bool)
	p := f.Player
	halfFOV := raycast.FOVFor200 * float64(columns) / 200 / 2

	for _, angle := range []float64{p.Angle + halfFOV, p.Angle, p.Angle - halfFOV} {
		d := raycast.CastRay(f, p.X, p.Y, angle)
		if d >= raycast.MaxDistance {
			continue
		}
		// Half a step past the hit stays inside the struck cell
		d += raycast.StepSize / 2
		x := int(math.Floor(p.X + math.Cos(angle)*d))
		y := int(math.Floor(p.Y + math.Sin(angle)*d))
		if f.InBounds(x, y) && f.IsWall(x, y) {
			hits[[2]int{x, y}] = true
		}
	}
	return hits
}

// headingGlyph picks one of eight arrows; +y points down the screen
func headingGlyph(angle float64) rune {
	arrows := [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	octant := int(math.Round(angle/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return arrows[octant]
}
