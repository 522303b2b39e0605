package field

import "math"

// DefaultRows is the built-in 5x5 arena with a central pillar and an opening on the right edge
var DefaultRows = []string{
	"#####",
	"#    ",
	"# # #",
	"#   #",
	"#####",
}

// DefaultPlayer starts in the top-left room cell facing down the grid
var DefaultPlayer = Player{
	X:     1.5,
	Y:     1.5,
	Angle: math.Pi / 2,
}

// Default returns a fresh copy of the built-in field
func Default() *Field {
	f, err := New(DefaultRows, DefaultPlayer)
	if err != nil {
		panic("field: built-in layout invalid: " + err.Error())
	}
	return f
}
