package maze

import (
	"math"
	"reflect"
	"testing"
)

func TestGenerateDimensions(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"odd", 21, 11, 21, 11},
		{"even rounds down", 20, 10, 19, 9},
		{"tiny clamps", 1, 2, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Generate(Config{Width: tt.w, Height: tt.h, Seed: 7})
			if len(res.Grid) != tt.wantH || len(res.Grid[0]) != tt.wantW {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantW, tt.wantH, len(res.Grid[0]), len(res.Grid))
			}
		})
	}
}

func TestBordersStayClosed(t *testing.T) {
	res := Generate(Config{Width: 25, Height: 15, Braiding: 1, Seed: 3})
	rows, cols := len(res.Grid), len(res.Grid[0])

	for x := 0; x < cols; x++ {
		if !res.Grid[0][x] || !res.Grid[rows-1][x] {
			t.Fatalf("Open border at column %d", x)
		}
	}
	for y := 0; y < rows; y++ {
		if !res.Grid[y][0] || !res.Grid[y][cols-1] {
			t.Fatalf("Open border at row %d", y)
		}
	}
}

func TestSolutionPathIsConnected(t *testing.T) {
	res := Generate(Config{Width: 31, Height: 17, Seed: 42})

	path := res.SolutionPath
	if len(path) == 0 {
		t.Fatal("Expected a solution path")
	}
	if path[0] != res.Start || path[len(path)-1] != res.End {
		t.Errorf("Path runs %v..%v, want %v..%v", path[0], path[len(path)-1], res.Start, res.End)
	}
	for i, p := range path {
		if res.Grid[p.Y][p.X] == Wall {
			t.Fatalf("Path step %d at %v is a wall", i, p)
		}
		if i > 0 {
			prev := path[i-1]
			if abs(p.X-prev.X)+abs(p.Y-prev.Y) != 1 {
				t.Fatalf("Path step %d jumps from %v to %v", i, prev, p)
			}
		}
	}
}

func TestEveryRoomReachable(t *testing.T) {
	res := Generate(Config{Width: 21, Height: 21, Seed: 11})
	for y := 1; y < len(res.Grid)-1; y += 2 {
		for x := 1; x < len(res.Grid[0])-1; x += 2 {
			if solve(res.Grid, res.Start, Point{x, y}) == nil {
				t.Errorf("Room (%d,%d) unreachable", x, y)
			}
		}
	}
}

func TestBraidingNeverOpensPlazas(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		res := Generate(Config{Width: 21, Height: 15, Braiding: 1, Seed: seed})
		g := res.Grid
		for y := 0; y < len(g)-1; y++ {
			for x := 0; x < len(g[0])-1; x++ {
				if !g[y][x] && !g[y][x+1] && !g[y+1][x] && !g[y+1][x+1] {
					t.Fatalf("seed %d: 2x2 plaza at (%d,%d)", seed, x, y)
				}
			}
		}
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	cfg := Config{Width: 19, Height: 13, Braiding: 0.5, Seed: 99}
	if !reflect.DeepEqual(Generate(cfg), Generate(cfg)) {
		t.Error("Same seed produced different mazes")
	}
}

func TestOpenHeadingFacesPassage(t *testing.T) {
	res := Generate(Config{Width: 15, Height: 9, Seed: 5})
	a := res.OpenHeading(res.Start)

	dx := int(math.Round(math.Cos(a)))
	dy := int(math.Round(math.Sin(a)))
	if !isPassage(res.Grid, res.Start.X+dx, res.Start.Y+dy) {
		t.Errorf("Heading %.2f from %v points into a wall", a, res.Start)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
