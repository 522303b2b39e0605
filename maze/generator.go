// Package maze generates procedural wall grids for the raycaster.
package maze

import (
	"math"
	"math/rand"
	"time"
)

// Cell types
const (
	Wall    = true
	Passage = false
)

type Point struct {
	X, Y int
}

type Config struct {
	Width, Height int

	// Braiding: 0.0 (perfect maze, one route between any two rooms) to 1.0
	// (no dead ends). Never opens 2x2 plazas or leaves free-standing pillars.
	Braiding float64

	Seed int64 // 0 = time-based
}

type Result struct {
	Grid         [][]bool // [y][x], true = wall
	Start, End   Point
	SolutionPath []Point // Start..End inclusive, nil if unreachable
}

var (
	orthogonal = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	jumps      = [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
)

// Generate carves a maze with a recursive backtracker, optionally braids it,
// and solves it from the top-left room to the bottom-right room
func Generate(cfg Config) Result {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	grid := make([][]bool, rows)
	for y := range grid {
		grid[y] = make([]bool, cols)
		for x := range grid[y] {
			grid[y][x] = Wall
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	start := Point{1, 1}
	end := Point{cols - 2, rows - 2}

	carve(grid, start, rng)
	if cfg.Braiding > 0 {
		braid(grid, cfg.Braiding, rng)
	}

	return Result{
		Grid:         grid,
		Start:        start,
		End:          end,
		SolutionPath: solve(grid, start, end),
	}
}

// OpenHeading returns a heading in radians from p toward its first open
// neighbour, so a spawned player does not stare into a wall
func (r Result) OpenHeading(p Point) float64 {
	for _, d := range orthogonal {
		if isPassage(r.Grid, p.X+d.X, p.Y+d.Y) {
			return math.Atan2(float64(d.Y), float64(d.X))
		}
	}
	return 0
}

// carve is an iterative recursive backtracker producing a uniform spanning tree over odd cells
func carve(grid [][]bool, start Point, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	grid[start.Y][start.X] = Passage
	stack := []Point{start}

	var options [4]Point
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		n := 0
		for _, d := range jumps {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] == Wall {
				options[n] = d
				n++
			}
		}
		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := options[rng.Intn(n)]
		grid[cur.Y+d.Y/2][cur.X+d.X/2] = Passage
		next := Point{cur.X + d.X, cur.Y + d.Y}
		grid[next.Y][next.X] = Passage
		stack = append(stack, next)
	}
}

// braid knocks out one wall at a dead end with the given probability, creating loops
func braid(grid [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if grid[y][x] == Wall || exits(grid, x, y) != 1 || rng.Float64() >= probability {
				continue
			}

			var candidates [4]Point
			n := 0
			for _, d := range jumps {
				wx, wy := x+d.X/2, y+d.Y/2
				if isPassage(grid, x+d.X, y+d.Y) && grid[wy][wx] == Wall && safeToOpen(grid, wx, wy) {
					candidates[n] = Point{wx, wy}
					n++
				}
			}
			if n > 0 {
				c := candidates[rng.Intn(n)]
				grid[c.Y][c.X] = Passage
			}
		}
	}
}

func exits(grid [][]bool, x, y int) int {
	n := 0
	for _, d := range orthogonal {
		if isPassage(grid, x+d.X, y+d.Y) {
			n++
		}
	}
	return n
}

// safeToOpen rejects openings that would create a 2x2 plaza or isolate a wall pillar
func safeToOpen(grid [][]bool, x, y int) bool {
	quads := [4][3]Point{
		{{-1, -1}, {0, -1}, {-1, 0}},
		{{0, -1}, {1, -1}, {1, 0}},
		{{-1, 0}, {-1, 1}, {0, 1}},
		{{1, 0}, {0, 1}, {1, 1}},
	}
	for _, q := range quads {
		if isPassage(grid, x+q[0].X, y+q[0].Y) && isPassage(grid, x+q[1].X, y+q[1].Y) && isPassage(grid, x+q[2].X, y+q[2].Y) {
			return false
		}
	}

	for _, d := range orthogonal {
		nx, ny := x+d.X, y+d.Y
		if !isWall(grid, nx, ny) {
			continue
		}
		links := 0
		for _, d2 := range orthogonal {
			mx, my := nx+d2.X, ny+d2.Y
			if mx == x && my == y {
				continue // about to become passage
			}
			if isWall(grid, mx, my) {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}
	return true
}

// solve returns the BFS shortest path from start to end
func solve(grid [][]bool, start, end Point) []Point {
	if !isPassage(grid, start.X, start.Y) || !isPassage(grid, end.X, end.Y) {
		return nil
	}

	prev := map[Point]Point{start: start}
	queue := []Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == end {
			var path []Point
			for p := end; p != start; p = prev[p] {
				path = append(path, p)
			}
			path = append(path, start)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range orthogonal {
			next := Point{cur.X + d.X, cur.Y + d.Y}
			if _, seen := prev[next]; seen || !isPassage(grid, next.X, next.Y) {
				continue
			}
			prev[next] = cur
			queue = append(queue, next)
		}
	}
	return nil
}

// isPassage and isWall treat out-of-bounds as neither
func isPassage(grid [][]bool, x, y int) bool {
	return y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == Passage
}

func isWall(grid [][]bool, x, y int) bool {
	return y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == Wall
}

func ensureOdd(n int) int {
	if n < 5 {
		return 5
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
