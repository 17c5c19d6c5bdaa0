package maze

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Cell codes. Any non-zero code is a wall whose low three bits pick its
// colour: bit2 red, bit1 green, bit0 blue.
const (
	Passage  uint8 = 0
	MaxColor uint8 = 7
)

var ErrCorruptGrid = errors.New("corrupt grid data")

// Grid is an immutable row-major occupancy map.
type Grid struct {
	width, height int
	cells         []uint8
	start         Point
}

type Point struct {
	X, Y int
}

// FromCells builds a grid over a copy of cells. Codes above MaxColor are
// rejected.
func FromCells(width, height int, cells []uint8) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrCorruptGrid, width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: have %d cells, want %d", ErrCorruptGrid, len(cells), width*height)
	}
	for i, c := range cells {
		if c > MaxColor {
			return nil, fmt.Errorf("%w: cell %d has code %d", ErrCorruptGrid, i, c)
		}
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]uint8, len(cells)),
		start:  centerLattice(width, height),
	}
	copy(g.cells, cells)
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Start is the lattice cell the carving began from.
func (g *Grid) Start() Point { return g.start }

// Index maps (x, y) to the flat cell index. The caller checks bounds.
func (g *Grid) Index(x, y int) int { return y*g.width + x }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// At returns the cell code at (x, y); ok is false outside the grid.
func (g *Grid) At(x, y int) (code uint8, ok bool) {
	if !g.InBounds(x, y) {
		return 0, false
	}
	return g.cells[g.Index(x, y)], true
}

// IsPassable reports whether (x, y) is inside the grid and open.
func (g *Grid) IsPassable(x, y int) bool {
	c, ok := g.At(x, y)
	return ok && c == Passage
}

// Cells returns a copy of the row-major cell codes.
func (g *Grid) Cells() []uint8 {
	out := make([]uint8, len(g.cells))
	copy(out, g.cells)
	return out
}

// PassableCount returns the number of open cells.
func (g *Grid) PassableCount() int {
	n := 0
	for _, c := range g.cells {
		if c == Passage {
			n++
		}
	}
	return n
}

// Reachable flood-fills from (x, y) across orthogonal neighbours and
// returns how many open cells it reached.
func (g *Grid) Reachable(x, y int) int {
	if !g.IsPassable(x, y) {
		return 0
	}
	seen := make([]bool, len(g.cells))
	queue := []Point{{x, y}}
	seen[g.Index(x, y)] = true
	count := 0
	dirs := []Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		count++
		for _, d := range dirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if !g.IsPassable(nx, ny) {
				continue
			}
			i := g.Index(nx, ny)
			if seen[i] {
				continue
			}
			seen[i] = true
			queue = append(queue, Point{nx, ny})
		}
	}
	return count
}

// WriteTo writes the grid as width*height raw bytes, row-major.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(g.cells)
	return int64(n), err
}

// ReadGrid reads a grid written by WriteTo.
func ReadGrid(r io.Reader, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrCorruptGrid, width, height)
	}
	buf := make([]uint8, width*height)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: reading cells: %v", ErrCorruptGrid, err)
	}
	return FromCells(width, height, buf)
}

// String renders walls as full blocks, one text row per grid row.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width*3 + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[g.Index(x, y)] == Passage {
				sb.WriteByte(' ')
			} else {
				sb.WriteString("█")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
