package maze

import (
	"errors"
	"fmt"
)

// ErrConfiguration is returned for dimensions the carver cannot guarantee a
// connected maze for: they must be equal, odd and at least MinSize.
var ErrConfiguration = errors.New("invalid maze configuration")

const MinSize = 5

// Working codes used while carving.
const (
	unvisited uint8 = 0
	visited   uint8 = 1
	tentative uint8 = 2
	border    uint8 = 1
)

type Direction int

const (
	North Direction = iota
	South
	West
	East
)

func (d Direction) offset() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 1, 0
	}
}

// Generate carves a perfect maze with a randomized depth-first backtracker.
//
// Cells with an odd coordinate start as tentative walls, even/even cells are
// rooms. Carving walks the room lattice from the centre, opening the corridor
// cell between a room and each unvisited neighbour two cells away. Tentative
// walls left at the end become walls with a random colour in 1..7; the border
// stays code 1.
func Generate(width, height int, rng RNG) (*Grid, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}

	cells := make([]uint8, width*height)
	idx := func(x, y int) int { return y*width + x }

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if x%2 == 1 || y%2 == 1 {
				cells[idx(x, y)] = tentative
			}
			if isBorder(x, y, width, height) {
				cells[idx(x, y)] = border
			}
		}
	}

	start := centerLattice(width, height)
	carve(cells, width, start, rng)

	// Column-major, matching the order colours were historically drawn in.
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			i := idx(x, y)
			switch {
			case isBorder(x, y, width, height):
				cells[i] = border
			case cells[i] == tentative:
				cells[i] = uint8(rng.Intn(int(MaxColor))) + 1
			default:
				cells[i] = Passage
			}
		}
	}

	return &Grid{width: width, height: height, cells: cells, start: start}, nil
}

func validateSize(width, height int) error {
	switch {
	case width != height:
		return fmt.Errorf("%w: width %d != height %d", ErrConfiguration, width, height)
	case width%2 == 0:
		return fmt.Errorf("%w: size %d is even", ErrConfiguration, width)
	case width < MinSize:
		return fmt.Errorf("%w: size %d below minimum %d", ErrConfiguration, width, MinSize)
	}
	return nil
}

func isBorder(x, y, width, height int) bool {
	return x == 0 || y == 0 || x == width-1 || y == height-1
}

// centerLattice returns the even lattice point nearest the middle.
func centerLattice(width, height int) Point {
	return Point{X: (width - width%4) / 2, Y: (height - height%4) / 2}
}

// carveFrame is one level of the depth-first walk: a room and the
// directions still to try from it.
type carveFrame struct {
	x, y int
	dirs [4]Direction
	n    int
	next int
}

// carve runs the backtracker on an explicit stack so deep lattices cannot
// exhaust the goroutine stack. The visiting order is identical to the
// recursive formulation: a room is marked and its directions shuffled on
// entry, and each direction is re-checked right before it is taken.
func carve(cells []uint8, width int, start Point, rng RNG) {
	at := func(x, y int) uint8 { return cells[y*width+x] }

	enter := func(x, y int) carveFrame {
		cells[y*width+x] = visited
		f := carveFrame{x: x, y: y}
		// A fully enclosed room skips the shuffle and so draws nothing.
		if at(x, y+2) == visited && at(x, y-2) == visited &&
			at(x-2, y) == visited && at(x+2, y) == visited {
			return f
		}
		f.dirs = [4]Direction{North, South, West, East}
		shuffle(rng, f.dirs[:])
		f.n = len(f.dirs)
		return f
	}

	stack := []carveFrame{enter(start.X, start.Y)}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= top.n {
			stack = stack[:len(stack)-1]
			continue
		}
		dx, dy := top.dirs[top.next].offset()
		top.next++

		nx, ny := top.x+2*dx, top.y+2*dy
		if at(nx, ny) == visited {
			continue
		}
		cells[(top.y+dy)*width+top.x+dx] = visited
		stack = append(stack, enter(nx, ny))
	}
}
