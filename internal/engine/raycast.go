package engine

import (
	"errors"
	"fmt"
	"math"

	"raycaster/internal/maze"
)

// ErrTraversalBound means a ray walked more cells than the grid can hold
// without hitting a wall, or left the grid. The border is always solid, so
// this is a broken invariant rather than a recoverable condition.
var ErrTraversalBound = errors.New("ray traversal bound exceeded")

// noCrossing stands in for 1/0 on an axis the ray never crosses.
const noCrossing = 1e30

// maxLineHeight caps projected heights for rays that start on a wall face.
const maxLineHeight = 1 << 20

// RayHit is the first wall a column's ray meets.
type RayHit struct {
	Distance float64 // perpendicular distance to the camera plane
	Side     int     // 0: crossed an x boundary, 1: a y boundary
	Cell     uint8
	MapX     int
	MapY     int
	Steps    int
}

// Cast fires the ray for one screen column through the grid with DDA.
func Cast(column, screenWidth int, pose Pose, grid *maze.Grid) (RayHit, error) {
	if screenWidth <= 0 {
		return RayHit{}, fmt.Errorf("%w: screen width %d", ErrDegenerateRay, screenWidth)
	}
	cameraX := 2*float64(column)/float64(screenWidth) - 1
	rayDir := Vec2{
		X: pose.Dir.X + pose.Plane.X*cameraX,
		Y: pose.Dir.Y + pose.Plane.Y*cameraX,
	}
	return castRay(pose.Pos, rayDir, grid)
}

func castRay(pos, rayDir Vec2, grid *maze.Grid) (RayHit, error) {
	if !pos.Finite() || !rayDir.Finite() || rayDir.IsZero() {
		return RayHit{}, fmt.Errorf("%w: ray %v from %v", ErrDegenerateRay, rayDir, pos)
	}

	mapX, mapY := pos.Cell()

	deltaX, deltaY := noCrossing, noCrossing
	if rayDir.X != 0 {
		deltaX = math.Abs(1 / rayDir.X)
	}
	if rayDir.Y != 0 {
		deltaY = math.Abs(1 / rayDir.Y)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if rayDir.X < 0 {
		stepX = -1
		sideX = (pos.X - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1.0 - pos.X) * deltaX
	}
	if rayDir.Y < 0 {
		stepY = -1
		sideY = (pos.Y - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1.0 - pos.Y) * deltaY
	}

	bound := grid.Width() + grid.Height()
	side := 0
	for steps := 1; steps <= bound; steps++ {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = 0
		} else {
			sideY += deltaY
			mapY += stepY
			side = 1
		}

		code, ok := grid.At(mapX, mapY)
		if !ok {
			return RayHit{}, fmt.Errorf("%w: left grid at (%d,%d)", ErrTraversalBound, mapX, mapY)
		}
		if code == maze.Passage {
			continue
		}

		dist := sideX - deltaX
		if side == 1 {
			dist = sideY - deltaY
		}
		return RayHit{
			Distance: dist,
			Side:     side,
			Cell:     code,
			MapX:     mapX,
			MapY:     mapY,
			Steps:    steps,
		}, nil
	}
	return RayHit{}, fmt.Errorf("%w: no wall within %d steps", ErrTraversalBound, bound)
}

// LineHeight is the projected wall height in pixels for a hit at dist.
func LineHeight(screenWidth int, dist float64) int {
	if dist <= 0 || !finite(dist) {
		return maxLineHeight
	}
	h := float64(screenWidth) / dist
	if h > maxLineHeight {
		return maxLineHeight
	}
	return int(h)
}

// DrawSpan centres a line of the given height on the horizon and clamps it
// to the rows [0, screenHeight-1].
func DrawSpan(lineHeight, screenHeight int) (top, bottom int) {
	return centredSpan(lineHeight/2, screenHeight)
}

// BandSpan is the horizon band drawn over each wall slice: a twentieth of
// the wall height either side of the horizon.
func BandSpan(lineHeight, screenHeight int) (top, bottom int) {
	return centredSpan(lineHeight/20, screenHeight)
}

func centredSpan(half, screenHeight int) (top, bottom int) {
	top = -half + screenHeight/2
	if top < 0 {
		top = 0
	}
	bottom = half + screenHeight/2
	if bottom >= screenHeight {
		bottom = screenHeight - 1
	}
	return top, bottom
}
