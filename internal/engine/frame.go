package engine

import "fmt"

// LineCommand is a vertical run of pixels in one column, inclusive.
type LineCommand struct {
	Column  int
	YTop    int
	YBottom int
	Color   RGB
}

// PointCommand is a single pixel.
type PointCommand struct {
	X, Y  int
	Color RGB
}

// Layer is a batch of commands drawn lines first, then points.
type Layer struct {
	Lines  []LineCommand
	Points []PointCommand
}

// Frame is everything a frontend needs to present one tick. The scene is
// drawn first, the overlay (minimap) on top.
type Frame struct {
	Width, Height int
	Scene         Layer
	Overlay       Layer
	Track         Track
}

type FrameOptions struct {
	HorizonBand bool
	Minimap     bool
}

// BuildFrame casts every column, projects the entity and assembles the
// draw commands for a width x height viewport.
func BuildFrame(w *World, width, height int, opts FrameOptions) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("build frame: viewport %dx%d", width, height)
	}
	f := &Frame{Width: width, Height: height, Track: w.Track()}
	pose := w.Pose()

	lines := 1
	if opts.HorizonBand {
		lines = 2
	}
	f.Scene.Lines = make([]LineCommand, 0, width*lines)
	zbuf := make([]float64, width)

	for x := 0; x < width; x++ {
		hit, err := Cast(x, width, pose, w.Grid())
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", x, err)
		}
		zbuf[x] = hit.Distance

		lh := LineHeight(width, hit.Distance)
		top, bottom := DrawSpan(lh, height)
		f.Scene.Lines = append(f.Scene.Lines, LineCommand{
			Column: x, YTop: top, YBottom: bottom,
			Color: WallColor(hit.Cell, hit.Side),
		})
		if opts.HorizonBand {
			top, bottom = BandSpan(lh, height)
			f.Scene.Lines = append(f.Scene.Lines, LineCommand{
				Column: x, YTop: top, YBottom: bottom,
				Color: Palette.Horizon,
			})
		}
	}

	if s, ok := Project(pose, w.Entity(), width, height); ok {
		f.Scene.Points = s.Points(width, height, zbuf)
	}

	if opts.Minimap {
		f.Overlay = minimap(pose, width, height)
	}
	return f, nil
}

// Viewport letterboxes a raw window size to the 5:3 drawing area, using the
// same truncating integer steps as the window sizing code always has.
func Viewport(rawW, rawH int) (w, h int) {
	if rawW <= 0 || rawH <= 0 {
		return 0, 0
	}
	if rawW/AspectW <= rawH/AspectH {
		w = rawW
		h = w / AspectW * AspectH
	} else {
		h = rawH
		w = h / AspectH * AspectW
	}
	return w, h
}

// minimap draws a black square with the view direction as a green needle.
func minimap(pose Pose, width, height int) Layer {
	var l Layer
	screen := Screen(width, height)
	box := Rect{
		X0: MinimapX, Y0: MinimapY,
		X1: MinimapX + MinimapSize, Y1: MinimapY + MinimapSize,
	}.Intersect(screen)
	if box.Empty() {
		return l
	}
	for x := box.X0; x < box.X1; x++ {
		l.Lines = append(l.Lines, LineCommand{
			Column: x, YTop: box.Y0, YBottom: box.Y1 - 1,
			Color: Palette.MinimapBG,
		})
	}

	cx := MinimapX + MinimapSize/2
	cy := MinimapY + MinimapSize/2
	tipX := int(float64(cx) - pose.Dir.X*MinimapNeedle)
	tipY := int(float64(cy) - pose.Dir.Y*MinimapNeedle)
	for _, p := range segment(cx, cy, tipX, tipY) {
		if screen.Contains(p.X, p.Y) {
			p.Color = Palette.MinimapDir
			l.Points = append(l.Points, p)
		}
	}
	return l
}

// segment walks a Bresenham line from (x0,y0) to (x1,y1) inclusive.
func segment(x0, y0, x1, y1 int) []PointCommand {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	n := max(dx, -dy) + 1
	out := make([]PointCommand, 0, n)
	e := dx + dy
	for {
		out = append(out, PointCommand{X: x0, Y: y0})
		if x0 == x1 && y0 == y1 {
			return out
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}
