package engine

import "math"

// maxSpriteExtent caps the projected size of an entity standing right in
// front of the camera.
const maxSpriteExtent = 1 << 15

// Sprite is an entity projected to screen space as a square box centred
// on the horizon.
type Sprite struct {
	ScreenX int     // box centre column
	Size    int     // box width and height in pixels
	Depth   float64 // camera-space depth (transformY)
	Box     Rect
}

// Project maps an entity position into screen space. ok is false when the
// entity is behind the camera, the box misses the screen entirely, or the
// pose cannot produce a finite projection.
func Project(pose Pose, entity Vec2, screenW, screenH int) (Sprite, bool) {
	det := pose.Det()
	if det == 0 || !finite(det) || screenW <= 0 || screenH <= 0 {
		return Sprite{}, false
	}
	invDet := 1 / det

	dx := entity.X - pose.Pos.X
	dy := entity.Y - pose.Pos.Y
	transformX := invDet * (pose.Dir.Y*dx - pose.Dir.X*dy)
	transformY := invDet * (-pose.Plane.Y*dx + pose.Plane.X*dy)
	if !finite(transformX, transformY) || transformY <= 0 {
		return Sprite{}, false
	}

	screenX := float64(screenW) / 2 * (1 + transformX/transformY)
	size := math.Abs(float64(screenH) / transformY)
	if !finite(screenX, size) {
		return Sprite{}, false
	}
	size = math.Min(size, maxSpriteExtent)
	// Anything this far out cannot reach the screen even at full size.
	if screenX < -maxSpriteExtent || screenX > float64(screenW)+maxSpriteExtent {
		return Sprite{}, false
	}

	s := Sprite{
		ScreenX: int(screenX),
		Size:    int(size),
		Depth:   transformY,
	}
	half := s.Size / 2
	s.Box = Rect{
		X0: s.ScreenX - half,
		X1: s.ScreenX - half + s.Size,
		Y0: screenH/2 - half,
		Y1: screenH/2 - half + s.Size,
	}
	if s.Box.Empty() || !s.Box.Intersects(Screen(screenW, screenH)) {
		return Sprite{}, false
	}
	return s, true
}

// Points rasterizes the sprite box clipped to the screen. Pixels within the
// inscribed circle get a position gradient, the rest the backdrop tone.
// Columns whose wall in zbuf is nearer than the sprite are skipped; a nil
// zbuf disables occlusion.
func (s Sprite) Points(screenW, screenH int, zbuf []float64) []PointCommand {
	clip := s.Box.Intersect(Screen(screenW, screenH))
	if clip.Empty() {
		return nil
	}

	w := float64(s.Box.X1 - s.Box.X0)
	h := float64(s.Box.Y1 - s.Box.Y0)
	cx := float64(s.Box.X0) + w/2
	cy := float64(s.Box.Y0) + h/2
	r2 := w * h / 4

	out := make([]PointCommand, 0, (clip.X1-clip.X0)*(clip.Y1-clip.Y0))
	for x := clip.X0; x < clip.X1; x++ {
		if zbuf != nil && x < len(zbuf) && zbuf[x] < s.Depth {
			continue
		}
		dx := float64(x) + 0.5 - cx
		for y := clip.Y0; y < clip.Y1; y++ {
			dy := float64(y) + 0.5 - cy
			color := Palette.Backdrop
			if dx*dx+dy*dy <= r2 {
				color = spriteGradient(dx/w, dy/h)
			}
			out = append(out, PointCommand{X: x, Y: y, Color: color})
		}
	}
	return out
}

// spriteGradient shades by position within the box; u and v run -0.5..0.5.
func spriteGradient(u, v float64) RGB {
	r := clampF(255*(u+0.5), 0, 255)
	g := clampF(255*(v+0.5), 0, 255)
	b := clampF(255-r/2, 0, 255)
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}
