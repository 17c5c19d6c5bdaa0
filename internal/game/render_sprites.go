package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"raycaster/internal/engine"
)

// DrawPoints renders single-pixel points, the sprite mask and minimap needle.
func (r *Renderer) DrawPoints(points []engine.PointCommand) {
	if len(points) == 0 {
		return
	}
	r.buf = appendPoints(r.buf[:0], points)
	r.draw(gl.POINTS)
}
