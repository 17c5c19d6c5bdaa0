package game

import "raycaster/internal/engine"

// Each vertex is x, y, r, g, b in viewport pixels and 0..1 colour.
const floatsPerVertex = 5

// appendLines packs each column span as one GL line. Lines are offset to
// pixel centres and the bottom end is pushed one pixel down since GL omits
// the last pixel of a line.
func appendLines(buf []float32, lines []engine.LineCommand) []float32 {
	for _, l := range lines {
		x := float32(l.Column) + 0.5
		r, g, b := colorF(l.Color)
		buf = append(buf,
			x, float32(l.YTop), r, g, b,
			x, float32(l.YBottom)+1, r, g, b,
		)
	}
	return buf
}

func appendPoints(buf []float32, points []engine.PointCommand) []float32 {
	for _, p := range points {
		r, g, b := colorF(p.Color)
		buf = append(buf, float32(p.X)+0.5, float32(p.Y)+0.5, r, g, b)
	}
	return buf
}

func colorF(c engine.RGB) (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

// viewportRect places the letterboxed viewport in the top-left corner of a
// framebuffer, returned in GL coordinates (origin bottom-left).
func viewportRect(fbW, fbH int) (x, y, w, h int) {
	w, h = engine.Viewport(fbW, fbH)
	return 0, fbH - h, w, h
}
