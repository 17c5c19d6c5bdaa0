package engine

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Half darkens every channel by one bit, the shading used for y-side walls.
func (c RGB) Half() RGB {
	return RGB{R: c.R / 2, G: c.G / 2, B: c.B / 2}
}

var Palette = struct {
	Background RGB
	Horizon    RGB
	Backdrop   RGB
	MinimapBG  RGB
	MinimapDir RGB
}{
	Background: RGB{R: 0, G: 0, B: 0},
	Horizon:    RGB{R: 60, G: 60, B: 60},
	Backdrop:   RGB{R: 40, G: 40, B: 40},
	MinimapBG:  RGB{R: 0, G: 0, B: 0},
	MinimapDir: RGB{R: 0, G: 255, B: 0},
}

// WallColor maps a wall code to its colour: bit2 red, bit1 green, bit0 blue.
// Side 1 (a y-boundary hit) is drawn at half intensity.
func WallColor(code uint8, side int) RGB {
	var c RGB
	if code&4 != 0 {
		c.R = 255
	}
	if code&2 != 0 {
		c.G = 255
	}
	if code&1 != 0 {
		c.B = 255
	}
	if side == 1 {
		c = c.Half()
	}
	return c
}
