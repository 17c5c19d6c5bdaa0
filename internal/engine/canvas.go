package engine

// Canvas is a software framebuffer that frames can be rasterized into, for
// frontends without their own line primitives.
type Canvas struct {
	Width, Height int
	Pix           []RGB // row-major
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the buffer only when it has to grow.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	if cap(c.Pix) < w*h {
		c.Pix = make([]RGB, w*h)
	}
	c.Pix = c.Pix[:w*h]
}

func (c *Canvas) Clear(col RGB) {
	for i := range c.Pix {
		c.Pix[i] = col
	}
}

func (c *Canvas) Set(x, y int, col RGB) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.Pix[y*c.Width+x] = col
}

func (c *Canvas) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return RGB{}
	}
	return c.Pix[y*c.Width+x]
}

func (c *Canvas) VLine(l LineCommand) {
	if l.Column < 0 || l.Column >= c.Width || c.Height == 0 {
		return
	}
	top := clamp(l.YTop, 0, c.Height-1)
	bottom := clamp(l.YBottom, 0, c.Height-1)
	for y := top; y <= bottom; y++ {
		c.Pix[y*c.Width+l.Column] = l.Color
	}
}

func (c *Canvas) DrawLayer(l Layer) {
	for _, line := range l.Lines {
		c.VLine(line)
	}
	for _, p := range l.Points {
		c.Set(p.X, p.Y, p.Color)
	}
}

// DrawFrame clears to the background and draws the scene then the overlay,
// resizing to the frame first.
func (c *Canvas) DrawFrame(f *Frame) {
	c.Resize(f.Width, f.Height)
	c.Clear(Palette.Background)
	c.DrawLayer(f.Scene)
	c.DrawLayer(f.Overlay)
}
