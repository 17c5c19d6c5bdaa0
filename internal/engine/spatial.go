package engine

// Rect is an integer pixel rectangle, half-open: [X0, X1) x [Y0, Y1).
type Rect struct {
	X0, Y0 int
	X1, Y1 int
}

func (r Rect) Empty() bool { return r.X0 >= r.X1 || r.Y0 >= r.Y1 }

func (r Rect) Intersects(o Rect) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Y0 < o.Y1 && r.Y1 > o.Y0
}

// Intersect returns the overlap of r and o; the result may be Empty.
func (r Rect) Intersect(o Rect) Rect {
	out := r
	if o.X0 > out.X0 {
		out.X0 = o.X0
	}
	if o.Y0 > out.Y0 {
		out.Y0 = o.Y0
	}
	if o.X1 < out.X1 {
		out.X1 = o.X1
	}
	if o.Y1 < out.Y1 {
		out.Y1 = o.Y1
	}
	return out
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// Screen is the full drawable rectangle of a w x h target.
func Screen(w, h int) Rect { return Rect{X1: w, Y1: h} }
