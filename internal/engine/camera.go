package engine

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateRay reports a pose whose rays cannot be cast: a zero or
// non-finite direction or camera plane, or a plane parallel to the
// direction.
var ErrDegenerateRay = errors.New("degenerate camera pose")

// Pose is the player camera. Dir and Plane are always rotated together.
type Pose struct {
	Pos   Vec2 // continuous grid position
	Dir   Vec2 // view direction
	Plane Vec2 // camera plane, perpendicular to Dir
}

// NewPose places a camera at pos looking down -x with the given horizontal
// field of view in degrees. The plane length is tan(fov/2).
func NewPose(pos Vec2, fovDeg float64) Pose {
	dir := Vec2{X: -1, Y: 0}
	half := math.Tan(fovDeg * math.Pi / 360)
	return Pose{
		Pos:   pos,
		Dir:   dir,
		Plane: Vec2{X: dir.Y, Y: -dir.X}.Scale(half),
	}
}

// Det is the camera matrix determinant used by sprite projection.
func (p Pose) Det() float64 {
	return p.Plane.Cross(p.Dir)
}

func (p Pose) Validate() error {
	switch {
	case !p.Pos.Finite() || !p.Dir.Finite() || !p.Plane.Finite():
		return fmt.Errorf("%w: non-finite component", ErrDegenerateRay)
	case p.Dir.IsZero():
		return fmt.Errorf("%w: zero direction", ErrDegenerateRay)
	case p.Plane.IsZero():
		return fmt.Errorf("%w: zero camera plane", ErrDegenerateRay)
	case p.Det() == 0:
		return fmt.Errorf("%w: plane parallel to direction", ErrDegenerateRay)
	}
	return nil
}

// Rotate turns Dir and Plane by angle radians (positive is counter-clockwise
// in grid space, i.e. a left turn on screen).
func (p Pose) Rotate(angle float64) Pose {
	c, s := math.Cos(angle), math.Sin(angle)
	p.Dir = p.Dir.rotate(c, s)
	p.Plane = p.Plane.rotate(c, s)
	return p
}
