package engine

import (
	"fmt"
	"time"

	"raycaster/internal/maze"
)

// Input is one tick of player intent plus the frame time it applies to.
type Input struct {
	Quit        bool
	Forward     bool
	Backward    bool
	RotateLeft  bool
	RotateRight bool
	MouseDX     float64 // horizontal mouse motion in pixels
	Elapsed     time.Duration
}

// Track selects the background loop by how close the entity is.
type Track int

const (
	TrackNone Track = iota
	TrackJitter
	TrackSwoop
	TrackCreep
)

func (t Track) String() string {
	switch t {
	case TrackJitter:
		return "jitter"
	case TrackSwoop:
		return "swoop"
	case TrackCreep:
		return "creep"
	default:
		return "none"
	}
}

// Rules are the tunable constants of the chase.
type Rules struct {
	ChaseScale    float64 // entity speed relative to the player
	CaptureRadius float64
	JitterRadius  float64
	SwoopRadius   float64
	CreepRadius   float64
}

func DefaultRules() Rules {
	return Rules{
		ChaseScale:    DefaultChaseScale,
		CaptureRadius: CaptureRadius,
		JitterRadius:  JitterRadius,
		SwoopRadius:   SwoopRadius,
		CreepRadius:   CreepRadius,
	}
}

// World owns the grid, the player pose and the chasing entity. Only Update
// mutates it.
type World struct {
	grid     *maze.Grid
	pose     Pose
	entity   Vec2
	rules    Rules
	captured bool
}

func NewWorld(grid *maze.Grid, pose Pose, entity Vec2, rules Rules) (*World, error) {
	if grid == nil {
		return nil, fmt.Errorf("new world: nil grid")
	}
	if err := pose.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	cx, cy := pose.Pos.Cell()
	if !grid.IsPassable(cx, cy) {
		return nil, fmt.Errorf("new world: player at (%.2f,%.2f) is inside a wall", pose.Pos.X, pose.Pos.Y)
	}
	if !entity.Finite() {
		return nil, fmt.Errorf("new world: entity position %v is not finite", entity)
	}
	w := &World{grid: grid, pose: pose, entity: entity, rules: rules}
	w.captured = w.Distance() < rules.CaptureRadius
	return w, nil
}

func (w *World) Grid() *maze.Grid { return w.grid }
func (w *World) Pose() Pose       { return w.pose }
func (w *World) Entity() Vec2     { return w.entity }
func (w *World) Captured() bool   { return w.captured }

// Distance from the entity to the player.
func (w *World) Distance() float64 { return w.entity.Dist(w.pose.Pos) }

// Update applies one tick: movement with per-axis collision, rotation, then
// one chase step. A rotation that would leave a degenerate pose is rejected
// with ErrDegenerateRay; the movement and chase of the tick still apply.
func (w *World) Update(in Input) error {
	ms := float64(in.Elapsed) / float64(time.Millisecond)
	if ms < 0 || !finite(ms) {
		ms = 0
	}
	moveSpeed := ms / 400
	rotSpeed := ms / 250

	if in.Forward {
		w.move(w.pose.Dir.Scale(moveSpeed))
	}
	if in.Backward {
		w.move(w.pose.Dir.Scale(-moveSpeed))
	}

	var rotErr error
	angle := 0.0
	if in.RotateLeft {
		angle += rotSpeed
	}
	if in.RotateRight {
		angle -= rotSpeed
	}
	if in.MouseDX != 0 {
		angle += rotSpeed * in.MouseDX / MouseRotateDivisor
	}
	if angle != 0 {
		rotErr = w.rotate(angle)
	}

	w.chase(moveSpeed * w.rules.ChaseScale)
	return rotErr
}

// move commits each axis of delta only if the cell it lands in is open. The
// y check uses the x already committed.
func (w *World) move(delta Vec2) {
	p := w.pose.Pos
	nx, cy := Vec2{X: p.X + delta.X, Y: p.Y}.Cell()
	if w.grid.IsPassable(nx, cy) {
		p.X += delta.X
	}
	cx, ny := Vec2{X: p.X, Y: p.Y + delta.Y}.Cell()
	if w.grid.IsPassable(cx, ny) {
		p.Y += delta.Y
	}
	w.pose.Pos = p
}

func (w *World) rotate(angle float64) error {
	next := w.pose.Rotate(angle)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("rotate by %.4f: %w", angle, err)
	}
	w.pose = next
	return nil
}

// chase steps the entity straight at the player, through walls.
func (w *World) chase(step float64) {
	if w.captured {
		return
	}
	off := w.pose.Pos.Sub(w.entity)
	d := off.Len()
	if d == 0 || !finite(d) {
		w.captured = true
		return
	}
	if step > 0 {
		if step > d {
			step = d
		}
		w.entity = w.entity.Add(off.Scale(step / d))
	}
	if w.Distance() < w.rules.CaptureRadius {
		w.captured = true
	}
}

// Track picks the loop for the current entity distance.
func (w *World) Track() Track {
	d := w.Distance()
	switch {
	case d < w.rules.JitterRadius:
		return TrackJitter
	case d < w.rules.SwoopRadius:
		return TrackSwoop
	case d < w.rules.CreepRadius:
		return TrackCreep
	default:
		return TrackNone
	}
}
