package engine

import (
	"math"
	"testing"

	"github.com/pixil98/go-testutil"
)

// spritePose looks down -x with a 0.5 plane so projections come out exact.
func spritePose() Pose {
	return Pose{Pos: Vec2{X: 5.5, Y: 5.5}, Dir: Vec2{X: -1}, Plane: Vec2{Y: 0.5}}
}

func TestProject_Ahead(t *testing.T) {
	s, ok := Project(spritePose(), Vec2{X: 3.5, Y: 5.5}, 400, 240)
	if !ok {
		t.Fatal("expected sprite to be visible")
	}
	testutil.AssertEqual(t, "screen x", s.ScreenX, 200)
	testutil.AssertEqual(t, "size", s.Size, 120)
	testutil.AssertEqual(t, "depth", s.Depth, 2.0)
	testutil.AssertEqual(t, "box", s.Box, Rect{X0: 140, Y0: 60, X1: 260, Y1: 180})
}

func TestProject_NoDraw(t *testing.T) {
	tests := map[string]struct {
		pose   Pose
		entity Vec2
	}{
		"behind":        {pose: spritePose(), entity: Vec2{X: 7.5, Y: 5.5}},
		"on the camera": {pose: spritePose(), entity: Vec2{X: 5.5, Y: 5.5}},
		"beside":        {pose: spritePose(), entity: Vec2{X: 5.5, Y: 9.5}},
		"off screen":    {pose: spritePose(), entity: Vec2{X: 4.5, Y: -44.5}},
		"zero det": {
			pose:   Pose{Pos: Vec2{X: 5.5, Y: 5.5}, Dir: Vec2{X: -1}, Plane: Vec2{X: 1}},
			entity: Vec2{X: 3.5, Y: 5.5},
		},
		"nan entity": {pose: spritePose(), entity: Vec2{X: math.NaN(), Y: 5.5}},
		"inf entity": {pose: spritePose(), entity: Vec2{X: math.Inf(-1), Y: 5.5}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, ok := Project(tt.pose, tt.entity, 400, 240)
			testutil.AssertEqual(t, "ok", ok, false)
			testutil.AssertEqual(t, "sprite", s, Sprite{})
		})
	}
}

func TestProject_HugeClamped(t *testing.T) {
	s, ok := Project(spritePose(), Vec2{X: 5.5 - 1e-9, Y: 5.5}, 400, 240)
	if !ok {
		t.Fatal("expected sprite to be visible")
	}
	testutil.AssertEqual(t, "size", s.Size, maxSpriteExtent)
}

func TestSprite_Points(t *testing.T) {
	s, ok := Project(spritePose(), Vec2{X: 3.5, Y: 5.5}, 400, 240)
	if !ok {
		t.Fatal("expected sprite to be visible")
	}

	pts := s.Points(400, 240, nil)
	testutil.AssertEqual(t, "count", len(pts), 120*120)

	byPos := make(map[[2]int]RGB, len(pts))
	for _, p := range pts {
		byPos[[2]int{p.X, p.Y}] = p.Color
	}
	testutil.AssertEqual(t, "corner", byPos[[2]int{140, 60}], Palette.Backdrop)
	testutil.AssertEqual(t, "centre", byPos[[2]int{200, 120}], RGB{R: 128, G: 128, B: 190})
	testutil.AssertEqual(t, "left middle", byPos[[2]int{141, 120}], RGB{R: 3, G: 128, B: 253})
}

func TestSprite_PointsOcclusion(t *testing.T) {
	s, ok := Project(spritePose(), Vec2{X: 3.5, Y: 5.5}, 400, 240)
	if !ok {
		t.Fatal("expected sprite to be visible")
	}

	near := make([]float64, 400)
	far := make([]float64, 400)
	for i := range near {
		near[i] = 1
		far[i] = 5
	}
	testutil.AssertEqual(t, "behind wall", len(s.Points(400, 240, near)), 0)
	testutil.AssertEqual(t, "in front of wall", len(s.Points(400, 240, far)), 120*120)

	// Occlude only the left half of the box.
	for x := 140; x < 200; x++ {
		far[x] = 1
	}
	testutil.AssertEqual(t, "half hidden", len(s.Points(400, 240, far)), 60*120)
}

func TestSprite_PointsClipped(t *testing.T) {
	s, ok := Project(spritePose(), Vec2{X: 5.25, Y: 5.5}, 400, 240)
	if !ok {
		t.Fatal("expected sprite to be visible")
	}
	testutil.AssertEqual(t, "size", s.Size, 960)

	pts := s.Points(400, 240, nil)
	testutil.AssertEqual(t, "count", len(pts), 400*240)
	for _, p := range pts {
		if p.X < 0 || p.X >= 400 || p.Y < 0 || p.Y >= 240 {
			t.Fatalf("point %v off screen", p)
		}
	}
}
