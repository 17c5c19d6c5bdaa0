package maze

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestGenerate_RejectsBadSizes(t *testing.T) {
	tests := map[string]struct {
		width, height int
		expErr        string
	}{
		"non-square":   {width: 15, height: 17, expErr: "width 15 != height 17"},
		"even":         {width: 16, height: 16, expErr: "size 16 is even"},
		"too small":    {width: 3, height: 3, expErr: "below minimum"},
		"zero":         {width: 0, height: 0, expErr: "even"},
		"negative odd": {width: -5, height: -5, expErr: "below minimum"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g, err := Generate(tt.width, tt.height, NewRand(1))
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
			if g != nil {
				t.Error("expected nil grid on error")
			}
		})
	}
}

func TestGenerate_Properties(t *testing.T) {
	for size := MinSize; size <= 41; size += 2 {
		for seed := uint64(1); seed <= 8; seed++ {
			g, err := Generate(size, size, NewRand(seed))
			if err != nil {
				t.Fatalf("size %d seed %d: %v", size, seed, err)
			}

			for i := 0; i < size; i++ {
				for _, p := range []Point{{i, 0}, {i, size - 1}, {0, i}, {size - 1, i}} {
					if g.IsPassable(p.X, p.Y) {
						t.Fatalf("size %d seed %d: border cell %v is open", size, seed, p)
					}
				}
			}

			for _, c := range g.Cells() {
				if c > MaxColor {
					t.Fatalf("size %d seed %d: code %d out of range", size, seed, c)
				}
			}

			start := g.Start()
			open := g.PassableCount()
			testutil.AssertEqual(t, "reachable", g.Reachable(start.X, start.Y), open)

			// A spanning tree over r rooms opens r rooms and r-1 corridors.
			rooms := ((size - 3) / 2) * ((size - 3) / 2)
			testutil.AssertEqual(t, "open cells", open, 2*rooms-1)
		}
	}
}

func TestGenerate_LatticeParity(t *testing.T) {
	g, err := Generate(21, 21, NewRand(7))
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if x%2 == 1 && y%2 == 1 && g.IsPassable(x, y) {
				t.Errorf("odd/odd cell (%d,%d) should never be carved", x, y)
			}
			if x%2 == 0 && y%2 == 0 && x >= 2 && y >= 2 && x <= 18 && y <= 18 && !g.IsPassable(x, y) {
				t.Errorf("room (%d,%d) was not visited", x, y)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(31, 31, NewRand(99))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(31, 31, NewRand(99))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Cells(), b.Cells()) {
		t.Error("same seed produced different grids")
	}
}

func TestGenerate_LargeLattice(t *testing.T) {
	const size = 301
	g, err := Generate(size, size, NewRand(3))
	if err != nil {
		t.Fatal(err)
	}
	start := g.Start()
	testutil.AssertEqual(t, "reachable", g.Reachable(start.X, start.Y), g.PassableCount())
}

func TestGenerate_Golden(t *testing.T) {
	g, err := Generate(15, 15, NewRand(42))
	if err != nil {
		t.Fatal(err)
	}

	want, err := os.ReadFile(filepath.Join("testdata", "maze15_seed42.golden"))
	if err != nil {
		t.Fatal(err)
	}

	var got bytes.Buffer
	if _, err := g.WriteTo(&got); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Bytes(), want) {
		t.Errorf("grid does not match golden file\n%s", g)
	}
	testutil.AssertEqual(t, "start", g.Start(), Point{X: 6, Y: 6})
}

type scriptedRNG struct {
	draws []int
	calls int
}

func (s *scriptedRNG) Intn(n int) int {
	s.calls++
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v % n
}

func TestShuffle(t *testing.T) {
	tests := map[string]struct {
		draws []int
		exp   []Direction
	}{
		"identity": {
			draws: []int{0, 0, 0},
			exp:   []Direction{North, South, West, East},
		},
		"reverse": {
			draws: []int{3, 1, 0},
			exp:   []Direction{East, West, South, North},
		},
		"rotate": {
			draws: []int{1, 1, 1},
			exp:   []Direction{South, West, East, North},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rng := &scriptedRNG{draws: tt.draws}
			dirs := []Direction{North, South, West, East}
			shuffle(rng, dirs)
			if !slices.Equal(dirs, tt.exp) {
				t.Errorf("order = %v, expected %v", dirs, tt.exp)
			}
			testutil.AssertEqual(t, "draws", rng.calls, 3)
		})
	}
}

func TestGenerate_ScriptedRNG(t *testing.T) {
	// With every draw 0 the shuffle keeps N,S,W,E, so carving runs north
	// first and every wall takes colour 1.
	g, err := Generate(5, 5, &scriptedRNG{})
	if err != nil {
		t.Fatal(err)
	}
	exp := []uint8{
		1, 1, 1, 1, 1,
		1, 1, 1, 1, 1,
		1, 1, 0, 1, 1,
		1, 1, 1, 1, 1,
		1, 1, 1, 1, 1,
	}
	if !bytes.Equal(g.Cells(), exp) {
		t.Errorf("cells = %v, expected %v", g.Cells(), exp)
	}
}
