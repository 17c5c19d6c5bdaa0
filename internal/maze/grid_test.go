package maze

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestFromCells(t *testing.T) {
	tests := map[string]struct {
		width, height int
		cells         []uint8
		expErr        string
	}{
		"valid": {
			width: 3, height: 2,
			cells: []uint8{1, 0, 7, 2, 0, 3},
		},
		"short": {
			width: 3, height: 3,
			cells:  []uint8{1, 1, 1},
			expErr: "have 3 cells, want 9",
		},
		"bad code": {
			width: 2, height: 1,
			cells:  []uint8{1, 8},
			expErr: "cell 1 has code 8",
		},
		"zero width": {
			width: 0, height: 3,
			expErr: "size 0x3",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g, err := FromCells(tt.width, tt.height, tt.cells)
			if tt.expErr != "" {
				if !errors.Is(err, ErrCorruptGrid) {
					t.Fatalf("expected ErrCorruptGrid, got %v", err)
				}
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(g.Cells(), tt.cells) {
				t.Errorf("cells = %v, expected %v", g.Cells(), tt.cells)
			}
		})
	}
}

func TestFromCells_Copies(t *testing.T) {
	cells := []uint8{1, 0, 1, 0}
	g, err := FromCells(2, 2, cells)
	if err != nil {
		t.Fatal(err)
	}
	cells[1] = 5
	code, _ := g.At(1, 0)
	testutil.AssertEqual(t, "code after caller mutation", code, Passage)

	out := g.Cells()
	out[0] = 0
	code, _ = g.At(0, 0)
	testutil.AssertEqual(t, "code after Cells mutation", code, uint8(1))
}

func TestGrid_At(t *testing.T) {
	g, err := FromCells(3, 2, []uint8{
		1, 2, 3,
		0, 4, 5,
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := map[string]struct {
		x, y     int
		expCode  uint8
		expOK    bool
		passable bool
	}{
		"origin":      {x: 0, y: 0, expCode: 1, expOK: true},
		"row major":   {x: 2, y: 0, expCode: 3, expOK: true},
		"open":        {x: 0, y: 1, expCode: 0, expOK: true, passable: true},
		"last":        {x: 2, y: 1, expCode: 5, expOK: true},
		"left of":     {x: -1, y: 0},
		"below":       {x: 0, y: 2},
		"right of":    {x: 3, y: 1},
		"far outside": {x: 100, y: -100},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			code, ok := g.At(tt.x, tt.y)
			testutil.AssertEqual(t, "code", code, tt.expCode)
			testutil.AssertEqual(t, "ok", ok, tt.expOK)
			testutil.AssertEqual(t, "passable", g.IsPassable(tt.x, tt.y), tt.passable)
		})
	}
}

func TestGrid_RoundTrip(t *testing.T) {
	g, err := Generate(21, 21, NewRand(5))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	n, err := g.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, "bytes written", n, int64(21*21))

	back, err := ReadGrid(&buf, 21, 21)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back.Cells(), g.Cells()) {
		t.Error("cells differ after round trip")
	}
	testutil.AssertEqual(t, "start", back.Start(), g.Start())
}

func TestReadGrid_Truncated(t *testing.T) {
	_, err := ReadGrid(bytes.NewReader([]byte{1, 1, 1}), 3, 3)
	if !errors.Is(err, ErrCorruptGrid) {
		t.Fatalf("expected ErrCorruptGrid, got %v", err)
	}
	testutil.AssertErrorContains(t, err, "reading cells")
}

func TestGrid_Reachable(t *testing.T) {
	// Two open pockets split by a wall.
	g, err := FromCells(5, 3, []uint8{
		1, 1, 1, 1, 1,
		1, 0, 2, 0, 1,
		1, 0, 1, 0, 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, "from left", g.Reachable(1, 1), 2)
	testutil.AssertEqual(t, "from right", g.Reachable(3, 2), 2)
	testutil.AssertEqual(t, "from wall", g.Reachable(2, 1), 0)
	testutil.AssertEqual(t, "passable", g.PassableCount(), 4)
}

func TestGrid_String(t *testing.T) {
	g, err := FromCells(3, 2, []uint8{1, 0, 4, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
	testutil.AssertEqual(t, "line count", len(lines), 2)
	testutil.AssertEqual(t, "row 0", lines[0], "█ █")
	testutil.AssertEqual(t, "row 1", lines[1], "   ")
}
