package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pixil98/go-errors"

	"raycaster/internal/maze"
)

// Window defaults.
const (
	WindowWidth  = 400
	WindowHeight = 240
	WindowTitle  = "Raycaster"
)

// Letterbox aspect ratio.
const (
	AspectW = 5
	AspectH = 3
)

// Movement and chase.
const (
	DefaultFOV         = 66.0
	DefaultMazeSize    = 31
	MinMazeSize        = 7
	MaxMazeSize        = 1001
	DefaultChaseScale  = 1.0
	CaptureRadius      = 1.0
	JitterRadius       = 4.0
	SwoopRadius        = 8.0
	CreepRadius        = 12.0
	MouseRotateDivisor = -7.0
)

// Minimap overlay, in viewport pixels.
const (
	MinimapX      = 20
	MinimapY      = 20
	MinimapSize   = 70
	MinimapNeedle = 35.0
)

// MaxFrameTime caps the elapsed time fed to one tick after a stall.
const MaxFrameTime = 100 * time.Millisecond

const (
	FrontendGL   = "gl"
	FrontendTerm = "term"
)

// Config is the runtime configuration, read from RAYCASTER_* variables.
type Config struct {
	Seed        uint64
	MazeSize    int
	FOV         float64
	FPS         int
	Frontend    string
	ChaseScale  float64
	Minimap     bool
	HorizonBand bool
	DumpMaze    string
}

func DefaultConfig() Config {
	return Config{
		Seed:        uint64(time.Now().UnixNano()),
		MazeSize:    DefaultMazeSize,
		FOV:         DefaultFOV,
		Frontend:    FrontendGL,
		ChaseScale:  DefaultChaseScale,
		Minimap:     true,
		HorizonBand: true,
	}
}

// LoadConfig overlays environment values (through lookup) and the optional
// first positional argument, the FPS cap, on the defaults. Every bad value
// is reported, not just the first.
func LoadConfig(args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	el := errors.NewErrorList()

	if v, ok := lookup("RAYCASTER_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			el.Add(fmt.Errorf("parsing RAYCASTER_SEED: %w", err))
		} else {
			cfg.Seed = seed
		}
	}
	if v, ok := lookup("RAYCASTER_MAZE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			el.Add(fmt.Errorf("parsing RAYCASTER_MAZE_SIZE: %w", err))
		} else {
			cfg.MazeSize = n
		}
	}
	if v, ok := lookup("RAYCASTER_FOV"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			el.Add(fmt.Errorf("parsing RAYCASTER_FOV: %w", err))
		} else {
			cfg.FOV = f
		}
	}
	if v, ok := lookup("RAYCASTER_FPS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			el.Add(fmt.Errorf("parsing RAYCASTER_FPS: %w", err))
		} else {
			cfg.FPS = n
		}
	}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			el.Add(fmt.Errorf("parsing fps argument %q: %w", args[0], err))
		} else {
			cfg.FPS = n
		}
	}
	if v, ok := lookup("RAYCASTER_FRONTEND"); ok && v != "" {
		cfg.Frontend = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("RAYCASTER_CHASE_SCALE"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			el.Add(fmt.Errorf("parsing RAYCASTER_CHASE_SCALE: %w", err))
		} else {
			cfg.ChaseScale = f
		}
	}
	if v, ok := lookup("RAYCASTER_MINIMAP"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			el.Add(fmt.Errorf("parsing RAYCASTER_MINIMAP: %w", err))
		} else {
			cfg.Minimap = b
		}
	}
	if v, ok := lookup("RAYCASTER_HORIZON_BAND"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			el.Add(fmt.Errorf("parsing RAYCASTER_HORIZON_BAND: %w", err))
		} else {
			cfg.HorizonBand = b
		}
	}
	if v, ok := lookup("RAYCASTER_DUMP_MAZE"); ok {
		cfg.DumpMaze = v
	}

	el.Add(cfg.Validate())
	return cfg, el.Err()
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.MazeSize < MinMazeSize || c.MazeSize%2 == 0 {
		el.Add(fmt.Errorf("maze size must be odd and at least %d, got %d", MinMazeSize, c.MazeSize))
	} else if c.MazeSize > MaxMazeSize {
		el.Add(fmt.Errorf("maze size must not exceed %d, got %d", MaxMazeSize, c.MazeSize))
	}
	if !(c.FOV > 0 && c.FOV < 180) {
		el.Add(fmt.Errorf("fov must be between 0 and 180 degrees, got %v", c.FOV))
	}
	if c.FPS < 0 {
		el.Add(fmt.Errorf("fps must not be negative, got %d", c.FPS))
	}
	switch c.Frontend {
	case FrontendGL, FrontendTerm:
	default:
		el.Add(fmt.Errorf("unknown frontend %q", c.Frontend))
	}
	if c.ChaseScale < 0 || math.IsNaN(c.ChaseScale) || math.IsInf(c.ChaseScale, 0) {
		el.Add(fmt.Errorf("chase scale must be a non-negative number, got %v", c.ChaseScale))
	}

	return el.Err()
}

func (c *Config) Rules() Rules {
	r := DefaultRules()
	r.ChaseScale = c.ChaseScale
	return r
}

func (c *Config) FrameOptions() FrameOptions {
	return FrameOptions{HorizonBand: c.HorizonBand, Minimap: c.Minimap}
}

// FrameDelay is the pause after each presented frame: 1000/FPS ms when
// capped, otherwise a 1 ms yield.
func (c *Config) FrameDelay() time.Duration {
	if c.FPS > 0 {
		return time.Duration(1000/c.FPS) * time.Millisecond
	}
	return time.Millisecond
}

// NewGame generates the maze, places the player on the start cell and the
// entity in the farthest corner room, and returns a running session.
func NewGame(cfg Config, bus *EventBus) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	grid, err := maze.Generate(cfg.MazeSize, cfg.MazeSize, maze.NewRand(cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("generating maze: %w", err)
	}

	start := grid.Start()
	pos := Vec2{X: float64(start.X) + 0.5, Y: float64(start.Y) + 0.5}
	pose := NewPose(pos, cfg.FOV)

	world, err := NewWorld(grid, pose, SpawnCorner(grid, pos), cfg.Rules())
	if err != nil {
		return nil, err
	}
	return NewSession(world, bus, cfg.FrameOptions()), nil
}

// SpawnCorner returns the centre of whichever corner room lies farthest
// from pos. Corner rooms sit two cells in from the border.
func SpawnCorner(grid *maze.Grid, pos Vec2) Vec2 {
	w, h := float64(grid.Width()), float64(grid.Height())
	corners := []Vec2{
		{X: 2.5, Y: 2.5},
		{X: w - 2.5, Y: 2.5},
		{X: 2.5, Y: h - 2.5},
		{X: w - 2.5, Y: h - 2.5},
	}
	best := corners[0]
	for _, c := range corners[1:] {
		if c.Dist(pos) > best.Dist(pos) {
			best = c
		}
	}
	return best
}
