package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"raycaster/internal/engine"
	"raycaster/internal/game"
	"raycaster/internal/logger"
	"raycaster/internal/maze"
	"raycaster/internal/term"
)

func init() {
	logger.Init()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.LookupEnv); err != nil {
		logger.Log.WithError(err).Fatal("raycaster stopped")
	}
}

type trackSetter interface {
	SetTrack(engine.Track) error
}

func run(ctx context.Context, args []string, lookup func(string) (string, bool)) error {
	cfg, err := engine.LoadConfig(args, lookup)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Log.WithField("session", uuid.New().String())
	log.WithFields(logrus.Fields{
		"seed":      cfg.Seed,
		"maze_size": cfg.MazeSize,
		"fov":       cfg.FOV,
		"fps":       cfg.FPS,
		"frontend":  cfg.Frontend,
	}).Info("Starting raycaster")

	player, err := game.NewTrackPlayer()
	if err != nil {
		log.WithError(err).Warn("audio init failed, continuing without sound")
	}
	defer func() {
		if err := player.Close(); err != nil {
			log.WithError(err).Warn("closing audio player")
		}
	}()

	bus := engine.NewEventBus()
	subscribe(bus, log, trackSink(player))

	started := time.Now()
	session, err := engine.NewGame(cfg, bus)
	if err != nil {
		return err
	}
	grid := session.World.Grid()
	if err := checkMaze(grid); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"size":      grid.Width(),
		"duration":  time.Since(started),
		"passable":  grid.PassableCount(),
		"start_x":   grid.Start().X,
		"start_y":   grid.Start().Y,
		"entity_at": session.World.Entity(),
	}).Info("Maze generated")
	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		log.Debugf("Maze layout:\n%s", grid)
	}

	if cfg.DumpMaze != "" {
		if err := dumpMaze(cfg.DumpMaze, grid); err != nil {
			return err
		}
		log.WithField("path", cfg.DumpMaze).Info("Maze dumped")
	}

	switch cfg.Frontend {
	case engine.FrontendTerm:
		err = runTerminal(ctx, session, cfg)
	default:
		err = game.RunDesktop(ctx, session, cfg)
	}
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"state":   session.State,
		"frames":  session.Frames,
		"elapsed": session.Elapsed,
	}).Info("Session ended")
	return nil
}

// trackSink hides a player that failed to open so subscribers see a nil
// interface rather than a typed nil.
func trackSink(p *game.TrackPlayer) trackSetter {
	if p == nil {
		return nil
	}
	return p
}

// subscribe logs state transitions and keeps the chase track in step with
// the entity's distance.
func subscribe(bus *engine.EventBus, log *logrus.Entry, player trackSetter) {
	bus.Subscribe(engine.EventTrackChanged, func(e engine.Event) {
		log.WithFields(logrus.Fields{
			"track":    e.Track,
			"distance": e.Distance,
			"frame":    e.Frame,
		}).Debug("Track changed")
		if player == nil {
			return
		}
		if err := player.SetTrack(e.Track); err != nil {
			log.WithError(err).Warn("switching track")
		}
	})
	bus.Subscribe(engine.EventCaptured, func(e engine.Event) {
		log.WithFields(logrus.Fields{
			"distance": e.Distance,
			"frame":    e.Frame,
		}).Info("Captured")
	})
	bus.Subscribe(engine.EventQuit, func(e engine.Event) {
		log.WithField("frame", e.Frame).Info("Quit")
	})
}

// checkMaze verifies every open cell is reachable from the start cell.
func checkMaze(grid *maze.Grid) error {
	start := grid.Start()
	reached := grid.Reachable(start.X, start.Y)
	if total := grid.PassableCount(); reached != total {
		return fmt.Errorf("%w: %d of %d open cells reachable", maze.ErrCorruptGrid, reached, total)
	}
	return nil
}

// dumpMaze writes the raw grid to path, or to stdout for "-".
func dumpMaze(path string, grid *maze.Grid) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("dumping maze: %w", err)
		}
		defer f.Close()
		w = f
	}
	if _, err := grid.WriteTo(w); err != nil {
		return fmt.Errorf("dumping maze: %w", err)
	}
	return nil
}

func runTerminal(ctx context.Context, session *engine.Session, cfg engine.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	return term.Run(ctx, screen, session, cfg)
}
