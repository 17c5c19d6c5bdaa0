package game

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/oto/v2"

	"raycaster/internal/engine"
	"raycaster/internal/logger"
	"raycaster/internal/sound"
)

const (
	ChannelCount = 2
	BitDepth     = oto.FormatFloat32LE
)

var musicVolume = 0.5

// TrackPlayer loops the chase track matching the entity's distance. At most
// one track plays; switching closes the previous player. A nil *TrackPlayer
// is valid and silent, for hosts without an audio device.
type TrackPlayer struct {
	mu     sync.Mutex
	ctx    *oto.Context
	up     bool // device ready
	player oto.Player
	track  engine.Track
}

// NewTrackPlayer opens the audio context. The device comes up in the
// background; a track chosen before then starts once it is ready.
func NewTrackPlayer() (*TrackPlayer, error) {
	ctx, ready, err := oto.NewContext(int(sound.SampleRate), ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	p := &TrackPlayer{ctx: ctx}
	go func() {
		<-ready
		p.mu.Lock()
		defer p.mu.Unlock()
		p.up = true
		if err := p.start(); err != nil {
			logger.Log.WithError(err).Warn("starting track")
		}
	}()
	return p, nil
}

// SetTrack switches the looping track. It never waits for the device.
func (p *TrackPlayer) SetTrack(track engine.Track) error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if track == p.track {
		return nil
	}
	p.stop()
	p.track = track
	return p.start()
}

// start plays the current track if the device is up.
func (p *TrackPlayer) start() error {
	if !p.up || p.track == engine.TrackNone || p.player != nil {
		return nil
	}
	s, err := sound.Streamer(p.track)
	if err != nil {
		return err
	}
	player := p.ctx.NewPlayer(sound.NewReader(s))
	player.SetVolume(musicVolume)
	player.Play()
	p.player = player
	return nil
}

// Track is the selected track; it plays once the device is up.
func (p *TrackPlayer) Track() engine.Track {
	if p == nil {
		return engine.TrackNone
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

func (p *TrackPlayer) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.track = engine.TrackNone
	return p.stop()
}

func (p *TrackPlayer) stop() error {
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}
