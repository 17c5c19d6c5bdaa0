package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"raycaster/internal/engine"
)

const SampleRate = beep.SampleRate(44100)

// Format is the PCM layout of every buffered segment.
var Format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// Segment renders one loop period of a track into a buffer. TrackNone has
// no segment.
func Segment(track engine.Track) (*beep.Buffer, error) {
	var s beep.Streamer
	var err error
	switch track {
	case engine.TrackJitter:
		s = jitter(SampleRate)
	case engine.TrackSwoop:
		s = swoop(SampleRate)
	case engine.TrackCreep:
		s, err = creep(SampleRate)
	case engine.TrackNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown track %d", track)
	}
	if err != nil {
		return nil, fmt.Errorf("synthesizing %s: %w", track, err)
	}

	buf := beep.NewBuffer(Format)
	buf.Append(s)
	return buf, nil
}

// Streamer loops a track forever. TrackNone is endless silence.
func Streamer(track engine.Track) (beep.Streamer, error) {
	buf, err := Segment(track)
	if err != nil {
		return nil, err
	}
	if buf == nil || buf.Len() == 0 {
		return beep.Silence(-1), nil
	}
	return beep.Loop(-1, buf.Streamer(0, buf.Len())), nil
}

// jitter: a fast, nervous square-wave pulse a semitone apart, in two
// bars of four with a short rest after each bar.
func jitter(rate beep.SampleRate) beep.Streamer {
	const note = 70 * time.Millisecond

	var parts []beep.Streamer
	for i := 0; i < 8; i++ {
		freq := 659.25
		if i%2 == 1 {
			freq = 698.46
		}
		parts = append(parts, newRamp(newTone(square, freq, freq, note, rate), note, 5*time.Millisecond, 40*time.Millisecond, rate))
		if i%4 == 3 {
			// Streamers are consumed as they play; each rest needs its own.
			parts = append(parts, beep.Silence(rate.N(20*time.Millisecond)))
		}
	}
	return gain(beep.Seq(parts...), 0.35)
}

// swoop: two falling glides an octave apart followed by a breath.
func swoop(rate beep.SampleRate) beep.Streamer {
	const dur = 600 * time.Millisecond

	high := newRamp(newTone(sine, 880, 220, dur, rate), dur, 30*time.Millisecond, 250*time.Millisecond, rate)
	low := newRamp(newTone(triangle, 440, 110, dur, rate), dur, 30*time.Millisecond, 250*time.Millisecond, rate)

	mixed := beep.Mix(gain(high, 0.6), gain(low, 0.4))
	return beep.Seq(gain(mixed, 0.5), beep.Silence(rate.N(250*time.Millisecond)))
}

// creep: a slow low drone with a beating fifth.
func creep(rate beep.SampleRate) (beep.Streamer, error) {
	const dur = 1600 * time.Millisecond

	root, err := generators.SineTone(rate, 55)
	if err != nil {
		return nil, err
	}
	fifth := newTone(sine, 82.8, 82.8, dur, rate)

	drone := beep.Mix(
		gain(beep.Take(rate.N(dur), root), 0.6),
		gain(fifth, 0.4),
	)
	return gain(newRamp(drone, dur, 400*time.Millisecond, 600*time.Millisecond, rate), 0.6), nil
}
