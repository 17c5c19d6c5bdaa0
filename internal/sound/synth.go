package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// wave maps a phase in [0, 1) to a sample in [-1, 1].
type wave func(phase float64) float64

func sine(p float64) float64 { return math.Sin(2 * math.Pi * p) }

func square(p float64) float64 {
	if p < 0.5 {
		return 1
	}
	return -1
}

func triangle(p float64) float64 { return 1 - 4*math.Abs(p-0.5) }

// tone plays w for a fixed number of frames while the pitch slides
// linearly from f0 to f1. Equal ends give a steady note.
type tone struct {
	w      wave
	f0, f1 float64
	n, pos int
	phase  float64
	rate   float64
}

func newTone(w wave, f0, f1 float64, d time.Duration, rate beep.SampleRate) *tone {
	return &tone{w: w, f0: f0, f1: f1, n: rate.N(d), rate: float64(rate)}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	n := min(len(samples), t.n-t.pos)
	if n <= 0 {
		return 0, false
	}
	for i := range samples[:n] {
		v := t.w(t.phase)
		samples[i] = [2]float64{v, v}
		f := t.f0 + (t.f1-t.f0)*float64(t.pos)/float64(t.n)
		t.phase = math.Mod(t.phase+f/t.rate, 1)
		t.pos++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

// ramp cuts a stream to n frames, fading in over the first in frames and
// out over the last out frames.
type ramp struct {
	s               beep.Streamer
	n, in, out, pos int
}

func newRamp(s beep.Streamer, d, in, out time.Duration, rate beep.SampleRate) *ramp {
	return &ramp{s: s, n: rate.N(d), in: rate.N(in), out: rate.N(out)}
}

func (r *ramp) gain() float64 {
	g := 1.0
	if r.pos < r.in {
		g = float64(r.pos) / float64(r.in)
	}
	if tail := r.n - r.pos; tail <= r.out {
		g = min(g, float64(tail)/float64(r.out))
	}
	return g
}

func (r *ramp) Stream(samples [][2]float64) (int, bool) {
	if left := r.n - r.pos; len(samples) > left {
		samples = samples[:left]
	}
	if len(samples) == 0 {
		return 0, false
	}
	n, ok := r.s.Stream(samples)
	for i := range samples[:n] {
		g := r.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		r.pos++
	}
	return n, ok
}

func (r *ramp) Err() error { return r.s.Err() }

// gain scales a stream linearly. effects.Volume works in log2 steps, so
// zero maps to its silent flag.
func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// softSat is a gentle saturation curve that never hard clips.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}
