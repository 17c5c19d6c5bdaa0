package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/pixil98/go-testutil"

	"raycaster/internal/engine"
)

func drain(t *testing.T, s beep.Streamer, limit int) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for len(out) < limit {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	return out
}

func peak(samples [][2]float64) float64 {
	m := 0.0
	for _, s := range samples {
		for _, v := range s {
			if v < 0 {
				v = -v
			}
			if v > m {
				m = v
			}
		}
	}
	return m
}

func TestSegment(t *testing.T) {
	tests := map[string]struct {
		track     engine.Track
		expFrames int
	}{
		"jitter": {track: engine.TrackJitter, expFrames: 8*3087 + 2*882},
		"swoop":  {track: engine.TrackSwoop, expFrames: 26460 + 11025},
		"creep":  {track: engine.TrackCreep, expFrames: 70560},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			buf, err := Segment(tt.track)
			if err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, "frames", buf.Len(), tt.expFrames)

			samples := drain(t, buf.Streamer(0, buf.Len()), buf.Len()+1)
			testutil.AssertEqual(t, "drained", len(samples), tt.expFrames)

			p := peak(samples)
			if p > 1 {
				t.Errorf("peak %v exceeds full scale", p)
			}
			if p < 0.05 {
				t.Errorf("peak %v is effectively silent", p)
			}
		})
	}
}

func TestSegment_None(t *testing.T) {
	buf, err := Segment(engine.TrackNone)
	if err != nil {
		t.Fatal(err)
	}
	if buf != nil {
		t.Error("expected no segment for the silent track")
	}

	_, err = Segment(engine.Track(99))
	testutil.AssertErrorContains(t, err, "unknown track 99")
}

func TestStreamer_Loops(t *testing.T) {
	s, err := Streamer(engine.TrackJitter)
	if err != nil {
		t.Fatal(err)
	}
	// Three periods and change: a looping stream never drains.
	samples := drain(t, s, 3*26460+1000)
	if len(samples) < 3*26460+1000 {
		t.Fatalf("stream ended after %d frames", len(samples))
	}
	testutil.AssertEqual(t, "period repeats", samples[100], samples[26460+100])
}

func TestStreamer_Silence(t *testing.T) {
	s, err := Streamer(engine.TrackNone)
	if err != nil {
		t.Fatal(err)
	}
	samples := drain(t, s, 4096)
	testutil.AssertEqual(t, "frames", len(samples) >= 4096, true)
	testutil.AssertEqual(t, "peak", peak(samples), 0.0)
}

func TestSegment_JitterRests(t *testing.T) {
	const note, rest = 3087, 882
	buf, err := Segment(engine.TrackJitter)
	if err != nil {
		t.Fatal(err)
	}
	samples := drain(t, buf.Streamer(0, buf.Len()), buf.Len()+1)

	// Both bars end in a full rest before the next note starts.
	for _, at := range []int{4 * note, 8*note + rest} {
		gap := samples[at : at+rest]
		testutil.AssertEqual(t, "rest peak", peak(gap), 0.0)
	}
	if p := peak(samples[4*note+rest : 4*note+rest+note]); p < 0.05 {
		t.Errorf("second bar starts late, peak %v", p)
	}
}

func TestTone(t *testing.T) {
	tests := map[string]wave{
		"sine":     sine,
		"square":   square,
		"triangle": triangle,
	}
	for name, w := range tests {
		t.Run(name, func(t *testing.T) {
			samples := drain(t, newTone(w, 200, 800, 10*time.Millisecond, SampleRate), 10000)
			testutil.AssertEqual(t, "frames", len(samples), 441)
			if p := peak(samples); p > 1 {
				t.Errorf("peak %v", p)
			}
		})
	}

	for i, s := range drain(t, newTone(square, 300, 300, 5*time.Millisecond, SampleRate), 1000) {
		if s[0] != 1 && s[0] != -1 {
			t.Fatalf("square sample %d = %v", i, s[0])
		}
	}
}

func TestRamp(t *testing.T) {
	flat := newTone(square, 0, 0, time.Second, SampleRate) // constant +1, longer than the ramp
	env := newRamp(flat, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, SampleRate)
	samples := drain(t, env, 10000)

	testutil.AssertEqual(t, "frames", len(samples), 4410)
	testutil.AssertEqual(t, "start", samples[0][0], 0.0)
	testutil.AssertEqual(t, "sustain", samples[2205][0], 1.0)
	if samples[4409][0] <= 0 || samples[4409][0] > 0.01 {
		t.Errorf("release tail = %v", samples[4409][0])
	}
}

func TestSoftSat(t *testing.T) {
	testutil.AssertEqual(t, "zero", softSat(0), 0.0)
	if v := softSat(10); v > 1 || v < 0.9 {
		t.Errorf("softSat(10) = %v", v)
	}
	if v := softSat(-10); v < -1 || v > -0.9 {
		t.Errorf("softSat(-10) = %v", v)
	}
}
