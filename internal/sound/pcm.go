package sound

import (
	"io"
	"math"

	"github.com/gopxl/beep"
)

// BytesPerFrame is one stereo float32 frame.
const BytesPerFrame = 8

// Reader adapts a beep stream to interleaved float32 LE stereo bytes, the
// layout an oto context opened with the float format reads.
type Reader struct {
	s   beep.Streamer
	buf [][2]float64
}

func NewReader(s beep.Streamer) *Reader {
	return &Reader{s: s}
}

func (r *Reader) Read(p []byte) (int, error) {
	frames := len(p) / BytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]

	n, ok := r.s.Stream(buf)
	for i := 0; i < n; i++ {
		putStereoF32LR(p, i, softSat(buf[i][0]), softSat(buf[i][1]))
	}
	if !ok && n == 0 {
		if err := r.s.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	return n * BytesPerFrame, nil
}

// putStereoF32LR writes independent left/right samples in [-1,1] at frame i.
func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}
