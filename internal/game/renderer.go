package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"raycaster/internal/engine"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer draws frames as GL lines and points in viewport pixel space.
type Renderer struct {
	prog uint32
	vao  uint32
	vbo  uint32

	uResolution int32

	// Reusable vertex buffer to avoid per-frame heap allocations.
	buf []float32
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(flatVertSrc, flatFragSrc)
	if err != nil {
		return nil, fmt.Errorf("flat program: %w", err)
	}
	r := &Renderer{prog: prog}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(floatsPerVertex * 4)
	// aPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aColor (vec3)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(2*4))

	gl.UseProgram(prog)
	r.uResolution = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}

// BeginFrame clears the whole framebuffer, then restricts drawing to the
// letterboxed viewport of width x height pixels.
func (r *Renderer) BeginFrame(fbW, fbH int) (width, height int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	bg := engine.Palette.Background
	cr, cg, cb := colorF(bg)
	gl.ClearColor(cr, cg, cb, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	x, y, w, h := viewportRect(fbW, fbH)
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))

	gl.UseProgram(r.prog)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.Uniform2f(r.uResolution, float32(w), float32(h))
	return w, h
}

// DrawFrame draws the scene then the overlay.
func (r *Renderer) DrawFrame(f *engine.Frame) {
	r.drawLayer(f.Scene)
	r.drawLayer(f.Overlay)
}

func (r *Renderer) drawLayer(l engine.Layer) {
	r.buf = appendLines(r.buf[:0], l.Lines)
	r.draw(gl.LINES)
	r.DrawPoints(l.Points)
}

func (r *Renderer) draw(mode uint32) {
	if len(r.buf) == 0 {
		return
	}
	count := len(r.buf) / floatsPerVertex
	gl.BufferData(gl.ARRAY_BUFFER, len(r.buf)*4, gl.Ptr(r.buf), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(count))
}
