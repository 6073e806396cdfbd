package stage

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"folio/internal/effect"
)

// Scene background, #0a0a0a.
const (
	clearR = 0.04
	clearG = 0.04
	clearB = 0.04
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// glObjects owns a set of GL names and frees them in one call.
type glObjects struct {
	programs []uint32
	vaos     []uint32
	vbos     []uint32
}

func (o *glObjects) destroy() {
	for _, id := range o.vbos {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range o.vaos {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range o.programs {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	*o = glObjects{}
}

func newVertexArray() (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	return vao, vbo
}

// stream replaces the contents of the bound VBO with buf.
func stream(vbo uint32, buf []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(buf) == 0 {
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, gl.Ptr(buf), gl.STREAM_DRAW)
}

// surface is the drawable in both coordinate systems. Layout and input use
// window pixels; GL viewports use framebuffer pixels.
type surface struct {
	Win   effect.Size
	FbW   int
	FbH   int
	Ratio float32 // capped, for point sizes
}

func (s surface) scale() float64 {
	if s.Win.W <= 0 {
		return 1
	}
	return float64(s.FbW) / s.Win.W
}

func (s surface) full() {
	gl.Viewport(0, 0, int32(s.FbW), int32(s.FbH))
}

// viewportFor maps a window-space rect, origin top-left, to a GL viewport.
func (s surface) viewportFor(r effect.Rect) {
	k := s.scale()
	x := r.X * k
	y := (s.Win.H - r.Y - r.H) * k
	gl.Viewport(int32(x), int32(y), int32(r.W*k), int32(r.H*k))
}

func beginFrame(s surface) {
	s.full()
	gl.ClearColor(clearR, clearG, clearB, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Disable(gl.DEPTH_TEST)
}

// backdropRenderer dims everything behind the skyline.
type backdropRenderer struct {
	glObjects
	prog   uint32
	vao    uint32
	uColor int32
}

func newBackdropRenderer() (*backdropRenderer, error) {
	prog, err := linkProgram(backdropVertSrc, backdropFragSrc)
	if err != nil {
		return nil, fmt.Errorf("backdrop program: %w", err)
	}
	vao, vbo := newVertexArray()
	quad := [12]float32{
		-1, -1, 1, -1, 1, 1,
		-1, -1, 1, 1, -1, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(&quad[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	gl.BindVertexArray(0)

	r := &backdropRenderer{prog: prog, vao: vao, uColor: uniform(prog, "uColor")}
	r.programs = []uint32{prog}
	r.vaos = []uint32{vao}
	r.vbos = []uint32{vbo}
	return r, nil
}

// Draw covers the surface with the scene colour at alpha*0.95.
func (r *backdropRenderer) Draw(s surface, alpha float64) {
	if alpha <= 0 {
		return
	}
	s.full()
	gl.UseProgram(r.prog)
	gl.Uniform4f(r.uColor, clearR, clearG, clearB, float32(alpha*0.95))
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (r *backdropRenderer) Destroy() { r.destroy() }
