package stage

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"folio/internal/effect"
)

// fieldRenderer draws the ambient particle field as round point sprites.
type fieldRenderer struct {
	glObjects
	prog uint32
	vao  uint32
	vbo  uint32
	mode effect.FieldMode
	buf  []float32

	uProjection int32
	uView       int32
	uOffset     int32
	uPointSize  int32
	uTime       int32 // -1 for the CPU variant
}

func newFieldRenderer(mode effect.FieldMode) (*fieldRenderer, error) {
	vert := fieldCPUVertSrc
	if mode == effect.FieldGPU {
		vert = fieldGPUVertSrc
	}
	prog, err := linkProgram(vert, fieldFragSrc)
	if err != nil {
		return nil, fmt.Errorf("field program (%s): %w", mode, err)
	}

	vao, vbo := newVertexArray()
	stride := int32(effect.FieldStride * 4)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aData (vec2): opacity or (phase, speed)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(3*4))
	gl.BindVertexArray(0)

	r := &fieldRenderer{
		prog:        prog,
		vao:         vao,
		vbo:         vbo,
		mode:        mode,
		uProjection: uniform(prog, "uProjection"),
		uView:       uniform(prog, "uView"),
		uOffset:     uniform(prog, "uOffset"),
		uPointSize:  uniform(prog, "uPointSize"),
		uTime:       uniform(prog, "uTime"),
	}
	r.programs = []uint32{prog}
	r.vaos = []uint32{vao}
	r.vbos = []uint32{vbo}
	return r, nil
}

// Upload pushes the particle positions. The GPU variant only needs this once.
func (r *fieldRenderer) Upload(f effect.ParticleField) {
	r.buf = f.AppendRenderData(r.buf[:0])
	stream(r.vbo, r.buf)
}

func (r *fieldRenderer) Draw(s surface, f effect.ParticleField) {
	n := len(r.buf) / effect.FieldStride
	if n == 0 {
		return
	}
	s.full()
	aspect := float32(s.Win.Aspect())
	proj := mgl32.Perspective(mgl32.DegToRad(effect.FieldFOV), aspect, 0.1, 1000)
	view := mgl32.Translate3D(0, 0, -effect.FieldCameraZ)
	u := f.Uniforms()
	ox, oy := u.ParallaxOffset()

	gl.UseProgram(r.prog)
	gl.UniformMatrix4fv(r.uProjection, 1, false, &proj[0])
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.Uniform2f(r.uOffset, float32(ox), float32(oy))
	gl.Uniform1f(r.uPointSize, 2*s.Ratio)
	if r.uTime >= 0 {
		gl.Uniform1f(r.uTime, float32(u.Time))
	}
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.POINTS, 0, int32(n))
	gl.BindVertexArray(0)
}

func (r *fieldRenderer) Destroy() { r.destroy() }
