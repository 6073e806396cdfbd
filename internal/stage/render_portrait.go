package stage

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"folio/internal/effect"
)

// portraitRenderer draws the thumbnail point cloud into the thumbnail rect.
type portraitRenderer struct {
	glObjects
	prog uint32
	vao  uint32
	vbo  uint32
	buf  []float32

	uProjection int32
	uPointSize  int32
	uFade       int32
}

func newPortraitRenderer() (*portraitRenderer, error) {
	prog, err := linkProgram(portraitVertSrc, portraitFragSrc)
	if err != nil {
		return nil, fmt.Errorf("portrait program: %w", err)
	}
	vao, vbo := newVertexArray()
	stride := int32(effect.PortraitStride * 4)
	// aPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aColor (vec4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(2*4))
	gl.BindVertexArray(0)

	r := &portraitRenderer{
		prog:        prog,
		vao:         vao,
		vbo:         vbo,
		uProjection: uniform(prog, "uProjection"),
		uPointSize:  uniform(prog, "uPointSize"),
		uFade:       uniform(prog, "uFade"),
	}
	r.programs = []uint32{prog}
	r.vaos = []uint32{vao}
	r.vbos = []uint32{vbo}
	return r, nil
}

// Upload rebuilds the displaced cloud from the current hover state.
func (r *portraitRenderer) Upload(p *effect.Portrait) {
	r.buf = p.AppendRenderData(r.buf[:0])
	stream(r.vbo, r.buf)
}

func (r *portraitRenderer) Draw(s surface, rect effect.Rect, fade float64) {
	n := len(r.buf) / effect.PortraitStride
	if n == 0 || fade <= 0 {
		return
	}
	s.viewportFor(rect)
	half := float32(effect.ImageSize) / 2
	proj := mgl32.Ortho(-half, half, -half, half, -1, 1)

	gl.UseProgram(r.prog)
	gl.UniformMatrix4fv(r.uProjection, 1, false, &proj[0])
	gl.Uniform1f(r.uPointSize, float32(effect.PixelSize-1)*s.Ratio)
	gl.Uniform1f(r.uFade, float32(fade))
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.POINTS, 0, int32(n))
	gl.BindVertexArray(0)
	s.full()
}

func (r *portraitRenderer) Destroy() { r.destroy() }
