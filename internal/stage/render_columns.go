package stage

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"folio/internal/effect"
)

// unitBox is a 1x1x1 cube centred on the origin: 36 vertices of
// position (3) + normal (3).
var unitBox = func() []float32 {
	faces := []struct {
		n      [3]float32
		corner [4][3]float32
	}{
		{[3]float32{1, 0, 0}, [4][3]float32{{.5, -.5, .5}, {.5, -.5, -.5}, {.5, .5, -.5}, {.5, .5, .5}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-.5, -.5, -.5}, {-.5, -.5, .5}, {-.5, .5, .5}, {-.5, .5, -.5}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-.5, .5, .5}, {.5, .5, .5}, {.5, .5, -.5}, {-.5, .5, -.5}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-.5, -.5, -.5}, {.5, -.5, -.5}, {.5, -.5, .5}, {-.5, -.5, .5}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-.5, -.5, .5}, {.5, -.5, .5}, {.5, .5, .5}, {-.5, .5, .5}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{.5, -.5, -.5}, {-.5, -.5, -.5}, {-.5, .5, -.5}, {.5, .5, -.5}}},
	}
	out := make([]float32, 0, 36*6)
	for _, f := range faces {
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			c := f.corner[i]
			out = append(out, c[0], c[1], c[2], f.n[0], f.n[1], f.n[2])
		}
	}
	return out
}()

// columnRenderer draws the skyline as one instanced box per column.
type columnRenderer struct {
	glObjects
	prog     uint32
	vao      uint32
	boxVBO   uint32
	instVBO  uint32
	count    int32
	instData []float32

	uProjection int32
	uView       int32
	uModel      int32
	uTransition int32
	uInversion  int32
}

func newColumnRenderer() (*columnRenderer, error) {
	prog, err := linkProgram(columnVertSrc, columnFragSrc)
	if err != nil {
		return nil, fmt.Errorf("column program: %w", err)
	}

	vao, boxVBO := newVertexArray()
	gl.BufferData(gl.ARRAY_BUFFER, len(unitBox)*4, gl.Ptr(unitBox), gl.STATIC_DRAW)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, glOffset(0))
	// aNormal (vec3)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, glOffset(3*4))

	var instVBO uint32
	gl.GenBuffers(1, &instVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, instVBO)
	stride := int32(effect.ColumnStride * 4)
	// iPos (vec2): x, z
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.VertexAttribDivisor(2, 1)
	// iColor (vec3)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 3, gl.FLOAT, false, stride, glOffset(2*4))
	gl.VertexAttribDivisor(3, 1)
	// iNormalHeight
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointer(4, 1, gl.FLOAT, false, stride, glOffset(5*4))
	gl.VertexAttribDivisor(4, 1)
	// iInvertedHeight
	gl.EnableVertexAttribArray(5)
	gl.VertexAttribPointer(5, 1, gl.FLOAT, false, stride, glOffset(6*4))
	gl.VertexAttribDivisor(5, 1)
	gl.BindVertexArray(0)

	r := &columnRenderer{
		prog:        prog,
		vao:         vao,
		boxVBO:      boxVBO,
		instVBO:     instVBO,
		uProjection: uniform(prog, "uProjection"),
		uView:       uniform(prog, "uView"),
		uModel:      uniform(prog, "uModel"),
		uTransition: uniform(prog, "uTransition"),
		uInversion:  uniform(prog, "uInversion"),
	}
	r.programs = []uint32{prog}
	r.vaos = []uint32{vao}
	r.vbos = []uint32{boxVBO, instVBO}
	return r, nil
}

// Upload replaces the instance data; columns are fixed for one expansion.
func (r *columnRenderer) Upload(cols []effect.Column) {
	r.instData = effect.AppendColumnData(r.instData[:0], cols)
	r.count = int32(len(cols))
	if r.count == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.instData)*4, gl.Ptr(r.instData), gl.STATIC_DRAW)
}

func vec3(v effect.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// frameMatrices builds projection, view and model for one skyline frame.
// Rotation is applied X then Y, matching an XYZ Euler order.
func frameMatrices(f effect.Frame) (proj, view, model mgl32.Mat4) {
	aspect := float32(f.Aspect)
	if aspect <= 0 {
		aspect = 1
	}
	proj = mgl32.Perspective(mgl32.DegToRad(effect.ColumnFOV), aspect, 0.1, 1000)
	view = mgl32.LookAtV(vec3(f.Camera), vec3(f.LookAt), mgl32.Vec3{0, 1, 0})
	s := float32(f.MeshScale)
	model = mgl32.Translate3D(float32(f.MeshOffset.X), float32(f.MeshOffset.Y), float32(f.MeshOffset.Z)).
		Mul4(mgl32.HomogRotate3DX(float32(f.Rotation.X))).
		Mul4(mgl32.HomogRotate3DY(float32(f.Rotation.Y))).
		Mul4(mgl32.Scale3D(s, s, s))
	return proj, view, model
}

func (r *columnRenderer) Draw(s surface, f effect.Frame) {
	if r.count == 0 {
		return
	}
	s.full()
	proj, view, model := frameMatrices(f)

	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.UseProgram(r.prog)
	gl.UniformMatrix4fv(r.uProjection, 1, false, &proj[0])
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	gl.Uniform1f(r.uTransition, float32(f.Rise))
	gl.Uniform1f(r.uInversion, float32(f.Inversion))
	gl.BindVertexArray(r.vao)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, 36, r.count)
	gl.BindVertexArray(0)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
}

func (r *columnRenderer) Destroy() { r.destroy() }
