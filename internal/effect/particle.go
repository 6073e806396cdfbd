package effect

import "math"

// Particle is one point of the background field. The CPU strategy uses
// Life/MaxLife/VX/VY, the GPU-time strategy uses Phase/Speed.
type Particle struct {
	X, Y, Z float64

	Life    float64 // frames remaining
	MaxLife float64
	VX, VY  float64

	Phase float64
	Speed float64
}

// FieldStride is the number of floats per particle in AppendRenderData:
// x, y, z, then (opacity, 0) or (phase, speed) depending on the mode.
const FieldStride = 5

// FieldUniforms are the per-frame scalars pushed to the field shader.
type FieldUniforms struct {
	MouseX, MouseY float64
	Parallax       float64
	Time           float64
}

// ParticleField advances and describes a fixed-size particle pool.
type ParticleField interface {
	Mode() FieldMode
	Len() int
	Step(now float64) // now is the frame timestamp in seconds
	SetMouse(x, y float64)
	Uniforms() FieldUniforms
	AppendRenderData(buf []float32) []float32
}

// NewParticleField builds the strategy selected by mode.
func NewParticleField(mode FieldMode, n int, seed uint64) ParticleField {
	if mode == FieldGPU {
		if n <= 0 {
			n = GPUParticleCount
		}
		return NewGPUField(n, seed)
	}
	if n <= 0 {
		n = CPUParticleCount
	}
	return NewCPUField(n, seed)
}

type fieldBase struct {
	P      []Particle
	rng    *Rand
	mouseX float64
	mouseY float64
}

func newFieldBase(n int, seed uint64) fieldBase {
	return fieldBase{
		P:      make([]Particle, n),
		rng:    NewRand(seed),
		mouseX: 0.5,
		mouseY: 0.5,
	}
}

func (fb *fieldBase) Len() int { return len(fb.P) }

// SetMouse takes the pointer normalized to [0,1]x[0,1] with y pointing up.
func (fb *fieldBase) SetMouse(x, y float64) {
	fb.mouseX = clampF(x, 0, 1)
	fb.mouseY = clampF(y, 0, 1)
}

func (fb *fieldBase) place(p *Particle) {
	p.X = (fb.rng.Float64() - 0.5) * FieldSpread
	p.Y = (fb.rng.Float64() - 0.5) * FieldSpread
	p.Z = (fb.rng.Float64() - 0.5) * FieldDepth
}

// CPUField steps every particle on the CPU and respawns expired ones.
type CPUField struct {
	fieldBase
}

func NewCPUField(n int, seed uint64) *CPUField {
	f := &CPUField{fieldBase: newFieldBase(n, seed)}
	for i := range f.P {
		p := &f.P[i]
		f.place(p)
		p.MaxLife = f.rng.Float64()*LifetimeSpan + MinLifetime
		p.Life = f.rng.Float64() * p.MaxLife
		f.kick(p)
	}
	return f
}

func (f *CPUField) Mode() FieldMode { return FieldCPU }

func (f *CPUField) kick(p *Particle) {
	p.VX = (f.rng.Float64() - 0.5) * 2 * MaxVelocity
	p.VY = (f.rng.Float64() - 0.5) * 2 * MaxVelocity
}

func (f *CPUField) respawn(p *Particle) {
	f.place(p)
	p.MaxLife = f.rng.Float64()*LifetimeSpan + MinLifetime
	p.Life = p.MaxLife
	f.kick(p)
}

// Step advances one frame.
// Step advances one frame. Lifetimes count frames, so now is unused.
func (f *CPUField) Step(float64) {
	for i := range f.P {
		p := &f.P[i]
		p.X += p.VX
		p.Y += p.VY
		p.Life--
		if p.Life <= 0 {
			f.respawn(p)
		}
	}
}

func (f *CPUField) Uniforms() FieldUniforms {
	return FieldUniforms{MouseX: f.mouseX, MouseY: f.mouseY, Parallax: ParallaxStrength}
}

func (f *CPUField) AppendRenderData(buf []float32) []float32 {
	for _, p := range f.P {
		buf = append(buf, float32(p.X), float32(p.Y), float32(p.Z), float32(p.Opacity()), 0)
	}
	return buf
}

// Opacity fades linearly with remaining life.
func (p Particle) Opacity() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return clampF(p.Life/p.MaxLife, 0, 1) * 0.6
}

// GPUField never touches particles after construction; the shader derives
// opacity and jitter from (time, phase, speed) so the loop is seamless.
type GPUField struct {
	fieldBase
	time    float64
	origin  float64
	started bool
}

func NewGPUField(n int, seed uint64) *GPUField {
	f := &GPUField{fieldBase: newFieldBase(n, seed)}
	for i := range f.P {
		p := &f.P[i]
		f.place(p)
		p.Phase = f.rng.Float64() * 2 * math.Pi
		p.Speed = f.rng.RangeF(0.3, 1.2)
	}
	return f
}

func (f *GPUField) Mode() FieldMode { return FieldGPU }

// Step sets the shader clock to the seconds elapsed since the first step.
func (f *GPUField) Step(now float64) {
	if !f.started {
		f.origin = now
		f.started = true
	}
	f.time = now - f.origin
}

func (f *GPUField) Uniforms() FieldUniforms {
	return FieldUniforms{MouseX: f.mouseX, MouseY: f.mouseY, Parallax: ParallaxStrength, Time: f.time}
}

func (f *GPUField) AppendRenderData(buf []float32) []float32 {
	for _, p := range f.P {
		buf = append(buf, float32(p.X), float32(p.Y), float32(p.Z), float32(p.Phase), float32(p.Speed))
	}
	return buf
}

// ParallaxOffset is the uniform xy shift applied to every particle.
func (u FieldUniforms) ParallaxOffset() (float64, float64) {
	return (u.MouseX - 0.5) * u.Parallax, (u.MouseY - 0.5) * u.Parallax
}
