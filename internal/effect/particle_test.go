package effect

import "testing"

func TestCPUFieldLifetimeStaysInRange(t *testing.T) {
	f := NewCPUField(CPUParticleCount, 42)
	for frame := 0; frame < 1000; frame++ {
		f.Step(float64(frame) / 60)
		for i, p := range f.P {
			if p.Life <= 0 || p.Life > p.MaxLife {
				t.Fatalf("frame %d particle %d: life %.3f outside (0, %.3f]", frame, i, p.Life, p.MaxLife)
			}
		}
	}
}

func TestCPUFieldRespawnsExpiredParticle(t *testing.T) {
	f := NewCPUField(1, 7)
	f.P[0].Life = 1
	f.P[0].X = 99
	f.Step(0)
	p := f.P[0]
	if p.Life != p.MaxLife {
		t.Fatalf("respawned life = %.3f, want maxLife %.3f", p.Life, p.MaxLife)
	}
	if p.MaxLife < MinLifetime || p.MaxLife >= MinLifetime+LifetimeSpan {
		t.Fatalf("maxLife %.3f outside [%v, %v)", p.MaxLife, MinLifetime, MinLifetime+LifetimeSpan)
	}
	if p.X < -FieldSpread/2 || p.X >= FieldSpread/2 {
		t.Fatalf("respawn x %.3f outside spawn volume", p.X)
	}
}

func TestCPUFieldMovesByVelocity(t *testing.T) {
	f := NewCPUField(1, 3)
	f.P[0].Life = 50
	before := f.P[0]
	f.Step(0)
	after := f.P[0]
	if after.X != before.X+before.VX || after.Y != before.Y+before.VY {
		t.Fatalf("position did not advance by velocity: %+v -> %+v", before, after)
	}
	if after.Life != before.Life-1 {
		t.Fatalf("life %.1f, want %.1f", after.Life, before.Life-1)
	}
}

func TestGPUFieldStepOnlyAdvancesTime(t *testing.T) {
	f := NewGPUField(GPUParticleCount, 9)
	snapshot := append([]Particle(nil), f.P...)
	for i := range 120 {
		f.Step(10 + float64(i)/60)
	}
	for i := range f.P {
		if f.P[i] != snapshot[i] {
			t.Fatalf("particle %d mutated by Step", i)
		}
	}
	if got := f.Uniforms().Time; got < 1.98 || got > 1.99 {
		t.Fatalf("time after 120 frames = %.4f, want 119/60", got)
	}
}

func TestGPUFieldClockFollowsTimestamps(t *testing.T) {
	tests := []struct {
		name string
		hz   float64
	}{
		{"30Hz", 30},
		{"60Hz", 60},
		{"144Hz", 144},
	}
	for _, tt := range tests {
		f := NewGPUField(1, 5)
		start := 3.5
		frames := int(tt.hz)
		for i := 0; i <= frames; i++ {
			f.Step(start + float64(i)/tt.hz)
		}
		if got := f.Uniforms().Time; got < 0.999 || got > 1.001 {
			t.Errorf("%s: time after one second = %.4f, want 1", tt.name, got)
		}
	}

	// A stall between frames shows up as elapsed time, not as one frame.
	f := NewGPUField(1, 5)
	f.Step(1)
	f.Step(1.5)
	f.Step(4)
	if got := f.Uniforms().Time; got != 3 {
		t.Fatalf("time after stall = %v, want 3", got)
	}
}

func TestNewParticleFieldSelectsStrategy(t *testing.T) {
	tests := []struct {
		mode FieldMode
		n    int
		want int
	}{
		{FieldCPU, 0, CPUParticleCount},
		{FieldGPU, 0, GPUParticleCount},
		{FieldGPU, 12, 12},
		{"", 5, 5},
	}
	for _, tt := range tests {
		f := NewParticleField(tt.mode, tt.n, 1)
		if f.Len() != tt.want {
			t.Errorf("mode %q n %d: len %d, want %d", tt.mode, tt.n, f.Len(), tt.want)
		}
		wantMode := tt.mode
		if wantMode == "" {
			wantMode = FieldCPU
		}
		if f.Mode() != wantMode {
			t.Errorf("mode %q: got %q", tt.mode, f.Mode())
		}
		buf := f.AppendRenderData(nil)
		if len(buf) != f.Len()*FieldStride {
			t.Errorf("mode %q: render data %d floats, want %d", tt.mode, len(buf), f.Len()*FieldStride)
		}
	}
}

func TestParallaxOffset(t *testing.T) {
	f := NewCPUField(1, 1)
	f.SetMouse(1, 0)
	x, y := f.Uniforms().ParallaxOffset()
	if x != 0.25 || y != -0.25 {
		t.Fatalf("offset = (%v, %v), want (0.25, -0.25)", x, y)
	}
	f.SetMouse(3, -2)
	u := f.Uniforms()
	if u.MouseX != 1 || u.MouseY != 0 {
		t.Fatalf("mouse not clamped: %+v", u)
	}
}
