package stage

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"folio/internal/effect"
)

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		key  glfw.Key
		want effect.Key
		r    rune
	}{
		{glfw.KeyEnter, effect.KeyEnter, 0},
		{glfw.KeyKPEnter, effect.KeyEnter, 0},
		{glfw.KeyEscape, effect.KeyEscape, 0},
		{glfw.KeyH, effect.KeyRune, 'h'},
		{glfw.KeyP, effect.KeyRune, 'p'},
		{glfw.KeyL, effect.KeyRune, 'l'},
		{glfw.KeyF1, effect.KeyNone, 0},
	}
	for _, c := range cases {
		got, r := translateKey(c.key)
		if got != c.want || r != c.r {
			t.Errorf("translateKey(%v) = %v,%q, want %v,%q", c.key, got, r, c.want, c.r)
		}
	}
}

func TestUnitBoxNormalsPointOutward(t *testing.T) {
	if len(unitBox) != 36*6 {
		t.Fatalf("unitBox has %d floats, want %d", len(unitBox), 36*6)
	}
	for i := 0; i < 36; i += 3 {
		var cx, cy, cz float32
		for v := range 3 {
			o := (i + v) * 6
			cx += unitBox[o]
			cy += unitBox[o+1]
			cz += unitBox[o+2]
		}
		o := i * 6
		n := mgl32.Vec3{unitBox[o+3], unitBox[o+4], unitBox[o+5]}
		if d := n.Dot(mgl32.Vec3{cx, cy, cz}); d <= 0 {
			t.Fatalf("triangle %d: normal %v points inward", i/3, n)
		}
		// Counter-clockwise winding seen from outside, so back-face culling keeps it.
		a := mgl32.Vec3{unitBox[o], unitBox[o+1], unitBox[o+2]}
		b := mgl32.Vec3{unitBox[o+6], unitBox[o+7], unitBox[o+8]}
		c := mgl32.Vec3{unitBox[o+12], unitBox[o+13], unitBox[o+14]}
		if b.Sub(a).Cross(c.Sub(a)).Dot(n) <= 0 {
			t.Fatalf("triangle %d is wound clockwise", i/3)
		}
	}
}

func TestFrameMatricesLookAtTarget(t *testing.T) {
	f := effect.Frame{
		Camera:    effect.Vec3{Y: effect.EndHeight, Z: effect.EndDistance},
		LookAt:    effect.Vec3{},
		MeshScale: 1,
		Rotation:  effect.RestRotation,
		Aspect:    1.6,
	}
	_, view, _ := frameMatrices(f)
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(p.X())) > 1e-4 || math.Abs(float64(p.Y())) > 1e-4 {
		t.Fatalf("look-at target not on the view axis: %v", p)
	}
	if p.Z() >= 0 {
		t.Fatalf("look-at target behind the camera: %v", p)
	}
}

func TestFrameMatricesScaleAndOffset(t *testing.T) {
	f := effect.Frame{
		Camera:     effect.Vec3{Z: 10},
		MeshOffset: effect.Vec3{X: 3, Y: -2},
		MeshScale:  0.5,
		Aspect:     0,
	}
	proj, _, model := frameMatrices(f)
	p := model.Mul4x1(mgl32.Vec4{2, 0, 0, 1})
	if !p.ApproxEqualThreshold(mgl32.Vec4{4, -2, 0, 1}, 1e-5) {
		t.Fatalf("model * (2,0,0) = %v, want (4,-2,0)", p)
	}
	if proj.At(0, 0) != proj.At(1, 1) {
		t.Fatalf("zero aspect should fall back to square projection")
	}
}

func TestCueSamplesStayInRange(t *testing.T) {
	for name, buf := range map[string][]byte{
		"open":  genSweep(220, 660, 0.28),
		"close": genSweep(660, 220, 0.22),
		"hover": genTick(),
	} {
		if len(buf) == 0 || len(buf)%8 != 0 {
			t.Fatalf("%s: %d bytes is not whole stereo frames", name, len(buf))
		}
		for i := 0; i < len(buf); i += 4 {
			bits := uint32(buf[i]) | uint32(buf[i+1])<<8 | uint32(buf[i+2])<<16 | uint32(buf[i+3])<<24
			if v := math.Float32frombits(bits); v > 1 || v < -1 || math.IsNaN(float64(v)) {
				t.Fatalf("%s: sample %d = %v", name, i/4, v)
			}
		}
	}
}

func TestADSR(t *testing.T) {
	if v := adsr(0, 0.1, 0.2, 0.5, 0.3); v != 0 {
		t.Fatalf("adsr at start = %v", v)
	}
	if v := adsr(0.1, 0.1, 0.2, 0.5, 0.3); v != 1 {
		t.Fatalf("adsr at attack peak = %v", v)
	}
	if v := adsr(0.5, 0.1, 0.2, 0.5, 0.3); v != 0.5 {
		t.Fatalf("adsr sustain = %v", v)
	}
	if v := adsr(1, 0.1, 0.2, 0.5, 0.3); math.Abs(v) > 1e-9 {
		t.Fatalf("adsr at end = %v", v)
	}
}

func TestSurfaceScale(t *testing.T) {
	s := surface{Win: effect.Size{W: 800, H: 600}, FbW: 1600, FbH: 1200}
	if s.scale() != 2 {
		t.Fatalf("scale = %v, want 2", s.scale())
	}
	if (surface{}).scale() != 1 {
		t.Fatal("empty surface should scale 1:1")
	}
}

func TestAppTeardownReleasesListeners(t *testing.T) {
	a := &app{loop: effect.NewFrameLoop(), bus: effect.NewBus()}
	a.listen()
	if a.bus.Len() != 2 {
		t.Fatalf("app listeners = %d, want 2", a.bus.Len())
	}
	a.teardown()
	if n := a.bus.Len(); n != 0 {
		t.Fatalf("%d listeners left after teardown", n)
	}
	if a.loop.Request(func(float64) {}) != 0 {
		t.Fatal("frame loop accepts requests after teardown")
	}
}

func TestLoaderRunsOnWorkerPool(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(1, 4, time.Second)
	defer pool.Stop()

	l := effect.StartLoader(filepath.Join(t.TempDir(), "missing.png"), effect.ImageSize, poolSubmit(pool))
	deadline := time.Now().Add(5 * time.Second)
	for l.Poll() == nil {
		if time.Now().After(deadline) {
			t.Fatal("loader job never ran on the pool")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := l.Poll().Size; got != effect.ImageSize {
		t.Fatalf("placeholder size = %d, want %d", got, effect.ImageSize)
	}
}
