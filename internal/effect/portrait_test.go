package effect

import (
	"math"
	"testing"
)

func TestHoverApproachesWithoutOvershoot(t *testing.T) {
	var h Hover
	h.Enter()
	prevGap := math.Abs(h.Target - h.Current)
	for range 200 {
		h.Tick()
		if h.Current > h.Target {
			t.Fatalf("overshoot: current %.6f > target %.6f", h.Current, h.Target)
		}
		gap := math.Abs(h.Target - h.Current)
		if gap > prevGap {
			t.Fatalf("gap grew from %.6f to %.6f", prevGap, gap)
		}
		prevGap = gap
	}
	h.Leave()
	for range 200 {
		h.Tick()
		if h.Current < 0 {
			t.Fatalf("undershoot below 0: %.6f", h.Current)
		}
	}
}

func TestFalloff(t *testing.T) {
	if got := Falloff(0, DispersionRadius); got != 1 {
		t.Fatalf("falloff at 0 = %v, want 1", got)
	}
	if got := Falloff(DispersionRadius, DispersionRadius); got != 0 {
		t.Fatalf("falloff at radius = %v, want 0", got)
	}
	if got := Falloff(1, DispersionRadius); got != 0 {
		t.Fatalf("falloff beyond radius = %v, want 0", got)
	}
	mid := Falloff(DispersionRadius/2, DispersionRadius)
	if mid <= 0 || mid >= 1 {
		t.Fatalf("falloff at half radius = %v, want in (0,1)", mid)
	}
}

func TestDispersePushesAwayFromPointer(t *testing.T) {
	dx, dy := Disperse(0.6, 0.5, 0.5, 0.5, 1, 30)
	if dx <= 0 || dy != 0 {
		t.Fatalf("displacement = (%v, %v), want +x only", dx, dy)
	}
	if dx, dy := Disperse(0.6, 0.5, 0.5, 0.5, 0, 30); dx != 0 || dy != 0 {
		t.Fatalf("hover 0 should not displace, got (%v, %v)", dx, dy)
	}
	if dx, dy := Disperse(0.5, 0.5, 0.5, 0.5, 1, 30); dx != 0 || dy != 0 {
		t.Fatalf("point under pointer should not move, got (%v, %v)", dx, dy)
	}
}

func TestPlaceholderIsDeterministic(t *testing.T) {
	a := Placeholder(ImageSize)
	b := Placeholder(ImageSize)
	if len(a.Pix) != ImageSize*ImageSize*4 {
		t.Fatalf("placeholder has %d bytes", len(a.Pix))
	}
	c := float64(ImageSize) / 2
	radius := c - PlaceholderInset
	for y := range ImageSize {
		for x := range ImageSize {
			_, _, _, alphaA := a.At(x, y)
			_, _, _, alphaB := b.At(x, y)
			if alphaA != alphaB {
				t.Fatalf("alpha differs at (%d,%d)", x, y)
			}
			dx, dy := float64(x)-c, float64(y)-c
			dist := math.Sqrt(dx*dx + dy*dy)
			want := uint8(0)
			if dist < radius {
				want = 255
			}
			if alphaA != want {
				t.Fatalf("alpha at (%d,%d) dist %.2f = %d, want %d", x, y, dist, alphaA, want)
			}
		}
	}
}

func TestPointCloudSkipsTransparentCells(t *testing.T) {
	pts := PointCloud(Placeholder(ImageSize), PixelSize)
	grid := ImageSize / PixelSize
	if len(pts) == 0 || len(pts) >= grid*grid {
		t.Fatalf("point count %d, want in (0, %d)", len(pts), grid*grid)
	}
	for _, p := range pts {
		if p.A < PointAlphaCutoff {
			t.Fatalf("kept transparent point %+v", p)
		}
	}
}

func TestPortraitHoverFollowsContainment(t *testing.T) {
	rect := Rect{X: 100, Y: 100, W: ImageSize, H: ImageSize}
	p := NewPortrait(rect, false)
	p.SetPixels(Placeholder(ImageSize))
	p.PointerMove(150, 150)
	if !p.Inside() || p.Hover.Target != 1 {
		t.Fatalf("enter not detected: inside=%v target=%v", p.Inside(), p.Hover.Target)
	}
	if p.MouseU != 0.25 || p.MouseV != 0.75 {
		t.Fatalf("uv = (%v, %v), want (0.25, 0.75)", p.MouseU, p.MouseV)
	}
	p.PointerMove(10, 10)
	if p.Inside() || p.Hover.Target != 0 {
		t.Fatal("leave not detected")
	}
}

func TestPortraitReducedMotionFreezesPointer(t *testing.T) {
	rect := Rect{X: 0, Y: 0, W: ImageSize, H: ImageSize}
	p := NewPortrait(rect, true)
	p.SetPixels(Placeholder(ImageSize))
	p.PointerMove(50, 50)
	if p.Tick() {
		t.Fatal("tick reported motion under reduced motion")
	}
	if p.Hover.Current != 0 || p.MouseU != 0.5 {
		t.Fatalf("pointer state changed: %+v", p.Hover)
	}
	static := p.AppendRenderData(nil)
	if len(static) != p.Len()*PortraitStride {
		t.Fatalf("render data %d floats for %d points", len(static), p.Len())
	}
}

func TestPortraitSetPixelsOnce(t *testing.T) {
	p := NewPortrait(Rect{W: ImageSize, H: ImageSize}, false)
	first := Placeholder(ImageSize)
	if !p.SetPixels(first) {
		t.Fatal("first SetPixels rejected")
	}
	if p.SetPixels(Placeholder(ImageSize)) {
		t.Fatal("second SetPixels accepted")
	}
	if p.Pixels() != first {
		t.Fatal("pixel buffer replaced")
	}
}

func TestPortraitHoverSettlesAfterLeave(t *testing.T) {
	rect := Rect{X: 0, Y: 0, W: ImageSize, H: ImageSize}
	p := NewPortrait(rect, false)
	p.SetPixels(Placeholder(ImageSize))
	p.PointerMove(50, 50)
	for range 200 {
		p.Tick()
	}
	if p.Hover.Current != 1 {
		t.Fatalf("hover did not reach 1 exactly: %v", p.Hover.Current)
	}
	if p.Tick() {
		t.Fatal("tick reported motion at rest")
	}

	p.PointerMove(500, 500)
	moving := 0
	for p.Tick() {
		moving++
		if moving > 120 {
			t.Fatalf("hover still easing after %d frames: %v", moving, p.Hover.Current)
		}
	}
	if p.Hover.Current != 0 {
		t.Fatalf("settled hover = %v, want 0", p.Hover.Current)
	}
}

func TestHiddenPortraitIgnoresPointer(t *testing.T) {
	rect := Rect{X: 0, Y: 0, W: ImageSize, H: ImageSize}
	p := NewPortrait(rect, false)
	p.SetPixels(Placeholder(ImageSize))
	p.PointerMove(50, 50)
	p.SetHidden(true)
	if p.Inside() || p.Hover.Target != 0 {
		t.Fatalf("hiding kept the hover: inside=%v target=%v", p.Inside(), p.Hover.Target)
	}
	p.PointerMove(60, 60)
	if p.Inside() || p.Hover.Target != 0 {
		t.Fatal("hidden portrait reacted to the pointer")
	}
	p.SetHidden(false)
	p.PointerMove(60, 60)
	if !p.Inside() || p.Hover.Target != 1 {
		t.Fatal("uncovered portrait ignores the pointer")
	}
}
