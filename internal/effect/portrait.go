package effect

import "math"

// Hover eases toward 0 or 1 by a fixed fraction of the remaining distance.
type Hover struct {
	Target  float64
	Current float64
}

func (h *Hover) Enter() { h.Target = 1 }
func (h *Hover) Leave() { h.Target = 0 }

// Tick eases Current and snaps it onto Target once within HoverSettle.
func (h *Hover) Tick() float64 {
	h.Current = damp(h.Current, h.Target, HoverEase)
	if math.Abs(h.Target-h.Current) < HoverSettle {
		h.Current = h.Target
	}
	return h.Current
}

// Falloff is 1 at the pointer, 0 at radius and beyond, smooth in between.
func Falloff(dist, radius float64) float64 {
	return 1 - Smoothstep(0, radius, dist)
}

// Disperse returns the displacement of a point at uv (u, v) pushed away from
// the pointer at (mx, my). Direction is normalized in uv space.
func Disperse(u, v, mx, my, hover, strength float64) (float64, float64) {
	dx, dy := u-mx, v-my
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 0, 0
	}
	k := Falloff(dist, DispersionRadius) * hover * strength
	nx, ny := dx/dist, dy/dist
	return nx * k, ny * k
}

// PortraitPoint is one grid point of the thumbnail point cloud. X/Y are in
// image units centred on the thumbnail, U/V in [0,1) with V up.
type PortraitPoint struct {
	X, Y       float64
	U, V       float64
	R, G, B, A float32
}

// PortraitStride is the float count per point in AppendRenderData: x, y, r, g, b, a.
const PortraitStride = 6

// PointCloud samples the buffer on a grid of size/pixelSize cells and drops
// cells that the point shader would discard.
func PointCloud(pb *PixelBuffer, pixelSize int) []PortraitPoint {
	if pb == nil || pixelSize <= 0 {
		return nil
	}
	grid := pb.Size / pixelSize
	if grid <= 0 {
		return nil
	}
	span := float64(pb.Size)
	out := make([]PortraitPoint, 0, grid*grid)
	for gy := range grid {
		for gx := range grid {
			u := float64(gx) / float64(grid)
			v := float64(gy) / float64(grid)
			row := min(int((1-v)*span), pb.Size-1)
			col := min(int(u*span), pb.Size-1)
			r, g, b, a := pb.At(col, row)
			if float64(a)/255 < PointAlphaCutoff {
				continue
			}
			out = append(out, PortraitPoint{
				X: (u - 0.5) * span,
				Y: (v - 0.5) * span,
				U: u, V: v,
				R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: float32(a) / 255,
			})
		}
	}
	return out
}

// Portrait is the disperse effect state for the thumbnail.
type Portrait struct {
	Hover  Hover
	MouseU float64
	MouseV float64
	Rect   Rect
	Hidden bool // true while the skyline covers the thumbnail

	reduced bool
	inside  bool
	points  []PortraitPoint
	px      *PixelBuffer
}

func NewPortrait(rect Rect, reduced bool) *Portrait {
	return &Portrait{Rect: rect, MouseU: 0.5, MouseV: 0.5, reduced: reduced}
}

// SetPixels installs the loaded buffer. Only the first call has an effect.
func (p *Portrait) SetPixels(pb *PixelBuffer) bool {
	if p.px != nil || pb == nil {
		return false
	}
	p.px = pb
	p.points = PointCloud(pb, PixelSize)
	return true
}

func (p *Portrait) Pixels() *PixelBuffer { return p.px }

func (p *Portrait) Len() int { return len(p.points) }

// PointerMove tracks the pointer in thumbnail uv space and derives
// enter/leave from containment. Ignored under reduced motion.
func (p *Portrait) PointerMove(x, y float64) {
	if p.reduced || p.Hidden {
		return
	}
	in := p.Rect.Contains(x, y)
	if in {
		p.MouseU = (x - p.Rect.X) / p.Rect.W
		p.MouseV = 1 - (y-p.Rect.Y)/p.Rect.H
	}
	if in != p.inside {
		p.inside = in
		if in {
			p.Hover.Enter()
		} else {
			p.Hover.Leave()
		}
	}
}

// PointerLeave handles the pointer leaving the window entirely.
func (p *Portrait) PointerLeave() {
	if p.reduced {
		return
	}
	p.inside = false
	p.Hover.Leave()
}

// SetHidden covers or uncovers the thumbnail. Covering drops any hover so
// the points settle back while the skyline is up.
func (p *Portrait) SetHidden(hidden bool) {
	p.Hidden = hidden
	if hidden && p.inside {
		p.inside = false
		p.Hover.Leave()
	}
}

// Inside reports whether the pointer is over the thumbnail.
func (p *Portrait) Inside() bool { return p.inside }

// Tick eases the hover value. It reports whether the pointer effect is still moving.
func (p *Portrait) Tick() bool {
	if p.reduced {
		return false
	}
	before := p.Hover.Current
	p.Hover.Tick()
	return p.Hover.Current != before
}

// AppendRenderData writes the displaced point cloud.
func (p *Portrait) AppendRenderData(buf []float32) []float32 {
	strength := DispersionStrength * ImageSize
	for _, pt := range p.points {
		x, y := pt.X, pt.Y
		if p.Hover.Current > 0 {
			dx, dy := Disperse(pt.U, pt.V, p.MouseU, p.MouseV, p.Hover.Current, strength)
			x += dx
			y += dy
		}
		buf = append(buf, float32(x), float32(y), pt.R, pt.G, pt.B, pt.A)
	}
	return buf
}
