package effect

import "math"

type TransitionState int

const (
	StateClosed TransitionState = iota
	StateOpening
	StateOpen
	StateClosing
)

func (s TransitionState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	}
	return "unknown"
}

// Rotation is the skyline orientation in radians.
type Rotation struct {
	X, Y float64
}

// RestRotation is the orientation the skyline opens with.
var RestRotation = Rotation{X: RestRotationX, Y: RestRotationY}

// Frame is everything the skyline renderer needs for one draw.
type Frame struct {
	Camera     Vec3
	LookAt     Vec3
	MeshOffset Vec3
	MeshScale  float64
	Rotation   Rotation
	Rise       float64 // column height factor, 0 flat .. 1 full
	Inversion  float64 // eased blend from normal to inverted heights
	Backdrop   float64
	Aspect     float64
	Done       bool // closing finished; the skyline must be unmounted
}

// Transition drives the thumbnail <-> skyline animation.
type Transition struct {
	State    TransitionState
	Progress float64
	Closing  bool

	StartRect   Rect
	Viewport    Size
	CameraStart Vec3
	CameraEnd   Vec3
	MeshStart   Vec3
	ScaleStart  float64
	ScaleEnd    float64

	Rot       Rotation
	TargetRot Rotation
	Inversion Oscillator
	Drag      Drag

	Columns []Column

	reduced bool
}

func NewTransition(reduced bool) *Transition {
	return &Transition{
		Rot:       RestRotation,
		TargetRot: RestRotation,
		Inversion: NewOscillator(HeightInversionSpeed),
		reduced:   reduced,
	}
}

// Activate starts opening from the thumbnail at rect. It is a no-op and
// returns false while not closed, without pixel data, or when no sample is
// visible.
func (t *Transition) Activate(rect Rect, vp Size, pb *PixelBuffer) bool {
	if t.State != StateClosed || pb == nil {
		return false
	}
	cols := BuildColumns(pb, ColumnGridSize)
	if len(cols) == 0 {
		return false
	}
	cx, cy := rect.Center()
	startX := cx - vp.W/2
	startY := -(cy - vp.H/2)
	scale := rect.W / (ColumnGridSize * StartScaleDivisor)

	t.Columns = cols
	t.StartRect = rect
	t.Viewport = vp
	t.MeshStart = Vec3{X: startX * ScreenToWorld, Y: startY * ScreenToWorld}
	t.CameraStart = Vec3{X: t.MeshStart.X, Y: t.MeshStart.Y + LookAtLift*scale, Z: StartDistance}
	t.CameraEnd = Vec3{Y: EndHeight, Z: EndDistance}
	t.ScaleStart = scale
	t.ScaleEnd = 1
	t.Progress = 0
	t.Closing = false
	t.State = StateOpening
	t.reset()
	return true
}

func (t *Transition) reset() {
	t.Rot = RestRotation
	t.TargetRot = RestRotation
	t.Inversion.Reset()
	t.Drag = Drag{}
}

// Tick advances one frame and returns the interpolated pose. The pose uses
// the progress from before this frame's step.
func (t *Transition) Tick() Frame {
	if t.State == StateClosed {
		return Frame{Done: true, Aspect: t.Viewport.Aspect()}
	}
	eased := EaseOutCubic(t.Progress)

	if t.Closing {
		t.Progress = math.Max(0, t.Progress-TransitionStep)
		if t.Progress <= 0 {
			t.State = StateClosed
			t.Closing = false
			t.reset()
			f := t.pose(0)
			f.Done = true
			return f
		}
	} else if t.Progress < 1 {
		t.Progress = math.Min(1, t.Progress+TransitionStep)
		if t.Progress >= 1 {
			t.State = StateOpen
		}
	} else if !t.reduced {
		t.Inversion.Step()
	}

	if t.Progress >= 1 || t.Closing {
		t.Rot.X = damp(t.Rot.X, t.TargetRot.X, RotationEase)
		t.Rot.Y = damp(t.Rot.Y, t.TargetRot.Y, RotationEase)
	}
	return t.pose(eased)
}

func (t *Transition) pose(eased float64) Frame {
	offset := t.MeshStart.Scale(1 - eased)
	return Frame{
		Camera:     t.CameraStart.Lerp(t.CameraEnd, eased),
		LookAt:     Vec3{X: offset.X, Y: LookAtLift * (1 - eased)},
		MeshOffset: offset,
		MeshScale:  lerp(t.ScaleStart, t.ScaleEnd, eased),
		Rotation:   t.Rot,
		Rise:       eased,
		Inversion:  t.Inversion.Eased(),
		Backdrop:   eased,
		Aspect:     t.Viewport.Aspect(),
	}
}

// Interactive reports whether drags are accepted.
func (t *Transition) Interactive() bool {
	return t.State == StateOpen && !t.Closing
}

func (t *Transition) requestClose() {
	t.Closing = true
	t.State = StateClosing
}

// PointerDown starts a potential drag.
func (t *Transition) PointerDown(x, y float64) bool {
	if !t.Interactive() {
		return false
	}
	t.Drag.Begin(x, y)
	return true
}

// PointerMove rotates the target orientation while a drag is active.
func (t *Transition) PointerMove(x, y float64) {
	dx, dy, ok := t.Drag.Move(x, y)
	if !ok {
		return
	}
	t.TargetRot.Y += dx * DragSensitivity
	t.TargetRot.X = clampF(t.TargetRot.X+dy*DragSensitivity, MinRotationX, MaxRotationX)
}

// PointerUp ends the drag. A press that never moved past the threshold is a
// click and closes the skyline.
func (t *Transition) PointerUp() bool {
	click := t.Drag.End()
	if click && t.Interactive() {
		t.requestClose()
		return true
	}
	return false
}

// Escape closes the skyline once it is fully open.
func (t *Transition) Escape() bool {
	if !t.Interactive() {
		return false
	}
	t.requestClose()
	return true
}

// Resize only changes the aspect ratio; the animation keeps its anchors.
func (t *Transition) Resize(vp Size) {
	t.Viewport = vp
}
