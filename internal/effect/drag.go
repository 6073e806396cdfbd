package effect

import "math"

// Drag tracks one press-move-release gesture.
type Drag struct {
	Active  bool
	Dragged bool

	StartX, StartY float64
	PrevX, PrevY   float64
}

func (d *Drag) Begin(x, y float64) {
	d.Active = true
	d.Dragged = false
	d.StartX, d.StartY = x, y
	d.PrevX, d.PrevY = x, y
}

// Move returns the delta since the previous position. Once the pointer has
// strayed past DragThreshold on either axis the gesture counts as a drag.
func (d *Drag) Move(x, y float64) (dx, dy float64, ok bool) {
	if !d.Active {
		return 0, 0, false
	}
	if math.Abs(x-d.StartX) > DragThreshold || math.Abs(y-d.StartY) > DragThreshold {
		d.Dragged = true
	}
	dx, dy = x-d.PrevX, y-d.PrevY
	d.PrevX, d.PrevY = x, y
	return dx, dy, true
}

// End finishes the gesture and reports whether it was a click.
func (d *Drag) End() bool {
	click := d.Active && !d.Dragged
	d.Active = false
	return click
}
