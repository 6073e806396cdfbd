package stage

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"folio/internal/effect"
)

// Input forwards GLFW window callbacks to the event bus. Coordinates stay in
// window pixels with the origin at the top-left.
type Input struct {
	bus    *effect.Bus
	window *glfw.Window
	dirty  bool // window needs a redraw even if no effect ticked
}

func attachInput(window *glfw.Window, bus *effect.Bus) *Input {
	in := &Input{bus: bus, window: window, dirty: true}

	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		bus.Emit(effect.Event{Type: effect.EventPointerMove, X: x, Y: y})
	})
	window.SetCursorEnterCallback(func(w *glfw.Window, entered bool) {
		x, y := w.GetCursorPos()
		t := effect.EventPointerLeave
		if entered {
			t = effect.EventPointerEnter
		}
		bus.Emit(effect.Event{Type: t, X: x, Y: y})
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := w.GetCursorPos()
		switch action {
		case glfw.Press:
			bus.Emit(effect.Event{Type: effect.EventPointerDown, X: x, Y: y})
		case glfw.Release:
			bus.Emit(effect.Event{Type: effect.EventPointerUp, X: x, Y: y})
		}
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		k, r := translateKey(key)
		if k == effect.KeyNone {
			return
		}
		x, y := w.GetCursorPos()
		bus.Emit(effect.Event{Type: effect.EventKey, Key: k, Rune: r, X: x, Y: y})
	})
	window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		in.dirty = true
		bus.Emit(effect.Event{Type: effect.EventResize, W: width, H: height})
	})
	window.SetRefreshCallback(func(_ *glfw.Window) {
		in.dirty = true
	})
	return in
}

// detach drops every callback so nothing reaches the bus after teardown.
func (in *Input) detach() {
	in.window.SetCursorPosCallback(nil)
	in.window.SetCursorEnterCallback(nil)
	in.window.SetMouseButtonCallback(nil)
	in.window.SetKeyCallback(nil)
	in.window.SetSizeCallback(nil)
	in.window.SetRefreshCallback(nil)
}

// takeDirty reports and clears a pending redraw request.
func (in *Input) takeDirty() bool {
	d := in.dirty
	in.dirty = false
	return d
}

// translateKey maps the keys the page reacts to. Letters are reported as
// lower-case runes.
func translateKey(key glfw.Key) (effect.Key, rune) {
	switch {
	case key == glfw.KeyEnter || key == glfw.KeyKPEnter:
		return effect.KeyEnter, 0
	case key == glfw.KeyEscape:
		return effect.KeyEscape, 0
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return effect.KeyRune, rune('a' + (key - glfw.KeyA))
	}
	return effect.KeyNone, 0
}
