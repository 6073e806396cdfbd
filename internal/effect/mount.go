package effect

// Mount ties one effect instance to the frame loop and the event bus. It
// tracks the pending frame request, the listeners and the resource release
// funcs so that Teardown can free all of them on every exit path.
type Mount struct {
	loop    *FrameLoop
	bus     *Bus
	handle  FrameHandle
	subs    listeners
	release []func()
	torn    bool
}

func NewMount(loop *FrameLoop, bus *Bus) *Mount {
	return &Mount{loop: loop, bus: bus}
}

// Listen subscribes fn for the lifetime of the mount.
func (m *Mount) Listen(t EventType, fn EventHandler) {
	if m.torn {
		return
	}
	m.subs.add(m.bus.Subscribe(t, fn))
}

// OnRelease registers a cleanup run by Teardown, last registered first.
func (m *Mount) OnRelease(fn func()) {
	m.release = append(m.release, fn)
}

// Run schedules tick on every frame while it returns true.
func (m *Mount) Run(tick func(now float64) bool) {
	if m.torn {
		return
	}
	var frame func(now float64)
	frame = func(now float64) {
		m.handle = 0
		if m.torn {
			return
		}
		if tick(now) && !m.torn {
			m.handle = m.loop.Request(frame)
		}
	}
	m.handle = m.loop.Request(frame)
}

// Once schedules a single frame, used for the static reduced-motion render.
func (m *Mount) Once(draw func(now float64)) {
	m.Run(func(now float64) bool {
		draw(now)
		return false
	})
}

// Active reports whether a frame is still scheduled.
func (m *Mount) Active() bool {
	return m.handle != 0
}

// Teardown cancels the pending frame, drops the listeners, then releases
// resources. Safe to call more than once.
func (m *Mount) Teardown() {
	if m.torn {
		return
	}
	m.torn = true
	if m.handle != 0 {
		m.loop.Cancel(m.handle)
		m.handle = 0
	}
	m.subs.release()
	for i := len(m.release) - 1; i >= 0; i-- {
		m.release[i]()
	}
	m.release = nil
}
