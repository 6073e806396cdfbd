package effect

// FrameHandle identifies a pending frame request. Zero is never issued.
type FrameHandle uint64

// FrameLoop is a cooperative, single-threaded frame scheduler. Callbacks are
// one-shot: a tick that wants to keep running requests itself again.
type FrameLoop struct {
	pending map[FrameHandle]func(now float64)
	order   []FrameHandle
	next    FrameHandle
	closed  bool
}

func NewFrameLoop() *FrameLoop {
	return &FrameLoop{pending: make(map[FrameHandle]func(float64))}
}

// Request schedules fn for the next RunFrame. It returns 0 once the loop is closed.
func (fl *FrameLoop) Request(fn func(now float64)) FrameHandle {
	if fl.closed || fn == nil {
		return 0
	}
	fl.next++
	h := fl.next
	fl.pending[h] = fn
	fl.order = append(fl.order, h)
	return h
}

// Cancel drops a pending request. Cancelling an unknown or fired handle is a no-op.
func (fl *FrameLoop) Cancel(h FrameHandle) {
	delete(fl.pending, h)
}

// RunFrame fires every callback requested before this call, in request order.
// Requests made during the frame run on the next one. Returns the number fired.
func (fl *FrameLoop) RunFrame(now float64) int {
	if fl.closed {
		return 0
	}
	batch := fl.order
	fl.order = nil
	fired := 0
	for _, h := range batch {
		fn, ok := fl.pending[h]
		if !ok {
			continue
		}
		delete(fl.pending, h)
		fn(now)
		fired++
		if fl.closed {
			break
		}
	}
	return fired
}

// Pending reports the number of outstanding requests.
func (fl *FrameLoop) Pending() int {
	return len(fl.pending)
}

// Close cancels everything and refuses further requests.
func (fl *FrameLoop) Close() {
	fl.closed = true
	clear(fl.pending)
	fl.order = nil
}
