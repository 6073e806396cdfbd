package effect

import (
	"log"
)

// Submit runs a job off the render loop.
type Submit func(job func())

// Loader fetches the portrait once in the background. A failed load is
// replaced by Placeholder so consumers always receive a buffer.
type Loader struct {
	done chan *PixelBuffer
	px   *PixelBuffer
}

// StartLoader queues the load on submit and returns immediately.
func StartLoader(path string, size int, submit Submit) *Loader {
	l := &Loader{done: make(chan *PixelBuffer, 1)}
	submit(func() {
		px, err := LoadPortrait(path, size)
		if err != nil {
			log.Printf("portrait: %v; using placeholder", err)
			px = Placeholder(size)
		}
		l.done <- px
	})
	return l
}

// Poll returns the buffer once it has arrived. It never blocks.
func (l *Loader) Poll() *PixelBuffer {
	if l.px != nil {
		return l.px
	}
	select {
	case px := <-l.done:
		l.px = px
	default:
	}
	return l.px
}
