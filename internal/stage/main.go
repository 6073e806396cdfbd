package stage

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"folio/internal/effect"
)

// idleTimeout bounds the wait between frames when nothing was drawn.
const idleTimeout = 1.0 / 60.0

type app struct {
	window   *glfw.Window
	settings effect.Settings
	loop     *effect.FrameLoop
	bus      *effect.Bus
	input    *Input
	cues     *cues
	surf     surface
	backdrop *backdropRenderer

	root  *effect.Mount // app-wide listeners
	bg    *background
	thumb *thumbnail
	sky   *skyline

	changed bool
}

// Run opens the window and drives every effect until the window closes.
// A machine without a usable GL 4.1 context gets a log line and a nil error.
func Run(settings effect.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow(settings.Width, settings.Height)
	if err != nil {
		log.Printf("graphics unavailable, nothing to show: %v", err)
		return nil
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		log.Printf("graphics unavailable, nothing to show: gl init: %v", err)
		return nil
	}

	a := &app{
		window:   window,
		settings: settings,
		loop:     effect.NewFrameLoop(),
		bus:      effect.NewBus(),
	}
	if !settings.Mute {
		c, err := newCues()
		if err != nil {
			log.Printf("audio init failed (continuing without sound): %v", err)
		} else {
			a.cues = c
		}
	}
	a.resize()

	a.backdrop, err = newBackdropRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer a.backdrop.Destroy()

	a.input = attachInput(window, a.bus)
	defer a.input.detach()
	defer a.teardown()

	a.listen()

	// Decoding and resampling run on a worker so the first frames are not held up.
	pool := worker.NewDynamicWorkerPool(1, 4, time.Second)
	defer pool.Stop()
	loader := effect.StartLoader(settings.ImagePath, effect.ImageSize, poolSubmit(pool))

	if a.surf.Win.W >= effect.MobileWidth {
		if err := a.mountBackground(); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	if err := a.mountThumbnail(loader); err != nil {
		return fmt.Errorf("thumbnail: %w", err)
	}

	for !window.ShouldClose() {
		glfw.PollEvents()
		a.loop.RunFrame(glfw.GetTime())

		if a.takeChanged() || a.input.takeDirty() {
			a.draw()
			window.SwapBuffers()
			continue
		}
		if a.loop.Pending() == 0 {
			glfw.WaitEvents()
		} else {
			glfw.WaitEventsTimeout(idleTimeout)
		}
	}
	return nil
}

// poolSubmit adapts a worker pool to the loader's job queue.
func poolSubmit(pool worker.DynamicWorkerPool) effect.Submit {
	id := 0
	return func(job func()) {
		id++
		pool.SubmitTask(worker.Task{ID: id, Do: func() (any, error) {
			job()
			return nil, nil
		}})
	}
}

// listen subscribes the app-wide handlers ahead of every effect, so resize
// updates the surface before any effect reads it.
func (a *app) listen() {
	a.root = effect.NewMount(a.loop, a.bus)
	a.root.Listen(effect.EventResize, func(effect.Event) { a.resize() })
	a.root.Listen(effect.EventKey, a.onKey)
}

func (a *app) onKey(e effect.Event) {
	switch e.Key {
	case effect.KeyEscape:
		if a.sky == nil {
			a.window.SetShouldClose(true)
		}
	case effect.KeyRune:
		if sec, ok := effect.NavSection(e.Rune); ok {
			log.Printf("navigate: %s", sec)
		}
	}
}

func (a *app) resize() {
	winW, winH := a.window.GetSize()
	fbW, fbH := a.window.GetFramebufferSize()
	a.surf = surface{
		Win:   effect.Size{W: float64(winW), H: float64(winH)},
		FbW:   fbW,
		FbH:   fbH,
		Ratio: pixelRatio(a.window),
	}
	a.changed = true
}

func (a *app) invalidate() { a.changed = true }

func (a *app) takeChanged() bool {
	c := a.changed
	a.changed = false
	return c
}

func (a *app) draw() {
	beginFrame(a.surf)
	if a.bg != nil {
		a.bg.draw(a.surf)
	}
	if a.thumb != nil {
		a.thumb.draw(a.surf)
	}
	if a.sky != nil {
		a.sky.draw(a.surf, a.backdrop)
	}
}

// teardown releases every mounted effect while the GL context is still current.
func (a *app) teardown() {
	if a.sky != nil {
		a.sky.mount.Teardown()
		a.sky = nil
	}
	if a.thumb != nil {
		a.thumb.mount.Teardown()
		a.thumb = nil
	}
	if a.bg != nil {
		a.bg.mount.Teardown()
		a.bg = nil
	}
	if a.root != nil {
		a.root.Teardown()
		a.root = nil
	}
	a.loop.Close()
}
