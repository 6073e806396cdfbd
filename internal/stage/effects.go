package stage

import (
	"log"

	"folio/internal/effect"
)

// thumbFadeTime is the thumbnail fade duration in seconds.
const thumbFadeTime = 0.15

// background is the ambient particle field behind everything else.
type background struct {
	mount *effect.Mount
	field effect.ParticleField
	r     *fieldRenderer
}

func (a *app) mountBackground() error {
	s := a.settings
	r, err := newFieldRenderer(s.ParticleMode)
	if err != nil {
		return err
	}
	bg := &background{
		mount: effect.NewMount(a.loop, a.bus),
		field: effect.NewParticleField(s.ParticleMode, s.ParticleCount, s.Seed),
		r:     r,
	}
	bg.mount.OnRelease(r.Destroy)
	r.Upload(bg.field)

	if s.ReducedMotion {
		bg.mount.Once(func(float64) { a.invalidate() })
		a.bg = bg
		return nil
	}

	bg.mount.Listen(effect.EventPointerMove, func(e effect.Event) {
		w, h := a.surf.Win.W, a.surf.Win.H
		if w <= 0 || h <= 0 {
			return
		}
		bg.field.SetMouse(e.X/w, 1-e.Y/h)
	})
	bg.mount.Run(func(now float64) bool {
		bg.field.Step(now)
		if bg.field.Mode() == effect.FieldCPU {
			r.Upload(bg.field)
		}
		a.invalidate()
		return true
	})
	a.bg = bg
	return nil
}

func (bg *background) draw(s surface) {
	bg.r.Draw(s, bg.field)
}

// thumbnail is the portrait point cloud and its click target.
type thumbnail struct {
	mount   *effect.Mount
	p       *effect.Portrait
	loader  *effect.Loader
	r       *portraitRenderer
	fade    float64
	last    float64
	pressed bool
}

func (a *app) mountThumbnail(loader *effect.Loader) error {
	r, err := newPortraitRenderer()
	if err != nil {
		return err
	}
	reduced := a.settings.ReducedMotion
	th := &thumbnail{
		mount:  effect.NewMount(a.loop, a.bus),
		p:      effect.NewPortrait(effect.ThumbnailRect(a.surf.Win), reduced),
		loader: loader,
		r:      r,
		fade:   1,
	}
	m := th.mount
	m.OnRelease(r.Destroy)

	// Entering the window straight onto the thumbnail counts as a move.
	track := func(e effect.Event) {
		wasInside := th.p.Inside()
		th.p.PointerMove(e.X, e.Y)
		if !wasInside && th.p.Inside() {
			a.cues.play(cueHover)
		}
	}
	m.Listen(effect.EventPointerMove, track)
	m.Listen(effect.EventPointerEnter, track)
	m.Listen(effect.EventPointerLeave, func(effect.Event) {
		th.p.PointerLeave()
		th.pressed = false
	})
	m.Listen(effect.EventPointerDown, func(e effect.Event) {
		th.pressed = th.p.Rect.Contains(e.X, e.Y)
	})
	m.Listen(effect.EventPointerUp, func(e effect.Event) {
		if th.pressed && th.p.Rect.Contains(e.X, e.Y) {
			a.expand()
		}
		th.pressed = false
	})
	m.Listen(effect.EventKey, func(e effect.Event) {
		if e.Key == effect.KeyEnter && th.p.Rect.Contains(e.X, e.Y) {
			a.expand()
		}
	})
	m.Listen(effect.EventResize, func(effect.Event) {
		th.p.Rect = effect.ThumbnailRect(a.surf.Win)
	})

	m.Run(func(now float64) bool {
		dt := 0.0
		if th.last > 0 {
			dt = now - th.last
		}
		th.last = now

		if th.p.Pixels() == nil {
			px := th.loader.Poll()
			if px == nil {
				return true
			}
			th.p.SetPixels(px)
			r.Upload(th.p)
			a.invalidate()
			return !reduced
		}

		if th.p.Tick() {
			r.Upload(th.p)
			a.invalidate()
		}
		target := 1.0
		if th.p.Hidden {
			target = 0
		}
		if th.fade != target {
			th.fade = effect.Approach(th.fade, target, dt/thumbFadeTime)
			a.invalidate()
		}
		return true
	})
	a.thumb = th
	return nil
}

// setHidden hides or shows the thumbnail. Without a running loop the fade
// snaps.
func (th *thumbnail) setHidden(hidden bool) {
	th.p.SetHidden(hidden)
	if !th.mount.Active() {
		th.fade = 1
		if hidden {
			th.fade = 0
		}
	}
}

func (th *thumbnail) draw(s surface) {
	th.r.Draw(s, th.p.Rect, th.fade)
}

// skyline is the expanded column scene. It only exists between activation
// and the end of the closing animation.
type skyline struct {
	mount *effect.Mount
	tr    *effect.Transition
	r     *columnRenderer
	frame effect.Frame
	posed bool
}

// expand starts the skyline from the thumbnail. Ignored while one is already
// mounted, before the image has arrived, or when no column survives sampling.
func (a *app) expand() {
	if a.sky != nil || a.thumb == nil {
		return
	}
	px := a.thumb.p.Pixels()
	tr := effect.NewTransition(a.settings.ReducedMotion)
	if !tr.Activate(a.thumb.p.Rect, a.surf.Win, px) {
		return
	}
	r, err := newColumnRenderer()
	if err != nil {
		log.Printf("skyline: %v", err)
		return
	}
	r.Upload(tr.Columns)

	sk := &skyline{mount: effect.NewMount(a.loop, a.bus), tr: tr, r: r}
	m := sk.mount
	m.OnRelease(r.Destroy)

	m.Listen(effect.EventPointerDown, func(e effect.Event) {
		tr.PointerDown(e.X, e.Y)
	})
	m.Listen(effect.EventPointerMove, func(e effect.Event) {
		tr.PointerMove(e.X, e.Y)
	})
	m.Listen(effect.EventPointerUp, func(effect.Event) {
		if tr.PointerUp() {
			a.collapsing()
		}
	})
	m.Listen(effect.EventKey, func(e effect.Event) {
		if e.Key == effect.KeyEscape && tr.Escape() {
			a.collapsing()
		}
	})
	m.Listen(effect.EventResize, func(effect.Event) {
		tr.Resize(a.surf.Win)
	})

	m.Run(func(float64) bool {
		sk.frame = tr.Tick()
		sk.posed = true
		a.invalidate()
		if sk.frame.Done {
			a.collapse()
			return false
		}
		return true
	})

	a.sky = sk
	a.thumb.setHidden(true)
	a.window.SetTitle(expandedTitle)
	a.cues.play(cueOpen)
	log.Printf("skyline: opening with %d columns", len(tr.Columns))
}

func (a *app) collapsing() {
	a.cues.play(cueClose)
}

// collapse unmounts the skyline once the closing animation has finished.
func (a *app) collapse() {
	if a.sky == nil {
		return
	}
	a.sky.mount.Teardown()
	a.sky = nil
	a.thumb.setHidden(false)
	a.window.SetTitle(windowTitle)
	log.Printf("skyline: closed")
}

func (sk *skyline) draw(s surface, backdrop *backdropRenderer) {
	if !sk.posed {
		return
	}
	backdrop.Draw(s, sk.frame.Backdrop)
	sk.r.Draw(s, sk.frame)
}
