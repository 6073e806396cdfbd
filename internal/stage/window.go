package stage

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"folio/internal/effect"
)

const windowTitle = "folio"

const expandedTitle = "folio · drag to rotate, click or press ESC to close"

func initWindow(width, height int) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(width, height, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

// pixelRatio is the framebuffer-to-window scale, capped like a browser
// devicePixelRatio clamp.
func pixelRatio(window *glfw.Window) float32 {
	fbW, _ := window.GetFramebufferSize()
	winW, _ := window.GetSize()
	if winW <= 0 || fbW <= 0 {
		return 1
	}
	return min(float32(fbW)/float32(winW), effect.MaxPixelRatio)
}
