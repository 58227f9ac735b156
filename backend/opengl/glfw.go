package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/gfx"
)

// WindowConfig describes the window and context to create.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Window is a GLFW window whose OpenGL 4.1 core context has been made
// current and installed as the gfx graphics context.
type Window struct {
	*glfw.Window
}

// OpenWindow initialises GLFW, creates a window, makes its context current,
// loads the GL function pointers and calls gfx.Init with opts.
//
// GLFW must run on the main thread: lock it with runtime.LockOSThread in an
// init func before calling OpenWindow.
func OpenWindow(cfg WindowConfig, opts ...gfx.Option) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	w, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	w.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		w.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	gfx.Init(NewDriver(), opts...)
	gfx.Logger().Debug("opened window",
		"width", cfg.Width, "height", cfg.Height,
		"gl", gl.GoStr(gl.GetString(gl.VERSION)),
		"maxVertexAttributes", gfx.MaxVertexAttributes())

	return &Window{Window: w}, nil
}

// Close destroys the window and terminates GLFW. Dispose every gfx resource
// before calling it.
func (w *Window) Close() {
	w.Destroy()
	glfw.Terminate()
}
