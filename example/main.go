// Example draws a spinning, color-pulsing triangle with a gfx shader program
// and vertex buffer.
//
// Prerequisites:
//
//	devbox shell              # provides Go + OpenGL/X11 headers
//	go run ./example/ -config example/config.toml
//
// Without -config the embedded shaders and an 800x600 window are used.
package main

import (
	"embed"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/gfx"
	"github.com/go-theft-auto/gfx/backend/opengl"
)

//go:embed shaders
var shaderFS embed.FS

var triangle = []opengl.Vertex{
	{Pos: mgl32.Vec3{-0.6, -0.5, 0}, Color: mgl32.Vec3{1, 0.2, 0.2}},
	{Pos: mgl32.Vec3{0.6, -0.5, 0}, Color: mgl32.Vec3{0.2, 1, 0.2}},
	{Pos: mgl32.Vec3{0, 0.6, 0}, Color: mgl32.Vec3{0.2, 0.2, 1}},
}

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Log.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var sources gfx.SourceProvider = gfx.FSSource{FS: shaderFS}
	vert, frag := "shaders/triangle.vert", "shaders/triangle.frag"
	if cfg.customShaders() {
		sources = gfx.FileSource{}
		vert, frag = cfg.Shaders.Vertex, cfg.Shaders.Fragment
	}

	window, err := opengl.OpenWindow(opengl.WindowConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
	}, gfx.WithLogger(logger), gfx.WithSourceProvider(sources))
	if err != nil {
		return err
	}
	defer window.Close()

	renderer, err := opengl.NewRenderer(vert, frag)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	if err := renderer.SetVertices(triangle, gfx.StaticDraw); err != nil {
		return err
	}

	start := glfw.GetTime()
	for !window.ShouldClose() {
		glfw.PollEvents()

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		t := glfw.GetTime() - start
		pulse := float32(0.75 + 0.25*math.Sin(t*2))

		program := renderer.Program()
		if err := program.Use(); err != nil {
			return err
		}
		if err := program.SetVector3("tint", mgl32.Vec3{1, pulse, 1}); err != nil {
			return err
		}

		aspect := float32(w) / float32(max(h, 1))
		projection := mgl32.Ortho(-aspect, aspect, -1, 1, -1, 1)
		if err := renderer.Render(mgl32.HomogRotate3DZ(float32(t)), projection); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}
