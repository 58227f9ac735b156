package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type config struct {
	Window struct {
		Width  int    `toml:"width"`
		Height int    `toml:"height"`
		Title  string `toml:"title"`
		VSync  bool   `toml:"vsync"`
	} `toml:"window"`

	// Shaders overrides the embedded shaders with files on disk. Both paths
	// must be set for the override to apply.
	Shaders struct {
		Vertex   string `toml:"vertex"`
		Fragment string `toml:"fragment"`
	} `toml:"shaders"`

	Log struct {
		Debug bool `toml:"debug"`
	} `toml:"log"`
}

func defaultConfig() config {
	var c config
	c.Window.Width = 800
	c.Window.Height = 600
	c.Window.Title = "gfx example"
	c.Window.VSync = true
	return c
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return c, fmt.Errorf("read config %s: unknown keys %v", path, undecoded)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return c, fmt.Errorf("read config %s: window size %dx%d must be positive", path, c.Window.Width, c.Window.Height)
	}
	return c, nil
}

func (c config) customShaders() bool {
	return c.Shaders.Vertex != "" && c.Shaders.Fragment != ""
}
