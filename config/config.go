package config

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/userextra"
	"github.com/jamesrr39/ownmap-svg/ownmap/projection"
	"github.com/jamesrr39/ownmap-svg/svgtree"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Canvas     CanvasConfig `yaml:"canvas"`
	Projection string       `yaml:"projection"`
	// BaseScale is the scale of zoom level 1. If 0, the default scale for the projection is used.
	BaseScale float64      `yaml:"base_scale"`
	Render    RenderConfig `yaml:"render"`
	Server    ServerConfig `yaml:"server"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type RenderConfig struct {
	VisiblePercent float64 `yaml:"visible_percent"`
	EmitMarkers    bool    `yaml:"emit_markers"`
	// Concurrency is the maximum number of renders running at once
	Concurrency uint `yaml:"concurrency"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// TraceFile, if set, receives a trace of every request
	TraceFile string `yaml:"trace_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:  700,
			Height: 500,
		},
		Projection: projection.NameProjectedGrid,
		Render: RenderConfig{
			VisiblePercent: svgtree.DefaultVisiblePercent,
			Concurrency:    4,
		},
		Server: ServerConfig{
			Addr: "localhost:9050",
		},
	}
}

// Load reads a YAML config file over the defaults. Fields missing from the file keep their default values.
func Load(fs gofs.Fs, path string) (*Config, errorsx.Error) {
	expandedPath, err := userextra.ExpandUser(path)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	data, err := fs.ReadFile(expandedPath)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", expandedPath)
	}

	conf := DefaultConfig()
	err = yaml.Unmarshal(data, conf)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", expandedPath)
	}

	return conf, nil
}

// GetBaseScale returns the configured base scale, or the projection's default
func (c *Config) GetBaseScale() float64 {
	if c.BaseScale != 0 {
		return c.BaseScale
	}

	return projection.DefaultBaseScale(c.Projection)
}

func (c *Config) Validate() errorsx.Error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errorsx.Errorf("canvas size must be positive, but was %dx%d", c.Canvas.Width, c.Canvas.Height)
	}

	_, err := projection.ByName(c.Projection)
	if err != nil {
		return err
	}

	if c.BaseScale < 0 {
		return errorsx.Errorf("base scale cannot be negative, but was %f", c.BaseScale)
	}

	if c.Render.VisiblePercent < 0 {
		return errorsx.Errorf("visible percent cannot be negative, but was %f", c.Render.VisiblePercent)
	}

	if c.Render.Concurrency == 0 {
		return errorsx.Errorf("render concurrency must be at least 1")
	}

	return nil
}
