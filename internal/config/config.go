// Package config provides YAML-based game configuration loading and speed
// presets for pipeshot.
package config

import (
	"time"

	"github.com/vovakirdan/pipeshot/internal/engine"
)

// Config contains all tunable game parameters.
type Config struct {
	Field  FieldConfig  `yaml:"field"`
	Ball   BallConfig   `yaml:"ball"`
	Render RenderConfig `yaml:"render"`
}

// FieldConfig defines the grid dimensions.
type FieldConfig struct {
	CellSize float64 `yaml:"cell_size"` // Pixel size of one cell, used for motion geometry
	Width    int     `yaml:"width"`     // Columns in a default level
	Height   int     `yaml:"height"`    // Rows in a default level
}

// BallConfig defines ball motion parameters.
type BallConfig struct {
	SpeedMS       int     `yaml:"speed_ms"`        // Time to cross one cell
	MaxSteps      int     `yaml:"max_steps"`       // 0 disables the step budget
	WinPulseScale float64 `yaml:"win_pulse_scale"` // Peak scale of the goal pulse
}

// RenderConfig defines how many terminal characters one grid cell takes.
type RenderConfig struct {
	CellW int `yaml:"cell_w"`
	CellH int `yaml:"cell_h"`
}

// Speed returns the ball speed as a duration.
func (b BallConfig) Speed() time.Duration {
	return time.Duration(b.SpeedMS) * time.Millisecond
}

// EngineOptions converts the configuration to motion options for the engine.
func (c Config) EngineOptions() engine.Options {
	return engine.Options{
		Geometry:   engine.NewGeometry(c.Field.CellSize),
		Speed:      c.Ball.Speed(),
		MaxSteps:   c.Ball.MaxSteps,
		PulseScale: c.Ball.WinPulseScale,
	}
}

// normalize replaces missing or invalid values with defaults so a partial
// YAML file still yields a playable configuration.
func (c *Config) normalize() {
	def := Default()

	if c.Field.CellSize <= 0 {
		c.Field.CellSize = def.Field.CellSize
	}
	if c.Field.Width <= 0 {
		c.Field.Width = def.Field.Width
	}
	if c.Field.Height <= 0 {
		c.Field.Height = def.Field.Height
	}
	if c.Ball.SpeedMS <= 0 {
		c.Ball.SpeedMS = def.Ball.SpeedMS
	}
	if c.Ball.MaxSteps < 0 {
		c.Ball.MaxSteps = def.Ball.MaxSteps
	}
	if c.Ball.WinPulseScale <= 0 {
		c.Ball.WinPulseScale = def.Ball.WinPulseScale
	}
	if c.Render.CellW < 3 {
		c.Render.CellW = def.Render.CellW
	}
	if c.Render.CellH < 1 {
		c.Render.CellH = def.Render.CellH
	}
}
