package config

import (
	_ "embed"
)

//go:embed defaults/pipeshot.yaml
var defaultYAML []byte

// Default returns the built-in configuration: a 10×8 field of 80px cells,
// 300ms per cell and a 100 step budget.
func Default() Config {
	return Config{
		Field: FieldConfig{
			CellSize: 80,
			Width:    10,
			Height:   8,
		},
		Ball: BallConfig{
			SpeedMS:       300,
			MaxSteps:      100,
			WinPulseScale: 1.5,
		},
		Render: RenderConfig{
			CellW: 6,
			CellH: 3,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
