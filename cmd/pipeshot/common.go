package main

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/pipeshot/internal/config"
	"github.com/vovakirdan/pipeshot/internal/level"
)

var flagSpeed string

// loadConfig reads the game config and applies the --speed preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return cfg, err
	}
	if flagSpeed != "" {
		preset, err := config.ParseSpeedPreset(flagSpeed)
		if err != nil {
			return cfg, err
		}
		config.ApplySpeedPreset(&cfg, preset)
	}
	return cfg, nil
}

// levelIndex finds id among levels by ID or by 1-based position.
func levelIndex(levels []level.Level, id string) (int, error) {
	for i, l := range levels {
		if l.ID == id {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(id); err == nil && n >= 1 && n <= len(levels) {
		return n - 1, nil
	}
	return -1, fmt.Errorf("unknown level %q", id)
}
