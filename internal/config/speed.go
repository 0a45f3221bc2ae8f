package config

import (
	"fmt"
	"strings"
)

// SpeedPreset is a named ball speed.
type SpeedPreset string

const (
	SpeedSlow    SpeedPreset = "slow"
	SpeedNormal  SpeedPreset = "normal"
	SpeedFast    SpeedPreset = "fast"
	SpeedInstant SpeedPreset = "instant"
)

// SpeedPresets lists the presets in increasing speed.
func SpeedPresets() []SpeedPreset {
	return []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedInstant}
}

// ParseSpeedPreset converts a flag value to a SpeedPreset.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	p := SpeedPreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return SpeedNormal, nil
	case SpeedSlow, SpeedNormal, SpeedFast, SpeedInstant:
		return p, nil
	default:
		return SpeedNormal, fmt.Errorf("unknown speed %q (want slow, normal, fast or instant)", s)
	}
}

// DurationFactor returns the multiplier applied to segment durations.
func (p SpeedPreset) DurationFactor() float64 {
	switch p {
	case SpeedSlow:
		return 1.5
	case SpeedFast:
		return 0.5
	case SpeedInstant:
		return 0.1
	default:
		return 1.0
	}
}

// ApplySpeedPreset scales the ball speed of cfg by the preset's factor.
func ApplySpeedPreset(cfg *Config, preset SpeedPreset) {
	ms := int(float64(cfg.Ball.SpeedMS) * preset.DurationFactor())
	cfg.Ball.SpeedMS = max(ms, 1)
}
