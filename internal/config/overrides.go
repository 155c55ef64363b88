package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/gesture"
)

// ApplyOverrides layers the settings-table overrides onto a gesture
// config. Keys match the config file names; unknown keys are reported so
// a typo in a stored override surfaces instead of silently doing nothing.
func ApplyOverrides(cfg *gesture.Config, overrides map[string]string) error {
	for key, value := range overrides {
		if err := applyOverride(cfg, key, value); err != nil {
			return fmt.Errorf("invalid override %s=%q: %w", key, value, err)
		}
	}
	return nil
}

func applyOverride(cfg *gesture.Config, key, value string) error {
	if key == "hand_timeout" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		cfg.HandTimeout = d
		return nil
	}

	target := map[string]*float64{
		"pinch_distance":     &cfg.PinchDistance,
		"signal_alpha":       &cfg.SignalAlpha,
		"activate_threshold": &cfg.ActivateThreshold,
		"release_threshold":  &cfg.ReleaseThreshold,
		"palm_ratio":         &cfg.PalmRatio,
		"scroll_alpha":       &cfg.ScrollAlpha,
		"scroll_gain":        &cfg.ScrollGain,
		"pointer_alpha":      &cfg.PointerAlpha,
		"pinch_on":           &cfg.PinchOn,
		"pinch_off":          &cfg.PinchOff,
		"anchor_weight":      &cfg.AnchorWeight,
		"viewport_width":     &cfg.ViewportWidth,
		"viewport_height":    &cfg.ViewportHeight,
	}[key]
	if target == nil {
		return fmt.Errorf("unknown setting")
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	*target = f
	return nil
}
