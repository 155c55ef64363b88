// Package config loads service configuration from an optional YAML file
// layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/gesture"
)

// Config holds everything the daemon needs to start.
type Config struct {
	// CameraID is the OpenCV device index.
	CameraID int `mapstructure:"camera_id"`
	// ListenAddr is the HTTP server bind address.
	ListenAddr string `mapstructure:"listen_addr"`
	// DataDir holds the database and calibration file. Defaults to
	// ~/.memorygallery.
	DataDir string `mapstructure:"data_dir"`
	// MediaDir is where photos and clips live on disk.
	MediaDir string `mapstructure:"media_dir"`
	// MotionThreshold is the frame-change ratio above which the pipeline
	// switches to the active capture rate.
	MotionThreshold float64 `mapstructure:"motion_threshold"`
	// Gesture holds the interpretation calibration.
	Gesture gesture.Config `mapstructure:"gesture"`
}

// Load reads configuration from dir/config.yaml if it exists, otherwise
// returns the defaults. Pass an empty dir to use ~/.memorygallery.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".memorygallery")
	}

	v := viper.New()
	setDefaults(v, dir)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file is fine, defaults apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("camera_id", 0)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("data_dir", dir)
	v.SetDefault("media_dir", filepath.Join(dir, "media"))
	v.SetDefault("motion_threshold", 0.01)

	g := gesture.DefaultConfig()
	v.SetDefault("gesture.pinch_distance", g.PinchDistance)
	v.SetDefault("gesture.signal_alpha", g.SignalAlpha)
	v.SetDefault("gesture.activate_threshold", g.ActivateThreshold)
	v.SetDefault("gesture.release_threshold", g.ReleaseThreshold)
	v.SetDefault("gesture.palm_ratio", g.PalmRatio)
	v.SetDefault("gesture.scroll_alpha", g.ScrollAlpha)
	v.SetDefault("gesture.scroll_gain", g.ScrollGain)
	v.SetDefault("gesture.pointer_alpha", g.PointerAlpha)
	v.SetDefault("gesture.pinch_on", g.PinchOn)
	v.SetDefault("gesture.pinch_off", g.PinchOff)
	v.SetDefault("gesture.anchor_weight", g.AnchorWeight)
	v.SetDefault("gesture.hand_timeout", g.HandTimeout)
	v.SetDefault("gesture.viewport_width", g.ViewportWidth)
	v.SetDefault("gesture.viewport_height", g.ViewportHeight)
}
