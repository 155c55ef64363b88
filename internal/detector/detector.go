package detector

import (
	"context"
	"errors"

	"gocv.io/x/gocv"
)

// ErrInitFailed wraps any failure to bring up the tracking backend.
// It is terminal for the gesture pipeline: callers should surface a
// degraded state instead of retrying.
var ErrInitFailed = errors.New("detector initialization failed")

// ErrNotInitialized is returned by Detect before Initialize has succeeded.
var ErrNotInitialized = errors.New("detector not initialized")

// Detector is the boundary to the external hand-tracking service.
//
// Lifecycle: create, Initialize exactly once, Detect per frame, Close.
// Initialize is idempotent; concurrent callers collapse onto the first
// attempt and share its result.
type Detector interface {
	// Initialize brings up the tracking backend. It must be called before
	// Detect and returns an error wrapping ErrInitFailed if the backend
	// cannot be started.
	Initialize(ctx context.Context) error

	// Detect analyzes a video frame captured at the given monotonically
	// increasing timestamp and returns the detected hands. A frame whose
	// timestamp has not advanced past the previous call yields no hands
	// and no error.
	Detect(frame *gocv.Mat, timestampMs int64) ([]Hand, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds the fixed configuration of the tracking backend.
type Config struct {
	// MaxHands is the maximum number of hands to detect.
	MaxHands int

	// MinDetectionConf is the minimum detection confidence (0.0-1.0).
	MinDetectionConf float64

	// MinTrackingConf is the minimum tracking confidence (0.0-1.0).
	MinTrackingConf float64

	// UseGPU selects the GPU delegate when the backend supports it.
	UseGPU bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:         2,
		MinDetectionConf: 0.5,
		MinTrackingConf:  0.5,
		UseGPU:           true,
	}
}
