// Package gesture interprets per-frame hand landmarks as application mode,
// scroll input, and a virtual pointer.
package gesture

import "time"

// Config holds the tuning constants for both hand classifiers. The defaults
// were calibrated against a typical webcam setup; every value can be
// overridden from the calibration file.
type Config struct {
	// PinchDistance is the thumb-index distance below which the left hand
	// counts as pinching.
	PinchDistance float64 `mapstructure:"pinch_distance"`

	// SignalAlpha smooths the boolean pinch and open-palm signals.
	SignalAlpha float64 `mapstructure:"signal_alpha"`

	// ActivateThreshold is the smoothed signal level that switches a
	// gesture on.
	ActivateThreshold float64 `mapstructure:"activate_threshold"`

	// ReleaseThreshold is the lower level a smoothed pinch must fall
	// below before focus mode releases. Keeping it below
	// ActivateThreshold gives the mode machine its dead-band.
	ReleaseThreshold float64 `mapstructure:"release_threshold"`

	// PalmRatio is how much farther a fingertip must sit from the wrist
	// than its mid-joint to count as extended.
	PalmRatio float64 `mapstructure:"palm_ratio"`

	// ScrollAlpha smooths the horizontal hand position driving scroll.
	ScrollAlpha float64 `mapstructure:"scroll_alpha"`

	// ScrollGain converts horizontal offset from frame center into
	// scroll velocity per frame.
	ScrollGain float64 `mapstructure:"scroll_gain"`

	// PointerAlpha smooths the cursor position per axis. Higher is more
	// responsive, lower is steadier.
	PointerAlpha float64 `mapstructure:"pointer_alpha"`

	// PinchOn and PinchOff are the pointer pinch hysteresis thresholds:
	// below PinchOn the pointer presses, above PinchOff it releases, and
	// in between the previous state holds.
	PinchOn  float64 `mapstructure:"pinch_on"`
	PinchOff float64 `mapstructure:"pinch_off"`

	// AnchorWeight biases the reported position toward the position
	// captured at pinch start, suppressing jitter during click-and-hold.
	AnchorWeight float64 `mapstructure:"anchor_weight"`

	// HandTimeout is how long the left hand may go undetected before the
	// mode falls back to aggregate. The right hand has no such grace:
	// the cursor deactivates on the first frame without it.
	HandTimeout time.Duration `mapstructure:"hand_timeout"`

	// ViewportWidth and ViewportHeight map normalized landmark
	// coordinates to cursor screen space.
	ViewportWidth  float64 `mapstructure:"viewport_width"`
	ViewportHeight float64 `mapstructure:"viewport_height"`
}

// DefaultConfig returns the calibration defaults.
func DefaultConfig() Config {
	return Config{
		PinchDistance:     0.05,
		SignalAlpha:       0.2,
		ActivateThreshold: 0.6,
		ReleaseThreshold:  0.4,
		PalmRatio:         1.1,
		ScrollAlpha:       0.1,
		ScrollGain:        0.15,
		PointerAlpha:      0.35,
		PinchOn:           0.04,
		PinchOff:          0.055,
		AnchorWeight:      0.95,
		HandTimeout:       500 * time.Millisecond,
		ViewportWidth:     1280,
		ViewportHeight:    720,
	}
}
