package gesture

import (
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/detector"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/filter"
)

// Mode is the gallery presentation mode selected by the left hand.
type Mode int

const (
	// ModeAggregate shows the full sphere of items. Initial and fallback.
	ModeAggregate Mode = iota
	// ModeBrowse arranges items as a scrollable ring.
	ModeBrowse
	// ModeFocus enlarges the focused item.
	ModeFocus
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeFocus:
		return "focus"
	default:
		return "aggregate"
	}
}

// ModeClassifier turns left-hand landmarks into the application mode and a
// continuous scroll offset.
//
// Pinch and open-palm are detected as raw booleans from landmark geometry,
// smoothed, and compared against the activation threshold. Leaving focus
// mode additionally requires the smoothed pinch to fall below the separate
// release threshold, so the mode cannot flicker at the signal boundary.
type ModeClassifier struct {
	cfg Config

	pinch   *filter.EMA
	palm    *filter.EMA
	scrollX *filter.EMA

	mode         Mode
	scrollOffset float64
}

// NewModeClassifier creates a classifier in aggregate mode.
func NewModeClassifier(cfg Config) *ModeClassifier {
	return &ModeClassifier{
		cfg:     cfg,
		pinch:   filter.NewEMA(cfg.SignalAlpha),
		palm:    filter.NewEMA(cfg.SignalAlpha),
		scrollX: filter.NewEMA(cfg.ScrollAlpha),
		mode:    ModeAggregate,
	}
}

// Update processes one left-hand observation: it decides the mode first,
// then accumulates scroll only if the decided mode is browse.
func (c *ModeClassifier) Update(hand *detector.Hand) Mode {
	if hand == nil {
		return c.mode
	}

	pinchVal := c.pinch.Update(boolSignal(hand.PinchDistance() < c.cfg.PinchDistance))
	palmVal := c.palm.Update(boolSignal(c.extendedFingers(hand) >= 3))

	pinchActive := pinchVal > c.cfg.ActivateThreshold
	palmActive := palmVal > c.cfg.ActivateThreshold

	switch {
	case pinchActive:
		c.mode = ModeFocus
	case c.mode == ModeFocus:
		// Holds focus until the pinch confidence clears the release
		// threshold, not merely the activation threshold.
		if pinchVal < c.cfg.ReleaseThreshold {
			if palmActive {
				c.mode = ModeBrowse
			} else {
				c.mode = ModeAggregate
			}
		}
	case palmActive:
		c.mode = ModeBrowse
	default:
		c.mode = ModeAggregate
	}

	if c.mode == ModeBrowse {
		// Scroll velocity follows how far the (mirrored) hand sits from
		// the horizontal center of frame, not frame-to-frame movement.
		sx := c.scrollX.Update(1 - hand.Points[detector.MiddleMCP].X)
		c.scrollOffset += (sx - 0.5) * c.cfg.ScrollGain
	}

	return c.mode
}

// Expire forces the mode back to aggregate after the hand-loss timeout.
// Smoother state is left intact so a brief dropout does not restart the
// signals from scratch.
func (c *ModeClassifier) Expire() {
	c.mode = ModeAggregate
}

// Mode returns the current mode.
func (c *ModeClassifier) Mode() Mode {
	return c.mode
}

// ScrollOffset returns the accumulated scroll value. It is unbounded; the
// gallery maps it onto an item index by modulo.
func (c *ModeClassifier) ScrollOffset() float64 {
	return c.scrollOffset
}

// extendedFingers counts the non-thumb fingers whose tip sits farther from
// the wrist than PalmRatio times its mid-joint distance.
func (c *ModeClassifier) extendedFingers(hand *detector.Hand) int {
	wrist := hand.Points[detector.Wrist]

	fingers := [4][2]int{
		{detector.IndexTip, detector.IndexPIP},
		{detector.MiddleTip, detector.MiddlePIP},
		{detector.RingTip, detector.RingPIP},
		{detector.PinkyTip, detector.PinkyPIP},
	}

	count := 0
	for _, f := range fingers {
		tipDist := detector.Distance(wrist, hand.Points[f[0]])
		pipDist := detector.Distance(wrist, hand.Points[f[1]])
		if tipDist > c.cfg.PalmRatio*pipDist {
			count++
		}
	}
	return count
}

// boolSignal maps a raw boolean onto the 0/1 stream fed to the smoothers.
func boolSignal(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
