package gesture

import (
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/detector"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/filter"
)

// Cursor is the synthesized pointer state redrawn by the overlay every
// frame. Active is true only while a right hand was observed in the latest
// frame; Clicking mirrors the debounced pinch; LastClickTime changes only
// on a pinch rising edge.
type Cursor struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Active        bool    `json:"active"`
	Clicking      bool    `json:"clicking"`
	LastClickTime int64   `json:"lastClickTime"`
}

// PointerTracker turns right-hand landmarks into the virtual pointer.
//
// The index-tip position is mirrored horizontally (to match the mirrored
// camera feed), mapped to viewport pixels, and smoothed per axis. The pinch
// signal is debounced with two thresholds: below PinchOn it switches on,
// above PinchOff it switches off, and in the dead-band between them the
// previous state holds. While pinching the reported position is blended
// heavily toward the position captured at the rising edge, so a stationary
// pinch stays put and a drag only moves with substantial hand movement.
type PointerTracker struct {
	cfg Config

	px *filter.EMA
	py *filter.EMA

	pinching bool
	anchored bool
	anchor   filter.Point2
	havePrev bool
	prevX    float64
	prevY    float64
	cursor   Cursor
}

// NewPointerTracker creates a tracker with an inactive cursor.
func NewPointerTracker(cfg Config) *PointerTracker {
	return &PointerTracker{
		cfg: cfg,
		px:  filter.NewEMA(cfg.PointerAlpha),
		py:  filter.NewEMA(cfg.PointerAlpha),
	}
}

// Update processes one right-hand observation and returns the cursor plus
// the vertical movement of the reported position since the previous frame
// (used by the dispatcher for scroll-drags).
func (t *PointerTracker) Update(hand *detector.Hand, nowMs int64) (Cursor, float64) {
	if hand == nil {
		return t.Deactivate(), 0
	}

	tip := hand.Points[detector.IndexTip]
	sx := t.px.Update((1 - tip.X) * t.cfg.ViewportWidth)
	sy := t.py.Update(tip.Y * t.cfg.ViewportHeight)

	wasPinching := t.pinching
	dist := hand.PinchDistance()
	if dist < t.cfg.PinchOn {
		t.pinching = true
	} else if dist > t.cfg.PinchOff {
		t.pinching = false
	}

	if t.pinching && !wasPinching {
		// Rising edge: freeze a reference at the current smoothed
		// position and stamp the click time.
		t.anchor = filter.Point2{X: sx, Y: sy}
		t.anchored = true
		t.cursor.LastClickTime = nowMs
	}
	if !t.pinching && wasPinching {
		t.anchored = false
	}

	outX, outY := sx, sy
	if t.pinching && t.anchored {
		outX = filter.Lerp(sx, t.anchor.X, t.cfg.AnchorWeight)
		outY = filter.Lerp(sy, t.anchor.Y, t.cfg.AnchorWeight)
	}

	var verticalDelta float64
	if t.havePrev {
		verticalDelta = outY - t.prevY
	}
	t.prevX, t.prevY = outX, outY
	t.havePrev = true

	t.cursor.X = outX
	t.cursor.Y = outY
	t.cursor.Active = true
	t.cursor.Clicking = t.pinching

	return t.cursor, verticalDelta
}

// Deactivate marks the cursor inactive after the right hand disappears.
// The position smoothers keep their history so the cursor does not jump
// when the hand comes back after a brief dropout, but any held pinch is
// dropped to match the forced drag release.
func (t *PointerTracker) Deactivate() Cursor {
	t.pinching = false
	t.anchored = false
	t.havePrev = false
	t.cursor.Active = false
	t.cursor.Clicking = false
	return t.cursor
}

// Cursor returns the last reported cursor state.
func (t *PointerTracker) Cursor() Cursor {
	return t.cursor
}

// Pinching returns the debounced pinch state.
func (t *PointerTracker) Pinching() bool {
	return t.pinching
}
