package detector

import (
	"context"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface that
// returns whatever hands it was last given. It is safe to reconfigure
// while the frame pipeline is calling Detect.
type MockDetector struct {
	mu      sync.Mutex
	hands   []Hand
	err     error
	initErr error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []Hand) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetInitError makes Initialize fail with the given cause.
func (m *MockDetector) SetInitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initErr = err
}

// Initialize returns the configured init error, wrapped as ErrInitFailed.
func (m *MockDetector) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initErr != nil {
		return fmt.Errorf("%w: %v", ErrInitFailed, m.initErr)
	}
	return nil
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat, timestampMs int64) ([]Hand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// ScriptedDetector plays back a fixed per-frame sequence of hand sets,
// for driving the pipeline with synthetic frames in tests. After the
// script runs out every frame reports no hands.
type ScriptedDetector struct {
	frames [][]Hand
	index  int
}

// NewScriptedDetector creates a detector that replays the given frames.
func NewScriptedDetector(frames [][]Hand) *ScriptedDetector {
	return &ScriptedDetector{frames: frames}
}

// Initialize always succeeds.
func (s *ScriptedDetector) Initialize(ctx context.Context) error {
	return nil
}

// Detect returns the next scripted frame.
func (s *ScriptedDetector) Detect(frame *gocv.Mat, timestampMs int64) ([]Hand, error) {
	if s.index >= len(s.frames) {
		return nil, nil
	}
	hands := s.frames[s.index]
	s.index++
	return hands, nil
}

// Close is a no-op for the scripted detector.
func (s *ScriptedDetector) Close() error {
	return nil
}

// Remaining returns how many scripted frames have not been played yet.
func (s *ScriptedDetector) Remaining() int {
	return len(s.frames) - s.index
}

// Preset hands for tests. Coordinates are normalized image space with the
// wrist near the bottom of frame and fingers pointing up (y decreasing).

// OpenPalmHand returns a hand with all four non-thumb fingers extended.
func OpenPalmHand(handedness string) Hand {
	h := Hand{Handedness: handedness, Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.52, Y: 0.82}

	h.Points[ThumbCMC] = Point3D{X: 0.58, Y: 0.78}
	h.Points[ThumbMCP] = Point3D{X: 0.64, Y: 0.72}
	h.Points[ThumbIP] = Point3D{X: 0.69, Y: 0.66}
	h.Points[ThumbTip] = Point3D{X: 0.74, Y: 0.61}

	h.Points[IndexMCP] = Point3D{X: 0.56, Y: 0.66}
	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.56}
	h.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.47}
	h.Points[IndexTip] = Point3D{X: 0.59, Y: 0.38}

	h.Points[MiddleMCP] = Point3D{X: 0.51, Y: 0.64}
	h.Points[MiddlePIP] = Point3D{X: 0.51, Y: 0.52}
	h.Points[MiddleDIP] = Point3D{X: 0.51, Y: 0.42}
	h.Points[MiddleTip] = Point3D{X: 0.51, Y: 0.31}

	h.Points[RingMCP] = Point3D{X: 0.46, Y: 0.66}
	h.Points[RingPIP] = Point3D{X: 0.445, Y: 0.55}
	h.Points[RingDIP] = Point3D{X: 0.435, Y: 0.45}
	h.Points[RingTip] = Point3D{X: 0.43, Y: 0.36}

	h.Points[PinkyMCP] = Point3D{X: 0.41, Y: 0.70}
	h.Points[PinkyPIP] = Point3D{X: 0.385, Y: 0.61}
	h.Points[PinkyDIP] = Point3D{X: 0.37, Y: 0.53}
	h.Points[PinkyTip] = Point3D{X: 0.36, Y: 0.45}

	return h
}

// FistHand returns a hand with all fingers curled and no pinch.
func FistHand(handedness string) Hand {
	h := Hand{Handedness: handedness, Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.52, Y: 0.82}

	h.Points[ThumbCMC] = Point3D{X: 0.58, Y: 0.78}
	h.Points[ThumbMCP] = Point3D{X: 0.61, Y: 0.73}
	h.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.68}
	h.Points[ThumbTip] = Point3D{X: 0.60, Y: 0.63}

	h.Points[IndexMCP] = Point3D{X: 0.56, Y: 0.67}
	h.Points[IndexPIP] = Point3D{X: 0.565, Y: 0.62}
	h.Points[IndexDIP] = Point3D{X: 0.55, Y: 0.65}
	h.Points[IndexTip] = Point3D{X: 0.535, Y: 0.69}

	h.Points[MiddleMCP] = Point3D{X: 0.51, Y: 0.65}
	h.Points[MiddlePIP] = Point3D{X: 0.51, Y: 0.60}
	h.Points[MiddleDIP] = Point3D{X: 0.505, Y: 0.63}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.67}

	h.Points[RingMCP] = Point3D{X: 0.46, Y: 0.67}
	h.Points[RingPIP] = Point3D{X: 0.455, Y: 0.62}
	h.Points[RingDIP] = Point3D{X: 0.455, Y: 0.65}
	h.Points[RingTip] = Point3D{X: 0.46, Y: 0.69}

	h.Points[PinkyMCP] = Point3D{X: 0.42, Y: 0.70}
	h.Points[PinkyPIP] = Point3D{X: 0.41, Y: 0.66}
	h.Points[PinkyDIP] = Point3D{X: 0.415, Y: 0.68}
	h.Points[PinkyTip] = Point3D{X: 0.42, Y: 0.71}

	return h
}

// PointingHand returns a hand with the index finger extended so its tip
// sits at (x, y) and the thumb held well clear of a pinch.
func PointingHand(handedness string, x, y float64) Hand {
	h := Hand{Handedness: handedness, Score: 0.95}

	h.Points[Wrist] = Point3D{X: x - 0.02, Y: y + 0.40}

	h.Points[ThumbCMC] = Point3D{X: x + 0.05, Y: y + 0.34}
	h.Points[ThumbMCP] = Point3D{X: x + 0.09, Y: y + 0.29}
	h.Points[ThumbIP] = Point3D{X: x + 0.12, Y: y + 0.23}
	h.Points[ThumbTip] = Point3D{X: x + 0.15, Y: y + 0.18}

	h.Points[IndexMCP] = Point3D{X: x - 0.01, Y: y + 0.26}
	h.Points[IndexPIP] = Point3D{X: x, Y: y + 0.17}
	h.Points[IndexDIP] = Point3D{X: x, Y: y + 0.08}
	h.Points[IndexTip] = Point3D{X: x, Y: y}

	curled(&h, MiddleMCP, x-0.06, y+0.25)
	curled(&h, RingMCP, x-0.11, y+0.27)
	curled(&h, PinkyMCP, x-0.15, y+0.30)

	return h
}

// PinchHand returns a hand whose index tip sits at (x, y) with the thumb
// tip exactly sep away, so the pinch distance equals sep.
func PinchHand(handedness string, x, y, sep float64) Hand {
	h := PointingHand(handedness, x, y)

	h.Points[ThumbCMC] = Point3D{X: x - 0.04, Y: y + 0.30}
	h.Points[ThumbMCP] = Point3D{X: x - 0.05, Y: y + 0.20}
	h.Points[ThumbIP] = Point3D{X: x - sep - 0.02, Y: y + 0.08}
	h.Points[ThumbTip] = Point3D{X: x - sep, Y: y}

	return h
}

// curled fills a non-thumb finger with joints folded back toward the palm,
// starting from its MCP index.
func curled(h *Hand, mcp int, x, y float64) {
	h.Points[mcp] = Point3D{X: x, Y: y}
	h.Points[mcp+1] = Point3D{X: x, Y: y - 0.05}
	h.Points[mcp+2] = Point3D{X: x - 0.005, Y: y - 0.02}
	h.Points[mcp+3] = Point3D{X: x - 0.01, Y: y + 0.02}
}
