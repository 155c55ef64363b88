// Package detector provides hand landmark types and the adapter around the
// external hand-tracking service.
package detector

import "math"

// Hand landmark indices following the MediaPipe hand model.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Handedness labels reported by the tracking service.
const (
	HandednessLeft  = "Left"
	HandednessRight = "Right"
)

// Point3D is a landmark position in normalized image space.
// X and Y are in [0,1]; Z is relative depth with the wrist near zero.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand is one detected hand: 21 landmarks in anatomical order plus the
// handedness label. Hands are ephemeral; a fresh value is produced every
// detector frame.
type Hand struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"`
	Score      float64               `json:"score"`
}

// Distance returns the Euclidean distance between two landmark points.
func Distance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PinchDistance returns the thumb-tip to index-tip distance, the primary
// signal for both pinch classifiers.
func (h *Hand) PinchDistance() float64 {
	return Distance(h.Points[ThumbTip], h.Points[IndexTip])
}

// valid reports whether the hand carries a usable handedness label.
// Hands deserialized from the tracking service with a missing or unknown
// label are dropped by the adapter rather than handed to the classifiers.
func (h *Hand) valid() bool {
	return h.Handedness == HandednessLeft || h.Handedness == HandednessRight
}
