package filter

import "math"

// Point2 is a 2D point in screen space.
type Point2 struct {
	X float64
	Y float64
}

// Dist returns the Euclidean distance between two 2D points.
func (p Point2) Dist(q Point2) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp linearly interpolates between a and b.
// t=0 returns a, t=1 returns b; t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
