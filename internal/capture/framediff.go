package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Frame differencing constants.
const (
	// blurKernelSize is the Gaussian blur kernel size used to knock out
	// sensor noise before differencing (21x21).
	blurKernelSize = 21
	// diffThreshold is the per-pixel binary threshold on the absolute
	// difference image.
	diffThreshold = 25
)

// FrameDiff measures how much of the scene changed between consecutive
// frames. The pipeline uses the ratio to decide between idle and active
// capture rates; FrameDiff itself makes no idle/active decision.
type FrameDiff struct {
	prevGray gocv.Mat
	primed   bool
	mu       sync.Mutex
}

func NewFrameDiff() *FrameDiff {
	return &FrameDiff{
		prevGray: gocv.NewMat(),
	}
}

// Update compares the frame against the previous one and returns the
// fraction of pixels that changed, in [0, 1]. The first frame primes the
// baseline and returns 0.
//
// Each frame is converted to grayscale and blurred, then the absolute
// difference with the baseline is thresholded and the surviving pixels
// counted.
func (f *FrameDiff) Update(frame *gocv.Mat) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if frame == nil || frame.Empty() {
		return 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurKernelSize, Y: blurKernelSize}, 0, 0, gocv.BorderDefault)

	if !f.primed {
		blurred.CopyTo(&f.prevGray)
		f.primed = true
		return 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, f.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, diffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	total := thresh.Rows() * thresh.Cols()

	blurred.CopyTo(&f.prevGray)

	if total == 0 {
		return 0
	}
	return float64(nonZero) / float64(total)
}

// Reset drops the baseline so the next frame primes a fresh one.
func (f *FrameDiff) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.prevGray.Empty() {
		f.prevGray.Close()
		f.prevGray = gocv.NewMat()
	}
	f.primed = false
}

// Close releases the baseline Mat.
func (f *FrameDiff) Close() {
	f.Reset()
}
