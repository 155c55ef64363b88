package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func solidFrame(t *testing.T, value uint8) *gocv.Mat {
	t.Helper()

	mat := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { mat.Close() })

	mat.SetTo(gocv.NewScalar(float64(value), float64(value), float64(value), 0))
	return &mat
}

func TestFrameDiff_FirstFramePrimes(t *testing.T) {
	fd := NewFrameDiff()
	defer fd.Close()

	if ratio := fd.Update(solidFrame(t, 200)); ratio != 0 {
		t.Errorf("first frame ratio = %f, want 0", ratio)
	}
}

func TestFrameDiff_StaticSceneIsQuiet(t *testing.T) {
	fd := NewFrameDiff()
	defer fd.Close()

	fd.Update(solidFrame(t, 100))
	if ratio := fd.Update(solidFrame(t, 100)); ratio != 0 {
		t.Errorf("identical frame ratio = %f, want 0", ratio)
	}
}

func TestFrameDiff_FullSceneChange(t *testing.T) {
	fd := NewFrameDiff()
	defer fd.Close()

	fd.Update(solidFrame(t, 0))
	ratio := fd.Update(solidFrame(t, 255))
	if ratio < 0.99 {
		t.Errorf("black-to-white ratio = %f, want ~1.0", ratio)
	}
}

func TestFrameDiff_SmallChangeIgnoredByThreshold(t *testing.T) {
	fd := NewFrameDiff()
	defer fd.Close()

	// A 10-level brightness shift stays under the per-pixel threshold.
	fd.Update(solidFrame(t, 100))
	if ratio := fd.Update(solidFrame(t, 110)); ratio != 0 {
		t.Errorf("sub-threshold change ratio = %f, want 0", ratio)
	}
}

func TestFrameDiff_Reset(t *testing.T) {
	fd := NewFrameDiff()
	defer fd.Close()

	fd.Update(solidFrame(t, 0))
	fd.Reset()

	// After reset the next frame primes a new baseline.
	if ratio := fd.Update(solidFrame(t, 255)); ratio != 0 {
		t.Errorf("post-reset ratio = %f, want 0", ratio)
	}
}

func TestFrameDiff_NilAndEmptyFrames(t *testing.T) {
	fd := NewFrameDiff()
	defer fd.Close()

	if ratio := fd.Update(nil); ratio != 0 {
		t.Errorf("nil frame ratio = %f, want 0", ratio)
	}

	empty := gocv.NewMat()
	defer empty.Close()
	if ratio := fd.Update(&empty); ratio != 0 {
		t.Errorf("empty frame ratio = %f, want 0", ratio)
	}
}
