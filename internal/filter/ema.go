// Package filter provides the scalar signal filters used by the gesture
// classifiers.
package filter

// EMA is an exponential moving average over a scalar stream.
// The blend coefficient alpha is fixed at construction; higher values
// weight recent samples more heavily (alpha=1 is a passthrough).
type EMA struct {
	alpha  float64
	value  float64
	primed bool
}

// NewEMA creates an EMA with the given blend coefficient.
// Alpha must be in (0, 1]; values outside that range are clamped.
func NewEMA(alpha float64) *EMA {
	if alpha <= 0 {
		alpha = 0.01
	}
	if alpha > 1 {
		alpha = 1
	}
	return &EMA{alpha: alpha}
}

// Update feeds a sample into the filter and returns the new output.
// The first sample after construction or Reset is returned verbatim.
func (e *EMA) Update(x float64) float64 {
	if !e.primed {
		e.value = x
		e.primed = true
		return x
	}
	e.value = e.alpha*x + (1-e.alpha)*e.value
	return e.value
}

// Value returns the last output without consuming a sample.
// Returns 0 if no sample has been seen yet.
func (e *EMA) Value() float64 {
	return e.value
}

// Primed reports whether the filter has seen at least one sample.
func (e *EMA) Primed() bool {
	return e.primed
}

// Reset clears the stored value so the next sample is returned verbatim.
func (e *EMA) Reset() {
	e.value = 0
	e.primed = false
}
