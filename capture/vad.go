package capture

import "math"

// Energy bounds for mapping RMS to a probability-like value.
const (
	minEnergy = 0.0001
	maxEnergy = 0.1
)

// EnergyProbability maps a frame's RMS energy onto [0, 1] linearly between
// minEnergy and maxEnergy.
func EnergyProbability(frame []float32) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		sum += float64(s) * float64(s)
	}
	rms := math.Sqrt(sum / float64(len(frame)))

	switch {
	case rms < minEnergy:
		return 0
	case rms > maxEnergy:
		return 1
	default:
		return (rms - minEnergy) / (maxEnergy - minEnergy)
	}
}

// Gate applies hysteresis to a probability stream: it opens above the on
// threshold and closes only below the off threshold, so probabilities
// wobbling between the two do not chop speech into fragments.
type Gate struct {
	on     float64
	off    float64
	active bool
}

// NewGate creates a gate with the given thresholds.
func NewGate(on, off float64) *Gate {
	return &Gate{on: on, off: off}
}

// Update feeds one probability and reports whether the gate is open.
func (g *Gate) Update(p float64) bool {
	if g.active {
		if p < g.off {
			g.active = false
		}
	} else {
		if p > g.on {
			g.active = true
		}
	}
	return g.active
}

// Active reports the gate state without feeding a sample.
func (g *Gate) Active() bool { return g.active }

// Reset closes the gate.
func (g *Gate) Reset() { g.active = false }
