package life

import "math"

// Clock is the shared animation time base. It is owned by the frame driver
// and passed explicitly into each tick; there is no package-level clock.
type Clock struct {
	// RenderTime accumulates the raw tick delta and drives the color
	// gradient. It grows without bound; the gradient wraps it via modulo.
	RenderTime float64

	// SimStep accumulates delta*simSpeed, the number of simulated steps.
	// Only its integer part matters: it selects the buffer orientation.
	SimStep float64
}

// Advance moves both accumulators forward by one tick of the given delta
// (seconds) at the given simulation speed (steps per second of delta).
func (c *Clock) Advance(delta, simSpeed float64) {
	c.RenderTime += delta
	c.SimStep += delta * simSpeed
}

// Parity reports which buffer orientation is current for this tick:
// 0 selects A-current/B-next, 1 the reverse. It is a pure function of the
// accumulated simulated steps, so the visual frame rate and the simulation
// rate stay decoupled.
func (c *Clock) Parity() int {
	return int(math.Floor(c.SimStep)) & 1
}
