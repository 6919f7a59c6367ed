package life

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate for any out-of-range
// parameter.
var ErrInvalidConfig = errors.New("life: invalid config")

// Config holds the construction parameters of the animation. The zero value
// is not usable; start from DefaultConfig.
type Config struct {
	// Width, Height are the grid dimensions in cells. The compute dispatch
	// pads to full 8x8 workgroups and the kernel guards the remainder, so
	// the dimensions need not be multiples of 8.
	Width, Height int

	// DiscoSpeed is the hue rotation rate in cycles per second.
	DiscoSpeed float64

	// SimSpeed is the simulation rate in simulated steps per rendered
	// second. It may be fractional; the state advances whenever the
	// accumulated step count crosses an integer.
	SimSpeed float64

	// AliveProbability is the chance that a cell starts alive.
	AliveProbability float64

	// Seed drives the initial population, making runs reproducible.
	Seed uint64

	// CellPixels is the rendered size of one cell in pixels.
	CellPixels int
}

// DefaultConfig returns the parameters of the stock animation: a 64x64 grid
// seeded 40% alive, one hue cycle every four seconds, four simulated steps
// per second.
func DefaultConfig() Config {
	return Config{
		Width:            64,
		Height:           64,
		DiscoSpeed:       0.25,
		SimSpeed:         4,
		AliveProbability: 0.4,
		CellPixels:       8,
	}
}

// Dims returns the grid dimensions.
func (c Config) Dims() GridDims {
	return GridDims{Width: c.Width, Height: c.Height}
}

// Validate checks every parameter and returns an error wrapping
// ErrInvalidConfig for the first violation found.
func (c Config) Validate() error {
	if err := c.Dims().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.DiscoSpeed <= 0 {
		return fmt.Errorf("%w: disco speed %v must be > 0", ErrInvalidConfig, c.DiscoSpeed)
	}
	if c.SimSpeed <= 0 {
		return fmt.Errorf("%w: sim speed %v must be > 0", ErrInvalidConfig, c.SimSpeed)
	}
	if c.AliveProbability < 0 || c.AliveProbability > 1 {
		return fmt.Errorf("%w: alive probability %v must be in [0, 1]", ErrInvalidConfig, c.AliveProbability)
	}
	if c.CellPixels <= 0 {
		return fmt.Errorf("%w: cell pixels %d must be > 0", ErrInvalidConfig, c.CellPixels)
	}
	return nil
}
