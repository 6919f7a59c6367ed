package life

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Grid errors.
var (
	// ErrInvalidDims is returned when grid dimensions are not positive.
	ErrInvalidDims = errors.New("life: grid dimensions must be positive")

	// ErrInvalidProbability is returned when the alive probability is
	// outside [0, 1].
	ErrInvalidProbability = errors.New("life: alive probability must be in [0, 1]")
)

// GridDims holds the grid dimensions in cells. Immutable after creation.
type GridDims struct {
	Width, Height int
}

// Cells returns the total cell count, which is also the render instance count.
func (d GridDims) Cells() int {
	return d.Width * d.Height
}

// Index maps a cell coordinate to its row-major buffer index.
func (d GridDims) Index(x, y int) int {
	return y*d.Width + x
}

// Validate reports whether the dimensions describe a non-empty grid.
func (d GridDims) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDims, d.Width, d.Height)
	}
	return nil
}

// Grid is the canonical simulation state: dimensions plus two alternating
// cell buffers. Buffer roles (current vs next) are tracked by a parity index
// owned by the frame driver, never by copying data between the buffers.
//
// Cell values are 0 (dead) or 1 (alive), indexed row-major.
type Grid struct {
	dims GridDims

	// cells[0] and cells[1] are the ping-pong buffers. Even parity reads
	// cells[0] and writes cells[1]; odd parity the reverse.
	cells [2][]uint32
}

// NewGrid creates a grid with each cell independently alive with the given
// probability, drawn from a PCG source seeded with seed. Both buffers start
// identical so the first rendered frame shows the seed state regardless of
// which buffer is current.
func NewGrid(dims GridDims, aliveProbability float64, seed uint64) (*Grid, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if aliveProbability < 0 || aliveProbability > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProbability, aliveProbability)
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	a := make([]uint32, dims.Cells())
	for i := range a {
		if rng.Float64() < aliveProbability {
			a[i] = 1
		}
	}
	b := make([]uint32, len(a))
	copy(b, a)

	return &Grid{dims: dims, cells: [2][]uint32{a, b}}, nil
}

// Dims returns the grid dimensions.
func (g *Grid) Dims() GridDims {
	return g.dims
}

// Buffer returns the cell buffer in slot i (0 or 1).
func (g *Grid) Buffer(i int) []uint32 {
	return g.cells[i&1]
}

// Current returns the buffer that is read during a tick with the given
// parity.
func (g *Grid) Current(parity int) []uint32 {
	return g.cells[parity&1]
}

// Next returns the buffer that is written during a tick with the given
// parity. It is always the other buffer than Current.
func (g *Grid) Next(parity int) []uint32 {
	return g.cells[(parity&1)^1]
}
