package life

import (
	"errors"
	"testing"
)

func TestNewGridBuffersStartIdentical(t *testing.T) {
	grid, err := NewGrid(GridDims{Width: 16, Height: 16}, 0.4, 7)
	if err != nil {
		t.Fatal(err)
	}

	a, b := grid.Buffer(0), grid.Buffer(1)
	if len(a) != 256 || len(b) != 256 {
		t.Fatalf("buffer sizes %d, %d, want 256", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("buffers differ at index %d", i)
		}
	}
}

func TestNewGridDeterministicSeed(t *testing.T) {
	g1, err := NewGrid(GridDims{Width: 32, Height: 32}, 0.4, 99)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := NewGrid(GridDims{Width: 32, Height: 32}, 0.4, 99)
	if err != nil {
		t.Fatal(err)
	}

	a, b := g1.Buffer(0), g2.Buffer(0)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different grids at index %d", i)
		}
	}
}

func TestNewGridProbabilityExtremes(t *testing.T) {
	dims := GridDims{Width: 16, Height: 16}

	dead, err := NewGrid(dims, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range dead.Buffer(0) {
		if v != 0 {
			t.Fatalf("probability 0 produced a live cell at index %d", i)
		}
	}

	alive, err := NewGrid(dims, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range alive.Buffer(0) {
		if v != 1 {
			t.Fatalf("probability 1 produced a dead cell at index %d", i)
		}
	}
}

func TestNewGridValidation(t *testing.T) {
	if _, err := NewGrid(GridDims{Width: 0, Height: 8}, 0.5, 1); !errors.Is(err, ErrInvalidDims) {
		t.Errorf("zero width: got %v, want ErrInvalidDims", err)
	}
	if _, err := NewGrid(GridDims{Width: 8, Height: -1}, 0.5, 1); !errors.Is(err, ErrInvalidDims) {
		t.Errorf("negative height: got %v, want ErrInvalidDims", err)
	}
	if _, err := NewGrid(GridDims{Width: 8, Height: 8}, 1.5, 1); !errors.Is(err, ErrInvalidProbability) {
		t.Errorf("probability 1.5: got %v, want ErrInvalidProbability", err)
	}
	if _, err := NewGrid(GridDims{Width: 8, Height: 8}, -0.1, 1); !errors.Is(err, ErrInvalidProbability) {
		t.Errorf("probability -0.1: got %v, want ErrInvalidProbability", err)
	}
}

func TestGridCurrentNext(t *testing.T) {
	grid, err := NewGrid(GridDims{Width: 4, Height: 4}, 0.5, 3)
	if err != nil {
		t.Fatal(err)
	}

	for parity := 0; parity < 4; parity++ {
		cur := grid.Current(parity)
		next := grid.Next(parity)
		if &cur[0] == &next[0] {
			t.Fatalf("parity %d: current and next share a buffer", parity)
		}
		if &cur[0] != &grid.Buffer(parity&1)[0] {
			t.Fatalf("parity %d: current is not buffer %d", parity, parity&1)
		}
	}
}
