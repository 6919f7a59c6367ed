package life

import "testing"

// stepOnce runs Step on a fresh destination and returns it.
func stepOnce(t *testing.T, src []uint32, dims GridDims) []uint32 {
	t.Helper()
	if len(src) != dims.Cells() {
		t.Fatalf("bad fixture: %d cells for %dx%d", len(src), dims.Width, dims.Height)
	}
	dst := make([]uint32, dims.Cells())
	Step(dst, src, dims)
	return dst
}

// setCells marks the given coordinates alive in a zeroed buffer.
func setCells(dims GridDims, coords ...[2]int) []uint32 {
	cells := make([]uint32, dims.Cells())
	for _, c := range coords {
		cells[dims.Index(c[0], c[1])] = 1
	}
	return cells
}

func TestStepRule(t *testing.T) {
	// Center cell of a 5x5 grid, far from any wraparound.
	dims := GridDims{Width: 5, Height: 5}
	neighborCoords := [8][2]int{
		{1, 1}, {2, 1}, {3, 1},
		{1, 2}, {3, 2},
		{1, 3}, {2, 3}, {3, 3},
	}

	tests := []struct {
		name      string
		alive     bool
		neighbors int
		want      uint32
	}{
		{"underpopulation 0", true, 0, 0},
		{"underpopulation 1", true, 1, 0},
		{"survival 2", true, 2, 1},
		{"survival 3", true, 3, 1},
		{"overpopulation 4", true, 4, 0},
		{"overpopulation 8", true, 8, 0},
		{"dead stays dead 2", false, 2, 0},
		{"birth 3", false, 3, 1},
		{"dead stays dead 4", false, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := make([]uint32, dims.Cells())
			if tt.alive {
				src[dims.Index(2, 2)] = 1
			}
			for i := 0; i < tt.neighbors; i++ {
				src[dims.Index(neighborCoords[i][0], neighborCoords[i][1])] = 1
			}

			dst := stepOnce(t, src, dims)
			if got := dst[dims.Index(2, 2)]; got != tt.want {
				t.Errorf("alive=%v neighbors=%d: got %d, want %d",
					tt.alive, tt.neighbors, got, tt.want)
			}
		})
	}
}

func TestStepWraparound(t *testing.T) {
	// Three live cells in the far corner are all neighbors of (0,0) on the
	// torus, so (0,0) is born.
	dims := GridDims{Width: 4, Height: 4}
	src := setCells(dims, [2]int{3, 3}, [2]int{3, 0}, [2]int{0, 3})

	dst := stepOnce(t, src, dims)
	if dst[dims.Index(0, 0)] != 1 {
		t.Error("corner cell not born from wrapped neighbors")
	}
}

func TestStepDoesNotMutateSource(t *testing.T) {
	dims := GridDims{Width: 4, Height: 4}
	src := setCells(dims, [2]int{1, 1}, [2]int{2, 1}, [2]int{1, 2})
	orig := make([]uint32, len(src))
	copy(orig, src)

	dst := make([]uint32, dims.Cells())
	Step(dst, src, dims)

	for i := range src {
		if src[i] != orig[i] {
			t.Fatalf("source mutated at index %d", i)
		}
	}
}

func TestStepDeterministic(t *testing.T) {
	dims := GridDims{Width: 8, Height: 8}
	grid, err := NewGrid(dims, 0.5, 42)
	if err != nil {
		t.Fatal(err)
	}
	src := grid.Buffer(0)

	a := stepOnce(t, src, dims)
	b := stepOnce(t, src, dims)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("nondeterministic step at index %d", i)
		}
	}
}

func TestStepAllDead(t *testing.T) {
	dims := GridDims{Width: 8, Height: 8}
	dst := stepOnce(t, make([]uint32, dims.Cells()), dims)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("spontaneous birth at index %d", i)
		}
	}
}

func TestStepBlockIsStable(t *testing.T) {
	dims := GridDims{Width: 8, Height: 8}
	src := setCells(dims, [2]int{3, 3}, [2]int{4, 3}, [2]int{3, 4}, [2]int{4, 4})

	dst := stepOnce(t, src, dims)
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("block not stable at index %d: got %d, want %d", i, dst[i], src[i])
		}
	}
}

func TestStepIsolatedCellDies(t *testing.T) {
	dims := GridDims{Width: 8, Height: 8}
	src := setCells(dims, [2]int{4, 4})

	dst := stepOnce(t, src, dims)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("unexpected live cell at index %d", i)
		}
	}
}

func TestStepBlinkerOscillates(t *testing.T) {
	dims := GridDims{Width: 8, Height: 8}
	horizontal := setCells(dims, [2]int{3, 4}, [2]int{4, 4}, [2]int{5, 4})
	vertical := setCells(dims, [2]int{4, 3}, [2]int{4, 4}, [2]int{4, 5})

	after1 := stepOnce(t, horizontal, dims)
	for i := range after1 {
		if after1[i] != vertical[i] {
			t.Fatalf("blinker step 1 wrong at index %d", i)
		}
	}

	after2 := stepOnce(t, after1, dims)
	for i := range after2 {
		if after2[i] != horizontal[i] {
			t.Fatalf("blinker did not return to start at index %d", i)
		}
	}
}
