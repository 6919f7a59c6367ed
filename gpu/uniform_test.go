package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	life "github.com/jkpdino/GameOfLife"
)

func f32At(t *testing.T, buf []byte, off int) float32 {
	t.Helper()
	if off+4 > len(buf) {
		t.Fatalf("offset %d past end of %d-byte buffer", off, len(buf))
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestGridUniformBytes(t *testing.T) {
	buf := gridUniformBytes(life.GridDims{Width: 37, Height: 13})
	if len(buf) != gridUniformSize {
		t.Fatalf("length %d, want %d", len(buf), gridUniformSize)
	}
	if w := binary.LittleEndian.Uint32(buf[0:]); w != 37 {
		t.Errorf("width = %d, want 37", w)
	}
	if h := binary.LittleEndian.Uint32(buf[4:]); h != 13 {
		t.Errorf("height = %d, want 13", h)
	}
}

func TestRenderUniformBytesLayout(t *testing.T) {
	dims := life.GridDims{Width: 64, Height: 32}
	colors := life.CornerColors{
		life.RGB(1, 0, 0),
		life.RGB(0, 1, 0),
		life.RGB(0, 0, 1),
		life.RGB(0.25, 0.5, 0.75),
	}

	buf := renderUniformBytes(dims, colors)
	if len(buf) != renderUniformSize {
		t.Fatalf("length %d, want %d", len(buf), renderUniformSize)
	}

	if got := f32At(t, buf, 0); got != 64 {
		t.Errorf("grid.x = %v, want 64", got)
	}
	if got := f32At(t, buf, 4); got != 32 {
		t.Errorf("grid.y = %v, want 32", got)
	}

	// Padding bytes 8..15 are zero.
	for i := 8; i < 16; i++ {
		if buf[i] != 0 {
			t.Errorf("padding byte %d = %#x, want 0", i, buf[i])
		}
	}

	// Corners start at offset 16, one vec4<f32> each.
	for i, c := range colors {
		off := 16 + i*16
		if got := f32At(t, buf, off); got != float32(c.R) {
			t.Errorf("corner %d R = %v, want %v", i, got, c.R)
		}
		if got := f32At(t, buf, off+4); got != float32(c.G) {
			t.Errorf("corner %d G = %v, want %v", i, got, c.G)
		}
		if got := f32At(t, buf, off+8); got != float32(c.B) {
			t.Errorf("corner %d B = %v, want %v", i, got, c.B)
		}
		if got := f32At(t, buf, off+12); got != 1 {
			t.Errorf("corner %d A = %v, want 1", i, got)
		}
	}
}

func TestU32Bytes(t *testing.T) {
	buf := u32Bytes([]uint32{0, 1, 0xDEADBEEF})
	if len(buf) != 12 {
		t.Fatalf("length %d, want 12", len(buf))
	}
	if v := binary.LittleEndian.Uint32(buf[0:]); v != 0 {
		t.Errorf("word 0 = %#x", v)
	}
	if v := binary.LittleEndian.Uint32(buf[4:]); v != 1 {
		t.Errorf("word 1 = %#x", v)
	}
	if v := binary.LittleEndian.Uint32(buf[8:]); v != 0xDEADBEEF {
		t.Errorf("word 2 = %#x", v)
	}
}
