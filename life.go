package life

// Step computes one generation of the automaton, reading src and writing
// dst. Both slices must have dims.Cells() elements and must not alias.
//
// This is the CPU reference for the compute kernel in
// gpu/shaders/life_update.wgsl; the two must stay in lockstep. The rule:
// a cell with exactly 2 live neighbors keeps its state, a cell with exactly
// 3 live neighbors becomes alive, every other cell dies. This is the
// standard Game of Life rule with the alive-survives and dead-stays-dead
// branches of the 2-neighbor case folded together.
//
// Neighbor coordinates wrap modulo the grid extent in x and y independently
// (toroidal topology). The offsets are written as +extent-1 instead of -1 to
// match the shader, where the coordinates are unsigned.
func Step(dst, src []uint32, dims GridDims) {
	w, h := dims.Width, dims.Height
	for y := 0; y < h; y++ {
		ym := (y + h - 1) % h
		yp := (y + 1) % h
		for x := 0; x < w; x++ {
			xm := (x + w - 1) % w
			xp := (x + 1) % w

			neighbors := src[ym*w+xm] + src[ym*w+x] + src[ym*w+xp] +
				src[y*w+xm] + src[y*w+xp] +
				src[yp*w+xm] + src[yp*w+x] + src[yp*w+xp]

			i := y*w + x
			switch neighbors {
			case 2:
				dst[i] = src[i]
			case 3:
				dst[i] = 1
			default:
				dst[i] = 0
			}
		}
	}
}
