package life

import (
	"image"
	"image/color"
)

// quadInset is the fraction of a cell left empty on each side of a live
// quad. The quad corners sit at ±0.8 of the half-cell extent, so 10% of the
// cell is inset per side.
const quadInset = 0.1

// Rasterize draws the given cell state as an image, cellPixels pixels per
// cell. It is the CPU reference for the render pipeline in
// gpu/shaders/cell_render.wgsl: live cells draw an inset quad, dead cells
// collapse to nothing, and each cell's color is the bilinear blend of the
// four corner colors at the cell's normalized grid position. The background
// is opaque black, matching the render pass clear color.
//
// Cell (0, 0) is drawn at the top-left corner of the image.
func Rasterize(cells []uint32, dims GridDims, colors CornerColors, cellPixels int) *image.RGBA {
	w := dims.Width * cellPixels
	h := dims.Height * cellPixels
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}

	inset := int(quadInset * float64(cellPixels))
	for y := 0; y < dims.Height; y++ {
		for x := 0; x < dims.Width; x++ {
			if cells[dims.Index(x, y)] == 0 {
				continue
			}

			tx := float64(x) / float64(dims.Width)
			ty := float64(y) / float64(dims.Height)
			c := Bilinear(colors[0], colors[1], colors[2], colors[3], tx, ty)
			px := color.RGBA{
				R: floatByte(c.R),
				G: floatByte(c.G),
				B: floatByte(c.B),
				A: floatByte(c.A),
			}

			for py := y*cellPixels + inset; py < (y+1)*cellPixels-inset; py++ {
				for pxx := x*cellPixels + inset; pxx < (x+1)*cellPixels-inset; pxx++ {
					img.SetRGBA(pxx, py, px)
				}
			}
		}
	}
	return img
}

// floatByte converts a [0, 1] channel to an 8-bit value, clamping.
func floatByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
