package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	life "github.com/jkpdino/GameOfLife"
)

const (
	// gridUniformSize is the byte size of the update kernel's grid uniform:
	// vec2<u32> width, height.
	gridUniformSize = 8

	// renderUniformSize is the byte size of the render uniform. Layout
	// must match the Uniforms struct in cell_render.wgsl:
	//
	//	grid    vec2<f32>            offset  0
	//	pad     vec2<f32>            offset  8
	//	corners array<vec4<f32>, 4>  offset 16
	//
	// Total 80 bytes.
	renderUniformSize = 80
)

// cellBuffers holds the GPU-resident simulation state: the two ping-pong
// cell buffers plus the uniforms for both passes. The buffers never swap
// places; role alternation happens by binding them in opposite order per
// parity (see updatePipeline and renderPipeline).
type cellBuffers struct {
	device hal.Device

	// state[0] and state[1] mirror life.Grid.Buffer(0) and Buffer(1).
	state [2]hal.Buffer

	// gridUniform holds the grid dimensions for the update kernel.
	gridUniform hal.Buffer

	// renderUniform holds grid size and corner colors for the render pass.
	// Rewritten every tick with the current gradient colors.
	renderUniform hal.Buffer
}

// newCellBuffers allocates the state and uniform buffers and uploads the
// seed state into both ping-pong buffers.
func newCellBuffers(device hal.Device, queue hal.Queue, grid *life.Grid) (*cellBuffers, error) {
	dims := grid.Dims()
	stateSize := uint64(dims.Cells()) * 4

	b := &cellBuffers{device: device}
	for i := 0; i < 2; i++ {
		buf, err := device.CreateBuffer(&hal.BufferDescriptor{
			Label: fmt.Sprintf("life_cell_state_%c", 'a'+i),
			Size:  stateSize,
			Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			b.destroy()
			return nil, fmt.Errorf("gpu: create cell state buffer: %w", err)
		}
		b.state[i] = buf
		queue.WriteBuffer(buf, 0, u32Bytes(grid.Buffer(i)))
	}

	gridUniform, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "life_grid_uniform",
		Size:  gridUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		b.destroy()
		return nil, fmt.Errorf("gpu: create grid uniform: %w", err)
	}
	b.gridUniform = gridUniform
	queue.WriteBuffer(gridUniform, 0, gridUniformBytes(dims))

	renderUniform, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "life_render_uniform",
		Size:  renderUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		b.destroy()
		return nil, fmt.Errorf("gpu: create render uniform: %w", err)
	}
	b.renderUniform = renderUniform

	slogger().Debug("gpu: cell buffers allocated",
		"grid", fmt.Sprintf("%dx%d", dims.Width, dims.Height),
		"state_bytes", stateSize)
	return b, nil
}

// destroy releases all buffers. Safe on partially constructed values.
func (b *cellBuffers) destroy() {
	for i, buf := range b.state {
		if buf != nil {
			b.device.DestroyBuffer(buf)
			b.state[i] = nil
		}
	}
	if b.gridUniform != nil {
		b.device.DestroyBuffer(b.gridUniform)
		b.gridUniform = nil
	}
	if b.renderUniform != nil {
		b.device.DestroyBuffer(b.renderUniform)
		b.renderUniform = nil
	}
}

// u32Bytes serializes a u32 slice in little-endian order, the layout of a
// WGSL array<u32> storage buffer.
func u32Bytes(words []uint32) []byte {
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf
}

// gridUniformBytes serializes the grid dimensions as vec2<u32>.
func gridUniformBytes(dims life.GridDims) []byte {
	buf := make([]byte, gridUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(dims.Width))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(dims.Height))
	return buf
}

// renderUniformBytes serializes the render uniform: grid size as vec2<f32>,
// 8 bytes of padding, then the four corner colors as vec4<f32> each.
func renderUniformBytes(dims life.GridDims, colors life.CornerColors) []byte {
	buf := make([]byte, renderUniformSize)
	putF32 := func(off int, v float64) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(float32(v)))
	}
	putF32(0, float64(dims.Width))
	putF32(4, float64(dims.Height))
	// Padding bytes 8..15 remain zero.
	for i, c := range colors {
		off := 16 + i*16
		putF32(off, c.R)
		putF32(off+4, c.G)
		putF32(off+8, c.B)
		putF32(off+12, c.A)
	}
	return buf
}
