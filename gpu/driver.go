package gpu

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/wgpu/hal"

	life "github.com/jkpdino/GameOfLife"
)

const (
	// tickDelta is the wall-clock time advanced per Tick, a fixed 60 Hz step.
	tickDelta = 1.0 / 60

	// fenceTimeout bounds the wait for a submitted tick. Generously sized;
	// a tick that takes longer than this indicates a hung device.
	fenceTimeout = 5 * time.Second
)

// Driver runs the animation on the GPU. Each Tick renders the current
// generation with the gradient colors of the moment, then advances the
// automaton by one generation, both recorded into a single command stream
// so the render always observes the pre-update state.
type Driver struct {
	ctx  *Context
	cfg  life.Config
	dims life.GridDims

	clock    life.Clock
	gradient life.Gradient

	bufs   *cellBuffers
	update *updatePipeline
	render *renderPipeline

	frame uint64
}

// NewDriver validates the configuration, seeds the grid and builds all GPU
// resources on the given context.
func NewDriver(ctx *Context, cfg life.Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid, err := life.NewGrid(cfg.Dims(), cfg.AliveProbability, cfg.Seed)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		ctx:      ctx,
		cfg:      cfg,
		dims:     grid.Dims(),
		gradient: life.Gradient{DiscoSpeed: cfg.DiscoSpeed},
	}

	bufs, err := newCellBuffers(ctx.Device(), ctx.Queue(), grid)
	if err != nil {
		return nil, err
	}
	d.bufs = bufs

	update, err := newUpdatePipeline(ctx.Device(), bufs)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.update = update

	render, err := newRenderPipeline(ctx.Device(), ctx.Queue(), bufs, d.dims, cfg.CellPixels)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.render = render

	slogger().Info("gpu: driver ready",
		"grid", fmt.Sprintf("%dx%d", d.dims.Width, d.dims.Height),
		"target", fmt.Sprintf("%dx%d", render.width, render.height))
	return d, nil
}

// Clock returns the driver's animation clock state.
func (d *Driver) Clock() life.Clock { return d.clock }

// Frame returns the number of completed ticks.
func (d *Driver) Frame() uint64 { return d.frame }

// Tick advances the animation by one fixed step: it uploads the gradient
// colors for the current render time, records the render pass followed by
// the update pass, submits, and blocks until the GPU finishes.
func (d *Driver) Tick() error {
	d.clock.Advance(tickDelta, d.cfg.SimSpeed)
	parity := d.clock.Parity()
	colors := d.gradient.Colors(d.clock.RenderTime)

	d.ctx.Queue().WriteBuffer(d.bufs.renderUniform, 0, renderUniformBytes(d.dims, colors))

	encoder, err := d.ctx.Device().CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "life_tick"})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}

	if err := encoder.BeginEncoding("life_tick"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}
	d.render.encode(encoder, d.dims, parity)
	d.update.encode(encoder, d.dims, parity)
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("gpu: end encoding: %w", err)
	}

	if err := d.submitAndWait(cmdBuf); err != nil {
		return err
	}

	d.frame++
	slogger().Debug("gpu: tick complete",
		"frame", d.frame, "parity", parity, "sim_step", d.clock.SimStep)
	return nil
}

// ReadFrame renders the current generation once more and copies the target
// back to the CPU as an RGBA image. It does not advance the clock or the
// simulation, so it can be called between Ticks without disturbing them.
func (d *Driver) ReadFrame() (*image.RGBA, error) {
	parity := d.clock.Parity()
	colors := d.gradient.Colors(d.clock.RenderTime)
	d.ctx.Queue().WriteBuffer(d.bufs.renderUniform, 0, renderUniformBytes(d.dims, colors))

	encoder, err := d.ctx.Device().CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "life_readback"})
	if err != nil {
		return nil, fmt.Errorf("gpu: create command encoder: %w", err)
	}

	if err := encoder.BeginEncoding("life_readback"); err != nil {
		return nil, fmt.Errorf("gpu: begin encoding: %w", err)
	}
	d.render.encode(encoder, d.dims, parity)
	staging, err := d.render.encodeReadback(encoder)
	if err != nil {
		encoder.DiscardEncoding()
		return nil, err
	}
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		d.ctx.Device().DestroyBuffer(staging)
		return nil, fmt.Errorf("gpu: end encoding: %w", err)
	}

	if err := d.submitAndWait(cmdBuf); err != nil {
		d.ctx.Device().DestroyBuffer(staging)
		return nil, err
	}

	img, err := d.render.readInto(staging)
	d.ctx.Device().DestroyBuffer(staging)
	return img, err
}

// submitAndWait submits a command buffer and blocks until the fence signals.
func (d *Driver) submitAndWait(cmdBuf hal.CommandBuffer) error {
	device := d.ctx.Device()
	fence, err := device.CreateFence()
	if err != nil {
		device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("gpu: create fence: %w", err)
	}
	defer device.DestroyFence(fence)
	defer device.FreeCommandBuffer(cmdBuf)

	if err := d.ctx.Queue().Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}
	ok, err := device.Wait(fence, 1, fenceTimeout)
	if err != nil {
		return fmt.Errorf("gpu: wait: %w", err)
	}
	if !ok {
		return fmt.Errorf("gpu: tick timed out after %v", fenceTimeout)
	}
	return nil
}

// Close releases all driver resources. Safe on partially constructed values
// and safe to call more than once. The context is not closed; the caller
// owns it.
func (d *Driver) Close() {
	if d.render != nil {
		d.render.destroy()
		d.render = nil
	}
	if d.update != nil {
		d.update.destroy()
		d.update = nil
	}
	if d.bufs != nil {
		d.bufs.destroy()
		d.bufs = nil
	}
}
