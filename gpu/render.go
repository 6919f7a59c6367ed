package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	life "github.com/jkpdino/GameOfLife"
)

//go:embed shaders/cell_render.wgsl
var cellRenderWGSL string

const (
	// quadVertexCount is the vertex count of the per-cell quad: two
	// triangles.
	quadVertexCount = 6

	// quadHalfExtent places the quad corners at ±0.8 of the half-cell
	// extent, leaving a visible gap between neighboring cells.
	quadHalfExtent = 0.8

	// quadVertexStride is the byte stride per vertex: position vec2<f32>.
	quadVertexStride = 8
)

// renderPipeline draws one instanced quad per grid cell into an offscreen
// color target. The instance index selects the cell; the vertex shader
// collapses dead cells by scaling the quad with the cell state and the
// fragment shader blends the four animated corner colors bilinearly.
//
// Like updatePipeline, two pre-built bind groups cover both buffer
// orientations so a tick only picks the group matching its parity.
type renderPipeline struct {
	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	bgLayout   hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	vertexBuf  hal.Buffer
	bindGroups [2]hal.BindGroup

	colorTex  hal.Texture
	colorView hal.TextureView

	// width, height are the render target dimensions in pixels.
	width, height uint32
}

// renderBindGroupLayoutEntries returns the layout entries of the render
// pass, matching the @group(0) @binding(N) annotations in cell_render.wgsl:
// the render uniform (grid size + corner colors) and the read-only cell
// state.
func renderBindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
		},
	}
}

// quadVertexLayout returns the vertex buffer layout: a single vec2<f32>
// position per vertex, stepped per vertex (the per-cell data comes from the
// instance index, not a second buffer).
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
	}
}

// quadVertices returns the two triangles of the cell quad, corners at
// ±quadHalfExtent in cell-local space.
func quadVertices() []byte {
	const e = quadHalfExtent
	verts := [quadVertexCount][2]float32{
		{-e, -e}, {e, -e}, {e, e},
		{-e, -e}, {e, e}, {-e, e},
	}
	buf := make([]byte, quadVertexCount*quadVertexStride)
	for i, v := range verts {
		binary.LittleEndian.PutUint32(buf[i*8:], math.Float32bits(v[0]))
		binary.LittleEndian.PutUint32(buf[i*8+4:], math.Float32bits(v[1]))
	}
	return buf
}

// newRenderPipeline compiles the cell shader, creates the pipeline, the
// quad vertex buffer, the offscreen color target and the two per-parity
// bind groups. The target is dims scaled by cellPixels.
func newRenderPipeline(device hal.Device, queue hal.Queue, bufs *cellBuffers, dims life.GridDims, cellPixels int) (*renderPipeline, error) {
	r := &renderPipeline{
		device: device,
		queue:  queue,
		width:  uint32(dims.Width * cellPixels),
		height: uint32(dims.Height * cellPixels),
	}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "cell_render",
		Source: hal.ShaderSource{WGSL: cellRenderWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: compile cell_render shader: %w", err)
	}
	r.shader = shader

	bgLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "cell_render_bgl",
		Entries: renderBindGroupLayoutEntries(),
	})
	if err != nil {
		r.destroy()
		return nil, fmt.Errorf("gpu: create render bind group layout: %w", err)
	}
	r.bgLayout = bgLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "cell_render_pl",
		BindGroupLayouts: []hal.BindGroupLayout{bgLayout},
	})
	if err != nil {
		r.destroy()
		return nil, fmt.Errorf("gpu: create render pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "cell_render",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		r.destroy()
		return nil, fmt.Errorf("gpu: create render pipeline: %w", err)
	}
	r.pipeline = pipeline

	vertexBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "cell_render_quad",
		Size:  quadVertexCount * quadVertexStride,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		r.destroy()
		return nil, fmt.Errorf("gpu: create quad vertex buffer: %w", err)
	}
	r.vertexBuf = vertexBuf
	queue.WriteBuffer(vertexBuf, 0, quadVertices())

	colorTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "cell_render_color",
		Size:          hal.Extent3D{Width: r.width, Height: r.height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		r.destroy()
		return nil, fmt.Errorf("gpu: create color texture: %w", err)
	}
	r.colorTex = colorTex

	colorView, err := device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label:         "cell_render_color_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.destroy()
		return nil, fmt.Errorf("gpu: create color view: %w", err)
	}
	r.colorView = colorView

	for p := 0; p < 2; p++ {
		bg, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  fmt.Sprintf("cell_render_bg_%d", p),
			Layout: bgLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: bufs.renderUniform.NativeHandle()}},
				{Binding: 1, Resource: gputypes.BufferBinding{Buffer: bufs.state[p].NativeHandle()}},
			},
		})
		if err != nil {
			r.destroy()
			return nil, fmt.Errorf("gpu: create render bind group %d: %w", p, err)
		}
		r.bindGroups[p] = bg
	}

	return r, nil
}

// encode records the render pass for a tick with the given parity, drawing
// all cells from the current buffer over an opaque black clear.
func (r *renderPipeline) encode(encoder hal.CommandEncoder, dims life.GridDims, parity int) {
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "cell_render",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       r.colorView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, r.bindGroups[parity&1], nil)
	rp.SetVertexBuffer(0, r.vertexBuf, 0)
	rp.Draw(quadVertexCount, uint32(dims.Cells()), 0, 0)
	rp.End()
}

// encodeReadback records a copy of the color target into a fresh staging
// buffer and returns it. The caller submits, waits, then calls readInto.
func (r *renderPipeline) encodeReadback(encoder hal.CommandEncoder) (hal.Buffer, error) {
	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "cell_render_staging",
		Size:  uint64(r.width) * uint64(r.height) * 4,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create staging buffer: %w", err)
	}

	// After the render pass the texture is in attachment layout; the copy
	// needs transfer-src. No-op on backends without explicit layouts.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	encoder.CopyTextureToBuffer(r.colorTex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: r.width * 4, RowsPerImage: r.height},
		TextureBase:  hal.ImageCopyTexture{Texture: r.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: r.width, Height: r.height, DepthOrArrayLayers: 1},
	}})

	return staging, nil
}

// readInto reads the staging buffer back and converts BGRA to an RGBA image.
func (r *renderPipeline) readInto(staging hal.Buffer) (*image.RGBA, error) {
	data := make([]byte, uint64(r.width)*uint64(r.height)*4)
	if err := r.queue.ReadBuffer(staging, 0, data); err != nil {
		return nil, fmt.Errorf("gpu: readback: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(r.width), int(r.height)))
	for i := 0; i+3 < len(data); i += 4 {
		img.Pix[i] = data[i+2]
		img.Pix[i+1] = data[i+1]
		img.Pix[i+2] = data[i]
		img.Pix[i+3] = data[i+3]
	}
	return img, nil
}

// destroy releases all pipeline resources in reverse creation order.
// Safe on partially constructed values.
func (r *renderPipeline) destroy() {
	for i, bg := range r.bindGroups {
		if bg != nil {
			r.device.DestroyBindGroup(bg)
			r.bindGroups[i] = nil
		}
	}
	if r.colorView != nil {
		r.device.DestroyTextureView(r.colorView)
		r.colorView = nil
	}
	if r.colorTex != nil {
		r.device.DestroyTexture(r.colorTex)
		r.colorTex = nil
	}
	if r.vertexBuf != nil {
		r.device.DestroyBuffer(r.vertexBuf)
		r.vertexBuf = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.bgLayout != nil {
		r.device.DestroyBindGroupLayout(r.bgLayout)
		r.bgLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}
