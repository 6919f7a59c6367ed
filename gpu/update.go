package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	life "github.com/jkpdino/GameOfLife"
)

//go:embed shaders/life_update.wgsl
var lifeUpdateWGSL string

// updateWorkgroupSize is the workgroup edge length of the update kernel.
// Must match @workgroup_size in life_update.wgsl.
const updateWorkgroupSize = 8

// updatePipeline owns the compute pipeline that advances the automaton by
// one generation. Two pre-built bind groups cover both buffer orientations:
// bindGroups[p] reads state[p] and writes state[p^1], so a tick only picks
// the group matching its parity and never rebinds buffers individually.
type updatePipeline struct {
	device hal.Device

	shader     hal.ShaderModule
	bgLayout   hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	bindGroups [2]hal.BindGroup
}

// updateBindGroupLayoutEntries returns the layout entries of the update
// kernel. These match the @group(0) @binding(N) annotations in
// life_update.wgsl exactly: the grid uniform, the read-only source state,
// and the writable destination state.
func updateBindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
		},
		{
			Binding:    2,
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
		},
	}
}

// newUpdatePipeline compiles the update kernel and creates the pipeline and
// the two per-parity bind groups.
func newUpdatePipeline(device hal.Device, bufs *cellBuffers) (*updatePipeline, error) {
	u := &updatePipeline{device: device}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "life_update",
		Source: hal.ShaderSource{WGSL: lifeUpdateWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: compile life_update shader: %w", err)
	}
	u.shader = shader

	bgLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "life_update_bgl",
		Entries: updateBindGroupLayoutEntries(),
	})
	if err != nil {
		u.destroy()
		return nil, fmt.Errorf("gpu: create update bind group layout: %w", err)
	}
	u.bgLayout = bgLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "life_update_pl",
		BindGroupLayouts: []hal.BindGroupLayout{bgLayout},
	})
	if err != nil {
		u.destroy()
		return nil, fmt.Errorf("gpu: create update pipeline layout: %w", err)
	}
	u.pipeLayout = pipeLayout

	pipeline, err := device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "life_update",
		Layout: pipeLayout,
		Compute: hal.ComputeState{
			Module:     shader,
			EntryPoint: "main",
		},
	})
	if err != nil {
		u.destroy()
		return nil, fmt.Errorf("gpu: create update pipeline: %w", err)
	}
	u.pipeline = pipeline

	for p := 0; p < 2; p++ {
		bg, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  fmt.Sprintf("life_update_bg_%d", p),
			Layout: bgLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: bufs.gridUniform.NativeHandle()}},
				{Binding: 1, Resource: gputypes.BufferBinding{Buffer: bufs.state[p].NativeHandle()}},
				{Binding: 2, Resource: gputypes.BufferBinding{Buffer: bufs.state[p^1].NativeHandle()}},
			},
		})
		if err != nil {
			u.destroy()
			return nil, fmt.Errorf("gpu: create update bind group %d: %w", p, err)
		}
		u.bindGroups[p] = bg
	}

	return u, nil
}

// workgroups performs the ceiling division for one dispatch axis. Grids
// whose side is not a multiple of the workgroup size get one extra
// workgroup; the kernel guards the out-of-range invocations.
func workgroups(n int) uint32 {
	return uint32((n + updateWorkgroupSize - 1) / updateWorkgroupSize)
}

// encode records the update pass for a tick with the given parity: it reads
// the current buffer and writes the next one.
func (u *updatePipeline) encode(encoder hal.CommandEncoder, dims life.GridDims, parity int) {
	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "life_update"})
	pass.SetPipeline(u.pipeline)
	pass.SetBindGroup(0, u.bindGroups[parity&1], nil)
	pass.Dispatch(workgroups(dims.Width), workgroups(dims.Height), 1)
	pass.End()
}

// destroy releases all pipeline resources in reverse creation order.
// Safe on partially constructed values.
func (u *updatePipeline) destroy() {
	for i, bg := range u.bindGroups {
		if bg != nil {
			u.device.DestroyBindGroup(bg)
			u.bindGroups[i] = nil
		}
	}
	if u.pipeline != nil {
		u.device.DestroyComputePipeline(u.pipeline)
		u.pipeline = nil
	}
	if u.pipeLayout != nil {
		u.device.DestroyPipelineLayout(u.pipeLayout)
		u.pipeLayout = nil
	}
	if u.bgLayout != nil {
		u.device.DestroyBindGroupLayout(u.bgLayout)
		u.bgLayout = nil
	}
	if u.shader != nil {
		u.device.DestroyShaderModule(u.shader)
		u.shader = nil
	}
}
