// Package gpu orchestrates the Game of Life GPU pipeline on gogpu/wgpu.
//
// Each tick records two passes into one command encoder: a render pass that
// draws one instanced quad per cell from the current state buffer, then a
// compute pass that writes the next generation into the other state buffer.
// Both passes read the same source buffer, so their relative order inside a
// tick needs no synchronization beyond the single ordered command stream;
// the buffer role flip isolates a tick's writes from the next tick's reads.
//
// The package acquires a standalone Vulkan device by default and also
// accepts an externally owned device and queue, so an embedding application
// can share its own. Frames render into an offscreen texture and can be
// read back as an image; surface presentation is the caller's concern.
package gpu
