// Package life implements a toroidal-grid Game of Life animation whose
// simulation and rendering both run on the GPU.
//
// # Overview
//
// The cell state lives in two GPU storage buffers that alternate roles every
// simulated step (ping-pong buffering): one buffer is read by the render and
// update passes while the other receives the next generation. The rendered
// image is a grid of instanced quads, one per cell, colored by a continuously
// rotating hue gradient blended bilinearly across the grid.
//
// This root package holds the data model and the pure logic: grid state and
// seeding, the update rule, the color gradient, and the animation clock. The
// update rule is also implemented here on the CPU (Step) as the reference
// that the compute shader mirrors; tests validate the rule against the CPU
// implementation.
//
// The gpu subpackage orchestrates the two GPU passes per tick on top of
// gogpu/wgpu and reads frames back for headless use.
//
// # Quick Start
//
//	ctx, err := gpu.NewContext()
//	if err != nil {
//	    log.Fatal(err) // no usable GPU
//	}
//	defer ctx.Close()
//
//	driver, err := gpu.NewDriver(ctx, life.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer driver.Close()
//
//	for range ticker.C { // external 60 Hz caller
//	    if err := driver.Tick(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Coordinate System
//
// Cells are indexed row-major with (0, 0) at a fixed corner; all neighbor
// lookups wrap modulo the grid extent in x and y independently, so the grid
// topology is a torus.
package life
