// Command discolife runs the animated Game of Life headlessly and writes
// frames as PNG files.
//
// Each tick renders the current generation with the rotating hue gradient,
// then advances the automaton. By default the rendering runs on the GPU;
// -cpu switches to the CPU reference path, which produces the same cell
// layout with flat per-cell colors.
//
// Example:
//
//	discolife -width 128 -height 128 -ticks 300 -every 10 -out tmp
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	life "github.com/jkpdino/GameOfLife"
	"github.com/jkpdino/GameOfLife/gpu"
)

func main() {
	def := life.DefaultConfig()

	width := flag.Int("width", def.Width, "grid width in cells")
	height := flag.Int("height", def.Height, "grid height in cells")
	cell := flag.Int("cell", def.CellPixels, "pixels per cell")
	disco := flag.Float64("disco", def.DiscoSpeed, "gradient rotations per second")
	sim := flag.Float64("sim", def.SimSpeed, "generations per second")
	prob := flag.Float64("p", def.AliveProbability, "initial alive probability")
	seed := flag.Uint64("seed", def.Seed, "seed for the initial population")
	ticks := flag.Int("ticks", 300, "number of 60Hz ticks to run")
	every := flag.Int("every", 0, "write a frame every N ticks (0 = final frame only)")
	out := flag.String("out", "tmp", "output directory")
	scale := flag.Int("scale", 1, "integer upscale factor for written frames")
	cpuMode := flag.Bool("cpu", false, "use the CPU reference instead of the GPU")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gpu.SetLogger(logger)

	cfg := life.Config{
		Width:            *width,
		Height:           *height,
		CellPixels:       *cell,
		DiscoSpeed:       *disco,
		SimSpeed:         *sim,
		AliveProbability: *prob,
		Seed:             *seed,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: cannot create %s: %v\n", *out, err)
		os.Exit(1)
	}

	var err error
	if *cpuMode {
		err = runCPU(cfg, *ticks, *every, *out, *scale)
	} else {
		err = runGPU(cfg, *ticks, *every, *out, *scale)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func runGPU(cfg life.Config, ticks, every int, out string, scale int) error {
	ctx, err := gpu.NewContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	driver, err := gpu.NewDriver(ctx, cfg)
	if err != nil {
		return err
	}
	defer driver.Close()

	for i := 0; i < ticks; i++ {
		if err := driver.Tick(); err != nil {
			return err
		}
		if every > 0 && (i+1)%every == 0 {
			img, err := driver.ReadFrame()
			if err != nil {
				return err
			}
			if err := writeFrame(out, i+1, img, scale); err != nil {
				return err
			}
		}
	}

	img, err := driver.ReadFrame()
	if err != nil {
		return err
	}
	return writeFrame(out, ticks, img, scale)
}

func runCPU(cfg life.Config, ticks, every int, out string, scale int) error {
	grid, err := life.NewGrid(cfg.Dims(), cfg.AliveProbability, cfg.Seed)
	if err != nil {
		return err
	}
	dims := grid.Dims()
	gradient := life.Gradient{DiscoSpeed: cfg.DiscoSpeed}

	var clock life.Clock
	const tickDelta = 1.0 / 60

	capture := func(tick int) error {
		colors := gradient.Colors(clock.RenderTime)
		img := life.Rasterize(grid.Current(clock.Parity()), dims, colors, cfg.CellPixels)
		return writeFrame(out, tick, img, scale)
	}

	for i := 0; i < ticks; i++ {
		prevStep := int(math.Floor(clock.SimStep))
		clock.Advance(tickDelta, cfg.SimSpeed)
		for s := prevStep; s < int(math.Floor(clock.SimStep)); s++ {
			life.Step(grid.Next(s), grid.Current(s), dims)
		}
		if every > 0 && (i+1)%every == 0 {
			if err := capture(i + 1); err != nil {
				return err
			}
		}
	}
	return capture(ticks)
}

func writeFrame(out string, tick int, img *image.RGBA, scale int) error {
	if scale > 1 {
		b := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		img = dst
	}

	path := filepath.Join(out, fmt.Sprintf("frame_%05d.png", tick))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	slog.Info("wrote frame", "path", path, "tick", tick)
	return nil
}
