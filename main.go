// main.go - Entry point for the Mandelbrot GPU viewer

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func boilerPlate() {
	fmt.Println("\nMandelbrot GPU - interactive escape-time fractal explorer")
	fmt.Println("(c) 2024 - 2026 The Mandelbrot-GPU Authors")
	fmt.Println("https://github.com/aspasswrd/Mandelbrot-GPU")
	fmt.Println("License: GPLv3 or later")
}

type viewerOptions struct {
	width      int
	height     int
	maxIter    int
	scale      int
	fullscreen bool
	terminal   bool
	double     bool
}

func parseOptions(args []string) (viewerOptions, error) {
	var opts viewerOptions

	flagSet := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.IntVar(&opts.width, "width", 800, "Viewport width in pixels (fixed after startup)")
	flagSet.IntVar(&opts.height, "height", 600, "Viewport height in pixels (fixed after startup)")
	flagSet.IntVar(&opts.maxIter, "max-iter", 800, "Escape-time iteration cap")
	flagSet.IntVar(&opts.scale, "scale", 1, "Integer window scale factor")
	flagSet.BoolVar(&opts.fullscreen, "fullscreen", false, "Start in fullscreen")
	flagSet.BoolVar(&opts.terminal, "terminal", false, "Render into the terminal instead of a window")
	flagSet.BoolVar(&opts.double, "double", false, "Double-precision iteration (deeper zooms, slower)")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./mandelbrot-gpu [-width 800] [-height 600] [-max-iter 800] [-scale 1] [-fullscreen] [-terminal] [-double]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args[1:]); err != nil {
		return opts, err
	}
	if opts.width <= 0 || opts.height <= 0 {
		return opts, fmt.Errorf("viewport size must be positive, got %dx%d", opts.width, opts.height)
	}
	if opts.maxIter <= 0 {
		return opts, fmt.Errorf("iteration cap must be positive, got %d", opts.maxIter)
	}
	return opts, nil
}

func main() {
	boilerPlate()

	opts, err := parseOptions(os.Args)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	precision := PrecisionSingle
	if opts.double {
		precision = PrecisionDouble
	}

	palette := buildPaletteTable(opts.maxIter)

	compute, err := NewComputeBackend(COMPUTE_BACKEND_POOL)
	if err != nil {
		fmt.Printf("Failed to initialize compute backend: %v\n", err)
		os.Exit(1)
	}
	defer compute.Close()

	generator, err := NewFrameGenerator(compute, palette, opts.width, opts.height, int32(opts.maxIter), precision)
	if err != nil {
		fmt.Printf("Failed to initialize frame generator: %v\n", err)
		os.Exit(1)
	}

	videoBackend := VIDEO_BACKEND_EBITEN
	if opts.terminal {
		videoBackend = VIDEO_BACKEND_TERMINAL
	}
	video, err := NewVideoOutput(videoBackend)
	if err != nil {
		fmt.Printf("Failed to initialize video: %v\n", err)
		os.Exit(1)
	}

	if err := video.SetDisplayConfig(DisplayConfig{
		Width:      opts.width,
		Height:     opts.height,
		Scale:      opts.scale,
		VSync:      true,
		Fullscreen: opts.fullscreen,
	}); err != nil {
		fmt.Printf("Failed to configure video: %v\n", err)
		os.Exit(1)
	}

	viewport := NewViewport()
	orchestrator := NewOrchestrator(generator, viewport)

	video.SetActionHandler(func(action NavAction) {
		viewport.Apply(action)
	})
	video.SetStatusProvider(func() ViewerStatus {
		return ViewerStatus{
			View:       viewport.Snapshot(),
			MaxIter:    int32(opts.maxIter),
			Precision:  precision,
			Generating: orchestrator.Generating(),
			Frames:     orchestrator.Launches(),
		}
	})
	if lc, ok := video.(LocationCapable); ok {
		lc.SetLocationProvider(viewport.Snapshot)
		lc.SetLocationSink(func(snap ViewSnapshot) bool {
			return viewport.SetView(snap.OffsetX, snap.OffsetY, snap.Zoom)
		})
	}

	if err := video.Start(); err != nil {
		fmt.Printf("Failed to start video: %v\n", err)
		os.Exit(1)
	}
	defer video.Close()

	// Display loop: poll the orchestrator, present the latest published
	// frame whether or not it changed, wait for the next vsync.
	for {
		select {
		case <-video.Done():
			return
		default:
		}

		orchestrator.Poll()
		if frame := orchestrator.Frame(); frame != nil {
			if err := video.UpdateFrame(frame); err != nil {
				fmt.Fprintf(os.Stderr, "frame upload: %v\n", err)
			}
		}
		if err := video.WaitForVSync(); err != nil {
			return
		}
	}
}
