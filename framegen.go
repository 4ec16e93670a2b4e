// framegen.go - Full-frame generation: dispatch, retrieve, colorize

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

import "fmt"

// FrameGenerator turns one viewport snapshot into a display-ready RGB
// buffer: kernel dispatch over the pixel grid, retrieval of the iteration
// counts, then palette lookup per pixel. Each call writes a private buffer;
// publication to the display is the orchestrator's job.
type FrameGenerator struct {
	backend   ComputeBackend
	palette   []RGB
	width     int
	height    int
	maxIter   int32
	precision NumericPrecision
}

func NewFrameGenerator(backend ComputeBackend, palette []RGB, width, height int, maxIter int32, precision NumericPrecision) (*FrameGenerator, error) {
	if len(palette) != int(maxIter)+1 {
		return nil, &ComputeError{
			Operation: "initialization",
			Details:   fmt.Sprintf("palette has %d entries, need %d", len(palette), maxIter+1),
		}
	}
	return &FrameGenerator{
		backend:   backend,
		palette:   palette,
		width:     width,
		height:    height,
		maxIter:   maxIter,
		precision: precision,
	}, nil
}

// Generate computes one full frame for the given snapshot. Dispatch or
// retrieve failures propagate to the caller; there is no CPU-side fallback
// rendering path.
func (fg *FrameGenerator) Generate(snap ViewSnapshot) ([]byte, error) {
	buf, err := fg.backend.Dispatch(KernelParams{
		Width:     fg.width,
		Height:    fg.height,
		OffsetX:   snap.OffsetX,
		OffsetY:   snap.OffsetY,
		Zoom:      snap.Zoom,
		MaxIter:   fg.maxIter,
		Precision: fg.precision,
	})
	if err != nil {
		return nil, err
	}

	iters, err := fg.backend.Retrieve(buf)
	if err != nil {
		return nil, err
	}

	img := make([]byte, fg.width*fg.height*3)
	for i, iter := range iters {
		c := fg.palette[iter]
		img[i*3] = c.R
		img[i*3+1] = c.G
		img[i*3+2] = c.B
	}
	return img, nil
}

// Size returns the fixed output dimensions of this generator.
func (fg *FrameGenerator) Size() (int, int) {
	return fg.width, fg.height
}
