// regions.go - Landmark regions of the Mandelbrot set

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

// Region is an axis-aligned window on the complex plane.
type Region struct {
	Name       string
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Classic regions / landmarks in the Mandelbrot set, bound to keys 1-6.
var regions = []Region{
	// Seahorse Valley - dense filaments and repeating "seahorse" curls
	{Name: "Seahorse Valley", Xmin: -0.8, Xmax: -0.7, Ymin: 0.05, Ymax: 0.15},

	// Elephant Valley - large bulb with trunk-like tendrils
	{Name: "Elephant Valley", Xmin: -1.85, Xmax: -1.75, Ymin: -0.10, Ymax: -0.02},

	// Spiral Minibrot - small Mandelbrot copy with tight spiral arms
	{Name: "Spiral Minibrot", Xmin: -0.7435, Xmax: -0.7420, Ymin: 0.1310, Ymax: 0.1325},

	// Triple Spiral - threefold symmetric spiral structure
	{Name: "Triple Spiral", Xmin: -0.7480, Xmax: -0.7450, Ymin: 0.0950, Ymax: 0.0980},

	// Valley of the Dragon - deep, highly detailed spiral filaments
	{Name: "Valley of the Dragon", Xmin: -0.7400, Xmax: -0.7350, Ymin: 0.1800, Ymax: 0.1850},

	// Minibrot in a Mini-Spiral - self-similar Mandelbrot copy inside a spiral arm
	{Name: "Minibrot in a Mini-Spiral", Xmin: -1.7390, Xmax: -1.7375, Ymin: -0.0235, Ymax: -0.0220},
}

// Landmark is a region converted into viewer coordinates.
type Landmark struct {
	Name    string
	OffsetX float64
	OffsetY float64
	Zoom    float64
}

// Landmarks mirrors regions, precomputed once at startup.
var Landmarks = buildLandmarks(regions)

// buildLandmarks centers the view on each region and picks the zoom that
// makes the kernel's horizontal span (3.5/zoom plane units) match the
// region width.
func buildLandmarks(rs []Region) []Landmark {
	lms := make([]Landmark, len(rs))
	for i, r := range rs {
		lms[i] = Landmark{
			Name:    r.Name,
			OffsetX: (r.Xmin + r.Xmax) / 2,
			OffsetY: (r.Ymin + r.Ymax) / 2,
			Zoom:    3.5 / (r.Xmax - r.Xmin),
		}
	}
	return lms
}
