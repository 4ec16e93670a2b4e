// palette.go - Iteration-count to RGB palette table

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

// RGB is one display-ready palette entry.
type RGB struct {
	R, G, B uint8
}

// buildPaletteTable precomputes the smooth polynomial color ramp for every
// iteration count in [0, maxIter]. The polynomial coefficients can push a
// channel slightly outside [0,255] at the ends of the ramp; values are
// clamped, never wrapped.
func buildPaletteTable(maxIter int) []RGB {
	table := make([]RGB, maxIter+1)
	for iter := 0; iter <= maxIter; iter++ {
		t := float64(iter) / float64(maxIter)
		table[iter] = RGB{
			R: clampChannel(9 * (1 - t) * t * t * t * 255),
			G: clampChannel(15 * (1 - t) * (1 - t) * t * t * 255),
			B: clampChannel(8.5 * (1 - t) * (1 - t) * (1 - t) * t * 255),
		}
	}
	return table
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
