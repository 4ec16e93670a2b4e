// kernel.go - Escape-time iteration kernel

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

// NumericPrecision selects the floating-point width of the iteration loop.
// Single precision matches the reference renderer; double pushes the usable
// zoom range further before the image degrades into banding.
type NumericPrecision int

const (
	PrecisionSingle NumericPrecision = iota
	PrecisionDouble
)

func (p NumericPrecision) String() string {
	if p == PrecisionDouble {
		return "float64"
	}
	return "float32"
}

// kernelPixel computes the escape-time count for one pixel of the grid.
// Pure function of its arguments; every pixel is independent, so callers
// may evaluate the grid in any order and in parallel.
func kernelPixel(x, y int, p KernelParams) int32 {
	if p.Precision == PrecisionDouble {
		return escapeIter64(x, y, p)
	}
	return escapeIter32(x, y, p)
}

func escapeIter32(x, y int, p KernelParams) int32 {
	scaleX := float32(3.5) / float32(p.Width) / float32(p.Zoom)
	scaleY := float32(2.0) / float32(p.Height) / float32(p.Zoom)

	cx := float32(x-p.Width/2)*scaleX + float32(p.OffsetX)
	cy := float32(y-p.Height/2)*scaleY + float32(p.OffsetY)

	var zx, zy float32
	var iter int32
	for iter < p.MaxIter {
		zx2 := zx * zx
		zy2 := zy * zy
		if zx2+zy2 > 4.0 {
			break
		}
		zx, zy = zx2-zy2+cx, 2*zx*zy+cy
		iter++
	}
	return iter
}

func escapeIter64(x, y int, p KernelParams) int32 {
	scaleX := 3.5 / float64(p.Width) / p.Zoom
	scaleY := 2.0 / float64(p.Height) / p.Zoom

	cx := float64(x-p.Width/2)*scaleX + p.OffsetX
	cy := float64(y-p.Height/2)*scaleY + p.OffsetY

	var zx, zy float64
	var iter int32
	for iter < p.MaxIter {
		zx2 := zx * zx
		zy2 := zy * zy
		if zx2+zy2 > 4.0 {
			break
		}
		zx, zy = zx2-zy2+cx, 2*zx*zy+cy
		iter++
	}
	return iter
}
