package main

import "testing"

func centeredParams(offsetX, offsetY float64, precision NumericPrecision) KernelParams {
	return KernelParams{
		Width:     100,
		Height:    100,
		OffsetX:   offsetX,
		OffsetY:   offsetY,
		Zoom:      1.0,
		MaxIter:   500,
		Precision: precision,
	}
}

func TestKernel_InteriorPointReachesCap(t *testing.T) {
	// Pixel (width/2, height/2) maps exactly to the offset, so c = 0+0i,
	// which never escapes.
	for _, prec := range []NumericPrecision{PrecisionSingle, PrecisionDouble} {
		p := centeredParams(0, 0, prec)
		if got := kernelPixel(50, 50, p); got != p.MaxIter {
			t.Errorf("%s: interior point returned %d, want %d", prec, got, p.MaxIter)
		}
	}
}

func TestKernel_ImmediateEscape(t *testing.T) {
	// c = 3+3i has |c|^2 = 18 > 4 after the first squaring.
	for _, prec := range []NumericPrecision{PrecisionSingle, PrecisionDouble} {
		p := centeredParams(3, 3, prec)
		if got := kernelPixel(50, 50, p); got > 1 {
			t.Errorf("%s: escaping point returned %d, want <= 1", prec, got)
		}
	}
}

func TestKernel_PixelToPlaneMapping(t *testing.T) {
	// At zoom 1 the horizontal span is 3.5 plane units, so the leftmost
	// pixel of a 350-wide grid sits 1.75 left of the offset: c = -1.75+0i,
	// which is inside the set (the tip of the western antenna).
	p := KernelParams{
		Width:   350,
		Height:  100,
		Zoom:    1.0,
		MaxIter: 300,
	}
	if got := kernelPixel(0, 50, p); got != p.MaxIter {
		t.Errorf("pixel (0, height/2) returned %d, want %d", got, p.MaxIter)
	}
}

func TestKernel_IterationCountWithinBounds(t *testing.T) {
	p := KernelParams{
		Width:   64,
		Height:  48,
		OffsetX: DefaultOffsetX,
		OffsetY: DefaultOffsetY,
		Zoom:    DefaultZoom,
		MaxIter: 200,
	}
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			iter := kernelPixel(x, y, p)
			if iter < 0 || iter > p.MaxIter {
				t.Fatalf("pixel (%d,%d) iteration %d out of [0,%d]", x, y, iter, p.MaxIter)
			}
		}
	}
}

func TestKernel_PrecisionsAgreeOnShallowView(t *testing.T) {
	// At shallow zoom the float32 and float64 paths should agree almost
	// everywhere; allow a small band of pixels to differ near the boundary.
	base := KernelParams{
		Width:   80,
		Height:  60,
		OffsetX: -0.5,
		OffsetY: 0,
		Zoom:    1.0,
		MaxIter: 100,
	}
	differing := 0
	for y := 0; y < base.Height; y++ {
		for x := 0; x < base.Width; x++ {
			p32 := base
			p32.Precision = PrecisionSingle
			p64 := base
			p64.Precision = PrecisionDouble
			if kernelPixel(x, y, p32) != kernelPixel(x, y, p64) {
				differing++
			}
		}
	}
	if limit := base.Width * base.Height / 20; differing > limit {
		t.Errorf("%d pixels differ between precisions, limit %d", differing, limit)
	}
}
