// viewport.go - Navigation state for the Mandelbrot viewer

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

// Default view centers on the filament region the reference explorer opens on.
const (
	DefaultOffsetX = -0.7059225866
	DefaultOffsetY = -0.2676520260
	DefaultZoom    = 0.5

	panStep    = 0.1  // plane units per pan at zoom 1
	zoomFactor = 1.05 // multiplicative zoom step
)

// NavAction is one discrete navigation input, already translated from
// whatever key or byte the active video backend received.
type NavAction int

const (
	NavNone NavAction = iota
	NavPanUp
	NavPanDown
	NavPanLeft
	NavPanRight
	NavZoomIn
	NavZoomOut
	NavLandmark1
	NavLandmark2
	NavLandmark3
	NavLandmark4
	NavLandmark5
	NavLandmark6
)

// ViewSnapshot is an immutable copy of the viewport taken at generation
// launch. The generator only ever sees snapshots.
type ViewSnapshot struct {
	OffsetX float64
	OffsetY float64
	Zoom    float64
}

// Viewport holds the mutable navigation state. All access goes through the
// mutex; the display backend mutates it via Apply/SetView and the
// orchestrator reads it via Snapshot/TakeRedraw.
type Viewport struct {
	mu          sync.Mutex
	offsetX     float64
	offsetY     float64
	zoom        float64
	needsRedraw bool
}

// NewViewport returns a viewport at the default location with the redraw
// flag set, so the first poll launches the initial frame.
func NewViewport() *Viewport {
	return &Viewport{
		offsetX:     DefaultOffsetX,
		offsetY:     DefaultOffsetY,
		zoom:        DefaultZoom,
		needsRedraw: true,
	}
}

// Apply performs one navigation action. Transitions that would leave the
// viewport with a non-finite offset or a non-positive or non-finite zoom
// are rejected and do not set the redraw flag. Returns whether the state
// changed.
func (vp *Viewport) Apply(action NavAction) bool {
	vp.mu.Lock()
	defer vp.mu.Unlock()

	x, y, z := vp.offsetX, vp.offsetY, vp.zoom
	switch action {
	case NavPanUp:
		y -= panStep / z
	case NavPanDown:
		y += panStep / z
	case NavPanLeft:
		x -= panStep / z
	case NavPanRight:
		x += panStep / z
	case NavZoomIn:
		z *= zoomFactor
	case NavZoomOut:
		z /= zoomFactor
	case NavLandmark1, NavLandmark2, NavLandmark3, NavLandmark4, NavLandmark5, NavLandmark6:
		lm := Landmarks[int(action-NavLandmark1)]
		x, y, z = lm.OffsetX, lm.OffsetY, lm.Zoom
	default:
		return false
	}

	if !viewValid(x, y, z) {
		return false
	}
	vp.offsetX, vp.offsetY, vp.zoom = x, y, z
	vp.needsRedraw = true
	return true
}

// SetView jumps to an absolute location (clipboard paste, landmark tables).
func (vp *Viewport) SetView(x, y, zoom float64) bool {
	if !viewValid(x, y, zoom) {
		return false
	}
	vp.mu.Lock()
	vp.offsetX, vp.offsetY, vp.zoom = x, y, zoom
	vp.needsRedraw = true
	vp.mu.Unlock()
	return true
}

// Snapshot returns the current location as an immutable value.
func (vp *Viewport) Snapshot() ViewSnapshot {
	vp.mu.Lock()
	defer vp.mu.Unlock()
	return ViewSnapshot{OffsetX: vp.offsetX, OffsetY: vp.offsetY, Zoom: vp.zoom}
}

// TakeRedraw consumes the pending-redraw flag. The flag is consumed even if
// the caller then declines to launch; a request arriving while a job is in
// flight is dropped, not queued.
func (vp *Viewport) TakeRedraw() bool {
	vp.mu.Lock()
	defer vp.mu.Unlock()
	pending := vp.needsRedraw
	vp.needsRedraw = false
	return pending
}

// MarkDirty requests a redraw without moving the viewport.
func (vp *Viewport) MarkDirty() {
	vp.mu.Lock()
	vp.needsRedraw = true
	vp.mu.Unlock()
}

func viewValid(x, y, zoom float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return false
	}
	if zoom <= 0 || math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return false
	}
	return true
}

// formatViewLocation renders a location as "offsetX offsetY zoom", the
// format used for clipboard copy.
func formatViewLocation(s ViewSnapshot) string {
	return fmt.Sprintf("%.12g %.12g %.12g", s.OffsetX, s.OffsetY, s.Zoom)
}

// parseViewLocation parses the clipboard format back into a snapshot.
// Commas are accepted as separators so coordinates copied from other
// explorers mostly paste cleanly.
func parseViewLocation(text string) (ViewSnapshot, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == '\n'
	})
	if len(fields) != 3 {
		return ViewSnapshot{}, fmt.Errorf("expected 3 values, got %d", len(fields))
	}
	vals := make([]float64, 3)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewSnapshot{}, fmt.Errorf("value %q: %w", f, err)
		}
		vals[i] = v
	}
	if !viewValid(vals[0], vals[1], vals[2]) {
		return ViewSnapshot{}, fmt.Errorf("location out of range: %s", text)
	}
	return ViewSnapshot{OffsetX: vals[0], OffsetY: vals[1], Zoom: vals[2]}, nil
}
