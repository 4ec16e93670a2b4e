// video_interface.go - Display backend interface for Mandelbrot GPU

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

import "fmt"

// VideoError provides detailed error context for video operations
type VideoError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("video %s failed: %s", e.Operation, e.Details)
}

func (e *VideoError) Unwrap() error {
	return e.Err
}

// DisplayConfig contains backend-independent display configuration
type DisplayConfig struct {
	Width       int
	Height      int
	Scale       int // Integer scaling factor for output
	RefreshRate int // Target refresh rate in Hz
	VSync       bool
	Fullscreen  bool
}

// ViewerStatus is what a backend may render into its status surface.
type ViewerStatus struct {
	View       ViewSnapshot
	MaxIter    int32
	Precision  NumericPrecision
	Generating bool
	Frames     uint64 // generation jobs launched so far
}

// VideoOutput defines the minimal interface that display backends must
// implement. The display loop pushes complete RGB frames; backends own any
// conversion and synchronization needed for presentation.
type VideoOutput interface {
	// Lifecycle management
	Start() error
	Stop() error
	Close() error
	IsStarted() bool
	Done() <-chan struct{}

	// Core display operations
	SetDisplayConfig(config DisplayConfig) error
	GetDisplayConfig() DisplayConfig
	UpdateFrame(rgb []byte) error // width*height*3 bytes, row-major

	// Input: backends translate their own key events into NavActions
	SetActionHandler(fn func(NavAction))
	SetStatusProvider(fn func() ViewerStatus)

	// Timing and synchronization
	WaitForVSync() error
	GetFrameCount() uint64
	GetRefreshRate() int
}

// LocationCapable is implemented by backends that can move viewer
// coordinates through the system clipboard.
type LocationCapable interface {
	SetLocationProvider(fn func() ViewSnapshot)
	SetLocationSink(fn func(ViewSnapshot) bool)
}

// Predefined video backend types
const (
	VIDEO_BACKEND_EBITEN   = iota // Pure Go Ebiten backend
	VIDEO_BACKEND_TERMINAL        // ANSI truecolor terminal backend
)

// NewVideoOutput creates a new video output instance using the specified backend
func NewVideoOutput(backend int) (VideoOutput, error) {
	switch backend {
	case VIDEO_BACKEND_EBITEN:
		return NewEbitenOutput()
	case VIDEO_BACKEND_TERMINAL:
		return NewTerminalOutput()
	default:
		return nil, &VideoError{
			Operation: "initialization",
			Details:   fmt.Sprintf("unknown video backend type: %d", backend),
		}
	}
}

// ClampScale keeps the integer window scale within a sane range.
func ClampScale(scale int) int {
	if scale < 1 {
		return 1
	}
	if scale > 8 {
		return 8
	}
	return scale
}
