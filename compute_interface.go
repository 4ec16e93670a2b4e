// compute_interface.go - Compute backend boundary for kernel dispatch

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

import "fmt"

// ComputeError provides detailed error context for compute operations
type ComputeError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *ComputeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compute %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("compute %s failed: %s", e.Operation, e.Details)
}

func (e *ComputeError) Unwrap() error {
	return e.Err
}

// KernelParams are the per-dispatch arguments of the escape-time kernel.
// The kernel is stateless across dispatches; everything it needs travels in
// here.
type KernelParams struct {
	Width, Height    int
	OffsetX, OffsetY float64
	Zoom             float64
	MaxIter          int32
	Precision        NumericPrecision
}

// DeviceBuffer is an opaque handle to one dispatch's iteration grid. It is
// only valid for a single Retrieve on the backend that produced it.
type DeviceBuffer struct {
	id     uint64
	width  int
	height int
	iters  []int32
}

// ComputeBackend is the boundary the frame generator drives: a parallel 2D
// dispatch of the kernel followed by retrieval of the host-readable result.
type ComputeBackend interface {
	Dispatch(params KernelParams) (DeviceBuffer, error)
	Retrieve(buf DeviceBuffer) ([]int32, error)
	Close() error
}

// Predefined compute backend types
const (
	COMPUTE_BACKEND_POOL   = iota // Worker-pool dispatch across host CPUs
	COMPUTE_BACKEND_VULKAN        // Vulkan compute backend
)

// NewComputeBackend creates a compute backend of the given type.
func NewComputeBackend(backend int) (ComputeBackend, error) {
	switch backend {
	case COMPUTE_BACKEND_POOL:
		return NewPoolBackend(0), nil
	case COMPUTE_BACKEND_VULKAN:
		return nil, &ComputeError{
			Operation: "initialization",
			Details:   "Vulkan compute backend not supported in this build",
		}
	default:
		return nil, &ComputeError{
			Operation: "initialization",
			Details:   fmt.Sprintf("unknown compute backend type: %d", backend),
		}
	}
}
