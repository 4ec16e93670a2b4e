// compute_backend_pool.go - Worker-pool compute backend

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// PoolBackend dispatches the escape-time kernel across a pool of host CPU
// workers. Each dispatch owns a fresh iteration grid, so concurrent
// dispatches never share memory; the single-flight discipline above it is a
// policy choice, not a requirement of this backend.
type PoolBackend struct {
	workers int

	mu       sync.Mutex
	closed   bool
	pending  map[uint64]struct{}
	nextID   uint64
	dispatch atomic.Uint64 // total dispatches, for diagnostics
}

// NewPoolBackend creates a pool backend with the given worker count.
// workers <= 0 selects one worker per logical CPU.
func NewPoolBackend(workers int) *PoolBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &PoolBackend{
		workers: workers,
		pending: make(map[uint64]struct{}),
	}
}

// Dispatch runs the kernel over the full width×height grid and returns a
// handle to the finished iteration buffer. Rows are sliced into one chunk
// per worker; there is no cross-pixel dependency, so chunk order is
// irrelevant.
func (pb *PoolBackend) Dispatch(params KernelParams) (DeviceBuffer, error) {
	if err := validateKernelParams(params); err != nil {
		return DeviceBuffer{}, err
	}

	pb.mu.Lock()
	if pb.closed {
		pb.mu.Unlock()
		return DeviceBuffer{}, &ComputeError{Operation: "dispatch", Details: "backend is closed"}
	}
	pb.nextID++
	id := pb.nextID
	pb.pending[id] = struct{}{}
	pb.mu.Unlock()

	iters := make([]int32, params.Width*params.Height)

	var g errgroup.Group
	g.SetLimit(pb.workers)
	rowsPerChunk := (params.Height + pb.workers - 1) / pb.workers
	for y0 := 0; y0 < params.Height; y0 += rowsPerChunk {
		y0 := y0
		y1 := min(y0+rowsPerChunk, params.Height)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				row := iters[y*params.Width : (y+1)*params.Width]
				for x := range row {
					row[x] = kernelPixel(x, y, params)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		pb.mu.Lock()
		delete(pb.pending, id)
		pb.mu.Unlock()
		return DeviceBuffer{}, &ComputeError{Operation: "dispatch", Details: "kernel execution", Err: err}
	}

	pb.dispatch.Add(1)
	return DeviceBuffer{id: id, width: params.Width, height: params.Height, iters: iters}, nil
}

// Retrieve hands the iteration grid back to the host. Each handle can be
// retrieved exactly once; a second retrieve, or a handle from another
// backend, is an error rather than silent garbage.
func (pb *PoolBackend) Retrieve(buf DeviceBuffer) ([]int32, error) {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if pb.closed {
		return nil, &ComputeError{Operation: "retrieve", Details: "backend is closed"}
	}
	if _, ok := pb.pending[buf.id]; !ok {
		return nil, &ComputeError{
			Operation: "retrieve",
			Details:   fmt.Sprintf("unknown or already retrieved device buffer %d", buf.id),
		}
	}
	delete(pb.pending, buf.id)

	if buf.iters == nil || len(buf.iters) != buf.width*buf.height {
		return nil, &ComputeError{Operation: "retrieve", Details: "device buffer has no backing storage"}
	}
	return buf.iters, nil
}

// Close releases the backend. Outstanding handles become unretrievable.
func (pb *PoolBackend) Close() error {
	pb.mu.Lock()
	pb.closed = true
	pb.pending = make(map[uint64]struct{})
	pb.mu.Unlock()
	return nil
}

// DispatchCount reports how many dispatches completed successfully.
func (pb *PoolBackend) DispatchCount() uint64 {
	return pb.dispatch.Load()
}

func validateKernelParams(p KernelParams) error {
	if p.Width <= 0 || p.Height <= 0 {
		return &ComputeError{
			Operation: "dispatch",
			Details:   fmt.Sprintf("invalid grid size %dx%d", p.Width, p.Height),
		}
	}
	if p.MaxIter <= 0 {
		return &ComputeError{
			Operation: "dispatch",
			Details:   fmt.Sprintf("invalid iteration cap %d", p.MaxIter),
		}
	}
	if p.Zoom <= 0 {
		return &ComputeError{
			Operation: "dispatch",
			Details:   fmt.Sprintf("invalid zoom %g", p.Zoom),
		}
	}
	return nil
}
