// orchestrator.go - Single-flight generation orchestration

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

import (
	"log"
	"sync/atomic"
)

// frameProducer is what the orchestrator needs from a generator.
type frameProducer interface {
	Generate(snap ViewSnapshot) ([]byte, error)
}

type genResult struct {
	img []byte
	err error
}

// Orchestrator runs at most one frame generation at a time, off the display
// loop. Completed frames are published by atomic pointer swap, so the
// display loop never reads a buffer a generation job may still be writing.
// Completion travels over a result channel rather than a bare shared flag;
// a failed job logs, publishes nothing, and returns the orchestrator to
// idle so the next navigation event retries.
//
// A redraw request that arrives while a job is in flight is consumed and
// dropped, not queued. Rapid navigation therefore coalesces into fewer
// frames; only the latest viewport matters for display.
type Orchestrator struct {
	gen      frameProducer
	vp       *Viewport
	inFlight atomic.Bool
	results  chan genResult
	frame    atomic.Pointer[[]byte]

	launches atomic.Uint64
	failures atomic.Uint64
}

func NewOrchestrator(gen frameProducer, vp *Viewport) *Orchestrator {
	return &Orchestrator{
		gen:     gen,
		vp:      vp,
		results: make(chan genResult, 1),
	}
}

// Poll advances the state machine by one display-loop iteration: first
// observe a completed job, then decide whether to launch a new one. Called
// from the display loop only; never blocks.
func (o *Orchestrator) Poll() {
	select {
	case res := <-o.results:
		if res.err != nil {
			o.failures.Add(1)
			log.Printf("frame generation failed: %v", res.err)
		} else {
			o.frame.Store(&res.img)
		}
		o.inFlight.Store(false)
	default:
	}

	if !o.vp.TakeRedraw() {
		return
	}
	if !o.inFlight.CompareAndSwap(false, true) {
		// A job is running; this request is dropped.
		return
	}

	snap := o.vp.Snapshot()
	o.launches.Add(1)
	go func() {
		img, err := o.gen.Generate(snap)
		o.results <- genResult{img: img, err: err}
	}()
}

// Frame returns the most recently published frame, or nil before the first
// generation completes. The returned buffer is immutable once published.
func (o *Orchestrator) Frame() []byte {
	p := o.frame.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Generating reports whether a job is currently in flight.
func (o *Orchestrator) Generating() bool {
	return o.inFlight.Load()
}

// Launches returns how many generation jobs have been started.
func (o *Orchestrator) Launches() uint64 {
	return o.launches.Load()
}

// Failures returns how many generation jobs ended in error.
func (o *Orchestrator) Failures() uint64 {
	return o.failures.Load()
}
