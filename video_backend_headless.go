//go:build headless

// video_backend_headless.go - No-op video backend for display-free builds

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

import (
	"sync"
	"sync/atomic"
)

type HeadlessVideoOutput struct {
	started    bool
	config     DisplayConfig
	frameCount uint64

	mu            sync.Mutex
	done          chan struct{}
	stopOnce      sync.Once
	actionHandler func(NavAction)
}

func NewEbitenOutput() (VideoOutput, error) {
	return &HeadlessVideoOutput{
		config: DisplayConfig{Width: 800, Height: 600, Scale: 1, RefreshRate: 60},
		done:   make(chan struct{}),
	}, nil
}

func (h *HeadlessVideoOutput) Start() error {
	h.started = true
	return nil
}

func (h *HeadlessVideoOutput) Stop() error {
	h.started = false
	h.stopOnce.Do(func() { close(h.done) })
	return nil
}

func (h *HeadlessVideoOutput) Close() error {
	return h.Stop()
}

func (h *HeadlessVideoOutput) IsStarted() bool {
	return h.started
}

func (h *HeadlessVideoOutput) Done() <-chan struct{} {
	return h.done
}

func (h *HeadlessVideoOutput) SetDisplayConfig(config DisplayConfig) error {
	h.config = config
	return nil
}

func (h *HeadlessVideoOutput) GetDisplayConfig() DisplayConfig {
	return h.config
}

func (h *HeadlessVideoOutput) UpdateFrame(rgb []byte) error {
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

func (h *HeadlessVideoOutput) SetActionHandler(fn func(NavAction)) {
	h.mu.Lock()
	h.actionHandler = fn
	h.mu.Unlock()
}

func (h *HeadlessVideoOutput) SetStatusProvider(fn func() ViewerStatus) {}

// InjectAction feeds a navigation action as though a key had been pressed.
// Test hook; real backends translate their own input events.
func (h *HeadlessVideoOutput) InjectAction(action NavAction) {
	h.mu.Lock()
	handler := h.actionHandler
	h.mu.Unlock()
	if handler != nil {
		handler(action)
	}
}

func (h *HeadlessVideoOutput) WaitForVSync() error {
	return nil
}

func (h *HeadlessVideoOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *HeadlessVideoOutput) GetRefreshRate() int {
	if h.config.RefreshRate == 0 {
		return 60
	}
	return h.config.RefreshRate
}
