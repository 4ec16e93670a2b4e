// video_backend_terminal.go - ANSI truecolor terminal backend

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

// TerminalOutput renders frames into an ANSI truecolor terminal using "▀"
// half-blocks, two vertical pixels per character cell. Stdin is switched to
// raw mode for the lifetime of the backend so single key presses arrive
// without echo or line buffering; Stop restores it.
type TerminalOutput struct {
	mu          sync.Mutex
	started     bool
	config      DisplayConfig
	frame       []byte // RGB, width*height*3
	frameCount  atomic.Uint64
	refreshRate int

	vsyncChan  chan struct{}
	stopCh     chan struct{}
	done       chan struct{}
	renderDone chan struct{}
	stopOnce   sync.Once

	actionHandler  func(NavAction)
	statusProvider func() ViewerStatus

	fd           int
	oldTermState *term.State
}

func NewTerminalOutput() (VideoOutput, error) {
	return &TerminalOutput{
		config:      DisplayConfig{Width: 800, Height: 600, Scale: 1, RefreshRate: 30},
		refreshRate: 30,
		vsyncChan:   make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		done:        make(chan struct{}),
	}, nil
}

func (t *TerminalOutput) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return nil
	}

	t.fd = int(os.Stdin.Fd())
	if !term.IsTerminal(t.fd) {
		return &VideoError{Operation: "initialization", Details: "stdin is not a terminal"}
	}

	// Raw mode disables OS-level echo and line buffering; key bytes arrive
	// one at a time.
	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return &VideoError{Operation: "initialization", Details: "failed to set raw mode", Err: err}
	}
	t.oldTermState = oldState
	t.started = true
	t.renderDone = make(chan struct{})

	fmt.Print("\x1b[?25l\x1b[2J") // hide cursor, clear screen

	go t.inputLoop()
	go t.renderLoop()
	return nil
}

func (t *TerminalOutput) Stop() error {
	t.stopOnce.Do(func() {
		close(t.stopCh)

		// Wait for the render goroutine to finish any in-progress write
		// before restoring the terminal, so the cursor-restore sequence
		// cannot interleave with a half-printed frame.
		t.mu.Lock()
		renderDone := t.renderDone
		t.started = false
		t.mu.Unlock()
		if renderDone != nil {
			<-renderDone
		}

		t.mu.Lock()
		if t.oldTermState != nil {
			_ = term.Restore(t.fd, t.oldTermState)
			t.oldTermState = nil
		}
		t.mu.Unlock()
		fmt.Print("\x1b[?25h\x1b[0m\r\n") // show cursor, reset attributes
		close(t.done)
	})
	return nil
}

func (t *TerminalOutput) Close() error {
	return t.Stop()
}

func (t *TerminalOutput) IsStarted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

func (t *TerminalOutput) Done() <-chan struct{} {
	return t.done
}

func (t *TerminalOutput) SetDisplayConfig(config DisplayConfig) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if config.Width > 0 {
		t.config.Width = config.Width
	}
	if config.Height > 0 {
		t.config.Height = config.Height
	}
	if config.RefreshRate > 0 {
		t.config.RefreshRate = config.RefreshRate
		t.refreshRate = config.RefreshRate
	}
	return nil
}

func (t *TerminalOutput) GetDisplayConfig() DisplayConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.config
}

func (t *TerminalOutput) UpdateFrame(rgb []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	want := t.config.Width * t.config.Height * 3
	if len(rgb) != want {
		return &VideoError{
			Operation: "frame update",
			Details:   fmt.Sprintf("got %d bytes, want %d", len(rgb), want),
		}
	}
	if len(t.frame) != want {
		t.frame = make([]byte, want)
	}
	copy(t.frame, rgb)
	return nil
}

func (t *TerminalOutput) SetActionHandler(fn func(NavAction)) {
	t.mu.Lock()
	t.actionHandler = fn
	t.mu.Unlock()
}

func (t *TerminalOutput) SetStatusProvider(fn func() ViewerStatus) {
	t.mu.Lock()
	t.statusProvider = fn
	t.mu.Unlock()
}

func (t *TerminalOutput) WaitForVSync() error {
	select {
	case <-t.vsyncChan:
		return nil
	case <-t.done:
		return nil
	}
}

func (t *TerminalOutput) GetFrameCount() uint64 {
	return t.frameCount.Load()
}

func (t *TerminalOutput) GetRefreshRate() int {
	return t.refreshRate
}

func (t *TerminalOutput) emitAction(action NavAction) {
	t.mu.Lock()
	handler := t.actionHandler
	t.mu.Unlock()
	if handler != nil {
		handler(action)
	}
}

// inputLoop reads raw stdin bytes and translates them to navigation
// actions. Arrow keys arrive as ESC [ A..D sequences; a small state machine
// tracks the prefix. The read blocks, so the goroutine only exits once a
// final byte arrives after Stop; the process is quitting at that point
// anyway.
func (t *TerminalOutput) inputLoop() {
	buf := make([]byte, 1)
	escState := 0
	for {
		select {
		case <-t.stopCh:
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		b := buf[0]

		switch escState {
		case 1:
			if b == '[' {
				escState = 2
				continue
			}
			escState = 0
		case 2:
			escState = 0
			switch b {
			case 'A':
				t.emitAction(NavPanUp)
			case 'B':
				t.emitAction(NavPanDown)
			case 'C':
				t.emitAction(NavPanRight)
			case 'D':
				t.emitAction(NavPanLeft)
			}
			continue
		}

		switch b {
		case 0x1B:
			escState = 1
		case 'w', 'W':
			t.emitAction(NavPanUp)
		case 's', 'S':
			t.emitAction(NavPanDown)
		case 'a', 'A':
			t.emitAction(NavPanLeft)
		case 'd', 'D':
			t.emitAction(NavPanRight)
		case 'e', 'E':
			t.emitAction(NavZoomIn)
		case 'q', 'Q':
			t.emitAction(NavZoomOut)
		case '1', '2', '3', '4', '5', '6':
			t.emitAction(NavLandmark1 + NavAction(b-'1'))
		case 'x', 'X', 0x03: // x or Ctrl-C
			t.Stop()
			return
		}
	}
}

func (t *TerminalOutput) renderLoop() {
	defer close(t.renderDone)
	interval := time.Second / time.Duration(t.refreshRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			t.renderOnce()
			t.frameCount.Add(1)
			select {
			case t.vsyncChan <- struct{}{}:
			default:
			}
		}
	}
}

func (t *TerminalOutput) renderOnce() {
	frame, width, height, statusProvider := t.snapshotFrame()
	if frame == nil {
		return
	}

	cols, rows, err := term.GetSize(t.fd)
	if err != nil || cols < 2 || rows < 2 {
		return
	}
	rows-- // bottom row is the status line

	var sb strings.Builder
	sb.Grow(cols * rows * 24)
	sb.WriteString("\x1b[H")
	renderHalfBlocks(&sb, frame, width, height, cols, rows)

	if statusProvider != nil {
		s := statusProvider()
		gen := ""
		if s.Generating {
			gen = "  GEN"
		}
		status := fmt.Sprintf("X %.10f  Y %.10f  ZOOM %.6g  ITER %d%s  [wasd pan, e/q zoom, 1-6 landmarks, x quit]",
			s.View.OffsetX, s.View.OffsetY, s.View.Zoom, s.MaxIter, gen)
		if len(status) > cols {
			status = status[:cols]
		}
		sb.WriteString("\x1b[0m\x1b[2K")
		sb.WriteString(status)
	}
	fmt.Print(sb.String())
}

// snapshotFrame copies the frame bytes under the lock so rendering never
// reads memory UpdateFrame is concurrently overwriting.
func (t *TerminalOutput) snapshotFrame() ([]byte, int, int, func() ViewerStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.frame == nil {
		return nil, 0, 0, nil
	}
	frame := make([]byte, len(t.frame))
	copy(frame, t.frame)
	return frame, t.config.Width, t.config.Height, t.statusProvider
}

// renderHalfBlocks downsamples an RGB frame onto a cols×rows cell grid,
// packing two vertical pixels per cell via the upper-half-block glyph with
// the top pixel as foreground and the bottom as background.
func renderHalfBlocks(sb *strings.Builder, frame []byte, width, height, cols, rows int) {
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			srcX := col * width / cols
			topY := (row * 2) * height / (rows * 2)
			botY := (row*2 + 1) * height / (rows * 2)

			ti := (topY*width + srcX) * 3
			bi := (botY*width + srcX) * 3
			fmt.Fprintf(sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				frame[ti], frame[ti+1], frame[ti+2],
				frame[bi], frame[bi+1], frame[bi+2])
		}
		sb.WriteString("\x1b[0m\r\n")
	}
}
