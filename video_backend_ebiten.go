//go:build !headless

// video_backend_ebiten.go - Ebiten video backend for Mandelbrot GPU

/*
Mandelbrot GPU - interactive escape-time fractal explorer

(c) 2024 - 2026 The Mandelbrot-GPU Authors
https://github.com/aspasswrd/Mandelbrot-GPU
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

type EbitenOutput struct {
	running     bool
	window      *ebiten.Image
	width       int
	height      int
	fullscreen  bool
	scale       int
	windowedW   int
	windowedH   int
	frameBuffer []byte // RGBA, width*height*4
	bufferMutex sync.RWMutex
	frameCount  atomic.Uint64
	refreshRate int
	vsyncChan   chan struct{}
	done        chan struct{}

	actionHandler  func(NavAction)
	statusProvider func() ViewerStatus
	locProvider    func() ViewSnapshot
	locSink        func(ViewSnapshot) bool

	clipboardOnce sync.Once
	clipboardOK   bool
	showStatusBar bool
}

func NewEbitenOutput() (VideoOutput, error) {
	return &EbitenOutput{
		width:         800,
		height:        600,
		scale:         1,
		windowedW:     800,
		windowedH:     600,
		frameBuffer:   make([]byte, 800*600*4),
		refreshRate:   60,
		vsyncChan:     make(chan struct{}, 1),
		done:          make(chan struct{}),
		showStatusBar: true,
	}, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running {
		return nil
	}
	eo.bufferMutex.Lock()
	eo.done = make(chan struct{})
	eo.bufferMutex.Unlock()
	eo.running = true
	ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
	ebiten.SetWindowTitle("Mandelbrot GPU")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	if eo.fullscreen {
		ebiten.SetFullscreen(true)
	}

	go func() {
		defer func() {
			eo.running = false
			eo.bufferMutex.RLock()
			done := eo.done
			eo.bufferMutex.RUnlock()
			select {
			case <-done:
			default:
				close(done)
			}
		}()
		if err := ebiten.RunGame(eo); err != nil && err != ebiten.Termination {
			fmt.Printf("Ebiten error: %v\n", err)
		}
	}()

	// Wait for first Draw call to ensure Ebiten is ready
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) Stop() error {
	eo.running = false
	return nil
}

func (eo *EbitenOutput) Close() error {
	return eo.Stop()
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running
}

func (eo *EbitenOutput) Done() <-chan struct{} {
	eo.bufferMutex.RLock()
	done := eo.done
	eo.bufferMutex.RUnlock()
	return done
}

// UpdateFrame accepts a generator RGB buffer and expands it into the
// backend's RGBA frame buffer under the buffer mutex.
func (eo *EbitenOutput) UpdateFrame(rgb []byte) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()

	if len(rgb) != eo.width*eo.height*3 {
		return &VideoError{
			Operation: "frame update",
			Details:   fmt.Sprintf("got %d bytes, want %d", len(rgb), eo.width*eo.height*3),
		}
	}
	for i := 0; i < eo.width*eo.height; i++ {
		eo.frameBuffer[i*4] = rgb[i*3]
		eo.frameBuffer[i*4+1] = rgb[i*3+1]
		eo.frameBuffer[i*4+2] = rgb[i*3+2]
		eo.frameBuffer[i*4+3] = 0xFF
	}
	return nil
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()

	if config.Width > 0 {
		eo.width = config.Width
	}
	if config.Height > 0 {
		eo.height = config.Height
	}
	eo.scale = ClampScale(config.Scale)
	if config.RefreshRate > 0 {
		eo.refreshRate = config.RefreshRate
	}

	newSize := eo.width * eo.height * 4
	if len(eo.frameBuffer) != newSize {
		eo.frameBuffer = make([]byte, newSize)
	}

	eo.windowedW = eo.width * eo.scale
	eo.windowedH = eo.height * eo.scale
	eo.fullscreen = config.Fullscreen
	ebiten.SetFullscreen(eo.fullscreen)
	if !eo.fullscreen {
		ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
	}
	if eo.window != nil {
		eo.window.Dispose()
		eo.window = nil
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	return DisplayConfig{
		Width:       eo.width,
		Height:      eo.height,
		Scale:       eo.scale,
		RefreshRate: eo.refreshRate,
		VSync:       true,
		Fullscreen:  eo.fullscreen,
	}
}

func (eo *EbitenOutput) SetActionHandler(fn func(NavAction)) {
	eo.bufferMutex.Lock()
	eo.actionHandler = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) SetStatusProvider(fn func() ViewerStatus) {
	eo.bufferMutex.Lock()
	eo.statusProvider = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) SetLocationProvider(fn func() ViewSnapshot) {
	eo.bufferMutex.Lock()
	eo.locProvider = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) SetLocationSink(fn func(ViewSnapshot) bool) {
	eo.bufferMutex.Lock()
	eo.locSink = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) WaitForVSync() error {
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	return eo.frameCount.Load()
}

func (eo *EbitenOutput) GetRefreshRate() int {
	return eo.refreshRate
}

func (eo *EbitenOutput) emitAction(action NavAction) {
	eo.bufferMutex.RLock()
	handler := eo.actionHandler
	eo.bufferMutex.RUnlock()
	if handler != nil {
		handler(action)
	}
}

// navKeys maps pan/zoom keys to actions. WASD and the arrow keys pan, E/Q
// zoom; all repeat while held.
var navKeys = []struct {
	key    ebiten.Key
	action NavAction
}{
	{ebiten.KeyW, NavPanUp},
	{ebiten.KeyArrowUp, NavPanUp},
	{ebiten.KeyS, NavPanDown},
	{ebiten.KeyArrowDown, NavPanDown},
	{ebiten.KeyA, NavPanLeft},
	{ebiten.KeyArrowLeft, NavPanLeft},
	{ebiten.KeyD, NavPanRight},
	{ebiten.KeyArrowRight, NavPanRight},
	{ebiten.KeyE, NavZoomIn},
	{ebiten.KeyQ, NavZoomOut},
}

var landmarkKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

// repeatingKeyPressed fires on the initial press, then repeats while held.
func repeatingKeyPressed(key ebiten.Key) bool {
	const (
		delay    = 20 // ticks before auto-repeat kicks in
		interval = 3  // ticks between repeats
	)
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= delay && (d-delay)%interval == 0
}

func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if !eo.running {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.bufferMutex.Lock()
		eo.fullscreen = !eo.fullscreen
		ebiten.SetFullscreen(eo.fullscreen)
		if !eo.fullscreen {
			ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
		}
		eo.bufferMutex.Unlock()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		eo.bufferMutex.Lock()
		eo.showStatusBar = !eo.showStatusBar
		eo.bufferMutex.Unlock()
	}
	eo.handleKeyboardInput()
	return nil
}

func (eo *EbitenOutput) handleKeyboardInput() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	// Ctrl+Shift+C copies the current location, Ctrl+Shift+V jumps to a
	// pasted one.
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		eo.handleClipboardCopy()
		return
	}
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		eo.handleClipboardPaste()
		return
	}

	for _, nk := range navKeys {
		if repeatingKeyPressed(nk.key) {
			eo.emitAction(nk.action)
		}
	}
	for i, key := range landmarkKeys {
		if inpututil.IsKeyJustPressed(key) {
			eo.emitAction(NavLandmark1 + NavAction(i))
		}
	}
}

func (eo *EbitenOutput) initClipboard() bool {
	eo.clipboardOnce.Do(func() {
		eo.clipboardOK = clipboard.Init() == nil
	})
	return eo.clipboardOK
}

func (eo *EbitenOutput) handleClipboardCopy() {
	eo.bufferMutex.RLock()
	provider := eo.locProvider
	eo.bufferMutex.RUnlock()
	if provider == nil || !eo.initClipboard() {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(formatViewLocation(provider())))
}

func (eo *EbitenOutput) handleClipboardPaste() {
	eo.bufferMutex.RLock()
	sink := eo.locSink
	eo.bufferMutex.RUnlock()
	if sink == nil || !eo.initClipboard() {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	snap, err := parseViewLocation(string(data))
	if err != nil {
		return
	}
	sink(snap)
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.width, eo.height)
	}

	eo.bufferMutex.RLock()
	eo.window.WritePixels(eo.frameBuffer)
	showStatusBar := eo.showStatusBar
	statusProvider := eo.statusProvider
	eo.bufferMutex.RUnlock()
	screen.DrawImage(eo.window, nil)
	if showStatusBar && statusProvider != nil {
		eo.drawStatusBar(screen, statusProvider())
	}

	eo.frameCount.Add(1)
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	return eo.width, eo.height
}

func (eo *EbitenOutput) drawStatusBar(screen *ebiten.Image, status ViewerStatus) {
	barHeight := 31
	if barHeight >= eo.height {
		return
	}
	y := eo.height - barHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(eo.width), float64(barHeight), color.RGBA{0, 0, 0, 180})

	face := basicfont.Face7x13
	textColor := color.RGBA{190, 190, 190, 255}
	genColor := color.RGBA{0, 220, 90, 255}

	loc := fmt.Sprintf("X %.10f  Y %.10f  ZOOM %.6g", status.View.OffsetX, status.View.OffsetY, status.View.Zoom)
	text.Draw(screen, loc, face, 6, y+13, textColor)

	info := fmt.Sprintf("ITER %d  FP %s  FRAMES %d  FPS %.0f", status.MaxIter, status.Precision, status.Frames, ebiten.CurrentFPS())
	text.Draw(screen, info, face, 6, y+26, textColor)
	if status.Generating {
		text.Draw(screen, "GEN", face, 6+text.BoundString(face, info).Dx()+10, y+26, genColor)
	}

	legend := "WASD Pan  E/Q Zoom  1-6 Landmarks  F11 Fullscreen  F12 Status  Esc Quit"
	legendW := text.BoundString(face, legend).Dx()
	legendX := eo.width - legendW - 6
	if legendX < 6 {
		legendX = 6
	}
	text.Draw(screen, legend, face, legendX, y+13, color.RGBA{160, 160, 160, 255})
}
