// Package sdl implements a frontend that uses SDL2 for the window, the
// keyboard and the tone. All functions have to be called from the main OS
// thread.
package sdl

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/frontend/keymap"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

// DefaultScale is the size of a CHIP-8 pixel on the screen.
const DefaultScale = 16

// Frontend renders the framebuffer into a SDL window.
type Frontend struct {
	logger   *log.Logger
	window   *sdl.Window
	renderer *sdl.Renderer
	audio    *audio
	scale    int32

	pressed [vm.KeyCount]bool
	rects   []sdl.Rect
}

// New opens the window and the audio device. An unavailable audio device
// is not fatal, the emulator runs without a tone in that case.
func New(logger *log.Logger, title string, scale int) (*Frontend, error) {
	if scale <= 0 {
		scale = DefaultScale
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(vm.Width*scale), int32(vm.Height*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	f := &Frontend{
		logger:   logger,
		window:   window,
		renderer: renderer,
		scale:    int32(scale),
		rects:    make([]sdl.Rect, 0, vm.Width*vm.Height),
	}

	f.audio, err = openAudio()
	if err != nil {
		logger.Warn("Audio is not available", log.Err(err))
	}

	if err := f.Present(&vm.Framebuffer{}); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// Poll processes the pending SDL events and returns the keypad state.
// Keys released since the last poll are reported once.
func (f *Frontend) Poll() (vm.Keys, bool) {
	var keys vm.Keys
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true

		case *sdl.KeyboardEvent:
			if e.Keysym.Sym == sdl.K_ESCAPE {
				quit = true
				continue
			}

			key, ok := keymap.Lookup(rune(e.Keysym.Sym))
			if !ok {
				continue
			}
			switch e.Type {
			case sdl.KEYDOWN:
				f.pressed[key] = true
			case sdl.KEYUP:
				f.pressed[key] = false
				keys.Released[key] = true
			}
		}
	}

	keys.Pressed = f.pressed
	if f.audio != nil {
		if err := f.audio.fill(); err != nil {
			f.logger.Debug("Filling audio queue failed", log.Err(err))
		}
	}
	return keys, quit
}

// Present draws all set pixels of the framebuffer.
func (f *Frontend) Present(fb *vm.Framebuffer) error {
	f.rects = f.rects[:0]
	for y := range vm.Height {
		for x := range vm.Width {
			if !fb.Pixel(x, y) {
				continue
			}
			f.rects = append(f.rects, sdl.Rect{
				X: int32(x) * f.scale,
				Y: int32(y) * f.scale,
				W: f.scale,
				H: f.scale,
			})
		}
	}

	if err := f.renderer.SetDrawColor(0, 0, 0, 0xFF); err != nil {
		return fmt.Errorf("setting background color: %w", err)
	}
	if err := f.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if len(f.rects) > 0 {
		if err := f.renderer.SetDrawColor(0xFF, 0xFF, 0xFF, 0xFF); err != nil {
			return fmt.Errorf("setting pixel color: %w", err)
		}
		if err := f.renderer.FillRects(f.rects); err != nil {
			return fmt.Errorf("drawing pixels: %w", err)
		}
	}
	f.renderer.Present()
	return nil
}

// Tone starts or stops the square wave.
func (f *Frontend) Tone(on bool) {
	if f.audio != nil {
		if err := f.audio.enable(on); err != nil {
			f.logger.Debug("Starting tone failed", log.Err(err))
		}
	}
}

// Close releases all SDL resources.
func (f *Frontend) Close() error {
	if f.audio != nil {
		f.audio.close()
	}
	if err := f.renderer.Destroy(); err != nil {
		f.logger.Error("Destroying renderer failed", log.Err(err))
	}
	if err := f.window.Destroy(); err != nil {
		return fmt.Errorf("destroying window: %w", err)
	}
	sdl.Quit()
	return nil
}
