// Package headless implements a frontend without any output device. It keeps
// the last presented framebuffer, which can be dumped as text after the run.
package headless

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/vm"
)

// Frontend is a frontend without input and output devices.
type Frontend struct {
	screen   vm.Framebuffer
	presents int
	toneOn   bool
}

// New returns a new headless frontend.
func New() *Frontend {
	return &Frontend{}
}

// Poll returns no pressed keys, a headless run ends by the frame limit.
func (f *Frontend) Poll() (vm.Keys, bool) {
	return vm.Keys{}, false
}

// Present stores a copy of the framebuffer.
func (f *Frontend) Present(fb *vm.Framebuffer) error {
	f.screen = *fb
	f.presents++
	return nil
}

// Tone records the tone state.
func (f *Frontend) Tone(on bool) {
	f.toneOn = on
}

// Close releases no resources.
func (f *Frontend) Close() error {
	return nil
}

// Presents returns the number of presented frames.
func (f *Frontend) Presents() int {
	return f.presents
}

// Dump writes the last presented framebuffer as text, one line per row.
func (f *Frontend) Dump(w io.Writer) error {
	buf := bufio.NewWriter(w)
	line := make([]byte, vm.Width+1)
	line[vm.Width] = '\n'

	for y := range vm.Height {
		for x := range vm.Width {
			line[x] = '.'
			if f.screen.Pixel(x, y) {
				line[x] = '#'
			}
		}
		if _, err := buf.Write(line); err != nil {
			return fmt.Errorf("writing row %d: %w", y, err)
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing screen dump: %w", err)
	}
	return nil
}
