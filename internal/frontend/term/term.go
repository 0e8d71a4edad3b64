// Package term implements a frontend that renders the framebuffer into a
// terminal using half block characters, two CHIP-8 rows per text line.
// Input is read from the terminal in raw mode. Terminals do not report key
// releases, so a key counts as held until no repeat for it arrived for a
// few frames.
package term

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

const (
	escape = 0x1b

	// holdFrames is the number of frames a key stays pressed after its last
	// byte arrived, it covers the initial delay of the terminal key repeat.
	holdFrames = 30

	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
)

// Frontend renders into a terminal.
type Frontend struct {
	logger *log.Logger
	in     *os.File
	out    io.Writer
	raw    *rawMode

	input  *input
	buf    bytes.Buffer
	toneOn bool
}

// New switches the terminal of in to raw mode and prepares out for drawing.
func New(logger *log.Logger, in *os.File, out io.Writer) (*Frontend, error) {
	raw, err := enterRawMode(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("entering raw terminal mode: %w", err)
	}

	f := &Frontend{
		logger: logger,
		in:     in,
		out:    out,
		raw:    raw,
		input:  newInput(holdFrames),
	}
	if _, err := io.WriteString(out, hideCursor+clearScreen); err != nil {
		_ = raw.restore()
		return nil, fmt.Errorf("preparing terminal: %w", err)
	}
	return f, nil
}

// Poll reads all pending input bytes and returns the keypad state.
func (f *Frontend) Poll() (vm.Keys, bool) {
	var data [64]byte
	var pending []byte
	for {
		n, err := f.raw.read(data[:])
		if err != nil {
			f.logger.Error("Reading terminal input failed", log.Err(err))
			return vm.Keys{}, true
		}
		if n == 0 {
			break
		}
		pending = append(pending, data[:n]...)
	}
	return f.input.frame(pending)
}

// Present draws the framebuffer.
func (f *Frontend) Present(fb *vm.Framebuffer) error {
	f.buf.Reset()
	f.buf.WriteString(cursorHome)
	render(&f.buf, fb)
	if _, err := f.out.Write(f.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Tone rings the terminal bell when the tone starts.
func (f *Frontend) Tone(on bool) {
	if on && !f.toneOn {
		_, _ = io.WriteString(f.out, "\a")
	}
	f.toneOn = on
}

// Close restores the terminal.
func (f *Frontend) Close() error {
	_, _ = io.WriteString(f.out, showCursor+"\r\n")
	if err := f.raw.restore(); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}
