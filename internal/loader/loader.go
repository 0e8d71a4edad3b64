// Package loader handles ROM file loading operations.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

// ErrEmptyProgram is returned for a ROM file without any content.
var ErrEmptyProgram = errors.New("empty program")

// Loader handles loading ROM files from disk.
type Loader struct {
	maxSize int
}

// New creates a new ROM loader that accepts programs that fit into the
// program area of the memory.
func New() *Loader {
	return &Loader{
		maxSize: memory.MaxProgramSize,
	}
}

// Load reads the ROM file with the given name. CHIP-8 ROM files are raw
// program images without any header.
func (l *Loader) Load(fileName string) ([]byte, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", fileName, err)
	}
	defer func() { _ = file.Close() }()

	program, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", fileName, err)
	}
	return program, nil
}

// LoadFromReader reads a raw program image from the reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	buf := bufio.NewReader(reader)
	if _, err := buf.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyProgram
		}
		return nil, fmt.Errorf("reading program: %w", err)
	}

	// raw images have no header, the whole buffer ends up as PRG data
	cart, err := cartridge.LoadBuffer(buf)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	program := cart.PRG
	switch {
	case len(program) == 0:
		return nil, ErrEmptyProgram
	case len(program) > l.maxSize:
		return nil, fmt.Errorf("program of %d bytes exceeds %d bytes: %w",
			len(program), l.maxSize, memory.ErrProgramTooLarge)
	}
	return program, nil
}
