// Package memory implements the 4KB CHIP-8 address space.
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the size of the CHIP-8 address space in bytes.
	Size = 4096
	// FontOffset is the address of the built-in hexadecimal glyph table.
	FontOffset = 0x050
	// GlyphSize is the number of bytes of a single glyph.
	GlyphSize = 5
	// ProgramOffset is the address where programs are loaded and execution starts.
	ProgramOffset = 0x200
	// MaxProgramSize is the maximum size of a program that fits into memory.
	MaxProgramSize = Size - ProgramOffset
)

var (
	// ErrMemoryFault is returned for any access outside of the address space.
	ErrMemoryFault = errors.New("memory fault")
	// ErrProgramTooLarge is returned when a program does not fit into memory.
	ErrProgramTooLarge = errors.New("program too large")
)

// Font contains the 16 hexadecimal digit glyphs, 4 pixels wide and 5 rows high.
var Font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// FaultError describes an access outside of the address space.
type FaultError struct {
	Address int
	Write   bool
}

func (e *FaultError) Error() string {
	access := "read"
	if e.Write {
		access = "write"
	}
	return fmt.Sprintf("%s at address $%04X: %s", access, e.Address, ErrMemoryFault)
}

// Unwrap allows errors.Is to match ErrMemoryFault.
func (e *FaultError) Unwrap() error {
	return ErrMemoryFault
}

// Memory is the CHIP-8 address space. Every access is bounds checked,
// addresses outside of the address space are not wrapped but fault.
type Memory struct {
	data [Size]byte
}

// New returns a zeroed memory with the glyph table installed.
func New() *Memory {
	m := &Memory{}
	copy(m.data[FontOffset:], Font[:])
	return m
}

// Load copies the program image into memory starting at ProgramOffset.
func (m *Memory) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%d bytes exceed the limit of %d bytes: %w",
			len(program), MaxProgramSize, ErrProgramTooLarge)
	}
	copy(m.data[ProgramOffset:], program)
	return nil
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if int(address) >= Size {
		return 0, &FaultError{Address: int(address)}
	}
	return m.data[address], nil
}

// ReadWord returns the big endian word at the given address.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if int(address)+1 >= Size {
		return 0, &FaultError{Address: int(address) + 1}
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if int(address) >= Size {
		return &FaultError{Address: int(address), Write: true}
	}
	m.data[address] = value
	return nil
}

// Bytes returns the underlying memory, changes to it are visible to the machine.
func (m *Memory) Bytes() []byte {
	return m.data[:]
}

// GlyphAddress returns the address of the glyph of the low nibble of digit.
func GlyphAddress(digit byte) uint16 {
	return uint16(digit&0xF)*GlyphSize + FontOffset
}
