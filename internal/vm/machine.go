package vm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/rng"
	"github.com/retroenv/retrogolib/log"
)

const (
	// Width is the horizontal resolution of the framebuffer in pixels.
	Width = 64
	// Height is the vertical resolution of the framebuffer in pixels.
	Height = 32

	// PixelOn is the value of a set framebuffer cell, opaque white in ARGB.
	PixelOn = 0xFFFFFFFF
	// PixelOff is the value of a cleared framebuffer cell.
	PixelOff = 0

	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16

	flagRegister = 0xF
)

// Framebuffer contains one cell per pixel, row by row.
type Framebuffer [Width * Height]uint32

// Pixel returns whether the pixel at the given position is set.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f[y*Width+x] == PixelOn
}

// Keys is the keypad state supplied by the host for a single step.
type Keys struct {
	Pressed  [KeyCount]bool // currently held down
	Released [KeyCount]bool // released since the previous step
}

func (k *Keys) pressed(key byte) bool {
	return int(key) < KeyCount && k.Pressed[key]
}

// firstReleased returns the lowest released key.
func (k *Keys) firstReleased() (byte, bool) {
	for i, released := range k.Released {
		if released {
			return byte(i), true
		}
	}
	return 0, false
}

// Machine is a CHIP-8 system. It is not safe for concurrent use, all calls
// have to be serialized by the host.
type Machine struct {
	memory *memory.Memory
	random Random
	logger *log.Logger

	quirks     bool
	stackLimit int
	trace      bool

	pc    uint16
	i     uint16
	v     [16]byte
	stack []uint16

	delay byte
	sound byte

	framebuffer Framebuffer

	waiting      bool // blocked on FX0A until a key is released
	waitRegister byte
}

// New returns a machine with the program loaded and the program counter
// pointing to its first instruction.
func New(cfg Config, program []byte) (*Machine, error) {
	mem := memory.New()
	if err := mem.Load(program); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	random := cfg.Random
	if random == nil {
		var err error
		random, err = rng.New()
		if err != nil {
			return nil, fmt.Errorf("creating random generator: %w", err)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}

	return &Machine{
		memory:     mem,
		random:     random,
		logger:     logger,
		quirks:     cfg.Quirks,
		stackLimit: cfg.StackLimit,
		trace:      cfg.Trace,
		pc:         memory.ProgramOffset,
	}, nil
}

// TickTimers decrements the delay and sound timers, it has to be called once
// per displayed frame.
func (m *Machine) TickTimers() {
	if m.delay > 0 {
		m.delay--
	}
	if m.sound > 0 {
		m.sound--
	}
}

// PC returns the program counter.
func (m *Machine) PC() uint16 { return m.pc }

// I returns the index register.
func (m *Machine) I() uint16 { return m.i }

// V returns the general-purpose register with the given index.
func (m *Machine) V(index int) byte { return m.v[index] }

// DelayTimer returns the delay timer.
func (m *Machine) DelayTimer() byte { return m.delay }

// SoundTimer returns the sound timer, a tone should be played while it is not 0.
func (m *Machine) SoundTimer() byte { return m.sound }

// StackDepth returns the number of return addresses on the call stack.
func (m *Machine) StackDepth() int { return len(m.stack) }

// Waiting returns whether the machine is blocked waiting for a key release.
func (m *Machine) Waiting() bool { return m.waiting }

// Quirks returns whether the COSMAC VIP quirks are enabled.
func (m *Machine) Quirks() bool { return m.quirks }

// Framebuffer returns the framebuffer, it must not be modified by the caller.
func (m *Machine) Framebuffer() *Framebuffer { return &m.framebuffer }

// Memory returns the memory of the machine.
func (m *Machine) Memory() *memory.Memory { return m.memory }
