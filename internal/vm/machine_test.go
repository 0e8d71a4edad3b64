package vm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/rng"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestMachine returns a machine with a fixed random seed and the given
// opcodes loaded as program.
func newTestMachine(t *testing.T, quirks bool, opcodes ...uint16) *Machine {
	t.Helper()

	program := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		program = append(program, byte(op>>8), byte(op))
	}

	m, err := New(Config{
		Quirks: quirks,
		Random: rng.NewSeeded(1),
		Logger: log.NewTestLogger(t),
	}, program)
	assert.NoError(t, err)
	return m
}

// step executes a single instruction without any key input.
func step(t *testing.T, m *Machine) bool {
	t.Helper()
	changed, err := m.Step(Keys{})
	assert.NoError(t, err)
	return changed
}

func TestNew(t *testing.T) {
	program := []byte{0x60, 0x2A, 0x12, 0x00}
	m, err := New(Config{}, program)
	assert.NoError(t, err)

	assert.Equal(t, uint16(memory.ProgramOffset), m.PC())
	assert.Equal(t, uint16(0), m.I())
	assert.Equal(t, 0, m.StackDepth())
	assert.False(t, m.Waiting())
	assert.False(t, m.Quirks())

	data := m.Memory().Bytes()
	assert.True(t, bytes.Equal(memory.Font[:], data[memory.FontOffset:memory.FontOffset+len(memory.Font)]))
	assert.True(t, bytes.Equal(program, data[memory.ProgramOffset:memory.ProgramOffset+len(program)]))

	for _, cell := range m.Framebuffer() {
		assert.Equal(t, uint32(PixelOff), cell)
	}
}

func TestNew_ProgramTooLarge(t *testing.T) {
	_, err := New(Config{}, make([]byte, memory.MaxProgramSize+1))
	assert.True(t, errors.Is(err, memory.ErrProgramTooLarge))
}

func TestTickTimers(t *testing.T) {
	m := newTestMachine(t, false)
	m.delay = 2
	m.sound = 1

	m.TickTimers()
	assert.Equal(t, byte(1), m.DelayTimer())
	assert.Equal(t, byte(0), m.SoundTimer())

	m.TickTimers()
	m.TickTimers()
	assert.Equal(t, byte(0), m.DelayTimer())
	assert.Equal(t, byte(0), m.SoundTimer())
}

func TestStep_Trace(t *testing.T) {
	m, err := New(Config{
		Random: rng.NewSeeded(1),
		Logger: log.NewTestLogger(t),
		Trace:  true,
	}, []byte{0x60, 0x2A})
	assert.NoError(t, err)

	step(t, m)
	assert.Equal(t, byte(0x2A), m.V(0))
}

func TestStep_FetchFault(t *testing.T) {
	m := newTestMachine(t, false, 0x1FFF) // jp $FFF
	step(t, m)
	assert.Equal(t, uint16(0xFFF), m.PC())

	_, err := m.Step(Keys{})
	assert.True(t, errors.Is(err, memory.ErrMemoryFault))
}
