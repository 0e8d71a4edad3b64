package vm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// instruction contains the decoded fields of an opcode word.
type instruction struct {
	opcode uint16
	x      byte   // bits 8-11, register index
	y      byte   // bits 4-7, register index
	n      byte   // bits 0-3
	nn     byte   // bits 0-7
	nnn    uint16 // bits 0-11
}

func decode(opcode uint16) instruction {
	return instruction{
		opcode: opcode,
		x:      byte(opcode>>8) & 0xF,
		y:      byte(opcode>>4) & 0xF,
		n:      byte(opcode) & 0xF,
		nn:     byte(opcode),
		nnn:    opcode & 0x0FFF,
	}
}

// Step executes a single instruction and returns whether the framebuffer
// may have changed. A returned error is fatal, the machine state is
// undefined afterwards.
func (m *Machine) Step(keys Keys) (bool, error) {
	if m.waiting {
		m.awaitKeyRelease(keys)
		return false, nil
	}

	address := m.pc
	opcode, err := m.memory.ReadWord(address)
	if err != nil {
		return false, fmt.Errorf("fetching opcode at $%04X: %w", address, err)
	}
	m.pc += 2

	if m.trace {
		m.logger.Debug("Executing instruction",
			log.Hex("pc", address),
			log.Hex("opcode", opcode),
			log.String("asm", disasm.Format(opcode)),
		)
	}

	changed, err := m.execute(decode(opcode), &keys)
	if err != nil {
		return changed, fmt.Errorf("executing opcode $%04X at $%04X: %w", opcode, address, err)
	}
	return changed, nil
}

// execute dispatches the instruction to its handler based on the top nibble.
func (m *Machine) execute(ins instruction, keys *Keys) (bool, error) {
	switch ins.opcode & 0xF000 {
	case 0x0000:
		return m.system(ins)
	case 0x1000:
		m.pc = ins.nnn
	case 0x2000:
		return false, m.call(ins.nnn)
	case 0x3000:
		m.skipIf(m.v[ins.x] == ins.nn)
	case 0x4000:
		m.skipIf(m.v[ins.x] != ins.nn)
	case 0x5000:
		if ins.n == 0 {
			m.skipIf(m.v[ins.x] == m.v[ins.y])
		}
	case 0x6000:
		m.v[ins.x] = ins.nn
	case 0x7000:
		m.v[ins.x] += ins.nn
	case 0x8000:
		m.arithmetic(ins)
	case 0x9000:
		if ins.n == 0 {
			m.skipIf(m.v[ins.x] != m.v[ins.y])
		}
	case 0xA000:
		m.i = ins.nnn
	case 0xB000:
		m.jumpWithOffset(ins)
	case 0xC000:
		m.v[ins.x] = m.random.NextByte() & ins.nn
	case 0xD000:
		return m.draw(ins)
	case 0xE000:
		m.skipOnKey(ins, keys)
	case 0xF000:
		return false, m.misc(ins, keys)
	}
	return false, nil
}

func (m *Machine) system(ins instruction) (bool, error) {
	switch ins.opcode {
	case 0x00E0:
		m.framebuffer = Framebuffer{}
		return true, nil
	case 0x00EE:
		return false, m.ret()
	default:
		return false, nil
	}
}

func (m *Machine) call(address uint16) error {
	if m.stackLimit > 0 && len(m.stack) >= m.stackLimit {
		return fmt.Errorf("depth %d reached: %w", m.stackLimit, ErrStackOverflow)
	}
	m.stack = append(m.stack, m.pc)
	m.pc = address
	return nil
}

func (m *Machine) ret() error {
	if len(m.stack) == 0 {
		return ErrStackUnderflow
	}
	last := len(m.stack) - 1
	m.pc = m.stack[last]
	m.stack = m.stack[:last]
	return nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += 2
	}
}

// indexAddress returns the address I+offset, which has to be inside of the
// address space. I itself is not masked after arithmetic.
func (m *Machine) indexAddress(offset int, write bool) (uint16, error) {
	address := int(m.i) + offset
	if address >= memory.Size {
		return 0, &memory.FaultError{Address: address, Write: write}
	}
	return uint16(address), nil
}
