package vm

import "github.com/retroenv/retrochip8/internal/memory"

// arithmetic handles the 8XY* register to register instructions. The flag
// register is written after the result, so VF holds the flag even if it is
// one of the operands.
func (m *Machine) arithmetic(ins instruction) {
	vx, vy := m.v[ins.x], m.v[ins.y]

	switch ins.n {
	case 0x0:
		m.v[ins.x] = vy
	case 0x1:
		m.v[ins.x] = vx | vy
	case 0x2:
		m.v[ins.x] = vx & vy
	case 0x3:
		m.v[ins.x] = vx ^ vy
	case 0x4:
		sum := uint16(vx) + uint16(vy)
		m.v[ins.x] = byte(sum)
		m.v[flagRegister] = boolToByte(sum > 0xFF)
	case 0x5:
		m.v[ins.x] = vx - vy
		m.v[flagRegister] = boolToByte(vx >= vy)
	case 0x7:
		m.v[ins.x] = vy - vx
		m.v[flagRegister] = boolToByte(vy >= vx)
	case 0x6:
		if m.quirks {
			vx = vy
		}
		m.v[ins.x] = vx >> 1
		m.v[flagRegister] = vx & 0x01
	case 0xE:
		if m.quirks {
			vx = vy
		}
		m.v[ins.x] = vx << 1
		m.v[flagRegister] = vx >> 7
	}
}

func (m *Machine) jumpWithOffset(ins instruction) {
	register := ins.x
	if m.quirks {
		register = 0
	}
	m.pc = ins.nnn + uint16(m.v[register])
}

// draw XORs an 8 pixel wide sprite of n rows read from I onto the
// framebuffer. The start position wraps around the screen, the sprite itself
// is clipped at the right and bottom edges. VF is set if any set pixel was
// cleared. It always reports a change.
func (m *Machine) draw(ins instruction) (bool, error) {
	startX := int(m.v[ins.x]) % Width
	startY := int(m.v[ins.y]) % Height
	m.v[flagRegister] = 0

	for row := range int(ins.n) {
		y := startY + row
		if y >= Height {
			break
		}

		address, err := m.indexAddress(row, false)
		if err != nil {
			return true, err
		}
		sprite, err := m.memory.Read(address)
		if err != nil {
			return true, err
		}

		for col := range 8 {
			x := startX + col
			if x >= Width {
				break
			}
			if sprite&(0x80>>col) == 0 {
				continue
			}

			cell := &m.framebuffer[y*Width+x]
			if *cell == PixelOn {
				m.v[flagRegister] = 1
			}
			*cell ^= PixelOn
		}
	}
	return true, nil
}

func (m *Machine) skipOnKey(ins instruction, keys *Keys) {
	switch ins.nn {
	case 0x9E:
		m.skipIf(keys.pressed(m.v[ins.x]))
	case 0xA1:
		m.skipIf(!keys.pressed(m.v[ins.x]))
	}
}

// misc handles the FX** timer, key, index and memory instructions.
func (m *Machine) misc(ins instruction, keys *Keys) error {
	switch ins.nn {
	case 0x07:
		m.v[ins.x] = m.delay
	case 0x0A:
		m.waitForKeyRelease(ins.x, keys)
	case 0x15:
		m.delay = m.v[ins.x]
	case 0x18:
		m.sound = m.v[ins.x]
	case 0x1E:
		m.i += uint16(m.v[ins.x])
	case 0x29:
		m.i = memory.GlyphAddress(m.v[ins.x])
	case 0x33:
		return m.storeBCD(m.v[ins.x])
	case 0x55:
		return m.storeRegisters(ins.x)
	case 0x65:
		return m.loadRegisters(ins.x)
	}
	return nil
}

// waitForKeyRelease stores the released key in VX or, if no key was
// released during this step, enters the waiting state. The program counter
// is moved back to the FX0A instruction while waiting.
func (m *Machine) waitForKeyRelease(register byte, keys *Keys) {
	if key, ok := keys.firstReleased(); ok {
		m.v[register] = key
		return
	}
	m.waiting = true
	m.waitRegister = register
	m.pc -= 2
}

// awaitKeyRelease is executed instead of an instruction fetch while the
// machine is waiting. On a key release the FX0A instruction completes.
func (m *Machine) awaitKeyRelease(keys Keys) {
	key, ok := keys.firstReleased()
	if !ok {
		return
	}
	m.v[m.waitRegister] = key
	m.waiting = false
	m.pc += 2
}

func (m *Machine) storeBCD(value byte) error {
	digits := [3]byte{value / 100, value / 10 % 10, value % 10}
	for offset, digit := range digits {
		address, err := m.indexAddress(offset, true)
		if err != nil {
			return err
		}
		if err := m.memory.Write(address, digit); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) storeRegisters(last byte) error {
	for reg := range int(last) + 1 {
		address, err := m.indexAddress(reg, true)
		if err != nil {
			return err
		}
		if err := m.memory.Write(address, m.v[reg]); err != nil {
			return err
		}
	}
	if m.quirks {
		m.i += uint16(last) + 1
	}
	return nil
}

func (m *Machine) loadRegisters(last byte) error {
	for reg := range int(last) + 1 {
		address, err := m.indexAddress(reg, false)
		if err != nil {
			return err
		}
		value, err := m.memory.Read(address)
		if err != nil {
			return err
		}
		m.v[reg] = value
	}
	if m.quirks {
		m.i += uint16(last) + 1
	}
	return nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
