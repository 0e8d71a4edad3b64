// Package disasm converts CHIP-8 opcode words to assembly text.
// It is used by the execution trace and the listing mode of the emulator.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/set"
)

// Decode returns the opcode table entry that matches the given word.
func Decode(word uint16) (chip8.Opcode, bool) {
	for _, op := range chip8.Opcodes[int(word>>12)] {
		if op.Info.Mask&word == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return chip8.Opcode{}, false
}

// Format returns the assembly text of the given opcode word.
// Words that do not decode to an instruction are returned as data.
func Format(word uint16) string {
	op, ok := Decode(word)
	if !ok {
		return fmt.Sprintf(".word $%04X", word)
	}

	params := formatInstruction(op.Instruction.Name, word)
	if params == "" {
		return op.Instruction.Name
	}
	return op.Instruction.Name + " " + params
}

// formatInstruction returns the formatted parameter string for the given instruction.
func formatInstruction(name string, opcode uint16) string {
	switch name {
	case chip8.Cls.Name, chip8.Ret.Name:
		return ""
	case chip8.Jp.Name:
		return formatJumpInstruction(opcode)
	case chip8.Call.Name:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.Se.Name, chip8.Sne.Name:
		return formatCompareInstruction(opcode)
	case chip8.Ld.Name:
		return formatLoadInstruction(opcode)
	case chip8.Add.Name:
		return formatAddInstruction(opcode)
	case chip8.Or.Name, chip8.And.Name, chip8.Xor.Name, chip8.Sub.Name, chip8.Subn.Name:
		return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
	case chip8.Shr.Name, chip8.Shl.Name, chip8.Skp.Name, chip8.Sknp.Name:
		return fmt.Sprintf("V%X", registerX(opcode))
	case chip8.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	}
	return ""
}

func formatJumpInstruction(opcode uint16) string {
	if opcode&0xF000 == 0xB000 {
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return fmt.Sprintf("$%03X", opcode&0x0FFF)
}

func formatCompareInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	default:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	}
}

func formatLoadInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	}

	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

func formatAddInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	default:
		return fmt.Sprintf("I, V%X", x)
	}
}

func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}

// Listing writes a linear listing of the program to the writer. Every
// absolute jump and call destination inside the program gets a label.
func Listing(w io.Writer, program []byte, base uint16) error {
	targets := set.New[uint16]()
	for i := 0; i+1 < len(program); i += 2 {
		word := uint16(program[i])<<8 | uint16(program[i+1])
		// BNNN jumps relative to a register, its target is not known statically
		switch word & 0xF000 {
		case 0x1000, 0x2000:
			targets.Add(word & 0xFFF)
		}
	}

	for i := 0; i < len(program); i += 2 {
		address := base + uint16(i)
		if targets.Contains(address) {
			if _, err := fmt.Fprintf(w, "_label_%04x:\n", address); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		if i+1 == len(program) {
			if _, err := fmt.Fprintf(w, "  %-24s ; $%04X %02X\n",
				fmt.Sprintf(".byte $%02X", program[i]), address, program[i]); err != nil {
				return fmt.Errorf("writing data: %w", err)
			}
			break
		}

		word := uint16(program[i])<<8 | uint16(program[i+1])
		if _, err := fmt.Fprintf(w, "  %-24s ; $%04X %02X %02X\n",
			Format(word), address, program[i], program[i+1]); err != nil {
			return fmt.Errorf("writing instruction: %w", err)
		}
	}
	return nil
}
