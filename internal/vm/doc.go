// Package vm implements the CHIP-8 virtual machine.
//
// # Machine State
//
// A Machine owns all mutable state of one emulated system:
//   - 4KB memory with the glyph table at $050 and the program at $200
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - the index register I and the program counter PC
//   - a call stack of return addresses
//   - the delay and sound timers
//   - a 64x32 framebuffer with one uint32 cell per pixel
//   - the state of the xorshift64 random generator
//
// # Execution
//
// The host calls Step once per instruction, usually around 11 times per
// displayed frame for a rate of ~700 instructions per second, and calls
// TickTimers once per displayed frame:
//
//	m, err := vm.New(vm.Config{}, rom)
//	if err != nil {
//		return fmt.Errorf("creating machine: %w", err)
//	}
//
//	changed, err := m.Step(keys)
//	if err != nil {
//		return fmt.Errorf("executing: %w", err)
//	}
//
// Step reports whether the framebuffer may have changed, so that the host only
// presents the framebuffer when needed.
//
// # Quirks
//
// Config.Quirks selects the COSMAC VIP dialect for the shift instructions
// (8XY6, 8XYE copy VY before shifting), the offset jump (BNNN adds V0) and the
// register block transfers (FX55, FX65 advance I). Without quirks the
// CHIP-48/SUPER-CHIP behavior is used.
//
// # Errors
//
// Returning with an empty call stack, exceeding the configured stack limit and
// accessing memory outside of the 4KB address space are fatal errors that end
// the run. Unknown opcodes are ignored.
package vm
