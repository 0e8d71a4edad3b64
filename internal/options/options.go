// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendSDL      = "sdl"
	FrontendTerminal = "term"
	FrontendHeadless = "headless"
)

// Parameters contains file path options.
type Parameters struct {
	Input string // ROM file to run
}

// Flags contains behavior options.
type Flags struct {
	Frontend string // sdl, term or headless
	Disasm   bool   // print a listing of the ROM instead of running it
	Debug    bool
	Quiet    bool
	Trace    bool // log every executed instruction, requires Debug
}

// MachineFlags contains options of the virtual machine.
type MachineFlags struct {
	Quirks     bool   // COSMAC VIP behavior of 8XY6, 8XYE, BNNN, FX55 and FX65
	StackLimit int    // maximum call stack depth, 0 is unbounded
	Seed       uint64 // fixed random seed, 0 uses the system entropy source
}

// PacingFlags contains options of the frame pacing.
type PacingFlags struct {
	StepsPerFrame int
	FrameRate     int
	MaxFrames     int
	Scale         int
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	MachineFlags
	PacingFlags
}
