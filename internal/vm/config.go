package vm

import "github.com/retroenv/retrogolib/log"

// Random is a source of pseudo-random bytes.
type Random interface {
	NextByte() byte
}

// Config contains the options of a machine. It can not be changed after the
// machine has been created.
type Config struct {
	// Quirks enables the COSMAC VIP behavior of the shift, offset jump and
	// register block transfer instructions.
	Quirks bool

	// StackLimit limits the call stack depth, 0 means unbounded.
	StackLimit int

	// Random overrides the random generator, which is seeded from the system
	// entropy source by default.
	Random Random

	// Logger is used for the instruction trace.
	Logger *log.Logger
	// Trace logs every executed instruction at debug level.
	Trace bool
}
