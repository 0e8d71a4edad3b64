package vm

import "errors"

var (
	// ErrStackUnderflow is returned when returning from a subroutine with an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
	// ErrStackOverflow is returned when a call exceeds the configured stack limit.
	ErrStackOverflow = errors.New("call stack overflow")
)
