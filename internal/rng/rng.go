// Package rng implements the xorshift64 pseudo-random byte source of the machine.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrNoEntropy is returned when the system entropy source can not provide a seed.
var ErrNoEntropy = errors.New("entropy source unavailable")

// zeroSeedReplacement is used for a zero seed, which is a fixed point of xorshift.
const zeroSeedReplacement = 0x9E3779B97F4A7C15

// Xorshift is a xorshift64 generator with the shift triple 13, 7, 17.
type Xorshift struct {
	state uint64
}

// New returns a generator seeded from the system entropy source.
func New() (*Xorshift, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("reading seed: %w: %w", ErrNoEntropy, err)
	}
	return NewSeeded(binary.LittleEndian.Uint64(buf[:])), nil
}

// NewSeeded returns a generator with a fixed seed.
func NewSeeded(seed uint64) *Xorshift {
	if seed == 0 {
		seed = zeroSeedReplacement
	}
	return &Xorshift{state: seed}
}

// NextByte advances the state and returns its low byte.
func (x *Xorshift) NextByte() byte {
	s := x.state
	s ^= s << 13
	s ^= s >> 7
	s ^= s << 17
	x.state = s
	return byte(s)
}
