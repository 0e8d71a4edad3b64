// Package tone generates the square wave that is played while the sound
// timer of the machine is active.
package tone

const (
	// DefaultFrequency is the pitch of the tone in Hz.
	DefaultFrequency = 440
	// DefaultVolume is the amplitude of unsigned 8 bit samples around the center.
	DefaultVolume = 32

	center = 128
)

// Square generates unsigned 8 bit mono samples of a square wave. It keeps the
// phase between calls so that consecutive buffers connect without clicks.
type Square struct {
	sampleRate int
	frequency  int
	volume     byte
	phase      int // position within the current period, in samples * frequency
}

// NewSquare returns a square wave generator.
func NewSquare(sampleRate, frequency int, volume byte) *Square {
	return &Square{
		sampleRate: sampleRate,
		frequency:  frequency,
		volume:     volume,
	}
}

// Samples returns the next count samples.
func (s *Square) Samples(count int) []byte {
	buf := make([]byte, count)
	for i := range buf {
		if s.phase < s.sampleRate/2 {
			buf[i] = center + s.volume
		} else {
			buf[i] = center - s.volume
		}

		s.phase += s.frequency
		if s.phase >= s.sampleRate {
			s.phase -= s.sampleRate
		}
	}
	return buf
}
