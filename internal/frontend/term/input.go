package term

import (
	"github.com/retroenv/retrochip8/internal/frontend/keymap"
	"github.com/retroenv/retrochip8/internal/vm"
)

// input converts the bytes read per frame into keypad states.
type input struct {
	hold int
	left [vm.KeyCount]int // frames until a key counts as released
}

func newInput(hold int) *input {
	return &input{hold: hold}
}

// frame returns the keypad state after the given input bytes arrived and
// whether a plain escape key press was read. Escape sequences of cursor and
// function keys are skipped.
func (in *input) frame(data []byte) (vm.Keys, bool) {
	var keys vm.Keys

	for i := 0; i < len(data); i++ {
		b := data[i]
		if b != escape {
			if key, ok := keymap.Lookup(rune(b)); ok {
				in.left[key] = in.hold + 1
			}
			continue
		}

		skip := escapeSequenceLength(data[i+1:])
		if skip == 0 {
			return keys, true
		}
		i += skip
	}

	for key := range in.left {
		if in.left[key] == 0 {
			continue
		}
		in.left[key]--
		if in.left[key] == 0 {
			keys.Released[key] = true
			continue
		}
		keys.Pressed[key] = true
	}
	return keys, false
}

// escapeSequenceLength returns the number of bytes following an escape byte
// that belong to a CSI or SS3 sequence, 0 for a plain escape key press.
func escapeSequenceLength(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	switch data[0] {
	case '[':
		// parameter and intermediate bytes up to the final byte
		for i := 1; i < len(data); i++ {
			if data[i] >= 0x40 && data[i] <= 0x7E {
				return i + 1
			}
		}
		return len(data)
	case 'O':
		return min(2, len(data))
	default:
		return 0
	}
}
