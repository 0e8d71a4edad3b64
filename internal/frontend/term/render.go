package term

import (
	"bytes"

	"github.com/retroenv/retrochip8/internal/vm"
)

// cells maps the state of the upper and lower pixel to the character
// that shows both.
var cells = [2][2]string{
	{" ", "▄"},
	{"▀", "█"},
}

func render(buf *bytes.Buffer, fb *vm.Framebuffer) {
	for y := 0; y < vm.Height; y += 2 {
		for x := range vm.Width {
			upper := boolIndex(fb.Pixel(x, y))
			lower := boolIndex(fb.Pixel(x, y+1))
			buf.WriteString(cells[upper][lower])
		}
		buf.WriteString("\r\n")
	}
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
