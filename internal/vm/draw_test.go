package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// setPixels returns the number of set pixels of the framebuffer.
func setPixels(fb *Framebuffer) int {
	count := 0
	for _, cell := range fb {
		if cell == PixelOn {
			count++
		}
	}
	return count
}

func TestDraw_Glyph(t *testing.T) {
	m := newTestMachine(t, false,
		0xF029, // ld f, v0
		0xD125, // drw v1, v2, 5
	)
	m.v[0] = 0x0
	m.v[1] = 10
	m.v[2] = 4

	step(t, m)
	changed := step(t, m)
	assert.True(t, changed)
	assert.Equal(t, byte(0), m.V(flagRegister))

	// glyph 0: F0 90 90 90 F0
	fb := m.Framebuffer()
	for col := range 4 {
		assert.True(t, fb.Pixel(10+col, 4))
		assert.True(t, fb.Pixel(10+col, 8))
	}
	for row := 5; row < 8; row++ {
		assert.True(t, fb.Pixel(10, row))
		assert.False(t, fb.Pixel(11, row))
		assert.False(t, fb.Pixel(12, row))
		assert.True(t, fb.Pixel(13, row))
	}
	assert.Equal(t, 14, setPixels(fb))
}

func TestDraw_TwiceRestoresAndCollides(t *testing.T) {
	m := newTestMachine(t, false,
		0xA050, // ld i, $050
		0xD015, // drw v0, v1, 5
		0xD015, // drw v0, v1, 5
	)
	m.v[0] = 20
	m.v[1] = 8

	step(t, m)
	step(t, m)
	assert.Equal(t, byte(0), m.V(flagRegister))
	assert.Equal(t, 14, setPixels(m.Framebuffer()))

	step(t, m)
	assert.Equal(t, byte(1), m.V(flagRegister))
	assert.Equal(t, 0, setPixels(m.Framebuffer()))
}

func TestDraw_PartialCollision(t *testing.T) {
	m := newTestMachine(t, false,
		0xD011, // drw v0, v1, 1
		0xD011, // drw v0, v1, 1
	)
	m.i = 0x300
	data := m.Memory().Bytes()
	data[0x300] = 0x80
	m.v[0] = 0
	m.v[1] = 0

	step(t, m)
	data[0x300] = 0x40 // different bit, no overlap
	step(t, m)

	assert.Equal(t, byte(0), m.V(flagRegister))
	assert.Equal(t, 2, setPixels(m.Framebuffer()))
}

func TestDraw_CollisionNotLastBit(t *testing.T) {
	m := newTestMachine(t, false, 0xD011, 0xD011)
	m.i = 0x300
	data := m.Memory().Bytes()
	data[0x300] = 0x80

	step(t, m)
	data[0x300] = 0xC0 // first bit collides, second one does not
	step(t, m)

	fb := m.Framebuffer()
	assert.Equal(t, byte(1), m.V(flagRegister))
	assert.False(t, fb.Pixel(0, 0))
	assert.True(t, fb.Pixel(1, 0))
}

func TestDraw_ClipsColumns(t *testing.T) {
	m := newTestMachine(t, false, 0xD011)
	m.i = 0x300
	m.Memory().Bytes()[0x300] = 0xFF
	m.v[0] = Width - 1
	m.v[1] = 3

	step(t, m)
	fb := m.Framebuffer()
	assert.Equal(t, 1, setPixels(fb))
	assert.True(t, fb.Pixel(Width-1, 3))
	assert.False(t, fb.Pixel(0, 3))
}

func TestDraw_ClipsRows(t *testing.T) {
	m := newTestMachine(t, false, 0xD01F)
	m.i = 0x300
	for row := range 15 {
		m.Memory().Bytes()[0x300+row] = 0x80
	}
	m.v[0] = 0
	m.v[1] = Height - 2

	step(t, m)
	fb := m.Framebuffer()
	assert.Equal(t, 2, setPixels(fb))
	assert.True(t, fb.Pixel(0, Height-2))
	assert.True(t, fb.Pixel(0, Height-1))
	assert.False(t, fb.Pixel(0, 0))
}

func TestDraw_WrapsStartPosition(t *testing.T) {
	m := newTestMachine(t, false, 0xD011)
	m.i = 0x300
	m.Memory().Bytes()[0x300] = 0x80
	m.v[0] = Width + 5
	m.v[1] = Height*2 + 7

	step(t, m)
	assert.True(t, m.Framebuffer().Pixel(5, 7))
	assert.Equal(t, 1, setPixels(m.Framebuffer()))
}

func TestDraw_EmptySpriteReportsChange(t *testing.T) {
	m := newTestMachine(t, false, 0xD010)
	m.v[flagRegister] = 1

	changed := step(t, m)
	assert.True(t, changed)
	assert.Equal(t, byte(0), m.V(flagRegister))
	assert.Equal(t, 0, setPixels(m.Framebuffer()))
}

func TestClearScreen(t *testing.T) {
	m := newTestMachine(t, false, 0x00E0)
	for i := range m.framebuffer {
		if i%3 == 0 {
			m.framebuffer[i] = PixelOn
		}
	}

	changed := step(t, m)
	assert.True(t, changed)
	assert.Equal(t, 0, setPixels(m.Framebuffer()))
}
