package ebitengine

import (
	"testing"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/retroenv/retrogolib/assert"
)

func TestRGBADisplay(t *testing.T) {
	var fb internal.Framebuffer
	fb.Draw(1, 2, []uint8{0x80}, false)

	d := newRGBADisplay()
	assert.False(t, d.valid)
	fb.Render(d)
	assert.True(t, d.valid)

	pixel := func(x, y int) []byte {
		offset := 4 * (y*internal.ScreenWidth + x)
		return d.pix[offset : offset+4]
	}
	assert.Equal(t, spriteRGBA[:], pixel(1, 2))
	assert.Equal(t, screenRGBA[:], pixel(0, 0))
	assert.Equal(t, screenRGBA[:], pixel(2, 2))
	assert.Equal(t, screenRGBA[:], pixel(internal.ScreenWidth-1, internal.ScreenHeight-1))
}

func TestKeymap(t *testing.T) {
	seen := map[uint8]bool{}
	for _, hex := range keys {
		assert.False(t, seen[hex])
		seen[hex] = true
	}
	assert.Equal(t, internal.KeyCount, len(seen))
}

func TestStatusLine(t *testing.T) {
	vm, err := internal.NewC8VM(internal.DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, "PC 200 I 000 DT 00 ST 00", statusLine(vm))
}
