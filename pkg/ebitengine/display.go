package ebitengine

import "github.com/mnafees/chopper/v2/internal"

var (
	screenRGBA = [4]byte{0x1A, 0x23, 0x7E, 0xFF}
	spriteRGBA = [4]byte{0x9F, 0xA8, 0xDA, 0xFF}
)

// rgbaDisplay renders the framebuffer into an RGBA pixel buffer that is
// uploaded to an ebiten image.
type rgbaDisplay struct {
	pix   []byte
	valid bool
}

var _ internal.Display = (*rgbaDisplay)(nil)

func newRGBADisplay() *rgbaDisplay {
	return &rgbaDisplay{
		pix: make([]byte, 4*internal.ScreenWidth*internal.ScreenHeight),
	}
}

func (d *rgbaDisplay) Clear() {
	for i := 0; i < len(d.pix); i += 4 {
		copy(d.pix[i:i+4], screenRGBA[:])
	}
}

func (d *rgbaDisplay) SetPixel(x, y int, on bool) {
	c := screenRGBA
	if on {
		c = spriteRGBA
	}
	offset := 4 * (y*internal.ScreenWidth + x)
	copy(d.pix[offset:offset+4], c[:])
}

func (d *rgbaDisplay) Present() {
	d.valid = true
}
