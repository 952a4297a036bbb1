package internal

import "strings"

// Display dimensions in pixels
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Display is a sink for the framebuffer contents, implemented by frontends.
type Display interface {
	Clear()
	SetPixel(x, y int, on bool)
	Present()
}

// Framebuffer is the 64 px x 32 px monochrome display memory.
// Pixels are only ever changed by XOR-ing sprites onto them or by Clear.
type Framebuffer struct {
	pixels [ScreenWidth][ScreenHeight]uint8
}

// Clear turns all pixels off.
func (fb *Framebuffer) Clear() {
	fb.pixels = [ScreenWidth][ScreenHeight]uint8{}
}

// Pixel returns whether the pixel at x, y is on. Coordinates outside the
// screen report off.
func (fb *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return fb.pixels[x][y] == 1
}

// Pixels returns a copy of the pixel grid indexed [x][y].
func (fb *Framebuffer) Pixels() [ScreenWidth][ScreenHeight]uint8 {
	return fb.pixels
}

// Draw XORs sprite onto the screen with its top left corner at x, y and
// reports whether any pixel was turned off. Each sprite byte is one row of 8
// pixels, most significant bit leftmost. Pixels falling outside the screen
// are clipped, or wrapped around to the opposite edge if wrap is set.
func (fb *Framebuffer) Draw(x, y uint8, sprite []uint8, wrap bool) bool {
	collision := false
	for row, spriteByte := range sprite {
		py := int(y) + row
		if wrap {
			py %= ScreenHeight
		} else if py >= ScreenHeight {
			continue
		}

		for col := 0; col < 8; col++ {
			px := int(x) + col
			if wrap {
				px %= ScreenWidth
			} else if px >= ScreenWidth {
				continue
			}

			bit := (spriteByte >> (7 - col)) & 0x1
			pixel := &fb.pixels[px][py]
			if bit == 1 && *pixel == 1 {
				collision = true
			}
			*pixel ^= bit
		}
	}
	return collision
}

// Render pushes the complete framebuffer to the display and presents it.
func (fb *Framebuffer) Render(d Display) {
	d.Clear()
	for x := 0; x < ScreenWidth; x++ {
		for y := 0; y < ScreenHeight; y++ {
			if fb.pixels[x][y] == 1 {
				d.SetPixel(x, y, true)
			}
		}
	}
	d.Present()
}

// String renders the framebuffer as text, one line per row, with '#' for
// set pixels and '.' for cleared ones.
func (fb *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((ScreenWidth + 1) * ScreenHeight)
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if fb.pixels[x][y] == 1 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
