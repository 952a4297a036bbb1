// Package term renders the CHIP-8 screen as text.
package term

import (
	"io"
	"os"
	"strings"

	"github.com/mnafees/chopper/v2/internal"
	"golang.org/x/term"
)

const (
	narrowOn  = "#"
	narrowOff = "."
	wideOn    = "██"
	wideOff   = "  "
)

// Display writes the screen to a writer, one text line per pixel row.
// On a terminal that is wide enough every pixel is drawn as two block
// characters to keep the aspect ratio.
type Display struct {
	w      io.Writer
	on     string
	off    string
	pixels [internal.ScreenHeight][internal.ScreenWidth]bool
	err    error
}

var _ internal.Display = (*Display)(nil)

// NewDisplay returns a display writing to w.
func NewDisplay(w io.Writer) *Display {
	d := &Display{
		w:   w,
		on:  narrowOn,
		off: narrowOff,
	}
	if wideTerminal(w) {
		d.on, d.off = wideOn, wideOff
	}
	return d
}

func wideTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return false
	}
	width, _, err := term.GetSize(fd)
	return err == nil && width >= 2*internal.ScreenWidth
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.pixels = [internal.ScreenHeight][internal.ScreenWidth]bool{}
}

// SetPixel sets a single pixel.
func (d *Display) SetPixel(x, y int, on bool) {
	d.pixels[y][x] = on
}

// Present writes the screen. A write error is kept and returned by Err.
func (d *Display) Present() {
	var sb strings.Builder
	for _, row := range d.pixels {
		for _, on := range row {
			if on {
				sb.WriteString(d.on)
			} else {
				sb.WriteString(d.off)
			}
		}
		sb.WriteByte('\n')
	}
	if _, err := io.WriteString(d.w, sb.String()); err != nil && d.err == nil {
		d.err = err
	}
}

// Err returns the first error that occurred writing the screen.
func (d *Display) Err() error {
	return d.err
}
