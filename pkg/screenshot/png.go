// Package screenshot saves the CHIP-8 screen as an image.
package screenshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/mnafees/chopper/v2/internal"
	"golang.org/x/image/draw"
)

var palette = color.Palette{
	color.RGBA{R: 0x1A, G: 0x23, B: 0x7E, A: 0xFF},
	color.RGBA{R: 0x9F, G: 0xA8, B: 0xDA, A: 0xFF},
}

// Image returns the framebuffer as an image with every pixel scaled to a
// square of scale x scale pixels.
func Image(fb *internal.Framebuffer, scale int) image.Image {
	src := image.NewPaletted(image.Rect(0, 0, internal.ScreenWidth, internal.ScreenHeight), palette)
	for x := range internal.ScreenWidth {
		for y := range internal.ScreenHeight {
			if fb.Pixel(x, y) {
				src.SetColorIndex(x, y, 1)
			}
		}
	}
	if scale <= 1 {
		return src
	}

	dst := image.NewPaletted(image.Rect(0, 0, internal.ScreenWidth*scale, internal.ScreenHeight*scale), palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes the scaled framebuffer as PNG to w.
func WritePNG(w io.Writer, fb *internal.Framebuffer, scale int) error {
	if err := png.Encode(w, Image(fb, scale)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG writes the scaled framebuffer to a PNG file.
func SavePNG(filename string, fb *internal.Framebuffer, scale int) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", filename, err)
	}
	if err := WritePNG(f, fb, scale); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing file '%s': %w", filename, err)
	}
	return nil
}
