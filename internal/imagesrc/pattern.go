package imagesrc

import (
	"image"
	"image/color"
	"math"

	"github.com/san-kum/sketches/internal/canvas"
)

// Generate builds an Image by evaluating fn at every pixel.
func Generate(name string, w, h int, fn func(x, y int) canvas.RGB) *Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	pix := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := fn(x, y)
			pix.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return &Image{Name: name, pix: pix}
}

// Solid is a single-colour image.
func Solid(w, h int, c canvas.RGB) *Image {
	return Generate("solid", w, h, func(int, int) canvas.RGB { return c })
}

// Radial is a built-in source used when no image is configured: bright at the
// centre, fading toward the corners, with a hue sweep around the centre.
func Radial(w, h int) *Image {
	cx, cy := float64(w)/2, float64(h)/2
	maxR := math.Hypot(cx, cy)
	return Generate("radial", w, h, func(x, y int) canvas.RGB {
		dx, dy := float64(x)-cx, float64(y)-cy
		t := 1 - math.Hypot(dx, dy)/maxR
		angle := (math.Atan2(dy, dx) + math.Pi) / (2 * math.Pi)
		return canvas.RGB{
			R: uint8(255 * t),
			G: uint8(255 * angle * t),
			B: uint8(255 * (1 - angle) * t),
		}
	})
}
