// Package imagesrc decodes the source raster of the particle field and exposes
// nearest-neighbour pixel lookup.
package imagesrc

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/san-kum/sketches/internal/canvas"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrDecode is returned when a source cannot be decoded as an image.
	ErrDecode = errors.New("imagesrc: cannot decode image")
	// ErrEmpty is returned for images with no pixels.
	ErrEmpty = errors.New("imagesrc: image has no pixels")
)

// Sampler exposes the pixel data of a decoded raster.
type Sampler interface {
	Size() (w, h int)
	// RGBAt returns the colour at (x, y). Coordinates outside the image are
	// clamped to the nearest edge pixel.
	RGBAt(x, y int) canvas.RGB
}

// Image is a decoded raster held as non-premultiplied 8-bit RGBA.
type Image struct {
	Name string
	pix  *image.NRGBA
}

// FromImage copies any image.Image into an Image.
func FromImage(name string, src image.Image) (*Image, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, ErrEmpty
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return &Image{Name: name, pix: dst}, nil
}

func Decode(name string, r io.Reader) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDecode, name, err)
	}
	img, err := FromImage(name, src)
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", name, format, err)
	}
	return img, nil
}

func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(path, f)
}

func (m *Image) Size() (int, int) {
	b := m.pix.Bounds()
	return b.Dx(), b.Dy()
}

func (m *Image) RGBAt(x, y int) canvas.RGB {
	w, h := m.Size()
	x = clamp(x, 0, w-1)
	y = clamp(y, 0, h-1)
	i := m.pix.PixOffset(x, y)
	p := m.pix.Pix[i : i+3 : i+3]
	return canvas.RGB{R: p[0], G: p[1], B: p[2]}
}

// Image returns the underlying raster for display.
func (m *Image) Image() image.Image { return m.pix }

// Scaled returns a copy resampled to w x h with nearest-neighbour lookup.
func (m *Image) Scaled(w, h int) *Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m.pix, m.pix.Bounds(), draw.Src, nil)
	return &Image{Name: m.Name, pix: dst}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
