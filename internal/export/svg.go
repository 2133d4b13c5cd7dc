package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/san-kum/sketches/internal/canvas"
)

// SVGFrame writes drawing calls as SVG elements. svgo has no transform
// stack for single elements, so translations are applied to coordinates
// directly.
type SVGFrame struct {
	canvas.Offset

	buf    bytes.Buffer
	doc    *svg.SVG
	width  int
	height int
	path   strings.Builder
	ended  bool
	err    error
}

func NewSVG(width, height int) *SVGFrame {
	f := &SVGFrame{width: width, height: height}
	f.doc = svg.New(&f.buf)
	f.doc.Start(width, height)
	return f
}

func (f *SVGFrame) Err() error { return f.err }

func fill(c canvas.RGB) string  { return "fill:" + c.Hex() }
func px(v float64) int          { return int(math.Round(v)) }
func coord(x, y float64) string { return fmt.Sprintf("%.2f,%.2f", x, y) }

func (f *SVGFrame) Clear(c canvas.RGB) {
	f.doc.Rect(0, 0, f.width, f.height, fill(c))
}

func (f *SVGFrame) FillRect(x, y, w, h float64, c canvas.RGB) {
	x, y = f.Apply(x, y)
	f.doc.Rect(px(x), px(y), px(w), px(h), fill(c))
}

func (f *SVGFrame) BeginPath() { f.path.Reset() }

func (f *SVGFrame) MoveTo(x, y float64) {
	f.path.WriteString("M" + coord(f.Apply(x, y)) + " ")
}

func (f *SVGFrame) LineTo(x, y float64) {
	f.path.WriteString("L" + coord(f.Apply(x, y)) + " ")
}

func (f *SVGFrame) QuadTo(cx, cy, x, y float64) {
	f.path.WriteString("Q" + coord(f.Apply(cx, cy)) + " " + coord(f.Apply(x, y)) + " ")
}

func (f *SVGFrame) Stroke(c canvas.RGB, width float64) {
	d := strings.TrimSpace(f.path.String())
	if d == "" {
		return
	}
	f.doc.Path(d, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-linecap:round;stroke-linejoin:round", c.Hex(), width))
	f.path.Reset()
}

// FillCircle writes the disc as two arcs; svgo's Circle only takes whole
// pixels, which flattens small particles.
func (f *SVGFrame) FillCircle(x, y, r float64, c canvas.RGB) {
	if r <= 0 {
		return
	}
	x, y = f.Apply(x, y)
	d := fmt.Sprintf("M%s a%.2f,%.2f 0 1,0 %.2f,0 a%.2f,%.2f 0 1,0 %.2f,0 Z", coord(x-r, y), r, r, 2*r, r, r, -2*r)
	f.doc.Path(d, fill(c))
}

// DrawImage embeds img as a base64 PNG data URI.
func (f *SVGFrame) DrawImage(img image.Image, w, h float64) {
	var enc bytes.Buffer
	if err := png.Encode(&enc, img); err != nil {
		if f.err == nil {
			f.err = err
		}
		return
	}
	x, y := f.Apply(0, 0)
	f.doc.Image(px(x), px(y), px(w), px(h), "data:image/png;base64,"+base64.StdEncoding.EncodeToString(enc.Bytes()))
}

// Bytes closes the document and returns it.
func (f *SVGFrame) Bytes() []byte {
	if !f.ended {
		f.doc.End()
		f.ended = true
	}
	return f.buf.Bytes()
}

func (f *SVGFrame) WriteFile(path string) error {
	if f.err != nil {
		return fmt.Errorf("export svg: %w", f.err)
	}
	if err := os.WriteFile(path, f.Bytes(), 0644); err != nil {
		return fmt.Errorf("export svg: %w", err)
	}
	return nil
}
