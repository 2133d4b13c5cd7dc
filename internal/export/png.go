package export

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"

	"github.com/san-kum/sketches/internal/canvas"
)

// PNGFrame draws onto a gg raster context.
type PNGFrame struct {
	dc  *gg.Context
	err error
}

func NewPNG(width, height int) *PNGFrame {
	return &PNGFrame{dc: gg.NewContext(width, height)}
}

func (p *PNGFrame) setErr(err error) {
	if err != nil && p.err == nil {
		p.err = err
	}
}

func (p *PNGFrame) Err() error { return p.err }

func (p *PNGFrame) Image() image.Image { return p.dc.Image() }

func (p *PNGFrame) Clear(c canvas.RGB) {
	p.dc.ClearWithColor(gg.FromColor(c))
}

func (p *PNGFrame) FillRect(x, y, w, h float64, c canvas.RGB) {
	p.dc.ClearPath()
	p.dc.SetColor(c)
	p.dc.DrawRectangle(x, y, w, h)
	p.setErr(p.dc.Fill())
}

func (p *PNGFrame) BeginPath() { p.dc.ClearPath() }

func (p *PNGFrame) MoveTo(x, y float64) { p.dc.MoveTo(x, y) }

func (p *PNGFrame) LineTo(x, y float64) { p.dc.LineTo(x, y) }

func (p *PNGFrame) QuadTo(cx, cy, x, y float64) { p.dc.QuadraticTo(cx, cy, x, y) }

func (p *PNGFrame) Stroke(c canvas.RGB, width float64) {
	p.dc.SetColor(c)
	p.dc.SetLineWidth(width)
	p.setErr(p.dc.Stroke())
}

func (p *PNGFrame) FillCircle(x, y, r float64, c canvas.RGB) {
	p.dc.ClearPath()
	p.dc.SetColor(c)
	p.dc.DrawCircle(x, y, r)
	p.setErr(p.dc.Fill())
}

func (p *PNGFrame) Save() { p.dc.Push() }

func (p *PNGFrame) Translate(x, y float64) { p.dc.Translate(x, y) }

func (p *PNGFrame) Restore() { p.dc.Pop() }

func (p *PNGFrame) DrawImage(img image.Image, w, h float64) {
	p.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{DstWidth: w, DstHeight: h})
}

func (p *PNGFrame) Encode(w io.Writer) error {
	if p.err != nil {
		return p.err
	}
	return p.dc.EncodePNG(w)
}

func (p *PNGFrame) WriteFile(path string) error {
	if p.err != nil {
		return fmt.Errorf("export png: %w", p.err)
	}
	if err := p.dc.SavePNG(path); err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return nil
}
