package viz

import (
	"math"

	"github.com/san-kum/sketches/internal/canvas"
	"github.com/san-kum/sketches/internal/curve"
	"github.com/san-kum/sketches/internal/vec"
)

// Surface draws sketch frames onto a braille Canvas. The sketch's canvas
// is scaled uniformly to fit the dot grid and centred in it. Anything drawn
// in the background colour is left blank.
type Surface struct {
	canvas.Offset

	Canvas *Canvas

	sketchW, sketchH float64
	scale            float64
	offX, offY       float64
	bg               canvas.RGB
	path             []vec.Vec2
	pen              vec.Vec2
}

func NewSurface(c *Canvas, sketchW, sketchH float64) *Surface {
	s := &Surface{Canvas: c, sketchW: sketchW, sketchH: sketchH}
	s.fit()
	return s
}

// Resize swaps in a canvas of w x h cells.
func (s *Surface) Resize(w, h int) {
	s.Canvas = NewCanvas(w, h)
	s.fit()
}

func (s *Surface) fit() {
	dw, dh := s.Canvas.Dots()
	s.scale = math.Min(float64(dw)/s.sketchW, float64(dh)/s.sketchH)
	s.offX = (float64(dw) - s.sketchW*s.scale) / 2
	s.offY = (float64(dh) - s.sketchH*s.scale) / 2
}

// Viewport maps dot coordinates, relative to the drawn area, back to
// sketch coordinates.
func (s *Surface) Viewport() canvas.Viewport {
	return canvas.Viewport{
		DisplayW: s.sketchW * s.scale,
		DisplayH: s.sketchH * s.scale,
		CanvasW:  s.sketchW,
		CanvasH:  s.sketchH,
	}
}

// CellToDisplay converts a terminal cell (relative to the canvas) into the
// display coordinates expected by Viewport.
func (s *Surface) CellToDisplay(col, row int) (float64, float64) {
	return float64(col*2+1) - s.offX, float64(row*4+2) - s.offY
}

func (s *Surface) dot(x, y float64) vec.Vec2 {
	x, y = s.Apply(x, y)
	return vec.New(x*s.scale+s.offX, y*s.scale+s.offY)
}

func (s *Surface) Clear(c canvas.RGB) {
	s.Canvas.Clear()
	s.bg = c
}

// FillRect only matters when it paints over the background.
func (s *Surface) FillRect(x, y, w, h float64, c canvas.RGB) {
	if c == s.bg {
		return
	}
	p := s.dot(x, y)
	for dy := 0; dy < int(h*s.scale); dy++ {
		for dx := 0; dx < int(w*s.scale); dx++ {
			s.Canvas.SetInk(int(p.X)+dx, int(p.Y)+dy, c)
		}
	}
}

func (s *Surface) BeginPath() { s.path = s.path[:0] }

func (s *Surface) MoveTo(x, y float64) {
	s.pen = s.dot(x, y)
	s.path = append(s.path[:0], s.pen)
}

func (s *Surface) LineTo(x, y float64) {
	s.pen = s.dot(x, y)
	s.path = append(s.path, s.pen)
}

func (s *Surface) QuadTo(cx, cy, x, y float64) {
	seg := curve.Segment{Start: s.pen, Ctrl: s.dot(cx, cy), End: s.dot(x, y)}
	pts := curve.Sample([]curve.Segment{seg}, 8)
	s.path = append(s.path, pts[1:]...)
	s.pen = seg.End
}

func (s *Surface) Stroke(c canvas.RGB, _ float64) {
	if c != s.bg {
		for i := 1; i < len(s.path); i++ {
			a, b := s.path[i-1], s.path[i]
			s.Canvas.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), c)
		}
	}
	s.path = s.path[:0]
}

func (s *Surface) FillCircle(x, y, r float64, c canvas.RGB) {
	if c == s.bg {
		return
	}
	p := s.dot(x, y)
	s.Canvas.FillDisc(p.X, p.Y, r*s.scale, c)
}
