package canvas

import (
	"image"

	"github.com/san-kum/sketches/internal/vec"
)

// Circle is a filled disc captured by a Recorder, in untranslated coordinates.
type Circle struct {
	Center vec.Vec2
	R      float64
	Color  RGB
}

// Path is a stroked path captured by a Recorder. Points holds every vertex
// (including quadratic control points) in untranslated coordinates; Ends holds
// only on-curve points.
type Path struct {
	Color  RGB
	Width  float64
	Ends   []vec.Vec2
	Quads  int
	Points []vec.Vec2
}

// Recorder is a Surface that remembers what was drawn. Hosts without a
// display (tests, the terminal) use it to inspect a frame.
type Recorder struct {
	Offset
	Clears  []RGB
	Rects   int
	Circles []Circle
	Paths   []Path
	Images  int

	cur Path
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Clear(c RGB) { r.Clears = append(r.Clears, c) }

func (r *Recorder) FillRect(x, y, w, h float64, c RGB) { r.Rects++ }

func (r *Recorder) BeginPath() { r.cur = Path{} }

func (r *Recorder) MoveTo(x, y float64) {
	p := vec.New(r.Apply(x, y))
	r.cur.Ends = append(r.cur.Ends, p)
	r.cur.Points = append(r.cur.Points, p)
}

func (r *Recorder) LineTo(x, y float64) { r.MoveTo(x, y) }

func (r *Recorder) QuadTo(cx, cy, x, y float64) {
	c := vec.New(r.Apply(cx, cy))
	p := vec.New(r.Apply(x, y))
	r.cur.Quads++
	r.cur.Ends = append(r.cur.Ends, p)
	r.cur.Points = append(r.cur.Points, c, p)
}

func (r *Recorder) Stroke(c RGB, width float64) {
	r.cur.Color = c
	r.cur.Width = width
	r.Paths = append(r.Paths, r.cur)
	r.cur = Path{}
}

func (r *Recorder) FillCircle(x, y, rad float64, c RGB) {
	r.Circles = append(r.Circles, Circle{Center: vec.New(r.Apply(x, y)), R: rad, Color: c})
}

func (r *Recorder) DrawImage(img image.Image, w, h float64) { r.Images++ }

// Balanced reports whether every Save was matched by a Restore.
func (r *Recorder) Balanced() bool { return len(r.stack) == 0 }

// Reset forgets everything drawn so far.
func (r *Recorder) Reset() { *r = Recorder{} }
