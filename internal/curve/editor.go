package curve

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/sketches/internal/canvas"
	"github.com/san-kum/sketches/internal/config"
	"github.com/san-kum/sketches/internal/vec"
)

type Point struct {
	X, Y     float64
	Control  bool
	Dragging bool
}

func (p *Point) Pos() vec.Vec2 { return vec.New(p.X, p.Y) }

// HitTest reports whether (x, y) lies strictly within radius of p.
func (p *Point) HitTest(x, y, radius float64) bool {
	return p.Pos().Dist(vec.New(x, y)) < radius
}

func (p *Point) Draw(s canvas.Surface, radius float64) {
	col := canvas.Black
	if p.Control {
		col = canvas.Red
	}
	s.Save()
	s.Translate(p.X, p.Y)
	s.FillCircle(0, 0, radius, col)
	s.Restore()
}

// Editor owns the ordered point list. Order defines the curve and never
// changes; points are only appended.
type Editor struct {
	points   []*Point
	viewport canvas.Viewport
	width    float64
	height   float64
	cfg      config.CurveConfig
	bg       canvas.RGB
	drag     int
	logger   *slog.Logger
}

func NewEditor(cfg *config.Config, logger *slog.Logger) (*Editor, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg, err := canvas.ParseHex(cfg.Curve.Background)
	if err != nil {
		return nil, fmt.Errorf("curve: %w", err)
	}

	w, h := float64(cfg.Canvas.Width), float64(cfg.Canvas.Height)
	e := &Editor{
		viewport: canvas.Identity(w, h),
		width:    w,
		height:   h,
		cfg:      cfg.Curve,
		bg:       bg,
		drag:     -1,
		logger:   logger.With("sketch", "curve"),
	}
	e.Reset()
	return e, nil
}

// Reset drops every added point and restores the seed points.
func (e *Editor) Reset() {
	e.points = make([]*Point, 0, len(e.cfg.Seeds))
	for _, s := range e.cfg.Seeds {
		e.points = append(e.points, &Point{X: s[0], Y: s[1]})
	}
	e.drag = -1
}

func (e *Editor) Points() []*Point { return e.points }

func (e *Editor) Size() (float64, float64) { return e.width, e.height }

func (e *Editor) SetViewport(vp canvas.Viewport) { e.viewport = vp }

// Dragging returns the index of the point being dragged, or -1.
func (e *Editor) Dragging() int { return e.drag }

// Press starts a drag on the first point (in list order) under the pointer,
// or appends a new point there when none is hit. It returns the index of the
// affected point and whether it was newly added.
func (e *Editor) Press(ev canvas.Event) (int, bool) {
	at := e.viewport.ToCanvas(ev.X, ev.Y)
	e.clearDrag()

	for i, p := range e.points {
		if p.HitTest(at.X, at.Y, e.cfg.HitRadius) {
			p.Dragging = true
			e.drag = i
			return i, false
		}
	}

	e.points = append(e.points, &Point{X: at.X, Y: at.Y})
	idx := len(e.points) - 1
	e.logger.Debug("point added", "index", idx, "x", at.X, "y", at.Y)
	return idx, true
}

// Move relocates the dragged point, if any.
func (e *Editor) Move(ev canvas.Event) {
	if e.drag < 0 {
		return
	}
	at := e.viewport.ToCanvas(ev.X, ev.Y)
	p := e.points[e.drag]
	p.X, p.Y = at.X, at.Y
}

// Release ends the gesture and clears every drag flag.
func (e *Editor) Release(canvas.Event) {
	e.clearDrag()
}

func (e *Editor) Handle(ev canvas.Event) {
	switch ev.Kind {
	case canvas.Press:
		e.Press(ev)
	case canvas.Move:
		e.Move(ev)
	case canvas.Release:
		e.Release(ev)
	}
}

func (e *Editor) clearDrag() {
	for _, p := range e.points {
		p.Dragging = false
	}
	e.drag = -1
}

// Positions returns the point coordinates in list order.
func (e *Editor) Positions() []vec.Vec2 {
	out := make([]vec.Vec2, len(e.points))
	for i, p := range e.points {
		out[i] = p.Pos()
	}
	return out
}

func (e *Editor) Segments() []Segment { return Segments(e.Positions()) }

func (e *Editor) Draw(s canvas.Surface) {
	s.Clear(e.bg)
	s.FillRect(0, 0, e.width, e.height, e.bg)

	pts := e.Positions()
	if len(pts) > 0 {
		s.BeginPath()
		s.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			s.LineTo(p.X, p.Y)
		}
		s.Stroke(canvas.Grey, e.cfg.GuideWidth)
	}

	if segs := Segments(pts); len(segs) > 0 {
		s.BeginPath()
		s.MoveTo(segs[0].Start.X, segs[0].Start.Y)
		for _, seg := range segs {
			s.QuadTo(seg.Ctrl.X, seg.Ctrl.Y, seg.End.X, seg.End.Y)
		}
		s.Stroke(canvas.Blue, e.cfg.CurveWidth)
	}

	for _, p := range e.points {
		p.Draw(s, e.cfg.PointRadius)
	}
}

// Frame renders the editor; the curve has no simulation step.
func (e *Editor) Frame(s canvas.Surface) error {
	e.Draw(s)
	return nil
}

func (e *Editor) Status() string {
	if e.drag >= 0 {
		return fmt.Sprintf("%d points  dragging #%d", len(e.points), e.drag)
	}
	return fmt.Sprintf("%d points", len(e.points))
}
