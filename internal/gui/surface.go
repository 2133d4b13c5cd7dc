package gui

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/sketches/internal/canvas"
	"github.com/san-kum/sketches/internal/curve"
	"github.com/san-kum/sketches/internal/vec"
)

// quadSteps is how many line segments approximate one quadratic curve.
const quadSteps = 16

func toColor(c canvas.RGB) rl.Color { return rl.NewColor(c.R, c.G, c.B, 255) }

func toVec(v vec.Vec2) rl.Vector2 { return rl.NewVector2(float32(v.X), float32(v.Y)) }

// surface draws into whatever raylib target is active (the window or a
// render texture). raylib has no 2D transform stack outside Camera2D, so
// translations are applied to coordinates directly.
type surface struct {
	canvas.Offset

	path  []vec.Vec2
	pen   vec.Vec2
	tex   rl.Texture2D
	texOf image.Image
}

func (s *surface) Clear(c canvas.RGB) { rl.ClearBackground(toColor(c)) }

func (s *surface) FillRect(x, y, w, h float64, c canvas.RGB) {
	x, y = s.Apply(x, y)
	rl.DrawRectangleV(rl.NewVector2(float32(x), float32(y)), rl.NewVector2(float32(w), float32(h)), toColor(c))
}

func (s *surface) BeginPath() { s.path = s.path[:0] }

func (s *surface) MoveTo(x, y float64) {
	s.pen = vec.New(s.Apply(x, y))
	s.path = append(s.path[:0], s.pen)
}

func (s *surface) LineTo(x, y float64) {
	s.pen = vec.New(s.Apply(x, y))
	s.path = append(s.path, s.pen)
}

func (s *surface) QuadTo(cx, cy, x, y float64) {
	seg := curve.Segment{Start: s.pen, Ctrl: vec.New(s.Apply(cx, cy)), End: vec.New(s.Apply(x, y))}
	pts := curve.Sample([]curve.Segment{seg}, quadSteps)
	s.path = append(s.path, pts[1:]...)
	s.pen = seg.End
}

func (s *surface) Stroke(c canvas.RGB, width float64) {
	col := toColor(c)
	for i := 1; i < len(s.path); i++ {
		rl.DrawLineEx(toVec(s.path[i-1]), toVec(s.path[i]), float32(width), col)
	}
	// round joins
	if width > 2 {
		for _, p := range s.path {
			rl.DrawCircleV(toVec(p), float32(width/2), col)
		}
	}
	s.path = s.path[:0]
}

func (s *surface) FillCircle(x, y, r float64, c canvas.RGB) {
	x, y = s.Apply(x, y)
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toColor(c))
}

// DrawImage uploads img once and reuses the texture while the same image is
// passed in.
func (s *surface) DrawImage(img image.Image, w, h float64) {
	if s.texOf != img {
		s.unload()
		rimg := rl.NewImageFromImage(img)
		s.tex = rl.LoadTextureFromImage(rimg)
		rl.UnloadImage(rimg)
		s.texOf = img
	}
	x, y := s.Apply(0, 0)
	src := rl.NewRectangle(0, 0, float32(s.tex.Width), float32(s.tex.Height))
	dst := rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
	rl.DrawTexturePro(s.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (s *surface) unload() {
	if s.texOf != nil {
		rl.UnloadTexture(s.tex)
		s.texOf = nil
	}
}
