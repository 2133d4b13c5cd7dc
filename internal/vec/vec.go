package vec

import "math"

type Vec2 struct {
	X, Y float64
}

func New(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Unit returns v scaled to length one. The zero vector has no direction, so
// ok is false and the zero vector is returned.
func (v Vec2) Unit() (u Vec2, ok bool) {
	l := v.Len()
	if l == 0 {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// Mid is the point halfway between v and o.
func (v Vec2) Mid(o Vec2) Vec2 {
	return Vec2{v.X + (o.X-v.X)/2, v.Y + (o.Y-v.Y)/2}
}

func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Polar returns the point at angle theta (radians) and distance r from v.
func (v Vec2) Polar(r, theta float64) Vec2 {
	return Vec2{v.X + math.Cos(theta)*r, v.Y + math.Sin(theta)*r}
}
