// Package curve implements the draggable-point curve editor: an ordered point
// list drawn as a straight guide and as a smoothed chain of quadratic Béziers
// through the midpoints of consecutive points.
package curve

import "github.com/san-kum/sketches/internal/vec"

// Segment is a quadratic Bézier from Start to End bent toward Ctrl.
type Segment struct {
	Start, Ctrl, End vec.Vec2
}

// Eval returns the point at t in [0, 1].
func (s Segment) Eval(t float64) vec.Vec2 {
	mt := 1 - t
	return vec.Vec2{
		X: mt*mt*s.Start.X + 2*mt*t*s.Ctrl.X + t*t*s.End.X,
		Y: mt*mt*s.Start.Y + 2*mt*t*s.Ctrl.Y + t*t*s.End.Y,
	}
}

// Segments builds the smoothed path through pts. The path starts on the first
// point, passes through the midpoint of every interior pair, and ends on the
// last point. Fewer than two points produce no segments.
func Segments(pts []vec.Vec2) []Segment {
	n := len(pts)
	if n < 2 {
		return nil
	}
	if n == 2 {
		return []Segment{{Start: pts[0], Ctrl: pts[0].Mid(pts[1]), End: pts[1]}}
	}

	segs := make([]Segment, 0, n-2)
	start := pts[0]
	for i := 1; i < n-1; i++ {
		end := pts[i].Mid(pts[i+1])
		if i == n-2 {
			end = pts[i+1]
		}
		segs = append(segs, Segment{Start: start, Ctrl: pts[i], End: end})
		start = end
	}
	return segs
}

// Sample flattens segs into a polyline with steps points per segment (plus the
// shared start point). The first and last samples are exact copies of the path
// endpoints.
func Sample(segs []Segment, steps int) []vec.Vec2 {
	if len(segs) == 0 {
		return nil
	}
	if steps < 1 {
		steps = 1
	}
	out := make([]vec.Vec2, 0, len(segs)*steps+1)
	out = append(out, segs[0].Start)
	for _, s := range segs {
		for k := 1; k < steps; k++ {
			out = append(out, s.Eval(float64(k)/float64(steps)))
		}
		out = append(out, s.End)
	}
	return out
}
