package canvas

import "github.com/san-kum/sketches/internal/vec"

type EventKind uint8

const (
	Press EventKind = iota
	Move
	Release
)

func (k EventKind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	default:
		return "unknown"
	}
}

// Event is a pointer event in device pixels relative to the displayed surface.
type Event struct {
	Kind EventKind
	X, Y float64
}

// Viewport relates the displayed size of a surface to its backing canvas size.
type Viewport struct {
	DisplayW, DisplayH float64
	CanvasW, CanvasH   float64
}

// Identity is a viewport displayed at its native size.
func Identity(w, h float64) Viewport {
	return Viewport{DisplayW: w, DisplayH: h, CanvasW: w, CanvasH: h}
}

// ToCanvas converts a device coordinate into canvas space, compensating for
// any scaling of the displayed surface. An axis with no known display size
// passes through unchanged.
func (v Viewport) ToCanvas(x, y float64) vec.Vec2 {
	p := vec.New(x, y)
	if v.DisplayW > 0 && v.CanvasW > 0 {
		p.X = x / v.DisplayW * v.CanvasW
	}
	if v.DisplayH > 0 && v.CanvasH > 0 {
		p.Y = y / v.DisplayH * v.CanvasH
	}
	return p
}

// Resize records a new displayed size, keeping the canvas size.
func (v *Viewport) Resize(w, h float64) {
	v.DisplayW, v.DisplayH = w, h
}
