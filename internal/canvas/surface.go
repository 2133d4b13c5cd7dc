// Package canvas defines the drawing and pointer boundaries shared by the
// sketches and every host that displays them.
package canvas

import "image"

// Surface is the 2D drawing context a sketch renders into. Coordinates are
// canvas-space and affected by Translate; Save and Restore scope translations.
type Surface interface {
	Clear(c RGB)
	FillRect(x, y, w, h float64, c RGB)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	Stroke(c RGB, width float64)

	FillCircle(x, y, r float64, c RGB)

	Save()
	Translate(x, y float64)
	Restore()
}

// ImageDrawer is implemented by surfaces able to paint a raster image
// stretched over a w x h area at the current origin.
type ImageDrawer interface {
	DrawImage(img image.Image, w, h float64)
}

// DrawImage paints img when s supports it and reports whether it did.
func DrawImage(s Surface, img image.Image, w, h float64) bool {
	d, ok := s.(ImageDrawer)
	if !ok || img == nil {
		return false
	}
	d.DrawImage(img, w, h)
	return true
}

// Offset tracks the translation stack for surfaces whose backend has no
// transform of its own.
type Offset struct {
	X, Y  float64
	stack [][2]float64
}

func (o *Offset) Save() { o.stack = append(o.stack, [2]float64{o.X, o.Y}) }

func (o *Offset) Translate(x, y float64) {
	o.X += x
	o.Y += y
}

func (o *Offset) Restore() {
	if len(o.stack) == 0 {
		return
	}
	top := o.stack[len(o.stack)-1]
	o.stack = o.stack[:len(o.stack)-1]
	o.X, o.Y = top[0], top[1]
}

// Apply maps local coordinates into the surface's untranslated space.
func (o *Offset) Apply(x, y float64) (float64, float64) {
	return x + o.X, y + o.Y
}
