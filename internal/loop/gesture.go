package loop

import (
	"github.com/san-kum/sketches/internal/canvas"
	"github.com/san-kum/sketches/internal/vec"
)

// Gesture is a scripted pointer for headless runs. It presses at From on
// frame 0, glides toward To and releases on frame Release. A negative
// Release holds the pointer down for the whole run.
type Gesture struct {
	From    vec.Vec2
	To      vec.Vec2
	Release int
	Frames  int
}

// Events returns the pointer events to apply before frame i. A nil Gesture
// produces none.
func (g *Gesture) Events(i int) []canvas.Event {
	if g == nil {
		return nil
	}
	press := canvas.Event{Kind: canvas.Press, X: g.From.X, Y: g.From.Y}
	release := canvas.Event{Kind: canvas.Release}

	switch {
	case i == 0 && g.Release == 0:
		return []canvas.Event{press, release}
	case i == 0:
		return []canvas.Event{press}
	case i == g.Release:
		return []canvas.Event{release}
	case g.Release >= 0 && i > g.Release:
		return nil
	}

	end := g.Frames - 1
	if g.Release > 0 {
		end = g.Release - 1
	}
	t := min(float64(i)/float64(max(end, 1)), 1)
	at := g.From.Lerp(g.To, t)
	return []canvas.Event{{Kind: canvas.Move, X: at.X, Y: at.Y}}
}
