// Package loop drives a sketch: one goroutine owns it, applies queued
// pointer events and renders a frame per tick.
package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/sketches/internal/canvas"
)

var ErrNoSketch = errors.New("loop: no sketch")

// Sketch is anything that reacts to pointer events and draws frames.
// particles.Sim and curve.Editor both satisfy it.
type Sketch interface {
	Handle(ev canvas.Event)
	Frame(s canvas.Surface) error
	Size() (float64, float64)
	SetViewport(vp canvas.Viewport)
	Reset()
}

// Statuser is implemented by sketches that can describe themselves in a HUD.
type Statuser interface {
	Status() string
}

// Telemeter is implemented by sketches with a scalar worth graphing.
type Telemeter interface {
	Telemetry() float64
}

// SurfaceFunc returns the surface for frame i. A host may hand out the same
// surface each time or a fresh one per frame.
type SurfaceFunc func(frame int) (canvas.Surface, error)

// FrameFunc is called after a frame has been drawn.
type FrameFunc func(frame int, s canvas.Surface) error

type Driver struct {
	Sketch Sketch
	FPS    int
	// OnFrame, if set, runs after every rendered frame.
	OnFrame FrameFunc

	frame int
}

func New(s Sketch, fps int) *Driver {
	return &Driver{Sketch: s, FPS: fps}
}

// Frames returns the number of frames rendered so far.
func (d *Driver) Frames() int { return d.frame }

// Step applies events in order and renders one frame onto surf.
func (d *Driver) Step(surf canvas.Surface, events ...canvas.Event) error {
	if d.Sketch == nil {
		return ErrNoSketch
	}
	for _, ev := range events {
		d.Sketch.Handle(ev)
	}
	return d.render(surf)
}

func (d *Driver) render(surf canvas.Surface) error {
	if err := d.Sketch.Frame(surf); err != nil {
		return fmt.Errorf("frame %d: %w", d.frame, err)
	}
	if d.OnFrame != nil {
		if err := d.OnFrame(d.frame, surf); err != nil {
			return fmt.Errorf("frame %d: %w", d.frame, err)
		}
	}
	d.frame++
	return nil
}

// Run renders frames at FPS until ctx is cancelled or, when frames > 0, that
// many frames have been drawn. Events are drained before every frame so the
// sketch is only ever touched from this goroutine. A closed events channel
// is treated as "no more input".
func (d *Driver) Run(ctx context.Context, surfaces SurfaceFunc, events <-chan canvas.Event, frames int) error {
	if d.Sketch == nil {
		return ErrNoSketch
	}
	fps := d.FPS
	if fps <= 0 {
		fps = 60
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var pending []canvas.Event
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			pending = append(pending, ev)
		case <-ticker.C:
			surf, err := surfaces(d.frame)
			if err != nil {
				return err
			}
			if err := d.Step(surf, pending...); err != nil {
				return err
			}
			pending = pending[:0]
			if frames > 0 && d.frame >= frames {
				return nil
			}
		}
	}
}
