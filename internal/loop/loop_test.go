package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/san-kum/sketches/internal/canvas"
)

type fakeSketch struct {
	events []canvas.Event
	frames int
	fail   error
	resets int
}

func (f *fakeSketch) Handle(ev canvas.Event)      { f.events = append(f.events, ev) }
func (f *fakeSketch) Size() (float64, float64)    { return 100, 100 }
func (f *fakeSketch) SetViewport(canvas.Viewport) {}
func (f *fakeSketch) Reset()                      { f.resets++ }
func (f *fakeSketch) Frame(s canvas.Surface) error {
	f.frames++
	s.Clear(canvas.Black)
	return f.fail
}

func recorders(int) (canvas.Surface, error) { return canvas.NewRecorder(), nil }

func TestStep(t *testing.T) {
	sk := &fakeSketch{}
	d := New(sk, 60)
	rec := canvas.NewRecorder()

	evs := []canvas.Event{
		{Kind: canvas.Press, X: 1, Y: 2},
		{Kind: canvas.Move, X: 3, Y: 4},
		{Kind: canvas.Release},
	}
	if err := d.Step(rec, evs...); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if len(sk.events) != 3 || sk.events[1].X != 3 {
		t.Errorf("events not applied in order: %v", sk.events)
	}
	if sk.frames != 1 || d.Frames() != 1 {
		t.Errorf("expected one frame, got sketch=%d driver=%d", sk.frames, d.Frames())
	}
	if len(rec.Clears) != 1 {
		t.Error("frame was not drawn on the given surface")
	}
}

func TestStep_NoSketch(t *testing.T) {
	d := &Driver{}
	if err := d.Step(canvas.NewRecorder()); !errors.Is(err, ErrNoSketch) {
		t.Errorf("expected ErrNoSketch, got %v", err)
	}
	if err := d.Run(context.Background(), recorders, nil, 1); !errors.Is(err, ErrNoSketch) {
		t.Errorf("expected ErrNoSketch, got %v", err)
	}
}

func TestStep_FrameError(t *testing.T) {
	boom := errors.New("boom")
	d := New(&fakeSketch{fail: boom}, 60)
	if err := d.Step(canvas.NewRecorder()); !errors.Is(err, boom) {
		t.Errorf("expected wrapped frame error, got %v", err)
	}
	if d.Frames() != 0 {
		t.Error("a failed frame must not be counted")
	}
}

func TestRun_FrameLimit(t *testing.T) {
	sk := &fakeSketch{}
	d := New(sk, 1000)

	var seen []int
	d.OnFrame = func(i int, _ canvas.Surface) error {
		seen = append(seen, i)
		return nil
	}

	events := make(chan canvas.Event, 2)
	events <- canvas.Event{Kind: canvas.Press, X: 5, Y: 5}
	close(events)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.Run(ctx, recorders, events, 5); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if sk.frames != 5 || len(seen) != 5 || seen[4] != 4 {
		t.Errorf("expected 5 frames, got %d (%v)", sk.frames, seen)
	}
}

func TestRun_Cancel(t *testing.T) {
	d := New(&fakeSketch{}, 1000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.Run(ctx, recorders, nil, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRun_SurfaceError(t *testing.T) {
	bad := errors.New("no surface")
	d := New(&fakeSketch{}, 1000)
	err := d.Run(context.Background(), func(int) (canvas.Surface, error) { return nil, bad }, nil, 3)
	if !errors.Is(err, bad) {
		t.Errorf("expected surface error, got %v", err)
	}
}
