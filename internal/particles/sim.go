package particles

import (
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"sort"
	"sync/atomic"

	"github.com/san-kum/sketches/internal/canvas"
	"github.com/san-kum/sketches/internal/config"
	"github.com/san-kum/sketches/internal/imagesrc"
	"github.com/san-kum/sketches/internal/vec"
)

// Inactive is the cursor position used while no pointer is held down. It lies
// far enough outside the canvas that no particle feels a push.
var Inactive = vec.Vec2{X: 9999, Y: 9999}

// parallelThreshold is the smallest chunk worth a goroutine.
const parallelThreshold = 512

// Stats summarises one simulated frame.
type Stats struct {
	Frame            int
	Particles        int
	Pushed           int
	KineticEnergy    float64
	MeanDisplacement float64
	MaxScale         float64
}

// Sim is the particle field sketch: the particle set, the cursor and the
// viewport used to interpret pointer events. A Sim is not safe for concurrent
// use; hosts serialise input and frames through a single owner.
type Sim struct {
	particles []*Particle
	cursor    vec.Vec2
	pressed   bool

	viewport  canvas.Viewport
	width     float64
	height    float64
	bg        canvas.RGB
	mode      config.ForceMode
	backdrop  image.Image
	imgW      float64
	imgH      float64
	frame     int
	workers   int
	logger    *slog.Logger
	lastStats Stats
}

// New builds the field for cfg from src. The source must be decodable before
// any frame is produced, so a nil or empty source is an error.
func New(cfg *config.Config, src imagesrc.Sampler, logger *slog.Logger) (*Sim, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg, err := canvas.ParseHex(cfg.Canvas.Background)
	if err != nil {
		return nil, fmt.Errorf("particles: %w", err)
	}

	w, h := float64(cfg.Canvas.Width), float64(cfg.Canvas.Height)
	rng := rand.New(rand.NewSource(cfg.Seed))

	ps, err := Build(src, w, h, cfg.Layout, cfg.Physics, rng)
	if err != nil {
		return nil, err
	}

	s := &Sim{
		particles: ps,
		cursor:    Inactive,
		viewport:  canvas.Identity(w, h),
		width:     w,
		height:    h,
		bg:        bg,
		mode:      cfg.Physics.ForceMode,
		logger:    logger.With("sketch", "particles"),
	}
	if d, ok := src.(interface{ Image() image.Image }); ok && cfg.Canvas.ShowImage {
		s.backdrop = d.Image()
		iw, ih := src.Size()
		s.imgW, s.imgH = float64(iw), float64(ih)
	}

	s.logger.Info("field built",
		"particles", len(ps),
		"rings", cfg.Layout.RingCount,
		"seed", cfg.Seed,
		"force_mode", string(s.mode))
	return s, nil
}

func (s *Sim) Particles() []*Particle { return s.particles }

func (s *Sim) Cursor() vec.Vec2 { return s.cursor }

func (s *Sim) Size() (float64, float64) { return s.width, s.height }

func (s *Sim) Stats() Stats { return s.lastStats }

// SetViewport updates the displayed size used to map pointer coordinates.
func (s *Sim) SetViewport(vp canvas.Viewport) { s.viewport = vp }

// SetWorkers bounds the goroutines used per update; zero means GOMAXPROCS and
// one keeps updates on the calling goroutine.
func (s *Sim) SetWorkers(n int) { s.workers = n }

func (s *Sim) Press(ev canvas.Event) {
	s.pressed = true
	s.setCursor(ev)
}

// Move follows the pointer only while it is held down.
func (s *Sim) Move(ev canvas.Event) {
	if !s.pressed {
		return
	}
	s.setCursor(ev)
}

func (s *Sim) Release(canvas.Event) {
	s.pressed = false
	s.cursor = Inactive
}

// Handle dispatches ev to Press, Move or Release.
func (s *Sim) Handle(ev canvas.Event) {
	switch ev.Kind {
	case canvas.Press:
		s.Press(ev)
	case canvas.Move:
		s.Move(ev)
	case canvas.Release:
		s.Release(ev)
	}
}

func (s *Sim) setCursor(ev canvas.Event) {
	s.cursor = s.viewport.ToCanvas(ev.X, ev.Y)
}

// Step orders particles for drawing (smallest scale first) and advances
// each one by a tick.
func (s *Sim) Step() Stats {
	sort.SliceStable(s.particles, func(i, j int) bool {
		return s.particles[i].Scale < s.particles[j].Scale
	})

	cursor := s.cursor
	mode := s.mode
	var pushed atomic.Int64
	parallelFor(len(s.particles), parallelThreshold, s.workers, func(start, end int) {
		n := 0
		for _, p := range s.particles[start:end] {
			if p.Update(cursor, mode) {
				n++
			}
		}
		pushed.Add(int64(n))
	})

	s.frame++
	st := s.measure()
	st.Pushed = int(pushed.Load())
	s.lastStats = st
	return st
}

func (s *Sim) measure() Stats {
	st := Stats{Frame: s.frame, Particles: len(s.particles)}
	if len(s.particles) == 0 {
		return st
	}
	disp := 0.0
	for _, p := range s.particles {
		st.KineticEnergy += p.KineticEnergy()
		disp += p.Displacement()
		if p.Scale > st.MaxScale {
			st.MaxScale = p.Scale
		}
	}
	st.MeanDisplacement = disp / float64(len(s.particles))
	return st
}

// Draw paints the background, the source image and every particle in the
// current order.
func (s *Sim) Draw(surf canvas.Surface) {
	surf.Clear(s.bg)
	surf.FillRect(0, 0, s.width, s.height, s.bg)
	if s.backdrop != nil {
		canvas.DrawImage(surf, s.backdrop, s.imgW, s.imgH)
	}
	for _, p := range s.particles {
		p.Draw(surf)
	}
}

// Frame advances the simulation and renders it.
func (s *Sim) Frame(surf canvas.Surface) error {
	st := s.Step()
	s.Draw(surf)
	if st.Frame%600 == 0 {
		s.logger.Debug("frame", "n", st.Frame, "pushed", st.Pushed, "energy", st.KineticEnergy)
	}
	return nil
}

// Reset returns every particle to rest at home and releases the cursor.
func (s *Sim) Reset() {
	for _, p := range s.particles {
		p.Pos = p.home
		p.Vel = vec.Vec2{}
		p.Acc = vec.Vec2{}
		p.Scale = MinScale
	}
	s.Release(canvas.Event{Kind: canvas.Release})
	s.frame = 0
	s.lastStats = Stats{}
}

// Status is a one-line summary for overlays.
func (s *Sim) Status() string {
	st := s.lastStats
	return fmt.Sprintf("%d particles  pushed %d  energy %.2f  frame %d", len(s.particles), st.Pushed, st.KineticEnergy, st.Frame)
}

// Telemetry is the value hosts plot over time.
func (s *Sim) Telemetry() float64 { return s.lastStats.KineticEnergy }
