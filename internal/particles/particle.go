package particles

import (
	"math/rand"

	"github.com/san-kum/sketches/internal/canvas"
	"github.com/san-kum/sketches/internal/config"
	"github.com/san-kum/sketches/internal/vec"
)

const (
	// ScaleDistance is the displacement from home at which a particle reaches
	// MaxScale. Larger displacements keep growing past it.
	ScaleDistance = 200.0
	MinScale      = 1.0
	MaxScale      = 5.0
)

// Particle is a disc that springs back to its home position and is pushed away
// from the cursor.
type Particle struct {
	Pos vec.Vec2
	Vel vec.Vec2
	Acc vec.Vec2

	home vec.Vec2

	Radius float64
	Scale  float64
	Color  canvas.RGB

	MinDist    float64
	PushFactor float64
	PullFactor float64
	Damping    float64
}

// NewParticle places a particle at rest on its home position and draws its
// physical constants from ranges.
func NewParticle(home vec.Vec2, radius float64, color canvas.RGB, rng *rand.Rand, ranges config.PhysicsConfig) *Particle {
	return &Particle{
		Pos:        home,
		home:       home,
		Radius:     radius,
		Scale:      MinScale,
		Color:      color,
		MinDist:    ranges.MinDist.Sample(rng.Float64),
		PushFactor: ranges.Push.Sample(rng.Float64),
		PullFactor: ranges.Pull.Sample(rng.Float64),
		Damping:    ranges.Damping.Sample(rng.Float64),
	}
}

// Home is the rest position fixed at layout time.
func (p *Particle) Home() vec.Vec2 { return p.home }

// Displacement is the distance between the particle and its home.
func (p *Particle) Displacement() float64 { return p.home.Dist(p.Pos) }

// Update advances the particle one tick against cursor and reports whether the
// cursor push was active.
func (p *Particle) Update(cursor vec.Vec2, mode config.ForceMode) bool {
	toHome := p.home.Sub(p.Pos)
	p.Acc = toHome.Scale(p.PullFactor)
	p.Scale = vec.MapRange(toHome.Len(), 0, ScaleDistance, MinScale, MaxScale)

	pushed := false
	away := p.Pos.Sub(cursor)
	dist := away.Len()
	if dist < p.MinDist {
		if dir, ok := away.Unit(); ok {
			push := dir.Scale((p.MinDist - dist) * p.PushFactor)
			if mode == config.ForceSum {
				p.Acc = p.Acc.Add(push)
			} else {
				p.Acc = push
			}
			pushed = true
		}
	}

	p.Vel = p.Vel.Add(p.Acc).Scale(p.Damping)
	p.Pos = p.Pos.Add(p.Vel)
	return pushed
}

func (p *Particle) Draw(s canvas.Surface) {
	s.Save()
	s.Translate(p.Pos.X, p.Pos.Y)
	s.FillCircle(0, 0, p.Radius*p.Scale, p.Color)
	s.Restore()
}

// Valid reports whether the mutable state is finite.
func (p *Particle) Valid() bool {
	return p.Pos.IsFinite() && p.Vel.IsFinite() && p.Acc.IsFinite()
}

// KineticEnergy is 0.5*|v|^2 for a unit mass.
func (p *Particle) KineticEnergy() float64 {
	s := p.Vel.Len()
	return 0.5 * s * s
}
