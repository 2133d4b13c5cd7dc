package particles

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/sketches/internal/config"
	"github.com/san-kum/sketches/internal/imagesrc"
	"github.com/san-kum/sketches/internal/vec"
)

var (
	ErrNoImage    = errors.New("particles: no source image")
	ErrEmptyImage = errors.New("particles: source image has no pixels")
)

const (
	minSampledRadius = 1.0
	maxSampledRadius = 12.0
)

// Ring is one concentric circle of the field layout.
type Ring struct {
	Index int
	// Radius is the distance of the ring from the canvas centre.
	Radius float64
	// Count is the number of particles placed on the ring.
	Count int
	// DotRadius is the eased dot radius for this ring. It only affects spacing
	// when the layout enables DecaySpacing.
	DotRadius float64
}

// Rings computes the ring geometry for l without touching any image.
func Rings(l config.LayoutConfig) []Ring {
	rings := make([]Ring, 0, l.RingCount)
	fit := l.DotRadius
	dot := l.DotRadius
	radius := 0.0

	for i := 0; i < l.RingCount; i++ {
		spacing := fit
		if l.DecaySpacing {
			spacing = dot
		}

		count := 1
		if i > 0 {
			circumference := 2 * math.Pi * radius
			count = int(math.Floor(circumference / (spacing*2 + l.DotGap)))
		}

		rings = append(rings, Ring{Index: i, Radius: radius, Count: count, DotRadius: dot})

		radius += spacing*2 + l.RingGap
		dot = (1 - vec.QuadOut(float64(i)/float64(l.RingCount))) * fit
	}
	return rings
}

// Build lays particles out on concentric rings around the centre of a
// width x height canvas and derives their colour and radius from src.
func Build(src imagesrc.Sampler, width, height float64, l config.LayoutConfig, ranges config.PhysicsConfig, rng *rand.Rand) ([]*Particle, error) {
	if src == nil {
		return nil, ErrNoImage
	}
	imgW, imgH := src.Size()
	if imgW <= 0 || imgH <= 0 {
		return nil, ErrEmptyImage
	}
	if l.RingCount < 1 || l.DotRadius <= 0 {
		return nil, fmt.Errorf("%w: layout %+v", config.ErrInvalid, l)
	}

	centre := vec.New(width/2, height/2)
	rings := Rings(l)

	total := 0
	for _, r := range rings {
		total += r.Count
	}
	out := make([]*Particle, 0, total)

	for _, ring := range rings {
		if ring.Count <= 0 {
			continue
		}
		slice := 2 * math.Pi / float64(ring.Count)
		for j := 0; j < ring.Count; j++ {
			home := centre.Polar(ring.Radius, slice*float64(j))

			ix := int(math.Floor(home.X / width * float64(imgW)))
			iy := int(math.Floor(home.Y / height * float64(imgH)))
			col := src.RGBAt(ix, iy)

			radius := vec.MapRange(float64(col.R), 0, 255, minSampledRadius, maxSampledRadius)
			out = append(out, NewParticle(home, radius, col, rng, ranges))
		}
	}
	return out, nil
}
