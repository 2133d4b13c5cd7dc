package particles_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sketches/internal/canvas"
	"github.com/san-kum/sketches/internal/config"
	"github.com/san-kum/sketches/internal/imagesrc"
	"github.com/san-kum/sketches/internal/particles"
	"github.com/san-kum/sketches/internal/vec"
)

func smallConfig(rings int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Layout.RingCount = rings
	cfg.Seed = 11
	return cfg
}

var _ = Describe("Sim", func() {
	var (
		cfg *config.Config
		img *imagesrc.Image
		sim *particles.Sim
	)

	BeforeEach(func() {
		cfg = smallConfig(8)
		img = imagesrc.Radial(108, 108)
		var err error
		sim, err = particles.New(cfg, img, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("starts with the cursor inactive", func() {
			Expect(sim.Cursor()).To(Equal(particles.Inactive))
		})

		It("refuses to start without an image", func() {
			_, err := particles.New(cfg, nil, nil)
			Expect(errors.Is(err, particles.ErrNoImage)).To(BeTrue())
		})

		It("rejects an invalid configuration", func() {
			cfg.Canvas.Width = 0
			_, err := particles.New(cfg, img, nil)
			Expect(err).To(MatchError(config.ErrInvalid))
		})

		It("builds a single centred particle for one ring", func() {
			one, err := particles.New(smallConfig(1), img, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(one.Particles()).To(HaveLen(1))
			Expect(one.Particles()[0].Home()).To(Equal(vec.New(540, 540)))
		})

		It("is reproducible for the same seed", func() {
			again, err := particles.New(smallConfig(8), img, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Particles()).To(HaveLen(len(sim.Particles())))
			for i, p := range sim.Particles() {
				Expect(again.Particles()[i].Home()).To(Equal(p.Home()))
				Expect(again.Particles()[i].PushFactor).To(Equal(p.PushFactor))
			}
		})
	})

	Describe("pointer input", func() {
		It("moves the cursor on press and resets it on release", func() {
			sim.Press(canvas.Event{Kind: canvas.Press, X: 100, Y: 200})
			Expect(sim.Cursor()).To(Equal(vec.New(100, 200)))

			sim.Move(canvas.Event{Kind: canvas.Move, X: 300, Y: 400})
			Expect(sim.Cursor()).To(Equal(vec.New(300, 400)))

			sim.Release(canvas.Event{Kind: canvas.Release})
			Expect(sim.Cursor()).To(Equal(particles.Inactive))
		})

		It("ignores moves while the pointer is up", func() {
			sim.Handle(canvas.Event{Kind: canvas.Move, X: 10, Y: 10})
			Expect(sim.Cursor()).To(Equal(particles.Inactive))
		})

		It("maps device pixels through the viewport", func() {
			sim.SetViewport(canvas.Viewport{DisplayW: 540, DisplayH: 540, CanvasW: 1080, CanvasH: 1080})
			sim.Handle(canvas.Event{Kind: canvas.Press, X: 270, Y: 135})
			Expect(sim.Cursor()).To(Equal(vec.New(540, 270)))
		})
	})

	Describe("stepping", func() {
		It("leaves a field at rest untouched when the cursor is far away", func() {
			sim.Press(canvas.Event{Kind: canvas.Press, X: 9999, Y: 9999})
			st := sim.Step()
			Expect(st.Pushed).To(Equal(0))
			Expect(st.KineticEnergy).To(BeNumerically("==", 0))
			for _, p := range sim.Particles() {
				Expect(p.Pos).To(Equal(p.Home()))
			}
		})

		It("pushes particles near the cursor and lets them settle after release", func() {
			sim.Press(canvas.Event{Kind: canvas.Press, X: 540, Y: 560})
			st := sim.Step()
			Expect(st.Pushed).To(BeNumerically(">", 0))

			for i := 0; i < 30; i++ {
				sim.Step()
			}
			Expect(sim.Stats().MeanDisplacement).To(BeNumerically(">", 0))

			sim.Release(canvas.Event{Kind: canvas.Release})
			for i := 0; i < 2000; i++ {
				sim.Step()
			}
			Expect(sim.Stats().Pushed).To(Equal(0))
			Expect(sim.Stats().MeanDisplacement).To(BeNumerically("<", 0.5))
			for _, p := range sim.Particles() {
				Expect(p.Valid()).To(BeTrue())
			}
		})

		It("produces the same result with and without workers", func() {
			serial, err := particles.New(smallConfig(20), img, nil)
			Expect(err).NotTo(HaveOccurred())
			serial.SetWorkers(1)
			wide, err := particles.New(smallConfig(20), img, nil)
			Expect(err).NotTo(HaveOccurred())
			wide.SetWorkers(8)
			Expect(len(wide.Particles())).To(BeNumerically(">", 1024))

			press := canvas.Event{Kind: canvas.Press, X: 500, Y: 520}
			serial.Press(press)
			wide.Press(press)
			for i := 0; i < 25; i++ {
				a, b := serial.Step(), wide.Step()
				Expect(b.Pushed).To(Equal(a.Pushed))
				Expect(b.KineticEnergy).To(BeNumerically("~", a.KineticEnergy, 1e-9))
			}
		})

		It("orders particles by the previous frame's scale", func() {
			sim.Press(canvas.Event{Kind: canvas.Press, X: 540, Y: 540})
			for i := 0; i < 10; i++ {
				sim.Step()
			}
			before := make(map[*particles.Particle]float64, len(sim.Particles()))
			for _, p := range sim.Particles() {
				before[p] = p.Scale
			}

			sim.Step()
			ps := sim.Particles()
			for i := 1; i < len(ps); i++ {
				Expect(before[ps[i]]).To(BeNumerically(">=", before[ps[i-1]]))
			}
		})

		It("counts frames and resets to rest", func() {
			sim.Press(canvas.Event{Kind: canvas.Press, X: 540, Y: 540})
			sim.Step()
			sim.Step()
			Expect(sim.Stats().Frame).To(Equal(2))
			Expect(sim.Status()).To(ContainSubstring("frame 2"))
			Expect(sim.Telemetry()).To(Equal(sim.Stats().KineticEnergy))

			sim.Reset()
			Expect(sim.Stats().Frame).To(Equal(0))
			Expect(sim.Cursor()).To(Equal(particles.Inactive))
			for _, p := range sim.Particles() {
				Expect(p.Pos).To(Equal(p.Home()))
				Expect(p.Scale).To(Equal(particles.MinScale))
			}
		})
	})

	Describe("drawing", func() {
		It("paints background, image and every particle", func() {
			rec := canvas.NewRecorder()
			Expect(sim.Frame(rec)).To(Succeed())

			Expect(rec.Clears).To(ConsistOf(canvas.Black))
			Expect(rec.Images).To(Equal(1))
			Expect(rec.Circles).To(HaveLen(len(sim.Particles())))
			Expect(rec.Balanced()).To(BeTrue())
		})

		It("skips the image when disabled", func() {
			cfg.Canvas.ShowImage = false
			plain, err := particles.New(cfg, img, nil)
			Expect(err).NotTo(HaveOccurred())

			rec := canvas.NewRecorder()
			plain.Draw(rec)
			Expect(rec.Images).To(Equal(0))
		})

		It("draws particles in their sorted order", func() {
			sim.Press(canvas.Event{Kind: canvas.Press, X: 540, Y: 545})
			for i := 0; i < 15; i++ {
				sim.Step()
			}
			rec := canvas.NewRecorder()
			sim.Draw(rec)

			ps := sim.Particles()
			Expect(rec.Circles).To(HaveLen(len(ps)))
			for i, p := range ps {
				Expect(rec.Circles[i].Center).To(Equal(p.Pos))
				Expect(rec.Circles[i].R).To(BeNumerically("~", p.Radius*p.Scale, 1e-9))
			}
		})
	})
})
