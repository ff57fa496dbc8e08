package sim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/particles"
	"github.com/san-kum/orbitsim/internal/physics"
)

var _ = Describe("World", func() {
	var (
		w       *World
		initial map[*physics.Body]physics.Vec2
	)

	BeforeEach(func() {
		cfg := config.DefaultConfig()
		cfg.Seed = 42
		var err error
		w, err = New(cfg)
		Expect(err).NotTo(HaveOccurred())

		initial = make(map[*physics.Body]physics.Vec2)
		for _, b := range w.Bodies() {
			initial[b] = b.Pos
		}
	})

	Describe("earth-moon system", func() {
		It("keeps every static body fixed", func() {
			w.Thrust(1)
			for i := 0; i < 500; i++ {
				w.Tick()
			}
			for _, b := range w.Bodies() {
				if b.Static {
					Expect(b.Pos).To(Equal(initial[b]))
					Expect(b.Vel.X).To(BeZero())
					Expect(b.Vel.Y).To(BeZero())
					Expect(b.Trail.Len()).To(BeZero())
				}
			}
		})

		It("bounds the station trail", func() {
			for i := 0; i < 400; i++ {
				w.Tick()
			}
			Expect(w.Station().Trail.Len()).To(Equal(w.Config().Physics.TrailCapacity))
			last, ok := w.Station().Trail.Last()
			Expect(ok).To(BeTrue())
			Expect(last).To(Equal(w.Station().Pos))
		})
	})

	Describe("thrust", func() {
		It("returns the reciprocal direction", func() {
			Expect(w.Thrust(0.25)).To(BeNumerically("~", 0.25+math.Pi, 1e-12))
		})

		It("restarts rather than stacks the episode", func() {
			w.Thrust(0)
			for i := 0; i < 5; i++ {
				w.Tick()
			}
			w.Thrust(1)
			Expect(w.Particles().Remaining()).To(Equal(particles.EpisodeTicks))

			for i := 0; i < particles.EpisodeTicks-1; i++ {
				w.Tick()
			}
			Expect(w.Particles().Active()).To(BeTrue())
			w.Tick()
			Expect(w.Particles().Active()).To(BeFalse())
		})
	})

	Describe("zoom", func() {
		It("rejects zooms past the bounds", func() {
			cam := w.Camera()
			Expect(w.Zoom(cam.MaxScale * 10)).To(BeFalse())
			Expect(w.Camera().Scale).To(Equal(cam.Scale))
			Expect(w.Zoom(1.5)).To(BeTrue())
			Expect(w.Camera().Scale).To(BeNumerically("~", 1.5, 1e-12))
		})
	})
})
