package sim

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/flashboil/internal/droplet"
	"github.com/san-kum/flashboil/internal/flash"
	"github.com/san-kum/flashboil/internal/integrators"
	"github.com/san-kum/flashboil/internal/metrics"
)

func TestScenarios(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Flash Boiling Scenarios")
}

func runScenario(p droplet.Params, cfg Config) *Result {
	r, err := New(p, cfg, integrators.NewRK4())
	Expect(err).NotTo(HaveOccurred())
	for _, m := range metrics.Defaults() {
		r.AddMetric(m)
	}
	return r.RunToCompletion(context.Background())
}

var _ = Describe("flash boiling regimes", func() {
	Context("mild superheat at moderate vacuum", func() {
		var res *Result

		BeforeEach(func() {
			p := droplet.DefaultParams()
			p.InitialTemp = 350
			p.AmbientPressure = 10e3
			p.NucleationOnset = 35
			p.FragSuperheat = 60

			cfg := DefaultConfig()
			cfg.Dt = 1e-6
			cfg.MaxTime = 0.01

			res = runScenario(p, cfg)
		})

		It("stays in surface evaporation for the whole run", func() {
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(OutcomeTimedOut))
			Expect(res.Regime).To(Equal(flash.SurfaceEvaporation))
			Expect(res.Metrics["t_nucleation"]).To(Equal(-1.0))
		})

		It("loses only a small mass fraction", func() {
			last, ok := res.Series.Last()
			Expect(ok).To(BeTrue())
			Expect(last.R).To(BeNumerically(">", 0.9e-3))
			Expect(res.Metrics["evaporated_fraction"]).To(BeNumerically("<", 0.3))
		})

		It("cools toward the ambient saturation temperature", func() {
			last, _ := res.Series.Last()
			Expect(last.Temp).To(BeNumerically("<", 350))
			Expect(last.Superheat).To(BeNumerically("<", res.Metrics["max_superheat"]))
		})
	})

	Context("violent flashing at deep vacuum", func() {
		var res *Result

		BeforeEach(func() {
			p := droplet.DefaultParams()
			p.InitialTemp = 373
			p.AmbientPressure = 1000
			p.NucleationOnset = 30
			p.FragSuperheat = 100

			cfg := DefaultConfig()
			cfg.Dt = 1e-8
			cfg.MaxTime = 2e-4

			res = runScenario(p, cfg)
		})

		It("enters nucleate boiling and stays there", func() {
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(OutcomeTimedOut))
			Expect(res.Regime).To(Equal(flash.NucleateBoiling))
			Expect(res.Metrics["t_nucleation"]).To(BeNumerically(">=", 0))
			Expect(res.Metrics["t_fragmentation"]).To(Equal(-1.0))
		})

		It("evaporates much faster than the mild case", func() {
			Expect(res.Metrics["evaporated_fraction"]).To(BeNumerically(">", 0.05))
		})

		It("quenches the superheat by boiling", func() {
			last, _ := res.Series.Last()
			Expect(last.Superheat).To(BeNumerically("<", res.Metrics["max_superheat"]/2))
		})
	})

	Context("superheat beyond the fragmentation threshold", func() {
		var res *Result

		BeforeEach(func() {
			p := droplet.DefaultParams()
			p.InitialTemp = 400
			p.AmbientPressure = 500
			p.NucleationOnset = 5
			p.FragSuperheat = 30

			cfg := DefaultConfig()
			cfg.Dt = 1e-7
			cfg.MaxTime = 0.1

			res = runScenario(p, cfg)
		})

		It("fragments almost immediately", func() {
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(OutcomeFragmented))
			Expect(res.Regime).To(Equal(flash.Fragmented))
			Expect(res.FinalTime).To(BeNumerically("<", 1e-4))
			Expect(res.Metrics["t_fragmentation"]).To(BeNumerically(">=", 0))
		})

		It("retains mass at fragmentation", func() {
			last, _ := res.Series.Last()
			Expect(last.R).To(BeNumerically(">", droplet.RadiusFloor))
		})
	})

	Context("convective heating from hot surroundings", func() {
		It("keeps the droplet warmer than the adiabatic case", func() {
			base := droplet.DefaultParams()
			base.InitialTemp = 350
			base.AmbientPressure = 10e3
			base.NucleationOnset = 35
			base.FragSuperheat = 60

			heated := base
			heated.Convection = true
			heated.ConvectionCoeff = 1e5
			heated.AmbientTemp = 400

			cfg := DefaultConfig()
			cfg.Dt = 1e-6
			cfg.MaxTime = 1e-3

			cold := runScenario(base, cfg)
			warm := runScenario(heated, cfg)
			Expect(cold.Err).NotTo(HaveOccurred())
			Expect(warm.Err).NotTo(HaveOccurred())

			lastCold, _ := cold.Series.Last()
			lastWarm, _ := warm.Series.Last()
			Expect(lastWarm.Temp).To(BeNumerically(">", lastCold.Temp))
		})
	})
})
