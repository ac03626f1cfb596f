package mcmc_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mcsim/internal/integrators"
	"github.com/san-kum/mcsim/internal/mcmc"
)

var _ = Describe("Chain driver", func() {
	var (
		target *mcmc.Func
		cfg    mcmc.Config
	)

	BeforeEach(func() {
		target = mcmc.FromEnergyGradient(2,
			func(x mcmc.State) float64 { return 0.5 * x.Dot(x) },
			func(x mcmc.State) mcmc.State { return x.Clone() },
		)
		cfg = mcmc.DefaultConfig()
		cfg.NumSamples = 300
		cfg.InitialState = mcmc.State{0.5, -0.5}
	})

	DescribeTable("either transition",
		func(build func() mcmc.Transition) {
			chain, err := mcmc.Sample(context.Background(), build(), target, cfg, mcmc.NewSource(7))
			Expect(err).NotTo(HaveOccurred())

			By("recording exactly num_samples states")
			Expect(chain.Len()).To(Equal(cfg.NumSamples))

			By("starting from the initial state")
			Expect(chain.Samples[0]).To(Equal(cfg.InitialState))

			By("making one proposal between consecutive samples")
			Expect(chain.Stats.Proposals).To(Equal(cfg.NumSamples - 1))

			By("only ever recording finite states")
			for _, s := range chain.Samples {
				Expect(s.IsValid()).To(BeTrue())
			}

			By("repeating a sample exactly when a proposal is rejected")
			repeats := 0
			for i := 1; i < chain.Len(); i++ {
				if chain.Samples[i].Equal(chain.Samples[i-1]) {
					repeats++
				}
			}
			Expect(repeats).To(Equal(chain.Stats.Proposals - chain.Stats.Accepted))
		},
		Entry("metropolis", func() mcmc.Transition {
			mh, err := mcmc.NewMetropolis(target, nil, 1.5)
			Expect(err).NotTo(HaveOccurred())
			return mh
		}),
		Entry("hamiltonian", func() mcmc.Transition {
			hcfg := cfg
			hcfg.StepSize = 0.3
			hcfg.LeapfrogSteps = 5
			hmc, err := mcmc.NewHamiltonian(target, integrators.NewLeapfrog(), hcfg)
			Expect(err).NotTo(HaveOccurred())
			return hmc
		}),
	)

	Context("with a target that evaluates to NaN", func() {
		It("aborts without returning samples", func() {
			bad := mcmc.FromEnergy(2, func(x mcmc.State) float64 {
				if x[0] > 1 {
					return math.NaN()
				}
				return 0.5 * x.Dot(x)
			})
			mh, err := mcmc.NewMetropolis(bad, nil, 1.5)
			Expect(err).NotTo(HaveOccurred())

			cfg.NumSamples = 5000
			chain, err := mcmc.Sample(context.Background(), mh, bad, cfg, mcmc.NewSource(7))
			Expect(chain).To(BeNil())
			Expect(err).To(MatchError(mcmc.ErrNaNEnergy))
		})
	})

	Context("with a malformed configuration", func() {
		It("refuses to start", func() {
			mh, err := mcmc.NewMetropolis(target, nil, 1.5)
			Expect(err).NotTo(HaveOccurred())

			cfg.InitialState = mcmc.State{math.Inf(1), 0}
			_, err = mcmc.Sample(context.Background(), mh, target, cfg, mcmc.NewSource(7))
			Expect(err).To(MatchError(mcmc.ErrInvalidConfig))
		})
	})
})
