package ising

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func allValid(spins []Spin) bool {
	for _, s := range spins {
		if !s.Valid() {
			return false
		}
	}
	return true
}

var _ = Describe("Ensemble", func() {
	params := Params{CouplingConst: 1, Beta: 1, MagField: 1}

	Describe("spin invariant", func() {
		It("holds after construction", func() {
			e := New(20, params, pcg(11))
			Expect(e.Spins()).To(HaveLen(400))
			Expect(allValid(e.Spins())).To(BeTrue())
		})

		It("holds after every step", func() {
			e := New(6, params, pcg(12))
			for k := 0; k < 5*e.Size(); k++ {
				Expect(e.Step()).To(Succeed())
				Expect(allValid(e.Spins())).To(BeTrue())
			}
		})
	})

	Describe("periodic boundaries", func() {
		It("resolves row -1 to the last row", func() {
			spins := filled(4, Up)
			spins[3*4+0] = Down
			e := mustFromSpins(4, spins, params, nil)
			Expect(e.SiteEnergy(0, 0)).To(Equal(-2.0))
		})

		It("resolves the far edge back to column 0", func() {
			spins := filled(4, Up)
			spins[2*4+0] = Down
			e := mustFromSpins(4, spins, params, nil)
			Expect(e.SiteEnergy(2, 3)).To(Equal(-2.0))
		})
	})

	DescribeTable("energy sign",
		func(centre, neighbour Spin, positive bool) {
			spins := filled(3, neighbour)
			spins[4] = centre
			e := mustFromSpins(3, spins, params, nil)
			if positive {
				Expect(e.SiteEnergy(1, 1)).To(BeNumerically(">", 0))
			} else {
				Expect(e.SiteEnergy(1, 1)).To(BeNumerically("<", 0))
			}
		},
		Entry("up among up", Up, Up, false),
		Entry("down among down", Down, Down, false),
		Entry("up among down", Up, Down, true),
		Entry("down among up", Down, Up, true),
	)

	Describe("Metropolis acceptance", func() {
		var (
			e   *Ensemble
			src *scriptedSource
		)

		BeforeEach(func() {
			src = &scriptedSource{}
			e = mustFromSpins(2, filled(2, Up), params, src)
		})

		It("computes the 2x2 scenario", func() {
			Expect(e.SiteEnergy(0, 0)).To(Equal(-4.0))
			Expect(e.EnergyDelta(0, 0)).To(Equal(8.0))
			Expect(AcceptRatio(8, 1)).To(BeNumerically("~", 0.000335, 1e-6))
		})

		It("rejects r = 0.5", func() {
			src.ints, src.floats = []int{0, 0}, []float64{0.5}
			Expect(e.Step()).To(Succeed())
			Expect(e.Spins()).To(Equal(filled(2, Up)))
		})

		It("accepts r = 0.0001", func() {
			src.ints, src.floats = []int{0, 0}, []float64{0.0001}
			Expect(e.Step()).To(Succeed())
			Expect(e.Spin(0, 0)).To(Equal(Down))
		})

		It("flips iff r is below the ratio", func() {
			ratio := math.Exp(-8)
			for _, r := range []float64{ratio * 0.5, ratio, ratio * 2} {
				e = mustFromSpins(2, filled(2, Up), params, &scriptedSource{ints: []int{1, 1}, floats: []float64{r}})
				Expect(e.Step()).To(Succeed())
				Expect(e.Spin(1, 1) == Down).To(Equal(r < ratio))
			}
		})

		It("always accepts when the change is not positive", func() {
			island := filled(3, Down)
			island[0] = Up
			for _, r := range []float64{0, 0.3, 0.9999} {
				e = mustFromSpins(3, island, params, &scriptedSource{ints: []int{0, 0}, floats: []float64{r}})
				Expect(e.EnergyDelta(0, 0)).To(BeNumerically("<=", 0))
				Expect(e.Step()).To(Succeed())
				Expect(e.Spin(0, 0)).To(Equal(Down))
			}
		})
	})

	It("reports the same size on every call", func() {
		e := New(9, params, pcg(4))
		sizes := make([]int, 0, 10)
		for range 10 {
			sizes = append(sizes, e.Size())
			Expect(e.Step()).To(Succeed())
		}
		Expect(sizes).To(HaveEach(81))
	})

	It("surfaces corruption as ErrInvalidSpin", func() {
		e := mustFromSpins(2, filled(2, Up), params, &scriptedSource{ints: []int{0, 0}, floats: []float64{0}})
		e.spins[0] = 0
		Expect(e.Step()).To(MatchError(ErrInvalidSpin))
	})
})

var _ = Describe("RunIndependent", func() {
	build := func(seed int64) *Ensemble {
		return New(8, Params{CouplingConst: 1, Beta: 0.5}, pcg(uint64(seed)))
	}

	It("returns one ensemble per seed", func() {
		out, err := RunIndependent(context.Background(), 4, 100, 3, build)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveLen(4))
		for _, e := range out {
			Expect(allValid(e.Spins())).To(BeTrue())
		}
		Expect(out[0]).NotTo(BeIdenticalTo(out[1]))
	})

	It("is reproducible per seed", func() {
		a, err := RunIndependent(context.Background(), 3, 7, 5, build)
		Expect(err).NotTo(HaveOccurred())
		b, err := RunIndependent(context.Background(), 3, 7, 5, build)
		Expect(err).NotTo(HaveOccurred())
		for k := range a {
			Expect(a[k].Spins()).To(Equal(b[k].Spins()))
		}
	})

	It("stops on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := RunIndependent(ctx, 2, 0, 1, build)
		Expect(err).To(MatchError(context.Canceled))
	})
})
