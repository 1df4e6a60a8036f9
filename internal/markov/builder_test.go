package markov_test

import (
	"github.com/san-kum/tilechain/internal/markov"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// ring4 moves one tile forward with certainty.
func ring4() *markov.Matrix {
	return markov.Movement(4, []float64{1}, 3)
}

var _ = Describe("Movement", func() {
	It("rotates row 0 to fill every row", func() {
		m := markov.Movement(5, []float64{0.25, 0.75}, 2)
		Expect(m.Row(0)).To(Equal([]float64{0, 0, 0.25, 0.75, 0}))
		Expect(m.Row(1)).To(Equal([]float64{0, 0, 0, 0.25, 0.75}))
		Expect(m.Row(2)).To(Equal([]float64{0.75, 0, 0, 0, 0.25}))
	})

	It("is column-stochastic for normalized weights", func() {
		m := markov.Movement(5, []float64{0.25, 0.75}, 2)
		Expect(m.IsStochastic(1e-12)).To(BeTrue())
	})

	It("panics when the weights overflow the row", func() {
		Expect(func() { markov.Movement(3, []float64{0.5, 0.5}, 2) }).To(Panic())
	})
})

var _ = Describe("Builder", func() {
	It("leaves the base untouched without rules", func() {
		base := ring4()
		m, err := markov.NewBuilder(base).Build()
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Equal(base)).To(BeTrue())
	})

	It("redirects landing mass and scales the source row", func() {
		m, err := markov.NewBuilder(ring4()).
			Jump([]int{1}, 3, 0.5).
			Retain(1, 0.5).
			Build()
		Expect(err).NotTo(HaveOccurred())

		// from tile 0 the token lands on 1, half of it moves on to 3
		Expect(m.Col(0)).To(Equal([]float64{0, 0.5, 0, 0.5}))
		Expect(m.IsStochastic(1e-12)).To(BeTrue())
	})

	It("reads a chained source only after every jump into it", func() {
		build := func(b *markov.Builder) *markov.Matrix {
			m, err := b.Build()
			Expect(err).NotTo(HaveOccurred())
			return m
		}

		forward := build(markov.NewBuilder(ring4()).
			Jump([]int{1}, 2, 0.5).Retain(1, 0.5).
			Jump([]int{2}, 0, 1).Retain(2, 0))
		backward := build(markov.NewBuilder(ring4()).
			Jump([]int{2}, 0, 1).Retain(2, 0).
			Jump([]int{1}, 2, 0.5).Retain(1, 0.5))

		Expect(forward.EqualApprox(backward, 1e-15)).To(BeTrue())
		// 0 -> 1, half stays, half goes to 2 and on to 0
		Expect(forward.Col(0)).To(Equal([]float64{0.5, 0.5, 0, 0}))
		Expect(forward.IsStochastic(1e-12)).To(BeTrue())
	})

	DescribeTable("rejects inconsistent rules",
		func(b *markov.Builder, want error) {
			_, err := b.Build()
			Expect(err).To(MatchError(want))
		},
		Entry("destination out of range", markov.NewBuilder(ring4()).Jump([]int{1}, 4, 1).Retain(1, 0), markov.ErrTileRange),
		Entry("source out of range", markov.NewBuilder(ring4()).Jump([]int{-1}, 0, 1), markov.ErrTileRange),
		Entry("probability above one", markov.NewBuilder(ring4()).Jump([]int{1}, 0, 1.5).Retain(1, 0), markov.ErrProbability),
		Entry("negative retention", markov.NewBuilder(ring4()).Retain(1, -0.1), markov.ErrProbability),
		Entry("missing retention", markov.NewBuilder(ring4()).Jump([]int{1}, 0, 0.5), markov.ErrRuleMass),
		Entry("mass below one", markov.NewBuilder(ring4()).Jump([]int{1}, 0, 0.25).Retain(1, 0.5), markov.ErrRuleMass),
		Entry("retention without jumps", markov.NewBuilder(ring4()).Retain(2, 0.5), markov.ErrRuleMass),
		Entry("two-tile cycle", markov.NewBuilder(ring4()).
			Jump([]int{1}, 2, 0.5).Retain(1, 0.5).
			Jump([]int{2}, 1, 0.5).Retain(2, 0.5), markov.ErrJumpCycle),
		Entry("self loop", markov.NewBuilder(ring4()).Jump([]int{1}, 1, 0.5).Retain(1, 0.5), markov.ErrJumpCycle),
	)

	It("panics from MustBuild on bad rules", func() {
		Expect(func() { markov.NewBuilder(ring4()).Jump([]int{1}, 0, 0.5).MustBuild() }).To(Panic())
	})
})
