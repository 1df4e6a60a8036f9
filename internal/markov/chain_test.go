package markov_test

import (
	"github.com/san-kum/tilechain/internal/board"
	"github.com/san-kum/tilechain/internal/markov"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Board transition matrix", func() {
	var A *markov.Matrix

	BeforeEach(func() {
		A = board.TransitionMatrix()
	})

	It("is column-stochastic before any jump", func() {
		dice := board.DiceMatrix()
		for j, s := range dice.ColumnSums() {
			Expect(s).To(BeNumerically("~", 1, 1e-9), "column %d", j)
		}
	})

	It("is column-stochastic after the jumps", func() {
		for j, s := range A.ColumnSums() {
			Expect(s).To(BeNumerically("~", 1, 1e-9), "column %d", j)
		}
		Expect(A.IsStochastic(1e-9)).To(BeTrue())
	})

	It("never leaves mass on Go To Jail", func() {
		for _, x := range A.Row(board.GoToJail) {
			Expect(x).To(BeZero())
		}
	})

	It("is rebuilt identically", func() {
		Expect(board.TransitionMatrix().Equal(A)).To(BeTrue())
	})

	It("moves the dice histogram onto tiles 2..12 from Go", func() {
		p1, err := markov.Advance(board.DiceMatrix(), markov.Unit(board.Size, board.Go))
		Expect(err).NotTo(HaveOccurred())

		counts := []float64{1, 2, 3, 4, 5, 6, 5, 4, 3, 2, 1}
		for i, x := range p1 {
			if i >= 2 && i <= 12 {
				Expect(x).To(BeNumerically("~", counts[i-2]/36, 1e-15), "tile %d", i)
			} else {
				Expect(x).To(BeZero(), "tile %d", i)
			}
		}
	})

	It("applies Chance and Community Chest draws on the first turn", func() {
		p1, err := markov.Advance(A, markov.Unit(board.Size, board.Go))
		Expect(err).NotTo(HaveOccurred())

		chance := 6.0 / 36 / 16
		chest := 1.0 / 36 / 17
		want := map[int]float64{
			0:  chest + chance,
			2:  1.0 / 36 * 15 / 17,
			3:  2.0 / 36,
			4:  3.0/36 + chance,
			5:  4.0/36 + 2*chance,
			6:  5.0 / 36,
			7:  6.0 / 36 * 7 / 16,
			8:  5.0 / 36,
			9:  4.0 / 36,
			10: 3.0/36 + chest + chance,
			11: 2.0/36 + chance,
			12: 1.0/36 + chance,
			24: chance,
			39: chance,
		}
		for i, x := range p1 {
			Expect(x).To(BeNumerically("~", want[i], 1e-15), "tile %d", i)
		}
	})
})

var _ = Describe("Evolution", func() {
	var A *markov.Matrix

	BeforeEach(func() {
		A = board.TransitionMatrix()
	})

	It("conserves probability", func() {
		seq, err := markov.Evolve(A, markov.Unit(board.Size, board.Go), 200)
		Expect(err).NotTo(HaveOccurred())
		Expect(seq).To(HaveLen(201))

		for n, p := range seq {
			Expect(p.Sum()).To(BeNumerically("~", 1, 1e-8), "turn %d", n)
		}
	})

	It("does not modify its input", func() {
		p0 := markov.Unit(board.Size, board.Go)
		_, err := markov.Advance(A, p0)
		Expect(err).NotTo(HaveOccurred())
		Expect(p0).To(Equal(markov.Unit(board.Size, board.Go)))
	})

	It("rejects a vector of the wrong length", func() {
		_, err := markov.Advance(A, markov.Unit(3, 0))
		Expect(err).To(MatchError(markov.ErrDimensionMismatch))
	})

	It("rejects a negative turn count", func() {
		_, err := markov.Evolve(A, markov.Unit(board.Size, board.Go), -1)
		Expect(err).To(HaveOccurred())
	})

	It("forgets the starting tile", func() {
		fromGo, err := markov.Evolve(A, markov.Unit(board.Size, board.Go), 200)
		Expect(err).NotTo(HaveOccurred())
		fromRailroad, err := markov.Evolve(A, markov.Unit(board.Size, 25), 200)
		Expect(err).NotTo(HaveOccurred())

		Expect(markov.Distance(fromGo[200], fromRailroad[200])).To(BeNumerically("<", 1e-5))
	})

	It("panics on distributions of different lengths", func() {
		Expect(func() { markov.Distance(markov.Unit(2, 0), markov.Unit(3, 0)) }).To(PanicWith(markov.ErrDimensionMismatch))
	})

	It("settles within the turn limit", func() {
		turns, p, err := markov.Converge(A, markov.Unit(board.Size, board.Go), 1e-10, 1000)
		Expect(err).NotTo(HaveOccurred())
		Expect(turns).To(BeNumerically(">", 1))
		Expect(p.Sum()).To(BeNumerically("~", 1, 1e-8))
	})

	It("reports a turn limit that is too short", func() {
		_, _, err := markov.Converge(A, markov.Unit(board.Size, board.Go), 1e-10, 2)
		Expect(err).To(MatchError(markov.ErrNotConverged))
	})
})

var _ = Describe("Stationary distribution", func() {
	It("is a probability distribution and a fixed point", func() {
		A := board.TransitionMatrix()
		pi, err := markov.Stationary(A)
		Expect(err).NotTo(HaveOccurred())
		Expect(pi).To(HaveLen(board.Size))

		for i, x := range pi {
			Expect(x).To(BeNumerically(">=", 0), "tile %d", i)
		}
		Expect(pi.Sum()).To(BeNumerically("~", 1, 1e-9))

		res, err := markov.Residual(A, pi)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(BeNumerically("<", 1e-9))

		Expect(pi[board.GoToJail]).To(BeNumerically("~", 0, 1e-12))
		Expect(pi.Argmax()).To(Equal(board.Jail))
	})

	It("matches the limit of repeated advancing", func() {
		A := board.TransitionMatrix()
		pi, err := markov.Stationary(A)
		Expect(err).NotTo(HaveOccurred())

		seq, err := markov.Evolve(A, markov.Unit(board.Size, board.Go), 400)
		Expect(err).NotTo(HaveOccurred())
		Expect(markov.Distance(seq[400], pi)).To(BeNumerically("<", 1e-8))
	})

	It("reports an eigenvector that cannot be normalized", func() {
		// eigenvalue 1 belongs to (1, -1), which sums to zero
		A := markov.NewMatrix(2, []float64{
			0, -1,
			-1, 0,
		})
		_, err := markov.Stationary(A)
		Expect(err).To(MatchError(markov.ErrDegenerate))
		Expect(err).To(BeAssignableToTypeOf(&markov.ComputationError{}))
	})

	It("picks the eigenvalue closest to one wherever it is returned", func() {
		A := markov.NewMatrix(2, []float64{
			0.5, 0.25,
			0.5, 0.75,
		})
		pi, err := markov.Stationary(A)
		Expect(err).NotTo(HaveOccurred())
		Expect(pi[0]).To(BeNumerically("~", 1.0/3, 1e-12))
		Expect(pi[1]).To(BeNumerically("~", 2.0/3, 1e-12))
	})
})
