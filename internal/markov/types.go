package markov

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Vector is a probability distribution over tiles.
type Vector []float64

// Unit returns a vector of length n with all mass on tile i.
func Unit(n, i int) Vector {
	v := make(Vector, n)
	v[i] = 1
	return v
}

// Uniform returns a vector of length n with equal mass on every tile.
func Uniform(n int) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = 1 / float64(n)
	}
	return v
}

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

// Sum is the total probability mass. It drifts from 1 only by rounding.
func (v Vector) Sum() float64 {
	return floats.Sum(v)
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Argmax returns the most likely tile.
func (v Vector) Argmax() int {
	return floats.MaxIdx(v)
}

// Matrix is an immutable square transition matrix. Column j holds the
// destination distribution for a token starting on tile j.
type Matrix struct {
	dense *mat.Dense
}

func newMatrix(d *mat.Dense) *Matrix {
	return &Matrix{dense: d}
}

// NewMatrix copies a row-major n×n slice into a Matrix.
func NewMatrix(n int, data []float64) *Matrix {
	return newMatrix(mat.NewDense(n, n, append([]float64(nil), data...)))
}

// Size is the number of tiles.
func (m *Matrix) Size() int {
	r, _ := m.dense.Dims()
	return r
}

func (m *Matrix) At(i, j int) float64 {
	return m.dense.At(i, j)
}

// Row returns a copy of row i, the incoming mass of tile i.
func (m *Matrix) Row(i int) []float64 {
	return mat.Row(nil, i, m.dense)
}

// Col returns a copy of column j, the outgoing distribution of tile j.
func (m *Matrix) Col(j int) []float64 {
	return mat.Col(nil, j, m.dense)
}

// Dense returns a copy of the underlying gonum matrix.
func (m *Matrix) Dense() *mat.Dense {
	return mat.DenseCopyOf(m.dense)
}

func (m *Matrix) ColumnSums() []float64 {
	n := m.Size()
	sums := make([]float64, n)
	for j := 0; j < n; j++ {
		sums[j] = floats.Sum(m.Col(j))
	}
	return sums
}

// MaxColumnDrift is the largest deviation of a column sum from 1.
func (m *Matrix) MaxColumnDrift() float64 {
	drift := 0.0
	for _, s := range m.ColumnSums() {
		drift = math.Max(drift, math.Abs(s-1))
	}
	return drift
}

// IsStochastic reports whether every entry is non-negative and every column
// sums to 1 within tol.
func (m *Matrix) IsStochastic(tol float64) bool {
	n := m.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if m.dense.At(i, j) < 0 {
				return false
			}
		}
	}
	return m.MaxColumnDrift() <= tol
}

func (m *Matrix) Equal(other *Matrix) bool {
	return mat.Equal(m.dense, other.dense)
}

func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	return mat.EqualApprox(m.dense, other.dense, tol)
}
