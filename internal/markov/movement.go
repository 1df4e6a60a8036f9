package markov

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Movement builds the pure dice-roll matrix for a circuit of size tiles.
//
// Row 0 holds weights starting at column offset. Every following row is the
// previous row rotated right by one, so entry (i, j) is the weight of moving
// (i-j) mod size tiles forward.
func Movement(size int, weights []float64, offset int) *Matrix {
	if offset < 0 || offset+len(weights) > size {
		panic(fmt.Sprintf("markov: %d weights at offset %d do not fit %d tiles", len(weights), offset, size))
	}

	d := mat.NewDense(size, size, nil)
	first := d.RawRowView(0)
	copy(first[offset:], weights)

	for i := 1; i < size; i++ {
		prev := d.RawRowView(i - 1)
		row := d.RawRowView(i)
		row[0] = prev[size-1]
		copy(row[1:], prev[:size-1])
	}

	return newMatrix(d)
}
