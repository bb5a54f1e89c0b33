// Package sizes provides size functions for grid axes.
package sizes

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/on-the-ground/gridview/axis"
)

// Uniform sizes every item v.
func Uniform(v float64) axis.SizeFunc {
	return func(int) float64 { return v }
}

// Slice sizes item i values[i]. It panics on indices past the slice, like
// any other out-of-range read.
func Slice(values []float64) axis.SizeFunc {
	return func(i int) float64 {
		if i < 0 || i >= len(values) {
			panic(fmt.Errorf("%w: %d not in [0, %d)", axis.ErrIndexOutOfRange, i, len(values)))
		}
		return values[i]
	}
}

// Random draws n sizes in [base, base+spread], rounded to whole units.
func Random(rng *rand.Rand, n int, base, spread float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = base + math.Round(rng.Float64()*spread)
	}
	return values
}
