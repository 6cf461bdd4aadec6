package m

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// biasLimit bounds the uniform draw for every bias entry.
const biasLimit = 0.25

// xavierLimit is the Glorot-uniform bound for a fanIn x fanOut transition.
func xavierLimit(fanIn, fanOut int) float64 {
	return math.Sqrt(6 / float64(fanIn+fanOut))
}

// randomFill overwrites data with draws from U[-limit, limit].
func randomFill(data []float64, limit float64, src rand.Source) {
	dist := distuv.Uniform{
		Min: -limit,
		Max: limit,
		Src: src,
	}
	for i := range data {
		data[i] = dist.Rand()
	}
}

func randomizeDense(d *mat.Dense, limit float64, src rand.Source) {
	raw := d.RawMatrix()
	for i := 0; i < raw.Rows; i++ {
		randomFill(raw.Data[i*raw.Stride:i*raw.Stride+raw.Cols], limit, src)
	}
}

func randomizeVec(v *mat.VecDense, limit float64, src rand.Source) {
	randomFill(rawData(v), limit, src)
}

// rawData returns the contiguous backing slice of a vector created by
// mat.NewVecDense.
func rawData(v *mat.VecDense) []float64 {
	return v.RawVector().Data[:v.Len()]
}
