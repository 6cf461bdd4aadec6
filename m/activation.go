package m

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// sigmoidClamp bounds the pre-activation so math.Exp never overflows.
const sigmoidClamp = 500.0

type Sigmoid struct{}

func (s Sigmoid) Activate(sum float64) float64 {
	if sum > sigmoidClamp {
		sum = sigmoidClamp
	} else if sum < -sigmoidClamp {
		sum = -sigmoidClamp
	}
	return 1.0 / (1.0 + math.Exp(-sum))
}

// Deactivate is the derivative expressed in terms of the sigmoid's output.
func (s Sigmoid) Deactivate(a float64) float64 {
	return a * (1 - a)
}

func (s Sigmoid) String() string {
	return "sigmoid"
}

// activateVec writes sigmoid(sums) into dst.
func activateVec(dst, sums *mat.VecDense) {
	var sigmoid Sigmoid
	for i := 0; i < sums.Len(); i++ {
		dst.SetVec(i, sigmoid.Activate(sums.AtVec(i)))
	}
}

// deactivateVec scales errs element-wise by the sigmoid derivative of
// outputs, storing the result in dst.
func deactivateVec(dst, errs, outputs *mat.VecDense) {
	var sigmoid Sigmoid
	for i := 0; i < errs.Len(); i++ {
		dst.SetVec(i, errs.AtVec(i)*sigmoid.Deactivate(outputs.AtVec(i)))
	}
}
