package m

import (
	"gonum.org/v1/gonum/floats"
)

// Evaluation scores a network on a dataset without training it.
type Evaluation struct {
	Correct   int
	Total     int
	Accuracy  float64 // Correct / Total, in [0, 1]
	MeanError float64 // mean of the per-example MSE
}

// Evaluate runs every line forward and counts correct predictions. Single
// output networks are correct when the output falls on the same side of 0.5
// as the target; wider networks when Classify matches the target's arg-max.
// Weights and training counters are left alone.
func (net *Network) Evaluate(lines Lines) (Evaluation, error) {
	if err := lines.Validate(net.InputNum(), net.OutputNum()); err != nil {
		return Evaluation{}, err
	}
	var ev Evaluation
	if len(lines) == 0 {
		return ev, nil
	}
	for _, line := range lines {
		net.feedForward(line.Inputs)
		outputs := net.Output()
		ev.MeanError += meanSquaredError(line.Targets, outputs)
		if Correct(outputs, line.Targets) {
			ev.Correct++
		}
	}
	ev.Total = len(lines)
	ev.Accuracy = float64(ev.Correct) / float64(ev.Total)
	ev.MeanError /= float64(ev.Total)
	return ev, nil
}

// Correct reports whether outputs count as a right answer for targets.
func Correct(outputs, targets []float64) bool {
	if len(outputs) == 1 {
		return (outputs[0] >= 0.5) == (targets[0] >= 0.5)
	}
	return floats.MaxIdx(outputs) == floats.MaxIdx(targets)
}
