package m

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEvaluateLeavesTrainingStateAlone(t *testing.T) {
	net, err := NewNetwork([]int{2, 3, 1}, WithSeed(8))
	require.NoError(t, err)
	trainEpochs(t, net, andLines, 3)
	weights, epoch, lastErr := copyWeights(net), net.Epoch(), net.LastError()

	ev, err := net.Evaluate(andLines)
	require.NoError(t, err)
	assert.Equal(t, 4, ev.Total)
	assert.Equal(t, float64(ev.Correct)/4, ev.Accuracy)
	assert.Greater(t, ev.MeanError, 0.0)

	assert.Equal(t, epoch, net.Epoch())
	assert.Equal(t, lastErr, net.LastError())
	for l := range weights {
		assert.True(t, mat.Equal(weights[l], net.Weights()[l]))
	}

	_, err = net.Evaluate(Lines{{Inputs: []float64{1}, Targets: []float64{1}}})
	var shapeErr *InputShapeError
	assert.True(t, errors.As(err, &shapeErr))

	ev, err = net.Evaluate(nil)
	require.NoError(t, err)
	assert.Zero(t, ev.Total)
}

func TestCorrect(t *testing.T) {
	assert.True(t, Correct([]float64{0.51}, []float64{1}))
	assert.True(t, Correct([]float64{0.49}, []float64{0}))
	assert.False(t, Correct([]float64{0.49}, []float64{1}))
	assert.True(t, Correct([]float64{0.1, 0.7, 0.2}, []float64{0, 1, 0}))
	assert.False(t, Correct([]float64{0.8, 0.7, 0.2}, []float64{0, 1, 0}))
}
