package m

import (
	"strconv"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultLearningRate is used unless WithLearningRate says otherwise.
const DefaultLearningRate = 0.5

// Network is a dense feedforward network with sigmoid units trained by
// per-example backpropagation on squared error.
//
// Every buffer is allocated once in NewNetwork and overwritten in place
// afterwards. Slices and matrices handed out by the accessors are views into
// that state: callers must not modify them, and they reflect whatever the
// next Forward, Backward, Train or Reset writes.
type Network struct {
	sizes        []int
	weights      []*mat.Dense    // weights[l] is sizes[l] x sizes[l+1], [from][to]
	biases       []*mat.VecDense // biases[l] has sizes[l+1] entries
	layers       []*mat.VecDense // activations, layers[0] is the last input
	weightedSums []*mat.VecDense
	gradients    []*mat.VecDense // gradients[0] is never written

	learningRate float64
	epoch        int
	lastError    float64
	src          rand.Source
}

// Option configures a Network during NewNetwork.
type Option func(*Network) error

// WithLearningRate sets the initial step size.
func WithLearningRate(rate float64) Option {
	return func(net *Network) error {
		net.learningRate = rate
		return nil
	}
}

// WithSource sets the random source used for initialization and every
// subsequent Reset.
func WithSource(src rand.Source) Option {
	return func(net *Network) error {
		net.src = src
		return nil
	}
}

// WithSeed is WithSource over a fresh source seeded with seed.
func WithSeed(seed uint64) Option {
	return WithSource(rand.NewSource(seed))
}

// WithKey draws initial weights from a KeyedSource, so two networks built
// with the same key and sizes start identical.
func WithKey(key []byte) Option {
	return func(net *Network) error {
		src, err := NewKeyedSource(key)
		if err != nil {
			return err
		}
		net.src = src
		return nil
	}
}

// NewNetwork builds a network with the given layer widths and randomly
// initialized weights. layerSizes is copied.
func NewNetwork(layerSizes []int, opts ...Option) (*Network, error) {
	if err := validateSizes(layerSizes); err != nil {
		return nil, err
	}
	sizes := append([]int(nil), layerSizes...)
	transitions := len(sizes) - 1

	net := &Network{
		sizes:        sizes,
		weights:      make([]*mat.Dense, transitions),
		biases:       make([]*mat.VecDense, transitions),
		layers:       make([]*mat.VecDense, len(sizes)),
		weightedSums: make([]*mat.VecDense, transitions),
		gradients:    make([]*mat.VecDense, len(sizes)),
		learningRate: DefaultLearningRate,
	}
	for _, opt := range opts {
		if err := opt(net); err != nil {
			return nil, err
		}
	}
	if net.src == nil {
		net.src = defaultSource()
	}

	for i, n := range sizes {
		net.layers[i] = mat.NewVecDense(n, nil)
		net.gradients[i] = mat.NewVecDense(n, nil)
	}
	for l := 0; l < transitions; l++ {
		net.weights[l] = mat.NewDense(sizes[l], sizes[l+1], nil)
		net.biases[l] = mat.NewVecDense(sizes[l+1], nil)
		net.weightedSums[l] = mat.NewVecDense(sizes[l+1], nil)
	}
	net.initialize()

	return net, nil
}

func validateSizes(sizes []int) error {
	if len(sizes) < 2 {
		return &ConfigurationError{
			Sizes:  sizes,
			Reason: "at least 2 layers (input and output) are required",
		}
	}
	for i, n := range sizes {
		if n < 1 {
			return &ConfigurationError{
				Sizes:  sizes,
				Reason: "layer " + strconv.Itoa(i) + " has width " + strconv.Itoa(n),
			}
		}
	}
	return nil
}

func (net *Network) initialize() {
	for l, w := range net.weights {
		randomizeDense(w, xavierLimit(net.sizes[l], net.sizes[l+1]), net.src)
		randomizeVec(net.biases[l], biasLimit, net.src)
	}
}

func (net *Network) lastIndex() int {
	return len(net.layers) - 1
}

// Forward runs one forward pass and returns the output activations. The
// returned slice is the network's own buffer.
func (net *Network) Forward(inputs []float64) ([]float64, error) {
	if err := checkLen("forward", inputs, net.sizes[0]); err != nil {
		return nil, err
	}
	net.feedForward(inputs)
	return rawData(net.layers[net.lastIndex()]), nil
}

// Predict is Forward under the name inference callers expect.
func (net *Network) Predict(inputs []float64) ([]float64, error) {
	if err := checkLen("predict", inputs, net.sizes[0]); err != nil {
		return nil, err
	}
	net.feedForward(inputs)
	return rawData(net.layers[net.lastIndex()]), nil
}

// Classify returns the index of the largest output. Ties go to the lowest
// index.
func (net *Network) Classify(inputs []float64) (int, error) {
	if err := checkLen("classify", inputs, net.sizes[0]); err != nil {
		return 0, err
	}
	net.feedForward(inputs)
	return floats.MaxIdx(rawData(net.layers[net.lastIndex()])), nil
}

func (net *Network) feedForward(inputs []float64) {
	copy(rawData(net.layers[0]), inputs)
	for l, w := range net.weights {
		sums := net.weightedSums[l]
		sums.MulVec(w.T(), net.layers[l])
		sums.AddVec(sums, net.biases[l])
		activateVec(net.layers[l+1], sums)
	}
}

// Backward propagates the error between targets and the activations left
// by the last Forward call, then updates every weight and bias in place.
func (net *Network) Backward(targets []float64) error {
	if err := checkLen("backward", targets, net.sizes[net.lastIndex()]); err != nil {
		return err
	}
	net.backpropagate(targets)
	return nil
}

func (net *Network) backpropagate(targets []float64) {
	var sigmoid Sigmoid
	last := net.lastIndex()

	outputs := net.layers[last]
	for k, t := range targets {
		a := outputs.AtVec(k)
		net.gradients[last].SetVec(k, (t-a)*sigmoid.Deactivate(a))
	}

	for l := last - 1; l > 0; l-- {
		g := net.gradients[l]
		g.MulVec(net.weights[l], net.gradients[l+1])
		deactivateVec(g, g, net.layers[l])
	}

	// All gradients are known before the first weight changes.
	for l, w := range net.weights {
		w.RankOne(w, net.learningRate, net.layers[l], net.gradients[l+1])
		net.biases[l].AddScaledVec(net.biases[l], net.learningRate, net.gradients[l+1])
	}
}

// Train runs Forward and Backward on one example and returns its mean
// squared error, measured on the prediction made before the update.
func (net *Network) Train(inputs, targets []float64) (float64, error) {
	if err := checkLen("train", inputs, net.sizes[0]); err != nil {
		return 0, err
	}
	if err := checkLen("train", targets, net.sizes[net.lastIndex()]); err != nil {
		return 0, err
	}

	net.feedForward(inputs)
	net.backpropagate(targets)

	net.lastError = meanSquaredError(targets, rawData(net.layers[net.lastIndex()]))
	net.epoch++
	return net.lastError, nil
}

func meanSquaredError(targets, outputs []float64) float64 {
	var sum float64
	for k, t := range targets {
		d := t - outputs[k]
		sum += d * d
	}
	return sum / float64(len(targets))
}

// Reset draws fresh weights and biases and clears activations, gradients
// and counters. The learning rate is kept.
func (net *Network) Reset() {
	net.initialize()
	for i := range net.layers {
		net.layers[i].Zero()
		net.gradients[i].Zero()
	}
	for _, s := range net.weightedSums {
		s.Zero()
	}
	net.epoch = 0
	net.lastError = 0
}

// SetLearningRate applies to every later Backward and Train call. Any value
// is accepted.
func (net *Network) SetLearningRate(rate float64) {
	net.learningRate = rate
}

func (net *Network) LearningRate() float64 { return net.learningRate }

// Epoch counts Train calls since construction or the last Reset.
func (net *Network) Epoch() int { return net.epoch }

func (net *Network) LastError() float64 { return net.lastError }

func (net *Network) LayerSizes() []int { return net.sizes }

func (net *Network) Weights() []*mat.Dense { return net.weights }

func (net *Network) Biases() []*mat.VecDense { return net.biases }

func (net *Network) Activations() []*mat.VecDense { return net.layers }

func (net *Network) Gradients() []*mat.VecDense { return net.gradients }

// Output is the output layer's activations from the last forward pass.
func (net *Network) Output() []float64 {
	return rawData(net.layers[net.lastIndex()])
}

func (net *Network) InputNum() int { return net.sizes[0] }

func (net *Network) OutputNum() int { return net.sizes[net.lastIndex()] }

// String renders the architecture, e.g. "2-4-1 sigmoid".
func (net *Network) String() string {
	parts := make([]string, len(net.sizes))
	for i, n := range net.sizes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-") + " " + Sigmoid{}.String()
}
