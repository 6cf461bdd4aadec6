package utils

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"nnlab/m"
)

const snapshotVersion = "1.0"

// WeightData represents serializable weight data for a layer
type WeightData struct {
	Name  string    `json:"name"`
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// LayerWeight contains weights and bias for a layer transition
type LayerWeight struct {
	Weight *WeightData `json:"weight,omitempty"`
	Bias   *WeightData `json:"bias,omitempty"`
}

// Snapshot is a copy of a network's visible state, for visualizers that
// want it as JSON rather than through the Network accessors.
type Snapshot struct {
	Version      string        `json:"version"`
	LayerSizes   []int         `json:"layer_sizes"`
	Layers       []LayerWeight `json:"layers"`
	Activations  [][]float64   `json:"activations"`
	Epoch        int           `json:"epoch"`
	LastError    float64       `json:"last_error"`
	LearningRate float64       `json:"learning_rate"`
}

// NewSnapshot copies the current weights, biases and activations of net.
func NewSnapshot(net *m.Network) *Snapshot {
	s := &Snapshot{
		Version:      snapshotVersion,
		LayerSizes:   append([]int(nil), net.LayerSizes()...),
		Layers:       make([]LayerWeight, len(net.Weights())),
		Activations:  make([][]float64, len(net.Activations())),
		Epoch:        net.Epoch(),
		LastError:    net.LastError(),
		LearningRate: net.LearningRate(),
	}
	for l, w := range net.Weights() {
		s.Layers[l] = LayerWeight{
			Weight: MatrixToWeightData(fmt.Sprintf("layer%d_weight", l), w),
			Bias:   MatrixToWeightData(fmt.Sprintf("layer%d_bias", l), net.Biases()[l]),
		}
	}
	for l, a := range net.Activations() {
		s.Activations[l] = VectorValues(a)
	}
	return s
}

// MatrixToWeightData copies m row-major. Column vectors keep a 1-D shape.
func MatrixToWeightData(name string, matrix mat.Matrix) *WeightData {
	r, c := matrix.Dims()
	shape := []int{r, c}
	if _, ok := matrix.(mat.Vector); ok {
		shape = []int{r}
	}
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, matrix.At(i, j))
		}
	}
	return &WeightData{
		Name:  name,
		Shape: shape,
		Data:  data,
	}
}

// Dense converts weight data back to a matrix.
func (wd *WeightData) Dense() (*mat.Dense, error) {
	r, c := 1, 1
	switch len(wd.Shape) {
	case 1:
		r = wd.Shape[0]
	case 2:
		r, c = wd.Shape[0], wd.Shape[1]
	default:
		return nil, errors.Errorf("%s: unsupported shape %v", wd.Name, wd.Shape)
	}
	if r*c != len(wd.Data) {
		return nil, errors.Errorf("%s: shape %v does not match %d values", wd.Name, wd.Shape, len(wd.Data))
	}
	return mat.NewDense(r, c, append([]float64(nil), wd.Data...)), nil
}

// VectorValues copies a vector into a plain slice.
func VectorValues(v mat.Vector) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// WriteSnapshot writes s as indented JSON.
func WriteSnapshot(w io.Writer, s *Snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal snapshot")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "failed to write snapshot")
	}
	return nil
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal snapshot")
	}
	return &s, nil
}
