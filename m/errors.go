package m

import (
	"fmt"
)

// ConfigurationError reports layer sizes a network cannot be built from.
type ConfigurationError struct {
	Sizes  []int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid layer sizes %v: %s", e.Sizes, e.Reason)
}

// InputShapeError reports a vector whose length does not match the layer it
// is fed to or compared against.
type InputShapeError struct {
	Op   string
	Want int
	Got  int
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("%s: expected %d values, got %d", e.Op, e.Want, e.Got)
}

func checkLen(op string, v []float64, want int) error {
	if len(v) != want {
		return &InputShapeError{Op: op, Want: want, Got: len(v)}
	}
	return nil
}
