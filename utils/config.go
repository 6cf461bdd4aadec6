package utils

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config holds training configuration
type Config struct {
	Architecture   []int
	Dataset        string
	Epochs         int
	LearningRate   float64
	TargetAccuracy float64
	Seed           uint64
	Key            string
	DataFile       string  // CSV rows read with m.GetLines instead of a built-in dataset
	Noise          int     // input values flipped per example
	Decay          float64 // learning rate factor applied every DecayEvery epochs
	DecayEvery     int
}

// ParseArchitecture parses an architecture string such as "2 4 1" or
// "25,8,5" into layer widths.
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.FieldsFunc(archStr, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing layer %d of %q", i, archStr)
		}
		arch[i] = n
	}
	return arch, nil
}

// ValidateConfig validates training configuration
func ValidateConfig(config *Config) error {
	if len(config.Architecture) < 2 {
		return errors.New("architecture must have at least 2 layers (input and output)")
	}

	for i, n := range config.Architecture {
		if n < 1 {
			return errors.Errorf("layer %d must have at least one neuron, got %d", i, n)
		}
	}

	if config.Epochs <= 0 {
		return errors.New("epochs must be positive")
	}

	if config.TargetAccuracy < 0 || config.TargetAccuracy > 1 {
		return errors.Errorf("target accuracy must be within [0, 1], got %g", config.TargetAccuracy)
	}

	if config.Noise < 0 {
		return errors.Errorf("noise must not be negative, got %d", config.Noise)
	}

	if config.DecayEvery < 0 {
		return errors.Errorf("decay period must not be negative, got %d", config.DecayEvery)
	}
	if config.DecayEvery > 0 && config.Decay <= 0 {
		return errors.Errorf("decay factor must be positive, got %g", config.Decay)
	}

	return nil
}
