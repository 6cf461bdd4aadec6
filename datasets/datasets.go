// Package datasets holds the small built-in training sets: two-input logic
// gates and 5x5 pixel glyphs.
package datasets

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"nnlab/m"
)

// Dataset pairs lines with the widths a network needs to learn them.
type Dataset struct {
	Name    string
	Inputs  int
	Outputs int
	Hidden  int // suggested hidden width
	Lines   m.Lines
}

// Architecture is the default input-hidden-output layout for the dataset.
func (d Dataset) Architecture() []int {
	return []int{d.Inputs, d.Hidden, d.Outputs}
}

// gate builds the four rows of a two-input gate from its truth function.
func gate(fn func(a, b bool) bool) m.Lines {
	var lines m.Lines
	for _, in := range [][2]bool{{false, false}, {false, true}, {true, false}, {true, true}} {
		out := 0.0
		if fn(in[0], in[1]) {
			out = 1
		}
		lines = append(lines, m.Line{
			Inputs:  []float64{bit(in[0]), bit(in[1])},
			Targets: []float64{out},
		})
	}
	return lines
}

func bit(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func AND() m.Lines  { return gate(func(a, b bool) bool { return a && b }) }
func OR() m.Lines   { return gate(func(a, b bool) bool { return a || b }) }
func NAND() m.Lines { return gate(func(a, b bool) bool { return !(a && b) }) }
func NOR() m.Lines  { return gate(func(a, b bool) bool { return !(a || b) }) }
func XOR() m.Lines  { return gate(func(a, b bool) bool { return a != b }) }

var registry = map[string]func() Dataset{
	"AND":      func() Dataset { return gateDataset("AND", AND()) },
	"OR":       func() Dataset { return gateDataset("OR", OR()) },
	"NAND":     func() Dataset { return gateDataset("NAND", NAND()) },
	"NOR":      func() Dataset { return gateDataset("NOR", NOR()) },
	"XOR":      func() Dataset { return gateDataset("XOR", XOR()) },
	"PATTERNS": func() Dataset { return patternDataset() },
}

func gateDataset(name string, lines m.Lines) Dataset {
	return Dataset{Name: name, Inputs: 2, Outputs: 1, Hidden: 4, Lines: lines}
}

// Lookup returns a fresh copy of the named dataset. Names are case
// insensitive.
func Lookup(name string) (Dataset, error) {
	build, ok := registry[strings.ToUpper(name)]
	if !ok {
		return Dataset{}, errors.Errorf("unknown dataset %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return build(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Noisy returns a copy of lines with flips input pixels toggled per
// example. flips is clamped to [0, input width]. Targets are shared with the
// input lines.
func Noisy(lines m.Lines, flips int, src rand.Source) m.Lines {
	rng := rand.New(src)
	out := make(m.Lines, len(lines))
	for i, line := range lines {
		inputs := append([]float64(nil), line.Inputs...)
		for _, p := range rng.Perm(len(inputs))[:max(0, min(flips, len(inputs)))] {
			inputs[p] = 1 - inputs[p]
		}
		out[i] = m.Line{Inputs: inputs, Targets: line.Targets}
	}
	return out
}
