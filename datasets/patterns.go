package datasets

import (
	"strings"

	"nnlab/m"
)

const side = 5

// PatternNames lists the glyph classes in output order.
var PatternNames = []string{"horizontal", "vertical", "diagonal", "cross", "box"}

var glyphs = [][side]string{
	{
		".....",
		".....",
		"#####",
		".....",
		".....",
	},
	{
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
	},
	{
		"#....",
		".#...",
		"..#..",
		"...#.",
		"....#",
	},
	{
		"..#..",
		"..#..",
		"#####",
		"..#..",
		"..#..",
	},
	{
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	},
}

func parseGlyph(rows [side]string) []float64 {
	pixels := make([]float64, 0, side*side)
	for _, row := range rows {
		for _, c := range row {
			pixels = append(pixels, bit(c == '#'))
		}
	}
	return pixels
}

// Patterns returns one example per glyph: 25 row-major pixels in, a one-hot
// class vector out.
func Patterns() m.Lines {
	lines := make(m.Lines, len(glyphs))
	for i, g := range glyphs {
		targets := make([]float64, len(glyphs))
		targets[i] = 1
		lines[i] = m.Line{Inputs: parseGlyph(g), Targets: targets}
	}
	return lines
}

func patternDataset() Dataset {
	return Dataset{
		Name:    "PATTERNS",
		Inputs:  side * side,
		Outputs: len(glyphs),
		Hidden:  8,
		Lines:   Patterns(),
	}
}

// Render draws 25 pixel values as a 5x5 block of '#' (>= 0.5) and '.'.
func Render(pixels []float64) string {
	var b strings.Builder
	for i, p := range pixels {
		if p >= 0.5 {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
		if (i+1)%side == 0 && i+1 < len(pixels) {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
