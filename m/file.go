package m

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Line is one training example.
type Line struct {
	Inputs  []float64
	Targets []float64
}
type Lines []Line

// Validate checks every line against the given input and output widths.
func (lines Lines) Validate(inputNum, outputNum int) error {
	for i, line := range lines {
		if err := checkLen("line "+strconv.Itoa(i+1)+" inputs", line.Inputs, inputNum); err != nil {
			return err
		}
		if err := checkLen("line "+strconv.Itoa(i+1)+" targets", line.Targets, outputNum); err != nil {
			return err
		}
	}
	return nil
}

// GetLines reads comma separated rows of inputNum inputs followed by
// outputNum targets. Blank lines and lines starting with '#' are skipped.
func GetLines(reader io.Reader, inputNum, outputNum int) (Lines, error) {
	scanner := bufio.NewScanner(reader)
	var lines Lines
	var lineNum int
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		splits := strings.Split(text, ",")
		if len(splits) != inputNum+outputNum {
			return lines, errInvalidLine{
				lineNum:  lineNum,
				splits:   len(splits),
				expected: inputNum + outputNum,
			}
		}
		inputs := make([]float64, inputNum)
		targets := make([]float64, outputNum)

		for i, split := range splits {
			num, err := strconv.ParseFloat(strings.TrimSpace(split), 64)
			if i < inputNum {
				if err != nil {
					return lines, errors.Wrapf(err, "parsing input at line %d", lineNum)
				}
				inputs[i] = num
			} else {
				if err != nil {
					return lines, errors.Wrapf(err, "parsing target at line %d", lineNum)
				}
				targets[i-inputNum] = num
			}
		}
		lines = append(lines, Line{
			Inputs:  inputs,
			Targets: targets,
		})
	}
	if err := scanner.Err(); err != nil {
		return lines, errors.Wrap(err, "reading lines")
	}
	return lines, nil
}

type errInvalidLine struct {
	lineNum  int
	splits   int
	expected int
}

func (e errInvalidLine) Error() string {
	return fmt.Sprintf("at line %d, expected %d values, got %d",
		e.lineNum, e.expected, e.splits)
}
