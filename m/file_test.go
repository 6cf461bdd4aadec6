package m

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLines(t *testing.T) {
	input := `# a, b, a AND b
0,0,0
0,1,0

1,0,0
1, 1, 1
`
	lines, err := GetLines(strings.NewReader(input), 2, 1)
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, andLines, lines)
}

func TestGetLinesWrongWidth(t *testing.T) {
	_, err := GetLines(strings.NewReader("0,0,0\n0,1\n"), 2, 1)
	require.Error(t, err)
	assert.Equal(t, "at line 2, expected 3 values, got 2", err.Error())
}

func TestGetLinesBadNumber(t *testing.T) {
	_, err := GetLines(strings.NewReader("0,x,0\n"), 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing input at line 1")

	_, err = GetLines(strings.NewReader("0,1,y\n"), 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing target at line 1")
}

func TestLinesValidate(t *testing.T) {
	assert.NoError(t, andLines.Validate(2, 1))

	err := andLines.Validate(3, 1)
	var shapeErr *InputShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "line 1 inputs", shapeErr.Op)
	assert.Equal(t, 3, shapeErr.Want)
	assert.Equal(t, 2, shapeErr.Got)

	err = andLines.Validate(2, 2)
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "line 1 targets", shapeErr.Op)
}
