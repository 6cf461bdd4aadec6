package utils

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationUS(t *testing.T) {
	d := 1234*time.Microsecond + 567*time.Nanosecond
	got := DurationUS(d)
	if math.Abs(got-1234.567) > 0.001 {
		t.Fatalf("want 1234.567µs, got %.3f", got)
	}
}

func withOutput(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldVerbose := Output, Verbose
	Output, Verbose = &buf, verbose
	t.Cleanup(func() { Output, Verbose = oldOut, oldVerbose })
	return &buf
}

func TestPrintTimingStats(t *testing.T) {
	buf := withOutput(t, true)
	PrintTimingStats(&TimingStats{
		TotalTime:      10 * time.Millisecond,
		TrainStepTime:  5 * time.Millisecond,
		EvaluationTime: 2 * time.Millisecond,
	}, 100)

	out := buf.String()
	assert.Contains(t, out, "=== TIMING STATISTICS ===")
	assert.Contains(t, out, "Steps completed: 100")
	assert.Contains(t, out, "Training steps: 5ms (50.0%)")
	assert.Contains(t, out, "Average training step time: 50.00µs")
}

func TestPrintTimingStatsZeroSteps(t *testing.T) {
	buf := withOutput(t, true)
	PrintTimingStats(&TimingStats{}, 0)
	assert.Contains(t, buf.String(), "Steps completed: 0")
	assert.NotContains(t, buf.String(), "Average")
}

func TestQuietSuppressesOutput(t *testing.T) {
	buf := withOutput(t, false)
	PrintTimingStats(&TimingStats{TotalTime: time.Second}, 1)
	Logf("epoch %d\n", 1)
	assert.Empty(t, buf.String())
}

func TestLogf(t *testing.T) {
	buf := withOutput(t, true)
	Logf("epoch %d of %d\n", 3, 10)
	assert.Equal(t, "epoch 3 of 10\n", buf.String())
}
