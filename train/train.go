// Package train drives a network over a dataset for many epochs and decides
// when to stop.
package train

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"nnlab/m"
	"nnlab/utils"
)

// Config controls a training run. An epoch here is one full pass over the
// dataset, each example presented once through Network.Train.
type Config struct {
	MaxEpochs int
	// TargetAccuracy stops the run once an end-of-epoch evaluation reaches
	// it. Zero disables the check.
	TargetAccuracy float64
	// Schedule, when set, picks the learning rate before each epoch.
	Schedule func(epoch int) float64
	// OnEpoch is called after every epoch, e.g. to redraw a visualizer.
	OnEpoch func(Report)
	// LogEvery prints a progress line through utils.Logf every n epochs.
	LogEvery int
}

// Report describes the network after one epoch.
type Report struct {
	Epoch        int
	Steps        int     // Train calls so far, as counted by the network
	Loss         float64 // mean training error over the epoch
	MeanError    float64 // mean error of the end-of-epoch evaluation
	Accuracy     float64
	LearningRate float64
	Elapsed      time.Duration
}

type Result struct {
	Epochs    int
	Converged bool
	Final     Report
	Stats     utils.TimingStats
}

// Run trains net on lines until the target accuracy or MaxEpochs is
// reached. ctx is checked between examples; a single Train call is never
// interrupted. On cancellation the partial result is returned along with
// the context's error.
func Run(ctx context.Context, net *m.Network, lines m.Lines, cfg Config) (res Result, err error) {
	if len(lines) == 0 {
		return res, errors.New("empty dataset")
	}
	if cfg.MaxEpochs <= 0 {
		return res, errors.Errorf("max epochs must be positive, got %d", cfg.MaxEpochs)
	}
	if err = lines.Validate(net.InputNum(), net.OutputNum()); err != nil {
		return res, errors.Wrapf(err, "dataset does not fit network %s", net)
	}

	start := time.Now()
	defer func() { res.Stats.TotalTime = time.Since(start) }()

	for epoch := 1; epoch <= cfg.MaxEpochs; epoch++ {
		if cfg.Schedule != nil {
			net.SetLearningRate(cfg.Schedule(epoch))
		}

		var loss float64
		for _, line := range lines {
			if err := ctx.Err(); err != nil {
				return res, errors.Wrapf(err, "training stopped in epoch %d", epoch)
			}
			stepStart := time.Now()
			mse, err := net.Train(line.Inputs, line.Targets)
			res.Stats.TrainStepTime += time.Since(stepStart)
			if err != nil {
				return res, err
			}
			loss += mse
		}

		evalStart := time.Now()
		ev, err := net.Evaluate(lines)
		res.Stats.EvaluationTime += time.Since(evalStart)
		if err != nil {
			return res, err
		}

		report := Report{
			Epoch:        epoch,
			Steps:        net.Epoch(),
			Loss:         loss / float64(len(lines)),
			MeanError:    ev.MeanError,
			Accuracy:     ev.Accuracy,
			LearningRate: net.LearningRate(),
			Elapsed:      time.Since(start),
		}
		res.Epochs = epoch
		res.Final = report

		if cfg.OnEpoch != nil {
			cfg.OnEpoch(report)
		}
		if cfg.LogEvery > 0 && (epoch == 1 || epoch%cfg.LogEvery == 0) {
			utils.Logf("Epoch %d of %d | Loss: %.6f | Accuracy: %.1f%% | LR: %.4f\n",
				epoch, cfg.MaxEpochs, report.Loss, report.Accuracy*100, report.LearningRate)
		}

		if cfg.TargetAccuracy > 0 && ev.Accuracy >= cfg.TargetAccuracy {
			res.Converged = true
			break
		}
	}

	return res, nil
}

// StepDecay multiplies the initial rate by factor every n epochs.
func StepDecay(initial, factor float64, n int) func(epoch int) float64 {
	return func(epoch int) float64 {
		if n <= 0 {
			return initial
		}
		return initial * math.Pow(factor, float64((epoch-1)/n))
	}
}
