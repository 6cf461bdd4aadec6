// nnlab-train: trains a small sigmoid network on a built-in dataset or a CSV file
//
// Usage:
//
//	nnlab-train --dataset=XOR --arch="2 4 1" --epochs=5000 --lr=0.5
//	nnlab-train --data=gates.csv --arch="2 3 1" --decay=0.5 --decay-every=1000
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"nnlab/datasets"
	"nnlab/m"
	"nnlab/train"
	"nnlab/utils"
)

var (
	datasetName    = flag.String("dataset", "XOR", "Dataset: "+strings.Join(datasets.Names(), ", "))
	dataFile       = flag.String("data", "", "CSV file of inputs followed by targets (needs -arch; overrides -dataset)")
	arch           = flag.String("arch", "", "Layer widths, e.g. \"2 4 1\" (default: derived from dataset)")
	epochs         = flag.Int("epochs", 5000, "Maximum number of passes over the dataset")
	learningRate   = flag.Float64("lr", m.DefaultLearningRate, "Learning rate")
	decay          = flag.Float64("decay", 0.5, "Learning rate factor applied every -decay-every epochs")
	decayEvery     = flag.Int("decay-every", 0, "Decay period in epochs (0 keeps the rate fixed)")
	noise          = flag.Int("noise", 0, "Input values flipped per training example")
	targetAccuracy = flag.Float64("target", 1.0, "Stop once accuracy reaches this fraction (0 disables)")
	seed           = flag.Uint64("seed", 0, "Random seed (0: time based)")
	key            = flag.String("key", "", "Key for a reproducible keyed random stream (overrides -seed)")
	verbose        = flag.Bool("verbose", true, "Verbose output")
	every          = flag.Int("every", 500, "Print progress every n epochs")
	snapshot       = flag.Bool("snapshot", false, "Write a JSON snapshot of the trained network to stdout")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	var snapshotOut io.Writer
	if *snapshot {
		// keep stdout clean for the JSON document
		utils.Output = os.Stderr
		snapshotOut = os.Stdout
	}

	cfg := utils.Config{
		Dataset:        *datasetName,
		DataFile:       *dataFile,
		Epochs:         *epochs,
		LearningRate:   *learningRate,
		TargetAccuracy: *targetAccuracy,
		Seed:           *seed,
		Key:            *key,
		Noise:          *noise,
		Decay:          *decay,
		DecayEvery:     *decayEvery,
	}
	if *arch != "" {
		var err error
		if cfg.Architecture, err = utils.ParseArchitecture(*arch); err != nil {
			fail(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, cfg, *every, snapshotOut)
	stop()
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// run trains on the configured dataset and reports through utils.Output.
// A snapshot is written to snapshotOut when it is not nil. Interrupting ctx
// ends training early without failing the run.
func run(ctx context.Context, cfg utils.Config, every int, snapshotOut io.Writer) error {
	data, err := loadDataset(&cfg)
	if err != nil {
		return err
	}
	if err := utils.ValidateConfig(&cfg); err != nil {
		return err
	}
	if cfg.Noise > 0 {
		data.Lines = datasets.Noisy(data.Lines, cfg.Noise, noiseSource(cfg.Seed))
	}

	utils.Logf("╔══════════════════════════════════════════════════════════════╗\n")
	utils.Logf("║                      nnlab Trainer                           ║\n")
	utils.Logf("╚══════════════════════════════════════════════════════════════╝\n")
	utils.Logf("\nConfiguration:\n")
	utils.Logf("  Dataset:       %s (%d examples)\n", cfg.Dataset, len(data.Lines))
	utils.Logf("  Architecture:  %v\n", cfg.Architecture)
	utils.Logf("  Epochs:        %d\n", cfg.Epochs)
	utils.Logf("  Learning Rate: %.4f\n", cfg.LearningRate)
	if cfg.DecayEvery > 0 {
		utils.Logf("  Decay:         x%.2f every %d epochs\n", cfg.Decay, cfg.DecayEvery)
	}
	if cfg.Noise > 0 {
		utils.Logf("  Noise:         %d flips per example\n", cfg.Noise)
	}
	utils.Logf("  Target:        %.1f%%\n", cfg.TargetAccuracy*100)
	utils.Logf("\n")

	opts := []m.Option{m.WithLearningRate(cfg.LearningRate)}
	switch {
	case cfg.Key != "":
		opts = append(opts, m.WithKey([]byte(cfg.Key)))
	case cfg.Seed != 0:
		opts = append(opts, m.WithSeed(cfg.Seed))
	}

	initStart := time.Now()
	net, err := m.NewNetwork(cfg.Architecture, opts...)
	if err != nil {
		return err
	}
	initTime := time.Since(initStart)

	trainCfg := train.Config{
		MaxEpochs:      cfg.Epochs,
		TargetAccuracy: cfg.TargetAccuracy,
		LogEvery:       every,
	}
	if cfg.DecayEvery > 0 {
		trainCfg.Schedule = train.StepDecay(cfg.LearningRate, cfg.Decay, cfg.DecayEvery)
	}

	utils.Logf("Started training %s...\n", net)
	res, err := train.Run(ctx, net, data.Lines, trainCfg)
	res.Stats.ModelInitTime = initTime
	res.Stats.TotalTime += initTime
	if err != nil && ctx.Err() == nil {
		return err
	}
	if err != nil {
		utils.Logf("\n%v\n", err)
	}

	if res.Converged {
		utils.Logf("\nReached %.1f%% accuracy after %d epochs\n", res.Final.Accuracy*100, res.Epochs)
	} else {
		utils.Logf("\nStopped after %d epochs at %.1f%% accuracy\n", res.Epochs, res.Final.Accuracy*100)
	}
	utils.Logf("Mean error: %.6f\n", res.Final.MeanError)

	if err := printPredictions(net, data); err != nil {
		return err
	}
	utils.PrintTimingStats(&res.Stats, net.Epoch())

	if snapshotOut != nil {
		return utils.WriteSnapshot(snapshotOut, utils.NewSnapshot(net))
	}
	return nil
}

// loadDataset resolves the built-in dataset or reads cfg.DataFile, filling
// in the architecture and dataset name when they are derived.
func loadDataset(cfg *utils.Config) (datasets.Dataset, error) {
	if cfg.DataFile == "" {
		data, err := datasets.Lookup(cfg.Dataset)
		if err != nil {
			return data, err
		}
		if len(cfg.Architecture) == 0 {
			cfg.Architecture = data.Architecture()
		}
		cfg.Dataset = data.Name
		return data, nil
	}

	sizes := cfg.Architecture
	if len(sizes) < 2 {
		return datasets.Dataset{}, errors.New("-data needs -arch with at least the input and output widths")
	}
	f, err := os.Open(cfg.DataFile)
	if err != nil {
		return datasets.Dataset{}, errors.Wrap(err, "opening data file")
	}
	defer f.Close()

	inputs, outputs := sizes[0], sizes[len(sizes)-1]
	lines, err := m.GetLines(f, inputs, outputs)
	if err != nil {
		return datasets.Dataset{}, errors.Wrapf(err, "reading %s", cfg.DataFile)
	}
	cfg.Dataset = filepath.Base(cfg.DataFile)
	return datasets.Dataset{Name: cfg.Dataset, Inputs: inputs, Outputs: outputs, Lines: lines}, nil
}

func noiseSource(seed uint64) rand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewSource(seed)
}

func printPredictions(net *m.Network, data datasets.Dataset) error {
	utils.Logf("\nPredictions:\n")
	for _, line := range data.Lines {
		out, err := net.Predict(line.Inputs)
		if err != nil {
			return err
		}
		mark := "✗"
		if m.Correct(out, line.Targets) {
			mark = "✓"
		}

		if data.Name == "PATTERNS" {
			want := datasets.PatternNames[floats.MaxIdx(line.Targets)]
			got := datasets.PatternNames[floats.MaxIdx(out)]
			utils.Logf("%s\n  want %-10s got %-10s %s\n", datasets.Render(line.Inputs), want, got, mark)
			continue
		}

		rounded := append([]float64(nil), out...)
		for i := range rounded {
			rounded[i] = scalar.Round(rounded[i], 0)
		}
		utils.Logf("  %v -> %.4f (%v, want %v) %s\n", line.Inputs, out, rounded, line.Targets, mark)
	}
	return nil
}
