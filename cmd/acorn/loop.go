package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pbanos/acorn"
	"github.com/pbanos/acorn/dataset"
	"github.com/pbanos/acorn/dataset/inputsample"
	"github.com/pbanos/acorn/feature"
	"github.com/pbanos/acorn/tree"
	"github.com/pbanos/acorn/tree/dot"
)

const (
	exitCommand = "exit"
	dotFile     = "tree_output.dot"
	pngFile     = "tree_output.png"
)

// growTree grows a tree predicting label from every other feature of ds,
// in column order.
func growTree(ds dataset.Dataset, label string, logger *zap.Logger) (*tree.Tree, error) {
	var features []string
	for _, f := range ds.Features() {
		if f != label {
			features = append(features, f)
		}
	}
	logger.Info("growing tree",
		zap.String("records", humanize.Comma(int64(ds.Count()))),
		zap.Int("features", len(features)),
		zap.String("label", label),
	)
	t, err := acorn.Grow(ds, features, label, logger)
	if err != nil {
		return nil, errors.Wrap(err, "growing the tree")
	}
	nodes, leaves := t.Size()
	logger.Info("tree grown", zap.Int("nodes", nodes), zap.Int("leaves", leaves), zap.Int("depth", t.Depth()))
	logger.Debug("tree\n" + t.String())
	return t, nil
}

// exportTree writes the DOT file of t and renders it into the output
// directory. Rendering failures are logged and do not stop the caller.
func exportTree(ctx context.Context, out io.Writer, t *tree.Tree, s *settings, logger *zap.Logger) error {
	if err := dot.WriteFile(dotFile, t); err != nil {
		return err
	}
	fmt.Fprintf(out, "DOT file written to: %s\n", dotFile)
	png := filepath.Join(s.OutputDir, pngFile)
	output, err := dot.Render(ctx, s.Dot, dotFile, png)
	if len(output) > 0 {
		out.Write(output)
	}
	if err != nil {
		logger.Warn("cannot render tree image", zap.String("file", png), zap.Error(err))
		return nil
	}
	fmt.Fprintf(out, "Tree image created: %s\n", png)
	return nil
}

// predictionLoop asks for samples on console and prints the prediction of t
// for each, until the exit command is given or the input is exhausted.
// When lazy, only the features on the path to a leaf are asked for;
// otherwise all features are asked for in order.
func predictionLoop(console *inputsample.Console, out io.Writer, t *tree.Tree, features []*feature.Feature, lazy bool) error {
	for {
		fmt.Fprintf(out, "\nEnter attribute values to predict (type '%s' to quit):\n", exitCommand)
		sample := console.Sample(features)
		var err error
		if !lazy {
			err = inputsample.ReadAll(sample, t.Features)
		}
		var p *tree.Prediction
		if err == nil {
			p, err = t.Predict(sample)
		}
		var uve *tree.UnseenValueError
		switch {
		case errors.Is(err, inputsample.ErrExit), errors.Is(err, io.ErrUnexpectedEOF):
			return nil
		case errors.As(err, &uve):
			fmt.Fprintf(out, "Prediction: Unknown (value '%s' not seen in training)\n", uve.Value)
		case err != nil:
			return err
		default:
			fmt.Fprintf(out, "Prediction: %s\n", p.Label())
		}
	}
}

func stdinConsole(showChoices bool) *inputsample.Console {
	return inputsample.NewConsole(os.Stdin, inputsample.NewPrompter(os.Stdout, showChoices), exitCommand)
}
