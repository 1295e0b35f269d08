package main

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pbanos/acorn/dataset"
)

type splitCmdConfig struct {
	*rootCmdConfig
	source           sourceConfig
	setOutput        string
	splitOutput      string
	table            string
	splitProbability int
	seed             int64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, for instance to get training and testing sets`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				exit(1, err)
			}
			logger := config.Logger()
			ds, err := config.source.load(config.Context(), logger)
			if err != nil {
				exit(2, errors.Wrap(err, "reading input set"))
			}
			seed := config.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			output, split := splitDataset(ds, config.splitProbability, rand.New(rand.NewSource(seed)))
			if err = writeDataset(config.Context(), logger, config.setOutput, config.table, output); err != nil {
				exit(3, errors.Wrap(err, "writing output set"))
			}
			if err = writeDataset(config.Context(), logger, config.splitOutput, config.table, split); err != nil {
				exit(4, errors.Wrap(err, "writing split set"))
			}
		},
	}
	config.source.addFlags(cmd, "input", "i", "set to split")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file to dump the output set (defaults to STDOUT as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a CSV (.csv) or SQLite3 (.db) file to dump the split set (required)")
	cmd.PersistentFlags().StringVar(&(config.table), "output-table", "", "SQL table the sets are stored in on SQLite3 outputs (defaults to the name of the file)")
	cmd.PersistentFlags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a sample of the set will be assigned to the split set")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the random assignment of samples (defaults to the current time)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.splitOutput == "" {
		return errors.New("required split-output flag was not set")
	}
	if scc.splitOutput == scc.setOutput {
		return errors.New("output and split-output flags must point to different files")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return errors.New("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return scc.source.Validate()
}

// splitDataset assigns every record of ds to the split set with the given
// percent probability, and to the output set otherwise, keeping record order.
func splitDataset(ds dataset.Dataset, splitProbability int, randomizer *rand.Rand) (dataset.Dataset, dataset.Dataset) {
	var output, split []dataset.Record
	for _, r := range ds.Records() {
		if 100*randomizer.Float32() > float32(splitProbability) {
			output = append(output, r)
		} else {
			split = append(split, r)
		}
	}
	return dataset.New(ds.Features(), output), dataset.New(ds.Features(), split)
}
