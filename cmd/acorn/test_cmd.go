package main

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type testCmdConfig struct {
	*rootCmdConfig
	training     sourceConfig
	testing      sourceConfig
	classFeature string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Grow a tree from a training set and test its performance against a test set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				exit(1, err)
			}
			logger := config.Logger()
			trainingSet, err := config.training.load(config.Context(), logger)
			if err != nil {
				exit(2, errors.Wrap(err, "reading training set"))
			}
			testingSet, err := config.testing.load(config.Context(), logger)
			if err != nil {
				exit(3, errors.Wrap(err, "reading testing set"))
			}
			t, err := growTree(trainingSet, config.classFeature, logger)
			if err != nil {
				exit(4, err)
			}
			logger.Info("testing tree", zap.String("records", humanize.Comma(int64(testingSet.Count()))))
			successRate, unseen, err := t.Test(testingSet)
			if err != nil {
				exit(5, errors.Wrap(err, "testing tree"))
			}
			fmt.Printf("%f success rate, failed to make a prediction for %d samples\n", successRate, unseen)
		},
	}
	config.training.addFlags(cmd, "input", "i", "data to grow the tree from")
	config.training.addSubsettingFlags(cmd)
	config.testing.addFlags(cmd, "test", "t", "data to test the tree against")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the feature the generated tree should predict (required)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.classFeature == "" {
		return errors.New("required class-feature flag was not set")
	}
	if tcc.training.input == "" && tcc.testing.input == "" {
		return errors.New("training and testing sets cannot both be read from STDIN")
	}
	if err := tcc.training.Validate(); err != nil {
		return err
	}
	return tcc.testing.Validate()
}
