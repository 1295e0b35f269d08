package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pbanos/acorn/dataset"
)

type predictCmdConfig struct {
	*rootCmdConfig
	source       sourceConfig
	classFeature string
	lazy         bool
	showChoices  bool
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a value for samples answering questions",
		Long:  `Grow a tree from a set of data and use it to predict the class feature value for samples answering questions about their features`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				exit(1, err)
			}
			logger := config.Logger()
			ds, err := config.source.load(config.Context(), logger)
			if err != nil {
				exit(2, errors.Wrap(err, "reading training set"))
			}
			t, err := growTree(ds, config.classFeature, logger)
			if err != nil {
				exit(3, err)
			}
			err = predictionLoop(stdinConsole(config.showChoices), os.Stdout, t, dataset.Features(ds, config.classFeature), config.lazy)
			if err != nil {
				exit(4, err)
			}
		},
	}
	config.source.addFlags(cmd, "input", "i", "data to grow the tree from")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the feature the generated tree should predict (required)")
	cmd.PersistentFlags().BoolVar(&(config.lazy), "lazy", false, "ask only for the features on the path to a prediction instead of all of them")
	cmd.PersistentFlags().BoolVar(&(config.showChoices), "show-choices", false, "list the values seen in training when asking for a feature")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.classFeature == "" {
		return errors.New("required class-feature flag was not set")
	}
	if pcc.source.input == "" {
		return errors.New("the training set cannot be read from STDIN, which is used to answer questions")
	}
	return pcc.source.Validate()
}
