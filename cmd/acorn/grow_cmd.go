package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pbanos/acorn/tree/dot"
	"github.com/pbanos/acorn/tree/json"
)

type growCmdConfig struct {
	*rootCmdConfig
	source       sourceConfig
	output       string
	dotOutput    string
	classFeature string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a tree from a set of data to predict a certain feature.`,
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
			if config.output == "" {
				fmt.Print(t)
			} else if err = json.WriteJSONTreeToFile(t, config.output); err != nil {
				exit(4, err)
			}
			if config.dotOutput != "" {
				if err = dot.WriteFile(config.dotOutput, t); err != nil {
					exit(5, err)
				}
			}
		},
	}
	config.source.addFlags(cmd, "input", "i", "data to grow the tree from")
	config.source.addSubsettingFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to an ASCII rendering on STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.dotOutput), "dot-output", "", "path to a file to which the generated tree will be written in DOT format")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the feature the generated tree should predict (required)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.classFeature == "" {
		return errors.New("required class-feature flag was not set")
	}
	return gcc.source.Validate()
}
