package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	source    sourceConfig
	setOutput string
	table     string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Copy a set into another format",
		Long:  `Read a set from any supported source and dump it as CSV or into an SQLite3 database table`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.source.Validate()
			if err != nil {
				exit(1, err)
			}
			logger := config.Logger()
			ds, err := config.source.load(config.Context(), logger)
			if err != nil {
				exit(2, errors.Wrap(err, "reading input set"))
			}
			if err = writeDataset(config.Context(), logger, config.setOutput, config.table, ds); err != nil {
				exit(3, errors.Wrap(err, "writing output set"))
			}
		},
	}
	config.source.addFlags(cmd, "input", "i", "set to copy")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file to dump the set (defaults to STDOUT as CSV)")
	cmd.PersistentFlags().StringVar(&(config.table), "output-table", "", "SQL table the set is stored in on SQLite3 outputs (defaults to the name of the file)")
	return cmd
}
