package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pbanos/acorn/dataset"
)

type menuCmdConfig struct {
	*rootCmdConfig
	lazy        bool
	showChoices bool
}

func menuCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &menuCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Pick a dataset from the catalog, grow its tree and make predictions",
		Long:  `Pick a dataset from the catalog, grow a tree predicting its label, export it as DOT and PNG, and predict labels for samples typed in on the console`,
		Run: func(cmd *cobra.Command, args []string) {
			c, err := config.datasetCatalog()
			if err != nil {
				exit(1, err)
			}
			console := stdinConsole(config.showChoices)
			fmt.Println("Select a dataset:")
			for i, e := range c {
				fmt.Printf("%d - %s\n", i+1, e.Name)
			}
			fmt.Printf("Enter your choice (%s): ", c.Choices())
			answer, err := console.ReadLine()
			if err != nil {
				exit(2, errors.Wrap(err, "reading choice"))
			}
			entry, err := c.Choose(answer)
			if err != nil {
				fmt.Println("Invalid choice.")
				exit(2, err)
			}
			logger := config.Logger()
			ds, err := sourceFromEntry(entry).load(config.Context(), logger)
			if err != nil {
				fmt.Println("Dataset is empty or not found.")
				exit(3, err)
			}
			t, err := growTree(ds, entry.Label, logger)
			if err != nil {
				exit(4, err)
			}
			if err = exportTree(config.Context(), os.Stdout, t, &config.settings, logger); err != nil {
				exit(5, err)
			}
			if err = predictionLoop(console, os.Stdout, t, dataset.Features(ds, entry.Label), config.lazy); err != nil {
				exit(6, err)
			}
		},
	}
	cmd.Flags().BoolVar(&(config.lazy), "lazy", false, "ask only for the features on the path to a prediction instead of all of them")
	cmd.Flags().BoolVar(&(config.showChoices), "show-choices", false, "list the values seen in training when asking for a feature")
	return cmd
}
