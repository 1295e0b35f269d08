package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in acorn's version
	VersionMajor = 0
	// VersionMinor is the minor number in acorn's version
	VersionMinor = 1
	// VersionPatch is the patch number in acorn's version
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of acorn",
		Long:  `All software has versions. This is acorn's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("acorn v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
