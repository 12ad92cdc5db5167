package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mapboot/mapboot/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mapboot",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Hash != "" {
			fmt.Printf("%s (%s)\n", version.Version, version.Hash)
			return
		}
		fmt.Println(version.Version)
	},
}
