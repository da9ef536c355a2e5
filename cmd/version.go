package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the linkdock version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("linkdock version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
