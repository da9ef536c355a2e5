// Package cmd wires the linkdock command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "linkdock",
	Short: "Companion daemon for the linkdock design tool plugin",
	Long: `linkdock is the companion daemon behind the linkdock design tool plugin.

The plugin's chat panel and its host shim both connect here over websockets.
Panel messages become link searches, and preview card actions become edits
performed inside the open design document.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
