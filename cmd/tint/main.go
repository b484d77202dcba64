// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// assumeYes answers every confirmation dialog with yes.
var assumeYes bool

var rootCmd = &cobra.Command{
	Use:   "tint",
	Short: "tint - theme palette generator and manager",
	Long: `tint derives light and dark UI color palettes from a seed color,
keeps a collection of saved palettes, and serves a live preview.

Every command works on the same edit buffer and palette collection, so a
palette generated from the CLI shows up in the preview server.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to every confirmation")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
