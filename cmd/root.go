package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gardenplan",
	Short: "Gardenplan - Permaculture garden planner",
	Long: `Gardenplan is a canvas editor for permaculture garden plans.
It places plants, terrain and structures on a real-world grid, keeps an
undo history, and exports plans as PNG, JPEG or QOI images.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
