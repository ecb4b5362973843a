package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the totara version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		banner := figure.NewColorFigure("Totara", "alligator2", "green", true)
		banner.Print()
		fmt.Println()
		fmt.Printf("totara %s\n", Version)
	},
}
