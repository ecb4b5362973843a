package cmd

import (
	"fmt"

	"github.com/PolarWolf314/totara/internal/prompt"
	"github.com/PolarWolf314/totara/internal/store"
	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var wipeForce bool

func init() {
	wipeCmd.Flags().BoolVarP(&wipeForce, "force", "f", false, "skip the confirmation prompt")
}

// resetWipeCommandState resets the wipe command's global state for testing.
func resetWipeCommandState() {
	wipeForce = false
}

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Securely delete the profile directory",
	Long: `Overwrites every file in the profile directory with random bytes before
removing it. This cannot be undone, and no password is needed: the point
is destroying data, not reading it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting wipe command")

		dir, err := profileDir()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve profile directory: %v", err)
		}

		if !wipeForce {
			fmt.Printf("%s This permanently destroys everything under %s\n",
				color.RedString("!"), color.YellowString(dir))
			answer, err := prompt.NewTerminal().ReadLine("Type 'wipe' to confirm: ")
			if err != nil || answer != "wipe" {
				finalMessage := color.RedString("✗") + " Aborted, nothing was deleted"
				fmt.Print(ui.EnsureNewline(finalMessage))
				return nil
			}
		}

		spinner, cleanup := startSpinner("Shredding profile...")
		defer cleanup()

		if err := store.ShredDir(dir); err != nil {
			return Logger.ErrorfAndReturn("Failed to wipe %s: %v", dir, err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Wiped " + color.YellowString(dir)
		return nil
	},
}
