package cmd

import (
	"fmt"

	"github.com/PolarWolf314/totara/internal/audit"
	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create your profile, choosing its password on first use",
	Long: `Creates the totara profile if it does not exist yet. Because the profile
contains encrypted fields, first use asks you to choose a password; the
file is written immediately so the password sticks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		s, err := openProfile()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to initialize profile: %v", err)
		}

		entry := audit.New(s.DeviceID, "init")
		entry.File = s.FileName()
		audit.Log(s.Dir(), entry)

		finalMessage := color.GreenString("✓") + " Profile ready\n" +
			"    file:   " + color.YellowString(s.Path()) + "\n" +
			"    device: " + color.CyanString(s.DeviceID) + "\n" +
			color.CyanString("→") + " Run " + color.YellowString("totara show") + " to see your settings"
		fmt.Print(ui.EnsureNewline(finalMessage))
		return nil
	},
}
