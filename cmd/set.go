package cmd

import (
	"github.com/PolarWolf314/totara/internal/audit"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one profile setting and save the profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		Logger.Infof("Starting set command for key: %s", key)

		s, err := openProfile()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile: %v", err)
		}

		if err := s.Set(key, value); err != nil {
			return Logger.ErrorfAndReturn("Failed to set %s: %v", key, err)
		}

		spinner, cleanup := startSpinner("Saving profile...")
		defer cleanup()

		if err := s.Save(); err != nil {
			return Logger.ErrorfAndReturn("Failed to save profile: %v", err)
		}

		entry := audit.New(s.DeviceID, "set")
		entry.Key = key
		audit.Log(s.Dir(), entry)

		finalMessage := color.GreenString("✓") + " Saved " + color.CyanString(key)
		if s.IsSecret(key) {
			finalMessage += " " + color.YellowString("(encrypted)")
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
