package cmd

import (
	"fmt"

	"github.com/PolarWolf314/totara/internal/audit"
	terrors "github.com/PolarWolf314/totara/internal/errors"
	"github.com/PolarWolf314/totara/internal/prompt"
	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the profile password",
	Long: `Verifies the current password, asks for a new one, and re-encrypts every
encrypted value under it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting passwd command")

		// Opening the profile verifies the current password and decrypts
		// the stored values, so Rekey can re-encrypt them.
		s, err := openProfile()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile: %v", err)
		}

		prompter := prompt.NewTerminal()
		newPassword, err := prompter.ReadSecret("New password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read new password: %v", err)
		}
		if newPassword == "" {
			return Logger.ErrorfAndReturn("%v", terrors.ErrEmptyPassword)
		}
		confirm, err := prompter.ReadSecret("Confirm new password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read confirmation: %v", err)
		}
		if newPassword != confirm {
			return Logger.ErrorfAndReturn("%v", terrors.ErrPasswordMismatch)
		}

		if err := s.Rekey(newPassword); err != nil {
			return Logger.ErrorfAndReturn("Failed to change password: %v", err)
		}

		entry := audit.New(s.DeviceID, "passwd")
		entry.File = s.FileName()
		audit.Log(s.Dir(), entry)

		finalMessage := color.GreenString("✓") + " Password changed\n" +
			color.CyanString("→") + " Encrypted values were re-encrypted under the new password"
		fmt.Print(ui.EnsureNewline(finalMessage))
		return nil
	},
}
