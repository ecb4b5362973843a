package cmd

import (
	"fmt"

	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/spf13/cobra"
)

var showReveal bool

func init() {
	showCmd.Flags().BoolVar(&showReveal, "reveal", false, "print encrypted values in the clear")
}

// resetShowCommandState resets the show command's global state for testing.
func resetShowCommandState() {
	showReveal = false
}

const hintWidth = 72

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every profile setting, masking encrypted values",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting show command")

		s, err := openProfile()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile: %v", err)
		}

		masked := false
		for _, key := range s.Keys() {
			value, err := s.Get(key)
			if err != nil {
				Logger.Warnf("Skipping key %s: %v", key, err)
				continue
			}
			if s.IsSecret(key) && value != "" && !showReveal {
				value = ui.Muted.Sprint("<encrypted>")
				masked = true
			}
			fmt.Printf("%s = %s\n", ui.Highlight.Sprint(key), value)
		}

		if masked {
			hint := "Encrypted values are hidden. Run " + ui.Code.Sprint("totara show --reveal") +
				" to print them in the clear. Anyone reading your terminal or its scrollback will see them too."
			fmt.Println()
			fmt.Println(ui.Wrap(hint, hintWidth))
		}
		return nil
	},
}
