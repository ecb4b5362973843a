package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of one profile setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting get command for key: %s", args[0])

		s, err := openProfile()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open profile: %v", err)
		}

		value, err := s.Get(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read %s: %v", args[0], err)
		}

		// Bare value on stdout so the output is scriptable.
		fmt.Println(value)
		return nil
	},
}
