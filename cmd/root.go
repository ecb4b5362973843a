package cmd

import (
	"strings"

	logger "github.com/PolarWolf314/totara/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose  bool
	debug    bool
	dirFlag  string
	password string

	Logger logger.Logger

	RootCmd = &cobra.Command{
		Use:   "totara",
		Short: "Totara - encrypted settings for the command line.",
		Long: `Totara stores your settings in a plain TOML file, with the fields you
mark as sensitive encrypted under a password of your choosing.

Usage:
  totara <command> [flags]

Run 'totara help <command>' for more details on a specific command.
`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing totara command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	// Flags match keys: case does not matter on the command line either.
	RootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ToLower(name))
	})

	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "profile directory (defaults to the user config directory)")
	RootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "profile password (prompted when omitted)")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(passwdCmd)
	RootCmd.AddCommand(wipeCmd)
	RootCmd.AddCommand(versionCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	dirFlag = ""
	password = ""
	resetShowCommandState()
	resetWipeCommandState()
	resetLogCommandState()
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
