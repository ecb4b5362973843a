package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/totara/internal/audit"
	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/spf13/cobra"
)

var (
	logLimit   int
	logReverse bool
	logJSON    bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")

	RootCmd.AddCommand(logCmd)
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the profile change journal",
	Long: `Displays the journal of profile operations: which keys changed and
when. Values are never recorded.

Examples:
  totara log               # Full journal
  totara log -n 10         # Last 10 entries
  totara log --reverse     # Most recent first
  totara log --json        # JSON output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		dir, err := profileDir()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve profile directory: %v", err)
		}

		entries, err := audit.ReadEntries(dir)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read journal: %v", err)
		}
		Logger.Debugf("Parsed %d journal entries", len(entries))

		if logReverse {
			for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
		if logLimit > 0 && logLimit < len(entries) {
			if logReverse {
				entries = entries[:logLimit]
			} else {
				entries = entries[len(entries)-logLimit:]
			}
		}

		if logJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Println(ui.Muted.Sprint("no journal entries yet"))
			return nil
		}
		for _, e := range entries {
			detail := e.Key
			if detail == "" {
				detail = e.File
			}
			fmt.Printf("%s  %s  %s  %s\n",
				ui.Muted.Sprint(e.Timestamp), ui.Highlight.Sprint(e.Operation), detail, e.Device)
		}
		return nil
	},
}
