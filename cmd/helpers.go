package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/totara/internal/profile"
	"github.com/PolarWolf314/totara/internal/settings"
	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/briandowns/spinner"
)

// profileDir resolves the profile directory: the --dir flag when given,
// the platform config directory otherwise.
func profileDir() (string, error) {
	if dirFlag != "" {
		return dirFlag, nil
	}
	return profile.DefaultDir()
}

// openProfile loads the profile under the selected directory, running the
// password gate. The --password flag suppresses interactive prompting.
func openProfile() (*profile.Settings, error) {
	dir, err := profileDir()
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Opening profile in %s", dir)

	opts := []settings.Option{settings.WithLogger(Logger)}
	if password != "" {
		opts = append(opts, settings.WithPassword(password))
	}
	return profile.Load(dir, opts...)
}

// startSpinner creates and starts a spinner with the given message when not in
// verbose or debug mode. Returns the spinner and a function that should be
// deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function automatically calls ui.EnsureNewline() on the final message before
// printing it. This ensures consistent output formatting across all commands.
//
// Never start a spinner before the password gate may run: the spinner line
// and the password prompt fight over the terminal.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}
