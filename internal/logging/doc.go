// Package logger provides structured logging for Totara CLI commands
// and the settings engine.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with semantic prefixes and colors.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()            // Shown with --verbose or --debug
//	Logger.Debugf()           // Shown only with --debug
//	Logger.Warnf()            // Shown with --verbose or --debug
//	Logger.WarnfAlways()      // Always shown (critical warnings)
//	Logger.Errorf()           // Always shown
//	Logger.ErrorfAndReturn()  // Always shown, returns the error for RunE
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d fields", count)
//
// Commands typically create a logger in their PersistentPreRun and pass
// it down; a settings document accepts one via settings.WithLogger.
package logger
