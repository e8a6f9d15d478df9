// Package logger provides leveled console logging for storyvault commands.
//
// Verbosity is controlled by two persistent flags:
//
//   - --verbose: shows info messages
//   - --debug: shows info and debug messages
//
// Warnings and errors are always written to stderr.
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Sealing %s", storyID)
//
// Commands create a logger in their PersistentPreRun. The envelope and
// keys packages never log.
package logger
