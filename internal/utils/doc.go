// Package utils provides shared utility functions for storyvault.
//
// # Filesystem Utilities
//
//   - FindProjectRoot: walks up directories to find the project marker
//   - FormatPaths: formats file paths for human-readable output
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//
// # I/O Utilities
//
//   - ReadStdin: reads all data from standard input
//
// # Terminal Utilities
//
//   - IsStdoutTerminal: reports whether stdout is a terminal
package utils
