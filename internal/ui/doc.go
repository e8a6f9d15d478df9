// Package ui provides semantic text formatting for CLI output.
//
// Formatters render with colour when the terminal supports it and fall back
// to plain-text decorations when NO_COLOR is set or the terminal is dumb.
//
//	ui.Code.Sprint("storyvault seal serruchin")  // Commands
//	ui.Path.Sprint("src-tauri/resources")        // File paths
//	ui.Story.Sprint("serruchin")                 // Story IDs
//	ui.Success.Sprint("✓")                       // Success indicators
//	ui.Error.Sprint("✗")                         // Error indicators
//	ui.Warning.Sprint("[dry-run]")               // Warnings
//	ui.Info.Sprint("→")                          // Hints
//	ui.Muted.Sprint("default")                   // De-emphasized text
//
// Without colour, Code gets `backticks`, Story gets 'single quotes' and
// Muted gets (parentheses); the rest are left undecorated.
package ui
