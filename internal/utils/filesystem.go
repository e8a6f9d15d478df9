package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindProjectRoot traverses up from the working directory looking for a
// directory named marker. Returns the directory containing it, or an empty
// string if none is found before the filesystem root or one level above
// the user's home directory.
func FindProjectRoot(marker string) (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return FindProjectRootFrom(currentDir, marker)
}

// FindProjectRootFrom is FindProjectRoot starting at startDir.
func FindProjectRootFrom(startDir, marker string) (string, error) {
	currentDir := startDir

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	for {
		if homeDir != "" && currentDir == filepath.Dir(homeDir) {
			return "", nil
		}

		fileInfo, err := os.Stat(filepath.Join(currentDir, marker))
		if err == nil {
			if fileInfo.IsDir() {
				return currentDir, nil
			}
		} else if !os.IsNotExist(err) {
			// Anything other than "not found" (like permission issues) is reported.
			return "", fmt.Errorf("error checking for %s directory at %s: %w", marker, currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}
