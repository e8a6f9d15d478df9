package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bardo-engine/storyvault/internal/configs"
	"github.com/bardo-engine/storyvault/internal/keys"
	"github.com/spf13/cobra"
)

// setupTestEnvironment moves into a fresh temp directory with the default
// key in effect and restores the working directory afterwards.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp directory: %v", err)
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Setenv(keys.EnvVar, "")

	originalUserSettings := configs.UserVaultSettings
	configs.UserVaultSettings = &configs.UserSettings{Username: "testuser"}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserVaultSettings = originalUserSettings
		configs.ResetProjectSettings()
		ResetGlobalState()
		ResetConfigState()
	})

	return tempDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	drain := func(r io.Reader) {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outputChan <- buf.String()
	}
	go drain(stdoutReader)
	go drain(stderrReader)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// runCommand executes the CLI in-process with args and returns everything
// it printed.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	ResetGlobalState()
	ResetConfigState()

	rootCmd := &cobra.Command{
		Use:           "storyvault",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.AddCommand(StoriesCmd)
	rootCmd.AddCommand(ConfigCmd)
	rootCmd.SetArgs(args)

	return captureOutput(func() error {
		return rootCmd.Execute()
	})
}

// initializeProject runs `stories init` in the current directory.
func initializeProject(t *testing.T, args ...string) {
	t.Helper()

	output, err := runCommand(t, append([]string{"stories", "init"}, args...)...)
	if err != nil {
		t.Fatalf("Failed to initialize project: %v\nOutput: %s", err, output)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	// #nosec G306 -- Test files are temporary.
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
