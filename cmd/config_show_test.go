package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/bardo-engine/storyvault/internal/keys"
)

func TestConfigShow(t *testing.T) {
	t.Run("NotInitialized", func(t *testing.T) {
		setupTestEnvironment(t)

		output, err := runCommand(t, "config", "show")
		if err != nil {
			t.Errorf("Expected nil error, got %v", err)
		}
		if !strings.Contains(output, "has not been initialized") {
			t.Errorf("Expected not-initialized message, got: %s", output)
		}
	})

	t.Run("DefaultKey", func(t *testing.T) {
		setupTestEnvironment(t)
		initializeProject(t, "--name", "bardo")

		output, err := runCommand(t, "config", "show", "--json")
		if err != nil {
			t.Fatalf("config show failed: %v", err)
		}

		var shown configShowOutput
		if err := json.Unmarshal([]byte(output), &shown); err != nil {
			t.Fatalf("Expected JSON output, got %q: %v", output, err)
		}
		if shown.ProjectName != "bardo" {
			t.Errorf("Expected project name 'bardo', got %q", shown.ProjectName)
		}
		if shown.KeySource != keys.SourceDefault {
			t.Errorf("Expected key source %q, got %q", keys.SourceDefault, shown.KeySource)
		}
		if shown.KeyFingerprint != keys.Fingerprint(keys.Default()) {
			t.Errorf("Expected default key fingerprint, got %q", shown.KeyFingerprint)
		}
		if strings.Contains(output, string(keys.Default())) {
			t.Error("Key material must not be printed")
		}
	})

	t.Run("EnvKey", func(t *testing.T) {
		setupTestEnvironment(t)
		initializeProject(t)
		envKey := strings.Repeat("e", keys.Size)
		t.Setenv(keys.EnvVar, envKey)

		output, err := runCommand(t, "config", "show")
		if err != nil {
			t.Fatalf("config show failed: %v", err)
		}
		if !strings.Contains(output, keys.SourceEnv) {
			t.Errorf("Expected env key source, got: %s", output)
		}
		if !strings.Contains(output, keys.Fingerprint([]byte(envKey))) {
			t.Errorf("Expected env key fingerprint, got: %s", output)
		}
	})
}
