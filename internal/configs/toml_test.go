package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadTOML(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "nested", "test.toml")

	type TestStruct struct {
		Name  string
		Count int
	}

	originalData := TestStruct{Name: "serruchin", Count: 3}

	if err := SaveTOML(testFile, originalData); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loadedData := TestStruct{}
	if err := LoadTOML(testFile, &loadedData); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loadedData != originalData {
		t.Errorf("Expected %+v, got %+v", originalData, loadedData)
	}
}

func TestLoadTOML_NonExistentFile(t *testing.T) {
	var data struct{ Name string }
	if err := LoadTOML(filepath.Join(t.TempDir(), "missing.toml"), &data); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadTOML_UnknownKeys(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "extra.toml")
	if err := os.WriteFile(testFile, []byte("name = \"a\"\ncolour = \"blue\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	var data struct {
		Name string `toml:"name"`
	}
	err := LoadTOML(testFile, &data)

	var unknown *UnknownKeysError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownKeysError, got %v", err)
	}
	if len(unknown.Keys) != 1 || unknown.Keys[0] != "colour" {
		t.Errorf("Expected unknown key 'colour', got %v", unknown.Keys)
	}
}
