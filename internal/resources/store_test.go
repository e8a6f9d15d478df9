package resources

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	kerrors "github.com/bardo-engine/storyvault/internal/errors"
)

// writeTestFile is a helper to write test files with 0644 permissions.
// #nosec G306 -- Test files are temporary and don't contain sensitive data.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"serruchin", false},
		{"chapter-1_final", false},
		{"", true},
		{"   ", true},
		{"..", true},
		{".", true},
		{"../secrets", true},
		{"a/b", true},
		{`a\b`, true},
		{"act1..final", false},
		{"...", false},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			err := ValidateID(tc.id)
			if tc.wantErr && !errors.Is(err, kerrors.ErrInvalidStoryID) {
				t.Errorf("ValidateID(%q) = %v, want ErrInvalidStoryID", tc.id, err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("ValidateID(%q) unexpected error: %v", tc.id, err)
			}
		})
	}
}

func TestStore_WriteAndRead(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "resources"))

	path, err := store.Write("serruchin", "AAECAwQF")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != store.Path("serruchin") {
		t.Errorf("Expected path %q, got %q", store.Path("serruchin"), path)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %o", info.Mode().Perm())
	}

	got, err := store.Read("serruchin")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "AAECAwQF" {
		t.Errorf("Expected %q, got %q", "AAECAwQF", got)
	}
}

func TestStore_ReadTrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "story.enc"), "AAECAwQF\n")

	got, err := New(dir).Read("story")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "AAECAwQF" {
		t.Errorf("Expected trimmed envelope, got %q", got)
	}
}

func TestStore_ReadErrors(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Read("missing"); !errors.Is(err, kerrors.ErrStoryNotFound) {
		t.Errorf("Expected ErrStoryNotFound, got %v", err)
	}
	if _, err := store.Read("../etc/passwd"); !errors.Is(err, kerrors.ErrInvalidStoryID) {
		t.Errorf("Expected ErrInvalidStoryID, got %v", err)
	}
	if _, err := store.Write("", "x"); !errors.Is(err, kerrors.ErrInvalidStoryID) {
		t.Errorf("Expected ErrInvalidStoryID, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "zeta.enc"), "x")
	writeTestFile(t, filepath.Join(dir, "alpha.enc"), "x")
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "x")
	writeTestFile(t, filepath.Join(dir, "alpha.json"), "x")
	if err := os.MkdirAll(filepath.Join(dir, "dir.enc"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	writeTestFile(t, filepath.Join(dir, "nested", "deep.enc"), "x")

	ids, err := New(dir).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"alpha", "zeta"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Expected %v, got %v", want, ids)
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	ids, err := New(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil {
		t.Fatalf("Expected no error for missing dir, got: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no stories, got %v", ids)
	}
}

func TestStore_ListPathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "resources")
	writeTestFile(t, file, "x")

	if _, err := New(file).List(); err == nil {
		t.Error("Expected error when resources path is a file")
	}
}

func TestStore_Match(t *testing.T) {
	dir := t.TempDir()
	for _, id := range []string{"chapter-1", "chapter-2", "epilogue"} {
		writeTestFile(t, filepath.Join(dir, id+Ext), "x")
	}
	store := New(dir)

	ids, err := store.Match("chapter-*")
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"chapter-1", "chapter-2"}) {
		t.Errorf("Unexpected matches: %v", ids)
	}

	if _, err := store.Match("chapter-[1"); err == nil {
		t.Error("Expected error for invalid pattern")
	}
}

func TestStore_Clean(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.enc"), "x")
	writeTestFile(t, filepath.Join(dir, "b.enc"), "x")
	writeTestFile(t, filepath.Join(dir, "keep.txt"), "x")
	store := New(dir)

	removed, err := store.Clean()
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if len(removed) != 2 {
		t.Errorf("Expected 2 removed files, got %v", removed)
	}

	ids, _ := store.List()
	if len(ids) != 0 {
		t.Errorf("Expected no stories after Clean, got %v", ids)
	}
	if _, err := os.Stat(filepath.Join(dir, "keep.txt")); err != nil {
		t.Errorf("Clean removed a non-story file: %v", err)
	}
}
