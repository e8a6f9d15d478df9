package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bardo-engine/storyvault/internal/configs"
)

// useProject points project settings at a fresh temp project for one test.
func useProject(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(tempDir, configs.DirName), 0755); err != nil {
		t.Fatalf("Failed to create project dir: %v", err)
	}

	originalSettings := configs.ProjectVaultSettings
	configs.ProjectVaultSettings = &configs.ProjectSettings{
		ProjectPath: tempDir,
	}
	t.Cleanup(func() {
		configs.ProjectVaultSettings = originalSettings
	})

	return tempDir
}

func TestLog_CreatesFile(t *testing.T) {
	tempDir := useProject(t)

	Log(Entry{User: "tester", Operation: "seal", Story: "serruchin"})

	logPath := filepath.Join(tempDir, configs.DirName, "audit.jsonl")
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatalf("Audit log file was not created")
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	useProject(t)

	Log(Entry{User: "tester", Operation: "seal", Story: "a"})
	Log(Entry{User: "tester", Operation: "open", Story: "a"})
	Log(Entry{User: "tester", Operation: "verify", StoriesCount: 2, FailedCount: 1})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	if entries[0].Operation != "seal" || entries[1].Operation != "open" || entries[2].Operation != "verify" {
		t.Errorf("Entries out of order: %+v", entries)
	}
	if entries[2].StoriesCount != 2 || entries[2].FailedCount != 1 {
		t.Errorf("Verify counts not preserved: %+v", entries[2])
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Timestamp, "Z") || len(e.Timestamp) != len(TimestampFormat) {
			t.Errorf("Unexpected timestamp format %q", e.Timestamp)
		}
	}
}

func TestLog_NoProjectIsNoop(t *testing.T) {
	originalSettings := configs.ProjectVaultSettings
	configs.ProjectVaultSettings = &configs.ProjectSettings{}
	defer func() { configs.ProjectVaultSettings = originalSettings }()

	Log(Entry{Operation: "open"})

	if LogPath() != "" {
		t.Error("Expected empty log path outside a project")
	}
	entries, err := ReadEntries()
	if err != nil || entries != nil {
		t.Errorf("Expected (nil, nil), got (%v, %v)", entries, err)
	}
}

func TestLog_KeepsTimestamp(t *testing.T) {
	useProject(t)

	Log(Entry{Timestamp: "2024-01-02T03:04:05.000006Z", Operation: "init"})

	entries, _ := ReadEntries()
	if len(entries) != 1 || entries[0].Timestamp != "2024-01-02T03:04:05.000006Z" {
		t.Errorf("Timestamp was not preserved: %+v", entries)
	}
}

func TestLogWithUser(t *testing.T) {
	entry := LogWithUser("seal")
	if entry.Operation != "seal" {
		t.Errorf("Expected op 'seal', got %q", entry.Operation)
	}
	if entry.User != configs.UserVaultSettings.Username {
		t.Errorf("Expected user %q, got %q", configs.UserVaultSettings.Username, entry.User)
	}
}

func TestParseEntries_SkipsMalformed(t *testing.T) {
	data := []byte(`{"ts":"t1","user":"a","op":"seal"}
not json
{"ts":"t2","user":"b","op":"open","story":"s"}

{broken`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Story != "s" {
		t.Errorf("Expected story 's', got %q", entries[1].Story)
	}
}

func TestParseEntries_Empty(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil || entries != nil {
		t.Errorf("Expected (nil, nil), got (%v, %v)", entries, err)
	}
}

func TestFilter(t *testing.T) {
	entries := []Entry{
		{Operation: "seal", Story: "1"},
		{Operation: "open", Story: "2"},
		{Operation: "seal", Story: "3"},
		{Operation: "open", Story: "4"},
		{Operation: "seal", Story: "5"},
	}

	tests := []struct {
		name  string
		op    string
		limit int
		want  []string
	}{
		{"All", "", 0, []string{"1", "2", "3", "4", "5"}},
		{"ByOp", "seal", 0, []string{"1", "3", "5"}},
		{"Limit", "", 2, []string{"4", "5"}},
		{"ByOpAndLimit", "open", 1, []string{"4"}},
		{"UnknownOp", "verify", 0, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(entries, tc.op, tc.limit)
			var stories []string
			for _, e := range got {
				stories = append(stories, e.Story)
			}
			if strings.Join(stories, ",") != strings.Join(tc.want, ",") {
				t.Errorf("Filter(%q, %d) = %v, want %v", tc.op, tc.limit, stories, tc.want)
			}
		})
	}
}
