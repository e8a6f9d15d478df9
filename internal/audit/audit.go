package audit

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bardo-engine/storyvault/internal/configs"
)

// TimestampFormat is RFC3339 with microseconds, always UTC.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`
	User      string `json:"user"`
	Operation string `json:"op"`

	// Optional fields depending on operation.
	Story        string   `json:"story,omitempty"`         // For open/seal.
	Files        []string `json:"files,omitempty"`         // For seal (written and cleaned files).
	StoriesCount int      `json:"stories_count,omitempty"` // For verify.
	FailedCount  int      `json:"failed_count,omitempty"`  // For verify.
	OutputPath   string   `json:"output_path,omitempty"`   // For open --output.
	ProjectName  string   `json:"project_name,omitempty"`  // For init.
	ProjectUUID  string   `json:"project_uuid,omitempty"`  // For init.
	KeySource    string   `json:"key_source,omitempty"`    // For open/seal/verify.
}

// Log appends an entry to the audit log of the current project.
// Outside a project, or on any write failure, it does nothing.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return
	}

	// #nosec G306 -- audit log should be readable by team members.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser returns an entry for op with the system user filled in.
func LogWithUser(op string) Entry {
	entry := Entry{Operation: op}
	if configs.UserVaultSettings != nil {
		entry.User = configs.UserVaultSettings.Username
	}
	return entry
}

// LogPath returns the path to the audit log file.
// Returns empty string if project is not initialized.
func LogPath() string {
	settings := configs.ProjectVaultSettings
	if settings == nil || settings.ProjectPath == "" {
		return ""
	}
	if settings.AuditLogPath != "" {
		return settings.AuditLogPath
	}
	return filepath.Join(settings.ProjectPath, configs.DirName, "audit.jsonl")
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// Filter keeps entries for op (all ops when empty) and returns at most the
// last limit of them (all when limit <= 0), oldest first.
func Filter(entries []Entry, op string, limit int) []Entry {
	var out []Entry
	for _, e := range entries {
		if op == "" || e.Operation == op {
			out = append(out, e)
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
