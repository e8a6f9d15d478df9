// Package resources reads and writes sealed story files.
//
// A sealed story lives in the resources directory as <story-id>.enc and
// holds a single base64 envelope. The store only moves text in and out of
// that directory; it never decrypts.
package resources

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/bardo-engine/storyvault/internal/errors"
)

// Ext is the file extension of sealed stories.
const Ext = ".enc"

// Store is a directory of sealed stories.
type Store struct {
	Dir string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// ValidateID rejects IDs that are empty or would escape the store directory.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty", kerrors.ErrInvalidStoryID)
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidStoryID, id)
	}
	return nil
}

// Path returns the file path for a story ID.
func (s *Store) Path(id string) string {
	return filepath.Join(s.Dir, id+Ext)
}

// Read returns the envelope text stored for id.
func (s *Store) Read(id string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}

	path := s.Path(id)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", kerrors.ErrStoryNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read story file '%s': %w", path, err)
	}

	// Editors and some producers leave a trailing newline.
	return strings.TrimSpace(string(data)), nil
}

// Write stores envelope under id, creating the directory if needed.
func (s *Store) Write(id, envelope string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create resources directory %s: %w", s.Dir, err)
	}

	path := s.Path(id)
	if err := os.WriteFile(path, []byte(envelope), 0600); err != nil {
		return "", fmt.Errorf("failed to write to %s: %w", path, err)
	}

	return path, nil
}

// List returns the IDs of all sealed stories, sorted. A missing directory
// has no stories.
func (s *Store) List() ([]string, error) {
	matches, err := s.match("*" + Ext)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(m, Ext))
	}
	return ids, nil
}

// Match returns the IDs of sealed stories whose ID matches a glob pattern.
func (s *Store) Match(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid story pattern %q", pattern)
	}

	all, err := s.List()
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, id := range all {
		ok, err := doublestar.Match(pattern, id)
		if err != nil {
			return nil, fmt.Errorf("invalid story pattern %q: %w", pattern, err)
		}
		if ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Clean removes every sealed story and returns the removed paths.
func (s *Store) Clean() ([]string, error) {
	matches, err := s.match("*" + Ext)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(matches))
	for _, m := range matches {
		path := filepath.Join(s.Dir, m)
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// match globs regular files directly inside Dir.
func (s *Store) match(pattern string) ([]string, error) {
	info, err := os.Stat(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resources directory %s: %w", s.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("resources path %s is not a directory", s.Dir)
	}

	fsys := os.DirFS(s.Dir)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		fi, err := fs.Stat(fsys, m)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, m)
	}

	sort.Strings(files)
	return files, nil
}
