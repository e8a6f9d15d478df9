package workflows

import (
	"context"
	"runtime"
	"sync"

	"github.com/bardo-engine/storyvault/internal/audit"
	"github.com/bardo-engine/storyvault/internal/envelope"
	kerrors "github.com/bardo-engine/storyvault/internal/errors"
	"github.com/bardo-engine/storyvault/internal/resources"
)

// VerifyOptions configures the verify workflow.
type VerifyOptions struct {
	// StoryIDs limits verification to these IDs or glob patterns.
	// Empty verifies every sealed story.
	StoryIDs []string

	// Workers bounds concurrent decryptions. Zero uses GOMAXPROCS.
	Workers int
}

// StoryStatus is the verification outcome for one story.
type StoryStatus struct {
	StoryID string
	OK      bool
	Kind    string
	Error   string
	Bytes   int
}

// VerifyResult contains the outcome of a verify operation.
type VerifyResult struct {
	Stories   []StoryStatus
	Passed    int
	Failed    int
	KeySource string
}

// Verify decrypts sealed stories with the active key and reports each
// result. A story that fails to decrypt is reported, not returned as an
// error; the error return is reserved for setup failures and cancellation.
//
// Returns ErrNoStoriesFound when nothing matches.
func Verify(ctx context.Context, opts VerifyOptions) (*VerifyResult, error) {
	if err := loadProject(); err != nil {
		return nil, err
	}

	store := projectStore()
	ids, err := resolveStoryIDs(store, opts.StoryIDs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, kerrors.ErrNoStoriesFound
	}

	d, source, err := newDecryptor()
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	statuses := make([]StoryStatus, len(ids))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				statuses[i] = verifyStory(store, d, ids[i])
			}
		}()
	}

feed:
	for i := range ids {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &VerifyResult{Stories: statuses, KeySource: source}
	for _, s := range statuses {
		if s.OK {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	entry := audit.LogWithUser("verify")
	entry.StoriesCount = len(statuses)
	entry.FailedCount = result.Failed
	entry.KeySource = source
	audit.Log(entry)

	return result, nil
}

func verifyStory(store *resources.Store, d *envelope.Decryptor, id string) StoryStatus {
	status := StoryStatus{StoryID: id}

	text, err := store.Read(id)
	if err == nil {
		var plaintext string
		plaintext, err = d.Decrypt(text)
		status.Bytes = len(plaintext)
	}

	if err != nil {
		status.Kind = ErrorKind(err)
		status.Error = err.Error()
		return status
	}

	status.OK = true
	return status
}

// resolveStoryIDs expands IDs and glob patterns against the store,
// keeping first-seen order and dropping duplicates. Literal IDs are kept
// even when missing so they are reported as not found.
func resolveStoryIDs(store *resources.Store, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return store.List()
	}

	var ids []string
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, p := range patterns {
		if !isPattern(p) {
			add(p)
			continue
		}
		matches, err := store.Match(p)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m)
		}
	}

	return ids, nil
}

func isPattern(s string) bool {
	for _, c := range s {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
