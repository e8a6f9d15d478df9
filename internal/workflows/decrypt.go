package workflows

import (
	"context"
	"strings"

	"github.com/bardo-engine/storyvault/internal/audit"
	"github.com/bardo-engine/storyvault/internal/configs"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// Envelope is the base64 envelope text. Surrounding whitespace is ignored.
	Envelope string
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	Plaintext string
	KeySource string
}

// Decrypt opens a raw envelope supplied by the caller. It works outside a
// project; inside one, the project's key file is honoured.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	if err := configs.InitProjectSettings(); err != nil {
		return nil, err
	}

	d, source, err := newDecryptor()
	if err != nil {
		return nil, err
	}

	plaintext, err := d.Decrypt(strings.TrimSpace(opts.Envelope))
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("decrypt")
	entry.KeySource = source
	audit.Log(entry)

	return &DecryptResult{Plaintext: plaintext, KeySource: source}, nil
}
