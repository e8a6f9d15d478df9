package workflows

import (
	"errors"
	"fmt"

	"github.com/bardo-engine/storyvault/internal/configs"
	"github.com/bardo-engine/storyvault/internal/envelope"
	kerrors "github.com/bardo-engine/storyvault/internal/errors"
	"github.com/bardo-engine/storyvault/internal/keys"
	"github.com/bardo-engine/storyvault/internal/resources"
)

// loadProject initializes project settings and requires a project.
func loadProject() error {
	if err := configs.InitProjectSettings(); err != nil {
		return fmt.Errorf("initializing project settings: %w", err)
	}

	if configs.ProjectVaultSettings.ProjectPath == "" {
		return kerrors.ErrProjectNotInitialized
	}

	return nil
}

// resolveKey returns the active key for the loaded project (or none).
func resolveKey() ([]byte, string, error) {
	keyFile := ""
	if configs.ProjectVaultSettings != nil {
		keyFile = configs.ProjectVaultSettings.KeyFile
	}
	return keys.ResolveFromEnv(keyFile)
}

func newDecryptor() (*envelope.Decryptor, string, error) {
	key, source, err := resolveKey()
	if err != nil {
		return nil, "", err
	}

	d, err := envelope.NewDecryptor(key)
	if err != nil {
		return nil, "", err
	}

	return d, source, nil
}

func projectStore() *resources.Store {
	return resources.New(configs.ProjectVaultSettings.ResourcesPath)
}

// Error kinds reported by ErrorKind.
const (
	KindEncoding             = "encoding"
	KindMalformed            = "malformed"
	KindCipherInit           = "cipher_init"
	KindAuthenticationFailed = "authentication_failed"
	KindNotFound             = "not_found"
	KindInvalid              = "invalid_id"
	KindOther                = "other"
)

// ErrorKind classifies an error returned by a workflow.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrEncoding):
		return KindEncoding
	case errors.Is(err, kerrors.ErrMalformed):
		return KindMalformed
	case errors.Is(err, kerrors.ErrCipherInit):
		return KindCipherInit
	case errors.Is(err, kerrors.ErrAuthenticationFailed):
		return KindAuthenticationFailed
	case errors.Is(err, kerrors.ErrStoryNotFound):
		return KindNotFound
	case errors.Is(err, kerrors.ErrInvalidStoryID):
		return KindInvalid
	default:
		return KindOther
	}
}
