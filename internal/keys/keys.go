// Package keys resolves the AES-256 key used to seal and open stories.
//
// The default key is compiled in and matches the one the resource producer
// has always used. It can be overridden through the STORYVAULT_KEY
// environment variable or a key file named in the project config.
package keys

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"

	kerrors "github.com/bardo-engine/storyvault/internal/errors"
)

// EnvVar names the environment variable that overrides the key.
const EnvVar = "STORYVAULT_KEY"

// Size is the required key length in bytes.
const Size = 32

// Key sources reported by Resolve.
const (
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

var defaultKey = []byte("B4rd0Eng1n3_S3cr3t_K3y_2024_!@#$")

// Default returns a copy of the compiled-in key.
func Default() []byte {
	key := make([]byte, len(defaultKey))
	copy(key, defaultKey)
	return key
}

// Parse decodes key material in one of three forms:
// "base64:<std base64>", "hex:<hex>", or a raw 32-character string.
func Parse(s string) ([]byte, error) {
	var (
		key []byte
		err error
	)

	switch {
	case strings.HasPrefix(s, "base64:"):
		key, err = base64.StdEncoding.DecodeString(strings.TrimPrefix(s, "base64:"))
		if err != nil {
			return nil, fmt.Errorf("%w: bad base64 key: %v", kerrors.ErrInvalidKeyLength, err)
		}
	case strings.HasPrefix(s, "hex:"):
		key, err = hex.DecodeString(strings.TrimPrefix(s, "hex:"))
		if err != nil {
			return nil, fmt.Errorf("%w: bad hex key: %v", kerrors.ErrInvalidKeyLength, err)
		}
	default:
		key = []byte(s)
	}

	if len(key) != Size {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, Size, len(key))
	}

	return key, nil
}

// Resolve picks the key by precedence: envValue, then the contents of
// keyFile, then the compiled-in default. It returns the key and its source.
func Resolve(envValue, keyFile string) ([]byte, string, error) {
	if envValue != "" {
		key, err := Parse(envValue)
		if err != nil {
			return nil, "", fmt.Errorf("parsing %s: %w", EnvVar, err)
		}
		return key, SourceEnv, nil
	}

	if keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", kerrors.ErrKeyFileNotFound, keyFile)
		}
		if err != nil {
			return nil, "", fmt.Errorf("reading key file %s: %w", keyFile, err)
		}

		key, err := Parse(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, "", fmt.Errorf("parsing key file %s: %w", keyFile, err)
		}
		return key, SourceFile, nil
	}

	return Default(), SourceDefault, nil
}

// ResolveFromEnv is Resolve with the value of STORYVAULT_KEY.
func ResolveFromEnv(keyFile string) ([]byte, string, error) {
	return Resolve(os.Getenv(EnvVar), keyFile)
}

// Fingerprint identifies a key without revealing it: the first 8 bytes of
// its BLAKE2b-256 digest, hex-encoded.
func Fingerprint(key []byte) string {
	sum := blake2b.Sum256(key)
	return hex.EncodeToString(sum[:8])
}
