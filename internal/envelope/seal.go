package envelope

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/bardo-engine/storyvault/internal/errors"
)

// Sealer produces envelopes that Decryptor can open.
type Sealer struct {
	aead cipher.AEAD
	rand io.Reader
}

// NewSealer creates a Sealer for a 32-byte AES-256 key.
func NewSealer(key []byte) (*Sealer, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead, rand: rand.Reader}, nil
}

// Seal encrypts plaintext under a fresh random nonce.
func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(s.rand, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return s.SealWithNonce(plaintext, nonce)
}

// SealWithNonce encrypts plaintext under the given 12-byte nonce.
// Reusing a nonce under the same key breaks GCM; this is meant for fixtures.
func (s *Sealer) SealWithNonce(plaintext string, nonce []byte) (string, error) {
	if len(nonce) != NonceSize {
		return "", fmt.Errorf("%w: nonce must be %d bytes, got %d", kerrors.ErrMalformed, NonceSize, len(nonce))
	}

	// Seal returns ciphertext || tag.
	sealed := s.aead.Seal(nil, nonce, []byte(plaintext), nil)
	ctLen := len(sealed) - TagSize

	out := make([]byte, 0, NonceSize+len(sealed))
	out = append(out, nonce...)
	out = append(out, sealed[ctLen:]...)
	out = append(out, sealed[:ctLen]...)

	return base64.StdEncoding.EncodeToString(out), nil
}

// StripBOM removes a leading UTF-8 byte order mark.
func StripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
