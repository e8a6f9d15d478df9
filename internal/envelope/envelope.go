package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	kerrors "github.com/bardo-engine/storyvault/internal/errors"
)

// Wire format constants. These are fixed by the producer and never negotiated.
const (
	KeySize         = 32
	NonceSize       = 12
	TagSize         = 16
	MinEnvelopeSize = NonceSize + TagSize
)

// Decryptor opens envelopes sealed under a single key.
type Decryptor struct {
	aead cipher.AEAD
}

// NewDecryptor creates a Decryptor for a 32-byte AES-256 key.
// A key the cipher rejects yields ErrCipherInit.
func NewDecryptor(key []byte) (*Decryptor, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	return &Decryptor{aead: aead}, nil
}

// Decrypt opens a base64 envelope and returns its UTF-8 plaintext.
func (d *Decryptor) Decrypt(envelopeBase64 string) (string, error) {
	// The strict decoder still skips CR and LF; envelopes never contain them.
	if strings.ContainsAny(envelopeBase64, "\r\n") {
		return "", fmt.Errorf("%w: base64 decode: line break in envelope", kerrors.ErrEncoding)
	}

	raw, err := base64.StdEncoding.Strict().DecodeString(envelopeBase64)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode: %v", kerrors.ErrEncoding, err)
	}

	if len(raw) < MinEnvelopeSize {
		return "", fmt.Errorf("%w: too short (%d bytes, need at least %d)", kerrors.ErrMalformed, len(raw), MinEnvelopeSize)
	}

	iv := raw[:NonceSize]
	tag := raw[NonceSize:MinEnvelopeSize]
	ciphertext := raw[MinEnvelopeSize:]

	// crypto/cipher wants ciphertext || tag.
	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := d.aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrAuthenticationFailed, err)
	}

	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", kerrors.ErrEncoding)
	}

	return string(plaintext), nil
}

// Decrypt opens envelopeBase64 with key in a single call.
func Decrypt(key []byte, envelopeBase64 string) (string, error) {
	d, err := NewDecryptor(key)
	if err != nil {
		return "", err
	}
	return d.Decrypt(envelopeBase64)
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", kerrors.ErrCipherInit, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrCipherInit, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrCipherInit, err)
	}

	return aead, nil
}
