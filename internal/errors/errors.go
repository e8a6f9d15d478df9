package errors

import "errors"

// Envelope errors are returned by the decryptor. All of them are
// deterministic for a given input and key, so none are worth retrying.
var (
	// ErrEncoding indicates the envelope is not valid base64, or the
	// decrypted bytes are not valid UTF-8.
	ErrEncoding = errors.New("invalid encoding")

	// ErrMalformed indicates the decoded envelope is too short to hold a
	// nonce and an authentication tag.
	ErrMalformed = errors.New("malformed envelope")

	// ErrCipherInit indicates the key material was rejected by the cipher.
	ErrCipherInit = errors.New("cipher initialization failed")

	// ErrAuthenticationFailed indicates the GCM tag did not verify: the data
	// was tampered with, truncated, or sealed under a different key.
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// Key errors indicate problems with the configured key material.
var (
	// ErrInvalidKeyLength indicates the key is not exactly 32 bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrKeyFileNotFound indicates the configured key file does not exist.
	ErrKeyFileNotFound = errors.New("key file not found")
)

// Project state errors indicate issues with project configuration or initialization.
var (
	// ErrProjectNotInitialized indicates the project has not been set up with storyvault.
	ErrProjectNotInitialized = errors.New("project has not been initialized")

	// ErrProjectAlreadyInitialized indicates the project has already been set up.
	ErrProjectAlreadyInitialized = errors.New("project has already been initialized")

	// ErrInvalidProjectConfig indicates the project configuration is malformed.
	ErrInvalidProjectConfig = errors.New("project configuration is invalid")
)

// Story errors indicate issues with story resources.
var (
	// ErrStoryNotFound indicates no resource exists for the story ID.
	ErrStoryNotFound = errors.New("story not found")

	// ErrInvalidStoryID indicates the story ID is empty or escapes the resource directory.
	ErrInvalidStoryID = errors.New("invalid story id")

	// ErrNoStoriesFound indicates the resource directory holds no sealed stories.
	ErrNoStoriesFound = errors.New("no sealed stories found")
)

// Sealing errors indicate failures while producing envelopes.
var (
	// ErrEncryptFailed indicates a story could not be sealed.
	ErrEncryptFailed = errors.New("failed to encrypt story")
)
