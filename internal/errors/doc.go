// Package errors provides typed error values for the storyvault application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Envelope errors: decryption failures (ErrEncoding, ErrMalformed,
//     ErrCipherInit, ErrAuthenticationFailed)
//   - Key errors: key material problems (ErrInvalidKeyLength, ErrKeyFileNotFound)
//   - Project errors: project state issues (ErrProjectNotInitialized)
//   - Story errors: resource lookup issues (ErrStoryNotFound, ErrInvalidStoryID)
//
// # Usage
//
// Wrap a sentinel with the underlying cause:
//
//	return "", fmt.Errorf("%w: %v", kerrors.ErrEncoding, err)
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Open(ctx, opts)
//	if errors.Is(err, kerrors.ErrAuthenticationFailed) {
//	    // Show user-friendly message
//	}
package errors
