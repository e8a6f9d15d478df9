// Package workflows provides high-level orchestration for storyvault commands.
//
// Each workflow coordinates configs, keys, resources, envelope and audit to
// implement one user-facing command, independent of CLI concerns like flag
// parsing, spinners and output formatting. The cmd package parses flags,
// calls a workflow and formats its result.
//
// # Available Workflows
//
//   - Init: creates .storyvault/config.toml in the working directory
//   - Seal: encrypts a story source into <resources>/<id>.enc
//   - Open: decrypts a sealed story by ID
//   - Decrypt: decrypts a raw envelope supplied by the caller
//   - List: enumerates sealed story IDs
//   - Verify: decrypts every sealed story and reports failures
//   - Log: reads the audit log
//   - Status: reports project settings and the active key
//
// # Error Handling
//
// Workflows return errors wrapping sentinels from internal/errors so the
// CLI can choose a message with errors.Is:
//
//	result, err := workflows.Open(ctx, opts)
//	if errors.Is(err, kerrors.ErrAuthenticationFailed) {
//	    // wrong key or tampered resource
//	}
//
// All workflow functions accept a context.Context as their first parameter.
package workflows
