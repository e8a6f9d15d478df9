// Package audit records storyvault operations in a project-level log.
//
// Every operation that touches sealed stories (seal, open, verify, init)
// appends one JSON object per line to
//
//	.storyvault/audit.jsonl
//
// Each entry carries a UTC timestamp with microseconds, the system user,
// the operation name and operation-specific details.
//
// # Usage
//
//	entry := audit.LogWithUser("seal")
//	entry.Story = "serruchin"
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If the log cannot be written, the
// operation continues without error. Malformed lines are skipped when
// reading, so a partial write never hides the rest of the log.
package audit
