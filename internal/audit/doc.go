// Package audit records watermark activity.
//
// Every embed, extract and verify is appended to a JSON Lines file, by
// default <XDG_DATA_HOME>/vaultmark/activity.jsonl. Entries carry the
// operation, files, container format and payload length. The payload text
// and keys are never written.
//
//	entry := audit.LogWithUser(audit.OpEmbed)
//	entry.Files = []string{input}
//	entry.OutputPath = output
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If the log cannot be written the operation
// still succeeds. Setting [audit] enabled = false in the config turns it off.
package audit
