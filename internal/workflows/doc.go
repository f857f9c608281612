// Package workflows provides high-level orchestration for vaultmark commands.
//
// Workflows coordinate the image boundary (imageio), the watermark codec
// (stego), optional sealing (secrets), configuration and the activity log.
// Each workflow handles a single command's business logic, independent of
// CLI concerns like flag parsing, spinners, and output formatting.
//
// The cmd/ package should be a thin layer that parses flags, calls the
// workflow, and formats the result. Workflows load configuration, read and
// write image files, perform the operation and record the activity entry.
//
// # Available Workflows
//
//   - Embed: Writes a watermark into an image file
//   - Extract: Recovers a watermark from an image file
//   - Verify: Reports which of a set of images carry a watermark
//   - Capacity: Reports how much text an image can hold
//   - Log: Reads and filters the activity log
//
// # Error Handling
//
// Workflows return sentinel errors from the internal/errors package so the
// CLI layer can map them to messages without string matching:
//
//	result, err := workflows.Embed(ctx, opts)
//	if errors.Is(err, verrors.ErrCapacityExceeded) {
//	    // "message too large for this image"
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Long-running workflows check it between files.
package workflows
