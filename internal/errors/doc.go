// Package errors provides typed error values for the vaultmark application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Watermark errors: embedding and extraction failures (ErrCapacityExceeded,
//     ErrCorruptPayload, ErrNoWatermarkFound)
//   - Image errors: container format issues (ErrUnsupportedFormat, ErrLossyFormat)
//   - Seal errors: authenticated payload failures (ErrOpenFailed)
//   - File errors: file system issues (ErrNoFilesFound, ErrFileNotFound)
//
// A wrong obfuscation key is deliberately absent from this list. XOR
// deobfuscation always succeeds, so extracting with the wrong key returns
// unreadable text instead of an error.
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(bits) > slots {
//	    return errors.ErrCapacityExceeded
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Embed(ctx, opts)
//	if errors.Is(err, verrors.ErrCapacityExceeded) {
//	    // Show "message too large for this image"
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: need %d bits, have %d", errors.ErrCapacityExceeded, need, have)
package errors
