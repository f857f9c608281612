package workflows

import (
	"context"

	"github.com/PolarWolf314/vaultmark/internal/audit"
	"github.com/PolarWolf314/vaultmark/internal/imageio"
	"github.com/PolarWolf314/vaultmark/internal/secrets"
	"github.com/PolarWolf314/vaultmark/internal/stego"
)

// ExtractOptions configures the extract workflow.
type ExtractOptions struct {
	// InputPath is the watermarked image.
	InputPath string

	// Key deobfuscates the payload. It must match the key used to embed.
	Key string

	// SealPassphrase opens a sealed payload. If empty, a sealed payload is
	// returned as-is.
	SealPassphrase string
}

// ExtractResult contains the outcome of an extract operation.
type ExtractResult struct {
	InputPath string
	Format    imageio.Format

	// Message is the recovered text, opened if it was sealed and a
	// passphrase was given.
	Message string

	// PayloadUnits is the embedded length in UTF-16 code units.
	PayloadUnits int

	// Sealed reports whether the embedded payload was sealed.
	Sealed bool

	// Opened reports whether a sealed payload was opened.
	Opened bool
}

// Extract recovers the watermark from an image file.
//
// A wrong key is not detected: the message is unreadable but no error is
// returned. A wrong seal passphrase is detected and returns ErrOpenFailed.
//
// Returns ErrFileNotFound if the input does not exist.
// Returns ErrNoWatermarkFound if the image carries no watermark.
// Returns ErrCorruptPayload if the watermark header is inconsistent.
func Extract(ctx context.Context, opts ExtractOptions) (*ExtractResult, error) {
	buf, format, err := readImage(opts.InputPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := stego.Extract(buf, opts.Key)
	if err != nil {
		return nil, err
	}

	result := &ExtractResult{
		InputPath:    opts.InputPath,
		Format:       format,
		Message:      text,
		PayloadUnits: stego.UnitLen(text),
		Sealed:       secrets.IsSealed(text),
	}

	if result.Sealed && opts.SealPassphrase != "" {
		plaintext, err := secrets.Open(text, opts.SealPassphrase)
		if err != nil {
			return nil, err
		}
		result.Message = plaintext
		result.Opened = true
	}

	auditEntry := audit.LogWithUser(audit.OpExtract)
	auditEntry.Files = []string{opts.InputPath}
	auditEntry.Format = string(format)
	auditEntry.PayloadUnits = result.PayloadUnits
	auditEntry.Keyed = opts.Key != ""
	auditEntry.Sealed = result.Sealed
	audit.Log(auditEntry)

	return result, nil
}
