package workflows

import (
	"context"
	"errors"
	"os"

	"github.com/PolarWolf314/vaultmark/internal/audit"
	verrors "github.com/PolarWolf314/vaultmark/internal/errors"
	"github.com/PolarWolf314/vaultmark/internal/secrets"
	"github.com/PolarWolf314/vaultmark/internal/stego"
)

// VerifyStatus describes what was found in a single image.
type VerifyStatus string

const (
	StatusFound   VerifyStatus = "found"
	StatusMissing VerifyStatus = "missing"
	StatusCorrupt VerifyStatus = "corrupt"
	StatusError   VerifyStatus = "error"
)

// VerifyOptions configures the verify workflow.
type VerifyOptions struct {
	// Patterns are file paths, directories or ** globs.
	Patterns []string

	// BaseDir resolves relative patterns. Defaults to the working directory.
	BaseDir string

	// Key deobfuscates payloads so their text can be reported.
	Key string
}

// FileVerification is the outcome for one image.
type FileVerification struct {
	Path    string
	Status  VerifyStatus
	Message string
	Sealed  bool
	Err     error
}

// VerifyResult contains the outcome of a verify operation.
type VerifyResult struct {
	Files        []FileVerification
	FoundCount   int
	MissingCount int
	ErrorCount   int
}

// Verify checks each matching image for a watermark. Per-file failures are
// recorded in the result rather than aborting the run.
//
// Returns ErrNoFilesFound if no image matches the patterns.
// Returns the context error if ctx is cancelled between files.
func Verify(ctx context.Context, opts VerifyOptions) (*VerifyResult, error) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		baseDir = wd
	}

	files, err := resolveImages(opts.Patterns, baseDir)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fv := verifyFile(path, opts.Key)
		switch fv.Status {
		case StatusFound:
			result.FoundCount++
		case StatusMissing:
			result.MissingCount++
		default:
			result.ErrorCount++
		}
		result.Files = append(result.Files, fv)
	}

	auditEntry := audit.LogWithUser(audit.OpVerify)
	auditEntry.Files = files
	auditEntry.Keyed = opts.Key != ""
	auditEntry.FoundCount = result.FoundCount
	auditEntry.MissingCount = result.MissingCount
	audit.Log(auditEntry)

	return result, nil
}

func verifyFile(path, key string) FileVerification {
	fv := FileVerification{Path: path}

	buf, _, err := readImage(path)
	if err != nil {
		fv.Status = StatusError
		fv.Err = err
		return fv
	}

	if text, ok := stego.Verify(buf, key); ok {
		fv.Status = StatusFound
		fv.Message = text
		fv.Sealed = secrets.IsSealed(text)
		return fv
	}

	// Not found: the header tells a missing watermark from a damaged one.
	_, err = stego.Extract(buf, key)
	switch {
	case err == nil, errors.Is(err, verrors.ErrNoWatermarkFound):
		fv.Status = StatusMissing
	case errors.Is(err, verrors.ErrCorruptPayload):
		fv.Status = StatusCorrupt
		fv.Err = err
	default:
		fv.Status = StatusError
		fv.Err = err
	}
	return fv
}
