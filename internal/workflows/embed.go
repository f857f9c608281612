package workflows

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/vaultmark/internal/audit"
	"github.com/PolarWolf314/vaultmark/internal/configs"
	verrors "github.com/PolarWolf314/vaultmark/internal/errors"
	"github.com/PolarWolf314/vaultmark/internal/imageio"
	"github.com/PolarWolf314/vaultmark/internal/secrets"
	"github.com/PolarWolf314/vaultmark/internal/stego"
	"github.com/PolarWolf314/vaultmark/internal/utils"
)

// EmbedOptions configures the embed workflow.
type EmbedOptions struct {
	// InputPath is the image to watermark.
	InputPath string

	// OutputPath is where the watermarked image is written. If empty, it is
	// derived from InputPath and the configured suffix.
	OutputPath string

	// Format forces the output container. If empty, it is taken from the
	// output extension, then the input format, then the configured default.
	Format string

	// Message is the watermark text.
	Message string

	// Key obfuscates the payload. Empty means no obfuscation.
	Key string

	// Seal seals Message with SealPassphrase before embedding. A dry run
	// measures the sealed size and needs no passphrase.
	Seal bool

	// SealPassphrase is the sealing passphrase. Setting it implies Seal.
	SealPassphrase string

	// Overwrite allows replacing an existing output file.
	Overwrite bool

	// DryRun checks capacity without writing anything.
	DryRun bool
}

// EmbedResult contains the outcome of an embed operation.
type EmbedResult struct {
	InputPath    string
	OutputPath   string
	InputFormat  imageio.Format
	OutputFormat imageio.Format
	Width        int
	Height       int

	// PayloadUnits is the embedded length in UTF-16 code units, after sealing.
	PayloadUnits int

	// RequiredBits and AvailableBits compare the payload with the image.
	RequiredBits  int
	AvailableBits int

	// CapacityUnits is the largest payload the image could hold.
	CapacityUnits int

	Keyed  bool
	Sealed bool

	// Fits is false only for a dry run whose payload would not fit.
	Fits bool

	// OutputExists reports, for a dry run, that the output would be replaced
	// or refused.
	OutputExists bool
	DryRun       bool
}

// Embed writes a watermark into an image file and saves the result in a
// lossless container.
//
// Returns ErrFileNotFound if the input does not exist.
// Returns ErrUnsupportedFormat if the input cannot be decoded.
// Returns ErrLossyFormat if the output format would destroy the watermark.
// Returns ErrCapacityExceeded if the message does not fit.
// Returns ErrOutputExists if the output exists and overwriting is off.
func Embed(ctx context.Context, opts EmbedOptions) (*EmbedResult, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	buf, inFormat, err := readImage(opts.InputPath)
	if err != nil {
		return nil, err
	}

	outFormat, err := resolveOutputFormat(opts, inFormat, config.Watermark.DefaultFormat)
	if err != nil {
		return nil, err
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = utils.OutputPath(opts.InputPath, config.Watermark.Suffix, outFormat.Extension())
	}

	sealed := opts.Seal || opts.SealPassphrase != ""
	payload := opts.Message
	payloadUnits := stego.UnitLen(payload)
	switch {
	case sealed && opts.DryRun:
		payloadUnits = secrets.SealedLen(opts.Message)
	case sealed:
		payload, err = secrets.Seal(opts.Message, opts.SealPassphrase)
		if err != nil {
			return nil, err
		}
		payloadUnits = stego.UnitLen(payload)
	}

	result := &EmbedResult{
		InputPath:     opts.InputPath,
		OutputPath:    outputPath,
		InputFormat:   inFormat,
		OutputFormat:  outFormat,
		Width:         buf.Width,
		Height:        buf.Height,
		PayloadUnits:  payloadUnits,
		RequiredBits:  stego.HeaderBits + payloadUnits*stego.UnitBits,
		AvailableBits: buf.Slots(),
		CapacityUnits: stego.Capacity(buf),
		Keyed:         opts.Key != "",
		Sealed:        sealed,
		DryRun:        opts.DryRun,
	}
	result.Fits = result.PayloadUnits <= result.CapacityUnits

	if opts.DryRun {
		result.OutputExists = utils.FileExists(outputPath)
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := stego.Embed(buf, payload, opts.Key); err != nil {
		return nil, err
	}

	data, err := encodeImage(buf, outFormat)
	if err != nil {
		return nil, err
	}

	if err := utils.WriteFile(outputPath, data, opts.Overwrite || config.Watermark.Overwrite); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithUser(audit.OpEmbed)
	auditEntry.Files = []string{opts.InputPath}
	auditEntry.OutputPath = outputPath
	auditEntry.Format = string(outFormat)
	auditEntry.PayloadUnits = result.PayloadUnits
	auditEntry.Keyed = result.Keyed
	auditEntry.Sealed = result.Sealed
	audit.Log(auditEntry)

	return result, nil
}

// resolveOutputFormat picks the output container. Lossy formats are rejected
// when requested explicitly; a lossy input falls back to the default.
func resolveOutputFormat(opts EmbedOptions, input imageio.Format, fallback string) (imageio.Format, error) {
	var format imageio.Format
	switch {
	case opts.Format != "":
		f, err := imageio.ParseFormat(opts.Format)
		if err != nil {
			return "", err
		}
		format = f
	case opts.OutputPath != "" && filepath.Ext(opts.OutputPath) != "":
		f, err := imageio.FormatFromPath(opts.OutputPath)
		if err != nil {
			return "", err
		}
		format = f
	case input.Lossless():
		return input, nil
	default:
		f, err := imageio.ParseFormat(fallback)
		if err != nil {
			return "", fmt.Errorf("default_format in config: %w", err)
		}
		format = f
	}

	if !format.Lossless() {
		return "", fmt.Errorf("%w: %s", verrors.ErrLossyFormat, format)
	}
	return format, nil
}
