package workflows

import (
	"context"

	"github.com/PolarWolf314/vaultmark/internal/imageio"
	"github.com/PolarWolf314/vaultmark/internal/stego"
)

// CapacityOptions configures the capacity workflow.
type CapacityOptions struct {
	InputPath string

	// Message, if set, is checked against the image.
	Message string
}

// CapacityResult describes how much an image can hold.
type CapacityResult struct {
	InputPath string
	Format    imageio.Format
	Width     int
	Height    int

	// Slots is the number of usable sample bits.
	Slots int

	// CapacityUnits is the largest payload in UTF-16 code units.
	CapacityUnits int

	// MessageUnits is the length of Message in code units.
	MessageUnits int

	// Fits reports whether Message fits. Always true with no message.
	Fits bool
}

// Capacity reports how much watermark text an image file can hold.
//
// Returns ErrFileNotFound if the input does not exist.
// Returns ErrUnsupportedFormat if the input cannot be decoded.
// Returns the context error if ctx is cancelled.
func Capacity(ctx context.Context, opts CapacityOptions) (*CapacityResult, error) {
	buf, format, err := readImage(opts.InputPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &CapacityResult{
		InputPath:     opts.InputPath,
		Format:        format,
		Width:         buf.Width,
		Height:        buf.Height,
		Slots:         buf.Slots(),
		CapacityUnits: stego.Capacity(buf),
		MessageUnits:  stego.UnitLen(opts.Message),
	}
	result.Fits = result.MessageUnits <= result.CapacityUnits && stego.RequiredBits(opts.Message) <= result.Slots

	return result, nil
}
