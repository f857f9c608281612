package stego

import (
	"fmt"

	verrors "github.com/PolarWolf314/vaultmark/internal/errors"
)

// Channels is the number of samples per pixel (R, G, B, A).
const Channels = 4

// usableChannels is the number of samples per pixel that carry payload bits.
// Alpha is never used.
const usableChannels = 3

// PixelBuffer is a decoded image as non-premultiplied RGBA samples, row-major,
// four samples per pixel.
//
// Embed mutates Pix in place. Extract only reads it. A buffer must not be
// shared between concurrent calls.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer allocates a zeroed buffer of the given dimensions.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// Validate checks that the sample count matches the dimensions.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", verrors.ErrInvalidPixelBuffer)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", verrors.ErrInvalidPixelBuffer, b.Width, b.Height)
	}
	if want := b.Width * b.Height * Channels; len(b.Pix) != want {
		return fmt.Errorf("%w: %dx%d needs %d samples, got %d",
			verrors.ErrInvalidPixelBuffer, b.Width, b.Height, want, len(b.Pix))
	}
	return nil
}

// Slots returns the number of payload bits the buffer can carry.
func (b *PixelBuffer) Slots() int {
	return b.Width * b.Height * usableChannels
}

// Clone returns a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &PixelBuffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// sampleIndex maps the n-th payload slot to its index in Pix, skipping alpha.
func sampleIndex(slot int) int {
	return slot/usableChannels*Channels + slot%usableChannels
}
