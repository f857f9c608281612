package stego

import (
	"fmt"
	"unicode/utf16"

	verrors "github.com/PolarWolf314/vaultmark/internal/errors"
)

const (
	// Magic prefixes every watermark.
	Magic uint16 = 0x564D

	// HeaderBits is the size of the magic plus the length field.
	HeaderBits = 2 * UnitBits

	// MaxUnits is the largest payload the length field can express.
	MaxUnits = 0xFFFF
)

// Embed writes text into the least significant bits of buf. A non-empty key
// obfuscates the payload first.
//
// Text is handled as UTF-16 code units. Invalid UTF-8 sequences are replaced
// with U+FFFD before embedding.
//
// Returns ErrCapacityExceeded, or ErrPayloadTooLong which wraps it, when the
// payload does not fit. The capacity check runs before any sample is
// written, so buf is unchanged on error.
func Embed(buf *PixelBuffer, text, key string) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	units := utf16.Encode([]rune(text))
	if len(units) > MaxUnits {
		return fmt.Errorf("%w (got %d)", verrors.ErrPayloadTooLong, len(units))
	}
	units = Obfuscate(units, key)

	payload := make(Bits, 0, HeaderBits+len(units)*UnitBits)
	payload = appendUint16(payload, Magic)
	payload = appendUint16(payload, uint16(len(units)))
	for _, u := range units {
		payload = appendUint16(payload, u)
	}

	return writeBits(buf, payload)
}

// Extract recovers the text embedded in buf, deobfuscating it with key.
//
// A wrong key is not detected: the result is unreadable text and a nil error.
// Returns ErrNoWatermarkFound when the magic prefix is missing and
// ErrCorruptPayload when the declared length runs past the end of the image.
func Extract(buf *PixelBuffer, key string) (string, error) {
	units, err := extractUnits(buf)
	if err != nil {
		return "", err
	}
	return string(utf16.Decode(Deobfuscate(units, key))), nil
}

// Verify reports whether buf carries a watermark, returning its text if so.
func Verify(buf *PixelBuffer, key string) (string, bool) {
	text, err := Extract(buf, key)
	if err != nil {
		return "", false
	}
	return text, true
}

// Capacity returns the largest payload, in UTF-16 code units, that fits in buf.
func Capacity(buf *PixelBuffer) int {
	if buf.Validate() != nil {
		return 0
	}
	units := (buf.Slots() - HeaderBits) / UnitBits
	if units < 0 {
		return 0
	}
	if units > MaxUnits {
		return MaxUnits
	}
	return units
}

// RequiredBits returns the number of slots needed to embed text.
func RequiredBits(text string) int {
	return HeaderBits + UnitLen(text)*UnitBits
}

func writeBits(buf *PixelBuffer, bits Bits) error {
	if slots := buf.Slots(); len(bits) > slots {
		return fmt.Errorf("%w: need %d bits, image holds %d", verrors.ErrCapacityExceeded, len(bits), slots)
	}
	for i, bit := range bits {
		idx := sampleIndex(i)
		buf.Pix[idx] = buf.Pix[idx]&0xFE | bit&1
	}
	return nil
}

func readBits(buf *PixelBuffer, from, n int) Bits {
	bits := make(Bits, n)
	for i := range bits {
		bits[i] = buf.Pix[sampleIndex(from+i)] & 1
	}
	return bits
}

func extractUnits(buf *PixelBuffer) ([]uint16, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	slots := buf.Slots()
	if slots < HeaderBits {
		return nil, fmt.Errorf("%w: image holds %d bits, header needs %d", verrors.ErrNoWatermarkFound, slots, HeaderBits)
	}
	if magic := readUint16(readBits(buf, 0, UnitBits)); magic != Magic {
		return nil, verrors.ErrNoWatermarkFound
	}

	length := int(readUint16(readBits(buf, UnitBits, UnitBits)))
	need := length * UnitBits
	if need > slots-HeaderBits {
		return nil, fmt.Errorf("%w: header declares %d bits, image holds %d", verrors.ErrCorruptPayload, need, slots-HeaderBits)
	}

	return BitsToUnits(readBits(buf, HeaderBits, need)), nil
}
