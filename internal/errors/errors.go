package errors

import (
	"errors"
	"fmt"
)

// Watermark errors indicate failures while embedding or extracting a payload.
var (
	// ErrCapacityExceeded indicates the payload does not fit in the image.
	ErrCapacityExceeded = errors.New("message too large for this image")

	// ErrPayloadTooLong indicates the payload length cannot be expressed by the
	// 16-bit length header. It wraps ErrCapacityExceeded.
	ErrPayloadTooLong = fmt.Errorf("%w: payload exceeds 65535 code units", ErrCapacityExceeded)

	// ErrCorruptPayload indicates the header declares more data than the image holds.
	ErrCorruptPayload = errors.New("watermark payload is corrupt or truncated")

	// ErrNoWatermarkFound indicates no coherent watermark header was found.
	ErrNoWatermarkFound = errors.New("no watermark found")

	// ErrInvalidPixelBuffer indicates the pixel buffer dimensions do not match its samples.
	ErrInvalidPixelBuffer = errors.New("invalid pixel buffer")
)

// Image errors indicate issues with the image container surrounding the pixels.
var (
	// ErrUnsupportedFormat indicates the image format is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrLossyFormat indicates a lossy output format was requested.
	// Lossy recompression destroys the least significant bits.
	ErrLossyFormat = errors.New("lossy image formats cannot carry a watermark")
)

// Seal errors indicate failures of the authenticated payload layer.
var (
	// ErrSealFailed indicates the payload could not be sealed.
	ErrSealFailed = errors.New("failed to seal payload")

	// ErrOpenFailed indicates a sealed payload could not be authenticated.
	// Usually the passphrase is wrong.
	ErrOpenFailed = errors.New("failed to open sealed payload")

	// ErrInvalidSealedPayload indicates the sealed payload armor is malformed.
	ErrInvalidSealedPayload = errors.New("invalid sealed payload")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrOutputExists indicates the output file exists and overwrite was not requested.
	ErrOutputExists = errors.New("output file already exists")
)

// Log errors indicate issues reading the activity log.
var (
	// ErrInvalidDateFormat indicates a date filter could not be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)
