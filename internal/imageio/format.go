package imageio

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	verrors "github.com/PolarWolf314/vaultmark/internal/errors"
)

// Format names an image container.
type Format string

const (
	FormatUnknown Format = ""
	FormatPNG     Format = "png"
	FormatBMP     Format = "bmp"
	FormatGIF     Format = "gif"
	FormatJPEG    Format = "jpeg"
)

// Lossless reports whether f preserves every sample bit on encode.
func (f Format) Lossless() bool {
	return f == FormatPNG || f == FormatBMP
}

// Extension returns the canonical file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatUnknown:
		return ""
	default:
		return "." + string(f)
	}
}

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	gifMagic  = []byte("GIF")
	jpegMagic = []byte{0xff, 0xd8, 0xff}
	bmpMagic  = []byte("BM")
)

// Sniff detects the container format from the leading bytes of data.
func Sniff(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG
	case bytes.HasPrefix(data, gifMagic):
		return FormatGIF
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG
	case bytes.HasPrefix(data, bmpMagic):
		return FormatBMP
	default:
		return FormatUnknown
	}
}

// ParseFormat maps a user supplied name such as "PNG" or "jpg" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "gif":
		return FormatGIF, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q", verrors.ErrUnsupportedFormat, name)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return FormatUnknown, fmt.Errorf("%w: %s has no extension", verrors.ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}
