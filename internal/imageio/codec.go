package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	verrors "github.com/PolarWolf314/vaultmark/internal/errors"
	"github.com/PolarWolf314/vaultmark/internal/stego"

	"golang.org/x/image/bmp"
)

// Decode reads an image and returns its samples as a pixel buffer.
func Decode(r io.Reader) (*stego.PixelBuffer, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, FormatUnknown, verrors.ErrUnsupportedFormat
		}
		return nil, FormatUnknown, fmt.Errorf("decoding image: %w", err)
	}

	format, err := ParseFormat(name)
	if err != nil {
		return nil, FormatUnknown, err
	}
	return FromImage(img), format, nil
}

// Encode writes buf to w in the given lossless format.
func Encode(w io.Writer, buf *stego.PixelBuffer, format Format) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	img := ToImage(buf)
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatGIF, FormatJPEG:
		return fmt.Errorf("%w: %s", verrors.ErrLossyFormat, format)
	default:
		return fmt.Errorf("%w: %q", verrors.ErrUnsupportedFormat, format)
	}
}

// FromImage copies img into a new pixel buffer, rebased to the origin.
func FromImage(img image.Image) *stego.PixelBuffer {
	bounds := img.Bounds()
	buf := stego.NewPixelBuffer(bounds.Dx(), bounds.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		rowLen := bounds.Dx() * stego.Channels
		for y := 0; y < bounds.Dy(); y++ {
			offset := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.Pix[y*rowLen:(y+1)*rowLen], src.Pix[offset:offset+rowLen])
		}
		return buf
	}

	dst := &image.NRGBA{Pix: buf.Pix, Stride: buf.Width * stego.Channels, Rect: image.Rect(0, 0, buf.Width, buf.Height)}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			dst.SetNRGBA(x, y, c)
		}
	}
	return buf
}

// ToImage wraps the buffer's samples in an image without copying them.
func ToImage(buf *stego.PixelBuffer) *image.NRGBA {
	return &image.NRGBA{
		Pix:    buf.Pix,
		Stride: buf.Width * stego.Channels,
		Rect:   image.Rect(0, 0, buf.Width, buf.Height),
	}
}
