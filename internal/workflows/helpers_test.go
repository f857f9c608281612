package workflows

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/vaultmark/internal/configs"
	"github.com/PolarWolf314/vaultmark/internal/stego"
)

// setupWorkflowTest points user settings at a temp dir and returns a working
// directory for image files.
func setupWorkflowTest(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	original := configs.UserVaultmarkSettings
	configs.UserVaultmarkSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempDir, "config"),
		UserDataPath:    filepath.Join(tempDir, "data"),
		Username:        "testuser",
	}
	t.Cleanup(func() {
		configs.UserVaultmarkSettings = original
	})

	workDir := filepath.Join(tempDir, "images")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatalf("Failed to create work dir: %v", err)
	}
	return workDir
}

func gradient(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, gradient(width, height)); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func writeJPEG(t *testing.T, path string, width, height int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, gradient(width, height), nil); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

// writeCorruptPNG writes a PNG whose header carries the watermark magic and a
// length far beyond what the image holds.
func writeCorruptPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}

	header := uint32(stego.Magic)<<16 | 0xFFFF
	for slot := 0; slot < stego.HeaderBits; slot++ {
		bit := uint8(header>>(31-slot)) & 1
		img.Pix[slot/3*4+slot%3] |= bit
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}
