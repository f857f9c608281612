package stego

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	verrors "github.com/PolarWolf314/vaultmark/internal/errors"
)

// blackBuffer returns a fully black, fully opaque buffer.
func blackBuffer(width, height int) *PixelBuffer {
	buf := NewPixelBuffer(width, height)
	for i := 3; i < len(buf.Pix); i += Channels {
		buf.Pix[i] = 255
	}
	return buf
}

// noiseBuffer returns a buffer filled with deterministic pseudo-random samples.
func noiseBuffer(width, height int, seed int64) *PixelBuffer {
	buf := NewPixelBuffer(width, height)
	rng := rand.New(rand.NewSource(seed))
	rng.Read(buf.Pix)
	return buf
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"CONFIDENTIAL",
		"Hello world!",
		"línea con acentos",
		"秘密",
		"emoji 🔐🗝️ pair",
		strings.Repeat("A", 500),
	}
	keys := []string{"", "pw123", "🔑", "a much longer key than the message"}

	for _, text := range texts {
		for _, key := range keys {
			buf := noiseBuffer(64, 64, 42)
			if err := Embed(buf, text, key); err != nil {
				t.Fatalf("Embed(%q, key=%q) failed: %v", text, key, err)
			}

			got, err := Extract(buf, key)
			if err != nil {
				t.Fatalf("Extract(key=%q) failed: %v", key, err)
			}
			if got != text {
				t.Errorf("round trip with key %q = %q, want %q", key, got, text)
			}
		}
	}
}

func TestEmbedPreservesHighBits(t *testing.T) {
	original := noiseBuffer(32, 32, 7)
	buf := original.Clone()

	if err := Embed(buf, "watermark payload", "key"); err != nil {
		t.Fatalf("Embed() failed: %v", err)
	}

	changed := 0
	for i := range buf.Pix {
		if (buf.Pix[i]^original.Pix[i])&0xFE != 0 {
			t.Fatalf("sample %d high bits changed: %08b -> %08b", i, original.Pix[i], buf.Pix[i])
		}
		if buf.Pix[i] != original.Pix[i] {
			changed++
		}
	}
	if changed == 0 {
		t.Error("Embed() did not change any sample")
	}
}

func TestEmbedNeverTouchesAlpha(t *testing.T) {
	original := noiseBuffer(20, 20, 11)
	buf := original.Clone()

	// Fill the whole image.
	text := strings.Repeat("x", Capacity(buf))
	if err := Embed(buf, text, "k"); err != nil {
		t.Fatalf("Embed() failed: %v", err)
	}

	for i := 3; i < len(buf.Pix); i += Channels {
		if buf.Pix[i] != original.Pix[i] {
			t.Fatalf("alpha sample %d changed: %d -> %d", i, original.Pix[i], buf.Pix[i])
		}
	}
}

func TestEmbedOnlyTouchesPayloadSlots(t *testing.T) {
	original := noiseBuffer(16, 16, 3)
	buf := original.Clone()

	if err := Embed(buf, "hi", ""); err != nil {
		t.Fatalf("Embed() failed: %v", err)
	}

	used := RequiredBits("hi")
	for slot := used; slot < buf.Slots(); slot++ {
		idx := sampleIndex(slot)
		if buf.Pix[idx] != original.Pix[idx] {
			t.Fatalf("slot %d beyond the payload was modified", slot)
		}
	}
}

func TestCapacityBoundary(t *testing.T) {
	t.Run("exact fit succeeds", func(t *testing.T) {
		// 16 pixels = 48 slots = 32 header bits + one code unit.
		buf := blackBuffer(16, 1)
		if err := Embed(buf, "Z", ""); err != nil {
			t.Fatalf("Embed() of an exact fit failed: %v", err)
		}
		if got, err := Extract(buf, ""); err != nil || got != "Z" {
			t.Errorf("Extract() = %q, %v; want \"Z\", nil", got, err)
		}
	})

	t.Run("exact bit count succeeds", func(t *testing.T) {
		buf := blackBuffer(5, 5)
		bits := make(Bits, buf.Slots())
		if err := writeBits(buf, bits); err != nil {
			t.Errorf("writeBits() with %d bits into %d slots failed: %v", len(bits), buf.Slots(), err)
		}
	})

	t.Run("one bit more fails", func(t *testing.T) {
		buf := blackBuffer(5, 5)
		bits := make(Bits, buf.Slots()+1)
		err := writeBits(buf, bits)
		if !errors.Is(err, verrors.ErrCapacityExceeded) {
			t.Errorf("writeBits() error = %v, want ErrCapacityExceeded", err)
		}
	})

	t.Run("one code unit more fails", func(t *testing.T) {
		buf := blackBuffer(16, 1)
		err := Embed(buf, "ZZ", "")
		if !errors.Is(err, verrors.ErrCapacityExceeded) {
			t.Errorf("Embed() error = %v, want ErrCapacityExceeded", err)
		}
	})
}

func TestEmbedCapacityExceededLeavesBufferUnchanged(t *testing.T) {
	original := noiseBuffer(10, 10, 5)
	buf := original.Clone()

	err := Embed(buf, strings.Repeat("x", 50000), "")
	if !errors.Is(err, verrors.ErrCapacityExceeded) {
		t.Fatalf("Embed() error = %v, want ErrCapacityExceeded", err)
	}
	for i := range buf.Pix {
		if buf.Pix[i] != original.Pix[i] {
			t.Fatalf("sample %d modified by a failed Embed()", i)
		}
	}
}

func TestEmbedPayloadTooLong(t *testing.T) {
	buf := NewPixelBuffer(1, 1)
	err := Embed(buf, strings.Repeat("x", MaxUnits+1), "")

	if !errors.Is(err, verrors.ErrPayloadTooLong) {
		t.Errorf("Embed() error = %v, want ErrPayloadTooLong", err)
	}
	if !errors.Is(err, verrors.ErrCapacityExceeded) {
		t.Errorf("ErrPayloadTooLong should wrap ErrCapacityExceeded, got %v", err)
	}
}

func TestEmptyPayload(t *testing.T) {
	buf := blackBuffer(4, 4)
	if err := Embed(buf, "", "pw"); err != nil {
		t.Fatalf("Embed(\"\") failed: %v", err)
	}
	got, err := Extract(buf, "pw")
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if got != "" {
		t.Errorf("Extract() = %q, want empty string", got)
	}
}

func TestWrongKeyReturnsGarbage(t *testing.T) {
	buf := noiseBuffer(32, 32, 9)
	if err := Embed(buf, "secret", "correct"); err != nil {
		t.Fatalf("Embed() failed: %v", err)
	}

	got, err := Extract(buf, "wrong")
	if err != nil {
		t.Fatalf("Extract() with wrong key returned error %v, want garbage text", err)
	}
	if got == "secret" {
		t.Error("Extract() with wrong key returned the plaintext")
	}
}

func TestDoubleExtractIsIdentical(t *testing.T) {
	buf := noiseBuffer(32, 32, 13)
	if err := Embed(buf, "stable", "k"); err != nil {
		t.Fatalf("Embed() failed: %v", err)
	}
	snapshot := buf.Clone()

	first, err1 := Extract(buf, "k")
	second, err2 := Extract(buf, "k")
	if err1 != nil || err2 != nil {
		t.Fatalf("Extract() errors: %v, %v", err1, err2)
	}
	if first != second {
		t.Errorf("Extract() not idempotent: %q != %q", first, second)
	}
	for i := range buf.Pix {
		if buf.Pix[i] != snapshot.Pix[i] {
			t.Fatalf("Extract() modified sample %d", i)
		}
	}
}

func TestConfidentialScenario(t *testing.T) {
	buf := blackBuffer(100, 100)

	if err := Embed(buf, "CONFIDENTIAL", "pw123"); err != nil {
		t.Fatalf("Embed() failed: %v", err)
	}

	got, err := Extract(buf, "pw123")
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if got != "CONFIDENTIAL" {
		t.Errorf("Extract(pw123) = %q, want CONFIDENTIAL", got)
	}

	for _, key := range []string{"", "pw124", "other"} {
		got, err := Extract(buf, key)
		if err != nil {
			t.Errorf("Extract(%q) returned error %v", key, err)
		}
		if got == "CONFIDENTIAL" {
			t.Errorf("Extract(%q) recovered the plaintext", key)
		}
	}
}

func TestOversizedMessageScenario(t *testing.T) {
	buf := blackBuffer(10, 10)
	if slots := buf.Slots(); slots != 300 {
		t.Fatalf("10x10 image has %d slots, want 300", slots)
	}

	err := Embed(buf, strings.Repeat("m", 50000), "")
	if !errors.Is(err, verrors.ErrCapacityExceeded) {
		t.Errorf("Embed() error = %v, want ErrCapacityExceeded", err)
	}
}

func TestExtractWithoutWatermark(t *testing.T) {
	buf := blackBuffer(50, 50)

	_, err := Extract(buf, "")
	if !errors.Is(err, verrors.ErrNoWatermarkFound) {
		t.Errorf("Extract() on a blank image error = %v, want ErrNoWatermarkFound", err)
	}
	if _, ok := Verify(buf, ""); ok {
		t.Error("Verify() on a blank image reported a watermark")
	}
}

func TestExtractTooSmallForHeader(t *testing.T) {
	buf := blackBuffer(2, 2)

	_, err := Extract(buf, "")
	if !errors.Is(err, verrors.ErrNoWatermarkFound) {
		t.Errorf("Extract() error = %v, want ErrNoWatermarkFound", err)
	}
}

func TestExtractImplausibleLength(t *testing.T) {
	buf := blackBuffer(16, 1)

	header := appendUint16(nil, Magic)
	header = appendUint16(header, 500)
	if err := writeBits(buf, header); err != nil {
		t.Fatalf("writeBits() failed: %v", err)
	}

	_, err := Extract(buf, "")
	if !errors.Is(err, verrors.ErrCorruptPayload) {
		t.Errorf("Extract() error = %v, want ErrCorruptPayload", err)
	}
}

func TestInvalidPixelBuffer(t *testing.T) {
	tests := []struct {
		name string
		buf  *PixelBuffer
	}{
		{"nil", nil},
		{"short", &PixelBuffer{Width: 2, Height: 2, Pix: make([]uint8, 15)}},
		{"not multiple of four", &PixelBuffer{Width: 1, Height: 1, Pix: make([]uint8, 3)}},
		{"negative", &PixelBuffer{Width: -1, Height: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Embed(tt.buf, "x", ""); !errors.Is(err, verrors.ErrInvalidPixelBuffer) {
				t.Errorf("Embed() error = %v, want ErrInvalidPixelBuffer", err)
			}
			if _, err := Extract(tt.buf, ""); !errors.Is(err, verrors.ErrInvalidPixelBuffer) {
				t.Errorf("Extract() error = %v, want ErrInvalidPixelBuffer", err)
			}
			if got := Capacity(tt.buf); got != 0 {
				t.Errorf("Capacity() = %d, want 0", got)
			}
		})
	}
}

func TestCapacity(t *testing.T) {
	tests := []struct {
		width, height int
		want          int
	}{
		{0, 0, 0},
		{2, 2, 0},
		{16, 1, 1},
		{10, 10, 16},
		{100, 100, 1873},
		{1000, 1000, MaxUnits},
	}

	for _, tt := range tests {
		if got := Capacity(NewPixelBuffer(tt.width, tt.height)); got != tt.want {
			t.Errorf("Capacity(%dx%d) = %d, want %d", tt.width, tt.height, got, tt.want)
		}
	}
}

func TestCapacityIsEmbeddable(t *testing.T) {
	buf := noiseBuffer(37, 23, 21)
	text := strings.Repeat("q", Capacity(buf))

	if err := Embed(buf, text, "key"); err != nil {
		t.Fatalf("Embed() of Capacity() units failed: %v", err)
	}
	if err := Embed(buf.Clone(), text+"q", "key"); !errors.Is(err, verrors.ErrCapacityExceeded) {
		t.Errorf("Embed() of Capacity()+1 units error = %v, want ErrCapacityExceeded", err)
	}
}
