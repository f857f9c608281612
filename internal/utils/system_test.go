package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	verrors "github.com/PolarWolf314/vaultmark/internal/errors"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		suffix string
		ext    string
		want   string
	}{
		{"JpegToPng", "photos/holiday.jpg", ".watermarked", ".png", filepath.Join("photos", "holiday.watermarked.png")},
		{"KeepsBmp", "scan.bmp", ".wm", ".bmp", "scan.wm.bmp"},
		{"NoSuffix", "a/b/c.png", "", ".png", filepath.Join("a", "b", "c.png")},
		{"DottedStem", "my.photo.v2.png", ".watermarked", ".png", "my.photo.v2.watermarked.png"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := OutputPath(tc.input, tc.suffix, tc.ext); got != tc.want {
				t.Errorf("OutputPath(%q) = %q, expected %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.png")

	if err := WriteFile(path, []byte("first"), false); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !FileExists(path) {
		t.Fatal("FileExists returned false after WriteFile")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected permissions 0600, got %o", info.Mode().Perm())
	}

	err = WriteFile(path, []byte("second"), false)
	if !errors.Is(err, verrors.ErrOutputExists) {
		t.Errorf("Expected ErrOutputExists, got %v", err)
	}

	if err := WriteFile(path, []byte("second"), true); err != nil {
		t.Fatalf("WriteFile with overwrite failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("Expected overwritten content, got %q", data)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	if FileExists(dir) {
		t.Error("FileExists should be false for directories")
	}
	if FileExists(filepath.Join(dir, "missing.png")) {
		t.Error("FileExists should be false for missing files")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 8, "this is…"},
		{"秘密のメッセージ", 3, "秘密…"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}

	for _, tc := range tests {
		if got := Truncate(tc.input, tc.n); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, expected %q", tc.input, tc.n, got, tc.want)
		}
	}
}

func TestGetUsername(t *testing.T) {
	name, err := GetUsername()
	if err != nil {
		t.Skipf("no current user available: %v", err)
	}
	if name == "" {
		t.Error("GetUsername returned an empty name")
	}
}
