package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	verrors "github.com/PolarWolf314/vaultmark/internal/errors"
)

// OutputPath derives the default output file for a watermarked image:
// dir/photo.jpg with suffix ".watermarked" and ext ".png" becomes
// dir/photo.watermarked.png.
func OutputPath(inputPath, suffix, ext string) string {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+suffix+ext)
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// WriteFile writes data to path with 0600 permissions. Unless overwrite is
// set, an existing file is left alone and ErrOutputExists is returned.
func WriteFile(path string, data []byte, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.OpenFile(path, flags, 0600)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", verrors.ErrOutputExists, path)
		}
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
