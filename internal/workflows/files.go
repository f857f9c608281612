package workflows

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	verrors "github.com/PolarWolf314/vaultmark/internal/errors"
	"github.com/PolarWolf314/vaultmark/internal/imageio"
	"github.com/PolarWolf314/vaultmark/internal/stego"

	"github.com/bmatcuk/doublestar/v4"
)

// readImage loads and decodes an image file.
func readImage(path string) (*stego.PixelBuffer, imageio.Format, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", fmt.Errorf("%w: %s", verrors.ErrFileNotFound, path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}

	buf, format, err := imageio.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return buf, format, nil
}

// encodeImage encodes buf in a lossless container.
func encodeImage(buf *stego.PixelBuffer, format imageio.Format) ([]byte, error) {
	var out bytes.Buffer
	if err := imageio.Encode(&out, buf, format); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// resolveImages expands paths, directories and ** globs into a sorted,
// deduplicated list of image files. Relative patterns are resolved against
// baseDir.
func resolveImages(patterns []string, baseDir string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		resolved, err := resolveImagePattern(pattern, baseDir)
		if err != nil {
			return nil, err
		}
		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, verrors.ErrNoFilesFound
	}

	sort.Strings(files)
	return files, nil
}

func resolveImagePattern(pattern, baseDir string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findImagesInDir(absPattern)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		matches, err := doublestar.FilepathGlob(absPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		var filtered []string
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if isImageFile(m) {
				filtered = append(filtered, m)
			}
		}
		return filtered, nil
	}

	// Explicit paths are taken as given; the decoder decides whether they
	// are images.
	if err != nil {
		return nil, fmt.Errorf("%w: %s", verrors.ErrFileNotFound, pattern)
	}
	return []string{absPattern}, nil
}

func findImagesInDir(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && isImageFile(path) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

func isImageFile(path string) bool {
	_, err := imageio.FormatFromPath(path)
	return err == nil
}
