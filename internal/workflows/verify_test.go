package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/vaultmark/internal/audit"
	verrors "github.com/PolarWolf314/vaultmark/internal/errors"
)

// setupVerifyTree creates:
//
//	marked.png        watermarked
//	plain.png         no watermark
//	nested/deep.png   watermarked
//	nested/notes.txt  ignored by globs
//	broken.png        not an image
func setupVerifyTree(t *testing.T) string {
	t.Helper()
	dir := setupWorkflowTest(t)

	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"src-a.png", "src-b.png"} {
		writePNG(t, filepath.Join(dir, name), 32, 32)
	}
	if _, err := Embed(context.Background(), EmbedOptions{
		InputPath:  filepath.Join(dir, "src-a.png"),
		OutputPath: filepath.Join(dir, "marked.png"),
		Message:    "owner:alice",
	}); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if _, err := Embed(context.Background(), EmbedOptions{
		InputPath:  filepath.Join(dir, "src-b.png"),
		OutputPath: filepath.Join(dir, "nested", "deep.png"),
		Message:    "owner:bob",
	}); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	os.Remove(filepath.Join(dir, "src-a.png"))
	os.Remove(filepath.Join(dir, "src-b.png"))

	writePNG(t, filepath.Join(dir, "plain.png"), 32, 32)
	if err := os.WriteFile(filepath.Join(dir, "nested", "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not an image"), 0600); err != nil {
		t.Fatal(err)
	}

	return dir
}

func TestVerify_Patterns(t *testing.T) {
	tests := []struct {
		name        string
		patterns    []string
		wantFiles   int
		wantFound   int
		wantMissing int
		wantErrors  int
	}{
		{"recursive glob", []string{"**/*.png"}, 4, 2, 1, 1},
		{"top-level glob", []string{"*.png"}, 3, 1, 1, 1},
		{"directory", []string{"nested"}, 1, 1, 0, 0},
		{"explicit files", []string{"marked.png", "plain.png"}, 2, 1, 1, 0},
		{"duplicates collapse", []string{"marked.png", "*.png"}, 3, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupVerifyTree(t)

			result, err := Verify(context.Background(), VerifyOptions{
				Patterns: tt.patterns,
				BaseDir:  dir,
			})
			if err != nil {
				t.Fatalf("Verify failed: %v", err)
			}

			if len(result.Files) != tt.wantFiles {
				t.Errorf("Expected %d files, got %d", tt.wantFiles, len(result.Files))
			}
			if result.FoundCount != tt.wantFound {
				t.Errorf("Expected %d found, got %d", tt.wantFound, result.FoundCount)
			}
			if result.MissingCount != tt.wantMissing {
				t.Errorf("Expected %d missing, got %d", tt.wantMissing, result.MissingCount)
			}
			if result.ErrorCount != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d", tt.wantErrors, result.ErrorCount)
			}
		})
	}
}

func TestVerify_ReportsMessages(t *testing.T) {
	dir := setupVerifyTree(t)

	result, err := Verify(context.Background(), VerifyOptions{
		Patterns: []string{"marked.png"},
		BaseDir:  dir,
	})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	fv := result.Files[0]
	if fv.Status != StatusFound || fv.Message != "owner:alice" {
		t.Errorf("Unexpected result: %+v", fv)
	}
}

func TestVerify_CorruptHeader(t *testing.T) {
	dir := setupVerifyTree(t)
	writeCorruptPNG(t, filepath.Join(dir, "damaged.png"))

	result, err := Verify(context.Background(), VerifyOptions{
		Patterns: []string{"marked.png", "plain.png", "damaged.png"},
		BaseDir:  dir,
	})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	var damaged *FileVerification
	for i := range result.Files {
		if filepath.Base(result.Files[i].Path) == "damaged.png" {
			damaged = &result.Files[i]
		}
	}
	if damaged == nil {
		t.Fatal("damaged.png missing from results")
	}
	if damaged.Status != StatusCorrupt {
		t.Errorf("Expected status %q, got %q", StatusCorrupt, damaged.Status)
	}
	if !errors.Is(damaged.Err, verrors.ErrCorruptPayload) {
		t.Errorf("Expected ErrCorruptPayload, got %v", damaged.Err)
	}
	if result.FoundCount != 1 || result.MissingCount != 1 || result.ErrorCount != 1 {
		t.Errorf("Expected 1 found, 1 missing, 1 error; got %d, %d, %d",
			result.FoundCount, result.MissingCount, result.ErrorCount)
	}
}

func TestVerify_NoFiles(t *testing.T) {
	dir := setupWorkflowTest(t)

	_, err := Verify(context.Background(), VerifyOptions{
		Patterns: []string{"**/*.png"},
		BaseDir:  dir,
	})
	if !errors.Is(err, verrors.ErrNoFilesFound) {
		t.Errorf("Expected ErrNoFilesFound, got %v", err)
	}
}

func TestVerify_MissingExplicitFile(t *testing.T) {
	dir := setupWorkflowTest(t)

	_, err := Verify(context.Background(), VerifyOptions{
		Patterns: []string{"ghost.png"},
		BaseDir:  dir,
	})
	if !errors.Is(err, verrors.ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestVerify_CancelledContext(t *testing.T) {
	dir := setupVerifyTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Verify(ctx, VerifyOptions{Patterns: []string{"**/*.png"}, BaseDir: dir})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestVerify_LogsCounts(t *testing.T) {
	dir := setupVerifyTree(t)

	if _, err := Verify(context.Background(), VerifyOptions{
		Patterns: []string{"*.png"},
		BaseDir:  dir,
	}); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	last := entries[len(entries)-1]
	if last.Operation != audit.OpVerify || last.FoundCount != 1 || last.MissingCount != 1 || len(last.Files) != 3 {
		t.Errorf("Unexpected verify entry: %+v", last)
	}
}
