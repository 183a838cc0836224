package cmd

import (
	"bufio"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestPromptOverwriteSequentialAnswers(t *testing.T) {
	// Piped input answering for two directories in a row; the second
	// answer must not be swallowed by the first prompt's buffering.
	old := promptInput
	promptInput = bufio.NewReader(strings.NewReader("y\nYes\n"))
	t.Cleanup(func() { promptInput = old })

	for i := 1; i <= 2; i++ {
		ok, err := promptOverwrite("book.cbz")
		if err != nil {
			t.Fatalf("prompt %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("prompt %d: expected yes", i)
		}
	}
}

func TestPromptOverwriteDeclines(t *testing.T) {
	old := promptInput
	promptInput = bufio.NewReader(strings.NewReader("n\n\n"))
	t.Cleanup(func() { promptInput = old })

	for i := 1; i <= 2; i++ {
		ok, err := promptOverwrite("book.cbz")
		if err != nil {
			t.Fatalf("prompt %d: %v", i, err)
		}
		if ok {
			t.Fatalf("prompt %d: expected no", i)
		}
	}
}

func TestRunContinuesAfterFailedDirectory(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "good")
	if err := os.Mkdir(good, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writePNG(t, filepath.Join(good, "a.png"))
	missing := filepath.Join(root, "absent")

	// The failing directory comes first; the good one must still build
	// and the run as a whole must report failure.
	rootCmd.SetArgs([]string{missing, good})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected a non-nil error when a directory fails")
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("error: got %q", err)
	}

	if _, statErr := os.Stat(filepath.Join(root, "good.cbz")); statErr != nil {
		t.Fatalf("good archive missing: %v", statErr)
	}
}
