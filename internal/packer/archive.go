package packer

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"comicpack/pkg/imgutil"
)

// entryName returns the archive name for the image at 0-based index idx of
// count images: a 1-based zero-padded numeral wide enough for count, never
// narrower than two digits, plus the detected format's extension.
func entryName(idx, count int, kind imgutil.Kind) string {
	width := len(strconv.Itoa(count))
	if width < 2 {
		width = 2
	}
	return fmt.Sprintf("%0*d.%s", width, idx+1, kind.Extension())
}

// writeArchive assembles the archive at archivePath: every image in order,
// then every excluded sidecar under its original name. All entries are
// stored without compression; bytes pass through unmodified. The archive is
// written to a temporary sibling and moved into place only after the central
// directory is flushed, so a failed build never leaves a truncated archive
// behind. Returns the final archive size.
func writeArchive(archivePath string, res ScanResult, noRename bool) (size int64, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(archivePath), filepath.Base(archivePath)+"-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", archivePath, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	zw := zip.NewWriter(tmp)
	for i, img := range res.Images {
		name := filepath.Base(img.Path)
		if !noRename {
			name = entryName(i, len(res.Images), img.Kind)
		}
		if err = addStored(zw, name, img.Path); err != nil {
			_ = tmp.Close()
			return 0, fmt.Errorf("add %s to %s: %w", name, archivePath, err)
		}
	}
	for _, path := range res.Excluded {
		name := filepath.Base(path)
		if err = addStored(zw, name, path); err != nil {
			_ = tmp.Close()
			return 0, fmt.Errorf("add %s to %s: %w", name, archivePath, err)
		}
	}

	if err = zw.Close(); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("finalize %s: %w", archivePath, err)
	}
	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("finalize %s: %w", archivePath, err)
	}

	// CreateTemp opens owner-only; the finished archive is a normal file.
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return 0, fmt.Errorf("create %s: %w", archivePath, err)
	}
	if fi, statErr := os.Stat(tmp.Name()); statErr == nil {
		size = fi.Size()
	}
	if err = replaceFile(tmp.Name(), archivePath); err != nil {
		return 0, fmt.Errorf("create %s: %w", archivePath, err)
	}
	return size, nil
}

// addStored copies srcPath byte-for-byte into a stored zip entry.
func addStored(zw *zip.Writer, name, srcPath string) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
	if err != nil {
		return err
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(w, src)
	return err
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
