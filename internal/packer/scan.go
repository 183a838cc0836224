package packer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"comicpack/pkg/imgutil"
)

// excludedNames are sidecar files copied into the archive without image
// classification.
var excludedNames = map[string]bool{
	"ComicInfo.xml": true,
}

// listPaths returns the full paths of dir's immediate entries in
// lexicographic order. Non-recursive.
func listPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// classifyFile decides whether path holds a supported image, by content
// rather than extension. It returns nil info for unsupported content, with
// corrupt set when verification found a valid signature over undecodable
// pixel data. Errors are reserved for files that cannot be opened or read.
func classifyFile(path string, verify bool) (info *ImageInfo, corrupt bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	kind, err := imgutil.SniffReader(f)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	if kind == imgutil.KindUnknown {
		return nil, false, nil
	}

	if verify {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, false, fmt.Errorf("read %s: %w", path, err)
		}
		if imgutil.Decode(f, kind) != nil {
			return nil, true, nil
		}
	}

	return &ImageInfo{Path: path, Kind: kind}, false, nil
}

// ScanDir lists dir and partitions its entries into supported images,
// non-images, and excluded sidecars. Directories and irregular files are
// non-images; exclusion-list names bypass classification entirely. When
// verify is set every candidate is fully decoded and one update is sent
// per entry on updates.
func ScanDir(dir string, verify bool, updates chan<- ProgressUpdate) (ScanResult, error) {
	var res ScanResult

	paths, err := listPaths(dir)
	if err != nil {
		return res, err
	}
	if verify && updates != nil {
		updates <- ProgressUpdate{TotalDelta: len(paths)}
	}

	for _, path := range paths {
		fi, err := os.Stat(path)
		switch {
		case err != nil || !fi.Mode().IsRegular():
			// Directories, broken links, devices. Blocks the build
			// like any other non-image.
			res.NonImages = append(res.NonImages, NonImage{Path: path})
		case excludedNames[filepath.Base(path)]:
			res.Excluded = append(res.Excluded, path)
		default:
			img, corrupt, err := classifyFile(path, verify)
			if err != nil {
				return res, err
			}
			if img != nil {
				res.Images = append(res.Images, *img)
			} else {
				res.NonImages = append(res.NonImages, NonImage{Path: path, Corrupt: corrupt})
			}
		}

		if verify && updates != nil {
			updates <- ProgressUpdate{VerifiedDelta: 1}
		}
	}

	return res, nil
}
