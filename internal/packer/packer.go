package packer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// archiveExt is the conventional comic archive extension.
const archiveExt = ".cbz"

// ArchivePath derives the output path for dir by swapping its extension,
// if any, for the archive extension.
func ArchivePath(dir string) string {
	clean := filepath.Clean(dir)
	ext := filepath.Ext(clean)
	// A leading dot is part of a hidden name, not an extension.
	if ext == filepath.Base(clean) {
		ext = ""
	}
	return strings.TrimSuffix(clean, ext) + archiveExt
}

// Pack processes one directory end to end: overwrite confirmation, scan,
// build, and optional source deletion. Declined overwrites and directories
// blocked by non-image entries are reported through the Outcome, not as
// errors; errors are reserved for I/O failures and abort only this
// directory. The source is removed only after the archive has been moved
// into place.
func Pack(dir string, opts Options, confirm ConfirmFunc, updates chan<- ProgressUpdate) (Outcome, error) {
	out := Outcome{ArchivePath: ArchivePath(dir)}

	if !opts.Overwrite {
		if _, err := os.Stat(out.ArchivePath); err == nil {
			ok, err := confirm(out.ArchivePath)
			if err != nil {
				return out, fmt.Errorf("confirm overwrite of %s: %w", out.ArchivePath, err)
			}
			if !ok {
				out.Status = StatusSkippedExisting
				return out, nil
			}
		}
	}

	res, err := ScanDir(dir, opts.Verify, updates)
	if err != nil {
		return out, err
	}
	if len(res.NonImages) > 0 {
		out.Status = StatusBlocked
		out.NonImages = res.NonImages
		return out, nil
	}

	size, err := writeArchive(out.ArchivePath, res, opts.NoRename)
	if err != nil {
		return out, err
	}
	out.Status = StatusBuilt
	out.ImageCount = len(res.Images)
	out.SidecarCount = len(res.Excluded)
	out.ArchiveSize = size

	if opts.Delete {
		if err := os.RemoveAll(dir); err != nil {
			return out, fmt.Errorf("remove directory %s: %w", dir, err)
		}
		out.Deleted = true
	}

	return out, nil
}
