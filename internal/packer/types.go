package packer

import "comicpack/pkg/imgutil"

// Options controls how a single directory is packed. It is immutable for
// the duration of one directory's processing.
type Options struct {
	NoRename  bool
	Delete    bool
	Verify    bool
	Overwrite bool
}

// ImageInfo records a file confirmed to be a supported image.
type ImageInfo struct {
	Path string
	Kind imgutil.Kind
}

// NonImage is an entry that failed classification. Corrupt marks files whose
// content carried a valid signature but did not decode under verification;
// the distinction is diagnostic only, both block the build.
type NonImage struct {
	Path    string
	Corrupt bool
}

// ScanResult partitions a directory listing. Every listed path lands in
// exactly one of the three slices, in sorted-listing order.
type ScanResult struct {
	Images    []ImageInfo
	NonImages []NonImage
	Excluded  []string
}

type Status int

const (
	StatusBuilt Status = iota
	StatusSkippedExisting
	StatusBlocked
)

// Outcome reports what Pack did with one directory.
type Outcome struct {
	Status       Status
	ArchivePath  string
	NonImages    []NonImage
	ImageCount   int
	SidecarCount int
	ArchiveSize  int64
	Deleted      bool
}

// ProgressUpdate is sent on the updates channel while verification runs:
// one TotalDelta up front, then one VerifiedDelta per scanned entry.
type ProgressUpdate struct {
	TotalDelta    int
	VerifiedDelta int
}

// ConfirmFunc decides whether an existing archive may be overwritten.
// Pack consults it only when the target exists and Overwrite is unset.
type ConfirmFunc func(path string) (bool, error)
