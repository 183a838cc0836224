package imgutil

import (
	"errors"
	"io"
	"os"
)

// Kind identifies a supported image type.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindGIF
	KindWEBP
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindGIF:
		return "gif"
	case KindWEBP:
		return "webp"
	default:
		return "unknown"
	}
}

// Extension returns the canonical file extension for the kind, without the
// leading dot.
func (k Kind) Extension() string {
	switch k {
	case KindJPEG:
		return "jpg"
	case KindPNG:
		return "png"
	case KindGIF:
		return "gif"
	case KindWEBP:
		return "webp"
	default:
		return ""
	}
}

var (
	jpegSig  = []byte{0xff, 0xd8, 0xff}
	pngSig   = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	gif87Sig = []byte("GIF87a")
	gif89Sig = []byte("GIF89a")
	riffSig  = []byte("RIFF")
	webpSig  = []byte("WEBP")
)

// headerLen is the window needed for the longest signature: RIFF, a 4-byte
// chunk size, then WEBP.
const headerLen = 12

// DetectHeader inspects the first 12 bytes of a file for known signatures.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) < headerLen {
		return KindUnknown, errors.New("header too short")
	}

	if hasPrefix(header, jpegSig) {
		return KindJPEG, nil
	}
	if hasPrefix(header, pngSig) {
		return KindPNG, nil
	}
	if hasPrefix(header, gif87Sig) || hasPrefix(header, gif89Sig) {
		return KindGIF, nil
	}
	if hasPrefix(header, riffSig) && hasPrefix(header[8:], webpSig) {
		return KindWEBP, nil
	}

	return KindUnknown, nil
}

// SniffFile reads the first 12 bytes of a file to determine its type.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads the first 12 bytes from r and determines its type.
// A reader too short to hold any signature is unknown, not an error.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return KindUnknown, nil
		}
		return KindUnknown, err
	}

	return DetectHeader(header)
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i := range prefix {
		if buf[i] != prefix[i] {
			return false
		}
	}
	return true
}
