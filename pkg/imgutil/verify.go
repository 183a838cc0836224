package imgutil

import (
	"fmt"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/webp"
)

// Decode fully decodes the pixel data from r, which must hold an image of
// the given kind. A non-nil error means the data is corrupt or truncated.
// GIFs are decoded frame by frame so damage past the first frame is caught.
func Decode(r io.Reader, kind Kind) error {
	var err error
	switch kind {
	case KindJPEG:
		_, err = jpeg.Decode(r)
	case KindPNG:
		_, err = png.Decode(r)
	case KindGIF:
		_, err = gif.DecodeAll(r)
	case KindWEBP:
		_, err = webp.Decode(r)
	default:
		err = fmt.Errorf("no decoder for %s", kind)
	}
	return err
}
