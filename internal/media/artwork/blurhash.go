package artwork

import (
	"fmt"
	"image"
	"os"

	"github.com/bbrks/go-blurhash"
)

// previewSize is the thumbnail edge used for BlurHash computation. The
// hash is a low-frequency placeholder, so a small input is enough and
// keeps encoding in the millisecond range even for tall posters.
const previewSize = 64

// PosterPreview generates a BlurHash placeholder string for a rendered
// poster file, suitable for embedding in notification payloads.
func PosterPreview(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open poster: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode poster: %w", err)
	}

	// 4x3 components balance hash length against visible detail.
	hash, err := blurhash.Encode(4, 3, thumbnail(img))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}

// thumbnail downsamples img so its longer edge is at most previewSize.
// Nearest-neighbor sampling is fine at this resolution.
func thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= previewSize && h <= previewSize {
		return img
	}

	dw, dh := previewSize, previewSize
	if w > h {
		dh = max(1, h*previewSize/w)
	} else {
		dw = max(1, w*previewSize/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			dst.Set(x, y, img.At(b.Min.X+x*w/dw, b.Min.Y+y*h/dh))
		}
	}
	return dst
}
