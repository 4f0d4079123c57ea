package artwork

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePoster(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "poster.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestPosterPreview(t *testing.T) {
	hash, err := PosterPreview(writePoster(t, 200, 280))
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestPosterPreview_SmallImage(t *testing.T) {
	hash, err := PosterPreview(writePoster(t, 16, 16))
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestPosterPreview_MissingFile(t *testing.T) {
	_, err := PosterPreview(filepath.Join(t.TempDir(), "absent.png"))
	assert.Error(t, err)
}

func TestThumbnail_PreservesAspectRatio(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	small := thumbnail(img)
	assert.Equal(t, 64, small.Bounds().Dx())
	assert.Equal(t, 32, small.Bounds().Dy())
}
