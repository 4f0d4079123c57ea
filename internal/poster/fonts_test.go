package poster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadFonts_FallbackWhenUnconfigured(t *testing.T) {
	f := LoadFonts("", "", testLogger())
	require.NotNil(t, f)

	face := f.Regular(16)
	require.NotNil(t, face)
	assert.Positive(t, textWidth(face, "Week 24"))

	bold := f.Bold(26)
	require.NotNil(t, bold)
	assert.Positive(t, textWidth(bold, "2025"))
}

func TestLoadFonts_FallbackOnBadFile(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "broken.ttf")
	require.NoError(t, os.WriteFile(bogus, []byte("not a font"), 0o644))

	f := LoadFonts(bogus, filepath.Join(dir, "missing.ttf"), testLogger())
	require.NotNil(t, f)
	assert.NotNil(t, f.Regular(14))
	assert.NotNil(t, f.Bold(14))
}

func TestLoadFonts_CustomFont(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))

	f := LoadFonts(path, path, testLogger())
	require.NotNil(t, f)
	assert.Positive(t, textWidth(f.Regular(15), "Annual Playback Report"))
}
