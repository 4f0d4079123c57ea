package poster

import (
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Fonts holds the parsed regular and bold typefaces used on posters.
// Missing or unparsable font files degrade to the bundled Go fonts so
// rendering never fails on absent assets; CJK glyphs then render as
// tofu, which the operator fixes by pointing at a real font.
type Fonts struct {
	regular *sfnt.Font
	bold    *sfnt.Font
}

// LoadFonts parses the configured font files. Either path may be empty
// or invalid; the bundled fallback fills the gap.
func LoadFonts(regularPath, boldPath string, logger *slog.Logger) *Fonts {
	f := &Fonts{}

	f.regular = parseFontFile(regularPath, logger)
	if f.regular == nil {
		f.regular, _ = sfnt.Parse(goregular.TTF)
	}

	f.bold = parseFontFile(boldPath, logger)
	if f.bold == nil {
		f.bold, _ = sfnt.Parse(gobold.TTF)
	}

	return f
}

// parseFontFile reads and parses a TTF or TTC file, returning nil on any
// failure. Collections contribute their first font.
func parseFontFile(path string, logger *slog.Logger) *sfnt.Font {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("font file unreadable, using bundled fallback", "path", path, "error", err)
		return nil
	}
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		logger.Warn("font file unparsable, using bundled fallback", "path", path, "error", err)
		return nil
	}
	fnt, err := coll.Font(0)
	if err != nil {
		logger.Warn("font collection empty, using bundled fallback", "path", path, "error", err)
		return nil
	}
	return fnt
}

// Regular returns a face of the regular typeface at the given size.
func (f *Fonts) Regular(size float64) font.Face {
	return newFace(f.regular, size)
}

// Bold returns a face of the bold typeface at the given size.
func (f *Fonts) Bold(size float64) font.Face {
	return newFace(f.bold, size)
}

func newFace(fnt *sfnt.Font, size float64) font.Face {
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// The bundled fonts always produce a face; reaching here means a
		// broken custom font slipped past parsing. Fall back hard.
		fallback, _ := sfnt.Parse(goregular.TTF)
		face, _ = opentype.NewFace(fallback, &opentype.FaceOptions{
			Size: size, DPI: 72, Hinting: font.HintingFull,
		})
	}
	return face
}
