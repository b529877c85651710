package render

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Point sizes used on the card.
const (
	titleSize     = 36
	subtitleSize  = 20
	bodySize      = 16
	tableSize     = 14
	watermarkSize = 80
)

// Fonts holds the parsed card typeface. A nil typeface means every size is
// drawn with the built-in bitmap face.
type Fonts struct {
	ttf *opentype.Font
}

// FallbackFonts returns a font set backed only by basicfont.Face7x13.
func FallbackFonts() *Fonts {
	return &Fonts{}
}

// LoadFonts parses the TrueType/OpenType file at path. On any failure it
// returns the fallback set together with the error so callers can log it
// and carry on.
func LoadFonts(path string) (*Fonts, error) {
	if path == "" {
		return FallbackFonts(), fmt.Errorf("font path not configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FallbackFonts(), fmt.Errorf("read font: %w", err)
	}
	return ParseFonts(data)
}

// ParseFonts builds a font set from raw font bytes.
func ParseFonts(data []byte) (*Fonts, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return FallbackFonts(), fmt.Errorf("parse font: %w", err)
	}
	return &Fonts{ttf: f}, nil
}

// Fallback reports whether the bitmap face is in use.
func (f *Fonts) Fallback() bool {
	return f == nil || f.ttf == nil
}

// faceSet is the per-render set of sized faces. opentype faces keep glyph
// buffers, so each render gets its own.
type faceSet struct {
	title, subtitle, body, table, watermark font.Face
}

func (f *Fonts) faces() (*faceSet, error) {
	if f.Fallback() {
		face := basicfont.Face7x13
		return &faceSet{title: face, subtitle: face, body: face, table: face, watermark: face}, nil
	}
	sized := func(size float64) (font.Face, error) {
		return opentype.NewFace(f.ttf, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	fs := &faceSet{}
	targets := []struct {
		dst  *font.Face
		size float64
	}{
		{&fs.title, titleSize},
		{&fs.subtitle, subtitleSize},
		{&fs.body, bodySize},
		{&fs.table, tableSize},
		{&fs.watermark, watermarkSize},
	}
	for _, t := range targets {
		face, err := sized(t.size)
		if err != nil {
			fs.Close()
			return nil, fmt.Errorf("font face %vpt: %w", t.size, err)
		}
		*t.dst = face
	}
	return fs, nil
}

// Close releases the sized faces.
func (fs *faceSet) Close() {
	for _, face := range []font.Face{fs.title, fs.subtitle, fs.body, fs.table, fs.watermark} {
		if face != nil {
			_ = face.Close()
		}
	}
}
