package display

import (
	"os"

	"github.com/rileyhilliard/oledmon/internal/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Point sizes for the four faces, tuned for a 128x64 panel.
const (
	SizeBig    = 18
	SizeNormal = 12
	SizeSmall  = 10
	SizeTiny   = 9
)

// Fonts holds the faces used by screens. Load it once at startup and share it.
type Fonts struct {
	Big    font.Face
	Normal font.Face
	Small  font.Face
	Tiny   font.Face
}

// LoadFonts parses the TrueType font at path, or the embedded Go Mono when path is empty.
func LoadFonts(path string) (*Fonts, error) {
	data := gomono.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot read font file: "+path,
				"Point display.font at a .ttf file, or leave it empty to use the built-in font.")
		}
		data = b
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot parse font file: "+path,
			"Only TrueType/OpenType fonts are supported.")
	}

	fonts := &Fonts{}
	for _, fs := range []struct {
		size float64
		dst  *font.Face
	}{
		{SizeBig, &fonts.Big},
		{SizeNormal, &fonts.Normal},
		{SizeSmall, &fonts.Small},
		{SizeTiny, &fonts.Tiny},
	} {
		face, err := newFace(f, fs.size)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot build font face",
				"Try a different font file.")
		}
		*fs.dst = face
	}
	return fonts, nil
}

func newFace(f *sfnt.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
