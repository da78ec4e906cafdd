// Package text lays out and rasterizes UI text with golang.org/x/image
// faces. A Printer renders into a texture the canvas draws like an image.
package text

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

type faceKey struct {
	name string
	px   float64
}

// Fonts holds parsed font files and the faces built from them.
type Fonts struct {
	fonts    map[string]*opentype.Font
	faces    map[faceKey]font.Face
	fallback string
}

func NewFonts() *Fonts {
	return &Fonts{
		fonts: map[string]*opentype.Font{},
		faces: map[faceKey]font.Face{},
	}
}

// Add parses a TrueType or OpenType file under name. The first font added
// becomes the fallback for unknown names.
func (f *Fonts) Add(name string, data []byte) error {
	ft, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	f.fonts[name] = ft
	if f.fallback == "" {
		f.fallback = name
	}
	return nil
}

func (f *Fonts) Has(name string) bool {
	_, ok := f.fonts[name]
	return ok
}

// SetFallback ignores names that were never added.
func (f *Fonts) SetFallback(name string) {
	if f.Has(name) {
		f.fallback = name
	}
}

// Face returns a face for name at px pixels. Bold and italic prefer the
// "-bold", "-italic" and "-bolditalic" variants; synthetic reports that a
// requested bold variant is missing. Without any font it returns the fixed
// basicfont face.
func (f *Fonts) Face(name string, bold, italic bool, px float64) (face font.Face, synthetic bool) {
	if !f.Has(name) {
		name = f.fallback
	}
	if name == "" {
		return basicfont.Face7x13, bold
	}
	variant := name
	switch {
	case bold && italic:
		variant += "-bolditalic"
	case bold:
		variant += "-bold"
	case italic:
		variant += "-italic"
	}
	if f.Has(variant) {
		name, synthetic = variant, false
	} else {
		synthetic = bold
		if italic && bold && f.Has(name+"-bold") {
			name, synthetic = name+"-bold", false
		}
	}
	// Quarter pixels keep the cache small across scale changes.
	px = math.Max(1, math.Round(px*4)/4)
	key := faceKey{name, px}
	if face, ok := f.faces[key]; ok {
		return face, synthetic
	}
	face, err := opentype.NewFace(f.fonts[name], &opentype.FaceOptions{
		Size: px, DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13, bold
	}
	f.faces[key] = face
	return face, synthetic
}

// Close releases every cached face.
func (f *Fonts) Close() {
	for k, face := range f.faces {
		_ = face.Close()
		delete(f.faces, k)
	}
}
