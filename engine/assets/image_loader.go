package assets

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// imageExts are tried in order when a texture guid has no extension.
var imageExts = []string{".png", ".webp", ".bmp", ".jpg"}

// ErrNoImage means no file in the texture directory matches a guid.
var ErrNoImage = errors.New("assets: image not found")

// Image decodes the texture named by guid.
func (s *Store) Image(guid string) (image.Image, error) {
	if guid == "" || !fs.ValidPath(filepath.ToSlash(guid)) {
		return nil, fmt.Errorf("%w: %q", ErrNoImage, guid)
	}
	candidates := []string{guid}
	if filepath.Ext(guid) == "" {
		candidates = candidates[:0]
		for _, ext := range imageExts {
			candidates = append(candidates, guid+ext)
		}
	}
	for _, name := range candidates {
		path := filepath.Join(s.paths.Textures, name)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open %q: %w", path, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %q: %w", path, err)
		}
		s.log.Debug("image loaded", "guid", guid, "path", path)
		return img, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoImage, guid)
}

// RGBAPixels returns width, height, and tightly packed RGBA8 pixels
// (row-major, top-left origin).
func RGBAPixels(img image.Image) (w, h int, rgba []byte) {
	m := imageToRGBA(img)
	w, h = m.Bounds().Dx(), m.Bounds().Dy()
	if m.Stride == w*4 && len(m.Pix) == w*h*4 {
		return w, h, m.Pix
	}
	// Repack in tight rows (stride == 4*w)
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], m.Pix[y*m.Stride:y*m.Stride+w*4])
	}
	return w, h, out
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
