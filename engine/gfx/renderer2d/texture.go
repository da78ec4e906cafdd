package renderer2d

import (
	"image"

	"github.com/hubastard/groveui/engine/assets"
	"github.com/hubastard/groveui/engine/core"
)

// gpuTexture is implemented by every ui.Texture the canvas can sample.
type gpuTexture interface {
	GPU() core.Texture
}

// Texture is a standalone GPU texture owned by one user, such as a text
// printer. It implements ui.Texture.
type Texture struct {
	r    core.Renderer
	gpu  core.Texture
	w, h int
	wrap string
}

// NewTexture uploads img; a nil or empty image yields an incomplete texture.
func NewTexture(r core.Renderer, img image.Image) (*Texture, error) {
	t := &Texture{r: r, wrap: "clamp"}
	if err := t.Update(img); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the pixels, reallocating when the size changes.
func (t *Texture) Update(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		t.Destroy()
		return nil
	}
	w, h, pix := assets.RGBAPixels(img)
	if t.gpu != nil && w == t.w && h == t.h {
		return t.r.UpdateTexture(t.gpu, pix)
	}
	t.Destroy()
	gpu, err := t.r.CreateTexture(core.TextureDesc{
		Width: w, Height: h,
		Format:    core.TextureRGBA8,
		Pixels:    pix,
		MinFilter: "linear", MagFilter: "linear",
		WrapU: t.wrap, WrapV: t.wrap,
	})
	if err != nil {
		return err
	}
	t.gpu, t.w, t.h = gpu, w, h
	return nil
}

func (t *Texture) GPU() core.Texture { return t.gpu }
func (t *Texture) Width() int        { return t.w }
func (t *Texture) Height() int       { return t.h }
func (t *Texture) Complete() bool    { return t.gpu != nil }

func (t *Texture) Destroy() {
	if t.gpu == nil {
		return
	}
	t.r.DestroyTexture(t.gpu)
	t.gpu, t.w, t.h = nil, 0, 0
}

// sharedTexture is a cached image texture referenced by guid.
type sharedTexture struct {
	guid string
	tex  *Texture
	refs int
}

// textureRef is one element's handle on a shared texture.
type textureRef struct {
	c        *Canvas
	s        *sharedTexture
	released bool
}

func (t *textureRef) GPU() core.Texture { return t.s.tex.GPU() }
func (t *textureRef) Width() int        { return t.s.tex.Width() }
func (t *textureRef) Height() int       { return t.s.tex.Height() }
func (t *textureRef) Complete() bool    { return !t.released && t.s.tex.Complete() }

func (t *textureRef) Destroy() {
	if t.released {
		return
	}
	t.released = true
	t.c.release(t.s)
}
