package renderer2d

import "github.com/hubastard/groveui/engine/core"

// SubTexture2D describes a UV sub-rect of a full texture.
type SubTexture2D struct {
	Texture core.Texture
	U0, V0  float32 // top-left
	U1, V1  float32 // bottom-right
}

// FromPixels builds a subtexture from pixel coordinates within tex. Rows
// are uploaded top first, so v grows downward.
func FromPixels(tex core.Texture, x, y, w, h float64) SubTexture2D {
	tw, th := float64(tex.Width()), float64(tex.Height())
	if tw <= 0 || th <= 0 {
		return SubTexture2D{Texture: tex}
	}
	return SubTexture2D{
		Texture: tex,
		U0:      float32(x / tw),
		V0:      float32(y / th),
		U1:      float32((x + w) / tw),
		V1:      float32((y + h) / th),
	}
}

// FromClip is FromPixels for an x, y, w, h clip rect.
func FromClip(tex core.Texture, clip [4]float64) SubTexture2D {
	return FromPixels(tex, clip[0], clip[1], clip[2], clip[3])
}
