package ui

import (
	"math"

	"github.com/hubastard/groveui/engine/geom"
	"github.com/hubastard/groveui/engine/module"
)

// Image draws a texture in one of the stretch, tile, clip or slice modes.
// With the mask blend it draws its children through the mask buffer.
type Image struct {
	Base
	texture Texture
	image   string
	display string
	flip    string
	blend   Blend
	shiftX  float64
	shiftY  float64
	border  float64
	clip    [4]float64
	tint    [4]float64
}

func (m *Manager) newImage(n *Node) *Image {
	img := m.buildImage(n, false)
	img.Emit("create", img.signal(), false)
	return img
}

func (m *Manager) buildImage(n *Node, shadow bool) *Image {
	d := n.Image
	if d == nil {
		d = DefaultImageData()
	}
	img := &Image{}
	img.initKind(m, img, KindImage, n, shadow)
	img.SetImage(d.Image)
	img.display = d.Display
	img.flip = d.Flip
	img.shiftX = d.ShiftX
	img.shiftY = d.ShiftY
	img.border = d.Border
	img.clip = d.Clip
	img.tint = d.Tint
	img.SetBlend(d.Blend)
	return img
}

func (i *Image) Image() string { return i.image }

// SetImage swaps the texture. An empty guid clears it.
func (i *Image) SetImage(guid string) {
	if i.image == guid {
		return
	}
	i.image = guid
	if i.texture != nil {
		i.texture.Destroy()
		i.texture = nil
	}
	if guid != "" && i.m.svc.Renderer != nil {
		i.texture = i.m.svc.Renderer.LoadTexture(guid)
		if i.texture == nil {
			logger.Warn("image not found", "guid", guid, "element", i.name)
		}
	}
}

func (i *Image) Texture() Texture { return i.texture }

func (i *Image) Display() string { return i.display }

func (i *Image) SetDisplay(v string) {
	switch v {
	case "stretch", "tile", "clip", "slice":
		i.display = v
	}
}

func (i *Image) Flip() string { return i.flip }

func (i *Image) SetFlip(v string) {
	switch v {
	case "none", "horizontal", "vertical", "both":
		i.flip = v
	}
}

func (i *Image) Blend() Blend { return i.blend }

// SetBlend ignores unknown blend names.
func (i *Image) SetBlend(v string) {
	if b, ok := parseBlend(v); ok {
		i.blend = b
	}
}

func (i *Image) Shift() (x, y float64)     { return i.shiftX, i.shiftY }
func (i *Image) SetShift(x, y float64)     { i.shiftX, i.shiftY = x, y }
func (i *Image) Border() float64           { return i.border }
func (i *Image) SetBorder(v float64)       { i.border = v }
func (i *Image) Clip() [4]float64          { return i.clip }
func (i *Image) SetClip(c [4]float64)      { i.clip = c }
func (i *Image) Tint() [4]float64          { return i.tint }
func (i *Image) setTintValue(t [4]float64) { i.tint = t }
func (i *Image) SetImageClip(guid string, c [4]float64) {
	i.SetImage(guid)
	i.display = "clip"
	i.clip = c
}

// Tint channels to change. NaN leaves a channel untouched.
type TintProps struct {
	Red, Green, Blue, Gray float64
}

// SetTint moves the tint toward t over duration milliseconds. Color
// channels clamp to [-255, 255], gray to [0, 255].
func (i *Image) SetTint(t TintProps, easingID string, duration float64) {
	target := [4]float64{t.Red, t.Green, t.Blue, t.Gray}
	if duration > 0 {
		var elapsed float64
		start := i.tint
		ease := i.m.svc.Easing.Get(easingID)
		i.updaters.Set("tint", module.Func(func(dt float64) {
			elapsed += dt
			p := ease.Get(elapsed / duration)
			for c, v := range target {
				if isFinite(v) {
					lo := -255.0
					if c == 3 {
						lo = 0
					}
					i.tint[c] = geom.Clamp(start[c]*(1-p)+v*p, lo, 255)
				}
			}
			if elapsed >= duration {
				i.updaters.DeleteDelay("tint", i.m.svc.Deferred)
			}
		}))
		return
	}
	for c, v := range target {
		if isFinite(v) {
			i.tint[c] = v
		}
	}
	if i.updaters.Has("tint") {
		i.updaters.DeleteDelay("tint", i.m.svc.Deferred)
	}
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (i *Image) Draw(r Renderer) {
	if !i.visible {
		return
	}
	ownsMask := false
	if tex := i.texture; tex != nil && tex.Complete() {
		ownsMask = i.drawTexture(r, tex)
	}
	if !ownsMask {
		i.drawChildren(r)
		return
	}
	r.EndMask()
	r.SetMasking(true)
	i.drawChildren(r)
	r.SetMasking(false)
	rect := i.BoundingRect()
	mw, mh := r.MaskSize()
	sl := max(int(math.Floor(rect[0]-1)), 0)
	st := max(int(math.Floor(rect[1]-1)), 0)
	sr := min(int(math.Ceil(rect[2]+1)), mw)
	sb := min(int(math.Ceil(rect[3]+1)), mh)
	r.ReleaseMask(sl, st, sr-sl, sb-st)
}

// drawTexture reports whether the image bound the mask buffer.
func (i *Image) drawTexture(r Renderer, tex Texture) bool {
	dx, dy := i.frame.X, i.frame.Y
	dw, dh := i.frame.Width, i.frame.Height
	masked := false
	if i.blend == BlendMask {
		if !r.BindMask() {
			return false
		}
		masked = true
		r.SetAlpha(1)
		r.SetBlend(BlendNormal)
	} else {
		r.SetAlpha(i.frame.Opacity)
		r.SetBlend(i.blend)
	}
	r.SetMatrix(i.frame.Matrix)
	var clip [4]float64
	switch i.display {
	case "tile":
		clip = [4]float64{i.shiftX, i.shiftY, dw, dh}
	case "clip":
		clip = i.clip
	case "slice":
		r.DrawSliceImage(tex, i.clip, i.border, dx, dy, dw, dh, i.tint)
		return masked
	default:
		clip = [4]float64{i.shiftX, i.shiftY, float64(tex.Width()), float64(tex.Height())}
	}
	switch i.flip {
	case "horizontal":
		dx, dw = dx+dw, -dw
	case "vertical":
		dy, dh = dy+dh, -dh
	case "both":
		dx, dw = dx+dw, -dw
		dy, dh = dy+dh, -dh
	}
	r.DrawImage(tex, clip, dx, dy, dw, dh, i.tint)
	return masked
}

func (i *Image) Destroy() {
	if i.destroyed {
		return
	}
	if i.texture != nil {
		i.texture.Destroy()
		i.texture = nil
	}
	i.Base.Destroy()
}
