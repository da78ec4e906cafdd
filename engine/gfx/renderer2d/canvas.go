package renderer2d

import (
	"image"
	"log/slog"
	"math"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/geom"
	"github.com/hubastard/groveui/engine/scene"
	"github.com/hubastard/groveui/engine/ui"
)

// ImageSource decodes the image a texture guid names.
type ImageSource func(guid string) (image.Image, error)

// Canvas implements ui.Renderer on a Renderer2D batch. Canvas pixels map
// one to one onto the window framebuffer.
type Canvas struct {
	r      core.Renderer
	batch  *Renderer2D
	cam    *scene.Camera2D
	images ImageSource
	cache  map[string]*sharedTexture
	log    *slog.Logger

	w, h   int
	matrix geom.Matrix
	alpha  float64

	mask      core.Framebuffer
	maskBusy  bool
	maskBound bool

	clip     [4]int
	clipping bool
	stencil  bool
}

var _ ui.Renderer = (*Canvas)(nil)

func NewCanvas(r core.Renderer, batch *Renderer2D, images ImageSource, w, h int) *Canvas {
	c := &Canvas{
		r:      r,
		batch:  batch,
		cam:    scene.NewCamera2D(w, h),
		images: images,
		cache:  map[string]*sharedTexture{},
		log:    core.NewLogger("canvas"),
		matrix: geom.Identity(),
		alpha:  1,
	}
	c.Resize(w, h)
	return c
}

func (c *Canvas) Size() (int, int)        { return c.w, c.h }
func (c *Canvas) Camera() *scene.Camera2D { return c.cam }
func (c *Canvas) Stats() Statistics       { return c.batch.Stats() }

// Resize follows the window framebuffer. The mask buffer is rebuilt on its
// next use.
func (c *Canvas) Resize(w, h int) {
	if w == c.w && h == c.h {
		return
	}
	c.w, c.h = w, h
	c.cam.SetViewportPixels(w, h)
	c.batch.SetUniform("uScreen", [2]float32{float32(w), float32(h)})
	if c.mask != nil && !c.maskBusy {
		c.r.DestroyFramebuffer(c.mask)
		c.mask = nil
	}
}

// Begin starts a frame with identity transform and full opacity.
func (c *Canvas) Begin() {
	c.batch.BeginScene(c.cam.VP())
	c.matrix = geom.Identity()
	c.alpha = 1
	c.batch.SetBlend(core.BlendNormal)
}

// End flushes the frame and drops any clip or mask binding left open.
func (c *Canvas) End() {
	if c.clipping {
		c.EndClip()
	}
	if c.maskBound {
		c.EndMask()
	}
	c.batch.EndScene()
}

// LoadTexture shares one GPU texture between every user of a guid.
func (c *Canvas) LoadTexture(guid string) ui.Texture {
	if s, ok := c.cache[guid]; ok {
		s.refs++
		return &textureRef{c: c, s: s}
	}
	if c.images == nil {
		return nil
	}
	img, err := c.images(guid)
	if err != nil {
		c.log.Warn("texture load failed", "guid", guid, "err", err)
		return nil
	}
	tex := &Texture{r: c.r, wrap: "repeat"}
	if err := tex.Update(img); err != nil {
		c.log.Error("texture upload failed", "guid", guid, "err", err)
		return nil
	}
	s := &sharedTexture{guid: guid, tex: tex, refs: 1}
	c.cache[guid] = s
	return &textureRef{c: c, s: s}
}

func (c *Canvas) release(s *sharedTexture) {
	s.refs--
	if s.refs > 0 {
		return
	}
	c.batch.Flush()
	s.tex.Destroy()
	delete(c.cache, s.guid)
}

// TextureCount reports the shared textures alive.
func (c *Canvas) TextureCount() int { return len(c.cache) }

func (c *Canvas) SetMatrix(m geom.Matrix) { c.matrix = m }
func (c *Canvas) SetAlpha(a float64)      { c.alpha = geom.Clamp(a, 0, 1) }
func (c *Canvas) SetBlend(b ui.Blend)     { c.batch.SetBlend(blendMode(b)) }

func blendMode(b ui.Blend) core.BlendMode {
	switch b {
	case ui.BlendAdditive:
		return core.BlendAdditive
	case ui.BlendSubtract:
		return core.BlendSubtract
	case ui.BlendMax:
		return core.BlendMax
	}
	return core.BlendNormal
}

func gpu(t ui.Texture) core.Texture {
	g, ok := t.(gpuTexture)
	if !ok || t == nil || !t.Complete() {
		return nil
	}
	return g.GPU()
}

func (c *Canvas) fade(col colors.Color) colors.Color {
	col[3] *= float32(c.alpha)
	return col
}

// quad submits the rect (l, t)-(r, b) under the current matrix.
func (c *Canvas) quad(tex core.Texture, l, t, r, b float64, uv SubTexture2D, col, tint colors.Color, mode float32) {
	corner := func(x, y float64, u, v float32) Vertex {
		px, py := c.matrix.Apply(x, y)
		return Vertex{X: float32(px), Y: float32(py), Color: col, Tint: tint, U: u, V: v, Mode: mode}
	}
	c.batch.DrawQuad(tex, [4]Vertex{
		corner(l, t, uv.U0, uv.V0),
		corner(r, t, uv.U1, uv.V0),
		corner(l, b, uv.U0, uv.V1),
		corner(r, b, uv.U1, uv.V1),
	})
}

func (c *Canvas) DrawImage(tex ui.Texture, clip [4]float64, dx, dy, dw, dh float64, tint [4]float64) {
	g := gpu(tex)
	if g == nil || dw == 0 || dh == 0 {
		return
	}
	c.quad(g, dx, dy, dx+dw, dy+dh, FromClip(g, clip), c.fade(colors.White), colors.FromTint(tint), ModeTint)
}

func (c *Canvas) DrawImageColor(tex ui.Texture, clip [4]float64, dx, dy, dw, dh float64, color colors.Color) {
	g := gpu(tex)
	if g == nil || dw == 0 || dh == 0 {
		return
	}
	c.quad(g, dx, dy, dx+dw, dy+dh, FromClip(g, clip), c.fade(color), colors.Transparent, ModeFixed)
}

// DrawSliceImage stretches the center and edges of clip while keeping
// border pixels at their size, shrinking them when the destination is
// smaller than two borders.
func (c *Canvas) DrawSliceImage(tex ui.Texture, clip [4]float64, border float64, dx, dy, dw, dh float64, tint [4]float64) {
	g := gpu(tex)
	if g == nil || dw <= 0 || dh <= 0 {
		return
	}
	b := math.Max(0, math.Min(border, math.Min(clip[2], clip[3])/2))
	bx := math.Min(b, dw/2)
	by := math.Min(b, dh/2)
	sx := [4]float64{clip[0], clip[0] + b, clip[0] + clip[2] - b, clip[0] + clip[2]}
	sy := [4]float64{clip[1], clip[1] + b, clip[1] + clip[3] - b, clip[1] + clip[3]}
	px := [4]float64{dx, dx + bx, dx + dw - bx, dx + dw}
	py := [4]float64{dy, dy + by, dy + dh - by, dy + dh}
	col, tc := c.fade(colors.White), colors.FromTint(tint)
	for row := 0; row < 3; row++ {
		for cell := 0; cell < 3; cell++ {
			if px[cell+1] <= px[cell] || py[row+1] <= py[row] {
				continue
			}
			uv := FromPixels(g, sx[cell], sy[row], sx[cell+1]-sx[cell], sy[row+1]-sy[row])
			c.quad(g, px[cell], py[row], px[cell+1], py[row+1], uv, col, tc, ModeTint)
		}
	}
}

func (c *Canvas) DrawFan(tex ui.Texture, m geom.Matrix, vertices []float32, mode ui.ColorMode, color colors.Color) {
	g := gpu(tex)
	if g == nil || len(vertices) < 12 {
		return
	}
	col, vm := c.fade(colors.White), ModeTint
	if mode == ui.ColorModeFixed {
		col, vm = c.fade(color), ModeFixed
	}
	fan := make([]Vertex, 0, len(vertices)/4)
	for i := 0; i+3 < len(vertices); i += 4 {
		x, y := m.Apply(float64(vertices[i]), float64(vertices[i+1]))
		fan = append(fan, Vertex{X: float32(x), Y: float32(y), Color: col, U: vertices[i+2], V: vertices[i+3], Mode: vm})
	}
	c.batch.DrawFan(g, fan)
}

func (c *Canvas) FillRect(x, y, w, h float64, color colors.Color) {
	c.quad(c.batch.White(), x, y, x+w, y+h, SubTexture2D{U1: 1, V1: 1}, c.fade(color), colors.Transparent, ModeTint)
}

func (c *Canvas) BindMask() bool {
	if c.maskBusy {
		return false
	}
	if c.mask == nil {
		fb, err := c.r.CreateFramebuffer(c.w, c.h)
		if err != nil {
			c.log.Error("mask buffer", "err", err)
			return false
		}
		c.mask = fb
	}
	c.batch.Flush()
	c.r.BindFramebuffer(c.mask)
	c.maskBusy, c.maskBound = true, true
	return true
}

func (c *Canvas) EndMask() {
	if !c.maskBound {
		return
	}
	c.batch.Flush()
	c.r.BindFramebuffer(nil)
	c.maskBound = false
}

func (c *Canvas) SetMasking(on bool) {
	if on && c.mask != nil {
		c.batch.SetSampler("uMask", c.mask.Texture())
		c.batch.SetUniform("uMasking", true)
		return
	}
	c.batch.SetSampler("uMask", nil)
	c.batch.SetUniform("uMasking", false)
}

func (c *Canvas) ReleaseMask(x, y, w, h int) {
	if c.mask == nil {
		c.maskBusy = false
		return
	}
	c.batch.Flush()
	c.r.BindFramebuffer(c.mask)
	c.r.SetScissor(true, x, y, w, h)
	c.r.Clear(0, 0, 0, 0)
	c.r.BindFramebuffer(nil)
	c.restoreScissor()
	c.maskBusy, c.maskBound = false, false
}

func (c *Canvas) MaskSize() (int, int) { return c.w, c.h }

// BeginClip scissors to the transformed rect when the matrix keeps it axis
// aligned. Rotated or skewed rects are filled into the stencil instead.
func (c *Canvas) BeginClip(x, y, w, h float64) bool {
	if c.clipping {
		return false
	}
	c.batch.Flush()
	c.clipping = true
	if c.matrix[1] != 0 || c.matrix[3] != 0 {
		c.stencil = true
		c.clip = [4]int{}
		c.restoreScissor()
		c.r.SetStencil(core.StencilWrite)
		c.quad(c.batch.White(), x, y, x+w, y+h, SubTexture2D{U1: 1, V1: 1}, colors.White, colors.Transparent, ModeTint)
		c.batch.Flush()
		c.r.SetStencil(core.StencilTest)
		return true
	}
	l, t := c.matrix.Apply(x, y)
	r, b := c.matrix.Apply(x+w, y+h)
	l, r = math.Min(l, r), math.Max(l, r)
	t, b = math.Min(t, b), math.Max(t, b)
	il := int(geom.Clamp(math.Floor(l), 0, float64(c.w)))
	it := int(geom.Clamp(math.Floor(t), 0, float64(c.h)))
	ir := int(geom.Clamp(math.Ceil(r), 0, float64(c.w)))
	ib := int(geom.Clamp(math.Ceil(b), 0, float64(c.h)))
	c.clip = [4]int{il, it, max(ir-il, 0), max(ib-it, 0)}
	c.restoreScissor()
	return true
}

func (c *Canvas) EndClip() {
	if !c.clipping {
		return
	}
	c.batch.Flush()
	if c.stencil {
		c.r.SetStencil(core.StencilOff)
		c.stencil = false
	}
	c.clipping = false
	c.restoreScissor()
}

func (c *Canvas) restoreScissor() {
	if c.clipping && !c.stencil {
		c.r.SetScissor(true, c.clip[0], c.clip[1], c.clip[2], c.clip[3])
		return
	}
	c.r.SetScissor(false, 0, 0, 0, 0)
}

// Destroy frees the mask buffer and every cached texture.
func (c *Canvas) Destroy() {
	for guid, s := range c.cache {
		s.tex.Destroy()
		delete(c.cache, guid)
	}
	if c.mask != nil {
		c.r.DestroyFramebuffer(c.mask)
		c.mask = nil
	}
}
