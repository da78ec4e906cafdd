package text

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"github.com/hubastard/groveui/engine/ui"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Printer implements ui.Printer. Layout and the texture are in scaled
// pixels; sizes reported through the ui.Printer methods documented as UI
// pixels are divided by the factory scale.
type Printer struct {
	f       *Factory
	style   ui.TextStyle
	content string

	areaW, areaH float64
	pad          [4]float64
	fixedPad     bool

	tex       *renderer2d.Texture
	img       *image.RGBA
	lay       *layout
	face      font.Face
	synthBold bool
	images    []ui.InlineImage

	paged      bool
	next       int
	pageLine   int
	endX, endY float64
}

var _ ui.Printer = (*Printer)(nil)

func (p *Printer) SetStyle(s ui.TextStyle) {
	if s == p.style {
		return
	}
	p.style = s
	p.Reset()
}

func (p *Printer) Content() string               { return p.content }
func (p *Printer) PrintArea() (float64, float64) { return p.areaW, p.areaH }
func (p *Printer) Images() []ui.InlineImage      { return p.images }

func (p *Printer) SetPrintArea(w, h float64) {
	p.areaW, p.areaH = w, h
	if p.fixedPad {
		p.page()
	}
}

func (p *Printer) SetPadding(l, t, r, b float64) {
	p.pad = [4]float64{l, t, r, b}
	p.fixedPad = true
}

func (p *Printer) Padding() (l, t, r, b float64) {
	if !p.fixedPad {
		p.pad = p.effectPadding()
	}
	return p.pad[0], p.pad[1], p.pad[2], p.pad[3]
}

func (p *Printer) effectPadding() [4]float64 {
	s := p.f.scale
	var pad [4]float64
	e := p.style.Effect
	switch e.Type {
	case "shadow":
		pad = [4]float64{
			max(-e.ShadowOffsetX, 0) * s, max(-e.ShadowOffsetY, 0) * s,
			max(e.ShadowOffsetX, 0) * s, max(e.ShadowOffsetY, 0) * s,
		}
	case "stroke", "outline":
		w := e.StrokeWidth * s
		pad = [4]float64{w, w, w, w}
	}
	if p.style.Bold {
		pad[2]++
	}
	for i := range pad {
		pad[i] = math.Ceil(pad[i])
	}
	return pad
}

func (p *Printer) Texture() ui.Texture {
	if p.tex == nil || !p.tex.Complete() {
		return nil
	}
	return p.tex
}

func (p *Printer) AlignmentFactor() (float64, float64) {
	return alignFactor(p.style.HAlign, "left", "center", "right"), alignFactor(p.style.VAlign, "top", "middle", "bottom")
}

func alignFactor(v, start, center, end string) float64 {
	switch v {
	case center:
		return 0.5
	case end:
		return 1
	}
	return 0
}

func (p *Printer) Horizontal() bool { return !strings.HasPrefix(p.style.Direction, "vertical") }

func (p *Printer) Reset() {
	p.content = ""
	p.lay = nil
	p.images = nil
	p.paged = false
	p.next, p.pageLine = 0, 0
	p.endX, p.endY = 0, 0
	if p.img != nil && !p.fixedPad {
		p.img = nil
		if p.tex != nil {
			p.tex.Destroy()
		}
	}
}

func (p *Printer) useFace() {
	size := p.style.Size
	if size <= 0 {
		size = p.f.DefaultSize
	}
	name := p.style.Font
	if name == "" {
		name = p.f.langFont
	}
	p.face, p.synthBold = p.f.fonts.Face(name, p.style.Bold, p.style.Italic, size*p.f.sizeScale*p.f.scale)
}

func (p *Printer) options(wrap, truncate bool) layoutOptions {
	s := p.f.scale
	hf, vf := p.AlignmentFactor()
	o := layoutOptions{
		flowLimit:     p.areaW * s,
		crossLimit:    p.areaH * s,
		wrap:          wrap,
		truncate:      truncate,
		breakWords:    p.f.breakWords,
		letterSpacing: p.style.LetterSpacing * s,
		lineSpacing:   p.style.LineSpacing * s,
		hf:            hf,
		vf:            vf,
		scale:         s,
	}
	if !p.Horizontal() {
		o.vertical = true
		o.rightToLeft = p.style.Direction == "vertical-rl"
		o.flowLimit, o.crossLimit = o.crossLimit, o.flowLimit
	}
	return o
}

func (p *Printer) relayout(content string, o layoutOptions) {
	p.useFace()
	toks := tokenize(content, nrgba(p.style.Color), p.style.PlainText)
	p.lay = layoutText(p.face, toks, o)
}

// Print lays out and rasterizes the whole content into a texture sized to
// fit it.
func (p *Printer) Print(content string) {
	p.content = content
	p.paged = false
	p.images = nil
	p.relayout(content, p.options(p.style.WordWrap, p.style.Truncate))
	if p.lay.empty() {
		if p.tex != nil {
			p.tex.Destroy()
		}
		p.img = nil
		return
	}
	l, t, r, b := p.Padding()
	w := int(math.Ceil(p.lay.w + l + r))
	h := int(math.Ceil(p.lay.h + t + b))
	p.img = image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	for _, it := range p.lay.items {
		p.drawItem(it, 0)
	}
	if n := len(p.lay.items); n > 0 {
		last := p.lay.items[n-1]
		p.endX, p.endY = p.endOf(last, 0)
	}
	p.upload()
}

// page allocates an empty texture covering the print area and padding.
func (p *Printer) page() {
	s := p.f.scale
	w := int(math.Ceil(p.areaW*s + p.pad[0] + p.pad[2]))
	h := int(math.Ceil(p.areaH*s + p.pad[1] + p.pad[3]))
	if w <= 0 || h <= 0 {
		return
	}
	if p.img == nil || p.img.Rect.Dx() != w || p.img.Rect.Dy() != h {
		p.img = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		clear(p.img.Pix)
	}
	p.upload()
}

func (p *Printer) Begin(content string) {
	p.content = content
	p.paged = true
	p.images = nil
	p.next, p.pageLine = 0, 0
	p.endX, p.endY = 0, 0
	// Pages flow past the print area instead of truncating.
	p.relayout(content, p.options(p.style.WordWrap, false))
	p.Padding()
	p.page()
}

func (p *Printer) pageOffset() float64 {
	if p.pageLine < len(p.lay.lines) {
		return p.lay.lines[p.pageLine].pos
	}
	return 0
}

func (p *Printer) Advance(n int) (int, ui.PrintStatus) {
	if !p.paged || p.lay == nil {
		return 0, ui.PrintDone
	}
	o := p.options(false, false)
	limit := o.crossLimit
	off := p.pageOffset()
	printed := 0
	status := ui.PrintMore
	for n < 0 || printed < n {
		if p.next >= len(p.lay.items) {
			status = ui.PrintDone
			break
		}
		it := p.lay.items[p.next]
		if limit > 0 && it.line != p.pageLine && p.lay.lines[it.line].pos-off+p.lay.lineH > limit {
			status = ui.PrintWaiting
			break
		}
		p.drawItem(it, off)
		p.endX, p.endY = p.endOf(it, off)
		p.next++
		printed++
	}
	if status == ui.PrintMore && p.next >= len(p.lay.items) {
		status = ui.PrintDone
	}
	if printed > 0 {
		p.upload()
	}
	return printed, status
}

func (p *Printer) ClearPage() {
	if p.img != nil {
		clear(p.img.Pix)
	}
	p.images = nil
	if p.lay != nil && p.next < len(p.lay.items) {
		p.pageLine = p.lay.items[p.next].line
	}
	p.upload()
}

func (p *Printer) EndPosition() (float64, float64) { return p.endX, p.endY }

func (p *Printer) endOf(it item, off float64) (float64, float64) {
	s := p.f.scale
	if !p.Horizontal() {
		return it.x / s, (it.y - off + it.adv) / s
	}
	return (it.x + it.adv) / s, (it.y - off) / s
}

// Measure returns the advance of s in UI pixels with tags taken literally.
func (p *Printer) Measure(s string) float64 {
	p.useFace()
	o := p.options(false, false)
	o.vertical = false
	var w float64
	for _, it := range measureTokens(p.face, tokenize(s, nrgba(p.style.Color), true), o, 0) {
		w += it.adv
	}
	return w / p.f.scale
}

func (p *Printer) drawItem(it item, off float64) {
	s := p.f.scale
	x := p.pad[0] + it.x
	y := p.pad[1] + it.y - off
	if it.image != "" {
		w, h := it.glyphW, it.cellH
		p.images = append(p.images, ui.InlineImage{
			Image:  it.image,
			Clip:   [4]float64{0, 0, nonZero(it.imgW, w/s), nonZero(it.imgH, h/s)},
			StartX: it.x / s,
			StartY: (it.y - off) / s,
			Width:  w / s,
			Height: h / s,
		})
		return
	}
	if p.img == nil || it.r == ' ' || it.r == '\n' {
		return
	}
	if !p.Horizontal() {
		x += (p.lay.lineH - it.glyphW) / 2
	}
	dot := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6((y + p.lay.ascent) * 64)}
	e := p.style.Effect
	switch e.Type {
	case "shadow":
		ec := nrgba(e.ParsedColor())
		p.glyph(shift(dot, e.ShadowOffsetX*s, e.ShadowOffsetY*s), it.r, ec)
	case "stroke", "outline":
		ec := nrgba(e.ParsedColor())
		w := e.StrokeWidth * s
		for k := 0; k < 8; k++ {
			a := float64(k) * math.Pi / 4
			p.glyph(shift(dot, w*math.Cos(a), w*math.Sin(a)), it.r, ec)
		}
	}
	p.glyph(dot, it.r, it.color)
	if p.synthBold {
		p.glyph(shift(dot, 1, 0), it.r, it.color)
	}
}

func nonZero(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func shift(p fixed.Point26_6, dx, dy float64) fixed.Point26_6 {
	return fixed.Point26_6{X: p.X + fixed.Int26_6(dx*64), Y: p.Y + fixed.Int26_6(dy*64)}
}

func (p *Printer) glyph(dot fixed.Point26_6, r rune, c color.Color) {
	dr, mask, maskp, _, ok := p.face.Glyph(dot, r)
	if !ok {
		return
	}
	draw.DrawMask(p.img, dr, image.NewUniform(c), image.Point{}, mask, maskp, draw.Over)
}

func (p *Printer) upload() {
	if p.tex == nil {
		p.tex, _ = renderer2d.NewTexture(p.f.r, nil)
	}
	if p.img == nil {
		p.tex.Destroy()
		return
	}
	if err := p.tex.Update(p.img); err != nil {
		p.f.log.Error("text upload failed", "err", err)
	}
}

func (p *Printer) Destroy() {
	if p.tex != nil {
		p.tex.Destroy()
		p.tex = nil
	}
	p.img = nil
	delete(p.f.printers, p)
}
