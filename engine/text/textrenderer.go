package text

import (
	"github.com/hubastard/groveui/engine/geom"
	"github.com/hubastard/groveui/engine/ui"
)

// Label draws one string straight onto a ui.Renderer, outside the element
// tree. It reprints only when the string changes.
type Label struct {
	p *Printer
}

func NewLabel(f *Factory, style ui.TextStyle) *Label {
	p := f.New().(*Printer)
	p.SetStyle(style)
	return &Label{p: p}
}

// Set prints s unless it is already the label content.
func (l *Label) Set(s string) {
	if s != l.p.Content() {
		l.p.Reset()
		l.p.Print(s)
	}
}

// Draw places the top left of s at x, y in UI pixels.
func (l *Label) Draw(r ui.Renderer, x, y float64, s string) {
	l.Set(s)
	tex := l.p.Texture()
	if tex == nil {
		return
	}
	w, h := float64(tex.Width()), float64(tex.Height())
	scale := l.p.f.scale
	r.SetMatrix(geom.Identity())
	r.SetAlpha(1)
	r.SetBlend(ui.BlendNormal)
	r.DrawImage(tex, [4]float64{0, 0, w, h}, x, y, w/scale, h/scale, [4]float64{})
}

// Size is the printed extent in UI pixels.
func (l *Label) Size() (w, h float64) {
	tex := l.p.Texture()
	if tex == nil {
		return 0, 0
	}
	return float64(tex.Width()) / l.p.f.scale, float64(tex.Height()) / l.p.f.scale
}

func (l *Label) Destroy() { l.p.Destroy() }
