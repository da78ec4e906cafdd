package ui

import (
	"math"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/module"
)

type DialogState int

const (
	DialogComplete DialogState = iota
	DialogUpdating
	DialogPaused
	DialogWaiting
)

func (s DialogState) String() string {
	switch s {
	case DialogUpdating:
		return "updating"
	case DialogPaused:
		return "paused"
	case DialogWaiting:
		return "waiting"
	}
	return "complete"
}

// DialogBox reveals its content a few characters per interval, one page at
// a time.
type DialogBox struct {
	Base
	state    DialogState
	printer  Printer
	style    TextStyle
	blend    Blend
	elapsed  float64
	interval float64
	changed  bool
	color    string
	typeface string

	rawContent string
	content    string

	printEndX, printEndY float64
	outer                [4]float64
	inline               map[string]Texture
}

func (m *Manager) newDialogBox(n *Node) *DialogBox {
	d := n.DialogBox
	if d == nil {
		d = DefaultDialogBoxData()
	}
	b := &DialogBox{inline: map[string]Texture{}}
	b.init(m, b, KindDialogBox, n)
	b.style = TextStyle{
		Direction: "horizontal-tb",
		HAlign:    "left",
		VAlign:    "top",
		WordWrap:  true,
		Truncate:  true,
	}
	b.interval = d.Interval
	b.SetContent(d.Content)
	b.SetSize(d.Size)
	b.SetLineSpacing(d.LineSpacing)
	b.SetLetterSpacing(d.LetterSpacing)
	b.SetColor(d.Color)
	b.SetFont(d.Font)
	b.SetTypeface(d.Typeface)
	b.SetEffect(d.Effect)
	if bl, ok := parseBlend(d.Blend); ok && bl != BlendMask {
		b.blend = bl
	}
	b.updaters.Set("print", module.Func(b.update))
	b.Emit("create", b.signal(), false)
	return b
}

func (b *DialogBox) State() DialogState { return b.state }

func (b *DialogBox) Interval() float64 { return b.interval }

// SetInterval sets the milliseconds per character. Zero prints a page at
// once.
func (b *DialogBox) SetInterval(v float64) {
	if v >= 0 {
		b.interval = v
	}
}

func (b *DialogBox) Content() string { return b.content }

func (b *DialogBox) SetContent(value string) {
	b.rawContent = value
	b.content = value
	if b.m.svc.Local != nil {
		b.content = b.m.svc.Local.Replace(value)
	}
	b.changed = true
	b.state = DialogUpdating
}

func (b *DialogBox) UpdateTextContent() { b.SetContent(b.rawContent) }

// restyle pushes the style and restarts printing.
func (b *DialogBox) restyle() {
	if b.printer != nil {
		b.printer.SetStyle(b.style)
		b.reload()
	}
}

func (b *DialogBox) SetSize(v float64) {
	if b.style.Size != v && v > 0 {
		b.style.Size = v
		b.restyle()
	}
}

func (b *DialogBox) SetLineSpacing(v float64) {
	if b.style.LineSpacing != v {
		b.style.LineSpacing = v
		b.restyle()
	}
}

func (b *DialogBox) SetLetterSpacing(v float64) {
	if b.style.LetterSpacing != v {
		b.style.LetterSpacing = v
		b.restyle()
	}
}

func (b *DialogBox) SetColor(v string) {
	if b.color == v {
		return
	}
	c, err := colors.Parse(v)
	if err != nil {
		return
	}
	b.color = v
	b.style.Color = c
	b.restyle()
}

func (b *DialogBox) SetFont(v string) {
	b.style.Font = v
	b.restyle()
}

func (b *DialogBox) SetTypeface(v string) {
	if b.typeface == v {
		return
	}
	bold, italic, ok := parseTypeface(v)
	if !ok {
		return
	}
	b.typeface = v
	b.style.Bold, b.style.Italic = bold, italic
	b.restyle()
}

func (b *DialogBox) SetEffect(e TextEffect) {
	b.style.Effect = e
	b.restyle()
}

// PrintEnd is where the last printed glyph ended, in UI pixels.
func (b *DialogBox) PrintEnd() (x, y float64) { return b.printEndX, b.printEndY }

func (b *DialogBox) update(dt float64) {
	if !b.visible {
		return
	}
	p := b.printer
	if p == nil {
		if b.m.svc.Printers == nil {
			return
		}
		p = b.m.svc.Printers.New()
		p.SetStyle(b.style)
		b.printer = p
	}
	if pw, ph := p.PrintArea(); pw != b.frame.Width || ph != b.frame.Height {
		b.updatePrinter()
	}
	if b.changed && b.state != DialogPaused {
		b.changed = false
		b.reload()
	}
	if b.state == DialogUpdating {
		b.print(dt)
	}
}

func (b *DialogBox) updatePrinter() {
	p := b.printer
	if p == nil {
		return
	}
	if p.Content() != "" {
		p.Reset()
	}
	scale := b.m.svc.Printers.Scale()
	p.SetPadding(20*scale, 50*scale, 110*scale, 50*scale)
	p.SetPrintArea(b.frame.Width, b.frame.Height)
	b.calculateTextPosition()
	b.changed = true
}

func (b *DialogBox) reload() {
	p := b.printer
	if p == nil {
		return
	}
	if p.Content() != "" {
		p.Reset()
	}
	p.Begin(b.content)
	b.elapsed = 0
	b.state = DialogUpdating
}

func (b *DialogBox) print(dt float64) {
	count := -1
	if b.interval != 0 {
		b.elapsed += dt
		n := math.Floor(b.elapsed / b.interval)
		if n == 0 {
			return
		}
		b.elapsed -= b.interval * n
		count = int(n)
	}
	_, status := b.printer.Advance(count)
	switch status {
	case PrintWaiting:
		b.state = DialogWaiting
	case PrintDone:
		b.state = DialogComplete
	}
	b.printEndX, b.printEndY = b.printer.EndPosition()
}

func (b *DialogBox) Pause() {
	if b.state == DialogUpdating {
		b.state = DialogPaused
	}
}

func (b *DialogBox) Continue() {
	if b.state == DialogPaused {
		b.state = DialogUpdating
	}
}

// PrintImmediately reveals the rest of the current page in one step.
func (b *DialogBox) PrintImmediately() {
	if b.state == DialogUpdating {
		interval := b.interval
		b.interval = 0
		b.update(0)
		b.interval = interval
	}
}

// PrintNextPage clears the page and resumes after a wait.
func (b *DialogBox) PrintNextPage() {
	if b.printer != nil && b.state != DialogComplete {
		b.state = DialogUpdating
		b.printer.ClearPage()
	}
}

func (b *DialogBox) calculateTextPosition() {
	p := b.printer
	if p == nil || p.Texture() == nil {
		return
	}
	tex := p.Texture()
	scale := b.m.svc.Printers.Scale()
	l, t, _, _ := p.Padding()
	b.outer = [4]float64{
		b.frame.X - l/scale,
		b.frame.Y - t/scale,
		float64(tex.Width()) / scale,
		float64(tex.Height()) / scale,
	}
}

func (b *DialogBox) Draw(r Renderer) {
	if !b.visible {
		return
	}
	if b.content != "" && b.printer != nil {
		if tex := b.printer.Texture(); tex != nil {
			r.SetAlpha(b.frame.Opacity)
			r.SetBlend(b.blend)
			r.SetMatrix(b.frame.Matrix)
			clip := [4]float64{0, 0, float64(tex.Width()), float64(tex.Height())}
			r.DrawImage(tex, clip, b.outer[0], b.outer[1], b.outer[2], b.outer[3], [4]float64{})
			for _, img := range b.printer.Images() {
				it := b.inlineTexture(img.Image)
				if it == nil || !it.Complete() {
					continue
				}
				r.DrawImage(it, img.Clip, b.frame.X+img.StartX, b.frame.Y+img.StartY, img.Width, img.Height, [4]float64{})
			}
		}
	}
	b.drawChildren(r)
}

func (b *DialogBox) inlineTexture(guid string) Texture {
	if tex, ok := b.inline[guid]; ok {
		return tex
	}
	var tex Texture
	if b.m.svc.Renderer != nil {
		tex = b.m.svc.Renderer.LoadTexture(guid)
	}
	b.inline[guid] = tex
	return tex
}

func (b *DialogBox) Resize() {
	if b.beginResize() {
		b.calculateTextPosition()
		b.resizeChildren()
	}
}

func (b *DialogBox) Destroy() {
	if b.destroyed {
		return
	}
	if b.printer != nil {
		b.printer.Destroy()
		b.printer = nil
	}
	for _, tex := range b.inline {
		if tex != nil {
			tex.Destroy()
		}
	}
	b.Base.Destroy()
}
