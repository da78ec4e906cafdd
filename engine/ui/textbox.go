package ui

import (
	"math"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/geom"
	"github.com/hubastard/groveui/engine/module"
)

// TextBox is an editable single-line text or number field.
type TextBox struct {
	Base
	input    lineInput
	focusing bool
	edited   bool
	printer  Printer

	typ      string
	align    string
	min      float64
	max      float64
	decimals int
	padding  float64
	size     float64
	font     string

	color      colors.Color
	selColor   colors.Color
	selBgColor colors.Color

	selectionStart int
	selectionEnd   int
	selectionLeft  float64
	selectionRight float64
	cursorVisible  bool
	cursorElapsed  float64

	textX, textY   float64
	textWidth      float64
	textShiftY     float64
	innerW, innerH float64
	selY, selH     float64
}

func (m *Manager) newTextBox(n *Node) *TextBox {
	d := n.TextBox
	if d == nil {
		d = DefaultTextBoxData()
	}
	t := &TextBox{selectionStart: -1, selectionEnd: -1}
	t.init(m, t, KindTextBox, n)
	t.input.maxLength = d.MaxLength
	switch d.Type {
	case "number":
		t.input.setValue(formatNumber(d.Number))
	default:
		t.input.setValue(d.Text)
	}
	t.align = d.Align
	t.min = d.Min
	t.max = d.Max
	t.decimals = d.Decimals
	t.padding = d.Padding
	t.typ = "text"
	t.SetType(d.Type)
	t.size = d.Size
	t.font = d.Font
	t.color = colors.White
	t.selColor = colors.White
	t.SetColor(d.Color)
	t.SetSelectionColor(d.SelectionColor)
	t.SetSelectionBgColor(d.SelectionBgColor)
	if m.svc.Printers != nil {
		t.printer = m.svc.Printers.New()
		t.printer.SetStyle(t.printStyle())
	}
	t.updaters.Set("cursor", module.Func(t.blink))
	t.Emit("create", t.signal(), false)
	return t
}

func (t *TextBox) printStyle() TextStyle {
	return TextStyle{
		Direction: "horizontal-tb",
		HAlign:    "left",
		VAlign:    "top",
		Size:      t.size,
		Color:     colors.White,
		Font:      t.font,
		Effect:    TextEffect{Type: "none"},
		PlainText: true,
	}
}

func (t *TextBox) Type() string { return t.typ }

func (t *TextBox) SetType(v string) {
	if v != "text" && v != "number" || t.typ == v {
		return
	}
	t.typ = v
	if v == "number" {
		t.input.setValue(formatNumber(t.readInputNumber(0)))
	}
}

// Text is empty for number boxes.
func (t *TextBox) Text() string {
	if t.typ == "text" {
		return t.input.String()
	}
	return ""
}

func (t *TextBox) SetText(v string) {
	if t.typ == "text" {
		t.input.setValue(v)
	}
}

// Number is zero for text boxes.
func (t *TextBox) Number() float64 {
	if t.typ == "number" {
		return t.readInputNumber(0)
	}
	return 0
}

func (t *TextBox) SetNumber(v float64) {
	if t.typ == "number" {
		t.input.setValue(formatNumber(v))
		t.input.setValue(formatNumber(t.readInputNumber(0)))
	}
}

func (t *TextBox) SetRange(min, max float64, decimals int) {
	t.min, t.max, t.decimals = min, max, decimals
}

func (t *TextBox) MaxLength() int { return t.input.maxLength }

func (t *TextBox) SetMaxLength(n int) { t.input.maxLength = n }

func (t *TextBox) Align() string { return t.align }

func (t *TextBox) SetAlign(v string) {
	switch v {
	case "left", "center", "right":
	default:
		return
	}
	if t.align != v {
		t.align = v
		if t.connected {
			t.calculateTextPosition()
		}
	}
}

func (t *TextBox) Padding() float64 { return t.padding }

func (t *TextBox) SetPadding(v float64) {
	if t.padding != v {
		t.padding = v
		if t.connected {
			t.calculateTextPosition()
		}
	}
}

func (t *TextBox) Size() float64 { return t.size }

func (t *TextBox) SetSize(v float64) {
	if t.size != v && v > 0 {
		t.size = v
		if t.printer != nil {
			t.printer.SetStyle(t.printStyle())
		}
	}
}

func (t *TextBox) Font() string { return t.font }

func (t *TextBox) SetFont(v string) {
	t.font = v
	if t.printer != nil {
		t.printer.SetStyle(t.printStyle())
	}
}

func (t *TextBox) SetColor(v string) {
	if c, err := colors.Parse(v); err == nil {
		t.color = c
	}
}

func (t *TextBox) SetSelectionColor(v string) {
	if c, err := colors.Parse(v); err == nil {
		t.selColor = c
	}
}

func (t *TextBox) SetSelectionBgColor(v string) {
	if c, err := colors.Parse(v); err == nil {
		t.selBgColor = c
	}
}

func (t *TextBox) Focusing() bool { return t.focusing }

// Focus routes keyboard input to the box.
func (t *TextBox) Focus() { t.m.setInputFocus(t) }

func (t *TextBox) Blur() {
	if t.m.inputFocus() == t {
		t.m.setInputFocus(nil)
	}
}

func (t *TextBox) focusEvent() {
	if !t.focusing {
		t.focusing = true
		t.edited = false
		t.cursorVisible = true
		t.cursorElapsed = 0
		t.Emit("focus", t.signal(), false)
	}
}

func (t *TextBox) blurEvent() {
	if t.focusing {
		t.changeEvent()
		t.focusing = false
		t.Emit("blur", t.signal(), false)
	}
}

// changeEvent commits an edited value.
func (t *TextBox) changeEvent() {
	if t.typ == "number" {
		if s := formatNumber(t.readInputNumber(0)); t.input.String() != s {
			t.input.setValue(s)
			t.edited = true
		}
	}
	if t.edited {
		t.edited = false
		t.Emit("change", t.signal(), false)
	}
}

func (t *TextBox) inputEvent(ev core.Event) {
	t.edited = true
	t.selectionStart = -1
	t.selectionEnd = -1
	t.input.scrollToCaret(t.measure, t.innerW)
	t.Emit("input", ev, false)
}

func (t *TextBox) fineTuneNumber(offset float64) {
	t.input.setValue(formatNumber(t.readInputNumber(offset)))
	t.inputEvent(t.signal())
}

func (t *TextBox) readInputNumber(offset float64) float64 {
	v, ok := parseFloatPrefix(t.input.String())
	v += offset
	if !ok || math.IsNaN(v) {
		v = 0
	}
	return geom.RoundTo(geom.Clamp(v, t.min, t.max), t.decimals)
}

func (t *TextBox) measure(s string) float64 {
	if t.printer == nil || s == "" {
		return 0
	}
	return t.printer.Measure(s)
}

// insertText types s at the caret. Number boxes reject non-numeric input.
func (t *TextBox) insertText(s string, ev core.Event) {
	if t.typ == "number" && !numberFilter.MatchString(s) {
		return
	}
	if t.input.insert(s) {
		t.inputEvent(ev)
	}
}

// handleKey edits the value and reports whether the key was consumed.
func (t *TextBox) handleKey(e core.EventKey) bool {
	if !e.Down {
		return true
	}
	shift := e.Mods&core.ModShift != 0
	ctrl := e.Mods&(core.ModCtrl|core.ModSuper) != 0
	in := &t.input
	switch e.Key {
	case core.KeyUp, core.KeyDown:
		if t.typ == "number" {
			if e.Key == core.KeyUp {
				t.fineTuneNumber(+1)
			} else {
				t.fineTuneNumber(-1)
			}
		}
	case core.KeyEscape:
		t.Blur()
	case core.KeyEnter, core.KeyNumpadEnter:
		t.changeEvent()
	case core.KeyBackspace:
		if in.deleteBackward() {
			t.inputEvent(e)
		}
	case core.KeyDelete:
		if in.deleteForward() {
			t.inputEvent(e)
		}
	case core.KeyLeft:
		in.moveBy(-1, shift)
	case core.KeyRight:
		in.moveBy(+1, shift)
	case core.KeyHome:
		in.moveTo(0, shift)
	case core.KeyEnd:
		in.moveTo(len(in.value), shift)
	case core.KeyA:
		if ctrl {
			in.selectAll()
		}
	case core.KeyC, core.KeyX:
		if ctrl && in.hasSelection() && t.m.svc.Clipboard != nil {
			if err := t.m.svc.Clipboard.WriteAll(in.selected()); err != nil {
				logger.Warn("clipboard write", "err", err)
				break
			}
			if e.Key == core.KeyX && in.deleteBackward() {
				t.inputEvent(e)
			}
		}
	case core.KeyV:
		if ctrl && t.m.svc.Clipboard != nil {
			s, err := t.m.svc.Clipboard.ReadAll()
			if err != nil {
				logger.Warn("clipboard read", "err", err)
				break
			}
			t.insertText(s, e)
		}
	}
	in.scrollToCaret(t.measure, t.innerW)
	return true
}

func (t *TextBox) wheel(e core.EventScroll) {
	if t.typ == "number" && t.focusing && e.Yoff != 0 {
		if e.Yoff > 0 {
			t.fineTuneNumber(+1)
		} else {
			t.fineTuneNumber(-1)
		}
	}
}

func (t *TextBox) blink(dt float64) {
	if t.focusing && t.input.selStart == t.input.selEnd {
		t.cursorElapsed += dt
		if t.cursorElapsed >= t.m.cfg.CursorBlink {
			t.cursorVisible = !t.cursorVisible
			t.cursorElapsed -= t.m.cfg.CursorBlink
		}
	}
}

// sync refreshes the cached selection geometry and the printed value.
func (t *TextBox) sync() {
	in := &t.input
	if t.selectionStart != in.selStart {
		t.selectionStart = in.selStart
		if t.selectionStart == t.selectionEnd {
			t.selectionLeft = t.selectionRight
			t.cursorVisible = true
			t.cursorElapsed = 0
		} else {
			t.selectionLeft = t.measure(string(in.value[:in.selStart]))
		}
	}
	if t.selectionEnd != in.selEnd {
		t.selectionEnd = in.selEnd
		if t.selectionEnd == t.selectionStart {
			t.selectionRight = t.selectionLeft
			t.cursorVisible = true
			t.cursorElapsed = 0
		} else {
			t.selectionRight = t.measure(string(in.value[:in.selEnd]))
		}
	}
	if t.printer != nil && t.printer.Content() != in.String() {
		t.updatePrinter()
	}
}

func (t *TextBox) updatePrinter() {
	if t.printer.Content() != "" {
		t.printer.Reset()
	}
	t.printer.Print(t.input.String())
	if t.connected {
		t.calculateTextPosition()
	}
}

func (t *TextBox) Draw(r Renderer) {
	if !t.visible {
		return
	}
	t.sync()
	var tex Texture
	if t.printer != nil {
		tex = t.printer.Texture()
	}
	if tex != nil {
		r.SetAlpha(t.frame.Opacity)
		r.SetBlend(BlendNormal)
		r.SetMatrix(t.frame.Matrix)
		t.drawValue(r, tex)
	}
	t.drawChildren(r)
}

func (t *TextBox) drawRun(r Renderer, tex Texture, sx, dx, sw float64, c colors.Color) {
	scale := t.m.svc.Printers.Scale()
	sy, sh := t.textShiftY, t.innerH
	clip := [4]float64{sx * scale, sy * scale, sw * scale, sh * scale}
	r.DrawImageColor(tex, clip, dx, t.textY, sw, sh, c)
}

func (t *TextBox) drawValue(r Renderer, tex Texture) {
	scroll := t.input.scrollLeft
	hasValue := len(t.input.value) != 0
	if !t.focusing {
		if hasValue {
			t.drawRun(r, tex, scroll, t.textX, math.Min(t.textWidth-scroll, t.innerW), t.color)
		}
		return
	}
	SL := math.Floor(t.selectionLeft)
	SR := math.Ceil(t.selectionRight)
	sl := geom.Clamp(SL-scroll, 0, t.innerW)
	sr := geom.Clamp(SR-scroll, 0, t.innerW)
	if t.selectionStart != t.selectionEnd {
		r.FillRect(t.textX+sl, t.selY, sr-sl, t.selH, t.selBgColor)
		tr := math.Min(t.textWidth-scroll, t.innerW)
		if 0 < sl {
			t.drawRun(r, tex, scroll, t.textX, sl, t.color)
		}
		if sl < sr {
			t.drawRun(r, tex, SL+math.Max(scroll-SL, 0), t.textX+sl, sr-sl, t.selColor)
		}
		if sr < tr {
			t.drawRun(r, tex, SR, t.textX+sr, tr-sr, t.color)
		}
		return
	}
	if hasValue {
		t.drawRun(r, tex, scroll, t.textX, math.Min(t.textWidth-scroll, t.innerW), t.color)
	}
	if t.cursorVisible && SL >= scroll && SL <= scroll+t.innerW {
		r.FillRect(t.textX+sl, t.selY, 1, t.selH, t.color)
	}
}

func (t *TextBox) Resize() {
	if t.beginResize() {
		t.calculateTextPosition()
		t.resizeChildren()
	}
}

func (t *TextBox) calculateTextPosition() {
	scale := 1.0
	var pt, texW, texH float64
	if t.printer != nil {
		scale = t.m.svc.Printers.Scale()
		_, top, _, _ := t.printer.Padding()
		pt = top / scale
		if tex := t.printer.Texture(); tex != nil {
			texW = float64(tex.Width()) / scale
			texH = float64(tex.Height()) / scale
		}
	}
	x, y, w, h := t.frame.X, t.frame.Y, t.frame.Width, t.frame.Height
	vpadding := (h - t.size) / 2
	t.textX = x + t.padding
	t.textY = y + math.Max(vpadding-pt, 0)
	t.textWidth = texW
	t.textShiftY = math.Max(pt-vpadding, 0)
	t.innerW = math.Max(w-t.padding*2, 0)
	t.innerH = math.Min(h+y-t.textY, texH)
	t.selY = y + math.Max(vpadding, 0)
	t.selH = math.Min(h, t.size)
	switch t.align {
	case "center":
		if texW < t.innerW {
			t.textX += (t.innerW - texW) / 2
		}
	case "right":
		if texW < t.innerW {
			t.textX += t.innerW - texW + 1
		}
	}
	sx := math.Max(t.transform.ScaleX, 1)
	sy := math.Max(t.transform.ScaleY, 1)
	t.textX = math.Round(t.textX*sx) / sx
	t.textY = math.Round(t.textY*sy) / sy
}

func (t *TextBox) onDisconnect() {
	if t.m.inputFocus() == t {
		t.m.setInputFocus(nil)
	}
}

func (t *TextBox) Destroy() {
	if t.destroyed {
		return
	}
	if t.m.inputFocus() == t {
		t.m.setInputFocus(nil)
	}
	if t.printer != nil {
		t.printer.Destroy()
		t.printer = nil
	}
	t.Base.Destroy()
}
