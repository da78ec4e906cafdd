package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hubastard/groveui/engine/colors"
)

var (
	globalVarRE        = regexp.MustCompile(`<global:([0-9a-f]{16})>`)
	dynamicGlobalVarRE = regexp.MustCompile(`<global::([0-9a-f]{16})>`)
)

// Text draws printed text. Printing is lazy: the texture is rebuilt on draw
// when the content or the wrapped area changed.
type Text struct {
	Base
	printer  Printer
	style    TextStyle
	blend    Blend
	typeface string
	overflow string
	color    string
	font     string

	rawContent string
	content    string

	textWidth, textHeight float64
	outer                 [4]float64
	imageOffset           [2]float64
	inline                map[string]Texture
}

func (m *Manager) newText(n *Node) *Text {
	t := m.buildText(n, false)
	t.Emit("create", t.signal(), false)
	return t
}

func (m *Manager) buildText(n *Node, shadow bool) *Text {
	d := n.Text
	if d == nil {
		d = DefaultTextData()
	}
	t := &Text{inline: map[string]Texture{}}
	t.initKind(m, t, KindText, n, shadow)
	t.style = TextStyle{Direction: "horizontal-tb", HAlign: "left", VAlign: "middle"}
	t.SetDirection(d.Direction)
	t.SetHorizontalAlign(d.HorizontalAlign)
	t.SetVerticalAlign(d.VerticalAlign)
	t.SetContent(m.parseVariables(d.Content))
	t.SetSize(d.Size)
	t.SetLineSpacing(d.LineSpacing)
	t.SetLetterSpacing(d.LetterSpacing)
	t.SetColor(d.Color)
	t.SetFont(d.Font)
	t.SetTypeface(d.Typeface)
	t.SetEffect(d.Effect)
	t.SetOverflow(d.Overflow)
	t.SetBlend(d.Blend)
	return t
}

// parseVariables substitutes static <global:id> tags once.
func (m *Manager) parseVariables(content string) string {
	return globalVarRE.ReplaceAllStringFunc(content, func(tag string) string {
		key := globalVarRE.FindStringSubmatch(tag)[1]
		if m.svc.Variables == nil {
			return ""
		}
		v, ok := m.svc.Variables.Get(key)
		if !ok || v == nil {
			return ""
		}
		return fmt.Sprint(v)
	})
}

// dynamicContent re-renders a text whose <global::id> values changed.
type dynamicContent struct {
	vars     Variables
	parts    []string
	keys     map[int]string
	set      map[int]bool
	changed  bool
	onChange func(content string)
}

func compileDynamicContent(content string, vars Variables) *dynamicContent {
	locs := dynamicGlobalVarRE.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}
	d := &dynamicContent{vars: vars, keys: map[int]string{}, set: map[int]bool{}}
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			d.parts = append(d.parts, content[last:loc[0]])
		}
		d.keys[len(d.parts)] = content[loc[2]:loc[3]]
		d.parts = append(d.parts, "")
		last = loc[1]
	}
	if len(content) > last {
		d.parts = append(d.parts, content[last:])
	}
	return d
}

func (d *dynamicContent) Update(float64) {
	for i, key := range d.keys {
		value := ""
		if d.vars != nil {
			if v, ok := d.vars.Get(key); ok && v != nil {
				value = fmt.Sprint(v)
			}
		}
		if !d.set[i] || d.parts[i] != value {
			d.set[i] = true
			d.parts[i] = value
			d.changed = true
		}
	}
	if d.changed {
		d.changed = false
		d.onChange(strings.Join(d.parts, ""))
	}
}

func (t *Text) syncStyle() {
	if t.printer != nil {
		t.printer.SetStyle(t.style)
	}
}

func (t *Text) Content() string { return t.content }

// SetContent localizes value and watches its dynamic variables.
func (t *Text) SetContent(value string) {
	if t.rawContent == value {
		return
	}
	t.rawContent = value
	t.content = value
	if t.m.svc.Local != nil {
		t.content = t.m.svc.Local.Replace(value)
	}
	if d := compileDynamicContent(t.content, t.m.svc.Variables); d != nil {
		d.onChange = func(content string) { t.content = content }
		t.updaters.Set("dynamic-var", d)
	} else {
		t.updaters.Delete("dynamic-var")
	}
}

// UpdateTextContent reapplies localization after a language change.
func (t *Text) UpdateTextContent() {
	raw := t.rawContent
	t.rawContent = ""
	t.SetContent(raw)
}

func (t *Text) Direction() string { return t.style.Direction }

func (t *Text) SetDirection(v string) {
	switch v {
	case "horizontal-tb", "vertical-lr", "vertical-rl":
	default:
		return
	}
	if t.style.Direction != v {
		t.style.Direction = v
		t.syncStyle()
	}
}

func (t *Text) HorizontalAlign() string { return t.style.HAlign }

func (t *Text) SetHorizontalAlign(v string) {
	switch v {
	case "left", "center", "right":
	default:
		return
	}
	if t.style.HAlign != v {
		t.style.HAlign = v
		t.syncStyle()
	}
}

func (t *Text) VerticalAlign() string { return t.style.VAlign }

func (t *Text) SetVerticalAlign(v string) {
	switch v {
	case "top", "middle", "bottom":
	default:
		return
	}
	if t.style.VAlign != v {
		t.style.VAlign = v
		t.syncStyle()
	}
}

func (t *Text) Size() float64 { return t.style.Size }

func (t *Text) SetSize(v float64) {
	if t.style.Size != v && v > 0 {
		t.style.Size = v
		t.syncStyle()
	}
}

func (t *Text) LineSpacing() float64 { return t.style.LineSpacing }

func (t *Text) SetLineSpacing(v float64) {
	if t.style.LineSpacing != v {
		t.style.LineSpacing = v
		t.syncStyle()
	}
}

func (t *Text) LetterSpacing() float64 { return t.style.LetterSpacing }

func (t *Text) SetLetterSpacing(v float64) {
	if t.style.LetterSpacing != v {
		t.style.LetterSpacing = v
		t.syncStyle()
	}
}

func (t *Text) Color() string { return t.color }

// SetColor takes an rrggbb[aa] hex string. Malformed colors are ignored.
func (t *Text) SetColor(v string) {
	if t.color == v {
		return
	}
	c, err := colors.Parse(v)
	if err != nil {
		logger.Debug("invalid text color", "value", v, "element", t.name)
		return
	}
	t.color = v
	t.style.Color = c
	t.syncStyle()
}

func (t *Text) Font() string { return t.font }

func (t *Text) SetFont(v string) {
	t.font = v
	t.style.Font = v
	t.syncStyle()
}

func (t *Text) Typeface() string { return t.typeface }

func (t *Text) SetTypeface(v string) {
	if t.typeface == v {
		return
	}
	bold, italic, ok := parseTypeface(v)
	if !ok {
		return
	}
	t.typeface = v
	t.style.Bold, t.style.Italic = bold, italic
	t.syncStyle()
}

func parseTypeface(v string) (bold, italic, ok bool) {
	switch v {
	case "regular":
		return false, false, true
	case "bold":
		return true, false, true
	case "italic":
		return false, true, true
	case "bold-italic":
		return true, true, true
	}
	return false, false, false
}

func (t *Text) Effect() TextEffect { return t.style.Effect }

func (t *Text) SetEffect(e TextEffect) {
	t.style.Effect = e
	t.syncStyle()
}

func (t *Text) Overflow() string { return t.overflow }

func (t *Text) SetOverflow(v string) {
	if t.overflow == v {
		return
	}
	wrap, trunc, ok := parseOverflow(v)
	if !ok {
		return
	}
	t.overflow = v
	t.style.WordWrap, t.style.Truncate = wrap, trunc
	t.syncStyle()
}

func parseOverflow(v string) (wrap, truncate, ok bool) {
	switch v {
	case "visible":
		return false, false, true
	case "wrap":
		return true, false, true
	case "truncate":
		return false, true, true
	case "wrap-truncate":
		return true, true, true
	}
	return false, false, false
}

func (t *Text) Blend() Blend { return t.blend }

func (t *Text) SetBlend(v string) {
	if b, ok := parseBlend(v); ok && b != BlendMask {
		t.blend = b
	}
}

// TextSize is the printed text extent in UI pixels.
func (t *Text) TextSize() (w, h float64) { return t.textWidth, t.textHeight }

// update creates the printer on first use and reprints when needed.
func (t *Text) update() {
	p := t.printer
	if p == nil {
		if t.m.svc.Printers == nil {
			return
		}
		p = t.m.svc.Printers.New()
		p.SetStyle(t.style)
		t.printer = p
	}
	pw, ph := p.PrintArea()
	w, h := t.frame.Width, t.frame.Height
	horizontal := p.Horizontal()
	if p.Content() != t.content ||
		t.style.WordWrap && (horizontal && pw != w || !horizontal && ph != h) ||
		t.style.Truncate && (horizontal && ph != h || !horizontal && pw != w) {
		t.updatePrinter()
	}
}

func (t *Text) updatePrinter() {
	p := t.printer
	if p == nil {
		return
	}
	if p.Content() != "" {
		p.Reset()
	}
	p.SetPrintArea(t.frame.Width, t.frame.Height)
	p.Print(t.content)
	t.calculateTextPosition()
}

func (t *Text) calculateTextPosition() {
	p := t.printer
	if p == nil || p.Texture() == nil {
		return
	}
	tex := p.Texture()
	scale := t.m.svc.Printers.Scale()
	l, tp, r, b := p.Padding()
	pl, pt, pr, pb := l/scale, tp/scale, r/scale, b/scale
	outerW := float64(tex.Width()) / scale
	outerH := float64(tex.Height()) / scale
	innerW := outerW - pl - pr
	innerH := outerH - pt - pb
	fx, fy := p.AlignmentFactor()
	offsetX := (t.frame.Width - innerW) * fx
	offsetY := (t.frame.Height - innerH) * fy
	t.textWidth = innerW
	t.textHeight = innerH
	t.outer = [4]float64{t.frame.X - pl + offsetX, t.frame.Y - pt + offsetY, outerW, outerH}
	t.imageOffset = [2]float64{offsetX, offsetY}
}

func (t *Text) inlineTexture(guid string) Texture {
	if tex, ok := t.inline[guid]; ok {
		return tex
	}
	var tex Texture
	if t.m.svc.Renderer != nil {
		tex = t.m.svc.Renderer.LoadTexture(guid)
	}
	t.inline[guid] = tex
	return tex
}

func (t *Text) Draw(r Renderer) {
	if !t.visible {
		return
	}
	t.update()
	if t.content != "" && t.printer != nil {
		if tex := t.printer.Texture(); tex != nil {
			r.SetAlpha(t.frame.Opacity)
			r.SetBlend(t.blend)
			r.SetMatrix(t.frame.Matrix)
			clip := [4]float64{0, 0, float64(tex.Width()), float64(tex.Height())}
			r.DrawImage(tex, clip, t.outer[0], t.outer[1], t.outer[2], t.outer[3], [4]float64{})
			t.drawInlineImages(r)
		}
	}
	t.drawChildren(r)
}

func (t *Text) drawInlineImages(r Renderer) {
	for _, img := range t.printer.Images() {
		tex := t.inlineTexture(img.Image)
		if tex == nil || !tex.Complete() {
			continue
		}
		x := t.frame.X + img.StartX + t.imageOffset[0]
		y := t.frame.Y + img.StartY + t.imageOffset[1]
		r.DrawImage(tex, img.Clip, x, y, img.Width, img.Height, [4]float64{})
	}
}

func (t *Text) Resize() {
	if t.beginResize() {
		t.calculateTextPosition()
		t.resizeChildren()
	}
}

func (t *Text) Destroy() {
	if t.destroyed {
		return
	}
	if t.printer != nil {
		t.printer.Destroy()
		t.printer = nil
	}
	for _, tex := range t.inline {
		if tex != nil {
			tex.Destroy()
		}
	}
	clear(t.inline)
	t.Base.Destroy()
}
