package ui

import "github.com/hubastard/groveui/engine/core"

// ButtonState is the interaction state of a button.
type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonHover
	ButtonActive
)

func (s ButtonState) String() string {
	switch s {
	case ButtonHover:
		return "hover"
	case ButtonActive:
		return "active"
	}
	return "normal"
}

// Button draws an image and a text that follow its state. The two parts are
// private elements parented to the button but absent from its children.
type Button struct {
	Base
	// mode forces a display state; ButtonNormal follows state.
	mode       ButtonState
	activeMode ButtonState
	state      ButtonState
	selected   bool

	image    *Image
	text     *Text
	behavior *buttonBehavior

	imagePadding float64
	textPadding  float64
	imageOpacity float64

	normalImage, hoverImage, activeImage string
	normalClip, hoverClip, activeClip    [4]float64
	normalColor, hoverColor, activeColor string
	normalTint, hoverTint, activeTint    [4]float64
	imageEffect                          string
	hoverSound, clickSound               string
}

func shadowTransform() Transform {
	return Transform{
		AnchorX: 0.5, AnchorY: 0.5,
		X2: 0.5, Y2: 0.5,
		Width2: 1, Height2: 1,
		ScaleX: 1, ScaleY: 1,
		Opacity: 1,
	}
}

func (m *Manager) newButton(n *Node) *Button {
	d := n.Button
	if d == nil {
		d = DefaultButtonData()
	}
	b := &Button{}
	b.init(m, b, KindButton, n)
	b.image = b.createShadowImage(d)
	b.text = b.createShadowText(d)
	b.behavior = &buttonBehavior{button: b}
	b.imageOpacity = 1
	b.SetImageOpacity(d.ImageOpacity)
	b.SetImagePadding(d.ImagePadding)
	b.SetTextPadding(d.TextPadding)
	b.normalImage = d.NormalImage
	b.normalClip = d.NormalClip
	b.hoverImage = d.HoverImage
	b.hoverClip = d.HoverClip
	b.activeImage = d.ActiveImage
	b.activeClip = d.ActiveClip
	b.normalColor = d.NormalColor
	b.hoverColor = d.HoverColor
	b.activeColor = d.ActiveColor
	b.imageEffect = d.ImageEffect
	b.normalTint = d.NormalTint
	b.hoverTint = d.HoverTint
	b.activeTint = d.ActiveTint
	b.hoverSound = d.HoverSound
	b.clickSound = d.ClickSound
	b.image.clip = b.normalClip
	b.image.tint = b.normalTint
	b.Emit("create", b.signal(), false)
	return b
}

func (b *Button) createShadowImage(d *ButtonData) *Image {
	n := NewNode("image")
	n.Transform = shadowTransform()
	n.Image.Image = d.NormalImage
	n.Image.Display = d.Display
	n.Image.Flip = d.Flip
	n.Image.Clip = d.NormalClip
	n.Image.Tint = d.NormalTint
	n.Image.Border = d.Border
	img := b.m.buildImage(n, true)
	b.adoptShadow(&img.Base)
	return img
}

func (b *Button) createShadowText(d *ButtonData) *Text {
	n := NewNode("text")
	n.Transform = shadowTransform()
	t := n.Text
	t.Color = d.NormalColor
	t.Direction = d.Direction
	t.HorizontalAlign = d.HorizontalAlign
	t.VerticalAlign = d.VerticalAlign
	t.Content = d.Content
	t.Size = d.Size
	t.LetterSpacing = d.LetterSpacing
	t.Font = d.Font
	t.Typeface = d.Typeface
	t.Effect = d.TextEffect
	txt := b.m.buildText(n, true)
	b.adoptShadow(&txt.Base)
	return txt
}

func (b *Button) adoptShadow(s *Base) {
	s.parent = b.id
	s.connected = true
	b.updaters.Add(s.updaters)
}

func (b *Button) ShadowImage() *Image { return b.image }
func (b *Button) ShadowText() *Text   { return b.text }
func (b *Button) State() ButtonState  { return b.state }
func (b *Button) Selected() bool      { return b.selected }
func (b *Button) Mode() ButtonState   { return b.mode }

// SetMode pins the display state. ButtonNormal lets the state drive it.
func (b *Button) SetMode(v ButtonState) {
	if b.mode != v {
		b.mode = v
		b.updateDisplayMode(false)
	}
}

func (b *Button) ImagePadding() float64 { return b.imagePadding }

func (b *Button) SetImagePadding(v float64) {
	if b.imagePadding != v {
		b.imagePadding = v
		b.image.transform.Width = -v * 2
		b.image.transform.Height = -v * 2
		if b.connected {
			b.image.Resize()
		}
	}
}

func (b *Button) TextPadding() float64 { return b.textPadding }

func (b *Button) SetTextPadding(v float64) {
	if b.textPadding != v {
		b.textPadding = v
		b.text.transform.Width = -v * 2
		b.text.transform.Height = -v * 2
		if b.connected {
			b.text.Resize()
		}
	}
}

func (b *Button) ImageOpacity() float64 { return b.imageOpacity }

func (b *Button) SetImageOpacity(v float64) {
	if b.imageOpacity != v {
		b.imageOpacity = v
		b.image.transform.Opacity = v
		if b.connected {
			b.image.Resize()
		}
	}
}

func (b *Button) Image() string { return b.image.Image() }

func (b *Button) SetNormalImage(v string) {
	if b.normalImage != v {
		b.normalImage = v
		if b.activeMode == ButtonNormal {
			b.image.SetImage(v)
		}
	}
}

func (b *Button) SetHoverImage(v string) {
	if b.hoverImage != v {
		b.hoverImage = v
		if b.activeMode == ButtonHover {
			b.image.SetImage(v)
		}
	}
}

func (b *Button) SetActiveImage(v string) {
	if b.activeImage != v {
		b.activeImage = v
		if b.activeMode == ButtonActive {
			b.image.SetImage(v)
		}
	}
}

func (b *Button) SetClips(normal, hover, active [4]float64) {
	b.normalClip, b.hoverClip, b.activeClip = normal, hover, active
}

func (b *Button) SetColors(normal, hover, active string) {
	b.normalColor, b.hoverColor, b.activeColor = normal, hover, active
}

func (b *Button) SetTints(normal, hover, active [4]float64) {
	b.normalTint, b.hoverTint, b.activeTint = normal, hover, active
}

// SetImageEffect takes none or tint-1 to tint-3. Higher levels give the
// later states their own tints.
func (b *Button) SetImageEffect(v string) {
	switch v {
	case "none", "tint-1", "tint-2", "tint-3":
		b.imageEffect = v
	}
}

func (b *Button) SetSounds(hover, click string) { b.hoverSound, b.clickSound = hover, click }

func (b *Button) Content() string      { return b.text.Content() }
func (b *Button) SetContent(v string)  { b.text.SetContent(v) }
func (b *Button) UpdateTextContent()   { b.text.UpdateTextContent() }
func (b *Button) updatePrinter()       { b.text.updatePrinter() }
func (b *Button) Color() string        { return b.text.Color() }
func (b *Button) SetDisplay(v string)  { b.image.SetDisplay(v) }
func (b *Button) SetFlip(v string)     { b.image.SetFlip(v) }
func (b *Button) SetBorder(v float64)  { b.image.SetBorder(v) }
func (b *Button) SetSize(v float64)    { b.text.SetSize(v) }
func (b *Button) SetFont(v string)     { b.text.SetFont(v) }
func (b *Button) SetTypeface(v string) { b.text.SetTypeface(v) }

func (b *Button) SetTextEffect(e TextEffect) { b.text.SetEffect(e) }

// IsProtected reports whether a focus below the top of the focus stack
// owns the button. Protected buttons ignore pointer events.
func (b *Button) IsProtected() bool {
	focuses := b.m.focuses
	n := len(focuses)
	if n == 0 {
		return false
	}
	if top := b.m.el(focuses[n-1]); top != nil && b.ownedBy(top) {
		return false
	}
	for i := n - 2; i >= 0; i-- {
		if f := b.m.el(focuses[i]); f != nil && b.ownedBy(f) {
			return true
		}
	}
	return false
}

func (b *Button) ownedBy(focus Element) bool {
	f := focus.Node()
	if f.focusMode == FocusDescendantButtons {
		return f.Contains(b)
	}
	return f.id == b.parent
}

func (b *Button) playHoverSound() {
	if b.hoverSound != "" && b.m.svc.Audio != nil {
		b.m.svc.Audio.PlaySE(b.hoverSound)
	}
}

func (b *Button) playClickSound() {
	if b.clickSound != "" && b.m.svc.Audio != nil {
		b.m.svc.Audio.PlaySE(b.clickSound)
	}
}

func (b *Button) updateDisplayMode(se bool) {
	mode := b.mode
	if mode == ButtonNormal {
		mode = b.state
		if mode == ButtonHover && b.IsProtected() {
			mode = ButtonActive
		}
	}
	if b.activeMode == mode {
		return
	}
	b.activeMode = mode
	img, txt := b.image, b.text
	switch mode {
	case ButtonNormal:
		img.SetImage(b.normalImage)
		txt.SetColor(b.normalColor)
		img.clip = b.normalClip
		if b.imageEffect != "none" {
			img.tint = b.normalTint
		}
	case ButtonHover:
		img.SetImage(firstOf(b.hoverImage, b.normalImage))
		txt.SetColor(firstOf(b.hoverColor, b.normalColor))
		img.clip = b.normalClip
		if b.hoverImage != "" {
			img.clip = b.hoverClip
		}
		switch b.imageEffect {
		case "tint-1":
			img.tint = b.normalTint
		case "tint-2", "tint-3":
			img.tint = b.hoverTint
		}
		if se {
			b.playHoverSound()
		}
	case ButtonActive:
		img.SetImage(firstOf(b.activeImage, b.hoverImage, b.normalImage))
		txt.SetColor(firstOf(b.activeColor, b.hoverColor, b.normalColor))
		switch {
		case b.activeImage != "":
			img.clip = b.activeClip
		case b.hoverImage != "":
			img.clip = b.hoverClip
		default:
			img.clip = b.normalClip
		}
		switch b.imageEffect {
		case "tint-1":
			img.tint = b.normalTint
		case "tint-2":
			img.tint = b.hoverTint
		case "tint-3":
			img.tint = b.activeTint
		}
	}
}

func firstOf(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}

// Restore returns the button to the normal state and emits deselect if it
// was selected.
func (b *Button) Restore() {
	if b.state == ButtonNormal {
		return
	}
	if b.selected {
		b.selected = false
		b.Emit("deselect", b.signal(), false)
	}
	b.state = ButtonNormal
	b.updateDisplayMode(false)
}

// Hover selects the button. Outside pointer input the parent window
// scrolls it into view.
func (b *Button) Hover(se bool) {
	if b.state == ButtonHover {
		return
	}
	if !b.selected {
		b.selected = true
		b.Emit("select", b.signal(), false)
	}
	b.state = ButtonHover
	b.updateDisplayMode(se)
	if !b.m.pointerInput() {
		if w := asWindow(b.Parent()); w != nil {
			w.ScrollToChild(b)
		}
	}
}

func (b *Button) Activate() {
	if b.state == ButtonActive {
		return
	}
	if !b.selected {
		b.selected = true
		b.Emit("select", b.signal(), false)
	}
	b.state = ButtonActive
	b.updateDisplayMode(false)
}

func (b *Button) Draw(r Renderer) {
	if !b.visible {
		return
	}
	b.image.Draw(r)
	b.text.Draw(r)
	b.drawChildren(r)
}

func (b *Button) Resize() {
	if w := b.windowParent(); w != nil {
		w.RequestResizing()
		return
	}
	b.calculatePosition()
	b.image.Resize()
	b.text.Resize()
	b.resizeChildren()
}

// Emit runs the built-in behavior first. Pointer events stop bubbling at
// the button and are dropped entirely while it is protected.
func (b *Button) Emit(typ string, ev core.Event, bubble bool) {
	b.behavior.emit(typ)
	switch typ {
	case "mousemove", "mouseenter", "mouseleave",
		"mousedown", "mousedownLB", "mousedownRB",
		"mouseup", "mouseupLB", "mouseupRB", "click":
		if b.IsProtected() {
			return
		}
		b.m.svc.Bubbles.Stop()
	}
	b.Base.Emit(typ, ev, bubble)
}

func (b *Button) Destroy() {
	if b.destroyed {
		return
	}
	b.m.releasePressed(b)
	b.image.Destroy()
	b.text.Destroy()
	b.Base.Destroy()
}

// buttonBehavior maps pointer events to button states.
type buttonBehavior struct {
	button *Button
	hover  bool
	active bool
}

func (s *buttonBehavior) emit(typ string) {
	switch typ {
	case "mousemove":
		s.onMouseMove()
	case "mouseleave":
		s.onMouseLeave()
	case "mousedownLB":
		s.onMouseDownLB()
	case "click":
		if !s.button.IsProtected() {
			s.button.playClickSound()
		}
	}
}

func (s *buttonBehavior) onMouseMove() {
	if !s.hover && !s.button.IsProtected() {
		s.hover = true
		s.button.m.restoreRelatedButtons(s.button)
		s.update(true)
	}
}

func (s *buttonBehavior) onMouseLeave() {
	s.hover = false
	if !s.button.IsProtected() {
		s.update(false)
	}
}

func (s *buttonBehavior) onMouseDownLB() {
	if s.button.IsProtected() || !s.button.m.pointerInput() {
		return
	}
	s.hover = true
	s.active = true
	s.button.m.restoreRelatedButtons(s.button)
	s.update(false)
	s.button.m.addPressed(s.button)
}

// onMouseUpLB is called by the manager for every pressed button before the
// release is dispatched.
func (s *buttonBehavior) onMouseUpLB() {
	if s.active {
		s.active = false
		if !s.button.IsProtected() {
			s.update(false)
		}
	}
}

func (s *buttonBehavior) update(se bool) {
	switch {
	case s.active:
		s.button.Activate()
	case s.hover:
		s.button.Hover(se)
	default:
		s.button.Restore()
	}
}
