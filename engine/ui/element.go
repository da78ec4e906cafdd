package ui

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/geom"
	"github.com/hubastard/groveui/engine/module"
)

// ID addresses an element in its manager's arena. Zero is no element; an
// ID of a destroyed element resolves to nil.
type ID uint64

type Kind int

const (
	KindRoot Kind = iota
	KindContainer
	KindImage
	KindText
	KindTextBox
	KindDialogBox
	KindProgressBar
	KindButton
	KindAnimation
	KindVideo
	KindWindow
)

var kindNames = [...]string{"root", "container", "image", "text", "textbox", "dialogbox", "progressbar", "button", "animation", "video", "window"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

type PointerEvents int

const (
	PointerEnabled PointerEvents = iota
	// PointerSkipped elements are transparent to hit testing but their
	// children are not.
	PointerSkipped
	PointerDisabled
)

func parsePointerEvents(s string) PointerEvents {
	switch s {
	case "skipped":
		return PointerSkipped
	case "disabled":
		return PointerDisabled
	}
	return PointerEnabled
}

type FocusMode int

const (
	// FocusChildButtons makes only direct button children navigable.
	FocusChildButtons FocusMode = iota
	// FocusDescendantButtons makes every button descendant navigable.
	FocusDescendantButtons
)

// Element is a node of the UI tree.
type Element interface {
	Node() *Base
	Draw(r Renderer)
	Resize()
	Emit(typ string, ev core.Event, bubble bool)
	Destroy()
}

// Frame is the resolved geometry of an element in UI pixels.
type Frame struct {
	X, Y          float64
	Width, Height float64
	Matrix        geom.Matrix
	Opacity       float64
}

// Base carries the state every element kind shares. Kinds embed it and
// override Draw, Resize, Emit and Destroy as needed.
type Base struct {
	self Element
	m    *Manager
	id   ID
	kind Kind

	name        string
	entityID    string
	presetID    string
	referenceID string

	frame     Frame
	transform Transform
	// proxy replaces the parent frame while a window lays out its grid.
	proxy *Frame

	parent   ID
	children []ID

	visible         bool
	connected       bool
	started         bool
	destroyed       bool
	pointerEvents   PointerEvents
	focusMode       FocusMode
	focusCancelable bool

	attributes map[string]any
	updaters   *module.UpdaterList
	events     map[string]*Commands
	registered map[string]*Commands
	script     ScriptDispatcher
}

func (b *Base) Node() *Base { return b }

func (b *Base) ID() ID               { return b.id }
func (b *Base) Kind() Kind           { return b.kind }
func (b *Base) Manager() *Manager    { return b.m }
func (b *Base) Name() string         { return b.name }
func (b *Base) SetName(name string)  { b.name = name }
func (b *Base) EntityID() string     { return b.entityID }
func (b *Base) PresetID() string     { return b.presetID }
func (b *Base) ReferenceID() string  { return b.referenceID }
func (b *Base) X() float64           { return b.frame.X }
func (b *Base) Y() float64           { return b.frame.Y }
func (b *Base) Width() float64       { return b.frame.Width }
func (b *Base) Height() float64      { return b.frame.Height }
func (b *Base) Matrix() geom.Matrix  { return b.frame.Matrix }
func (b *Base) Opacity() float64     { return b.frame.Opacity }
func (b *Base) Frame() Frame         { return b.frame }
func (b *Base) Transform() Transform { return b.transform }
func (b *Base) Visible() bool        { return b.visible }
func (b *Base) Connected() bool      { return b.connected }
func (b *Base) Started() bool        { return b.started }
func (b *Base) Destroyed() bool      { return b.destroyed }
func (b *Base) Updaters() *module.UpdaterList {
	return b.updaters
}

func (b *Base) PointerEvents() PointerEvents     { return b.pointerEvents }
func (b *Base) SetPointerEvents(p PointerEvents) { b.pointerEvents = p }
func (b *Base) FocusMode() FocusMode             { return b.focusMode }
func (b *Base) SetFocusMode(f FocusMode)         { b.focusMode = f }
func (b *Base) FocusCancelable() bool            { return b.focusCancelable }
func (b *Base) SetFocusCancelable(v bool)        { b.focusCancelable = v }

func (b *Base) Attr(key string) (any, bool) {
	v, ok := b.attributes[key]
	return v, ok
}

func (b *Base) SetAttr(key string, v any) { b.attributes[key] = v }

// Parent returns nil for the root and for detached elements.
func (b *Base) Parent() Element { return b.m.el(b.parent) }

func (b *Base) ChildCount() int { return len(b.children) }

// Child returns the i-th child in draw order.
func (b *Base) Child(i int) Element { return b.m.el(b.children[i]) }

// Children returns a snapshot of the child list.
func (b *Base) Children() []Element {
	out := make([]Element, 0, len(b.children))
	for _, id := range b.children {
		if c := b.m.el(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (b *Base) indexOfChild(id ID) int {
	for i, c := range b.children {
		if c == id {
			return i
		}
	}
	return -1
}

func (b *Base) removeChildID(id ID) bool {
	i := b.indexOfChild(id)
	if i == -1 {
		return false
	}
	b.children = append(b.children[:i], b.children[i+1:]...)
	return true
}

// Contains reports whether e is b or one of its descendants.
func (b *Base) Contains(e Element) bool {
	for e != nil {
		n := e.Node()
		if n == b {
			return true
		}
		e = n.Parent()
	}
	return false
}

// IsVisible reports whether b and all of its ancestors are visible.
func (b *Base) IsVisible() bool {
	var e Element = b.self
	for e != nil {
		n := e.Node()
		if !n.visible {
			return false
		}
		e = n.Parent()
	}
	return true
}

func (b *Base) parentFrame() *Frame {
	if b.proxy != nil {
		return b.proxy
	}
	if p := b.Parent(); p != nil {
		return &p.Node().frame
	}
	return nil
}

func (b *Base) windowParent() *Window {
	if b.proxy != nil {
		return nil
	}
	return asWindow(b.Parent())
}

// calculatePosition resolves the frame from the transform and the parent
// frame. Rotation, scale and skew pivot on the unanchored position.
func (b *Base) calculatePosition() {
	if !b.connected {
		return
	}
	p := b.parentFrame()
	if p == nil {
		return
	}
	t := &b.transform
	m := p.Matrix
	x := p.X + t.X + t.X2*p.Width
	y := p.Y + t.Y + t.Y2*p.Height
	w := math.Max(t.Width+t.Width2*p.Width, 0)
	h := math.Max(t.Height+t.Height2*p.Height, 0)
	if t.Rotation != 0 {
		m.RotateAt(x, y, geom.Radians(t.Rotation))
	}
	if t.ScaleX != 1 || t.ScaleY != 1 {
		m.ScaleAt(x, y, t.ScaleX, t.ScaleY)
	}
	if t.SkewX != 0 || t.SkewY != 0 {
		m.SkewAt(x, y, t.SkewX, t.SkewY)
	}
	b.frame = Frame{
		X:       x - t.AnchorX*w,
		Y:       y - t.AnchorY*h,
		Width:   w,
		Height:  h,
		Matrix:  m,
		Opacity: t.Opacity * p.Opacity,
	}
}

// beginResize resolves the frame of a visible element and reports whether
// the caller should go on laying out its content. Children of a window
// defer to the window's layout instead.
func (b *Base) beginResize() bool {
	if !b.visible {
		return false
	}
	if w := b.windowParent(); w != nil {
		w.RequestResizing()
		return false
	}
	b.calculatePosition()
	return true
}

func (b *Base) Resize() {
	if b.beginResize() {
		b.resizeChildren()
	}
}

func (b *Base) Draw(r Renderer) {
	if b.visible {
		b.drawChildren(r)
	}
}

func (b *Base) drawChildren(r Renderer) {
	for i := 0; i < len(b.children); i++ {
		if c := b.m.el(b.children[i]); c != nil {
			c.Draw(r)
		}
	}
}

func (b *Base) resizeChildren() {
	for i := 0; i < len(b.children); i++ {
		if c := b.m.el(b.children[i]); c != nil {
			c.Resize()
		}
	}
}

func (b *Base) destroyChildren() {
	for i := len(b.children) - 1; i >= 0; i-- {
		if i >= len(b.children) {
			continue
		}
		if c := b.m.el(b.children[i]); c != nil {
			c.Destroy()
		}
	}
}

// IsPointIn tests a screen point against the transformed quad.
func (b *Base) IsPointIn(x, y float64) bool {
	W, H := b.frame.Width, b.frame.Height
	if W*H == 0 {
		return false
	}
	m := b.frame.Matrix
	L, T := b.frame.X, b.frame.Y
	R, B := L+W, T+H
	x1, y1 := m.Apply(L, T)
	x2, y2 := m.Apply(L, B)
	x3, y3 := m.Apply(R, B)
	x4, y4 := m.Apply(R, T)
	x1, y1 = x1-x, y1-y
	x2, y2 = x2-x, y2-y
	x3, y3 = x3-x, y3-y
	x4, y4 = x4-x, y4-y
	c1 := x1*y2 - y1*x2
	c2 := x2*y3 - y2*x3
	c3 := x3*y4 - y3*x4
	c4 := x4*y1 - y4*x1
	return c1*c2 >= 0 && c2*c3 >= 0 && c3*c4 >= 0 && c4*c1 >= 0
}

// BoundingRect returns the axis-aligned screen bounds [x1, y1, x2, y2].
func (b *Base) BoundingRect() [4]float64 {
	m := b.frame.Matrix
	L, T := b.frame.X, b.frame.Y
	R, B := L+b.frame.Width, T+b.frame.Height
	x1, y1 := m.Apply(L, T)
	x2, y2 := m.Apply(L, B)
	x3, y3 := m.Apply(R, B)
	x4, y4 := m.Apply(R, T)
	return [4]float64{
		min(x1, x2, x3, x4),
		min(y1, y2, y3, y4),
		max(x1, x2, x3, x4),
		max(y1, y2, y3, y4),
	}
}

func (b *Base) signal() core.Event { return core.EventSignal{Source: b.self} }

func newEntityID() string { return fmt.Sprintf("%016x", rand.Uint64()) }

// init wires a freshly allocated element into the manager. It must run
// before any kind-specific setup.
func (b *Base) init(m *Manager, self Element, kind Kind, n *Node) {
	b.initKind(m, self, kind, n, false)
}

// initKind is init for elements that may be a button's shadow parts.
// Shadows stay out of the entity registries.
func (b *Base) initKind(m *Manager, self Element, kind Kind, n *Node, shadow bool) {
	b.self = self
	b.m = m
	b.kind = kind
	b.name = n.Name
	b.presetID = n.PresetID
	b.referenceID = n.ReferenceID
	b.entityID = newEntityID()
	b.transform = n.Transform
	b.frame = Frame{Matrix: geom.Identity(), Opacity: 1}
	b.visible = true
	b.pointerEvents = parsePointerEvents(n.PointerEvents)
	b.attributes = map[string]any{}
	b.updaters = module.NewUpdaterList()
	b.events = n.Events
	if b.events == nil {
		b.events = map[string]*Commands{}
	}
	b.registered = map[string]*Commands{}
	b.id = m.arena.add(self)
	b.script = noScript{}
	if m.svc.Scripts != nil {
		if d := m.svc.Scripts.Attach(self, n.Scripts); d != nil {
			b.script = d
		}
	}
	if shadow {
		return
	}
	m.entities.Add(self)
	if m.svc.Entities != nil {
		m.svc.Entities.Add(self)
	}
}

type slot struct {
	gen uint32
	el  Element
}

// arena owns the id space of one manager.
type arena struct {
	slots []slot
	free  []uint32
}

func (a *arena) add(e Element) ID {
	var i uint32
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot{})
		i = uint32(len(a.slots) - 1)
	}
	s := &a.slots[i]
	s.gen++
	s.el = e
	return ID(uint64(s.gen)<<32 | uint64(i))
}

func (a *arena) get(id ID) Element {
	if id == 0 {
		return nil
	}
	i := uint32(id)
	if int(i) >= len(a.slots) {
		return nil
	}
	s := a.slots[i]
	if s.gen != uint32(id>>32) {
		return nil
	}
	return s.el
}

func (a *arena) release(id ID) {
	if a.get(id) == nil {
		return
	}
	i := uint32(id)
	a.slots[i].el = nil
	a.slots[i].gen++
	a.free = append(a.free, i)
}

func (a *arena) len() int { return len(a.slots) - len(a.free) }
