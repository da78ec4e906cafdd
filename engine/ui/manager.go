package ui

import (
	"fmt"
	"slices"

	"github.com/hubastard/groveui/engine/core"
)

// Config holds the tunables of a Manager. Durations are milliseconds.
type Config struct {
	Scale         float64
	TurboDelay    float64
	TurboInterval float64
	CursorBlink   float64
}

func DefaultConfig() Config {
	return Config{Scale: 1, TurboDelay: 500, TurboInterval: 100, CursorBlink: 500}
}

func (c *Config) withDefaults() {
	d := DefaultConfig()
	if c.Scale <= 0 {
		c.Scale = d.Scale
	}
	if c.TurboDelay <= 0 {
		c.TurboDelay = d.TurboDelay
	}
	if c.TurboInterval <= 0 {
		c.TurboInterval = d.TurboInterval
	}
	if c.CursorBlink <= 0 {
		c.CursorBlink = d.CursorBlink
	}
}

type direction int

const (
	dirNone direction = iota
	dirUp
	dirDown
	dirLeft
	dirRight
)

// Manager owns one UI tree: its elements, presets, focus stack and input
// routing. It is not safe for concurrent use.
type Manager struct {
	svc   Services
	cfg   Config
	scale float64

	arena    arena
	root     *Root
	elements *ElementManager
	entities *EntityManager

	files   map[string]*File
	presets map[string]*Node
	latest  ID

	focuses      []ID
	pointerRoots []ID
	textFocus    ID

	input       *core.Input
	event       core.Event
	lastMouse   core.Event
	eventTarget ID
	eventHover  ID
	touched     []ID
	pressed     []ID
	videos      []ID

	dirKey          direction
	stickDir        direction
	keyTurbo        bool
	keyTurboElapsed float64
}

func New(svc Services, cfg Config) *Manager {
	svc.withDefaults()
	cfg.withDefaults()
	m := &Manager{
		svc:       svc,
		cfg:       cfg,
		scale:     cfg.Scale,
		entities:  NewEntityManager(),
		files:     map[string]*File{},
		presets:   map[string]*Node{},
		input:     core.NewInput(),
		lastMouse: core.EventMouseMove{},
	}
	m.elements = NewElementManager(svc.Deferred)
	m.root = newRoot(m)
	m.SetScale(cfg.Scale)
	return m
}

func (m *Manager) el(id ID) Element { return m.arena.get(id) }

func (m *Manager) Root() *Root               { return m.root }
func (m *Manager) Scale() float64            { return m.scale }
func (m *Manager) Config() Config            { return m.cfg }
func (m *Manager) Services() *Services       { return &m.svc }
func (m *Manager) Elements() *ElementManager { return m.elements }

// Latest is the element most recently created from a preset or UI file.
func (m *Manager) Latest() Element { return m.el(m.latest) }

// Get finds a live element by entity id, preset id, name or reference id.
func (m *Manager) Get(key string) Element { return m.entities.Get(key) }

// SetScale changes the UI pixel size and reprints every text.
func (m *Manager) SetScale(v float64) {
	if v <= 0 {
		return
	}
	m.scale = v
	m.root.Resize()
	if m.svc.Printers != nil {
		m.svc.Printers.SetScale(v)
		m.walk(m.root, func(e Element) {
			if p, ok := e.(interface{ updatePrinter() }); ok {
				p.updatePrinter()
			}
		})
	}
}

// Resize relayouts the tree after the canvas changed size.
func (m *Manager) Resize() { m.root.Resize() }

// UpdateAllTexts reapplies localization to every text element.
func (m *Manager) UpdateAllTexts() {
	m.walk(m.root, func(e Element) {
		if t, ok := e.(interface{ UpdateTextContent() }); ok {
			t.UpdateTextContent()
		}
	})
}

// walk visits e and its subtree depth first.
func (m *Manager) walk(e Element, fn func(Element)) {
	fn(e)
	n := e.Node()
	for i := 0; i < len(n.children); i++ {
		if c := m.el(n.children[i]); c != nil {
			m.walk(c, fn)
		}
	}
}

// Update advances one frame of dt milliseconds.
func (m *Manager) Update(dt float64) {
	m.elements.Update(dt)
	m.updateKeyTurbo(dt)
	m.svc.Deferred.Flush()
}

func (m *Manager) Draw(r Renderer) { m.root.Draw(r) }

// Reset clears the focus and pointer stacks and destroys every element
// under the root.
func (m *Manager) Reset() {
	m.ResetFocuses()
	m.ResetPointerEventRoots()
	children := m.root.children
	for i := len(children) - 1; i >= 0; i-- {
		if i >= len(m.root.children) {
			continue
		}
		if c := m.el(m.root.children[i]); c != nil {
			c.Destroy()
		}
	}
}

// LoadFiles registers UI files and their presets. References are replaced
// by copies of their prefabs once all files are known.
func (m *Manager) LoadFiles(files ...*File) {
	var load func(nodes []*Node, f *File)
	load = func(nodes []*Node, f *File) {
		for _, n := range nodes {
			n.ui = f
			m.presets[n.PresetID] = n
			load(n.Children, f)
		}
	}
	for _, f := range files {
		m.files[f.ID] = f
		load(f.Nodes, f)
	}
	for _, f := range files {
		f.Nodes = m.replaceReferences(f.Nodes)
	}
}

func (m *Manager) replaceReferences(nodes []*Node) []*Node {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.Class != "reference" {
			n.Children = m.replaceReferences(n.Children)
			continue
		}
		prefab := m.presets[n.PrefabID]
		if prefab == nil || prefab.Class == "reference" {
			logger.Warn("dropping invalid reference", "preset", n.PresetID, "prefab", n.PrefabID)
			delete(m.presets, n.PresetID)
			nodes = slices.Delete(nodes, i, i+1)
			continue
		}
		c := *prefab
		c.ReferenceID = n.PresetID
		c.Events = make(map[string]*Commands, len(prefab.Events)+len(n.Events))
		for k, v := range prefab.Events {
			c.Events[k] = v
		}
		for k, v := range n.Events {
			c.Events[k] = v
		}
		c.Scripts = mergeScripts(n.Scripts, prefab.Scripts)
		if n.Synchronous {
			c.Transform = prefab.Transform
			c.Transform.X = n.Transform.X
			c.Transform.Y = n.Transform.Y
			c.Transform.X2 = n.Transform.X2
			c.Transform.Y2 = n.Transform.Y2
		} else {
			c.Transform = n.Transform
		}
		c.ui = n.ui
		m.presets[n.PresetID] = &c
		nodes[i] = &c
	}
	return nodes
}

// mergeScripts keeps the reference's scripts and adds the prefab scripts
// it does not override.
func mergeScripts(own, prefab []ScriptRef) []ScriptRef {
	out := slices.Clone(own)
	for _, s := range prefab {
		if !slices.ContainsFunc(own, func(o ScriptRef) bool { return o.ID == s.ID }) {
			out = append(out, s)
		}
	}
	return out
}

// Preset returns the flattened preset node for id.
func (m *Manager) Preset(id string) (*Node, bool) {
	n, ok := m.presets[id]
	return n, ok
}

// Load creates the enabled top-level elements of a UI file. The elements
// are not attached.
func (m *Manager) Load(uiID string) ([]Element, error) {
	f, ok := m.files[uiID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUI, uiID)
	}
	var out []Element
	for _, n := range f.Nodes {
		if n.Enabled {
			out = append(out, m.build(n))
		}
	}
	if len(out) != 0 {
		m.latest = out[len(out)-1].Node().id
	}
	return out, nil
}

// CreateElement instantiates a preset and its enabled descendants.
func (m *Manager) CreateElement(presetID string) (Element, error) {
	n, ok := m.presets[presetID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPreset, presetID)
	}
	e := m.build(n)
	m.latest = e.Node().id
	return e, nil
}

// Add creates a preset and appends it to the root.
func (m *Manager) Add(presetID string) (Element, error) {
	e, err := m.CreateElement(presetID)
	if err != nil {
		return nil, err
	}
	m.root.AppendChild(e)
	return e, nil
}

// NewElement instantiates an ad hoc node tree.
func (m *Manager) NewElement(n *Node) Element { return m.build(n) }

func (m *Manager) build(n *Node) Element {
	e := m.construct(n)
	b := e.Node()
	for _, c := range n.Children {
		if c.Enabled {
			b.AppendChild(m.build(c))
		}
	}
	return e
}

func (m *Manager) construct(n *Node) Element {
	switch n.Class {
	case "image":
		return m.newImage(n)
	case "text":
		return m.newText(n)
	case "textbox":
		return m.newTextBox(n)
	case "dialogbox":
		return m.newDialogBox(n)
	case "progressbar":
		return m.newProgressBar(n)
	case "button":
		return m.newButton(n)
	case "animation":
		return m.newAnimation(n)
	case "video":
		return m.newVideo(n)
	case "window":
		return m.newWindow(n)
	}
	return m.newContainer(n)
}

// PointerEventRoot is the element hit testing starts from: the latest
// capture root, or the tree root.
func (m *Manager) PointerEventRoot() Element {
	for i := len(m.pointerRoots) - 1; i >= 0; i-- {
		if e := m.el(m.pointerRoots[i]); e != nil {
			return e
		}
	}
	return m.root
}

func (m *Manager) AddPointerEventRoot(e Element) {
	if e == nil {
		return
	}
	if id := e.Node().id; !slices.Contains(m.pointerRoots, id) {
		m.pointerRoots = append(m.pointerRoots, id)
	}
}

func (m *Manager) RemovePointerEventRoot(e Element) {
	if e == nil {
		return
	}
	if i := slices.Index(m.pointerRoots, e.Node().id); i != -1 {
		m.pointerRoots = slices.Delete(m.pointerRoots, i, i+1)
	}
}

func (m *Manager) RemoveLatestPointerEventRoot() {
	if n := len(m.pointerRoots); n != 0 {
		m.pointerRoots = m.pointerRoots[:n-1]
	}
}

func (m *Manager) ResetPointerEventRoots() { m.pointerRoots = m.pointerRoots[:0] }

// find returns the topmost element under the screen point. Later siblings
// win; skipped elements only forward to their children.
func (m *Manager) find(ids []ID, x, y float64) Element {
	for i := len(ids) - 1; i >= 0; i-- {
		e := m.el(ids[i])
		if e == nil {
			continue
		}
		n := e.Node()
		if !n.visible || n.pointerEvents == PointerDisabled || !n.IsPointIn(x, y) {
			continue
		}
		if t := m.find(n.children, x, y); t != nil {
			return t
		}
		if n.pointerEvents == PointerEnabled {
			return e
		}
	}
	return nil
}

// ElementAt returns the element under a screen point, falling back to the
// pointer event root.
func (m *Manager) ElementAt(x, y float64) Element {
	root := m.PointerEventRoot()
	if e := m.find(root.Node().children, x, y); e != nil {
		return e
	}
	return root
}

func (m *Manager) elementAtMouse() Element {
	x, y := m.input.Mouse()
	return m.ElementAt(x, y)
}

// checkIfRemovedHover sends mouseleave to the hovered chain inside e before
// e is detached.
func (m *Manager) checkIfRemovedHover(e Element) {
	hover := m.el(m.eventHover)
	if hover == nil || !e.Node().Contains(hover) {
		return
	}
	m.eventHover = 0
	parent := e.Node().Parent()
	for hover != nil && hover != parent {
		hover.Emit("mouseleave", m.lastMouse, false)
		hover = hover.Node().Parent()
	}
}

func (m *Manager) inputFocus() *TextBox {
	t, _ := m.el(m.textFocus).(*TextBox)
	return t
}

// setInputFocus moves keyboard editing to t. Nil clears it.
func (m *Manager) setInputFocus(t *TextBox) {
	old := m.inputFocus()
	if old == t {
		return
	}
	m.textFocus = 0
	if old != nil {
		old.blurEvent()
	}
	if t != nil {
		m.textFocus = t.id
		t.focusEvent()
	}
}

func (m *Manager) addPressed(b *Button) {
	if !slices.Contains(m.pressed, b.id) {
		m.pressed = append(m.pressed, b.id)
	}
}

func (m *Manager) releasePressed(b *Button) {
	if i := slices.Index(m.pressed, b.id); i != -1 {
		m.pressed = slices.Delete(m.pressed, i, i+1)
	}
}

// pointerInput reports whether the event being dispatched came from a real
// pointer rather than a key or gamepad.
func (m *Manager) pointerInput() bool {
	switch e := m.event.(type) {
	case core.EventMouseButton:
		return !e.Synthetic
	case core.EventMouseMove, core.EventDoubleClick, core.EventScroll:
		return true
	}
	return false
}
