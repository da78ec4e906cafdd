package ui

// AppendChild moves e to the end of b's children. Appending a child that is
// already present, b itself, or an ancestor of b does nothing.
func (b *Base) AppendChild(e Element) {
	if e == nil {
		return
	}
	n := e.Node()
	if b.indexOfChild(n.id) != -1 || n.Contains(b.self) {
		return
	}
	b.children = append(b.children, n.id)
	b.adopt(n)
}

func (b *Base) AppendChildren(es ...Element) {
	for _, e := range es {
		b.AppendChild(e)
	}
}

// InsertBefore places e in front of dest. It does nothing when dest is not
// a child of b.
func (b *Base) InsertBefore(e, dest Element) {
	if e == nil || dest == nil {
		return
	}
	n := e.Node()
	pos := b.indexOfChild(dest.Node().id)
	if pos == -1 || b.indexOfChild(n.id) != -1 || n.Contains(b.self) {
		return
	}
	b.children = append(b.children, 0)
	copy(b.children[pos+1:], b.children[pos:])
	b.children[pos] = n.id
	b.adopt(n)
}

func (b *Base) adopt(n *Base) {
	if p := n.Parent(); p != nil {
		p.Node().removeChildID(n.id)
	}
	n.parent = b.id
	switch {
	case b.connected:
		if !n.connected {
			n.connect()
		}
		n.self.Resize()
	case n.connected:
		n.disconnect()
	}
}

// MoveToIndex reorders b among its siblings. Negative positions count from
// the end.
func (b *Base) MoveToIndex(pos int) {
	p := b.Parent()
	if p == nil {
		return
	}
	pn := p.Node()
	list := pn.children
	if pos < 0 {
		pos += len(list)
	}
	if pos < 0 || pos >= len(list) || list[pos] == b.id {
		return
	}
	i := pn.indexOfChild(b.id)
	if i < pos {
		copy(list[i:pos], list[i+1:pos+1])
	} else {
		copy(list[pos+1:i+1], list[pos:i])
	}
	list[pos] = b.id
	if w := asWindow(p); w != nil {
		w.RequestResizing()
	}
}

// Remove detaches b from its parent and disconnects it.
func (b *Base) Remove() {
	p := b.Parent()
	if p == nil || !p.Node().removeChildID(b.id) {
		return
	}
	b.m.checkIfRemovedHover(b.self)
	if w := asWindow(p); w != nil {
		w.RequestResizing()
	}
	b.parent = 0
	if b.connected {
		b.disconnect()
	}
}

// Clear destroys every child.
func (b *Base) Clear() { b.destroyChildren() }

func (b *Base) Hide() {
	if b.visible {
		b.visible = false
	}
}

func (b *Base) Show() {
	if !b.visible {
		b.visible = true
		b.self.Resize()
	}
}

type connectHook interface{ onConnect() }

type disconnectHook interface{ onDisconnect() }

func (b *Base) connect() {
	b.m.elements.Append(b.self)
	b.connected = true
	for i := 0; i < len(b.children); i++ {
		if c := b.m.el(b.children[i]); c != nil {
			c.Node().connect()
		}
	}
	if h, ok := b.self.(connectHook); ok {
		h.onConnect()
	}
}

func (b *Base) disconnect() {
	b.m.elements.Remove(b.self)
	b.connected = false
	for i := 0; i < len(b.children); i++ {
		if c := b.m.el(b.children[i]); c != nil {
			c.Node().disconnect()
		}
	}
	if h, ok := b.self.(disconnectHook); ok {
		h.onDisconnect()
	}
}

// Query returns the first descendant, depth first, whose key matches value.
// Keys other than the identity fields are looked up in the attributes.
func (b *Base) Query(key string, value any) Element {
	for i := 0; i < len(b.children); i++ {
		c := b.m.el(b.children[i])
		if c == nil {
			continue
		}
		if c.Node().matches(key, value) {
			return c
		}
		if r := c.Node().Query(key, value); r != nil {
			return r
		}
	}
	return nil
}

func (b *Base) matches(key string, value any) bool {
	switch key {
	case "name":
		return b.name == value
	case "presetId":
		return b.presetID == value
	case "referenceId":
		return b.referenceID == value
	case "entityId":
		return b.entityID == value
	}
	v, ok := b.attributes[key]
	return ok && v == value
}

// Destroy releases b and its subtree. Kinds that own resources release them
// first and then call Base.Destroy.
func (b *Base) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.self.Emit("destroy", b.signal(), false)
	if b.parent != 0 {
		b.Remove()
	}
	b.m.entities.Remove(b.self)
	if b.m.svc.Entities != nil {
		b.m.svc.Entities.Remove(b.self)
	}
	b.m.RemoveFocus(b.self)
	b.m.RemovePointerEventRoot(b.self)
	b.destroyChildren()
	b.m.arena.release(b.id)
}
